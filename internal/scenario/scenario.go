// Package scenario loads named landing requests with their expected decisions
// from YAML and checks them against the landing engine.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"atc-landing/internal/landing"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoScenarios       = errors.New("no scenarios defined")
	ErrUnnamedScenario   = errors.New("scenario has no name")
	ErrDuplicateScenario = errors.New("duplicate scenario name")
	ErrNoExpectation     = errors.New("scenario has no expected outcome")
)

// Expectation is what a scenario must produce. Outcome is nil when the file
// leaves it out, which Parse rejects.
type Expectation struct {
	Outcome *landing.Outcome `yaml:"outcome"`
	Message string           `yaml:"message,omitempty"`
}

type Scenario struct {
	Name    string          `yaml:"name"`
	Request landing.Request `yaml:"request"`
	Expect  Expectation     `yaml:"expect"`
}

type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			return nil, fmt.Errorf("scenario #%d: %w", i+1, ErrUnnamedScenario)
		}
		if sc.Expect.Outcome == nil {
			return nil, fmt.Errorf("scenario #%d: %w", i+1, ErrNoExpectation)
		}
		if seen[name] {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateScenario)
		}
		seen[name] = true
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

type Result struct {
	Scenario Scenario
	Decision landing.Decision
	Passed   bool
	Mismatch string
}

type Report struct {
	Results []Result
}

func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

func (f *File) Run(engine *landing.Engine) Report {
	report := Report{Results: make([]Result, 0, len(f.Scenarios))}
	for _, sc := range f.Scenarios {
		d := engine.Evaluate(sc.Request)
		res := Result{Scenario: sc, Decision: d, Passed: true}

		switch {
		case sc.Expect.Outcome == nil:
			res.Passed = false
			res.Mismatch = "no expected outcome"
		case d.Outcome != *sc.Expect.Outcome:
			res.Passed = false
			res.Mismatch = fmt.Sprintf("expected %s, got %s", *sc.Expect.Outcome, d.Outcome)
		case sc.Expect.Message != "" && d.Message != sc.Expect.Message:
			res.Passed = false
			res.Mismatch = fmt.Sprintf("expected message %q, got %q", sc.Expect.Message, d.Message)
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func (f *File) Coverage() *landing.Coverage {
	cov := landing.NewCoverage()
	for _, sc := range f.Scenarios {
		cov.Record(sc.Request)
	}
	return cov
}
