package landing

import "fmt"

// Clause and predicate names in report order.
var (
	CoverageClauses = []string{
		"runway_clear",
		"alternate_runway_available",
		"emergency",
		"priority_status",
		"runway_available",
		"safe_speed",
		"safe_weather",
		"acceptable_traffic",
		"traffic_override",
		"weather_override",
	}
	CoveragePredicates = []string{"P1", "P2", "P3"}
)

type CoverageRow struct {
	Name      string
	Predicate bool
	TrueSeen  int
	FalseSeen int
}

func (r CoverageRow) Covered() bool {
	return r.TrueSeen > 0 && r.FalseSeen > 0
}

// Coverage tallies which clauses and predicates a set of requests has driven
// both true and false. Predicates are tallied on their own value, not on
// whether they won, so P3 counts as true even when P1 decided the outcome.
type Coverage struct {
	rows     map[string]*CoverageRow
	outcomes map[Predicate]int
	total    int
}

func NewCoverage() *Coverage {
	cov := &Coverage{
		rows:     make(map[string]*CoverageRow),
		outcomes: make(map[Predicate]int),
	}
	for _, name := range CoverageClauses {
		cov.rows[name] = &CoverageRow{Name: name}
	}
	for _, name := range CoveragePredicates {
		cov.rows[name] = &CoverageRow{Name: name, Predicate: true}
	}
	return cov
}

func (cov *Coverage) Record(req Request) Decision {
	d := Evaluate(req)
	c := d.Conditions

	values := map[string]bool{
		"runway_clear":               req.RunwayClear,
		"alternate_runway_available": req.AlternateRunwayAvailable,
		"emergency":                  req.Emergency,
		"priority_status":            req.PriorityStatus,
		"runway_available":           c.RunwayAvailable,
		"safe_speed":                 c.SafeSpeed,
		"safe_weather":               c.SafeWeather,
		"acceptable_traffic":         c.AcceptableTraffic,
		"traffic_override":           c.TrafficOverride,
		"weather_override":           c.WeatherOverride,
		"P1":                         c.StandardLanding(),
		"P2":                         c.PriorityOverride(),
		"P3":                         c.EmergencyLanding(),
	}
	for name, v := range values {
		if v {
			cov.rows[name].TrueSeen++
		} else {
			cov.rows[name].FalseSeen++
		}
	}

	cov.outcomes[d.Predicate]++
	cov.total++
	return d
}

func (cov *Coverage) Total() int {
	return cov.total
}

// Reached reports how many recorded requests were decided by p.
func (cov *Coverage) Reached(p Predicate) int {
	return cov.outcomes[p]
}

func (cov *Coverage) Report() []CoverageRow {
	report := make([]CoverageRow, 0, len(cov.rows))
	for _, name := range CoverageClauses {
		report = append(report, *cov.rows[name])
	}
	for _, name := range CoveragePredicates {
		report = append(report, *cov.rows[name])
	}
	return report
}

// Missing lists every gap: a clause or predicate never seen true or never
// seen false, and any decision path no request reached.
func (cov *Coverage) Missing() []string {
	var missing []string
	for _, row := range cov.Report() {
		if row.TrueSeen == 0 {
			missing = append(missing, fmt.Sprintf("%s never true", row.Name))
		}
		if row.FalseSeen == 0 {
			missing = append(missing, fmt.Sprintf("%s never false", row.Name))
		}
	}
	for _, p := range []Predicate{PredicateStandard, PredicatePriorityOverride, PredicateEmergency, PredicateNone} {
		if cov.outcomes[p] == 0 {
			missing = append(missing, fmt.Sprintf("decision path %s never reached", p))
		}
	}
	return missing
}

func (cov *Coverage) Complete() bool {
	return len(cov.Missing()) == 0
}
