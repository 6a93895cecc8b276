package landing

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type Outcome int

const (
	Denied Outcome = iota
	Allowed
)

func (o Outcome) String() string {
	if o == Allowed {
		return "Landing Allowed"
	}
	return "Landing Denied"
}

// ParseOutcome accepts "allowed"/"denied" or the full "Landing Allowed"/"Landing Denied" form.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allowed", "landing allowed":
		return Allowed, nil
	case "denied", "landing denied":
		return Denied, nil
	}
	return Denied, fmt.Errorf("unknown landing outcome %q", s)
}

func (o *Outcome) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseOutcome(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Predicate identifies which approval rule produced a decision.
type Predicate int

const (
	PredicateNone Predicate = iota
	PredicateStandard
	PredicatePriorityOverride
	PredicateEmergency
)

var PredicateStringMap = map[Predicate]string{
	PredicateNone:             "NONE",
	PredicateStandard:         "P1",
	PredicatePriorityOverride: "P2",
	PredicateEmergency:        "P3",
}

func (p Predicate) String() string {
	return PredicateStringMap[p]
}

const (
	MSG_ALL_CONDITIONS_MET = "All conditions met for landing."
	MSG_PRIORITY_OVERRIDE  = "Landing allowed with priority overrides."
	MSG_EMERGENCY          = "Emergency landing with priority clearance."
	MSG_DENIED             = "Conditions not met for safe landing."
)

type Decision struct {
	Outcome    Outcome
	Message    string
	Predicate  Predicate
	Conditions Conditions
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allowed
}

func (d Decision) String() string {
	return d.Outcome.String() + ": " + d.Message
}
