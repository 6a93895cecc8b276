package landing

import "github.com/labstack/gommon/log"

// Evaluate returns the decision of the first predicate that holds. A clean
// standard landing is reported as such even for an emergency; otherwise an
// emergency with priority clearance is reported ahead of the override path.
func Evaluate(req Request) Decision {
	c := Derive(req)

	switch {
	case c.StandardLanding():
		return Decision{Outcome: Allowed, Message: MSG_ALL_CONDITIONS_MET, Predicate: PredicateStandard, Conditions: c}
	case c.EmergencyLanding():
		return Decision{Outcome: Allowed, Message: MSG_EMERGENCY, Predicate: PredicateEmergency, Conditions: c}
	case c.PriorityOverride():
		return Decision{Outcome: Allowed, Message: MSG_PRIORITY_OVERRIDE, Predicate: PredicatePriorityOverride, Conditions: c}
	default:
		return Decision{Outcome: Denied, Message: MSG_DENIED, Predicate: PredicateNone, Conditions: c}
	}
}

func EvaluateLanding(
	runwayClear, alternateRunwayAvailable bool,
	planeSpeed float64,
	emergency bool,
	windSpeed, visibility float64,
	airportTraffic int,
	priorityStatus bool,
) (Outcome, string) {
	d := Evaluate(Request{
		RunwayClear:              runwayClear,
		AlternateRunwayAvailable: alternateRunwayAvailable,
		PlaneSpeed:               planeSpeed,
		Emergency:                emergency,
		WindSpeed:                windSpeed,
		Visibility:               visibility,
		AirportTraffic:           airportTraffic,
		PriorityStatus:           priorityStatus,
	})
	return d.Outcome, d.Message
}

// Engine evaluates requests and announces each decision message on its logger.
type Engine struct {
	logger *log.Logger
}

// NewEngine returns an Engine that writes to logger. A nil logger keeps it silent.
func NewEngine(logger *log.Logger) *Engine {
	return &Engine{logger: logger}
}

func (e *Engine) Evaluate(req Request) Decision {
	d := Evaluate(req)
	if e == nil || e.logger == nil {
		return d
	}

	if d.Allowed() {
		e.logger.Info(d.Message)
	} else {
		e.logger.Warn(d.Message)
	}
	return d
}
