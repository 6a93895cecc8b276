package landing

import (
	"bytes"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func req(runwayClear, alternate bool, speed float64, emergency bool, wind, visibility float64, traffic int, priority bool) Request {
	return Request{
		RunwayClear:              runwayClear,
		AlternateRunwayAvailable: alternate,
		PlaneSpeed:               speed,
		Emergency:                emergency,
		WindSpeed:                wind,
		Visibility:               visibility,
		AirportTraffic:           traffic,
		PriorityStatus:           priority,
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		outcome   Outcome
		message   string
		predicate Predicate
	}{
		{"all safe", req(true, false, 120, false, 20, 2000, 2, false), Allowed, MSG_ALL_CONDITIONS_MET, PredicateStandard},
		{"traffic override", req(true, false, 120, false, 60, 500, 7, true), Allowed, MSG_PRIORITY_OVERRIDE, PredicatePriorityOverride},
		{"emergency with priority", req(true, false, 120, true, 70, 300, 2, true), Allowed, MSG_EMERGENCY, PredicateEmergency},
		{"speed unsafe", req(true, false, 200, false, 20, 2000, 2, false), Denied, MSG_DENIED, PredicateNone},
		{"no runway", req(false, false, 120, false, 20, 2000, 2, false), Denied, MSG_DENIED, PredicateNone},
		{"everything false", req(false, false, 200, false, 70, 300, 10, false), Denied, MSG_DENIED, PredicateNone},
		{"alternate runway only", req(false, true, 100, false, 10, 1000, 2, false), Allowed, MSG_ALL_CONDITIONS_MET, PredicateStandard},
		{"wind too strong", req(false, true, 100, false, 50, 1000, 2, false), Denied, MSG_DENIED, PredicateNone},
		{"low visibility with priority", req(true, true, 100, false, 10, 800, 2, true), Allowed, MSG_PRIORITY_OVERRIDE, PredicatePriorityOverride},
		{"emergency beats override", req(true, true, 100, true, 10, 800, 2, true), Allowed, MSG_EMERGENCY, PredicateEmergency},
		{"emergency without runway", req(false, false, 100, true, 10, 1000, 2, true), Allowed, MSG_EMERGENCY, PredicateEmergency},
		{"emergency without priority", req(false, false, 100, true, 10, 1000, 2, false), Denied, MSG_DENIED, PredicateNone},
		{"priority without runway", req(false, false, 100, false, 10, 1000, 2, true), Denied, MSG_DENIED, PredicateNone},
		{"emergency ignores speed and traffic", req(false, false, 200, true, 20, 2000, 10, true), Allowed, MSG_EMERGENCY, PredicateEmergency},
		{"traffic override in poor visibility", req(true, true, 100, false, 10, 100, 6, true), Allowed, MSG_PRIORITY_OVERRIDE, PredicatePriorityOverride},
		{"traffic override in storm", req(true, true, 100, false, 100, 100, 6, true), Allowed, MSG_PRIORITY_OVERRIDE, PredicatePriorityOverride},
		{"busy airport without priority", req(true, true, 100, true, 10, 1000, 6, false), Denied, MSG_DENIED, PredicateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.req)
			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.message, d.Message)
			assert.Equal(t, tt.predicate, d.Predicate)
		})
	}
}

func TestEvaluateLanding(t *testing.T) {
	outcome, msg := EvaluateLanding(true, false, 120, false, 20, 2000, 2, false)
	assert.Equal(t, Allowed, outcome)
	assert.Equal(t, "Landing Allowed", outcome.String())
	assert.Equal(t, "All conditions met for landing.", msg)

	outcome, msg = EvaluateLanding(false, false, 200, false, 70, 300, 10, false)
	assert.Equal(t, "Landing Denied", outcome.String())
	assert.Equal(t, "Conditions not met for safe landing.", msg)
}

func TestEvaluate_Boundaries(t *testing.T) {
	t.Run("speed", func(t *testing.T) {
		assert.True(t, Evaluate(req(true, false, 150, false, 20, 2000, 2, false)).Allowed())
		assert.False(t, Evaluate(req(true, false, 151, false, 20, 2000, 2, false)).Allowed())
		assert.False(t, Evaluate(req(true, false, 150.01, false, 20, 2000, 2, false)).Allowed())
	})

	t.Run("traffic", func(t *testing.T) {
		assert.Equal(t, PredicateStandard, Evaluate(req(true, false, 120, false, 20, 2000, 5, false)).Predicate)
		assert.Equal(t, PredicateNone, Evaluate(req(true, false, 120, false, 20, 2000, 6, false)).Predicate)
	})

	t.Run("traffic override", func(t *testing.T) {
		// wind 90 rules out the weather override
		assert.Equal(t, PredicatePriorityOverride, Evaluate(req(true, false, 120, false, 90, 2000, 8, true)).Predicate)
		assert.Equal(t, PredicateNone, Evaluate(req(true, false, 120, false, 90, 2000, 9, true)).Predicate)
	})

	t.Run("weather", func(t *testing.T) {
		assert.Equal(t, PredicateStandard, Evaluate(req(true, false, 120, false, 40, 1000, 2, false)).Predicate)
		assert.Equal(t, PredicateNone, Evaluate(req(true, false, 120, false, 41, 1000, 2, false)).Predicate)
		assert.Equal(t, PredicateNone, Evaluate(req(true, false, 120, false, 40, 999, 2, false)).Predicate)
	})

	t.Run("weather override", func(t *testing.T) {
		// traffic 9 rules out the traffic override
		assert.Equal(t, PredicatePriorityOverride, Evaluate(req(true, false, 120, false, 80, 200, 9, true)).Predicate)
		assert.Equal(t, PredicateNone, Evaluate(req(true, false, 120, false, 81, 200, 9, true)).Predicate)
		assert.Equal(t, PredicateNone, Evaluate(req(true, false, 120, false, 80, 199, 9, true)).Predicate)
	})

	t.Run("out of range values flow through", func(t *testing.T) {
		d := Evaluate(req(true, false, -50, false, -5, 5000, -3, false))
		assert.Equal(t, PredicateStandard, d.Predicate)
		assert.True(t, d.Conditions.SafeSpeed)
		assert.True(t, d.Conditions.AcceptableTraffic)
	})
}

func TestEvaluate_PriorityOrdering(t *testing.T) {
	// P1 and P3 both hold
	d := Evaluate(req(true, false, 120, true, 20, 2000, 2, true))
	require.True(t, d.Conditions.StandardLanding())
	require.True(t, d.Conditions.EmergencyLanding())
	assert.Equal(t, MSG_ALL_CONDITIONS_MET, d.Message)

	// P1 and P2 both hold
	d = Evaluate(req(true, false, 120, false, 20, 2000, 2, true))
	require.True(t, d.Conditions.PriorityOverride())
	assert.Equal(t, PredicateStandard, d.Predicate)
}

func grid(fn func(Request)) {
	bools := []bool{false, true}
	for _, rc := range bools {
		for _, alt := range bools {
			for _, speed := range []float64{-1, 0, 120, 150, 151, 300} {
				for _, em := range bools {
					for _, wind := range []float64{0, 40, 41, 80, 81} {
						for _, vis := range []float64{0, 199, 200, 999, 1000} {
							for _, traffic := range []int{0, 5, 6, 8, 9} {
								for _, pri := range bools {
									fn(req(rc, alt, speed, em, wind, vis, traffic, pri))
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestEvaluate_Totality(t *testing.T) {
	expected := map[string]Outcome{
		MSG_ALL_CONDITIONS_MET: Allowed,
		MSG_PRIORITY_OVERRIDE:  Allowed,
		MSG_EMERGENCY:          Allowed,
		MSG_DENIED:             Denied,
	}

	grid(func(r Request) {
		d := Evaluate(r)
		outcome, ok := expected[d.Message]
		if !assert.True(t, ok, "unexpected message %q for %+v", d.Message, r) {
			return
		}
		assert.Equal(t, outcome, d.Outcome, "%+v", r)
		assert.Equal(t, d, Evaluate(r), "non-deterministic for %+v", r)
	})
}

func TestEvaluate_EmergencyDominance(t *testing.T) {
	grid(func(r Request) {
		if !r.Emergency || !r.PriorityStatus {
			return
		}
		d := Evaluate(r)
		assert.Equal(t, Allowed, d.Outcome, "%+v", r)
		if d.Conditions.StandardLanding() {
			assert.Equal(t, MSG_ALL_CONDITIONS_MET, d.Message, "%+v", r)
		} else {
			assert.Equal(t, MSG_EMERGENCY, d.Message, "%+v", r)
		}
	})
}

func TestEngine_AnnouncesDecision(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New("landing")
	logger.SetOutput(&buf)
	logger.SetHeader("${level}")
	logger.SetLevel(log.INFO)

	e := NewEngine(logger)

	d := e.Evaluate(req(true, false, 120, false, 20, 2000, 2, false))
	assert.True(t, d.Allowed())
	assert.Contains(t, buf.String(), "All conditions met for landing.")
	assert.Contains(t, buf.String(), "INFO")

	buf.Reset()
	d = e.Evaluate(req(false, false, 200, false, 70, 300, 10, false))
	assert.False(t, d.Allowed())
	assert.Contains(t, buf.String(), "Conditions not met for safe landing.")
	assert.Contains(t, buf.String(), "WARN")
}

func TestEngine_NilLogger(t *testing.T) {
	var e *Engine
	d := e.Evaluate(req(true, false, 120, true, 70, 300, 2, true))
	assert.Equal(t, MSG_EMERGENCY, d.Message)

	d = NewEngine(nil).Evaluate(req(true, false, 120, false, 60, 500, 7, true))
	assert.Equal(t, MSG_PRIORITY_OVERRIDE, d.Message)
}

func TestParseOutcome(t *testing.T) {
	for in, want := range map[string]Outcome{
		"allowed":         Allowed,
		"Landing Allowed": Allowed,
		" DENIED ":        Denied,
		"landing denied":  Denied,
	} {
		got, err := ParseOutcome(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOutcome("maybe")
	assert.Error(t, err)
}

func TestOutcome_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Outcome Outcome `yaml:"outcome"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("outcome: Landing Allowed\n"), &doc))
	assert.Equal(t, Allowed, doc.Outcome)

	err := yaml.Unmarshal([]byte("outcome: sideways\n"), &doc)
	assert.Error(t, err)
}

func TestPredicateString(t *testing.T) {
	assert.Equal(t, "P1", PredicateStandard.String())
	assert.Equal(t, "P2", PredicatePriorityOverride.String())
	assert.Equal(t, "P3", PredicateEmergency.String())
	assert.Equal(t, "NONE", PredicateNone.String())
}
