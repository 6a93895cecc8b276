package landing

// Request is the flight and airport status a landing decision is made from.
type Request struct {
	RunwayClear              bool    `yaml:"runway_clear"`
	AlternateRunwayAvailable bool    `yaml:"alternate_runway_available"`
	PlaneSpeed               float64 `yaml:"plane_speed"`
	Emergency                bool    `yaml:"emergency"`
	WindSpeed                float64 `yaml:"wind_speed"`
	Visibility               float64 `yaml:"visibility"`
	AirportTraffic           int     `yaml:"airport_traffic"`
	PriorityStatus           bool    `yaml:"priority_status"`
}

const (
	MAX_SAFE_SPEED          = 150.0
	MAX_SAFE_WIND           = 40.0
	MIN_SAFE_VISIBILITY     = 1000.0
	MAX_ACCEPTABLE_TRAFFIC  = 5
	MAX_PRIORITY_TRAFFIC    = 8
	MAX_PRIORITY_WIND       = 80.0
	MIN_PRIORITY_VISIBILITY = 200.0
)

// Conditions holds the named booleans every predicate is built from.
// All bounds are inclusive.
type Conditions struct {
	RunwayAvailable   bool
	SafeSpeed         bool
	SafeWeather       bool
	AcceptableTraffic bool
	TrafficOverride   bool
	WeatherOverride   bool
	Emergency         bool
	Priority          bool
}

func Derive(req Request) Conditions {
	return Conditions{
		RunwayAvailable:   req.RunwayClear || req.AlternateRunwayAvailable,
		SafeSpeed:         req.PlaneSpeed <= MAX_SAFE_SPEED,
		SafeWeather:       req.WindSpeed <= MAX_SAFE_WIND && req.Visibility >= MIN_SAFE_VISIBILITY,
		AcceptableTraffic: req.AirportTraffic <= MAX_ACCEPTABLE_TRAFFIC,
		TrafficOverride:   req.PriorityStatus && req.AirportTraffic <= MAX_PRIORITY_TRAFFIC,
		WeatherOverride:   req.PriorityStatus && req.WindSpeed <= MAX_PRIORITY_WIND && req.Visibility >= MIN_PRIORITY_VISIBILITY,
		Emergency:         req.Emergency,
		Priority:          req.PriorityStatus,
	}
}

// StandardLanding is P1.
func (c Conditions) StandardLanding() bool {
	return c.RunwayAvailable && c.SafeSpeed && c.SafeWeather && c.AcceptableTraffic
}

// PriorityOverride is P2.
func (c Conditions) PriorityOverride() bool {
	return c.RunwayAvailable && c.SafeSpeed && (c.TrafficOverride || c.WeatherOverride)
}

// EmergencyLanding is P3. Runway, speed, weather and traffic play no part in it.
func (c Conditions) EmergencyLanding() bool {
	return c.Emergency && c.Priority
}
