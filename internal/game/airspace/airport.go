package airspace

import "atc-landing/pkg/types"

type Runway struct {
	Name      string
	Threshold types.Vec2
	Heading   float64
	Length    float64
	AirportID string
	Closed    bool
}

// ThresholdFix is the waypoint an approaching aircraft is vectored to.
func (r *Runway) ThresholdFix() *types.Waypoint {
	return &types.Waypoint{Name: "RW" + r.Name, Position: r.Threshold}
}

type Airport struct {
	ID       string
	Name     string
	Position types.Vec2
	Runways  map[string]*Runway

	// Preference order; the first runway is the primary.
	RunwayOrder []string
}

func (ap *Airspace) AddAirport(airportID, name string, pos types.Vec2, runways []Runway) {
	airport := &Airport{
		ID:          airportID,
		Name:        name,
		Position:    pos,
		Runways:     make(map[string]*Runway),
		RunwayOrder: make([]string, 0, len(runways)),
	}

	for i := range runways {
		rwy := runways[i]
		rwy.AirportID = airportID
		airport.Runways[rwy.Name] = &rwy
		airport.RunwayOrder = append(airport.RunwayOrder, rwy.Name)
	}
	ap.Airports[airportID] = airport
}

func (a *Airport) PrimaryRunway() *Runway {
	if len(a.RunwayOrder) == 0 {
		return nil
	}
	return a.Runways[a.RunwayOrder[0]]
}

func (a *Airport) Alternates() []*Runway {
	if len(a.RunwayOrder) < 2 {
		return nil
	}
	alts := make([]*Runway, 0, len(a.RunwayOrder)-1)
	for _, name := range a.RunwayOrder[1:] {
		alts = append(alts, a.Runways[name])
	}
	return alts
}

func (ap *Airspace) FindRunway(name string) (*Runway, bool) {
	for _, airport := range ap.Airports {
		if rwy, ok := airport.Runways[name]; ok {
			return rwy, true
		}
	}
	return nil, false
}
