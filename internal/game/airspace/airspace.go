package airspace

import "atc-landing/pkg/types"

const HOME_AIRPORT = "KSIM"

type Sector struct {
	Name        string
	Bounds      []types.Vec2
	MinAltitude float64
	MaxAltitude float64
}

type Airspace struct {
	Waypoints map[string]*types.Waypoint
	Sectors   map[string]*Sector
	Airports  map[string]*Airport

	ExitWaypoints  []string
	EntryWaypoints []string
}

// NewAirspace lays out the fixes, sector and home airport relative to a
// width x height radar scope.
func NewAirspace(width, height float64) *Airspace {
	ap := &Airspace{
		Waypoints: make(map[string]*types.Waypoint),
		Sectors:   make(map[string]*Sector),
		Airports:  make(map[string]*Airport),

		EntryWaypoints: []string{"APIPO", "BISKET", "EMETI", "FILKA"},
		ExitWaypoints:  []string{"APIPO", "BISKET", "EMETI", "FILKA"},
	}

	ap.Waypoints["APIPO"] = &types.Waypoint{Name: "APIPO", Position: types.NewVec2(width*0.1, height*0.14)}
	ap.Waypoints["BISKET"] = &types.Waypoint{Name: "BISKET", Position: types.NewVec2(width*0.64, height*0.23)}
	ap.Waypoints["CIPKA"] = &types.Waypoint{Name: "CIPKA", Position: types.NewVec2(width*0.37, height*0.54)}
	ap.Waypoints["EMETI"] = &types.Waypoint{Name: "EMETI", Position: types.NewVec2(width*0.25, height*0.90)}
	ap.Waypoints["FILKA"] = &types.Waypoint{Name: "FILKA", Position: types.NewVec2(width*0.67, height*0.65)}

	ap.Sectors["SECTOR1"] = &Sector{
		Name: "SECTOR1",
		Bounds: []types.Vec2{
			types.NewVec2(0, 0),
			types.NewVec2(width, 0),
			types.NewVec2(width, height),
			types.NewVec2(0, height),
		},
		MinAltitude: 0,
		MaxAltitude: 40000,
	}

	center := types.NewVec2(width*0.5, height*0.5)
	ap.AddAirport(HOME_AIRPORT, "Simulation Intl", center, []Runway{
		{Name: "09L", Threshold: types.NewVec2(center.X-60, center.Y-15), Heading: 90, Length: 120},
		{Name: "09R", Threshold: types.NewVec2(center.X-60, center.Y+15), Heading: 90, Length: 120},
	})
	return ap
}

func (ap *Airspace) HomeAirport() *Airport {
	return ap.Airports[HOME_AIRPORT]
}
