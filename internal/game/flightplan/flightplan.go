package flightplan

import "atc-landing/pkg/types"

type FlightPlanSegment struct {
	WaypointName   string
	TargetAltitude float64
	TargetSpeed    float64
}

type FlightPlan struct {
	OriginAirportID      string
	DestinationAirportID string
	Route                []FlightPlanSegment // Sequence of segments
	CurrentSegmentIndex  int
	Callsign             types.AircraftID
}

// Current returns the active segment, or false once the route is flown.
func (fp *FlightPlan) Current() (FlightPlanSegment, bool) {
	if fp.Complete() {
		return FlightPlanSegment{}, false
	}
	return fp.Route[fp.CurrentSegmentIndex], true
}

func (fp *FlightPlan) Advance() {
	if !fp.Complete() {
		fp.CurrentSegmentIndex++
	}
}

func (fp *FlightPlan) Complete() bool {
	return fp.CurrentSegmentIndex >= len(fp.Route)
}

// Arriving reports whether the plan terminates at an airport rather than an exit fix.
func (fp *FlightPlan) Arriving(airportID string) bool {
	return fp.DestinationAirportID == airportID
}
