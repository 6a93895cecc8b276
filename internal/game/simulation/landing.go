package simulation

import (
	"fmt"

	"atc-landing/internal/game/aircraft"
	"atc-landing/internal/game/airspace"
	"atc-landing/internal/landing"
	"atc-landing/pkg/types"

	"github.com/labstack/gommon/log"
)

// runwayClear reports whether rwy is open and no other aircraft is on final
// to it or rolling out on it.
func (s *Simulation) runwayClear(rwy *airspace.Runway, except types.AircraftID) bool {
	if rwy == nil || rwy.Closed {
		return false
	}
	for id, ac := range s.Aircrafts {
		if id == except || ac.AssignedRunway != rwy.Name {
			continue
		}
		if ac.State == aircraft.APPROACH || ac.State == aircraft.LANDED {
			return false
		}
	}
	return true
}

func (s *Simulation) firstClearAlternate(home *airspace.Airport, except types.AircraftID) *airspace.Runway {
	for _, rwy := range home.Alternates() {
		if s.runwayClear(rwy, except) {
			return rwy
		}
	}
	return nil
}

// ArrivalQueue counts aircraft other than except that are holding or on final.
func (s *Simulation) ArrivalQueue(except types.AircraftID) int {
	n := 0
	for id, ac := range s.Aircrafts {
		if id != except && ac.Waiting() {
			n++
		}
	}
	return n
}

func (s *Simulation) homeRunways() (*airspace.Airport, *airspace.Runway, error) {
	home := s.Airspace.HomeAirport()
	if home == nil {
		return nil, nil, fmt.Errorf("%w: no home airport", ErrRunwayNotFound)
	}
	primary := home.PrimaryRunway()
	if primary == nil {
		return nil, nil, fmt.Errorf("%w: %s has no runways", ErrRunwayNotFound, home.ID)
	}
	return home, primary, nil
}

// BuildLandingRequest snapshots the state a clearance for aircraftID is decided on.
func (s *Simulation) BuildLandingRequest(aircraftID types.AircraftID) (landing.Request, error) {
	req, _, err := s.landingRequest(aircraftID)
	return req, err
}

// landingRequest builds the request together with the runway the aircraft
// would be cleared to if the decision allows it.
func (s *Simulation) landingRequest(aircraftID types.AircraftID) (landing.Request, *airspace.Runway, error) {
	ac, err := s.aircraftByID(aircraftID)
	if err != nil {
		return landing.Request{}, nil, err
	}
	if ac.OnGround() {
		return landing.Request{}, nil, fmt.Errorf("%w: %s", ErrNotAirborne, aircraftID)
	}
	home, primary, err := s.homeRunways()
	if err != nil {
		return landing.Request{}, nil, err
	}

	alternate := s.firstClearAlternate(home, aircraftID)
	req := landing.Request{
		RunwayClear:              s.runwayClear(primary, aircraftID),
		AlternateRunwayAvailable: alternate != nil,
		PlaneSpeed:               ac.Speed,
		Emergency:                ac.Emergency,
		WindSpeed:                s.Weather.WindSpeed,
		Visibility:               s.Weather.Visibility,
		AirportTraffic:           s.ArrivalQueue(aircraftID),
		PriorityStatus:           ac.Priority,
	}

	rwy := primary
	if !req.RunwayClear && alternate != nil {
		rwy = alternate
	}
	return req, rwy, nil
}

// RequestLanding decides a clearance for aircraftID. Cleared aircraft are put
// on final to the primary runway when it is clear, otherwise to the first
// clear alternate; an emergency with no clear runway takes the primary.
// Refused aircraft enter the hold.
func (s *Simulation) RequestLanding(aircraftID types.AircraftID) (landing.Decision, error) {
	req, rwy, err := s.landingRequest(aircraftID)
	if err != nil {
		return landing.Decision{}, err
	}
	ac := s.Aircrafts[aircraftID]

	d := s.engine.Evaluate(req)
	record := &LandingRecord{Callsign: aircraftID, Decision: d, GameTimeSeconds: s.GameTimeSeconds}

	if d.Allowed() {
		record.Runway = rwy.Name
		ac.ClearToLand(rwy.Name, rwy.ThresholdFix())
		s.AddRadioMessage(ac.ID, fmt.Sprintf("Runway %s, cleared to land. %s", rwy.Name, d.Message), ac.Emergency)
		log.Infof("LANDING: %s cleared runway %s (%s)", ac.ID, rwy.Name, d.Predicate)
	} else {
		ac.Hold()
		s.Denials++
		s.AddRadioMessage(ac.ID, "Unable, hold present position. "+d.Message, ac.Emergency)
		log.Warnf("LANDING: %s refused, holding (speed %.0f, traffic %d)", ac.ID, req.PlaneSpeed, req.AirportTraffic)
	}

	s.LastDecision = record
	return d, nil
}

func (s *Simulation) checkTouchdown(ac *aircraft.Aircraft) {
	rwy, ok := s.Airspace.FindRunway(ac.AssignedRunway)
	if !ok {
		log.Warnf("%s: assigned runway %q not found, going around", ac.ID, ac.AssignedRunway)
		ac.Hold()
		return
	}
	if ac.Position.DistanceTo(rwy.Threshold) < RUNWAY_CAPTURE_RADIUS {
		ac.Touchdown(s.cfg.RolloutSeconds)
		ac.Heading = rwy.Heading
		ac.TargetHeading = rwy.Heading
		log.Infof("TOUCHDOWN: %s runway %s", ac.ID, rwy.Name)
	}
}

func (s *Simulation) completeLanding(ac *aircraft.Aircraft) {
	s.AddRadioMessage(ac.ID, "Vacating runway "+ac.AssignedRunway+".", false)
	log.Printf("LANDED: %s vacated runway %s", ac.ID, ac.AssignedRunway)
	delete(s.Aircrafts, ac.ID)
	s.Landings++
}

// CloseRunway closes name and sends any aircraft on final to it around.
func (s *Simulation) CloseRunway(name string) error {
	rwy, ok := s.Airspace.FindRunway(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunwayNotFound, name)
	}
	rwy.Closed = true

	for _, ac := range s.Aircrafts {
		if ac.State == aircraft.APPROACH && ac.AssignedRunway == name {
			ac.Hold()
			s.AddRadioMessage(ac.ID, "Go around, runway "+name+" closed.", true)
		}
	}
	log.Infof("RUNWAY: %s closed", name)
	return nil
}

func (s *Simulation) OpenRunway(name string) error {
	rwy, ok := s.Airspace.FindRunway(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunwayNotFound, name)
	}
	rwy.Closed = false
	log.Infof("RUNWAY: %s open", name)
	return nil
}
