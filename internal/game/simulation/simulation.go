package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"atc-landing/internal/config"
	"atc-landing/internal/game/aircraft"
	"atc-landing/internal/game/airspace"
	"atc-landing/internal/game/conflict"
	"atc-landing/internal/game/flightplan"
	"atc-landing/internal/landing"
	"atc-landing/pkg/types"

	"github.com/labstack/gommon/log"
)

var (
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrRunwayNotFound   = errors.New("runway not found")
	ErrNotAirborne      = errors.New("aircraft is not airborne")
)

const (
	WAYPOINT_CAPTURE_RADIUS = 25.0 // px
	RUNWAY_CAPTURE_RADIUS   = 20.0 // px
	EXIT_CAPTURE_RADIUS     = 50.0 // px
	CONFLICT_HORIZON        = 60.0 // s
	CONFLICT_STEP           = 5.0  // s
	ARRIVAL_SHARE           = 0.5
)

type Weather struct {
	WindSpeed  float64
	Visibility float64
}

// LandingRecord is the last clearance decision, kept for the scope display.
type LandingRecord struct {
	Callsign        types.AircraftID
	Runway          string
	Decision        landing.Decision
	GameTimeSeconds float64
}

type Simulation struct {
	Aircrafts       map[types.AircraftID]*aircraft.Aircraft
	Airspace        *airspace.Airspace
	TickRate        float64
	TimeOfDay       time.Time
	GameTimeSeconds float64
	Weather         Weather

	HandOffs       int
	MissedHandoffs int
	Conflicts      int
	Landings       int
	Denials        int
	LastDecision   *LandingRecord

	RadioLog        []RadioMessage
	maxRadioLogSize int

	cfg            config.SimulationConfig
	engine         *landing.Engine
	sinceLastSpawn float64
	nextAircraftID int
	conflictPairs  map[[2]types.AircraftID]bool
}

func NewSimulation(cfg config.SimulationConfig, engine *landing.Engine) *Simulation {
	s := &Simulation{
		Aircrafts: make(map[types.AircraftID]*aircraft.Aircraft),
		Airspace:  airspace.NewAirspace(cfg.AirspaceWidth, cfg.AirspaceHeight),
		TickRate:  cfg.TickRate,
		TimeOfDay: time.Now(),
		Weather: Weather{
			WindSpeed:  cfg.Weather.WindSpeed,
			Visibility: cfg.Weather.Visibility,
		},

		maxRadioLogSize: 50,
		cfg:             cfg,
		engine:          engine,
		nextAircraftID:  100,
		conflictPairs:   make(map[[2]types.AircraftID]bool),
	}

	if cfg.InitialSpawn && cfg.MaxAircraft > 0 {
		s.SpawnRandomAircraft()
	}
	return s
}

func (s *Simulation) Update(dt float64) {
	s.GameTimeSeconds += dt
	s.TimeOfDay = s.TimeOfDay.Add(time.Duration(dt * float64(time.Second)))

	for _, ac := range s.Aircrafts {
		ac.Update(dt)
		ac.IsConflicting = false
		ac.ConflictPredicted = false

		switch ac.State {
		case aircraft.LANDED:
			if ac.RolloutComplete() {
				s.completeLanding(ac)
			}
			continue
		case aircraft.APPROACH:
			s.checkTouchdown(ac)
			continue
		case aircraft.HOLDING:
			continue
		}

		s.followFlightPlan(ac)

		if ac.FlightPlan == nil || !ac.FlightPlan.Complete() {
			continue
		}
		if ac.FlightPlan.Arriving(airspace.HOME_AIRPORT) {
			s.AddRadioMessage(ac.ID, "Approach, request landing.", ac.Emergency)
			if _, err := s.RequestLanding(ac.ID); err != nil {
				log.Warnf("LANDING: request from %s failed: %v", ac.ID, err)
			}
		} else if s.atExit(ac) {
			s.HandOffAircraft(ac.ID)
		}
		// Otherwise the plan is flown but the aircraft is not at an exit; it keeps flying straight.
	}
	s.CheckForConflicts()

	if len(s.Aircrafts) < s.cfg.MaxAircraft {
		s.sinceLastSpawn += dt
		if s.sinceLastSpawn >= s.cfg.SpawnInterval.Seconds() {
			s.SpawnRandomAircraft()
			s.sinceLastSpawn = 0
		}
	}

	s.CleanupAircraft()
}

func (s *Simulation) atExit(ac *aircraft.Aircraft) bool {
	for _, exitWpName := range s.Airspace.ExitWaypoints {
		if exitWp, ok := s.Airspace.Waypoints[exitWpName]; ok {
			if ac.Position.DistanceTo(exitWp.Position) < EXIT_CAPTURE_RADIUS {
				return true
			}
		}
	}
	return false
}

func (s *Simulation) followFlightPlan(ac *aircraft.Aircraft) {
	fp := ac.FlightPlan
	if fp == nil || ac.OnVectors {
		return
	}

	seg, ok := fp.Current()
	if !ok {
		return
	}
	wp, ok := s.Airspace.Waypoints[seg.WaypointName]
	if !ok {
		log.Warnf("%s: waypoint %s not in airspace, skipping", ac.ID, seg.WaypointName)
		fp.Advance()
		return
	}

	if ac.Position.DistanceTo(wp.Position) < WAYPOINT_CAPTURE_RADIUS {
		fp.Advance()
		return
	}
	if ac.DirectToWaypoint == nil || ac.DirectToWaypoint.Name != wp.Name {
		ac.SetDirectTo(wp)
		ac.SetAltitude(seg.TargetAltitude)
		ac.SetSpeed(seg.TargetSpeed)
	}
}

func (s *Simulation) HandOffAircraft(aircraftID types.AircraftID) {
	if ac, ok := s.Aircrafts[aircraftID]; ok {
		s.AddRadioMessage(ac.ID, "Good day, contact next controller.", false)
		log.Printf("HANDOFF: Aircraft %s successfully handed off.", ac.ID)
		delete(s.Aircrafts, aircraftID)
		s.HandOffs++
	}
}

func (s *Simulation) AddAircraft(ac *aircraft.Aircraft) {
	s.Aircrafts[ac.ID] = ac
}

func (s *Simulation) randomFloatInRange(minF, maxF float64) float64 {
	return minF + rand.Float64()*(maxF-minF)
}

func (s *Simulation) SpawnRandomAircraft() *aircraft.Aircraft {
	maxX, maxY := s.cfg.AirspaceWidth, s.cfg.AirspaceHeight
	minX, minY := 10.0, 10.0

	acID := types.AircraftID(fmt.Sprintf("%s%03d", getRandomAirlinePrefix(), s.nextAircraftID))
	s.nextAircraftID++
	targetAlt := (float64(rand.Intn(20)) + 10) * 1000.0 // 10,000 to 30,000 ft
	startSpeed := 200.0 + rand.Float64()*100.0          // 200-300 knots

	var startPos types.Vec2
	switch rand.Intn(4) {
	case 0: // Top
		startPos = types.NewVec2(s.randomFloatInRange(minX, maxX), minY)
	case 1: // Right
		startPos = types.NewVec2(maxX, s.randomFloatInRange(minY, maxY))
	case 2: // Bottom
		startPos = types.NewVec2(s.randomFloatInRange(minX, maxX), maxY)
	default: // Left
		startPos = types.NewVec2(minX, s.randomFloatInRange(minY, maxY))
	}

	initialHeading := s.randomFloatInRange(0.0, 360.0)
	var entryWpName string
	if len(s.Airspace.EntryWaypoints) == 0 {
		log.Warn("No entry waypoints defined, spawning at generic location")
	} else {
		entryWpName = s.Airspace.EntryWaypoints[rand.Intn(len(s.Airspace.EntryWaypoints))]
		if entryWp, ok := s.Airspace.Waypoints[entryWpName]; ok {
			initialHeading = startPos.HeadingTo(entryWp.Position)
		}
	}

	arriving := rand.Float64() < ARRIVAL_SHARE
	destination := airspace.HOME_AIRPORT
	if !arriving {
		destination = s.pickExit(entryWpName)
	}

	route := []flightplan.FlightPlanSegment{{
		WaypointName:   entryWpName,
		TargetAltitude: targetAlt,
		TargetSpeed:    startSpeed,
	}}
	route = append(route, s.randomSegments(targetAlt, startSpeed, entryWpName, destination)...)
	if arriving {
		// Arrivals descend through the route and call in once it is flown.
		for i := range route[1:] {
			route[i+1].TargetAltitude = 4000
			route[i+1].TargetSpeed = aircraft.APPROACH_SPEED
		}
	} else if destination != "" {
		route = append(route, flightplan.FlightPlanSegment{
			WaypointName:   destination,
			TargetAltitude: targetAlt * (rand.Float64()/2 + 0.75),
			TargetSpeed:    startSpeed * (rand.Float64()/2 + 0.75),
		})
	}

	plan := &flightplan.FlightPlan{
		OriginAirportID:      "RANDOM",
		DestinationAirportID: destination,
		Callsign:             acID,
		Route:                route,
	}

	ac := aircraft.NewAircraft(acID, startPos, initialHeading, startSpeed, targetAlt, aircraft.CRUISE, plan)
	ac.Priority = rand.Float64() < s.cfg.PriorityChance
	ac.Emergency = rand.Float64() < s.cfg.EmergencyChance
	s.AddAircraft(ac)

	if ac.Emergency {
		s.AddRadioMessage(ac.ID, "Mayday, mayday, mayday.", true)
	}
	log.Printf("Spawned aircraft %s (Filed for %s) at %v, heading %.0f, speed %.0f, altitude %.0f", ac.ID, destination, ac.Position, ac.Heading, ac.Speed, ac.Altitude)
	return ac
}

// pickExit chooses an exit other than the entry fix when one exists.
func (s *Simulation) pickExit(entryWpName string) string {
	exits := s.Airspace.ExitWaypoints
	if len(exits) == 0 {
		log.Warn("No exit waypoints defined, aircraft will have no clear destination.")
		return ""
	}
	candidates := make([]string, 0, len(exits))
	for _, name := range exits {
		if name != entryWpName {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return exits[rand.Intn(len(exits))]
	}
	return candidates[rand.Intn(len(candidates))]
}

// randomSegments picks up to two intermediate fixes, never repeating the
// entry or exit fix.
func (s *Simulation) randomSegments(targetAlt, startSpeed float64, entryWpName, exitWpName string) []flightplan.FlightPlanSegment {
	waypointNames := make([]string, 0, len(s.Airspace.Waypoints))
	for k := range s.Airspace.Waypoints {
		waypointNames = append(waypointNames, k)
	}
	if len(waypointNames) == 0 {
		return nil
	}

	segments := make([]flightplan.FlightPlanSegment, 0, 2)
	added := make([]string, 0, 2)
	for retries := 8; len(segments) < 2 && retries > 0; {
		wpName := waypointNames[rand.Intn(len(waypointNames))]
		if wpName == entryWpName || wpName == exitWpName || slices.Contains(added, wpName) {
			retries--
			continue
		}
		segments = append(segments, flightplan.FlightPlanSegment{
			WaypointName:   wpName,
			TargetAltitude: targetAlt * (rand.Float64()/2 + 0.75),
			TargetSpeed:    startSpeed * (rand.Float64()/2 + 0.75),
		})
		added = append(added, wpName)
	}
	return segments
}

func getRandomAirlinePrefix() string {
	prefixes := []string{"AAL", "SWA", "DAL", "UAL", "JBU", "ASA", "FFT", "AI", "JAL"}
	return prefixes[rand.Intn(len(prefixes))]
}

func pairKey(a, b types.AircraftID) [2]types.AircraftID {
	if a > b {
		a, b = b, a
	}
	return [2]types.AircraftID{a, b}
}

func (s *Simulation) CheckForConflicts() {
	aircraftSlice := make([]*aircraft.Aircraft, 0, len(s.Aircrafts))
	for _, ac := range s.Aircrafts {
		aircraftSlice = append(aircraftSlice, ac)
	}

	active := make(map[[2]types.AircraftID]bool)
	for i := 0; i < len(aircraftSlice); i++ {
		for j := i + 1; j < len(aircraftSlice); j++ {
			ac1 := aircraftSlice[i]
			ac2 := aircraftSlice[j]

			if conflict.CheckSeparation(ac1, ac2) {
				key := pairKey(ac1.ID, ac2.ID)
				active[key] = true
				if !s.conflictPairs[key] {
					log.Warnf("CONFLICT: %s and %s", ac1.ID, ac2.ID)
					s.Conflicts++
				}
				ac1.IsConflicting = true
				ac2.IsConflicting = true
				continue
			}

			if conflict.PredictConflict(ac1, ac2, CONFLICT_HORIZON, CONFLICT_STEP).Conflict {
				ac1.ConflictPredicted = true
				ac2.ConflictPredicted = true
			}
		}
	}
	s.conflictPairs = active
}

func (s *Simulation) CleanupAircraft() {
	minX, maxX := -50.0, s.cfg.AirspaceWidth+50 // Slightly outside screen
	minY, maxY := -50.0, s.cfg.AirspaceHeight+50

	for id, ac := range s.Aircrafts {
		if ac.Position.X >= minX && ac.Position.X <= maxX && ac.Position.Y >= minY && ac.Position.Y <= maxY {
			continue
		}

		// Any exit without a handoff is counted as missed.
		if ac.FlightPlan != nil && !ac.FlightPlan.Complete() {
			log.Warnf("MISSED HANDOFF: Aircraft %s left airspace without proper handoff!", id)
			s.MissedHandoffs++
		} else {
			log.Printf("Aircraft %s left airspace and removed.", id)
		}
		delete(s.Aircrafts, id)
	}
}

func (s *Simulation) aircraftByID(aircraftID types.AircraftID) (*aircraft.Aircraft, error) {
	if ac, ok := s.Aircrafts[aircraftID]; ok {
		return ac, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAircraftNotFound, aircraftID)
}

func (s *Simulation) IssueHeading(aircraftID types.AircraftID, heading float64) error {
	ac, err := s.aircraftByID(aircraftID)
	if err != nil {
		return err
	}
	ac.SetHeading(heading)
	return nil
}

func (s *Simulation) IssueAltitude(aircraftID types.AircraftID, altitude float64) error {
	ac, err := s.aircraftByID(aircraftID)
	if err != nil {
		return err
	}
	ac.SetAltitude(altitude)
	return nil
}

func (s *Simulation) IssueSpeed(aircraftID types.AircraftID, speed float64) error {
	ac, err := s.aircraftByID(aircraftID)
	if err != nil {
		return err
	}
	ac.SetSpeed(speed)
	return nil
}

func (s *Simulation) IssueDirectTo(aircraftID types.AircraftID, wp *types.Waypoint) error {
	ac, err := s.aircraftByID(aircraftID)
	if err != nil {
		return err
	}
	ac.SetDirectTo(wp)
	return nil
}

func (s *Simulation) SetPriority(aircraftID types.AircraftID, priority bool) error {
	ac, err := s.aircraftByID(aircraftID)
	if err != nil {
		return err
	}
	ac.Priority = priority
	return nil
}

func (s *Simulation) DeclareEmergency(aircraftID types.AircraftID) error {
	ac, err := s.aircraftByID(aircraftID)
	if err != nil {
		return err
	}
	ac.Emergency = true
	s.AddRadioMessage(ac.ID, "Mayday, mayday, mayday.", true)
	return nil
}

func (s *Simulation) SetWeather(windSpeed, visibility float64) {
	s.Weather = Weather{WindSpeed: windSpeed, Visibility: visibility}
	log.Infof("WEATHER: wind %.0f kt, visibility %.0f m", windSpeed, visibility)
}

func (s *Simulation) Waypoint(name string) (*types.Waypoint, bool) {
	wp, ok := s.Airspace.Waypoints[name]
	return wp, ok
}
