package aircraft

import (
	"math"

	"atc-landing/internal/game/flightplan"
	"atc-landing/pkg/types"
)

type AircraftState int

const (
	CRUISE AircraftState = iota
	CLIMB
	DESCEND
	HOLDING
	APPROACH
	LANDED
	TAKING_OFF
)

var StateStringMap = map[AircraftState]string{
	CRUISE:     "CRUISE",
	CLIMB:      "CLIMB",
	DESCEND:    "DESCEND",
	HOLDING:    "HOLDING",
	APPROACH:   "APPROACH",
	LANDED:     "LANDED",
	TAKING_OFF: "TAKING_OFF",
}

const (
	APPROACH_SPEED       = 140.0
	APPROACH_ALTITUDE    = 0.0
	HOLDING_TURN_DEGREES = 90.0
	LANDED_DECEL_KTS     = 5.0 // per second during rollout
)

type Aircraft struct {
	ID        types.AircraftID
	Position  types.Vec2
	Altitude  float64
	Heading   float64
	Speed     float64
	ClimbRate float64

	TargetAltitude   float64
	TargetSpeed      float64
	TargetHeading    float64
	DirectToWaypoint *types.Waypoint
	OnVectors        bool // controller heading overrides the flight plan

	State AircraftState

	Priority       bool
	Emergency      bool
	AssignedRunway string
	RolloutLeft    float64

	MaxTurnRateDegPerSec        float64
	MaxClimbRateFPM             float64
	MaxDescentRateFPM           float64
	AccelerationRateKnotsPerSec float64

	IsConflicting     bool
	ConflictPredicted bool
	FlightPlan        *flightplan.FlightPlan
}

func NewAircraft(id types.AircraftID, pos types.Vec2, heading, speed, altitude float64, state AircraftState, plan *flightplan.FlightPlan) *Aircraft {
	return &Aircraft{
		ID:                          id,
		Position:                    pos,
		Altitude:                    altitude,
		Heading:                     heading,
		Speed:                       speed,
		ClimbRate:                   0,
		TargetAltitude:              altitude, // Initial target is current altitude
		TargetSpeed:                 speed,
		TargetHeading:               heading,
		State:                       state,
		MaxTurnRateDegPerSec:        3.0,
		MaxClimbRateFPM:             3000.0,
		MaxDescentRateFPM:           -2500.0,
		AccelerationRateKnotsPerSec: 10.0 / 60.0,
		FlightPlan:                  plan,
	}
}

func (ac *Aircraft) OnGround() bool {
	return ac.State == LANDED
}

// Waiting reports whether the aircraft sits in the arrival queue.
func (ac *Aircraft) Waiting() bool {
	return ac.State == HOLDING || ac.State == APPROACH
}

func (ac *Aircraft) Update(dt float64) {
	if ac.State == LANDED {
		ac.rollout(dt)
		return
	}

	ac.updateAltitude(dt)

	switch {
	case ac.State == HOLDING:
		// Standard rate orbit until cleared.
		ac.DirectToWaypoint = nil
		ac.TargetHeading = math.Mod(ac.Heading+HOLDING_TURN_DEGREES, 360)
	case ac.DirectToWaypoint != nil:
		targetBearing := ac.Position.HeadingTo(ac.DirectToWaypoint.Position)
		if ac.Position.DistanceTo(ac.DirectToWaypoint.Position) < 20 {
			ac.DirectToWaypoint = nil
			ac.TargetHeading = ac.Heading
		} else {
			ac.TargetHeading = targetBearing
		}
	}

	ac.updateHeading(dt)
	ac.updateSpeed(dt)
	ac.move(dt)
}

func (ac *Aircraft) updateAltitude(dt float64) {
	rateScale := dt / 60.0
	switch {
	case ac.Altitude < ac.TargetAltitude:
		ac.ClimbRate = math.Min(ac.MaxClimbRateFPM, (ac.TargetAltitude-ac.Altitude)/rateScale)
		ac.Altitude += ac.ClimbRate * rateScale
		if ac.Altitude >= ac.TargetAltitude {
			ac.Altitude = ac.TargetAltitude
			ac.ClimbRate = 0
			if ac.State == CLIMB {
				ac.State = CRUISE
			}
		}
	case ac.Altitude > ac.TargetAltitude:
		ac.ClimbRate = math.Max(ac.MaxDescentRateFPM, (ac.TargetAltitude-ac.Altitude)/rateScale)
		ac.Altitude += ac.ClimbRate * rateScale
		if ac.Altitude <= ac.TargetAltitude {
			ac.Altitude = ac.TargetAltitude
			ac.ClimbRate = 0
			if ac.State == DESCEND {
				ac.State = CRUISE
			}
		}
	default:
		ac.ClimbRate = 0
	}
}

func (ac *Aircraft) updateHeading(dt float64) {
	if ac.Heading == ac.TargetHeading {
		return
	}

	diff := math.Mod(ac.TargetHeading-ac.Heading+360, 360)
	turnAmount := ac.MaxTurnRateDegPerSec * dt
	if diff > 180 {
		diff = 360 - diff
		turnAmount = -turnAmount
	}

	if diff <= math.Abs(turnAmount) {
		ac.Heading = ac.TargetHeading
	} else {
		ac.Heading = math.Mod(ac.Heading+turnAmount+360, 360)
	}
}

func (ac *Aircraft) updateSpeed(dt float64) {
	if ac.Speed < ac.TargetSpeed {
		ac.Speed = math.Min(ac.Speed+ac.AccelerationRateKnotsPerSec*dt, ac.TargetSpeed)
	} else if ac.Speed > ac.TargetSpeed {
		ac.Speed = math.Max(ac.Speed-ac.AccelerationRateKnotsPerSec*dt, ac.TargetSpeed)
	}
}

func (ac *Aircraft) move(dt float64) {
	radians := ac.Heading * math.Pi / 180.0
	pixelsPerSec := ac.Speed / 3600.0 * types.NM_TO_PIXEL

	ac.Position.X += pixelsPerSec * math.Sin(radians) * dt
	ac.Position.Y -= pixelsPerSec * math.Cos(radians) * dt
}

func (ac *Aircraft) rollout(dt float64) {
	ac.RolloutLeft -= dt
	ac.Speed = math.Max(0, ac.Speed-LANDED_DECEL_KTS*dt)
	ac.TargetSpeed = ac.Speed
	ac.move(dt)
}

func (ac *Aircraft) SetHeading(h float64) {
	ac.TargetHeading = math.Mod(h+360, 360)
	ac.DirectToWaypoint = nil
	ac.OnVectors = true
}

func (ac *Aircraft) SetAltitude(alt float64) {
	ac.TargetAltitude = alt
	if ac.State == HOLDING || ac.State == APPROACH {
		return
	}
	if alt > ac.Altitude {
		ac.State = CLIMB
	} else if alt < ac.Altitude {
		ac.State = DESCEND
	} else {
		ac.State = CRUISE
	}
}

func (ac *Aircraft) SetSpeed(s float64) {
	ac.TargetSpeed = s
}

func (ac *Aircraft) SetDirectTo(wp *types.Waypoint) {
	ac.DirectToWaypoint = wp
	ac.OnVectors = false
}

// ClearToLand puts the aircraft on final for the runway whose threshold is fix.
func (ac *Aircraft) ClearToLand(runway string, fix *types.Waypoint) {
	ac.State = APPROACH
	ac.AssignedRunway = runway
	ac.DirectToWaypoint = fix
	ac.OnVectors = false
	ac.TargetAltitude = APPROACH_ALTITUDE
	ac.TargetSpeed = math.Min(ac.Speed, APPROACH_SPEED)
}

func (ac *Aircraft) Hold() {
	ac.State = HOLDING
	ac.AssignedRunway = ""
	ac.DirectToWaypoint = nil
}

// Touchdown starts the landing rollout on the assigned runway.
func (ac *Aircraft) Touchdown(rolloutSeconds float64) {
	ac.State = LANDED
	ac.Altitude = 0
	ac.TargetAltitude = 0
	ac.ClimbRate = 0
	ac.DirectToWaypoint = nil
	ac.RolloutLeft = rolloutSeconds
}

func (ac *Aircraft) RolloutComplete() bool {
	return ac.State == LANDED && ac.RolloutLeft <= 0
}
