package conflict

import (
	"math"

	"atc-landing/internal/game/aircraft"
	"atc-landing/pkg/types"
)

const (
	MIN_HORIZONTAL_SEPARATION = 5.0    // NM
	MIN_VERTICAL_SEPARATION   = 1000.0 // ft
)

// Prediction is the outcome of projecting two aircraft forward in time.
type Prediction struct {
	Conflict       bool
	TimeToConflict float64
	Point1         types.Vec2
	Point2         types.Vec2
}

func separated(pos1, pos2 types.Vec2, alt1, alt2 float64) bool {
	if math.Abs(alt1-alt2) >= MIN_VERTICAL_SEPARATION {
		return true
	}
	minDistPixels := MIN_HORIZONTAL_SEPARATION * types.NM_TO_PIXEL
	return pos1.DistanceTo(pos2) >= minDistPixels
}

// CheckSeparation reports a loss of separation between two airborne aircraft.
// Aircraft on the runway are handled by runway occupancy, not here.
func CheckSeparation(ac1, ac2 *aircraft.Aircraft) bool {
	if ac1.OnGround() || ac2.OnGround() {
		return false
	}
	return !separated(ac1.Position, ac2.Position, ac1.Altitude, ac2.Altitude)
}

func project(ac *aircraft.Aircraft, seconds float64) (types.Vec2, float64) {
	pixelsPerSec := ac.Speed / 3600.0 * types.NM_TO_PIXEL
	radians := ac.Heading * math.Pi / 180.0

	pos := types.NewVec2(
		ac.Position.X+pixelsPerSec*math.Sin(radians)*seconds,
		ac.Position.Y-pixelsPerSec*math.Cos(radians)*seconds, // Y-inverted
	)
	alt := ac.Altitude + ac.ClimbRate*seconds/60.0
	return pos, alt
}

// PredictConflict projects both aircraft linearly (no turns or level-offs)
// in step-second increments up to horizon seconds and returns the first
// projected loss of separation.
func PredictConflict(ac1, ac2 *aircraft.Aircraft, horizon, step float64) Prediction {
	if ac1.OnGround() || ac2.OnGround() || step <= 0 {
		return Prediction{}
	}

	for t := step; t <= horizon; t += step {
		pos1, alt1 := project(ac1, t)
		pos2, alt2 := project(ac2, t)
		if !separated(pos1, pos2, alt1, alt2) {
			return Prediction{Conflict: true, TimeToConflict: t, Point1: pos1, Point2: pos2}
		}
	}
	return Prediction{}
}
