package aircraft

import (
	"testing"

	"atc-landing/pkg/types"

	"github.com/stretchr/testify/assert"
)

func newTestAircraft() *Aircraft {
	return NewAircraft("AAL100", types.NewVec2(100, 100), 90, 200, 10000, CRUISE, nil)
}

func TestUpdate_ClimbsToTarget(t *testing.T) {
	ac := newTestAircraft()
	ac.SetAltitude(11000)
	assert.Equal(t, CLIMB, ac.State)

	for i := 0; i < 30; i++ {
		ac.Update(1)
	}
	assert.Equal(t, 11000.0, ac.Altitude)
	assert.Equal(t, CRUISE, ac.State)
	assert.Zero(t, ac.ClimbRate)
}

func TestUpdate_TurnsShortestWay(t *testing.T) {
	ac := newTestAircraft()
	ac.SetHeading(60)
	assert.True(t, ac.OnVectors)

	ac.Update(1)
	assert.InDelta(t, 87.0, ac.Heading, 1e-9)

	for i := 0; i < 20; i++ {
		ac.Update(1)
	}
	assert.InDelta(t, 60.0, ac.Heading, 1e-9)
}

func TestUpdate_MovesAlongHeading(t *testing.T) {
	ac := newTestAircraft()
	ac.Speed, ac.TargetSpeed = 360, 360

	ac.Update(10)
	// 360 kt = 0.1 NM/s = 1 px/s
	assert.InDelta(t, 110.0, ac.Position.X, 1e-6)
	assert.InDelta(t, 100.0, ac.Position.Y, 1e-6)
}

func TestClearToLand(t *testing.T) {
	ac := newTestAircraft()
	ac.Hold()
	assert.True(t, ac.Waiting())

	fix := &types.Waypoint{Name: "RW09L", Position: types.NewVec2(400, 100)}
	ac.ClearToLand("09L", fix)

	assert.Equal(t, APPROACH, ac.State)
	assert.Equal(t, "09L", ac.AssignedRunway)
	assert.Equal(t, APPROACH_SPEED, ac.TargetSpeed)
	assert.Zero(t, ac.TargetAltitude)
	assert.True(t, ac.Waiting())

	// Altitude changes on final keep the approach state.
	ac.SetAltitude(2000)
	assert.Equal(t, APPROACH, ac.State)
}

func TestHolding_Orbits(t *testing.T) {
	ac := newTestAircraft()
	ac.Hold()

	start := ac.Heading
	ac.Update(1)
	assert.InDelta(t, start+3, ac.Heading, 1e-9)
	assert.Nil(t, ac.DirectToWaypoint)
}

func TestTouchdownAndRollout(t *testing.T) {
	ac := newTestAircraft()
	ac.Speed = 130
	ac.Touchdown(3)

	assert.True(t, ac.OnGround())
	assert.False(t, ac.Waiting())
	assert.Zero(t, ac.Altitude)

	ac.Update(1)
	ac.Update(1)
	assert.False(t, ac.RolloutComplete())
	assert.InDelta(t, 120.0, ac.Speed, 1e-9)

	ac.Update(1)
	assert.True(t, ac.RolloutComplete())
}
