package flightplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightPlan_Progress(t *testing.T) {
	fp := &FlightPlan{
		DestinationAirportID: "KSIM",
		Route: []FlightPlanSegment{
			{WaypointName: "APIPO", TargetAltitude: 10000, TargetSpeed: 250},
			{WaypointName: "CIPKA", TargetAltitude: 4000, TargetSpeed: 180},
		},
	}

	seg, ok := fp.Current()
	require.True(t, ok)
	assert.Equal(t, "APIPO", seg.WaypointName)

	fp.Advance()
	seg, ok = fp.Current()
	require.True(t, ok)
	assert.Equal(t, "CIPKA", seg.WaypointName)

	fp.Advance()
	assert.True(t, fp.Complete())
	_, ok = fp.Current()
	assert.False(t, ok)

	fp.Advance()
	assert.Equal(t, 2, fp.CurrentSegmentIndex)
	assert.True(t, fp.Arriving("KSIM"))
	assert.False(t, fp.Arriving("FILKA"))
}
