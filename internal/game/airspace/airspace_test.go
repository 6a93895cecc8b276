package airspace

import (
	"testing"

	"atc-landing/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAirspace_HomeAirport(t *testing.T) {
	ap := NewAirspace(1000, 800)

	home := ap.HomeAirport()
	require.NotNil(t, home)
	assert.Equal(t, types.NewVec2(500, 400), home.Position)

	primary := home.PrimaryRunway()
	require.NotNil(t, primary)
	assert.Equal(t, "09L", primary.Name)
	assert.Equal(t, HOME_AIRPORT, primary.AirportID)

	alts := home.Alternates()
	require.Len(t, alts, 1)
	assert.Equal(t, "09R", alts[0].Name)

	assert.InDelta(t, 100.0, ap.Waypoints["APIPO"].Position.X, 1e-9)
}

func TestAddAirport_RunwaysAreDistinct(t *testing.T) {
	ap := NewAirspace(1000, 800)
	ap.AddAirport("KTWO", "Two", types.NewVec2(0, 0), []Runway{{Name: "18"}, {Name: "36"}, {Name: "27"}})

	two := ap.Airports["KTWO"]
	assert.Equal(t, []string{"18", "36", "27"}, two.RunwayOrder)
	assert.NotSame(t, two.Runways["18"], two.Runways["36"])
	assert.Len(t, two.Alternates(), 2)

	rwy, ok := ap.FindRunway("36")
	require.True(t, ok)
	assert.Equal(t, "KTWO", rwy.AirportID)

	_, ok = ap.FindRunway("04")
	assert.False(t, ok)

	assert.Equal(t, "RW36", rwy.ThresholdFix().Name)

	empty := &Airport{}
	assert.Nil(t, empty.PrimaryRunway())
	assert.Nil(t, empty.Alternates())
}
