package types

import "math"

// Pixels per nautical mile on the radar scope.
const NM_TO_PIXEL = 10.0

type AircraftID string

type Vec2 struct {
	X float64
	Y float64
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v1 Vec2) DistanceTo(v2 Vec2) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HeadingTo returns the compass bearing from v1 to v2, screen Y pointing down.
func (v1 Vec2) HeadingTo(v2 Vec2) float64 {
	bearing := math.Atan2(v2.X-v1.X, -(v2.Y-v1.Y)) * 180.0 / math.Pi
	return math.Mod(bearing+360, 360)
}

type Waypoint struct {
	Name     string
	Position Vec2
}
