package entity

import "math"

// Direction constants for 8-way facing, clockwise from east. Y grows
// downward, so an angle of 90 degrees faces south.
const (
	DirE  = 0
	DirSE = 1
	DirS  = 2
	DirSW = 3
	DirW  = 4
	DirNW = 5
	DirN  = 6
	DirNE = 7
)

var directionNames = [8]string{"E", "SE", "S", "SW", "W", "NW", "N", "NE"}

// CalculateDirection converts an angle in degrees to a direction index.
func CalculateDirection(angle float64) int {
	// Each sector spans 45 degrees centered on its direction.
	sector := int(math.Floor((angle+22.5)/45)) % 8
	if sector < 0 {
		sector += 8
	}
	return sector
}

// DirectionName returns the compass name of a direction index.
func DirectionName(dir int) string {
	if dir < 0 || dir >= len(directionNames) {
		return "?"
	}
	return directionNames[dir]
}

// Facing returns the compass name of the object's current angle.
func (o *Object) Facing() string {
	return DirectionName(CalculateDirection(o.Angle))
}
