// Package math provides the 2D vector and box types shared by the search
// engine, the obstacle registry and the controllers.
package math

import "math"

// Vec2 is a point or direction in world coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Lerp interpolates between v and other. t is not clamped.
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{Lerp(v.X, other.X, t), Lerp(v.Y, other.Y, t)}
}

// Heading returns the angle of v in degrees, measured from the +X axis
// toward +Y (screen coordinates, Y down).
func (v Vec2) Heading() float64 {
	return ToDegrees(math.Atan2(v.Y, v.X))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RoundHalfUp rounds to the nearest integer, with halves going toward +Inf.
// Unlike math.Round, -0.5 rounds to 0, so cell boundaries are symmetric
// around the origin of the grid.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
