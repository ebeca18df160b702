package math

import "math"

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeDegrees wraps an angle into [-180, 180).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

// AngleDifference returns the signed shortest rotation from -> to, in degrees,
// within [-180, 180).
func AngleDifference(from, to float64) float64 {
	return NormalizeDegrees(to - from)
}
