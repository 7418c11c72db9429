package navigation

import "math"

const π = math.Pi

func ToRadians(a float64) float64 {
	return a * π / 180.0
}

func ToDegrees(a float64) float64 {
	return a * 180.0 / π
}

// NormalizeAngle wraps any angle into [0, 360)
func NormalizeAngle(a float64) float64 {
	d := math.Mod(a, 360.0)
	if d < 0 {
		d += 360.0
	}
	// -1e-14 + 360 rounds to 360
	if d >= 360.0 || d == 0 {
		return 0
	}
	return d
}

// round1 rounds half away from zero to one decimal, without negative zero
func round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
