package navigation

import (
	"math"
	"strconv"
)

// FormatAngle renders "xxx.x°", 360 and 0 both give "0.0°"
func FormatAngle(a float64) string {
	return strconv.FormatFloat(NormalizeAngle(round1(NormalizeAngle(a))), 'f', 1, 64) + "°"
}

func FormatSpeed(s float64) string {
	return strconv.FormatFloat(round1(s), 'f', 1, 64) + " kts"
}

// DescribeDrift tells how far and which way the wind pushes the aircraft
func DescribeDrift(drift float64) string {
	side := "right"
	if drift < 0 {
		side = "left"
	}
	return strconv.FormatFloat(round1(math.Abs(drift)), 'f', 1, 64) + "° " + side
}
