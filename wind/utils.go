package wind

import (
	"math"

	"github.com/a-bouts/nav-calculator/navigation"
)

// MsToKnots converts the GRIB m/s into knots
const MsToKnots = 1.9438444924406

func floorMod(a float64, n float64) float64 {
	return a - n*math.Floor(a/n)
}

// vectorToDegrees gives the direction the (u, v) wind blows from
func vectorToDegrees(u float64, v float64) float64 {
	return navigation.NormalizeAngle(math.Atan2(u, v)*180/math.Pi + 180)
}

func toWindData(u float64, v float64) navigation.WindData {
	return navigation.WindData{
		Direction: vectorToDegrees(u, v),
		Speed:     math.Sqrt(u*u+v*v) * MsToKnots,
	}
}
