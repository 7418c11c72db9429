package latlon

import (
	"errors"
	"math"

	"github.com/a-bouts/nav-calculator/navigation"
)

// R is the mean earth radius in meters
const R = 6371e3

const metersPerNm = 1852.0

var ErrInvalidPosition = errors.New("latitude must be within ±90° and longitude within ±180°")

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p LatLon) Valid() bool {
	return math.Abs(p.Lat) <= 90 && math.Abs(p.Lon) <= 180
}

func toRadians(a float64) float64 {
	return navigation.ToRadians(a)
}

func toDegrees(a float64) float64 {
	return navigation.ToDegrees(a)
}

func MetersToNm(d float64) float64 {
	return d / metersPerNm
}
