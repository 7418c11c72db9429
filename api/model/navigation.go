package model

import (
	"time"

	"github.com/a-bouts/nav-calculator/latlon"
	"github.com/a-bouts/nav-calculator/navigation"
)

type Position struct {
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
	Time time.Time `json:"time"`
}

type Flight struct {
	Track        float64 `json:"track"`
	TrueAirspeed float64 `json:"trueAirspeed"`
	// Nmea is an RMC or VTG sentence, its course replaces Track
	Nmea string `json:"nmea,omitempty"`
	// Leg replaces Track with the initial great circle bearing
	Leg *Leg `json:"leg,omitempty"`
}

type Leg struct {
	From latlon.LatLon `json:"from"`
	To   latlon.LatLon `json:"to"`
}

type LegSummary struct {
	// Distance in nautical miles
	Distance float64 `json:"distance"`
	// Ete is the time en route in minutes at the computed ground speed,
	// absent when the aircraft makes no progress
	Ete *float64 `json:"ete,omitempty"`
}

// Navigation is a calculation request. Without Wind the forecast at
// Position is used.
type Navigation struct {
	Wind     *navigation.WindData `json:"wind,omitempty"`
	Flight   Flight               `json:"flight"`
	Position *Position            `json:"position,omitempty"`
	Notify   bool                 `json:"notify"`
}

type Display struct {
	Heading     string `json:"heading"`
	Drift       string `json:"drift"`
	GroundSpeed string `json:"groundSpeed"`
}

type Calculation struct {
	Wind   navigation.WindData   `json:"wind"`
	Flight navigation.FlightData `json:"flight"`
	Result navigation.Result     `json:"result"`
	Leg    *LegSummary           `json:"leg,omitempty"`
	// Display holds the values as shown to the pilot
	Display Display `json:"display"`
}

type Errors struct {
	Errors []string `json:"errors"`
}

type Defaults struct {
	Wind   navigation.WindData   `json:"wind"`
	Flight navigation.FlightData `json:"flight"`
}
