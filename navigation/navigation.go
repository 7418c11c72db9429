// Package navigation solves the wind triangle: from the wind and the wanted
// track and true airspeed it gives the heading to fly, the drift angle and
// the ground speed.
package navigation

import "math"

type WindData struct {
	// Direction the wind blows from, degrees
	Direction float64 `json:"direction"`
	// Speed in knots
	Speed float64 `json:"speed"`
}

type FlightData struct {
	// Track is the wanted path over the ground, degrees
	Track float64 `json:"track"`
	// TrueAirspeed in knots
	TrueAirspeed float64 `json:"trueAirspeed"`
}

type Result struct {
	Heading float64 `json:"heading"`
	// DriftAngle is positive for a right drift
	DriftAngle  float64 `json:"driftAngle"`
	GroundSpeed float64 `json:"groundSpeed"`
}

type components struct {
	// headwind is positive when the wind blows along the track, so it adds
	// to the ground speed
	headwind float64
	// crosswind is positive when the wind pushes right of the track
	crosswind float64
}

func resolveWind(w WindData, track float64) components {
	toward := NormalizeAngle(w.Direction + 180)
	α := ToRadians(toward - track)

	return components{
		headwind:  w.Speed * math.Cos(α),
		crosswind: w.Speed * math.Sin(α),
	}
}

// Calculate does not check its inputs. When the crosswind is stronger than
// the true airspeed every field of the result is NaN; call ValidateInputs
// first.
func Calculate(w WindData, f FlightData) Result {
	c := resolveWind(w, f.Track)

	driftRad := math.Asin(c.crosswind / f.TrueAirspeed)
	drift := ToDegrees(driftRad)

	heading := NormalizeAngle(f.Track - drift)

	tas := f.TrueAirspeed
	x := tas*math.Cos(driftRad) + c.headwind
	y := tas * math.Sin(driftRad)
	groundSpeed := math.Sqrt(x*x + y*y)

	return Result{
		// 359.96 rounds to 360.0
		Heading:     NormalizeAngle(round1(heading)),
		DriftAngle:  round1(drift),
		GroundSpeed: round1(groundSpeed),
	}
}
