package navigation

import "math"

const (
	ErrWindDirection = "Wind direction must be between 0 and 360 degrees"
	ErrWindSpeed     = "Wind speed cannot be negative"
	ErrTrack         = "Track must be between 0 and 360 degrees"
	ErrTrueAirspeed  = "True airspeed must be greater than 0"
	ErrNotPossible   = "Crosswind component exceeds true airspeed - flight is not possible"
)

// ValidateInputs returns every problem found, in a stable order. A nil
// result means Calculate can be called.
func ValidateInputs(w WindData, f FlightData) []string {
	var errors []string

	if w.Direction < 0 || w.Direction > 360 {
		errors = append(errors, ErrWindDirection)
	}

	if w.Speed < 0 {
		errors = append(errors, ErrWindSpeed)
	}

	if f.Track < 0 || f.Track > 360 {
		errors = append(errors, ErrTrack)
	}

	if f.TrueAirspeed <= 0 {
		errors = append(errors, ErrTrueAirspeed)
	}

	c := resolveWind(w, f.Track)
	if math.Abs(c.crosswind) > f.TrueAirspeed {
		errors = append(errors, ErrNotPossible)
	}

	return errors
}
