package navigation

import (
	"math"
	"testing"
)

func contains(errors []string, msg string) bool {
	for _, e := range errors {
		if e == msg {
			return true
		}
	}
	return false
}

func TestValidateInputsValid(t *testing.T) {
	errors := ValidateInputs(WindData{Direction: 270, Speed: 20}, FlightData{Track: 90, TrueAirspeed: 120})
	if len(errors) != 0 {
		t.Errorf("ValidateInputs(270/20, 90/120) = %v; want none", errors)
	}

	// bounds are inclusive
	errors = ValidateInputs(WindData{Direction: 360, Speed: 0}, FlightData{Track: 0, TrueAirspeed: 1})
	if len(errors) != 0 {
		t.Errorf("ValidateInputs(360/0, 0/1) = %v; want none", errors)
	}
}

func TestValidateInputsReportsAll(t *testing.T) {
	errors := ValidateInputs(WindData{Direction: -10, Speed: -5}, FlightData{Track: 90, TrueAirspeed: 120})
	if len(errors) != 2 {
		t.Fatalf("ValidateInputs(-10/-5, 90/120) = %v; want 2 errors", errors)
	}
	if errors[0] != ErrWindDirection || errors[1] != ErrWindSpeed {
		t.Errorf("ValidateInputs(-10/-5, 90/120) = %v; want [%s %s]", errors, ErrWindDirection, ErrWindSpeed)
	}
}

func TestValidateInputsOrder(t *testing.T) {
	errors := ValidateInputs(WindData{Direction: 361, Speed: -1}, FlightData{Track: -0.1, TrueAirspeed: 0})
	want := []string{ErrWindDirection, ErrWindSpeed, ErrTrack, ErrTrueAirspeed, ErrNotPossible}
	if len(errors) != len(want) {
		t.Fatalf("ValidateInputs(361/-1, -0.1/0) = %v; want %v", errors, want)
	}
	for i := range want {
		if errors[i] != want[i] {
			t.Errorf("ValidateInputs(361/-1, -0.1/0)[%d] = %s; want %s", i, errors[i], want[i])
		}
	}
}

func TestValidateInputsTrack(t *testing.T) {
	errors := ValidateInputs(WindData{Direction: 90, Speed: 0}, FlightData{Track: 360.5, TrueAirspeed: 100})
	if len(errors) != 1 || errors[0] != ErrTrack {
		t.Errorf("ValidateInputs(90/0, 360.5/100) = %v; want [%s]", errors, ErrTrack)
	}

	// no airspeed at all also fails the crosswind check
	errors = ValidateInputs(WindData{Direction: 90, Speed: 0}, FlightData{Track: 10, TrueAirspeed: -5})
	if len(errors) != 2 || errors[0] != ErrTrueAirspeed || errors[1] != ErrNotPossible {
		t.Errorf("ValidateInputs(90/0, 10/-5) = %v; want [%s %s]", errors, ErrTrueAirspeed, ErrNotPossible)
	}
}

func TestValidateInputsNotPossible(t *testing.T) {
	w := WindData{Direction: 0, Speed: 100}
	f := FlightData{Track: 90, TrueAirspeed: 50}

	errors := ValidateInputs(w, f)
	if len(errors) != 1 || errors[0] != ErrNotPossible {
		t.Errorf("ValidateInputs(0/100, 90/50) = %v; want [%s]", errors, ErrNotPossible)
	}
	if r := Calculate(w, f); !math.IsNaN(r.DriftAngle) {
		t.Errorf("Calculate(0/100, 90/50).DriftAngle = %f; want NaN", r.DriftAngle)
	}

	// a strong wind along the track is fine
	errors = ValidateInputs(WindData{Direction: 90, Speed: 100}, f)
	if contains(errors, ErrNotPossible) {
		t.Errorf("ValidateInputs(90/100, 90/50) = %v; want no %s", errors, ErrNotPossible)
	}
}

func TestValidatedInputsNeverGiveNaN(t *testing.T) {
	for dir := 0.0; dir <= 360; dir += 15 {
		for track := 0.0; track <= 360; track += 30 {
			w := WindData{Direction: dir, Speed: 60}
			f := FlightData{Track: track, TrueAirspeed: 60}
			if len(ValidateInputs(w, f)) > 0 {
				continue
			}
			r := Calculate(w, f)
			if math.IsNaN(r.Heading) || math.IsNaN(r.DriftAngle) || math.IsNaN(r.GroundSpeed) {
				t.Errorf("Calculate(%.0f/60, %.0f/60) = %+v; want no NaN", dir, track, r)
			}
			if r.Heading < 0 || r.Heading >= 360 || r.GroundSpeed < 0 {
				t.Errorf("Calculate(%.0f/60, %.0f/60) = %+v; out of range", dir, track, r)
			}
		}
	}
}
