// Package gps reads the course over the ground out of NMEA sentences.
package gps

import (
	"errors"
	"fmt"

	nmea "github.com/adrianmo/go-nmea"
)

var (
	ErrUnsupportedSentence = errors.New("sentence carries no track")
	ErrInvalidFix          = errors.New("receiver reports no valid fix")
)

// Fix is what a single sentence tells about the motion over the ground
type Fix struct {
	Track       float64 `json:"track"`
	GroundSpeed float64 `json:"groundSpeed"`
}

// Parse accepts RMC and VTG sentences
func Parse(raw string) (Fix, error) {
	s, err := nmea.Parse(raw)
	if err != nil {
		return Fix{}, fmt.Errorf("parsing nmea sentence: %w", err)
	}

	switch m := s.(type) {
	case nmea.RMC:
		if m.Validity != nmea.ValidRMC {
			return Fix{}, ErrInvalidFix
		}
		return Fix{Track: m.Course, GroundSpeed: m.Speed}, nil
	case nmea.VTG:
		return Fix{Track: m.TrueTrack, GroundSpeed: m.GroundSpeedKnots}, nil
	}
	return Fix{}, fmt.Errorf("%w: %s", ErrUnsupportedSentence, s.DataType())
}
