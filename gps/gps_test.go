package gps

import (
	"errors"
	"testing"
)

func TestParseRMC(t *testing.T) {
	f, err := Parse("$GPRMC,220516,A,5133.82,N,00042.24,W,173.8,231.8,130694,004.2,W*70")
	if err != nil || f.Track != 231.8 || f.GroundSpeed != 173.8 {
		t.Errorf("Parse(RMC) = (%+v, %v); want ({231.8 173.8}, nil)", f, err)
	}
}

func TestParseRMCNoFix(t *testing.T) {
	_, err := Parse("$GPRMC,220516,V,5133.82,N,00042.24,W,173.8,231.8,130694,004.2,W*67")
	if !errors.Is(err, ErrInvalidFix) {
		t.Errorf("Parse(RMC void) error = %v; want %v", err, ErrInvalidFix)
	}
}

func TestParseVTG(t *testing.T) {
	f, err := Parse("$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K*48")
	if err != nil || f.Track != 54.7 || f.GroundSpeed != 5.5 {
		t.Errorf("Parse(VTG) = (%+v, %v); want ({54.7 5.5}, nil)", f, err)
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47")
	if !errors.Is(err, ErrUnsupportedSentence) {
		t.Errorf("Parse(GGA) error = %v; want %v", err, ErrUnsupportedSentence)
	}
}

func TestParseBadChecksum(t *testing.T) {
	if _, err := Parse("$GPVTG,054.7,T,034.4,M,005.5,N,010.2,K*00"); err == nil {
		t.Errorf("Parse(bad checksum) error = nil; want an error")
	}
}
