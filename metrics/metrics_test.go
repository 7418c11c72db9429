package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCalculation(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())

	m.RecordCalculation("http", OutcomeOk, time.Millisecond)
	m.RecordCalculation("http", OutcomeOk, time.Millisecond)
	m.RecordCalculation("ws", OutcomeInvalid, time.Millisecond)

	if c := testutil.ToFloat64(m.calculations.WithLabelValues("http", OutcomeOk)); c != 2 {
		t.Errorf("calculations{http,ok} = %f; want 2", c)
	}
	if c := testutil.ToFloat64(m.calculations.WithLabelValues("ws", OutcomeInvalid)); c != 1 {
		t.Errorf("calculations{ws,invalid} = %f; want 1", c)
	}
}

func TestRecordValidation(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())

	m.RecordValidation([]string{"a", "b", "a"})

	if c := testutil.ToFloat64(m.validationError.WithLabelValues("a")); c != 2 {
		t.Errorf("validation{a} = %f; want 2", c)
	}
}

func TestRecordWindLookup(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())

	m.RecordWindLookup(OutcomeError)

	if c := testutil.ToFloat64(m.windLookups.WithLabelValues(OutcomeError)); c != 1 {
		t.Errorf("windLookups{error} = %f; want 1", c)
	}
}
