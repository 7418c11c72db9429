package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOk      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

type Collector struct {
	calculations    *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	windLookups     *prometheus.CounterVec
	validationError *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	m := &Collector{
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navigation_calculations_total",
				Help: "Navigation requests by outcome",
			},
			[]string{"transport", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navigation_request_duration_seconds",
				Help:    "Time spent answering a navigation request",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"transport"},
		),
		windLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wind_lookups_total",
				Help: "Forecast wind lookups by outcome",
			},
			[]string{"outcome"},
		),
		validationError: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navigation_validation_errors_total",
				Help: "Validation messages returned, by message",
			},
			[]string{"message"},
		),
	}

	reg.MustRegister(m.calculations, m.duration, m.windLookups, m.validationError)

	return m
}

func (m *Collector) RecordCalculation(transport, outcome string, duration time.Duration) {
	m.calculations.WithLabelValues(transport, outcome).Inc()
	m.duration.WithLabelValues(transport).Observe(duration.Seconds())
}

func (m *Collector) RecordValidation(errors []string) {
	for _, e := range errors {
		m.validationError.WithLabelValues(e).Inc()
	}
}

func (m *Collector) RecordWindLookup(outcome string) {
	m.windLookups.WithLabelValues(outcome).Inc()
}
