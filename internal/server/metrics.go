package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/san-kum/algoviz/internal/dispatch"
)

// Metrics records dispatch outcomes on a dedicated registry.
type Metrics struct {
	Registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
	steps      *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
	examples   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_dispatches_total",
				Help: "Dispatched operations by kind, operation and outcome",
			},
			[]string{"kind", "operation", "outcome"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algoviz_trace_steps",
				Help:    "Number of steps in generated traces",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "algoviz_dispatch_duration_seconds",
				Help:    "Time spent validating and generating a trace",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"kind"},
		),
		examples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_examples_total",
				Help: "Random examples generated by kind",
			},
			[]string{"kind"},
		),
	}
	m.Registry.MustRegister(
		m.dispatches, m.steps, m.duration, m.examples,
		collectors.NewGoCollector(),
	)
	return m
}

// Observe is a dispatch observer.
func (m *Metrics) Observe(e dispatch.Event) {
	kind := string(e.Kind)
	m.dispatches.WithLabelValues(kind, e.Op, e.Outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
	if e.Outcome == dispatch.OutcomeOK {
		m.steps.WithLabelValues(kind).Observe(float64(e.Steps))
	}
}
