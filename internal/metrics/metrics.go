// Package metrics holds the Prometheus collectors for filter invocations.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeConfiguration = "configuration"
	OutcomeCompile       = "compile"
	OutcomeEvaluation    = "evaluation"
	OutcomeUnknown       = "unknown"
)

// Metrics contains Prometheus metrics for the execution bridge.
// A nil *Metrics records nothing.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	results     prometheus.Counter
}

// New creates the collectors and registers them with reg. Collectors that are
// already registered with reg are reused, so several runners may share one
// registry.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		invocations: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jqrun_invocations_total",
				Help: "Total number of filter invocations by outcome",
			},
			[]string{"outcome"},
		)),

		duration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jqrun_invocation_duration_seconds",
				Help:    "Duration of filter invocations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
			},
			[]string{"outcome"},
		)),

		results: register(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "jqrun_results_total",
				Help: "Total number of results produced by successful invocations",
			},
		)),
	}
}

// Observe records one finished invocation.
func (m *Metrics) Observe(outcome string, elapsed time.Duration, results int) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if results > 0 {
		m.results.Add(float64(results))
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
