package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for visa checks.
type Metrics struct {
	// Check outcomes by status, category and window source
	ChecksTotal *prometheus.CounterVec

	// Rejected identifiers by reason
	ValidationFailures *prometheus.CounterVec

	// Duration of a full check (validation + evaluation)
	CheckLatency prometheus.Histogram
}

// New creates the visa metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visacheck_checks_total",
			Help: "Total visa checks by resulting status, category and window source",
		}, []string{"status", "category", "source"}), // source: "synthesized", "supplied"

		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visacheck_validation_failures_total",
			Help: "Total rejected visa check requests by reason",
		}, []string{"reason"}),

		CheckLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "visacheck_check_duration_seconds",
			Help:    "Duration of visa checks",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),
	}
}

// IncrementCheck records a completed check.
func (m *Metrics) IncrementCheck(status, category string, synthesized bool) {
	if m == nil {
		return
	}
	source := "supplied"
	if synthesized {
		source = "synthesized"
	}
	m.ChecksTotal.WithLabelValues(status, category, source).Inc()
}

// IncrementValidationFailure records a rejected request.
func (m *Metrics) IncrementValidationFailure(reason string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(reason).Inc()
	}
}

// ObserveCheckLatency records the duration of one check.
func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}
