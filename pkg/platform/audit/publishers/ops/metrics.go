package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for ops audit tracking.
type Metrics struct {
	Tracked         *prometheus.CounterVec
	Sampled         prometheus.Counter
	PersistFailures prometheus.Counter
}

// NewMetrics creates the audit metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Tracked: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visacheck_audit_tracked_total",
			Help: "Total number of audit events successfully tracked",
		}, []string{"category"}),
		Sampled: factory.NewCounter(prometheus.CounterOpts{
			Name: "visacheck_audit_sampled_total",
			Help: "Total number of operational audit events dropped due to sampling",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "visacheck_audit_persist_failures_total",
			Help: "Total number of audit event persistence failures",
		}),
	}
}

func (m *Metrics) IncTracked(category string) {
	if m != nil {
		m.Tracked.WithLabelValues(category).Inc()
	}
}

func (m *Metrics) IncSampled() {
	if m != nil {
		m.Sampled.Inc()
	}
}

func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}
