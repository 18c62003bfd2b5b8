package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RateLimitRejected prometheus.Counter
	RateLimitErrors   prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateLimitRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "visacheck_ratelimit_rejected_total",
			Help: "Total number of requests rejected by the per-IP rate limit",
		}),
		RateLimitErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "visacheck_ratelimit_errors_total",
			Help: "Total number of rate limit checks that failed open",
		}),
	}
}

func (m *Metrics) IncrementRejected() {
	if m != nil {
		m.RateLimitRejected.Inc()
	}
}

func (m *Metrics) IncrementErrors() {
	if m != nil {
		m.RateLimitErrors.Inc()
	}
}
