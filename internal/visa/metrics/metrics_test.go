package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementCheck("valid", "work", true)
	m.IncrementCheck("valid", "work", true)
	m.IncrementCheck("expired", "visit", false)
	m.IncrementValidationFailure("invalid_national_id")
	m.ObserveCheckLatency(time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("valid", "work", "synthesized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("expired", "visit", "supplied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("invalid_national_id")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CheckLatency))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementCheck("valid", "work", true)
		m.IncrementValidationFailure("x")
		m.ObserveCheckLatency(time.Second)
	})
}
