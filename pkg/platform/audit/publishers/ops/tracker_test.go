package ops

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visacheck/pkg/platform/audit"
	"visacheck/pkg/platform/audit/store/memory"
	"visacheck/pkg/requestcontext"
)

type failingSink struct{}

func (failingSink) Append(context.Context, audit.Event) error { return errors.New("disk full") }

func TestTracker_FillsTimestampAndRequestID(t *testing.T) {
	store := memory.NewInMemoryStore(10)
	tracker := NewTracker(store)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), now), "req-1")

	require.NoError(t, tracker.Emit(ctx, audit.NewEvent(audit.EventVisaStatusChecked)))

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, now, events[0].Timestamp)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
}

func TestTracker_SamplesOperationsOnly(t *testing.T) {
	store := memory.NewInMemoryStore(10)
	m := NewMetrics(prometheus.NewRegistry())
	tracker := NewTracker(store, WithSampler(NewSampler(0)), WithMetrics(m))
	ctx := context.Background()

	require.NoError(t, tracker.Emit(ctx, audit.NewEvent(audit.EventVisaStatusChecked)))
	require.NoError(t, tracker.Emit(ctx, audit.NewEvent(audit.EventVisaCheckRejected)))

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventVisaCheckRejected), events[0].Action)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sampled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Tracked.WithLabelValues("security")))
}

func TestTracker_InfersCategoryFromAction(t *testing.T) {
	store := memory.NewInMemoryStore(10)
	tracker := NewTracker(store)

	require.NoError(t, tracker.Emit(context.Background(), audit.Event{Action: string(audit.EventVisaCheckRejected)}))

	events, _ := store.ListAll(context.Background())
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}

func TestTracker_SinkFailure(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	tracker := NewTracker(failingSink{}, WithMetrics(m))

	err := tracker.Emit(context.Background(), audit.NewEvent(audit.EventVisaCheckRejected))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "visa_check_rejected")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	ev := audit.NewEvent(audit.EventVisaStatusChecked)
	ev.Decision = "valid"
	ev.SubjectIDHash = audit.HashSubject("281234567890")
	require.NoError(t, sink.Append(context.Background(), ev))

	out := buf.String()
	assert.Contains(t, out, `"action":"visa_status_checked"`)
	assert.Contains(t, out, `"decision":"valid"`)
	assert.NotContains(t, out, "281234567890")
}

func TestSampler(t *testing.T) {
	s := NewSampler(0.5)
	s.draw = func() float64 { return 0.49 }
	assert.True(t, s.ShouldSample())
	s.draw = func() float64 { return 0.5 }
	assert.False(t, s.ShouldSample())

	t.Run("rates are clamped", func(t *testing.T) {
		assert.True(t, NewSampler(2).ShouldSample())
		assert.False(t, NewSampler(-1).ShouldSample())
	})
}
