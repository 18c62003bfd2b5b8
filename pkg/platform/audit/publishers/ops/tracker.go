// Package ops publishes audit events with sampling. Operational events may be
// dropped by the sampler; security events are always kept.
package ops

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"visacheck/pkg/platform/audit"
	"visacheck/pkg/requestcontext"
)

// Sink persists tracked events.
type Sink interface {
	Append(ctx context.Context, event audit.Event) error
}

// Tracker is the audit publisher used by services.
type Tracker struct {
	sink    Sink
	sampler *Sampler
	metrics *Metrics
}

type Option func(*Tracker)

func WithSampler(s *Sampler) Option {
	return func(t *Tracker) { t.sampler = s }
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// NewTracker creates a Tracker writing to sink. Without a sampler every
// event is kept.
func NewTracker(sink Sink, opts ...Option) *Tracker {
	t := &Tracker{sink: sink, sampler: NewSampler(1)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Emit records event. A sampled-out event returns nil. The timestamp and
// request ID are filled from ctx when empty.
func (t *Tracker) Emit(ctx context.Context, event audit.Event) error {
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.Category == audit.CategoryOperations && !t.sampler.ShouldSample() {
		t.metrics.IncSampled()
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if err := t.sink.Append(ctx, event); err != nil {
		t.metrics.IncPersistFailures()
		return fmt.Errorf("append audit event %s: %w", event.Action, err)
	}
	t.metrics.IncTracked(string(event.Category))
	return nil
}

// LogSink writes audit events as structured log records.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, "audit",
		"category", string(event.Category),
		"action", event.Action,
		"decision", event.Decision,
		"reason", event.Reason,
		"request_id", event.RequestID,
		"ip", event.IP,
		"subject_id_hash", event.SubjectIDHash,
		"timestamp", event.Timestamp.Format(time.RFC3339),
	)
	return nil
}
