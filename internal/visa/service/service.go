// Package service orchestrates a visa check: identifier validation, window
// evaluation and the observability around them.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"visacheck/internal/visa/domain/evaluation"
	"visacheck/internal/visa/domain/identity"
	"visacheck/internal/visa/domain/shared"
	"visacheck/internal/visa/metrics"
	"visacheck/internal/visa/ports"
	dErrors "visacheck/pkg/domain-errors"
	"visacheck/pkg/platform/audit"
	"visacheck/pkg/requestcontext"
)

var errIncompleteWindow = errors.New("issue_date and expiry_date must be supplied together")

const (
	reasonUnknownCategory = "unknown_category"
	reasonInvalidWindow   = "invalid_window"
)

// Service performs visa checks. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditor   ports.AuditPort
	random    evaluation.RandomSource
	location  *time.Location
	regulated bool
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditor(a ports.AuditPort) Option {
	return func(s *Service) { s.auditor = a }
}

// WithRandom replaces the source used to synthesize demo windows. A nil
// source keeps the default.
func WithRandom(r evaluation.RandomSource) Option {
	return func(s *Service) {
		if r != nil {
			s.random = r
		}
	}
}

// WithLocation sets the zone whose calendar date is the reference date.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// WithRegulatedMode masks identifiers echoed on records.
func WithRegulatedMode(enabled bool) Option {
	return func(s *Service) { s.regulated = enabled }
}

func New(opts ...Option) *Service {
	s := &Service{
		logger:   slog.Default(),
		random:   SystemRandom{},
		location: time.UTC,
		tracer:   otel.Tracer("visacheck/internal/visa/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check validates the identifier and evaluates the visa as of the request
// date. Validation failures are returned as CodeValidation errors wrapping the
// identity sentinel.
func (s *Service) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	ctx, span := s.tracer.Start(ctx, "visa.Check",
		trace.WithAttributes(
			attribute.String("visa.identifier_kind", string(req.Identifier.Kind)),
			attribute.String("visa.category", string(req.Category)),
		))
	defer span.End()
	start := time.Now()

	if err := identity.Validate(req.Identifier); err != nil {
		reason := identity.Reason(err)
		s.reject(ctx, req, reason)
		span.SetStatus(codes.Error, reason)
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "identifier rejected")
	}

	category := req.Category
	if category == "" {
		category = shared.CategoryWork
	}
	if !category.IsValid() {
		s.reject(ctx, req, reasonUnknownCategory)
		span.SetStatus(codes.Error, reasonUnknownCategory)
		return nil, dErrors.Wrap(shared.ErrUnknownCategory, dErrors.CodeValidation, "visa type rejected")
	}

	window, err := explicitWindow(req)
	if err != nil {
		s.reject(ctx, req, reasonInvalidWindow)
		span.SetStatus(codes.Error, reasonInvalidWindow)
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "validity window rejected")
	}

	checkedAt := requestcontext.Now(ctx)
	reference := shared.DateOf(checkedAt.In(s.location))
	holder := evaluation.HolderFor(req.Identifier, s.regulated)
	record := evaluation.Evaluate(category, reference, window, s.random, holder)

	span.SetAttributes(
		attribute.String("visa.status", string(record.Status)),
		attribute.Int("visa.days_remaining", record.DaysRemaining),
		attribute.Bool("visa.synthesized", record.Synthesized),
	)
	s.metrics.IncrementCheck(string(record.Status), string(category), record.Synthesized)
	s.metrics.ObserveCheckLatency(time.Since(start))

	ev := audit.NewEvent(audit.EventVisaStatusChecked)
	ev.Decision = string(record.Status)
	ev.SubjectIDHash = audit.HashSubject(req.Identifier.Value)
	ev.IP = requestcontext.ClientIP(ctx)
	s.emit(ctx, ev)

	s.logger.InfoContext(ctx, "visa checked",
		"request_id", requestcontext.RequestID(ctx),
		"identifier_kind", req.Identifier.Kind,
		"category", category,
		"status", record.Status,
		"days_remaining", record.DaysRemaining,
		"synthesized", record.Synthesized,
		"reference_date", reference.String(),
	)

	return &CheckResult{
		Record:        record,
		Guidance:      evaluation.GuidanceFor(record.Status),
		ReferenceDate: reference,
		CheckedAt:     checkedAt,
	}, nil
}

// Reason returns the machine-readable cause of a Check validation error, or ""
// when err is not one.
func Reason(err error) string {
	if r := identity.Reason(err); r != "" {
		return r
	}
	switch {
	case errors.Is(err, shared.ErrUnknownCategory):
		return reasonUnknownCategory
	case errors.Is(err, evaluation.ErrInvertedWindow), errors.Is(err, errIncompleteWindow):
		return reasonInvalidWindow
	default:
		return ""
	}
}

func explicitWindow(req CheckRequest) (*evaluation.Window, error) {
	switch {
	case req.IssueDate == nil && req.ExpiryDate == nil:
		return nil, nil
	case req.IssueDate == nil || req.ExpiryDate == nil:
		return nil, errIncompleteWindow
	}
	w, err := evaluation.NewWindow(*req.IssueDate, *req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Service) reject(ctx context.Context, req CheckRequest, reason string) {
	s.metrics.IncrementValidationFailure(reason)

	ev := audit.NewEvent(audit.EventVisaCheckRejected)
	ev.Reason = reason
	ev.SubjectIDHash = audit.HashSubject(req.Identifier.Value)
	ev.IP = requestcontext.ClientIP(ctx)
	s.emit(ctx, ev)

	s.logger.InfoContext(ctx, "visa check rejected",
		"request_id", requestcontext.RequestID(ctx),
		"identifier_kind", req.Identifier.Kind,
		"reason", reason,
	)
}

// emit publishes best-effort: a failing auditor never fails the check.
func (s *Service) emit(ctx context.Context, ev audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", ev.Action,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
