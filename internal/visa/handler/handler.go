package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"visacheck/internal/visa/service"
	dErrors "visacheck/pkg/domain-errors"
	"visacheck/pkg/platform/httputil"
	"visacheck/pkg/requestcontext"
)

// Service defines the interface for visa check operations.
type Service interface {
	Check(ctx context.Context, req service.CheckRequest) (*service.CheckResult, error)
}

// Handler wires visa endpoints to the check service.
type Handler struct {
	service         Service
	logger          *slog.Logger
	checkMiddleware []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithCheckMiddleware wraps only the check endpoint, e.g. with a rate limit.
func WithCheckMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) { h.checkMiddleware = append(h.checkMiddleware, mw...) }
}

// New constructs a visa handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts visa endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.With(h.checkMiddleware...).Post("/visa/check", h.HandleCheck)
	r.Get("/visa/categories", h.HandleCategories)
	r.Get("/visa/countries", h.HandleCountries)
}

// HandleCheck handles POST /visa/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Check(ctx, req.Parsed())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			httputil.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:            string(dErrors.CodeValidation),
				ErrorDescription: err.Error(),
				Reason:           service.Reason(err),
			})
			return
		}
		h.logger.ErrorContext(ctx, "visa check failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "visa check served",
		"request_id", requestID,
		"device", requestcontext.Device(ctx),
		"status", result.Record.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleCategories handles GET /visa/categories.
func (h *Handler) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"categories": categoryOptions()})
}

// HandleCountries handles GET /visa/countries.
func (h *Handler) HandleCountries(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"countries": countryOptions()})
}
