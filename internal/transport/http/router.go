package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"visacheck/internal/platform/metrics"
	"visacheck/pkg/platform/httputil"
	"visacheck/pkg/platform/middleware/metadata"
	"visacheck/pkg/platform/middleware/requestid"
	"visacheck/pkg/platform/middleware/requesttime"
	"visacheck/pkg/requestcontext"
)

// Registrar mounts a module's endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the shared middleware chain, the operational endpoints and
// every module handler. Handlers delegate to services without embedding
// business logic so transport concerns remain isolated.
func NewRouter(logger *slog.Logger, registry *prometheus.Registry, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	for _, m := range modules {
		m.Register(r)
	}
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			ctx := r.Context()
			logger.InfoContext(ctx, "http request",
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"ip", requestcontext.ClientIP(ctx),
				"device", requestcontext.Device(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
