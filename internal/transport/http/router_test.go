package httptransport

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visacheck/internal/platform/metrics"
	"visacheck/internal/visa/handler"
	visametrics "visacheck/internal/visa/metrics"
	"visacheck/internal/visa/service"
	"visacheck/pkg/testutil"
)

type panicking struct{}

func (panicking) Register(r chi.Router) {
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
}

func newTestRouter(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	reg := metrics.NewRegistry()
	svc := service.New(service.WithLogger(logger), service.WithMetrics(visametrics.New(reg)))
	return NewRouter(logger, reg, handler.New(svc, logger), panicking{}), &logs
}

func TestRouter(t *testing.T) {
	router, logs := newTestRouter(t)

	testutil.Given(t, "a running router", func(t *testing.T) {
		testutil.When(t, "the health endpoint is called", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

			testutil.Then(t, "it reports ok with a request ID", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
			})
		})

		testutil.When(t, "a visa check is served", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/visa/check", map[string]string{"civil_id": "281234567890"})
			req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the check is counted on /metrics", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				metricsRR := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
				testutil.AssertStatusOK(t, metricsRR)
				assert.Contains(t, metricsRR.Body.String(), "visacheck_checks_total")
				assert.Contains(t, metricsRR.Body.String(), "go_goroutines")
			})

			testutil.Then(t, "the request log carries the device label", func(t *testing.T) {
				assert.Contains(t, logs.String(), `"path":"/visa/check"`)
				assert.Contains(t, logs.String(), `"device":"Chrome`)
			})
		})

		testutil.When(t, "a handler panics", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/boom"))

			testutil.Then(t, "the server recovers with a 500", func(t *testing.T) {
				require.Equal(t, http.StatusInternalServerError, rr.Code)
			})
		})

		testutil.When(t, "an unknown route is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/nope"))

			testutil.Then(t, "it is not found", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusNotFound)
			})
		})
	})
}
