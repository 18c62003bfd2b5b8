package test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visacheck/internal/platform/logger"
	"visacheck/internal/platform/metrics"
	httptransport "visacheck/internal/transport/http"
	visahandler "visacheck/internal/visa/handler"
	visametrics "visacheck/internal/visa/metrics"
	"visacheck/internal/visa/service"
	"visacheck/pkg/platform/audit"
	"visacheck/pkg/platform/audit/publishers/ops"
	auditmemory "visacheck/pkg/platform/audit/store/memory"
	"visacheck/pkg/testutil"
)

// TestRouterScaffold wires the full router the way the server does and drives
// it end to end.
func TestRouterScaffold(t *testing.T) {
	log := logger.Discard()
	registry := metrics.NewRegistry()
	events := auditmemory.NewInMemoryStore(0)
	tracker := ops.NewTracker(events, ops.WithSampler(ops.NewSampler(1)))
	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(visametrics.New(registry)),
		service.WithAuditor(tracker),
	)
	router := httptransport.NewRouter(log, registry, visahandler.New(svc, log))

	testutil.Given(t, "the assembled router", func(t *testing.T) {
		testutil.When(t, "calling GET /healthz", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

			testutil.Then(t, "it reports ok", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				testutil.AssertJSONContains(t, rr, "status", "ok")
			})
		})

		testutil.When(t, "checking a civil ID", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/visa/check", map[string]string{"civil_id": "281234567890"})
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "a demo result is returned and audited", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

				body := testutil.UnmarshalResponse[visahandler.CheckResponse](t, rr)
				assert.Contains(t, []string{"valid", "expiring_soon", "expired"}, body.Status)
				assert.True(t, body.Demo)
				assert.GreaterOrEqual(t, body.DaysRemaining, 0)

				recorded, err := events.ListAll(context.Background())
				require.NoError(t, err)
				require.NotEmpty(t, recorded)
				last := recorded[len(recorded)-1]
				assert.Equal(t, string(audit.EventVisaStatusChecked), last.Action)
				assert.Equal(t, audit.HashSubject("281234567890"), last.SubjectIDHash)
				assert.NotEmpty(t, last.RequestID)
			})
		})

		testutil.When(t, "checking an eleven digit civil ID", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/visa/check", map[string]string{"civil_id": "28123456789"})
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it is rejected with a reason", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusBadRequest)
				testutil.AssertReason(t, rr, "invalid_national_id")
			})
		})

		testutil.When(t, "scraping GET /metrics", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))

			testutil.Then(t, "check counters are exposed", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				body := rr.Body.String()
				assert.True(t, strings.Contains(body, "visacheck_checks_total"), "metrics output: %s", body)
				assert.Contains(t, body, `visacheck_validation_failures_total{reason="invalid_national_id"} 1`)
			})
		})
	})
}
