package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visacheck/pkg/requestcontext"
)

func serve(t *testing.T, inbound string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(Header, inbound)
	}
	rec := httptest.NewRecorder()
	Middleware(next).ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Run("generates a uuid when absent", func(t *testing.T) {
		seen, rec := serve(t, "")
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(Header))
	})

	t.Run("reuses the caller's id", func(t *testing.T) {
		seen, rec := serve(t, "trace-abc")
		assert.Equal(t, "trace-abc", seen)
		assert.Equal(t, "trace-abc", rec.Header().Get(Header))
	})

	t.Run("replaces oversized ids", func(t *testing.T) {
		seen, _ := serve(t, strings.Repeat("x", 500))
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
	})
}
