package testutil

import (
	"net/http"
	"time"

	"visacheck/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock.
// This simulates what the request time middleware does for live requests.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestID adds a correlation ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
