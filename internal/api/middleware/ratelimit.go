// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/ManuGH/clipgate/internal/log"
)

const rateLimitedBody = `{"error":"Too many requests"}`

// RateLimit allows limit requests per window and client key; excess requests
// get 429 with a JSON body and Retry-After. Clients are keyed by remote IP
// unless keyFuncs are given.
func RateLimit(limit int, window time.Duration, keyFuncs ...httprate.KeyFunc) func(http.Handler) http.Handler {
	return defaultHTTPMetrics.rateLimit(limit, window, keyFuncs...)
}

// APIRateLimit limits each client IP to requestsPerMinute over a sliding minute.
func APIRateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return RateLimit(requestsPerMinute, time.Minute)
}

func (m *httpMetrics) rateLimit(limit int, window time.Duration, keyFuncs ...httprate.KeyFunc) func(http.Handler) http.Handler {
	if len(keyFuncs) == 0 {
		keyFuncs = []httprate.KeyFunc{httprate.KeyByIP}
	}
	retryAfter := strconv.Itoa(max(1, int(window.Seconds())))

	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(keyFuncs...),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			m.rateLimited.WithLabelValues(r.Method).Inc()
			log.FromContext(r.Context()).Warn().
				Str(log.FieldEvent, "request.rate_limited").
				Str(log.FieldRemoteAddr, r.RemoteAddr).
				Int("limit", limit).
				Dur("window", window).
				Msg("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", retryAfter)
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(rateLimitedBody))
		}),
	)
}
