// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute labels requests no route claimed, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// httpMetrics groups the ingress collectors so tests can register them on a private registry.
type httpMetrics struct {
	duration    *prometheus.HistogramVec
	inFlight    prometheus.Gauge
	size        *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	factory := promauto.With(reg)
	labels := []string{"method", "route", "status"}
	return &httpMetrics{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clipgate_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		}, labels),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clipgate_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		}),
		size: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clipgate_http_response_size_bytes",
			Help:    "HTTP response sizes in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		}, labels),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clipgate_http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		}, []string{"method"}),
	}
}

var defaultHTTPMetrics = newHTTPMetrics(prometheus.DefaultRegisterer)

// Metrics records latency, in-flight count and response size per chi route pattern.
func Metrics() func(http.Handler) http.Handler {
	return defaultHTTPMetrics.middleware
}

func (m *httpMetrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		labels := prometheus.Labels{
			"method": r.Method,
			"route":  routePattern(r),
			"status": strconv.Itoa(sw.status),
		}
		m.duration.With(labels).Observe(time.Since(start).Seconds())
		if sw.bytes > 0 {
			m.size.With(labels).Observe(float64(sw.bytes))
		}
	})
}

// routePattern returns the chi route pattern once routing has completed.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unmatchedRoute
}

// statusWriter remembers the first status code and counts body bytes.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
