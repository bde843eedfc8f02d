// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/clipgate/internal/log"
)

// StackConfig selects the ingress layers wrapped around every route.
type StackConfig struct {
	EnableCORS     bool
	AllowedOrigins []string

	EnableSecurityHeaders bool
	CSP                   string

	EnableMetrics  bool
	TracingService string // empty disables tracing
	EnableLogging  bool

	EnableRateLimit      bool
	RateLimitRequestsRPM int
}

// Layers returns the enabled middleware, outermost first. Recovery and request
// IDs are unconditional; the rate limiter runs last so rejected requests are
// still logged and measured.
func (cfg StackConfig) Layers() []func(http.Handler) http.Handler {
	layers := []func(http.Handler) http.Handler{Recoverer, RequestID}
	add := func(enabled bool, mw func(http.Handler) http.Handler) {
		if enabled {
			layers = append(layers, mw)
		}
	}
	add(cfg.EnableCORS, CORS(cfg.AllowedOrigins))
	add(cfg.EnableSecurityHeaders, SecurityHeaders(cfg.CSP))
	add(cfg.EnableMetrics, Metrics())
	if cfg.TracingService != "" {
		layers = append(layers, Tracing(cfg.TracingService))
	}
	add(cfg.EnableLogging, log.Middleware())
	if cfg.EnableRateLimit && cfg.RateLimitRequestsRPM > 0 {
		layers = append(layers, APIRateLimit(cfg.RateLimitRequestsRPM))
	}
	return layers
}

// NewRouter returns a chi router with cfg's layers installed.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(cfg.Layers()...)
	return r
}
