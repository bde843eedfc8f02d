// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api implements the clipgate HTTP surface.
package api

import (
	"io"
	"io/fs"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/clipgate/internal/api/middleware"
	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/health"
	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/video"
)

// Server owns the router and the currently served video resource.
type Server struct {
	video         atomic.Pointer[video.Resource]
	healthManager *health.Manager
	stack         middleware.StackConfig
	handler       http.Handler

	// openVideo opens the resource for one request.
	openVideo func(video.Resource) (io.ReadCloser, fs.FileInfo, error)
}

func openResource(res video.Resource) (io.ReadCloser, fs.FileInfo, error) {
	f, info, err := res.Open()
	if err != nil {
		return nil, nil, err
	}
	return f, info, nil
}

// ServerOption customises a Server during construction.
type ServerOption func(*Server)

// WithHealthManager replaces the default health manager.
func WithHealthManager(m *health.Manager) ServerOption {
	return func(s *Server) {
		if m != nil {
			s.healthManager = m
		}
	}
}

// New creates and initializes a new HTTP API server.
func New(cfg config.AppConfig, opts ...ServerOption) *Server {
	res := video.NewResource(cfg.Video.Path, cfg.Video.MimeType)
	s := &Server{
		healthManager: health.NewManager(cfg.Version),
		stack:         stackConfig(cfg),
		openVideo:     openResource,
	}
	s.video.Store(&res)

	for _, opt := range opts {
		opt(s)
	}

	// A missing clip is reported on /readyz but never takes the service out of rotation.
	s.healthManager.RegisterChecker(health.Informational(
		health.NewFileChecker("video", func() string { return s.Video().Path }),
	))

	s.handler = s.routes()
	return s
}

func stackConfig(cfg config.AppConfig) middleware.StackConfig {
	sc := middleware.StackConfig{
		EnableCORS:            true,
		AllowedOrigins:        cfg.AllowedOrigins,
		EnableSecurityHeaders: true,
		EnableMetrics:         cfg.Metrics.Enabled,
		EnableLogging:         true,
		EnableRateLimit:       cfg.RateLimit.Enabled,
		RateLimitRequestsRPM:  cfg.RateLimit.RequestsPerMinute,
	}
	if cfg.Tracing.Enabled {
		sc.TracingService = cfg.LogService
		if sc.TracingService == "" {
			sc.TracingService = log.DefaultService
		}
	}
	return sc
}

func (s *Server) routes() http.Handler {
	r := middleware.NewRouter(s.stack)

	r.Get("/healthz", s.healthManager.ServeHealth)
	r.Get("/readyz", s.healthManager.ServeReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", s.handleAskRequest)
		r.Get("/openapi.yaml", handleOpenAPI)
	})

	return r
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// HealthManager exposes the health manager for additional checkers.
func (s *Server) HealthManager() *health.Manager {
	return s.healthManager
}

// Video returns the resource currently answered by POST /api/ask.
func (s *Server) Video() video.Resource {
	return *s.video.Load()
}

// ApplyConfig swaps the served video resource. In-flight requests keep the
// resource they resolved. Settings that shape the router (origins, rate
// limit, tracing) only take effect after a restart.
func (s *Server) ApplyConfig(cfg config.AppConfig) {
	res := video.NewResource(cfg.Video.Path, cfg.Video.MimeType)
	prev := s.video.Swap(&res)

	logger := log.WithComponent("api")
	if prev == nil || *prev != res {
		logger.Info().
			Str(log.FieldEvent, "video.swapped").
			Str(log.FieldPath, res.Path).
			Str(log.FieldMimeType, res.MimeType).
			Msg("video resource updated")
	}
	if next := stackConfig(cfg); !sameStack(s.stack, next) {
		logger.Warn().
			Str(log.FieldEvent, "config.restart_required").
			Msg("HTTP middleware settings changed; restart to apply")
	}
}

func sameStack(a, b middleware.StackConfig) bool {
	return slices.Equal(a.AllowedOrigins, b.AllowedOrigins) &&
		a.EnableMetrics == b.EnableMetrics &&
		a.TracingService == b.TracingService &&
		a.EnableRateLimit == b.EnableRateLimit &&
		a.RateLimitRequestsRPM == b.RateLimitRequestsRPM
}
