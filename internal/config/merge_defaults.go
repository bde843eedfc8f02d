// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/video"
)

// Defaults. The video path is a placeholder the operator is expected to override.
const (
	DefaultVideoPath       = "/path/to/your/sample_video.mp4"
	DefaultListenAddr      = "0.0.0.0:5000"
	DefaultMetricsAddr     = ":9090"
	DefaultTracingExporter = ExporterGRPC
	DefaultTracingEndpoint = "localhost:4317"
	DefaultRateLimitRPM    = 600
	DefaultReadTimeout     = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20
)

func (l *Loader) setDefaults(cfg *AppConfig) {
	cfg.Video = VideoConfig{
		Path:     DefaultVideoPath,
		MimeType: video.DefaultMimeType,
	}
	cfg.AllowedOrigins = []string{"*"}
	cfg.Debug = true
	cfg.LogService = log.DefaultService

	cfg.Server = ServerConfig{
		ListenAddr:      DefaultListenAddr,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    0, // unbounded so large files stream to completion
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxHeaderBytes:  DefaultMaxHeaderBytes,
	}
	cfg.Metrics = MetricsConfig{ListenAddr: DefaultMetricsAddr}
	cfg.Tracing = TracingConfig{
		Exporter:     DefaultTracingExporter,
		Endpoint:     DefaultTracingEndpoint,
		SamplingRate: 1.0,
	}
	cfg.RateLimit = RateLimitConfig{RequestsPerMinute: DefaultRateLimitRPM}
}

// Defaults returns the configuration used when neither a file nor the environment override anything.
func Defaults() AppConfig {
	var cfg AppConfig
	NewLoader("", "").setDefaults(&cfg)
	return cfg
}
