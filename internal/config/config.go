// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "slices"

// Exporter types accepted by TracingConfig.Exporter.
const (
	ExporterGRPC = "grpc"
	ExporterHTTP = "http"
)

// AppConfig is the fully resolved, immutable runtime configuration.
type AppConfig struct {
	Version string

	Video          VideoConfig
	AllowedOrigins []string

	Debug      bool
	LogLevel   string
	LogService string

	Server    ServerConfig
	Metrics   MetricsConfig
	Tracing   TracingConfig
	RateLimit RateLimitConfig
}

// VideoConfig locates the file answered by POST /api/ask.
type VideoConfig struct {
	Path     string
	MimeType string
}

// MetricsConfig controls the separate Prometheus listener.
type MetricsConfig struct {
	Enabled    bool
	ListenAddr string
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
}

// RateLimitConfig controls the optional per-IP limiter in front of the API.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

// EffectiveLogLevel returns the explicit level, or "debug"/"info" depending on debug mode.
func (c AppConfig) EffectiveLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	if c.Debug {
		return "debug"
	}
	return "info"
}

// Clone returns a copy that shares no slices with c.
func (c AppConfig) Clone() AppConfig {
	out := c
	out.AllowedOrigins = slices.Clone(c.AllowedOrigins)
	return out
}
