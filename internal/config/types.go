// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// FileConfig represents the YAML configuration structure.
// Pointer fields distinguish "unset" from the zero value so defaults survive.
type FileConfig struct {
	Debug      *bool  `yaml:"debug,omitempty"`
	LogLevel   string `yaml:"logLevel,omitempty"`
	LogService string `yaml:"logService,omitempty"`

	Video     VideoFileConfig     `yaml:"video"`
	API       APIFileConfig       `yaml:"api"`
	Server    ServerFileConfig    `yaml:"server,omitempty"`
	Metrics   MetricsFileConfig   `yaml:"metrics,omitempty"`
	Tracing   TracingFileConfig   `yaml:"tracing,omitempty"`
	RateLimit RateLimitFileConfig `yaml:"rateLimit,omitempty"`
}

// VideoFileConfig holds the served video settings.
type VideoFileConfig struct {
	// Path may be relative; it is resolved against the config file's directory.
	Path     string `yaml:"path,omitempty"`
	MimeType string `yaml:"mimeType,omitempty"`
}

// APIFileConfig holds the HTTP API settings.
type APIFileConfig struct {
	ListenAddr     string   `yaml:"listenAddr,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// ServerFileConfig holds HTTP server tuning.
type ServerFileConfig struct {
	ReadTimeout     *time.Duration `yaml:"readTimeout,omitempty"`
	WriteTimeout    *time.Duration `yaml:"writeTimeout,omitempty"`
	IdleTimeout     *time.Duration `yaml:"idleTimeout,omitempty"`
	ShutdownTimeout *time.Duration `yaml:"shutdownTimeout,omitempty"`
	MaxHeaderBytes  *int           `yaml:"maxHeaderBytes,omitempty"`
}

// MetricsFileConfig holds Prometheus listener settings.
type MetricsFileConfig struct {
	Enabled    *bool  `yaml:"enabled,omitempty"`
	ListenAddr string `yaml:"listenAddr,omitempty"`
}

// TracingFileConfig holds OpenTelemetry settings.
type TracingFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}

// RateLimitFileConfig holds rate limiter settings.
type RateLimitFileConfig struct {
	Enabled           *bool `yaml:"enabled,omitempty"`
	RequestsPerMinute *int  `yaml:"requestsPerMinute,omitempty"`
}
