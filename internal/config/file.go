// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteFileConfig when the target exists and overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// LoadFileConfig loads a YAML config file without applying defaults or env overrides.
func LoadFileConfig(path string) (*FileConfig, error) {
	loader := NewLoader(path, "")
	return loader.loadFile(path)
}

// FileConfigFrom renders an AppConfig as the YAML file structure.
func FileConfigFrom(cfg AppConfig) FileConfig {
	debug := cfg.Debug
	metricsEnabled := cfg.Metrics.Enabled
	tracingEnabled := cfg.Tracing.Enabled
	sampling := cfg.Tracing.SamplingRate
	rlEnabled := cfg.RateLimit.Enabled
	rpm := cfg.RateLimit.RequestsPerMinute
	read, write, idle, shutdown := cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout, cfg.Server.ShutdownTimeout
	maxHeader := cfg.Server.MaxHeaderBytes

	return FileConfig{
		Debug:      &debug,
		LogLevel:   cfg.LogLevel,
		LogService: cfg.LogService,
		Video: VideoFileConfig{
			Path:     cfg.Video.Path,
			MimeType: cfg.Video.MimeType,
		},
		API: APIFileConfig{
			ListenAddr:     cfg.Server.ListenAddr,
			AllowedOrigins: cfg.AllowedOrigins,
		},
		Server: ServerFileConfig{
			ReadTimeout:     &read,
			WriteTimeout:    &write,
			IdleTimeout:     &idle,
			ShutdownTimeout: &shutdown,
			MaxHeaderBytes:  &maxHeader,
		},
		Metrics: MetricsFileConfig{
			Enabled:    &metricsEnabled,
			ListenAddr: cfg.Metrics.ListenAddr,
		},
		Tracing: TracingFileConfig{
			Enabled:      &tracingEnabled,
			Exporter:     cfg.Tracing.Exporter,
			Endpoint:     cfg.Tracing.Endpoint,
			SamplingRate: &sampling,
		},
		RateLimit: RateLimitFileConfig{
			Enabled:           &rlEnabled,
			RequestsPerMinute: &rpm,
		},
	}
}

// WriteFileConfig writes fc as YAML to path with atomic replace semantics.
func WriteFileConfig(path string, fc FileConfig, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write config data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}
	return nil
}
