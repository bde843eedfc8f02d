// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"path/filepath"
	"slices"
)

// mergeFileConfig overlays every field the file sets onto cfg.
func (l *Loader) mergeFileConfig(cfg *AppConfig, fc *FileConfig) {
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogService != "" {
		cfg.LogService = fc.LogService
	}

	if fc.Video.Path != "" {
		p := fc.Video.Path
		if !filepath.IsAbs(p) && l.configPath != "" {
			p = filepath.Join(filepath.Dir(l.configPath), p)
		}
		cfg.Video.Path = p
	}
	if fc.Video.MimeType != "" {
		cfg.Video.MimeType = fc.Video.MimeType
	}

	if fc.API.ListenAddr != "" {
		cfg.Server.ListenAddr = fc.API.ListenAddr
	}
	if len(fc.API.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = slices.Clone(fc.API.AllowedOrigins)
	}

	s := fc.Server
	if s.ReadTimeout != nil {
		cfg.Server.ReadTimeout = *s.ReadTimeout
	}
	if s.WriteTimeout != nil {
		cfg.Server.WriteTimeout = *s.WriteTimeout
	}
	if s.IdleTimeout != nil {
		cfg.Server.IdleTimeout = *s.IdleTimeout
	}
	if s.ShutdownTimeout != nil {
		cfg.Server.ShutdownTimeout = *s.ShutdownTimeout
	}
	if s.MaxHeaderBytes != nil {
		cfg.Server.MaxHeaderBytes = *s.MaxHeaderBytes
	}

	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}
	if fc.Metrics.ListenAddr != "" {
		cfg.Metrics.ListenAddr = fc.Metrics.ListenAddr
	}

	if fc.Tracing.Enabled != nil {
		cfg.Tracing.Enabled = *fc.Tracing.Enabled
	}
	if fc.Tracing.Exporter != "" {
		cfg.Tracing.Exporter = fc.Tracing.Exporter
	}
	if fc.Tracing.Endpoint != "" {
		cfg.Tracing.Endpoint = fc.Tracing.Endpoint
	}
	if fc.Tracing.SamplingRate != nil {
		cfg.Tracing.SamplingRate = *fc.Tracing.SamplingRate
	}

	if fc.RateLimit.Enabled != nil {
		cfg.RateLimit.Enabled = *fc.RateLimit.Enabled
	}
	if fc.RateLimit.RequestsPerMinute != nil {
		cfg.RateLimit.RequestsPerMinute = *fc.RateLimit.RequestsPerMinute
	}
}
