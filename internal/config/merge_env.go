// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// mergeEnvConfig applies CLIPGATE_* overrides. Each value defaults to what
// defaults and file already produced, so unset variables change nothing.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) error {
	cfg.Video.Path = envValue(EnvVideoPath, cfg.Video.Path, parseString)
	cfg.Video.MimeType = envValue(EnvVideoMimeType, cfg.Video.MimeType, parseString)

	cfg.Server.ListenAddr = envValue(EnvListen, cfg.Server.ListenAddr, parseString)
	if bind := strings.TrimSpace(envValue(EnvBindInterface, "", parseString)); bind != "" {
		addr, err := BindListenAddr(cfg.Server.ListenAddr, bind)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBindInterface, err)
		}
		cfg.Server.ListenAddr = addr
	}
	cfg.AllowedOrigins = envValue(EnvAllowedOrigins, cfg.AllowedOrigins, parseList)

	cfg.Debug = envValue(EnvDebug, cfg.Debug, parseBool)
	cfg.LogLevel = envValue(EnvLogLevel, cfg.LogLevel, parseString)
	cfg.LogService = envValue(EnvLogService, cfg.LogService, parseString)

	cfg.Server.ReadTimeout = envValue(EnvReadTimeout, cfg.Server.ReadTimeout, time.ParseDuration)
	cfg.Server.WriteTimeout = envValue(EnvWriteTimeout, cfg.Server.WriteTimeout, time.ParseDuration)
	cfg.Server.IdleTimeout = envValue(EnvIdleTimeout, cfg.Server.IdleTimeout, time.ParseDuration)
	cfg.Server.ShutdownTimeout = envValue(EnvShutdownTimeout, cfg.Server.ShutdownTimeout, time.ParseDuration)

	cfg.Metrics.Enabled = envValue(EnvMetricsEnabled, cfg.Metrics.Enabled, parseBool)
	cfg.Metrics.ListenAddr = envValue(EnvMetricsAddr, cfg.Metrics.ListenAddr, parseString)

	cfg.Tracing.Enabled = envValue(EnvTracingEnabled, cfg.Tracing.Enabled, parseBool)
	cfg.Tracing.Exporter = envValue(EnvTracingExporter, cfg.Tracing.Exporter, parseString)
	cfg.Tracing.Endpoint = envValue(EnvTracingEndpoint, cfg.Tracing.Endpoint, parseString)
	cfg.Tracing.SamplingRate = envValue(EnvTracingSample, cfg.Tracing.SamplingRate, parseFloat)

	cfg.RateLimit.Enabled = envValue(EnvRateLimitEnabled, cfg.RateLimit.Enabled, parseBool)
	cfg.RateLimit.RequestsPerMinute = envValue(EnvRateLimitRPM, cfg.RateLimit.RequestsPerMinute, strconv.Atoi)
	return nil
}
