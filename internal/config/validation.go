// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"fmt"
	"mime"
	"net"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Validate checks cross-field consistency of a resolved configuration.
// It does not require the video file to exist: a missing file is a runtime 404.
func Validate(cfg AppConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Video.Path) == "" {
		errs = append(errs, errors.New("video.path must not be empty"))
	}
	if _, _, err := mime.ParseMediaType(cfg.Video.MimeType); err != nil {
		errs = append(errs, fmt.Errorf("video.mimeType %q: %w", cfg.Video.MimeType, err))
	}

	if err := validateListenAddr(cfg.Server.ListenAddr); err != nil {
		errs = append(errs, fmt.Errorf("api.listenAddr: %w", err))
	}
	for _, origin := range cfg.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, errors.New("api.allowedOrigins contains an empty entry"))
			break
		}
	}

	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("logLevel %q: %w", cfg.LogLevel, err))
		}
	}

	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdownTimeout must be positive"))
	}
	if cfg.Server.MaxHeaderBytes < 0 {
		errs = append(errs, errors.New("server.maxHeaderBytes must not be negative"))
	}

	if cfg.Metrics.Enabled {
		if err := validateListenAddr(cfg.Metrics.ListenAddr); err != nil {
			errs = append(errs, fmt.Errorf("metrics.listenAddr: %w", err))
		}
	}

	if cfg.Tracing.SamplingRate < 0 || cfg.Tracing.SamplingRate > 1 {
		errs = append(errs, fmt.Errorf("tracing.samplingRate %v must be within [0,1]", cfg.Tracing.SamplingRate))
	}
	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Exporter {
		case ExporterGRPC, ExporterHTTP:
		default:
			errs = append(errs, fmt.Errorf("tracing.exporter %q (supported: grpc, http)", cfg.Tracing.Exporter))
		}
		if strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
			errs = append(errs, errors.New("tracing.endpoint must not be empty when tracing is enabled"))
		}
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("rateLimit.requestsPerMinute must be positive when enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func validateListenAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}
	return nil
}
