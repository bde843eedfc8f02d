// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package validation runs pre-flight checks against the runtime environment.
package validation

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/video"
)

// ErrVideoNotServable marks a pre-flight finding about the configured video.
// The daemon still starts; requests are answered with 404 until the file appears.
var ErrVideoNotServable = errors.New("video not servable")

// PerformStartupChecks logs the state of the environment before the listeners
// are bound. Findings are returned joined but are advisory: a missing video is a
// runtime condition, not a configuration error.
func PerformStartupChecks(cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Msg("running pre-flight startup checks")

	var errs []error
	if err := checkVideo(logger, video.NewResource(cfg.Video.Path, cfg.Video.MimeType)); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info().Msg("all startup checks passed")
	return nil
}

func checkVideo(logger zerolog.Logger, res video.Resource) error {
	info, err := res.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVideoNotServable, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrVideoNotServable, res.Path)
	}

	// Readability is only known once the file is opened.
	// #nosec G304 -- the path is operator configuration
	f, err := os.Open(res.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVideoNotServable, err)
	}
	_ = f.Close()

	logger.Info().
		Str(log.FieldPath, res.Path).
		Str(log.FieldMimeType, res.MimeType).
		Int64(log.FieldSize, info.Size()).
		Msg("video is readable")
	return nil
}
