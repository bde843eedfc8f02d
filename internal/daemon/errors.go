// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import "errors"

// Dependency errors, returned by NewManager and NewApp's Run.
var (
	ErrMissingLogger         = errors.New("daemon: logger is required")
	ErrMissingAPIHandler     = errors.New("daemon: api handler is required")
	ErrMissingMetricsHandler = errors.New("daemon: metrics address set without a metrics handler")
	ErrMissingManager        = errors.New("daemon: manager is required")
)

// Lifecycle errors.
var (
	ErrManagerNotStarted     = errors.New("daemon: manager not started")
	ErrManagerAlreadyStarted = errors.New("daemon: manager already started")

	// ErrServerStartFailed wraps bind failures of any listener.
	ErrServerStartFailed = errors.New("daemon: listener failed to start")
)
