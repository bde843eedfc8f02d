// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package log wraps zerolog with the process-wide logger, request-scoped
// loggers and the field names shared by every component.
package log

import (
	"context"

	"github.com/rs/zerolog"
)

type requestIDKey struct{}

// ContextWithRequestID returns a copy of ctx carrying id. A nil ctx is
// treated as context.Background.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithContext adds the request id from ctx, if any, to logger.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return logger
	}
	return logger.With().Str(FieldRequestID, id).Logger()
}

// WithComponentFromContext is FromContext tagged with a component name.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	return FromContext(ctx).With().Str(FieldComponent, component).Logger()
}

// FromContext returns the logger Middleware stored in ctx. Outside a request
// it falls back to Base enriched with the request id, if ctx has one.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		// zerolog.Ctx returns a disabled logger when none is stored.
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	l := WithContext(ctx, Base())
	return &l
}
