// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/clipgate/internal/api/middleware"
	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
	"github.com/ManuGH/clipgate/internal/telemetry"
	"github.com/ManuGH/clipgate/internal/video"
)

// handleAskRequest answers POST /api/ask with the configured video file.
// The request body (a {"prompt": ...} object from the front-end) is never read.
func (s *Server) handleAskRequest(w http.ResponseWriter, r *http.Request) {
	res := s.Video()
	logger := log.WithComponentFromContext(r.Context(), "api")
	span := trace.SpanFromContext(r.Context())
	if traceID, _ := middleware.ExtractTraceContext(r); traceID != "" {
		logger = logger.With().Str(log.FieldTraceID, traceID).Logger()
	}

	f, info, err := s.openVideo(res)
	if err != nil {
		if errors.Is(err, video.ErrNotFound) {
			metrics.RecordAskOutcome(metrics.OutcomeNotFound)
			middleware.AddSpanAttributes(r, telemetry.VideoAttributes(res.Path, res.MimeType, -1)...)
			middleware.AddSpanAttributes(r, telemetry.OutcomeAttribute(metrics.OutcomeNotFound))
			logger.Info().
				Str(log.FieldEvent, "ask.video_not_found").
				Str(log.FieldPath, res.Path).
				Msg("video not found")
			writeVideoNotFound(w)
			return
		}

		metrics.RecordAskOutcome(metrics.OutcomeError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "open video")
		span.SetAttributes(telemetry.FailureAttributes("open")...)
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "ask.open_failed").
			Str(log.FieldPath, res.Path).
			Msg("failed to open video")
		writeInternalError(w)
		return
	}
	defer func() { _ = f.Close() }()

	size := info.Size()
	middleware.AddSpanAttributes(r, telemetry.VideoAttributes(res.Path, res.MimeType, size)...)

	h := w.Header()
	h.Set("Content-Type", res.MimeType)
	h.Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)

	// Stream exactly the advertised length; a file that shrank mid-copy surfaces as io.EOF.
	n, err := io.CopyN(w, f, size)
	metrics.AddAskBytesServed(n)
	if err != nil {
		metrics.RecordAskOutcome(metrics.OutcomeError)
		middleware.AddSpanAttributes(r, telemetry.OutcomeAttribute(metrics.OutcomeError))
		span.RecordError(err)
		span.SetStatus(codes.Error, "stream video")
		span.SetAttributes(telemetry.FailureAttributes("stream")...)
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "ask.stream_failed").
			Str(log.FieldPath, res.Path).
			Int64(log.FieldBytes, n).
			Int64(log.FieldSize, size).
			Msg("video stream aborted")
		// Headers are already on the wire; abort the connection.
		panic(http.ErrAbortHandler)
	}

	metrics.RecordAskOutcome(metrics.OutcomeServed)
	middleware.AddSpanAttributes(r, telemetry.OutcomeAttribute(metrics.OutcomeServed))
	logger.Debug().
		Str(log.FieldEvent, "ask.video_served").
		Str(log.FieldPath, res.Path).
		Str(log.FieldMimeType, res.MimeType).
		Int64(log.FieldSize, size).
		Msg("video served")
}
