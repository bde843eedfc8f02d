// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ManuGH/clipgate/internal/telemetry"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return recorder
}

func TestTracing_NamesSpanByRoute(t *testing.T) {
	recorder := installRecorder(t)

	r := chi.NewRouter()
	r.Use(Tracing("clipgate"))
	r.Post("/api/ask", func(w http.ResponseWriter, r *http.Request) {
		traceID, spanID := ExtractTraceContext(r)
		assert.NotEmpty(t, traceID)
		assert.NotEmpty(t, spanID)
		AddSpanAttributes(r, telemetry.OutcomeAttribute("served"))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST /api/ask", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "/api/ask", attrs[telemetry.HTTPRouteKey])
	assert.Equal(t, "http://localhost:3000", attrs[telemetry.HTTPOriginKey])
	assert.Equal(t, "served", attrs[telemetry.VideoOutcomeKey])
}

func TestTracing_HonoursIncomingTraceContext(t *testing.T) {
	recorder := installRecorder(t)

	r := chi.NewRouter()
	r.Use(Tracing("clipgate"))
	r.Post("/api/ask", func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	r.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent().SpanID().String())
}

func TestTracing_SkipsHealthEndpoints(t *testing.T) {
	recorder := installRecorder(t)

	r := chi.NewRouter()
	r.Use(Tracing("clipgate"))
	r.Get("/healthz", func(http.ResponseWriter, *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Empty(t, recorder.Ended())
}

func TestExtractTraceContext_NoSpan(t *testing.T) {
	traceID, spanID := ExtractTraceContext(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, traceID)
	assert.Empty(t, spanID)
}
