// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/stretchr/testify/require"
)

var (
	openapiOnce sync.Once
	openapiDoc  *openapi3.T
	openapiErr  error
)

func loadOpenAPIDoc(t *testing.T) *openapi3.T {
	t.Helper()
	openapiOnce.Do(func() {
		openapi3filter.RegisterBodyDecoder("video/mp4", openapi3filter.FileBodyDecoder)

		doc, err := openapi3.NewLoader().LoadFromData(OpenAPISpec)
		if err != nil {
			openapiErr = err
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			openapiErr = err
			return
		}
		openapiDoc = doc
	})
	if openapiErr != nil {
		t.Fatalf("openapi load failed: %v", openapiErr)
	}
	return openapiDoc
}

func validateOpenAPIExchange(t *testing.T, doc *openapi3.T, req *http.Request, rr *httptest.ResponseRecorder) {
	t.Helper()
	router, err := legacy.NewRouter(doc)
	require.NoError(t, err, "openapi router init")

	route, pathParams, err := router.FindRoute(req)
	require.NoError(t, err, "openapi route lookup")

	reqInput := &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: pathParams,
		Route:      route,
	}
	require.NoError(t, openapi3filter.ValidateRequest(context.Background(), reqInput), "openapi request validation")

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: reqInput,
		Status:                 rr.Code,
		Header:                 rr.Header(),
	}
	input.SetBodyBytes(rr.Body.Bytes())

	require.NoError(t, openapi3filter.ValidateResponse(context.Background(), input), "openapi response validation")
}

func TestContract_Ask(t *testing.T) {
	doc := loadOpenAPIDoc(t)

	tests := []struct {
		name      string
		videoPath func(t *testing.T) string
		wantCode  int
	}{
		{
			name:      "served",
			videoPath: func(t *testing.T) string { return writeVideo(t, patternBytes(100)) },
			wantCode:  http.StatusOK,
		},
		{
			name:      "not found",
			videoPath: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.mp4") },
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testConfig(tt.videoPath(t)))
			body := []byte(`{"prompt":"show me something"}`)

			rr := postAsk(t, s.Handler(), body, map[string]string{"Content-Type": "application/json"})
			require.Equal(t, tt.wantCode, rr.Code)

			req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			validateOpenAPIExchange(t, doc, req, rr)
		})
	}
}

func TestContract_HealthEndpoints(t *testing.T) {
	doc := loadOpenAPIDoc(t)
	s := New(testConfig(filepath.Join(t.TempDir(), "missing.mp4")))

	for _, target := range []string{"/healthz", "/healthz?verbose=true", "/readyz", "/readyz?verbose=true"} {
		t.Run(target, func(t *testing.T) {
			rr := serve(s.Handler(), newRequest(http.MethodGet, target))
			validateOpenAPIExchange(t, doc, httptest.NewRequest(http.MethodGet, target, nil), rr)
		})
	}
}
