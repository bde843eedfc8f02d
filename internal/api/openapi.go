// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	_ "embed"
	"net/http"
	"strconv"
)

// OpenAPISpec is the OpenAPI 3 description of the public HTTP surface.
//
//go:embed openapi.yaml
var OpenAPISpec []byte

func handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Length", strconv.Itoa(len(OpenAPISpec)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(OpenAPISpec)
}
