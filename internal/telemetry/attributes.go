// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys used on clipgate spans and resources.
const (
	ServiceNameKey           = "service.name"
	ServiceVersionKey        = "service.version"
	DeploymentEnvironmentKey = "deployment.environment"

	HTTPRouteKey  = "http.route"
	HTTPOriginKey = "http.origin"

	VideoPathKey     = "video.path"
	VideoMimeTypeKey = "video.mime_type"
	VideoSizeKey     = "video.size_bytes"
	VideoOutcomeKey  = "video.outcome"

	ErrorKey      = "error"
	ErrorStageKey = "error.stage"
)

// RouteAttributes describes the resolved chi route. Origin is skipped when
// the request carried none.
func RouteAttributes(service, route, origin string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	attrs = append(attrs,
		attribute.String(ServiceNameKey, service),
		attribute.String(HTTPRouteKey, route),
	)
	if origin != "" {
		attrs = append(attrs, attribute.String(HTTPOriginKey, origin))
	}
	return attrs
}

// VideoAttributes describes the served file. A negative size is unknown
// and left out.
func VideoAttributes(path, mimeType string, size int64) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(VideoPathKey, path),
		attribute.String(VideoMimeTypeKey, mimeType),
	}
	if size < 0 {
		return attrs
	}
	return append(attrs, attribute.Int64(VideoSizeKey, size))
}

// OutcomeAttribute is one of served, not_found or error.
func OutcomeAttribute(outcome string) attribute.KeyValue {
	return attribute.String(VideoOutcomeKey, outcome)
}

// FailureAttributes marks a span as failed at stage ("open", "stream").
func FailureAttributes(stage string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorStageKey, stage),
	}
}
