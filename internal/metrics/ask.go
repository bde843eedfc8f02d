// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ask request outcomes.
const (
	OutcomeServed   = "served"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	askRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_ask_requests_total",
		Help: "Total number of ask requests by outcome",
	}, []string{"outcome"}) // outcome=served|not_found|error

	askBytesServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipgate_ask_bytes_served_total",
		Help: "Total number of video bytes streamed to ask clients",
	})

	videoAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clipgate_video_available",
		Help: "Whether the configured video file was present at the last check (1) or not (0)",
	})

	configReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_config_reloads_total",
		Help: "Configuration reload attempts by result",
	}, []string{"result"}) // result=success|failure
)

// RecordAskOutcome increments the ask request counter for an outcome.
func RecordAskOutcome(outcome string) {
	askRequestsTotal.WithLabelValues(outcome).Inc()
	switch outcome {
	case OutcomeServed:
		videoAvailable.Set(1)
	case OutcomeNotFound:
		videoAvailable.Set(0)
	}
}

// AddAskBytesServed adds streamed body bytes; non-positive values are ignored.
func AddAskBytesServed(n int64) {
	if n <= 0 {
		return
	}
	askBytesServed.Add(float64(n))
}

// RecordConfigReload records the result of a configuration reload.
func RecordConfigReload(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	configReloadsTotal.WithLabelValues(result).Inc()
}
