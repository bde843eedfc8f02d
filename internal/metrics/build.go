// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "clipgate_build_info",
	Help: "Build metadata of the running binary; the value is always 1",
}, []string{"version", "commit"})

// RecordBuildInfo publishes the running build. Call once at startup.
func RecordBuildInfo(version, commit string) {
	buildInfo.Reset()
	buildInfo.WithLabelValues(version, commit).Set(1)
}
