// SPDX-License-Identifier: MIT

package daemon

import (
	"net/http"
	"reflect"

	"github.com/rs/zerolog"
)

// Deps is everything NewManager needs to bring up the listeners.
type Deps struct {
	Logger     zerolog.Logger
	APIHandler http.Handler

	// MetricsHandler is served on MetricsAddr. Both stay zero when the
	// metrics listener is disabled.
	MetricsHandler http.Handler
	MetricsAddr    string
}

// Validate reports the first missing dependency. A zero-value Logger is
// silent and zerolog.Nop is disabled; both count as missing.
func (d *Deps) Validate() error {
	switch {
	case reflect.ValueOf(d.Logger).IsZero(), d.Logger.GetLevel() == zerolog.Disabled:
		return ErrMissingLogger
	case d.APIHandler == nil:
		return ErrMissingAPIHandler
	case d.MetricsAddr != "" && d.MetricsHandler == nil:
		return ErrMissingMetricsHandler
	}
	return nil
}
