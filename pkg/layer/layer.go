// Package layer defines the data-layer surface the time slider
// controller consumes: generic load/visibility attributes, the optional
// time-aware capability, and the ordered layer collection a map or
// scene owns.
package layer

import (
	"github.com/BYTE-6D65/timeaxis/pkg/event"
	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
)

// Layer is the generic surface every operational layer exposes.
type Layer interface {
	// Name returns a human-readable layer name.
	Name() string

	// LoadStatus returns where the layer is in its load lifecycle.
	LoadStatus() LoadStatus

	// IsVisible reports whether the layer is currently displayed.
	IsVisible() bool

	// DoneLoading exposes the load-completion signal. It fires once
	// per entry into a terminal status (Loaded or FailedToLoad).
	DoneLoading() *event.Signal[LoadStatus]
}

// TimeAware is the optional capability implemented by layers that
// participate in time-based filtering. Whether a layer implements it
// is checked dynamically; absence is a normal branch, not an error.
type TimeAware interface {
	// FullTimeExtent returns the layer's own temporal range. May be
	// empty if the layer has not resolved one.
	FullTimeExtent() temporal.TimeExtent

	// TimeInterval returns the layer's native update granularity. May
	// be empty if the layer does not report one.
	TimeInterval() temporal.TimeValue

	// IsTimeFilteringEnabled reports whether the layer honors a time
	// extent filter.
	IsTimeFilteringEnabled() bool
}

// AsTimeAware returns the layer's time-aware capability, if it has one.
func AsTimeAware(l Layer) (TimeAware, bool) {
	ta, ok := l.(TimeAware)
	return ta, ok
}
