// Package view models the host view surface the time slider controller
// attaches to: a 2D map view or a 3D scene view, each displaying a
// model that owns the operational layers. The view is the authority on
// the current time extent; the controller only reads it and requests
// changes.
package view

import (
	"github.com/BYTE-6D65/timeaxis/pkg/event"
	"github.com/BYTE-6D65/timeaxis/pkg/layer"
	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
)

// GeoView is the attached-view surface the controller consumes. Both
// MapView and SceneView implement it, so the controller never type-
// switches on the view variant.
type GeoView interface {
	// TimeExtent returns the view's currently applied time extent.
	// May be empty if no extent has been applied.
	TimeExtent() temporal.TimeExtent

	// SetTimeExtent requests a new extent. The view is authoritative:
	// whatever it subsequently reports is the truth, even if that
	// differs from the request.
	SetTimeExtent(extent temporal.TimeExtent)

	// OperationalLayers returns the displayed model's layer list, or
	// nil when no model is set.
	OperationalLayers() *layer.List

	// ModelChanged fires when the displayed map or scene is replaced.
	ModelChanged() *event.Signal[struct{}]

	// TimeExtentChanged fires when the applied extent actually
	// changes.
	TimeExtentChanged() *event.Signal[temporal.TimeExtent]
}

// viewState carries the extent and signal plumbing shared by both view
// variants.
type viewState struct {
	extent        temporal.TimeExtent
	modelChanged  event.Signal[struct{}]
	extentChanged event.Signal[temporal.TimeExtent]
}

func (s *viewState) ModelChanged() *event.Signal[struct{}] {
	return &s.modelChanged
}

func (s *viewState) TimeExtentChanged() *event.Signal[temporal.TimeExtent] {
	return &s.extentChanged
}
