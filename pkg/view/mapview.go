package view

import (
	"sync"

	"github.com/BYTE-6D65/timeaxis/pkg/layer"
	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
)

// MapView displays a Map in 2D.
type MapView struct {
	mu sync.RWMutex
	m  *Map
	viewState
}

// NewMapView creates a map view with no map set.
func NewMapView() *MapView {
	return &MapView{}
}

// Map returns the displayed map, or nil.
func (v *MapView) Map() *Map {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.m
}

// SetMap replaces the displayed map and fires ModelChanged.
func (v *MapView) SetMap(m *Map) {
	v.mu.Lock()
	v.m = m
	v.mu.Unlock()

	v.modelChanged.Emit(struct{}{})
}

// OperationalLayers returns the map's layer list, or nil if no map is
// set.
func (v *MapView) OperationalLayers() *layer.List {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.m == nil {
		return nil
	}
	return v.m.OperationalLayers()
}

// TimeExtent returns the currently applied time extent.
func (v *MapView) TimeExtent() temporal.TimeExtent {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.extent
}

// SetTimeExtent applies a new extent and fires TimeExtentChanged if
// the value actually changed.
func (v *MapView) SetTimeExtent(extent temporal.TimeExtent) {
	v.mu.Lock()
	if v.extent.Equal(extent) {
		v.mu.Unlock()
		return
	}
	v.extent = extent
	v.mu.Unlock()

	v.extentChanged.Emit(extent)
}
