package view

import (
	"sync"

	"github.com/BYTE-6D65/timeaxis/pkg/layer"
	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
)

// SceneView displays a Scene in 3D.
type SceneView struct {
	mu sync.RWMutex
	s  *Scene
	viewState
}

// NewSceneView creates a scene view with no scene set.
func NewSceneView() *SceneView {
	return &SceneView{}
}

// Scene returns the displayed scene, or nil.
func (v *SceneView) Scene() *Scene {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.s
}

// SetScene replaces the displayed scene and fires ModelChanged.
func (v *SceneView) SetScene(s *Scene) {
	v.mu.Lock()
	v.s = s
	v.mu.Unlock()

	v.modelChanged.Emit(struct{}{})
}

// OperationalLayers returns the scene's layer list, or nil if no scene
// is set.
func (v *SceneView) OperationalLayers() *layer.List {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.s == nil {
		return nil
	}
	return v.s.OperationalLayers()
}

// TimeExtent returns the currently applied time extent.
func (v *SceneView) TimeExtent() temporal.TimeExtent {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.extent
}

// SetTimeExtent applies a new extent and fires TimeExtentChanged if
// the value actually changed.
func (v *SceneView) SetTimeExtent(extent temporal.TimeExtent) {
	v.mu.Lock()
	if v.extent.Equal(extent) {
		v.mu.Unlock()
		return
	}
	v.extent = extent
	v.mu.Unlock()

	v.extentChanged.Emit(extent)
}
