package view

import "github.com/BYTE-6D65/timeaxis/pkg/layer"

// Map is a 2D dataset: an ordered collection of operational layers.
type Map struct {
	layers *layer.List
}

// NewMap creates a map owning the given layers.
func NewMap(layers ...layer.Layer) *Map {
	return &Map{layers: layer.NewList(layers...)}
}

// OperationalLayers returns the map's layer list.
func (m *Map) OperationalLayers() *layer.List {
	return m.layers
}

// Scene is a 3D dataset: an ordered collection of operational layers.
type Scene struct {
	layers *layer.List
}

// NewScene creates a scene owning the given layers.
func NewScene(layers ...layer.Layer) *Scene {
	return &Scene{layers: layer.NewList(layers...)}
}

// OperationalLayers returns the scene's layer list.
func (s *Scene) OperationalLayers() *layer.List {
	return s.layers
}
