package layer

import (
	"sync"

	"github.com/BYTE-6D65/timeaxis/pkg/event"
)

// List is an ordered collection of operational layers with add/remove
// signals, as owned by a map or scene.
type List struct {
	mu      sync.RWMutex
	layers  []Layer
	added   event.Signal[Layer]
	removed event.Signal[Layer]
}

// NewList creates a list containing the given layers. No signals fire
// for the initial contents.
func NewList(layers ...Layer) *List {
	return &List{layers: append([]Layer(nil), layers...)}
}

// Len returns the number of layers.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.layers)
}

// At returns the layer at index i, or nil if out of range.
func (l *List) At(i int) Layer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.layers) {
		return nil
	}
	return l.layers[i]
}

// All returns a snapshot of the layers in order.
func (l *List) All() []Layer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Layer, len(l.layers))
	copy(out, l.layers)
	return out
}

// Add appends a layer and fires the Added signal.
func (l *List) Add(layer Layer) {
	l.mu.Lock()
	l.layers = append(l.layers, layer)
	l.mu.Unlock()

	l.added.Emit(layer)
}

// Remove removes the first occurrence of the layer and fires the
// Removed signal. Removing a layer that is not present is a no-op.
func (l *List) Remove(layer Layer) {
	l.mu.Lock()
	idx := -1
	for i, existing := range l.layers {
		if existing == layer {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	l.layers = append(l.layers[:idx], l.layers[idx+1:]...)
	l.mu.Unlock()

	l.removed.Emit(layer)
}

// Added exposes the layer-added signal.
func (l *List) Added() *event.Signal[Layer] {
	return &l.added
}

// Removed exposes the layer-removed signal.
func (l *List) Removed() *event.Signal[Layer] {
	return &l.removed
}
