package layer

import "github.com/BYTE-6D65/timeaxis/pkg/event"

// BasemapLayer is a layer with no time-aware capability. It exists so
// mixed collections exercise the dynamic capability check: the
// aggregator must skip it without treating it as an error.
type BasemapLayer struct {
	name      string
	lifecycle *Lifecycle
}

// NewBasemapLayer creates a basemap layer in StatusNotLoaded.
func NewBasemapLayer(name string) *BasemapLayer {
	return &BasemapLayer{name: name, lifecycle: NewLifecycle()}
}

// Name returns the layer name.
func (b *BasemapLayer) Name() string {
	return b.name
}

// LoadStatus returns the current load status.
func (b *BasemapLayer) LoadStatus() LoadStatus {
	return b.lifecycle.Status()
}

// IsVisible always reports true; basemaps stay displayed.
func (b *BasemapLayer) IsVisible() bool {
	return true
}

// DoneLoading exposes the load-completion signal.
func (b *BasemapLayer) DoneLoading() *event.Signal[LoadStatus] {
	return b.lifecycle.DoneLoading()
}

// Load begins loading.
func (b *BasemapLayer) Load() error {
	return b.lifecycle.Transition(StatusLoading)
}

// FinishLoading marks the load as successful.
func (b *BasemapLayer) FinishLoading() error {
	return b.lifecycle.Transition(StatusLoaded)
}
