package layer

import (
	"sync"

	"github.com/BYTE-6D65/timeaxis/pkg/event"
	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
)

// FeatureLayer is an in-memory time-aware layer. The slider-sim binary
// and tests use it to stand in for real data services; hosts with real
// data sources implement the Layer and TimeAware interfaces directly.
type FeatureLayer struct {
	name      string
	lifecycle *Lifecycle

	mu            sync.RWMutex
	visible       bool
	fullExtent    temporal.TimeExtent
	interval      temporal.TimeValue
	timeFiltering bool
}

// FeatureLayerOption configures a FeatureLayer.
type FeatureLayerOption func(*FeatureLayer)

// WithFullTimeExtent sets the layer's temporal range.
func WithFullTimeExtent(extent temporal.TimeExtent) FeatureLayerOption {
	return func(f *FeatureLayer) {
		f.fullExtent = extent
	}
}

// WithTimeInterval sets the layer's native update granularity.
func WithTimeInterval(interval temporal.TimeValue) FeatureLayerOption {
	return func(f *FeatureLayer) {
		f.interval = interval
	}
}

// WithTimeFiltering enables or disables time-based filtering.
func WithTimeFiltering(enabled bool) FeatureLayerOption {
	return func(f *FeatureLayer) {
		f.timeFiltering = enabled
	}
}

// WithVisible sets initial visibility.
func WithVisible(visible bool) FeatureLayerOption {
	return func(f *FeatureLayer) {
		f.visible = visible
	}
}

// NewFeatureLayer creates a feature layer in StatusNotLoaded. By
// default the layer is visible with time filtering enabled.
func NewFeatureLayer(name string, opts ...FeatureLayerOption) *FeatureLayer {
	f := &FeatureLayer{
		name:          name,
		lifecycle:     NewLifecycle(),
		visible:       true,
		timeFiltering: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the layer name.
func (f *FeatureLayer) Name() string {
	return f.name
}

// LoadStatus returns the current load status.
func (f *FeatureLayer) LoadStatus() LoadStatus {
	return f.lifecycle.Status()
}

// IsVisible reports whether the layer is displayed.
func (f *FeatureLayer) IsVisible() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.visible
}

// SetVisible changes visibility.
func (f *FeatureLayer) SetVisible(visible bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = visible
}

// DoneLoading exposes the load-completion signal.
func (f *FeatureLayer) DoneLoading() *event.Signal[LoadStatus] {
	return f.lifecycle.DoneLoading()
}

// Load begins loading.
func (f *FeatureLayer) Load() error {
	return f.lifecycle.Transition(StatusLoading)
}

// FinishLoading marks the load as successful and fires DoneLoading.
func (f *FeatureLayer) FinishLoading() error {
	return f.lifecycle.Transition(StatusLoaded)
}

// FailLoading marks the load as failed and fires DoneLoading.
func (f *FeatureLayer) FailLoading() error {
	return f.lifecycle.Transition(StatusFailedToLoad)
}

// FullTimeExtent returns the layer's temporal range.
func (f *FeatureLayer) FullTimeExtent() temporal.TimeExtent {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fullExtent
}

// TimeInterval returns the layer's native update granularity.
func (f *FeatureLayer) TimeInterval() temporal.TimeValue {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.interval
}

// IsTimeFilteringEnabled reports whether time filtering is on.
func (f *FeatureLayer) IsTimeFilteringEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.timeFiltering
}

// SetTimeFilteringEnabled toggles time filtering.
func (f *FeatureLayer) SetTimeFilteringEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeFiltering = enabled
}
