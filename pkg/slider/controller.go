// Package slider implements the time slider controller: it derives a
// discretized step axis from the temporal ranges of the time-aware
// layers displayed in an attached geo view, and keeps the view's
// selected sub-extent and the derived step indices consistent.
package slider

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BYTE-6D65/timeaxis/pkg/clock"
	"github.com/BYTE-6D65/timeaxis/pkg/event"
	"github.com/BYTE-6D65/timeaxis/pkg/layer"
	"github.com/BYTE-6D65/timeaxis/pkg/telemetry"
	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
	"github.com/BYTE-6D65/timeaxis/pkg/view"
)

// ToolName is the name the controller registers under.
const ToolName = "TimeSlider"

// change is a pending property-change notification, computed under the
// state lock and published after it is released.
type change struct {
	topic   string
	payload any
}

// Controller aggregates the full time extent of the eligible layers in
// the attached view, resolves the step interval, and translates between
// calendar time and step indices.
//
// The controller owns its derived state; the attached view owns the
// live current extent. The controller only reads the view's extent and
// requests changes to it; whatever the view reports afterwards is the
// truth.
type Controller struct {
	cfg     Config
	log     zerolog.Logger
	clk     clock.Clock
	bus     event.Bus
	ownBus  bool
	codec   event.Codec
	metrics *telemetry.Metrics

	mu              sync.RWMutex
	geoView         view.GeoView
	layers          *layer.List
	viewDisconnects []func()
	listDisconnects []func()
	pending         map[layer.Layer]func()

	fullExtent     temporal.TimeExtent
	intervalMillis float64
	numberOfSteps  int
	stepTimes      []time.Time
	startStep      int
	endStep        int

	// lastCurrent is the most recently announced current extent. It
	// exists only to suppress duplicate notifications; the view stays
	// authoritative for the live value.
	lastCurrent temporal.TimeExtent
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig sets the controller configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithLogger sets the structured logger. The default logger discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithClock sets the clock used to timestamp notifications.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) {
		c.clk = clk
	}
}

// WithBus sets an externally owned notification bus. The controller
// will not close it on Close.
func WithBus(bus event.Bus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithMetrics attaches telemetry.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New creates a detached controller. Attach binds it to a view.
func New(opts ...Option) *Controller {
	c := &Controller{
		cfg:     DefaultConfig(),
		log:     zerolog.Nop(),
		clk:     clock.NewSystemClock(),
		codec:   event.JSONCodec{},
		pending: make(map[layer.Layer]func()),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.bus == nil {
		busOpts := []event.BusOption{
			event.WithBufferSize(c.cfg.BusBufferSize),
			event.WithDropSlow(c.cfg.BusDropSlow),
			event.WithBusName("slider"),
		}
		if c.metrics != nil {
			busOpts = append(busOpts, event.WithMetrics(c.metrics))
		}
		c.bus = event.NewInMemoryBus(busOpts...)
		c.ownBus = true
	}

	return c
}

// ToolName returns "TimeSlider".
func (c *Controller) ToolName() string {
	return ToolName
}

// Notifications returns the bus carrying property-change events.
// Subscribe with a "slider.*" filter for the full fan-out.
func (c *Controller) Notifications() event.Bus {
	return c.bus
}

// GeoView returns the attached view, or nil when detached.
func (c *Controller) GeoView() view.GeoView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.geoView
}

// Attach binds the controller to a geo view, tearing down any previous
// attachment's subscriptions first. Re-attaching the same view is
// valid and still triggers a full recompute. Derived state is reset so
// the new attachment starts from scratch.
func (c *Controller) Attach(v view.GeoView) {
	c.mu.Lock()
	c.teardownLocked()
	c.resetStateLocked()
	c.geoView = v
	if v != nil {
		c.viewDisconnects = append(c.viewDisconnects,
			v.ModelChanged().Connect(func(struct{}) { c.onModelChanged() }),
			v.TimeExtentChanged().Connect(func(temporal.TimeExtent) { c.onViewExtentChanged() }),
		)
	}
	c.mu.Unlock()

	if v != nil {
		c.onModelChanged()
	}

	// Derive positions from whatever extent the view already reports,
	// even before a model resolves.
	c.mu.Lock()
	changes := c.calculateStepPositionsLocked()
	changes = append(changes, c.currentChangeLocked()...)
	c.mu.Unlock()
	c.publish(changes)
}

// Detach unbinds the controller from its view and resets derived
// state.
func (c *Controller) Detach() {
	c.mu.Lock()
	c.teardownLocked()
	c.resetStateLocked()
	c.mu.Unlock()
}

// Close detaches and, if the controller owns its bus, closes it.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.teardownLocked()
	c.resetStateLocked()
	own := c.ownBus
	c.mu.Unlock()

	if own {
		return c.bus.Close()
	}
	return nil
}

// FullTimeExtent returns the union of all eligible layers' extents.
func (c *Controller) FullTimeExtent() temporal.TimeExtent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fullExtent
}

// FullExtentStart returns the start of the full time extent.
func (c *Controller) FullExtentStart() time.Time {
	return c.FullTimeExtent().Start()
}

// FullExtentEnd returns the end of the full time extent.
func (c *Controller) FullExtentEnd() time.Time {
	return c.FullTimeExtent().End()
}

// CurrentTimeExtent returns the view's selected sub-extent, falling
// back to the full extent when the view reports none. The fallback is
// recomputed on every read, never cached.
func (c *Controller) CurrentTimeExtent() temporal.TimeExtent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentExtentLocked()
}

// CurrentExtentStart returns the start of the current extent.
func (c *Controller) CurrentExtentStart() time.Time {
	return c.CurrentTimeExtent().Start()
}

// CurrentExtentEnd returns the end of the current extent.
func (c *Controller) CurrentExtentEnd() time.Time {
	return c.CurrentTimeExtent().End()
}

// NumberOfSteps returns the total step count over the full extent.
func (c *Controller) NumberOfSteps() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.numberOfSteps
}

// StepTimes returns the ordered step timestamps.
func (c *Controller) StepTimes() []time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]time.Time, len(c.stepTimes))
	copy(out, c.stepTimes)
	return out
}

// StartStep returns the step index of the current extent's start.
func (c *Controller) StartStep() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startStep
}

// EndStep returns the step index of the current extent's end.
func (c *Controller) EndStep() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endStep
}

// SetStartInterval moves the current extent's start to the given step
// index, keeping the end bound unchanged. The index is not validated;
// the view decides what to accept. A no-op while the full extent is
// empty.
func (c *Controller) SetStartInterval(index int) {
	c.mu.Lock()
	if c.geoView == nil || c.fullExtent.IsEmpty() {
		c.mu.Unlock()
		return
	}
	extent := temporal.NewTimeExtent(c.stepTimeLocked(index), c.currentExtentLocked().End())
	v := c.geoView
	c.mu.Unlock()

	// The view's change signal re-derives step indices synchronously.
	v.SetTimeExtent(extent)
}

// SetEndInterval moves the current extent's end to the given step
// index, keeping the start bound unchanged. Same no-validation and
// empty-extent rules as SetStartInterval.
func (c *Controller) SetEndInterval(index int) {
	c.mu.Lock()
	if c.geoView == nil || c.fullExtent.IsEmpty() {
		c.mu.Unlock()
		return
	}
	extent := temporal.NewTimeExtent(c.currentExtentLocked().Start(), c.stepTimeLocked(index))
	v := c.geoView
	c.mu.Unlock()

	v.SetTimeExtent(extent)
}

// SetStartAndEndIntervals moves both bounds at once.
func (c *Controller) SetStartAndEndIntervals(startIndex, endIndex int) {
	c.mu.Lock()
	if c.geoView == nil || c.fullExtent.IsEmpty() {
		c.mu.Unlock()
		return
	}
	extent := temporal.NewTimeExtent(c.stepTimeLocked(startIndex), c.stepTimeLocked(endIndex))
	v := c.geoView
	c.mu.Unlock()

	v.SetTimeExtent(extent)
}

// --- internal ---

// resetStateLocked clears derived state without emitting. The next
// recompute announces whatever it derives.
func (c *Controller) resetStateLocked() {
	c.fullExtent = temporal.TimeExtent{}
	c.intervalMillis = 0
	c.numberOfSteps = 0
	c.stepTimes = nil
	c.startStep = 0
	c.endStep = 0
	c.lastCurrent = temporal.TimeExtent{}
}

// teardownLocked disconnects every collaborator subscription so a new
// attachment never receives duplicate notifications.
func (c *Controller) teardownLocked() {
	for _, d := range c.viewDisconnects {
		d()
	}
	c.viewDisconnects = nil
	for _, d := range c.listDisconnects {
		d()
	}
	c.listDisconnects = nil
	for l, d := range c.pending {
		d()
		delete(c.pending, l)
	}
	c.layers = nil
	c.geoView = nil
}

// onModelChanged re-resolves the layer collection from the attached
// view and re-subscribes to its add/remove signals.
func (c *Controller) onModelChanged() {
	c.mu.Lock()
	v := c.geoView
	if v == nil {
		c.mu.Unlock()
		return
	}
	layers := v.OperationalLayers()
	if layers == nil {
		c.mu.Unlock()
		return
	}

	for _, d := range c.listDisconnects {
		d()
	}
	c.listDisconnects = c.listDisconnects[:0]
	c.layers = layers
	c.listDisconnects = append(c.listDisconnects,
		layers.Added().Connect(func(layer.Layer) { c.onLayersChanged() }),
		layers.Removed().Connect(func(l layer.Layer) { c.onLayerRemoved(l) }),
	)
	c.mu.Unlock()

	c.recomputeTimeProperties()
}

func (c *Controller) onLayersChanged() {
	c.recomputeTimeProperties()
}

func (c *Controller) onLayerRemoved(l layer.Layer) {
	c.mu.Lock()
	if d, ok := c.pending[l]; ok {
		delete(c.pending, l)
		d()
	}
	c.mu.Unlock()

	c.recomputeTimeProperties()
}

func (c *Controller) onLayerDoneLoading(l layer.Layer) {
	c.mu.Lock()
	if d, ok := c.pending[l]; ok {
		delete(c.pending, l)
		d()
	}
	c.mu.Unlock()

	c.recomputeTimeProperties()
}

func (c *Controller) onViewExtentChanged() {
	c.mu.Lock()
	changes := c.calculateStepPositionsLocked()
	changes = append(changes, c.currentChangeLocked()...)
	c.mu.Unlock()

	c.publish(changes)
}

// watchPendingLocked defers a still-loading layer: recomputation
// re-enters once its load finishes, successfully or not.
func (c *Controller) watchPendingLocked(l layer.Layer) {
	if _, ok := c.pending[l]; ok {
		return
	}
	c.pending[l] = l.DoneLoading().Connect(func(layer.LoadStatus) {
		c.onLayerDoneLoading(l)
	})
}

// recomputeTimeProperties is the extent aggregation pass: it filters
// the layer collection to the eligible time-aware layers, unions their
// extents into the full extent, resolves the step interval, and
// regenerates the step axis. Notifications fire only for values that
// actually changed.
func (c *Controller) recomputeTimeProperties() {
	started := time.Now()

	c.mu.Lock()
	if c.layers == nil {
		c.mu.Unlock()
		return
	}

	var eligible []layer.TimeAware
	for _, l := range c.layers.All() {
		ta, ok := layer.AsTimeAware(l)
		if !ok {
			continue
		}
		if !l.LoadStatus().Terminal() {
			c.watchPendingLocked(l)
			continue
		}
		if !ta.IsTimeFilteringEnabled() {
			continue
		}
		if !l.IsVisible() {
			continue
		}
		eligible = append(eligible, ta)
	}

	if len(eligible) == 0 {
		c.mu.Unlock()
		c.log.Debug().Msg("no eligible time-aware layers, keeping previous time properties")
		return
	}

	// Union starts from the current full extent, so it only ever
	// widens.
	fullExtent := c.fullExtent
	var interval temporal.TimeValue
	for _, ta := range eligible {
		fullExtent = ta.FullTimeExtent().Union(fullExtent)

		layerInterval := ta.TimeInterval()
		if interval.IsEmpty() {
			interval = layerInterval
		} else if layerInterval.GreaterThan(interval) {
			interval = layerInterval
		}
	}

	// Eligible layers may not have resolved an extent yet. Until at
	// least one contributes a real range there is no axis to derive.
	if fullExtent.IsEmpty() {
		c.mu.Unlock()
		c.log.Debug().Msg("eligible layers report no time extent yet, keeping previous time properties")
		return
	}

	rangeMillis := fullExtent.RangeMillis()
	if interval.IsEmpty() || interval.Milliseconds() <= 0 {
		interval = temporal.NewTimeValue(1, temporal.EstimateUnit(float64(rangeMillis)))
	}
	c.intervalMillis = interval.Milliseconds()

	var changes []change
	if !fullExtent.Equal(c.fullExtent) {
		c.fullExtent = fullExtent
		changes = append(changes, change{event.TopicFullTimeExtent, extentPayload(fullExtent)})
	}

	steps := int(float64(rangeMillis)/c.intervalMillis) + 1
	if steps != c.numberOfSteps {
		c.numberOfSteps = steps
		changes = append(changes, change{event.TopicNumberOfSteps, event.StepCountPayload{NumberOfSteps: steps}})
	}

	// The step axis is regenerated in full, never patched.
	stepTimes := makeStepTimes(fullExtent.Start(), c.intervalMillis, steps)
	if !equalTimes(stepTimes, c.stepTimes) {
		c.stepTimes = stepTimes
		changes = append(changes, change{event.TopicStepTimes, event.StepTimesPayload{Times: stepTimes}})
	}

	changes = append(changes, c.calculateStepPositionsLocked()...)
	changes = append(changes, c.currentChangeLocked()...)

	eligibleCount := len(eligible)
	stepsNow := c.numberOfSteps
	c.mu.Unlock()

	c.metrics.ObserveRecompute(time.Since(started), eligibleCount, stepsNow)
	c.log.Debug().
		Int("eligible_layers", eligibleCount).
		Int("number_of_steps", stepsNow).
		Float64("interval_ms", interval.Milliseconds()).
		Msg("time properties recomputed")

	c.publish(changes)
}

// currentExtentLocked derives the current extent: the view's reported
// extent, or the full extent when the view reports none.
func (c *Controller) currentExtentLocked() temporal.TimeExtent {
	if c.geoView != nil {
		if e := c.geoView.TimeExtent(); !e.IsEmpty() {
			return e
		}
	}
	return c.fullExtent
}

// calculateStepPositionsLocked re-derives startStep/endStep from the
// view's reported extent using truncating division: a bound that falls
// between two step boundaries is attributed to the earlier step. A
// no-op while the full extent is empty.
func (c *Controller) calculateStepPositionsLocked() []change {
	if c.fullExtent.IsEmpty() {
		return nil
	}

	fullStart := c.fullExtent.Start().UnixMilli()
	cur := c.currentExtentLocked()
	start := int(float64(cur.Start().UnixMilli()-fullStart) / c.intervalMillis)
	end := int(float64(cur.End().UnixMilli()-fullStart) / c.intervalMillis)

	var changes []change
	if start != c.startStep {
		c.startStep = start
		changes = append(changes, change{event.TopicStartStep, event.StepPayload{Step: start}})
	}
	if end != c.endStep {
		c.endStep = end
		changes = append(changes, change{event.TopicEndStep, event.StepPayload{Step: end}})
	}
	return changes
}

// currentChangeLocked announces the derived current extent when it
// differs from the last announced value.
func (c *Controller) currentChangeLocked() []change {
	cur := c.currentExtentLocked()
	if cur.Equal(c.lastCurrent) {
		return nil
	}
	c.lastCurrent = cur
	return []change{{event.TopicCurrentTimeExtent, extentPayload(cur)}}
}

// stepTimeLocked converts a step index to an absolute timestamp.
func (c *Controller) stepTimeLocked(index int) time.Time {
	startMs := c.fullExtent.Start().UnixMilli()
	return time.UnixMilli(startMs + int64(float64(index)*c.intervalMillis))
}

func (c *Controller) publish(changes []change) {
	for _, ch := range changes {
		evt, err := event.New(ch.topic, c.cfg.Source, c.clk.Now(), ch.payload, c.codec)
		if err != nil {
			c.log.Warn().Err(err).Str("topic", ch.topic).Msg("failed to encode notification")
			continue
		}
		if err := c.bus.Publish(context.Background(), *evt); err != nil {
			c.log.Warn().Err(err).Str("topic", ch.topic).Msg("failed to publish notification")
			continue
		}
		c.metrics.ObserveNotification(ch.topic)
	}
}

func extentPayload(e temporal.TimeExtent) event.ExtentPayload {
	if e.IsEmpty() {
		return event.ExtentPayload{Empty: true}
	}
	return event.ExtentPayload{Start: e.Start(), End: e.End()}
}

func makeStepTimes(start time.Time, intervalMillis float64, steps int) []time.Time {
	startMs := start.UnixMilli()
	times := make([]time.Time, steps)
	for i := range times {
		times[i] = time.UnixMilli(startMs + int64(float64(i)*intervalMillis))
	}
	return times
}

func equalTimes(a, b []time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
