package layer

import (
	"testing"
	"time"

	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
)

func TestLifecycle_HappyPath(t *testing.T) {
	lc := NewLifecycle()
	if got := lc.Status(); got != StatusNotLoaded {
		t.Fatalf("initial status = %v, want not_loaded", got)
	}

	if err := lc.Transition(StatusLoading); err != nil {
		t.Fatalf("NotLoaded -> Loading failed: %v", err)
	}
	if err := lc.Transition(StatusLoaded); err != nil {
		t.Fatalf("Loading -> Loaded failed: %v", err)
	}
	if got := lc.Status(); got != StatusLoaded {
		t.Errorf("status = %v, want loaded", got)
	}
}

func TestLifecycle_IllegalTransition(t *testing.T) {
	lc := NewLifecycle()

	if err := lc.Transition(StatusLoaded); err == nil {
		t.Error("NotLoaded -> Loaded should be rejected")
	}
	if got := lc.Status(); got != StatusNotLoaded {
		t.Errorf("status changed on rejected transition: %v", got)
	}
}

func TestLifecycle_RetryAfterFailure(t *testing.T) {
	lc := NewLifecycle()
	lc.Transition(StatusLoading)
	lc.Transition(StatusFailedToLoad)

	if err := lc.Transition(StatusLoading); err != nil {
		t.Errorf("FailedToLoad -> Loading (retry) should be allowed: %v", err)
	}
}

func TestLifecycle_DoneLoadingFiresOnBothOutcomes(t *testing.T) {
	for _, terminal := range []LoadStatus{StatusLoaded, StatusFailedToLoad} {
		t.Run(terminal.String(), func(t *testing.T) {
			lc := NewLifecycle()

			var got []LoadStatus
			lc.DoneLoading().Connect(func(s LoadStatus) { got = append(got, s) })

			lc.Transition(StatusLoading)
			if len(got) != 0 {
				t.Fatal("DoneLoading fired on entering Loading")
			}

			lc.Transition(terminal)
			if len(got) != 1 || got[0] != terminal {
				t.Errorf("DoneLoading notifications = %v, want [%v]", got, terminal)
			}
		})
	}
}

func TestList_AddRemoveSignals(t *testing.T) {
	list := NewList()

	var added, removed []Layer
	list.Added().Connect(func(l Layer) { added = append(added, l) })
	list.Removed().Connect(func(l Layer) { removed = append(removed, l) })

	a := NewFeatureLayer("ships")
	b := NewFeatureLayer("storms")
	list.Add(a)
	list.Add(b)

	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	if len(added) != 2 || added[0] != a || added[1] != b {
		t.Errorf("Added signal saw %d layers, want [a b]", len(added))
	}

	list.Remove(a)
	if list.Len() != 1 || list.At(0) != b {
		t.Errorf("after Remove, list should hold only b")
	}
	if len(removed) != 1 || removed[0] != a {
		t.Errorf("Removed signal saw %v, want [a]", removed)
	}

	// Removing an absent layer is a no-op and fires nothing.
	list.Remove(a)
	if len(removed) != 1 {
		t.Error("Removed signal fired for an absent layer")
	}
}

func TestList_InitialContentsFireNoSignals(t *testing.T) {
	fired := false
	list := NewList(NewFeatureLayer("preexisting"))
	list.Added().Connect(func(Layer) { fired = true })

	if fired {
		t.Error("Added fired for initial contents")
	}
	if list.Len() != 1 {
		t.Errorf("Len = %d, want 1", list.Len())
	}
}

func TestList_AtOutOfRange(t *testing.T) {
	list := NewList(NewFeatureLayer("only"))
	if list.At(-1) != nil || list.At(1) != nil {
		t.Error("At out of range should return nil")
	}
}

func TestAsTimeAware(t *testing.T) {
	feature := NewFeatureLayer("ships")
	basemap := NewBasemapLayer("topo")

	if _, ok := AsTimeAware(feature); !ok {
		t.Error("FeatureLayer should expose the time-aware capability")
	}
	if _, ok := AsTimeAware(basemap); ok {
		t.Error("BasemapLayer should not expose the time-aware capability")
	}
}

func TestFeatureLayer_Defaults(t *testing.T) {
	f := NewFeatureLayer("ships")

	if !f.IsVisible() {
		t.Error("new layer should be visible")
	}
	if !f.IsTimeFilteringEnabled() {
		t.Error("new layer should have time filtering enabled")
	}
	if f.LoadStatus() != StatusNotLoaded {
		t.Errorf("LoadStatus = %v, want not_loaded", f.LoadStatus())
	}
	if !f.FullTimeExtent().IsEmpty() {
		t.Error("extent should default to empty")
	}
	if !f.TimeInterval().IsEmpty() {
		t.Error("interval should default to empty")
	}
}

func TestFeatureLayer_Options(t *testing.T) {
	start := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC)
	extent := temporal.NewTimeExtent(start, end)
	interval := temporal.NewTimeValue(1, temporal.UnitWeeks)

	f := NewFeatureLayer("storms",
		WithFullTimeExtent(extent),
		WithTimeInterval(interval),
		WithTimeFiltering(false),
		WithVisible(false),
	)

	if !f.FullTimeExtent().Equal(extent) {
		t.Error("extent option not applied")
	}
	if f.TimeInterval().IsEmpty() || f.TimeInterval().Unit() != temporal.UnitWeeks {
		t.Error("interval option not applied")
	}
	if f.IsTimeFilteringEnabled() {
		t.Error("time filtering should be disabled")
	}
	if f.IsVisible() {
		t.Error("layer should be hidden")
	}
}
