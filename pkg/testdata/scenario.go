// Package testdata builds synthetic layer collections for the
// slider-sim binary and load tests: either declared in a YAML scenario
// file or generated from a seed.
package testdata

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BYTE-6D65/timeaxis/pkg/layer"
	"github.com/BYTE-6D65/timeaxis/pkg/temporal"
)

// Duration wraps time.Duration so scenarios can declare delays in the
// usual "200ms" / "2s" form.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Scenario describes a synthetic set of layers.
type Scenario struct {
	Name   string      `yaml:"name"`
	Layers []LayerSpec `yaml:"layers"`
}

// LayerSpec describes one synthetic layer.
type LayerSpec struct {
	Name string `yaml:"name"`

	// Basemap layers carry no time-aware capability; the remaining
	// fields are ignored for them.
	Basemap bool `yaml:"basemap,omitempty"`

	Start time.Time `yaml:"start,omitempty"`
	End   time.Time `yaml:"end,omitempty"`

	// Interval is the native update granularity, e.g. "1 days",
	// "2 hours", "1 weeks". Empty means the layer reports none.
	Interval string `yaml:"interval,omitempty"`

	Hidden            bool `yaml:"hidden,omitempty"`
	FilteringDisabled bool `yaml:"filtering_disabled,omitempty"`

	// LoadDelay keeps the layer in Loading for this long in the sim;
	// zero means it finishes immediately.
	LoadDelay Duration `yaml:"load_delay,omitempty"`

	// FailLoad makes the load end in FailedToLoad instead of Loaded.
	FailLoad bool `yaml:"fail_load,omitempty"`
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses YAML scenario bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(s.Layers) == 0 {
		return nil, fmt.Errorf("scenario %q declares no layers", s.Name)
	}
	return &s, nil
}

// Build constructs the scenario's layers. All layers start in
// StatusNotLoaded; the caller drives loading.
func (s *Scenario) Build() ([]layer.Layer, error) {
	layers := make([]layer.Layer, 0, len(s.Layers))
	for i, spec := range s.Layers {
		if spec.Name == "" {
			return nil, fmt.Errorf("layer %d has no name", i)
		}
		if spec.Basemap {
			layers = append(layers, layer.NewBasemapLayer(spec.Name))
			continue
		}

		opts := []layer.FeatureLayerOption{
			layer.WithVisible(!spec.Hidden),
			layer.WithTimeFiltering(!spec.FilteringDisabled),
		}
		if !spec.Start.IsZero() || !spec.End.IsZero() {
			opts = append(opts, layer.WithFullTimeExtent(temporal.NewTimeExtent(spec.Start, spec.End)))
		}
		if spec.Interval != "" {
			interval, err := ParseInterval(spec.Interval)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", spec.Name, err)
			}
			opts = append(opts, layer.WithTimeInterval(interval))
		}
		layers = append(layers, layer.NewFeatureLayer(spec.Name, opts...))
	}
	return layers, nil
}

var unitNames = map[string]temporal.TimeUnit{
	"milliseconds": temporal.UnitMilliseconds,
	"seconds":      temporal.UnitSeconds,
	"minutes":      temporal.UnitMinutes,
	"hours":        temporal.UnitHours,
	"days":         temporal.UnitDays,
	"weeks":        temporal.UnitWeeks,
	"months":       temporal.UnitMonths,
	"years":        temporal.UnitYears,
	"decades":      temporal.UnitDecades,
	"centuries":    temporal.UnitCenturies,
}

// ParseInterval parses a "<magnitude> <unit>" interval declaration,
// e.g. "1 days" or "0.5 hours".
func ParseInterval(s string) (temporal.TimeValue, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return temporal.TimeValue{}, fmt.Errorf("invalid interval %q, want \"<magnitude> <unit>\"", s)
	}

	magnitude, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return temporal.TimeValue{}, fmt.Errorf("invalid interval magnitude %q", fields[0])
	}

	unit, ok := unitNames[strings.ToLower(fields[1])]
	if !ok {
		return temporal.TimeValue{}, fmt.Errorf("unknown interval unit %q", fields[1])
	}

	return temporal.NewTimeValue(magnitude, unit), nil
}

// Random generates a seeded scenario of n time-aware layers with
// overlapping extents, a mix of native intervals, and staggered load
// delays. The same seed always yields the same scenario.
func Random(seed int64, n int) *Scenario {
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

	intervals := []string{"", "1 hours", "6 hours", "1 days", "1 weeks", "1 months"}

	s := &Scenario{Name: fmt.Sprintf("random-%d", seed)}
	for i := 0; i < n; i++ {
		start := base.AddDate(0, 0, rng.Intn(365*5))
		spec := LayerSpec{
			Name:      fmt.Sprintf("layer-%02d", i),
			Start:     start,
			End:       start.AddDate(0, 0, 1+rng.Intn(365*2)),
			Interval:  intervals[rng.Intn(len(intervals))],
			LoadDelay: Duration(time.Duration(rng.Intn(500)) * time.Millisecond),
		}
		s.Layers = append(s.Layers, spec)
	}
	return s
}
