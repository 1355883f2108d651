// slider-sim drives the time slider controller against a synthetic
// map: layers come from a YAML scenario file or a seeded generator,
// load completion is staggered on real timers, and every controller
// notification is journaled and logged.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BYTE-6D65/timeaxis/pkg/event"
	"github.com/BYTE-6D65/timeaxis/pkg/layer"
	"github.com/BYTE-6D65/timeaxis/pkg/slider"
	"github.com/BYTE-6D65/timeaxis/pkg/telemetry"
	"github.com/BYTE-6D65/timeaxis/pkg/testdata"
	"github.com/BYTE-6D65/timeaxis/pkg/toolkit"
	"github.com/BYTE-6D65/timeaxis/pkg/view"
)

type loadable interface {
	Load() error
	FinishLoading() error
}

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario file (empty: generate from -seed)")
		seed         = flag.Int64("seed", 1, "seed for the generated scenario")
		layerCount   = flag.Int("layers", 4, "layer count for the generated scenario")
		metricsAddr  = flag.String("metrics", "", "serve prometheus metrics on this address (e.g. :9090)")
		settle       = flag.Duration("settle", 2*time.Second, "how long to wait for layer loads before stepping")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli}).
		With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if err := run(logger, *scenarioPath, *seed, *layerCount, *metricsAddr, *settle); err != nil {
		logger.Fatal().Err(err).Msg("sim failed")
	}
}

func run(logger zerolog.Logger, scenarioPath string, seed int64, layerCount int, metricsAddr string, settle time.Duration) error {
	scn, err := loadScenario(scenarioPath, seed, layerCount)
	if err != nil {
		return err
	}
	logger.Info().Str("scenario", scn.Name).Int("layers", len(scn.Layers)).Msg("scenario loaded")

	layers, err := scn.Build()
	if err != nil {
		return fmt.Errorf("build scenario: %w", err)
	}

	var metrics *telemetry.Metrics
	if metricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics = telemetry.InitMetrics(registry)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		logger.Info().Str("addr", metricsAddr).Msg("serving metrics")
	}

	ctrl := slider.New(
		slider.WithConfig(slider.LoadFromEnv()),
		slider.WithLogger(logger),
		slider.WithMetrics(metrics),
	)
	defer ctrl.Close()

	tools := toolkit.NewManager()
	tools.Add(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := ctrl.Notifications().Subscribe(ctx, event.Filter{Types: []string{"slider.*"}})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer sub.Close()

	journal := event.NewJournal()
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for evt := range sub.Events() {
			journal.Append(evt)
			logger.Info().Str("topic", evt.Type).Str("id", evt.ID).Msg("notification")
		}
	}()

	mapView := view.NewMapView()
	mapView.SetMap(view.NewMap(layers...))
	ctrl.Attach(mapView)

	driveLoads(logger, scn, layers)

	// Loads run on real timers; give them room to land before reading
	// the derived properties.
	deadline := time.Now().Add(settle)
	for time.Now().Before(deadline) {
		if allLoadsDone(layers) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	full := ctrl.FullTimeExtent()
	steps := ctrl.NumberOfSteps()
	logger.Info().
		Time("start", full.Start()).
		Time("end", full.End()).
		Int("steps", steps).
		Msg("derived time properties")

	if steps > 1 {
		ctrl.SetStartAndEndIntervals(steps/4, steps-1-steps/4)
		logger.Info().Int("start_step", ctrl.StartStep()).Int("end_step", ctrl.EndStep()).Msg("narrowed window")

		ctrl.SetStartInterval(0)
		ctrl.SetEndInterval(steps - 1)
		logger.Info().Int("start_step", ctrl.StartStep()).Int("end_step", ctrl.EndStep()).Msg("restored full window")
	}

	// Let in-flight notifications reach the journal before closing.
	time.Sleep(100 * time.Millisecond)
	cancel()
	sub.Close()
	<-drained

	logger.Info().Int("notifications", journal.Len()).Msg("sim complete")
	return nil
}

func loadScenario(path string, seed int64, layerCount int) (*testdata.Scenario, error) {
	if path != "" {
		return testdata.LoadScenario(path)
	}
	return testdata.Random(seed, layerCount), nil
}

// driveLoads starts every layer's load and completes it after the
// scenario's declared delay. Build preserves scenario order, so specs
// and layers line up by index.
func driveLoads(logger zerolog.Logger, scn *testdata.Scenario, layers []layer.Layer) {
	for i, l := range layers {
		spec := scn.Layers[i]
		ld, ok := l.(loadable)
		if !ok {
			continue
		}
		if err := ld.Load(); err != nil {
			logger.Warn().Str("layer", l.Name()).Err(err).Msg("load start rejected")
			continue
		}
		l := l
		go func() {
			if d := spec.LoadDelay.Std(); d > 0 {
				time.Sleep(d)
			}
			var err error
			fl, isFeature := l.(*layer.FeatureLayer)
			if spec.FailLoad && isFeature {
				err = fl.FailLoading()
			} else {
				err = ld.FinishLoading()
			}
			if err != nil {
				logger.Warn().Str("layer", l.Name()).Err(err).Msg("load completion rejected")
				return
			}
			logger.Debug().Str("layer", l.Name()).Str("status", l.LoadStatus().String()).Msg("load finished")
		}()
	}
}

func allLoadsDone(layers []layer.Layer) bool {
	for _, l := range layers {
		if !l.LoadStatus().Terminal() {
			return false
		}
	}
	return true
}
