package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the time slider controller
// and its notification bus.
type Metrics struct {
	// Controller metrics
	RecomputesTotal   prometheus.Counter
	RecomputeDuration prometheus.Histogram
	NumberOfSteps     prometheus.Gauge
	EligibleLayers    prometheus.Gauge

	// Notification bus metrics
	NotificationsTotal *prometheus.CounterVec
	EventsPublished    *prometheus.CounterVec
	EventsDropped      *prometheus.CounterVec
}

// InitMetrics registers the metrics with the given registerer. Call
// once at startup; passing nil uses the default registerer.
func InitMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	// Recompute is a bounded in-memory pass; buckets top out early.
	durationBuckets := []float64{
		0.000001, // 1µs
		0.000005, // 5µs
		0.00001,  // 10µs
		0.00005,  // 50µs
		0.0001,   // 100µs
		0.0005,   // 500µs
		0.001,    // 1ms
		0.005,    // 5ms
		0.01,     // 10ms
	}

	return &Metrics{
		RecomputesTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "timeaxis_recomputes_total",
				Help: "Total number of time-property recomputations",
			},
		),

		RecomputeDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "timeaxis_recompute_duration_seconds",
				Help:    "Duration of a full time-property recomputation",
				Buckets: durationBuckets,
			},
		),

		NumberOfSteps: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "timeaxis_number_of_steps",
				Help: "Current total step count over the full time extent",
			},
		),

		EligibleLayers: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "timeaxis_eligible_layers",
				Help: "Layers included in the last extent aggregation",
			},
		),

		NotificationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeaxis_notifications_total",
				Help: "Property-change notifications emitted, by topic",
			},
			[]string{"topic"},
		),

		EventsPublished: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeaxis_events_published_total",
				Help: "Total number of events published to the bus",
			},
			[]string{"bus", "topic"},
		),

		EventsDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeaxis_events_dropped_total",
				Help: "Total number of events dropped due to slow subscribers",
			},
			[]string{"bus", "topic", "subscription_id"},
		),
	}
}

// ObserveRecompute records one recomputation pass.
func (m *Metrics) ObserveRecompute(d time.Duration, eligibleLayers, numberOfSteps int) {
	if m == nil {
		return
	}
	m.RecomputesTotal.Inc()
	m.RecomputeDuration.Observe(d.Seconds())
	m.EligibleLayers.Set(float64(eligibleLayers))
	m.NumberOfSteps.Set(float64(numberOfSteps))
}

// ObserveNotification records one emitted property-change notification.
func (m *Metrics) ObserveNotification(topic string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(topic).Inc()
}

// EventPublished implements event.MetricsObserver.
func (m *Metrics) EventPublished(bus, topic string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(bus, topic).Inc()
}

// EventDropped implements event.MetricsObserver.
func (m *Metrics) EventDropped(bus, topic, subscriptionID string) {
	if m == nil {
		return
	}
	m.EventsDropped.WithLabelValues(bus, topic, subscriptionID).Inc()
}
