package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fish_stock_map"

// Metrics holds the Prometheus counters, histograms, and gauges for the map service.
type Metrics struct {
	Queries          *prometheus.CounterVec // labels: endpoint
	MapRenders       *prometheus.CounterVec // labels: outcome={rendered,no_data,schema_error}
	RenderDuration   prometheus.Histogram
	UnmatchedRegions prometheus.Gauge
	LastRender       prometheus.Gauge // unix seconds of the last rendered map

	// Classifier metrics.
	Predictions        *prometheus.CounterVec // labels: outcome={success,input_error,classifier_error,disabled}
	ClassifierCache    *prometheus.CounterVec // labels: result={hit,miss}
	ClassifierDuration prometheus.Histogram
	EventsPublished    prometheus.Counter

	// Dataset size and load time, set once at startup.
	DatasetRecords  prometheus.Gauge
	DatasetRegions  prometheus.Gauge
	DatasetLoadedAt prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates metrics registered with reg. A nil reg leaves them
// unregistered, for one-shot tools that never expose /metrics.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	if reg != nil {
		reg.MustRegister(m.collectors()...)
	}
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

func newMetrics() *Metrics {
	return &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Dashboard queries served, by endpoint.",
		}, []string{"endpoint"}),
		MapRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_renders_total",
			Help:      "Map render attempts by outcome.",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of a filter-aggregate-join-render cycle.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		UnmatchedRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unmatched_regions",
			Help:      "Regions without records in the most recent map render.",
		}),
		LastRender: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_render_timestamp_seconds",
			Help:      "Unix time of the most recent map render.",
		}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Overfishing predictions by outcome.",
		}, []string{"outcome"}),
		ClassifierCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_cache_total",
			Help:      "Classifier cache lookups by result.",
		}, []string{"result"}),
		ClassifierDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_duration_seconds",
			Help:      "Classifier request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_events_published_total",
			Help:      "Prediction events written to Kafka.",
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records in the loaded stock table.",
		}),
		DatasetRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_regions",
			Help:      "Regions in the loaded boundary dataset.",
		}),
		DatasetLoadedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded_timestamp_seconds",
			Help:      "Unix time the dataset snapshot was loaded.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Queries,
		m.MapRenders,
		m.RenderDuration,
		m.UnmatchedRegions,
		m.LastRender,
		m.Predictions,
		m.ClassifierCache,
		m.ClassifierDuration,
		m.EventsPublished,
		m.DatasetRecords,
		m.DatasetRegions,
		m.DatasetLoadedAt,
	}
}
