package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "heritage"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Dataset loading.
	DatasetLoads    *prometheus.CounterVec // labels: outcome={success,error}
	SourceFallbacks *prometheus.CounterVec // labels: table
	IngestFills     *prometheus.CounterVec // labels: column
	ClampedValues   prometheus.Counter

	// Request computation.
	ComputeDuration *prometheus.HistogramVec // labels: endpoint

	// Score export.
	ExportBatches   prometheus.Counter
	ExportErrors    prometheus.Counter
	ExportedRecords prometheus.Counter
	ExporterRunning prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset loads by outcome.",
		}, []string{"outcome"}),
		SourceFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fallbacks_total",
			Help:      "Tables served from synthetic data after a warehouse failure or empty result.",
		}, []string{"table"}),
		IngestFills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_fills_total",
			Help:      "Values defaulted at ingestion by column.",
		}, []string{"column"}),
		ClampedValues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_clamped_values_total",
			Help:      "Scores clamped into [0,1] at ingestion.",
		}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time to load the dataset and compute a response, by endpoint.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		ExportBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_batches_total",
			Help:      "Score snapshots published.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_errors_total",
			Help:      "Failed score snapshot builds or publishes.",
		}),
		ExportedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_records_total",
			Help:      "Messages written to the export topic.",
		}),
		ExporterRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "exporter_running",
			Help:      "1 when the export loop is active, 0 when shut down.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when site geocoding is enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.DatasetLoads,
		m.SourceFallbacks,
		m.IngestFills,
		m.ClampedValues,
		m.ComputeDuration,
		m.ExportBatches,
		m.ExportErrors,
		m.ExportedRecords,
		m.ExporterRunning,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	}
}
