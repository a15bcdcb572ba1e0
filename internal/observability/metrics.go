package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// scrape-and-cache pipeline.
type Metrics struct {
	Scrapes        *prometheus.CounterVec   // labels: report={lkreport,basin_project}, outcome={success,error}
	ScrapeDuration *prometheus.HistogramVec // labels: report
	CacheResults   *prometheus.CounterVec   // labels: result={hit,refresh,stale_fallback,error}

	// FlowUnitCorrections counts basin project flow values rescaled by the
	// kcfs heuristic, so downstream consumers can audit corrected readings.
	FlowUnitCorrections *prometheus.CounterVec // labels: field={inflow,outflow}

	SnapshotRows prometheus.Gauge
	Visits       prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lakewatch",
			Name:      "scrapes_total",
			Help:      "Upstream report scrapes by report and outcome.",
		}, []string{"report", "outcome"}),
		ScrapeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lakewatch",
			Name:      "scrape_duration_seconds",
			Help:      "Duration of a fetch-and-parse cycle per report.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"report"}),
		CacheResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lakewatch",
			Name:      "cache_results_total",
			Help:      "Read requests by how the snapshot cache resolved them.",
		}, []string{"result"}),
		FlowUnitCorrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lakewatch",
			Name:      "flow_unit_corrections_total",
			Help:      "Flow values rescaled from kcfs to cfs by the unit heuristic.",
		}, []string{"field"}),
		SnapshotRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lakewatch",
			Name:      "snapshot_rows",
			Help:      "Project rows in the most recently built snapshot.",
		}),
		Visits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lakewatch",
			Name:      "visits_total",
			Help:      "Visit counter increments served.",
		}),
	}

	prometheus.MustRegister(
		m.Scrapes,
		m.ScrapeDuration,
		m.CacheResults,
		m.FlowUnitCorrections,
		m.SnapshotRows,
		m.Visits,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Scrapes:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "lakewatch", Name: "scrapes_total"}, []string{"report", "outcome"}),
		ScrapeDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "lakewatch", Name: "scrape_duration_seconds"}, []string{"report"}),
		CacheResults:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "lakewatch", Name: "cache_results_total"}, []string{"result"}),
		FlowUnitCorrections: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "lakewatch", Name: "flow_unit_corrections_total"}, []string{"field"}),
		SnapshotRows:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "lakewatch", Name: "snapshot_rows"}),
		Visits:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "lakewatch", Name: "visits_total"}),
	}
}
