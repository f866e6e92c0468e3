// Package observability holds the Prometheus metrics for extraction runs.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts extraction work: runs, per-year grid downloads, emitted
// rows, and all-missing results.
type Metrics struct {
	ExtractionRuns     prometheus.Counter
	ExtractionErrors   prometheus.Counter
	ExtractionDuration prometheus.Histogram
	YearsProcessed     prometheus.Counter
	RowsExtracted      prometheus.Counter
	AllMissingResults  prometheus.Counter
}

// NewMetrics creates and registers all extraction metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ExtractionRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sst",
			Name:      "extraction_runs_total",
			Help:      "Total extraction runs started.",
		}),
		ExtractionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sst",
			Name:      "extraction_errors_total",
			Help:      "Total extraction runs that failed.",
		}),
		ExtractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sst",
			Name:      "extraction_duration_seconds",
			Help:      "Wall time of extraction runs, including downloads.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 4, 8),
		}),
		YearsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sst",
			Name:      "years_processed_total",
			Help:      "Total per-year grid files fetched and extracted.",
		}),
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sst",
			Name:      "rows_extracted_total",
			Help:      "Total output rows produced.",
		}),
		AllMissingResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sst",
			Name:      "all_missing_results_total",
			Help:      "Runs whose every extracted value was the missing marker.",
		}),
	}

	prometheus.MustRegister(
		m.ExtractionRuns,
		m.ExtractionErrors,
		m.ExtractionDuration,
		m.YearsProcessed,
		m.RowsExtracted,
		m.AllMissingResults,
	)
	return m
}
