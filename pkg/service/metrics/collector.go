package metrics

import (
	"net/http"
	"time"

	"github.com/crashlens/crashlens/pkg/domain/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Report outcomes
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Collector records report generation metrics in a Prometheus registry.
//
// Metrics:
//   - <ns>_reports_total: generated reports by outcome
//   - <ns>_report_duration_seconds: time to filter and aggregate
//   - <ns>_report_matched_rows: rows matched by the criteria
//   - <ns>_dataset_rows: rows in the loaded dataset
type Collector struct {
	registry *prometheus.Registry

	reportsTotal   *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	matchedRows    prometheus.Histogram
	datasetRows    prometheus.Gauge
}

var _ interfaces.Metrics = (*Collector)(nil)

// NewCollector creates a collector and registers its metrics. If registry is
// nil a fresh registry is created.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "crashlens"
	}

	c := &Collector{
		registry: registry,
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_total",
				Help:      "Total number of generated reports",
			},
			[]string{"outcome"},
		),
		reportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Duration of report generation in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"outcome"},
		),
		matchedRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_matched_rows",
				Help:      "Number of rows matched by report criteria",
				Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
			},
		),
		datasetRows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_rows",
				Help:      "Number of rows in the loaded dataset",
			},
		),
	}

	registry.MustRegister(c.reportsTotal, c.reportDuration, c.matchedRows, c.datasetRows)
	return c
}

// RecordReport records one report generation
func (c *Collector) RecordReport(outcome string, duration time.Duration, matched int) {
	c.reportsTotal.WithLabelValues(outcome).Inc()
	c.reportDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if outcome == OutcomeSuccess || outcome == OutcomeEmpty {
		c.matchedRows.Observe(float64(matched))
	}
}

// SetDatasetRows publishes the size of the loaded dataset
func (c *Collector) SetDatasetRows(rows int) {
	c.datasetRows.Set(float64(rows))
}

// Handler returns the HTTP handler exposing the registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Discard is a Metrics implementation that records nothing
type Discard struct{}

var _ interfaces.Metrics = Discard{}

func (Discard) RecordReport(string, time.Duration, int) {}
func (Discard) SetDatasetRows(int)                      {}
