// Package metrics provides Prometheus metrics for extension scans.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "extmodel"

// Scan outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Extension results.
const (
	ResultValid    = "valid"
	ResultRejected = "rejected"
)

// Collector holds all Prometheus metrics for extmodel.
type Collector struct {
	// Scan metrics
	ScansTotal   *prometheus.CounterVec
	ScanDuration prometheus.Histogram
	FilesLoaded  prometheus.Counter
	LastScan     prometheus.Gauge

	// Parse metrics
	ExtensionsTotal *prometheus.CounterVec
	Diagnostics     *prometheus.CounterVec
	ParseDuration   prometheus.Histogram

	// Publish metrics
	FactsPublished prometheus.Counter
	PublishErrors  prometheus.Counter
}

// New creates a collector registered with the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scans_total",
				Help:      "Total number of source scans by outcome",
			},
			[]string{"outcome"},
		),
		ScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scan_duration_seconds",
				Help:      "Duration of a full scan in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		FilesLoaded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_loaded_total",
				Help:      "Total number of source files loaded into declaration graphs",
			},
		),
		LastScan: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_scan_timestamp",
				Help:      "Unix timestamp of the last completed scan",
			},
		),
		ExtensionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extensions_total",
				Help:      "Total number of extensions parsed by result",
			},
			[]string{"result"},
		),
		Diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of model diagnostics by kind",
			},
			[]string{"kind"},
		),
		ParseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_duration_seconds",
				Help:      "Duration of parsing one extension in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		FactsPublished: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "facts_published_total",
				Help:      "Total number of graph facts published",
			},
		),
		PublishErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_errors_total",
				Help:      "Total number of failed entity publishes",
			},
		),
	}
}

// ObserveScan records a finished scan.
func (c *Collector) ObserveScan(start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	c.ScansTotal.WithLabelValues(outcome).Inc()
	c.ScanDuration.Observe(time.Since(start).Seconds())
	c.LastScan.SetToCurrentTime()
}

// ObserveExtension records one extension parse. kind is the diagnostic kind of
// a rejected extension and is empty for a valid one.
func (c *Collector) ObserveExtension(d time.Duration, kind string) {
	c.ParseDuration.Observe(d.Seconds())
	if kind == "" {
		c.ExtensionsTotal.WithLabelValues(ResultValid).Inc()
		return
	}
	c.ExtensionsTotal.WithLabelValues(ResultRejected).Inc()
	c.Diagnostics.WithLabelValues(kind).Inc()
}
