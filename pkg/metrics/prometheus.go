// Package metrics provides Prometheus metrics for the tournament image builder
// and report generator.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build result label values.
const (
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
	ResultSkipped   = "skipped"
)

// Manager manages all Prometheus metrics for the tools.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Image builder
	submissionsDiscovered prometheus.Gauge
	builds                *prometheus.CounterVec
	buildDuration         prometheus.Histogram
	stagingDuration       prometheus.Histogram

	// Report generator
	sectionDuration *prometheus.HistogramVec
	sectionRows     *prometheus.GaugeVec
	chartsRendered  prometheus.Counter
	lastReportUnix  prometheus.Gauge
	errorsByStage   *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rplcs",
		subsystem:        "tournament",
		histogramBuckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.submissionsDiscovered = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_discovered",
		Help:      "Number of submission directories with a build descriptor in the last run",
	})

	m.builds = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "builds_total",
			Help:      "Image builds by result",
		},
		[]string{"result"},
	)

	m.buildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_duration_seconds",
		Help:      "Wall time of a single container build invocation",
		Buckets:   m.histogramBuckets,
	})

	m.stagingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "staging_duration_seconds",
		Help:      "Time spent copying the support directory into a submission",
		Buckets:   prometheus.DefBuckets,
	})

	m.sectionDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "report_section_duration_seconds",
			Help:      "Query and render time per report section",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"section"},
	)

	m.sectionRows = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "report_rows",
			Help:      "Rows returned by each report section query",
		},
		[]string{"section"},
	)

	m.chartsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "charts_rendered_total",
		Help:      "Chart images written to the plots directory",
	})

	m.lastReportUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_last_generated_unixtime",
		Help:      "Unix time of the last successfully generated report",
	})

	m.errorsByStage = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Errors by tool and stage",
		},
		[]string{"tool", "stage"},
	)
}

// UpdateSubmissionsDiscovered sets the number of submissions found.
func UpdateSubmissionsDiscovered(count int) {
	globalManager.submissionsDiscovered.Set(float64(count))
}

// RecordBuild increments the build counter for result.
func RecordBuild(result string) {
	globalManager.builds.WithLabelValues(result).Inc()
}

// RecordBuildDuration records a build duration in seconds.
func RecordBuildDuration(seconds float64) {
	globalManager.buildDuration.Observe(seconds)
}

// RecordStagingDuration records a staging copy duration in seconds.
func RecordStagingDuration(seconds float64) {
	globalManager.stagingDuration.Observe(seconds)
}

// RecordSectionDuration records how long a report section took.
func RecordSectionDuration(section string, seconds float64) {
	globalManager.sectionDuration.WithLabelValues(section).Observe(seconds)
}

// UpdateSectionRows sets the row count of a report section.
func UpdateSectionRows(section string, rows int) {
	globalManager.sectionRows.WithLabelValues(section).Set(float64(rows))
}

// RecordChartRendered increments the rendered chart counter.
func RecordChartRendered() {
	globalManager.chartsRendered.Inc()
}

// UpdateLastReportTime sets the last report generation time.
func UpdateLastReportTime(unix int64) {
	globalManager.lastReportUnix.Set(float64(unix))
}

// RecordError records an error for a tool stage.
func RecordError(tool, stage string) {
	globalManager.errorsByStage.WithLabelValues(tool, stage).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current metrics in the text exposition format to
// path, for collection by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
