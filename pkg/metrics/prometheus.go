// Package metrics provides Prometheus metrics for the monetizer pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Pipeline stage metrics
	trendsAnalyzed         prometheus.Counter
	opportunitiesFound     prometheus.Counter
	tacticsSuggested       prometheus.Counter
	tacticEvaluations      *prometheus.CounterVec
	riskAssessments        *prometheus.CounterVec
	operationErrors        *prometheus.CounterVec
	operationLatency       *prometheus.HistogramVec
	pipelineRuns           *prometheus.CounterVec
	lastOpportunityCount   prometheus.Gauge
	lastRunDurationSeconds prometheus.Gauge

	// Tracker metrics
	trackerActive        prometheus.Gauge
	trackerSamples       prometheus.Counter
	trackerSampleErrors  prometheus.Counter
	processCPUPercent    prometheus.Gauge
	processRSSBytes      prometheus.Gauge
	processGoroutines    prometheus.Gauge
	processHeapAlloc     prometheus.Gauge
	trackerSeriesSamples prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "monetizer",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.trendsAnalyzed = auto.NewCounter(m.counterOpts(
		"trends_analyzed_total", "Total number of segment trends produced by trend analysis"))
	m.opportunitiesFound = auto.NewCounter(m.counterOpts(
		"opportunities_identified_total", "Total number of segments judged ripe opportunities"))
	m.tacticsSuggested = auto.NewCounter(m.counterOpts(
		"tactics_suggested_total", "Total number of monetization tactics suggested"))
	m.tacticEvaluations = auto.NewCounterVec(m.counterOpts(
		"tactic_evaluations_total", "Tactic evaluations by resulting score band"),
		[]string{"band"})
	m.riskAssessments = auto.NewCounterVec(m.counterOpts(
		"risk_assessments_total", "Risk assessments by resulting category"),
		[]string{"category"})
	m.operationErrors = auto.NewCounterVec(m.counterOpts(
		"operation_errors_total", "Errors returned by public operations"),
		[]string{"component", "operation"})
	m.operationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "operation_duration_seconds",
		Help:        "Latency of public operations in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"component", "operation"})
	m.pipelineRuns = auto.NewCounterVec(m.counterOpts(
		"runs_total", "Pipeline runs by outcome"),
		[]string{"outcome"})
	m.lastOpportunityCount = auto.NewGauge(m.gaugeOpts(
		"last_run_opportunities", "Opportunities identified by the most recent run"))
	m.lastRunDurationSeconds = auto.NewGauge(m.gaugeOpts(
		"last_run_duration_seconds", "Duration of the most recent run"))

	m.trackerActive = auto.NewGauge(m.gaugeOpts(
		"tracker_active", "1 while performance tracking is running"))
	m.trackerSamples = auto.NewCounter(m.counterOpts(
		"tracker_samples_total", "Performance samples collected"))
	m.trackerSampleErrors = auto.NewCounter(m.counterOpts(
		"tracker_sample_errors_total", "Performance samples that failed"))
	m.processCPUPercent = auto.NewGauge(m.gaugeOpts(
		"process_cpu_percent", "Process CPU usage percent at the last sample"))
	m.processRSSBytes = auto.NewGauge(m.gaugeOpts(
		"process_rss_bytes", "Process resident set size at the last sample"))
	m.processGoroutines = auto.NewGauge(m.gaugeOpts(
		"process_goroutines", "Goroutine count at the last sample"))
	m.processHeapAlloc = auto.NewGauge(m.gaugeOpts(
		"process_heap_alloc_bytes", "Heap bytes allocated at the last sample"))
	m.trackerSeriesSamples = auto.NewGauge(m.gaugeOpts(
		"tracker_retained_samples", "Samples currently retained by the tracker"))
}

// Pipeline stage metrics.

// RecordTrendsAnalyzed adds n analyzed segment trends.
func RecordTrendsAnalyzed(n int) {
	globalManager.trendsAnalyzed.Add(float64(n))
}

// RecordOpportunities adds n identified opportunities.
func RecordOpportunities(n int) {
	globalManager.opportunitiesFound.Add(float64(n))
}

// RecordTacticsSuggested adds n suggested tactics.
func RecordTacticsSuggested(n int) {
	globalManager.tacticsSuggested.Add(float64(n))
}

// RecordTacticEvaluation counts one tactic evaluation in the given band.
func RecordTacticEvaluation(band string) {
	globalManager.tacticEvaluations.WithLabelValues(band).Inc()
}

// RecordRiskAssessment counts one assessment in the given category.
func RecordRiskAssessment(category string) {
	globalManager.riskAssessments.WithLabelValues(category).Inc()
}

// RecordOperationError counts an error returned by component.operation.
func RecordOperationError(component, operation string) {
	globalManager.operationErrors.WithLabelValues(component, operation).Inc()
}

// RecordOperationLatency observes the latency of component.operation.
func RecordOperationLatency(component, operation string, seconds float64) {
	globalManager.operationLatency.WithLabelValues(component, operation).Observe(seconds)
}

// RecordPipelineRun records a finished run.
func RecordPipelineRun(outcome string, opportunities int, seconds float64) {
	globalManager.pipelineRuns.WithLabelValues(outcome).Inc()
	globalManager.lastOpportunityCount.Set(float64(opportunities))
	globalManager.lastRunDurationSeconds.Set(seconds)
}

// Tracker metrics.

// UpdateTrackerActive flips the tracker activity gauge.
func UpdateTrackerActive(active bool) {
	if active {
		globalManager.trackerActive.Set(1)
		return
	}
	globalManager.trackerActive.Set(0)
}

// RecordTrackerSample counts a successful sample and the resulting retention size.
func RecordTrackerSample(retained int) {
	globalManager.trackerSamples.Inc()
	globalManager.trackerSeriesSamples.Set(float64(retained))
}

// RecordTrackerSampleError counts a failed sample.
func RecordTrackerSampleError() {
	globalManager.trackerSampleErrors.Inc()
}

// UpdateProcessCPUPercent sets the sampled CPU percent.
func UpdateProcessCPUPercent(pct float64) {
	globalManager.processCPUPercent.Set(pct)
}

// UpdateProcessRSSBytes sets the sampled resident set size.
func UpdateProcessRSSBytes(bytes float64) {
	globalManager.processRSSBytes.Set(bytes)
}

// UpdateProcessGoroutines sets the sampled goroutine count.
func UpdateProcessGoroutines(count float64) {
	globalManager.processGoroutines.Set(count)
}

// UpdateProcessHeapAlloc sets the sampled heap allocation.
func UpdateProcessHeapAlloc(bytes float64) {
	globalManager.processHeapAlloc.Set(bytes)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
