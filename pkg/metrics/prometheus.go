// Package metrics provides Prometheus metrics for the architecture recommendation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// LatencyBuckets is the default layout for latency histograms. Every
// latency in this package is recorded in milliseconds; the range spans a
// sub-millisecond scoring pass up to a ten second request.
var LatencyBuckets = []float64{ //nolint:gochecknoglobals // static bucket layout
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000,
}

// scoreBuckets cover the reachable raw score range (0..110 with the
// reference weights) in steps of ten.
var scoreBuckets = prometheus.LinearBuckets(0, 10, 13) //nolint:gochecknoglobals // static bucket layout

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Engine metrics
	recommendations      *prometheus.CounterVec
	generationLatency    prometheus.Histogram
	architectureSelected *prometheus.CounterVec
	architectureScore    *prometheus.HistogramVec

	// Knowledge base metrics
	catalogArchitectures prometheus.Gauge
	catalogPatterns      prometheus.Gauge
	catalogReloads       *prometheus.CounterVec

	// Questionnaire metrics
	questionnaireSubmissions *prometheus.CounterVec

	// Batch metrics
	batchRequests prometheus.Counter
	batchSize     prometheus.Histogram

	// Queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics
	workerCount             prometheus.Gauge
	workerProcessed         prometheus.Counter
	workerErrors            prometheus.Counter
	workerProcessingLatency prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "archrec",
		subsystem:        "engine",
		histogramBuckets: LatencyBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	return m.metricPrefix + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	counter := func(name, help string) prometheus.Counter {
		return auto.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels,
		})
	}
	counterVec := func(name, help string, l ...string) *prometheus.CounterVec {
		return auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels,
		}, l)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels,
		})
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels, Buckets: buckets,
		})
	}
	histogramVec := func(name, help string, buckets []float64, l ...string) *prometheus.HistogramVec {
		return auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels, Buckets: buckets,
		}, l)
	}

	m.recommendations = counterVec("recommendations_total",
		"Total number of recommendation requests by outcome", "status")
	m.generationLatency = histogram("generation_latency_milliseconds",
		"Time spent generating one recommendation result", m.histogramBuckets)
	m.architectureSelected = counterVec("architecture_selected_total",
		"How often each architecture appears in a result, by position", "architecture", "position")
	m.architectureScore = histogramVec("architecture_score",
		"Distribution of raw scores per architecture", scoreBuckets, "architecture")

	m.catalogArchitectures = gauge("catalog_architectures", "Number of architectures in the active catalog")
	m.catalogPatterns = gauge("catalog_patterns", "Number of design patterns in the active catalog")
	m.catalogReloads = counterVec("catalog_reloads_total", "Catalog reload attempts by outcome", "status")

	m.questionnaireSubmissions = counterVec("questionnaire_submissions_total",
		"Questionnaire submissions by outcome", "status")

	m.batchRequests = counter("batch_requests_total", "Total number of batch recommendation requests")
	m.batchSize = histogram("batch_size", "Number of requirement vectors per batch",
		prometheus.ExponentialBuckets(1, 2, 10))

	m.queueSize = gauge("queue_size", "Current number of queued batch jobs")
	m.queueCapacity = gauge("queue_capacity", "Maximum number of queued batch jobs")
	m.queueUtilization = gauge("queue_utilization_ratio", "Queue size divided by capacity")
	m.queueEnqueueRate = counter("queue_enqueue_total", "Total number of jobs enqueued")
	m.queueDequeueRate = counter("queue_dequeue_total", "Total number of jobs dequeued")
	m.queueEnqueueErrors = counter("queue_enqueue_errors_total", "Total number of rejected enqueues")

	m.workerCount = gauge("worker_count", "Number of batch workers")
	m.workerProcessed = counter("worker_processed_total", "Total number of jobs processed by workers")
	m.workerErrors = counter("worker_errors_total", "Total number of failed jobs")
	m.workerProcessingLatency = histogram("worker_processing_latency_milliseconds",
		"Worker job processing latency in milliseconds", m.histogramBuckets)

	m.httpRequests = counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets, "endpoint", "method", "status_code")

	m.errorRateByComponent = counterVec("errors_by_component_total",
		"Errors by component and type", "component", "error_type")
	m.errorRateByType = counterVec("errors_by_type_total",
		"Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = counterVec("errors_by_endpoint_total",
		"Errors by HTTP endpoint", "endpoint", "method", "error_type")
	m.errorLatency = histogramVec("error_latency_milliseconds",
		"Latency of failed operations in milliseconds", m.histogramBuckets, "component", "error_type")

	m.systemMemoryUsage = gauge("system_memory_bytes", "Allocated heap memory in bytes")
	m.systemGoroutineCount = gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = histogram("system_gc_pause_milliseconds", "Average GC pause time in milliseconds", m.histogramBuckets)
}

// Recommendation outcome labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusInvalid = "invalid"
)

// RecordRecommendation counts one recommendation request by outcome.
func (m *Manager) RecordRecommendation(status string) {
	if m.enabled {
		m.recommendations.WithLabelValues(status).Inc()
	}
}

// RecordGenerationLatency observes the time spent generating one result.
func (m *Manager) RecordGenerationLatency(latencyMs float64) {
	if m.enabled {
		m.generationLatency.Observe(latencyMs)
	}
}

// RecordArchitectureSelected counts an architecture placed at position (1-based).
func (m *Manager) RecordArchitectureSelected(architecture, position string) {
	if m.enabled {
		m.architectureSelected.WithLabelValues(architecture, position).Inc()
	}
}

// RecordArchitectureScore observes a raw score.
func (m *Manager) RecordArchitectureScore(architecture string, score int) {
	if m.enabled {
		m.architectureScore.WithLabelValues(architecture).Observe(float64(score))
	}
}

// Global helpers delegate to the process-wide manager.

func RecordRecommendation(status string)          { globalManager.RecordRecommendation(status) }
func RecordGenerationLatency(latencyMs float64)   { globalManager.RecordGenerationLatency(latencyMs) }
func RecordArchitectureSelected(arch, pos string) { globalManager.RecordArchitectureSelected(arch, pos) }
func RecordArchitectureScore(arch string, s int)  { globalManager.RecordArchitectureScore(arch, s) }

// UpdateCatalogSize sets the catalog gauges.
func UpdateCatalogSize(architectures, patterns int) {
	globalManager.catalogArchitectures.Set(float64(architectures))
	globalManager.catalogPatterns.Set(float64(patterns))
}

// RecordCatalogReload counts a reload attempt.
func RecordCatalogReload(status string) {
	globalManager.catalogReloads.WithLabelValues(status).Inc()
}

// RecordQuestionnaireSubmission counts a questionnaire submission.
func RecordQuestionnaireSubmission(status string) {
	globalManager.questionnaireSubmissions.WithLabelValues(status).Inc()
}

// RecordBatch counts a batch request and observes its size.
func RecordBatch(size int) {
	globalManager.batchRequests.Inc()
	globalManager.batchSize.Observe(float64(size))
}

// Queue metrics.

func UpdateQueueSize(size int)                   { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int)           { globalManager.queueCapacity.Set(float64(capacity)) }
func UpdateQueueUtilization(utilization float64) { globalManager.queueUtilization.Set(utilization) }
func RecordQueueEnqueue()                        { globalManager.queueEnqueueRate.Inc() }
func RecordQueueDequeue()                        { globalManager.queueDequeueRate.Inc() }
func RecordQueueEnqueueError()                   { globalManager.queueEnqueueErrors.Inc() }

// Worker metrics.

func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }
func RecordWorkerProcessed()      { globalManager.workerProcessed.Inc() }
func RecordWorkerError()          { globalManager.workerErrors.Inc() }
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// HTTP metrics.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

func UpdateSystemMemoryUsage(bytes uint64)   { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(count int)   { globalManager.systemGoroutineCount.Set(float64(count)) }
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom registry exposed on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns how often polled gauges should be updated.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RefreshInterval returns the refresh interval of the global manager.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }
