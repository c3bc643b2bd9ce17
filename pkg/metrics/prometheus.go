// Package metrics provides Prometheus metrics for the market name service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render targets.
const (
	TargetMarket  = "market"
	TargetOutcome = "outcome"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Naming
	namesRendered *prometheus.CounterVec
	renderErrors  *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec

	// Collaborators
	profileFetches      *prometheus.CounterVec
	profileFetchErrors  *prometheus.CounterVec
	profileCache        *prometheus.CounterVec
	sportsAPIRetries    prometheus.Counter
	catalogueLookups    *prometheus.CounterVec
	catalogueMisses     prometheus.Counter
	catalogueMarkets    prometheus.Gauge
	storedNames         prometheus.Gauge
	observationsTotal   prometheus.Counter
	observationsDupe    prometheus.Counter
	observationsDropped prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "marketnames",
		subsystem:        "naming",
		histogramBuckets: defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.namesRendered = m.counterVec("names_rendered_total", "Names rendered successfully by target", "target")
	m.renderErrors = m.counterVec("render_errors_total", "Failed renders by target and error kind", "target", "kind")
	m.renderLatency = m.histogramVec("render_latency_milliseconds", "Render latency in milliseconds", "target")

	m.profileFetches = m.counterVec("profile_fetches_total", "Profile fetches sent to the sports API by entity type", "entity")
	m.profileFetchErrors = m.counterVec("profile_fetch_errors_total", "Failed profile fetches by entity type", "entity")
	m.profileCache = m.counterVec("profile_cache_total", "Profile cache lookups by result (hit/miss)", "result")
	m.sportsAPIRetries = m.counter("sports_api_retries_total", "Retried sports API requests")
	m.catalogueLookups = m.counterVec("catalogue_lookups_total", "Catalogue lookups by route", "route")
	m.catalogueMisses = m.counter("catalogue_misses_total", "Catalogue lookups without a description")
	m.catalogueMarkets = m.gauge("catalogue_markets", "Market descriptions loaded in the catalogue")
	m.storedNames = m.gauge("stored_names", "Pre-rendered names held in the repository")
	m.observationsTotal = m.counter("observations_total", "Market observations accepted")
	m.observationsDupe = m.counter("observations_duplicate_total", "Market observations rejected as duplicates")
	m.observationsDropped = m.counter("observations_dropped_total", "Market observations dropped on backpressure")

	m.queueSize = m.gauge("queue_size", "Current size of the observation queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue utilization ratio (current size / capacity)")
	m.queueEnqueueRate = m.counter("queue_enqueue_total", "Total number of observations enqueued")
	m.queueDequeueRate = m.counter("queue_dequeue_total", "Total number of observations dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Total number of enqueue errors")

	m.workerCount = m.gauge("worker_count", "Configured number of workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Number of workers currently rendering")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time to render one observation in all languages")
	m.workerErrorRate = m.counter("worker_errors_total", "Observations with at least one failed name")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")
}

// RecordNameRendered counts one successful render of target.
func RecordNameRendered(target string, latencyMs float64) {
	globalManager.namesRendered.WithLabelValues(target).Inc()
	globalManager.renderLatency.WithLabelValues(target).Observe(latencyMs)
}

// RecordRenderError counts a failed render; kind is the error taxonomy kind.
func RecordRenderError(target, kind string, latencyMs float64) {
	globalManager.renderErrors.WithLabelValues(target, kind).Inc()
	globalManager.renderLatency.WithLabelValues(target).Observe(latencyMs)
}

// RecordProfileFetch counts a profile fetch for entity (player, competitor, event).
func RecordProfileFetch(entity string, err error) {
	globalManager.profileFetches.WithLabelValues(entity).Inc()
	if err != nil {
		globalManager.profileFetchErrors.WithLabelValues(entity).Inc()
	}
}

// RecordProfileCache counts a profile cache lookup.
func RecordProfileCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.profileCache.WithLabelValues(result).Inc()
}

// RecordSportsAPIRetry counts one retried sports API request.
func RecordSportsAPIRetry() {
	globalManager.sportsAPIRetries.Inc()
}

// RecordCatalogueLookup counts a catalogue lookup by route.
func RecordCatalogueLookup(route string) {
	globalManager.catalogueLookups.WithLabelValues(route).Inc()
}

// RecordCatalogueMiss counts a lookup that found no description.
func RecordCatalogueMiss() {
	globalManager.catalogueMisses.Inc()
}

// UpdateCatalogueMarkets sets the number of loaded descriptions.
func UpdateCatalogueMarkets(count int) {
	globalManager.catalogueMarkets.Set(float64(count))
}

// UpdateStoredNames sets the number of names in the repository.
func UpdateStoredNames(count int) {
	globalManager.storedNames.Set(float64(count))
}

// RecordObservationAccepted increments the accepted observations counter.
func RecordObservationAccepted() {
	globalManager.observationsTotal.Inc()
}

// RecordObservationDuplicate increments the duplicate observations counter.
func RecordObservationDuplicate() {
	globalManager.observationsDupe.Inc()
}

// RecordObservationDropped increments the dropped observations counter.
func RecordObservationDropped() {
	globalManager.observationsDropped.Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

var runtimeOnce sync.Once //nolint:gochecknoglobals // guards one-time collector registration

// RegisterRuntimeCollectors adds the Go runtime and process collectors to
// the custom registry. Safe to call more than once.
func RegisterRuntimeCollectors() {
	runtimeOnce.Do(func() {
		customRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
