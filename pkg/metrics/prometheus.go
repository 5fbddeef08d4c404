package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Engine
	recommendationsServed prometheus.Counter
	recommendationLatency prometheus.Histogram
	candidatesRanked      prometheus.Histogram
	missingData           *prometheus.CounterVec
	referenceRows         *prometheus.GaugeVec

	// Draft sessions
	sessionsActive  prometheus.Gauge
	sessionsCreated prometheus.Counter
	picksAccepted   prometheus.Counter
	picksRejected   *prometheus.CounterVec
	picksDuplicate  prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByType        *prometheus.CounterVec
	errorsByEndpoint    *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // served on /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "chemdraft",
		subsystem:        "draft",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recommendationsServed = auto.NewCounter(m.counterOpts(
		"recommendations_total", "Total number of ranking requests served"))
	m.recommendationLatency = auto.NewHistogram(m.histogramOpts(
		"recommendation_latency_milliseconds", "Time spent building, normalizing and ranking a candidate batch", m.histogramBuckets))
	m.candidatesRanked = auto.NewHistogram(m.histogramOpts(
		"candidates_ranked", "Number of candidates in each ranked batch", []float64{1, 5, 10, 20, 40, 80, 160}))
	m.missingData = auto.NewCounterVec(m.counterOpts(
		"missing_data_total", "Ranking requests in which a reference table had no row for at least one candidate"),
		[]string{"table"})
	m.referenceRows = auto.NewGaugeVec(m.gaugeOpts(
		"reference_rows", "Rows loaded per reference table"),
		[]string{"table"})

	m.sessionsActive = auto.NewGauge(m.gaugeOpts(
		"sessions_active", "Draft sessions currently held in memory"))
	m.sessionsCreated = auto.NewCounter(m.counterOpts(
		"sessions_created_total", "Total number of draft sessions created"))
	m.picksAccepted = auto.NewCounter(m.counterOpts(
		"picks_accepted_total", "Total number of picks applied to a roster"))
	m.picksRejected = auto.NewCounterVec(m.counterOpts(
		"picks_rejected_total", "Total number of rejected picks by reason"),
		[]string{"reason"})
	m.picksDuplicate = auto.NewCounter(m.counterOpts(
		"picks_duplicate_total", "Total number of replayed pick requests (same pick_id)"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})
	m.errorsByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100}))
}

// RecordRecommendation records one served ranking with its latency and batch size.
func RecordRecommendation(latencyMs float64, candidates int) {
	globalManager.recommendationsServed.Inc()
	globalManager.recommendationLatency.Observe(latencyMs)
	globalManager.candidatesRanked.Observe(float64(candidates))
}

// RecordMissingData counts a ranking request in which at least one candidate
// was missing from table ("affinity", "seasons" or "attributes").
func RecordMissingData(table string) {
	globalManager.missingData.WithLabelValues(table).Inc()
}

// UpdateReferenceRows sets the number of rows loaded for a reference table.
func UpdateReferenceRows(table string, rows int) {
	globalManager.referenceRows.WithLabelValues(table).Set(float64(rows))
}

// UpdateSessionsActive sets the number of in-memory sessions.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordSessionCreated increments the created sessions counter.
func RecordSessionCreated() {
	globalManager.sessionsCreated.Inc()
}

// RecordPickAccepted increments the accepted picks counter.
func RecordPickAccepted() {
	globalManager.picksAccepted.Inc()
}

// RecordPickRejected increments the rejected picks counter for reason.
func RecordPickRejected(reason string) {
	globalManager.picksRejected.WithLabelValues(reason).Inc()
}

// RecordPickDuplicate increments the replayed picks counter.
func RecordPickDuplicate() {
	globalManager.picksDuplicate.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
