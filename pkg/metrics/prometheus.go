// Package metrics provides Prometheus metrics for the progress analytics
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the engine reports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Recording path
	matchesRecorded   *prometheus.CounterVec
	upsertsApplied    *prometheus.CounterVec
	duplicateSessions prometheus.Counter
	recordLatency     prometheus.Histogram

	// Repository health
	ledgerRecoveries prometheus.Counter
	storeSaveErrors  prometheus.Counter

	// Read aggregates, refreshed on each summary build
	currentStreak  prometheus.Gauge
	overallAverage prometheus.Gauge
	ledgerDays     *prometheus.GaugeVec

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry so the default Go collectors stay
// out of /healthz.
var (
	globalManager  *Manager                 //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry backing the singleton
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "playledger",
		subsystem:        "progress",
		histogramBuckets: prometheus.DefBuckets,
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

	m.matchesRecorded = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "matches_recorded_total",
			Help:      "Completed sessions appended to a ledger, by game category",
		},
		[]string{"category"},
	)

	m.upsertsApplied = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "upserts_applied_total",
			Help:      "In-progress match rewrites applied, by game category",
		},
		[]string{"category"},
	)

	m.duplicateSessions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_sessions_total",
		Help:      "Session submissions acknowledged without recording (dedupe hits)",
	})

	m.recordLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "record_latency_milliseconds",
		Help:      "Ledger read-modify-write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.ledgerRecoveries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_recoveries_total",
		Help:      "Malformed stored ledgers replaced by an empty ledger on load",
	})

	m.storeSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_errors_total",
		Help:      "Failed ledger writes to the key-value store",
	})

	m.currentStreak = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_streak_days",
		Help:      "Consecutive active days ending today, as last computed",
	})

	m.overallAverage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overall_average",
		Help:      "Blended cross-game average (display scale), as last computed",
	})

	m.ledgerDays = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ledger_days",
			Help:      "Day records per game category",
		},
		[]string{"category"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordMatch counts one finished session appended for a category.
func RecordMatch(category string) {
	globalManager.matchesRecorded.WithLabelValues(category).Inc()
}

// RecordUpsert counts one in-progress rewrite for a category.
func RecordUpsert(category string) {
	globalManager.upsertsApplied.WithLabelValues(category).Inc()
}

// RecordDuplicateSession counts a dedupe hit.
func RecordDuplicateSession() {
	globalManager.duplicateSessions.Inc()
}

// RecordRecordLatency observes one ledger read-modify-write in ms.
func RecordRecordLatency(latencyMs float64) {
	globalManager.recordLatency.Observe(latencyMs)
}

// RecordLedgerRecovery counts a malformed ledger replaced on load.
func RecordLedgerRecovery() {
	globalManager.ledgerRecoveries.Inc()
}

// RecordStoreSaveError counts a failed ledger write.
func RecordStoreSaveError() {
	globalManager.storeSaveErrors.Inc()
}

// UpdateCurrentStreak publishes the last computed streak length.
func UpdateCurrentStreak(days int) {
	globalManager.currentStreak.Set(float64(days))
}

// UpdateOverallAverage publishes the last computed blended average.
func UpdateOverallAverage(value float64) {
	globalManager.overallAverage.Set(value)
}

// UpdateLedgerDays publishes a category's day-record count.
func UpdateLedgerDays(category string, days int) {
	globalManager.ledgerDays.WithLabelValues(category).Set(float64(days))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request's duration in ms.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry served from /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
