// Package metrics provides Prometheus metrics for the algo assistant.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the assistant.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Outbound API metrics
	apiRequests   *prometheus.CounterVec
	apiRetries    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec

	// Profile card metrics
	cardsRendered prometheus.Counter
	cardCacheHits prometheus.Counter
	renderErrors  prometheus.Counter

	// Binding store metrics
	bindWrites prometheus.Counter
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
		namespace:        "algoassist",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.apiRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "api_requests_total",
		Help:      "Total outbound API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	m.apiRetries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "api_retries_total",
		Help:      "Total retry attempts against outbound APIs by endpoint",
	}, []string{"endpoint"})

	m.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_seconds",
		Help:      "Histogram of outbound fetch durations by endpoint",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})

	m.cardsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cards_rendered_total",
		Help:      "Total profile cards rasterized to disk",
	})

	m.cardCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "card_cache_hits_total",
		Help:      "Total card requests served from the on-disk cache",
	})

	m.renderErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_errors_total",
		Help:      "Total failed card render attempts",
	})

	m.bindWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bind_writes_total",
		Help:      "Total user binding writes persisted",
	})
}

// RecordAPIRequest records one outbound request with its outcome
// ("ok", "status", "timeout" or "transport").
func RecordAPIRequest(endpoint, outcome string) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.apiRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordAPIRetry records one retry attempt against an endpoint.
func RecordAPIRetry(endpoint string) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.apiRetries.WithLabelValues(endpoint).Inc()
}

// ObserveFetchDuration records the duration of one fetch in seconds.
func ObserveFetchDuration(endpoint string, seconds float64) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.fetchDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordCardRendered records one successful card rasterization.
func RecordCardRendered() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.cardsRendered.Inc()
}

// RecordCardCacheHit records one card served from the cache.
func RecordCardCacheHit() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.cardCacheHits.Inc()
}

// RecordRenderError records one failed render attempt.
func RecordRenderError() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.renderErrors.Inc()
}

// RecordBindWrite records one persisted binding write.
func RecordBindWrite() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.bindWrites.Inc()
}

// Handler returns an http.Handler serving the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}
