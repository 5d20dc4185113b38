package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricUpstreamRequestsTotal   = "console_upstream_requests_total"
	MetricUpstreamDurationSeconds = "console_upstream_request_duration_seconds"
	MetricReconcileTotal          = "console_reconcile_total"
	MetricReconcileDroppedTotal   = "console_reconcile_dropped_total"
	MetricReconcileDuplicateTotal = "console_reconcile_duplicates_total"
	MetricMutationTotal           = "console_mutation_total"
	MetricExportTotal             = "console_export_total"
	MetricHTTPRequestsTotal       = "console_http_requests_total"
	MetricHTTPDurationSeconds     = "console_http_request_duration_seconds"
	MetricHTTPInFlight            = "console_http_requests_in_flight"
)

// Metrics holds the console's Prometheus collectors on a private registry.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	reconciles       *prometheus.CounterVec
	reconcileDropped *prometheus.CounterVec
	reconcileDupes   *prometheus.CounterVec
	mutations        *prometheus.CounterVec
	exports          *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	httpInFlight     prometheus.Gauge
}

// NewMetrics creates and registers all collectors, plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricUpstreamRequestsTotal,
			Help: "Requests sent to the order-delivery API.",
		}, []string{"method", "resource", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricUpstreamDurationSeconds,
			Help:    "Latency of requests to the order-delivery API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "resource"}),
		reconciles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricReconcileTotal,
			Help: "Reconciled collections by record kind and source (live or fallback).",
		}, []string{"kind", "source"}),
		reconcileDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricReconcileDroppedTotal,
			Help: "Candidates dropped for shape or id.",
		}, []string{"kind"}),
		reconcileDupes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricReconcileDuplicateTotal,
			Help: "Candidates merged into an earlier record with the same id.",
		}, []string{"kind"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricMutationTotal,
			Help: "Record mutations by outcome (persisted, unsaved, local_only).",
		}, []string{"kind", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricExportTotal,
			Help: "Report exports by outcome.",
		}, []string{"kind", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "Requests served by the console gateway.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPDurationSeconds,
			Help:    "Latency of requests served by the console gateway.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricHTTPInFlight,
			Help: "Requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamRequests,
		m.upstreamDuration,
		m.reconciles,
		m.reconcileDropped,
		m.reconcileDupes,
		m.mutations,
		m.exports,
		m.httpRequests,
		m.httpDuration,
		m.httpInFlight,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one upstream request. A status of 0 means the
// request failed before a response arrived.
func (m *Metrics) ObserveRequest(method, resource string, status int, elapsed time.Duration) {
	label := strconv.Itoa(status)
	if status == 0 {
		label = "error"
	}
	m.upstreamRequests.WithLabelValues(method, resource, label).Inc()
	m.upstreamDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// ObserveReconcile records the outcome of reconciling one collection
func (m *Metrics) ObserveReconcile(kind, source string, dropped, duplicates int) {
	m.reconciles.WithLabelValues(kind, source).Inc()
	if dropped > 0 {
		m.reconcileDropped.WithLabelValues(kind).Add(float64(dropped))
	}
	if duplicates > 0 {
		m.reconcileDupes.WithLabelValues(kind).Add(float64(duplicates))
	}
}

// ObserveMutation records the outcome of a record mutation
func (m *Metrics) ObserveMutation(kind, outcome string) {
	m.mutations.WithLabelValues(kind, outcome).Inc()
}

// ObserveExport records the outcome of a report export
func (m *Metrics) ObserveExport(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.exports.WithLabelValues(kind, outcome).Inc()
}

// TrackInFlight adjusts the in-flight request gauge by delta
func (m *Metrics) TrackInFlight(delta int) {
	m.httpInFlight.Add(float64(delta))
}

// ObserveHTTP records one served request. route is the matched route
// pattern, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
