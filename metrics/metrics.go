// metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "workbench"

// Metrics holds the explorer collectors. A nil *Metrics records nothing, so
// components can be built without a registry in tests.
type Metrics struct {
	registry *prometheus.Registry

	loads              *prometheus.CounterVec
	loadDuration       *prometheus.HistogramVec
	staleResponses     *prometheus.CounterVec
	enrichments        *prometheus.CounterVec
	storeSize          prometheus.Gauge
	notifications      *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec
}

// New registers the explorer collectors plus the Go and process collectors
// on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "explorer",
			Name:      "loads_total",
			Help:      "List loads by panel and outcome.",
		}, []string{"panel", "outcome"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "explorer",
			Name:      "load_duration_seconds",
			Help:      "Duration of list loads.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"panel"}),
		staleResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "explorer",
			Name:      "stale_responses_total",
			Help:      "Responses discarded because a newer request was issued.",
		}, []string{"panel"}),
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "explorer",
			Name:      "enrichments_total",
			Help:      "Background enrichment calls by outcome.",
		}, []string{"origin", "outcome"}),
		storeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "resources",
			Help:      "Number of resources held in the resource store.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "explorer",
			Name:      "notifications_total",
			Help:      "Notifications emitted by panel and kind.",
		}, []string{"panel", "kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	reg.MustRegister(
		m.loads,
		m.loadDuration,
		m.staleResponses,
		m.enrichments,
		m.storeSize,
		m.notifications,
		m.httpRequests,
		m.httpRequestSeconds,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveLoad(panel, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(panel, outcome).Inc()
	m.loadDuration.WithLabelValues(panel).Observe(d.Seconds())
}

func (m *Metrics) StaleResponse(panel string) {
	if m == nil {
		return
	}
	m.staleResponses.WithLabelValues(panel).Inc()
}

func (m *Metrics) Enrichment(origin, outcome string) {
	if m == nil {
		return
	}
	m.enrichments.WithLabelValues(origin, outcome).Inc()
}

func (m *Metrics) SetStoreSize(n int) {
	if m == nil {
		return
	}
	m.storeSize.Set(float64(n))
}

func (m *Metrics) Notification(panel, kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(panel, kind).Inc()
}

func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpRequestSeconds.WithLabelValues(method, path, status).Observe(d.Seconds())
}
