// Package metrics holds the Prometheus collectors shared by the app.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the app exports. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	wishlistOps      *prometheus.CounterVec
	toastsActive     prometheus.Gauge
	sessionsActive   prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinevault",
			Name:      "provider_requests_total",
			Help:      "Requests sent to the metadata provider, by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cinevault",
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of metadata provider requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		wishlistOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinevault",
			Name:      "wishlist_mutations_total",
			Help:      "Wishlist mutations that changed state, by operation.",
		}, []string{"op"}),
		toastsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cinevault",
			Name:      "toasts_active",
			Help:      "Toasts currently visible across all sessions.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cinevault",
			Name:      "sessions_active",
			Help:      "Browser sessions held in memory.",
		}),
	}

	reg.MustRegister(
		m.providerRequests,
		m.providerLatency,
		m.wishlistOps,
		m.toastsActive,
		m.sessionsActive,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveProvider records one provider request. status is 0 for transport errors.
func (m *Metrics) ObserveProvider(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.providerRequests.WithLabelValues(endpoint, label).Inc()
	m.providerLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) WishlistMutation(op string) {
	if m == nil {
		return
	}
	m.wishlistOps.WithLabelValues(op).Inc()
}

func (m *Metrics) ToastShown() {
	if m == nil {
		return
	}
	m.toastsActive.Inc()
}

func (m *Metrics) ToastExpired() {
	if m == nil {
		return
	}
	m.toastsActive.Dec()
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}
