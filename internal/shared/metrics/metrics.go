package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Access control
	AccessDecisionsTotal *prometheus.CounterVec

	// Business metrics
	ReservationsTotal *prometheus.CounterVec
	ReviewsTotal      *prometheus.CounterVec
	FavoritesTotal    *prometheus.CounterVec

	// Billing collaborator
	BillingCallsTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nagoyameshi_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nagoyameshi_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AccessDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nagoyameshi_access_denied_total",
				Help: "Requests refused by the access layer, by reason",
			},
			[]string{"reason"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nagoyameshi_reservations_total",
				Help: "Reservation ledger mutations",
			},
			[]string{"action"},
		),
		ReviewsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nagoyameshi_reviews_total",
				Help: "Review board mutations",
			},
			[]string{"action"},
		),
		FavoritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nagoyameshi_favorites_total",
				Help: "Favorites index mutations",
			},
			[]string{"action"},
		),
		BillingCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nagoyameshi_billing_calls_total",
				Help: "Calls made to the billing collaborator",
			},
			[]string{"operation", "result"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AccessDecisionsTotal,
		m.ReservationsTotal,
		m.ReviewsTotal,
		m.FavoritesTotal,
		m.BillingCallsTotal,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) AccessDenied(reason string) {
	if m == nil {
		return
	}
	m.AccessDecisionsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) Reservation(action string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(action).Inc()
}

func (m *Metrics) Review(action string) {
	if m == nil {
		return
	}
	m.ReviewsTotal.WithLabelValues(action).Inc()
}

func (m *Metrics) Favorite(action string) {
	if m == nil {
		return
	}
	m.FavoritesTotal.WithLabelValues(action).Inc()
}

func (m *Metrics) BillingCall(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.BillingCallsTotal.WithLabelValues(operation, result).Inc()
}
