package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_admin_http_requests_total",
			Help: "Total number of HTTP requests served by the web console",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_admin_http_request_duration_seconds",
			Help:    "Duration of web console HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	productOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_admin_product_operations_total",
			Help: "Total number of product operations started from the web console",
		},
		[]string{"operation", "status"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_admin_rate_limited_total",
			Help: "Requests rejected by the per-client rate limit",
		},
	)

	websocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_admin_websocket_clients",
			Help: "Browser tabs connected to the change feed",
		},
	)
)

// Operation outcomes
const (
	statusSuccess = "success"
	statusError   = "error"
	statusInvalid = "invalid"
)

func recordProductOperation(operation, status string) {
	productOperations.WithLabelValues(operation, status).Inc()
}
