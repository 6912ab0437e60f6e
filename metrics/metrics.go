package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CartVersionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_version_conflicts_total",
			Help: "Optimistic concurrency conflicts on identity cart writes",
		},
	)

	CatalogFeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_catalog_feed_clients",
			Help: "Connected catalog websocket clients",
		},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_failures_total",
			Help: "Rejected logins and session validations",
		},
		[]string{"kind"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCartMutation records a cart operation outcome ("ok" or "error").
func RecordCartMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CartMutations.WithLabelValues(operation, outcome).Inc()
}
