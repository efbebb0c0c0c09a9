package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vehiclecatalog_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vehiclecatalog_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	catalogOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vehiclecatalog_catalog_operations_total",
		Help: "Count of catalog write operations by resource, operation, and result",
	}, []string{"resource", "operation", "result"})

	authFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vehiclecatalog_auth_failures_total",
		Help: "Count of rejected authentication attempts",
	}, []string{"reason"})

	tokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vehiclecatalog_tokens_issued_total",
		Help: "Count of bearer tokens issued",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveCatalogOperation increments the catalog operation counter.
func ObserveCatalogOperation(resource, operation, result string) {
	catalogOperations.WithLabelValues(resource, operation, result).Inc()
}

// ObserveAuthFailure records a rejected authentication attempt.
func ObserveAuthFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}

// ObserveTokenIssued records a successful token issuance.
func ObserveTokenIssued() {
	tokensIssued.Inc()
}
