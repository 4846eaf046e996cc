package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	catalogIssues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "catalog",
			Name:      "integrity_issues_total",
			Help:      "Catalog records skipped while loading products.",
		},
		[]string{"kind"},
	)
	addToCart = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "cart",
			Name:      "add_total",
			Help:      "Add-to-cart attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Add-to-cart outcomes.
const (
	OutcomeAdded      = "added"
	OutcomeRejected   = "rejected"
	OutcomeOutOfStock = "out_of_stock"
	OutcomeError      = "error"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, catalogIssues, addToCart)
	})
}

// RouteLabel is the route template used in metrics and access logs.
// Requests no route matched share one label.
func RouteLabel(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	RegisterMetrics()
	route = RouteLabel(route)
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, route, statusLabel).Inc()
	httpDuration.WithLabelValues(method, route, statusLabel).Observe(duration.Seconds())
}

func RecordCatalogIssue(kind string) {
	RegisterMetrics()
	catalogIssues.WithLabelValues(kind).Inc()
}

func RecordAddToCart(outcome string) {
	RegisterMetrics()
	addToCart.WithLabelValues(outcome).Inc()
}
