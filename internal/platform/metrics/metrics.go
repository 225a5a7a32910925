package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// once guards registration: the prometheus registry panics on
	// duplicate collectors, and tests may call Init more than once.
	once sync.Once

	// HTTPRequestsTotal counts finished requests. Label route with the
	// registered pattern (e.g. /products/*id), never the real path, or
	// the label set explodes.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// CacheOperations tracks catalog cache traffic.
	// layer: listing|product; op: hit|miss|hit_negative|put|invalidate.
	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_operations_total",
			Help: "Catalog cache operations by layer and outcome.",
		},
		[]string{"layer", "op"},
	)

	// MediaRequestsTotal counts calls to the media directory.
	// op: list|get|delete|upload; outcome: ok|not_found|error.
	MediaRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_directory_requests_total",
			Help: "Media directory API calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
)

// Init registers the collectors exactly once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			CacheOperations,
			MediaRequestsTotal,
		)
	})
}
