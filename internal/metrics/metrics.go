package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend request metrics, recorded by the HTTP adapter.
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "desk_api_requests_total",
		Help: "Outbound backend requests by method, resource and outcome",
	}, []string{"method", "resource", "outcome"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "desk_api_request_duration_seconds",
		Help:    "Outbound backend request duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource"})
)

// Cache metrics, recorded by the fetch/cache store.
var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_cache_hits_total",
		Help: "Reads served from a fresh cache entry without a network call",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_cache_misses_total",
		Help: "Reads that triggered a fetch because no usable entry existed",
	})

	CacheStaleServesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_cache_stale_serves_total",
		Help: "Reads served stale data while a background refetch ran",
	})

	CacheDedupJoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_cache_dedup_joins_total",
		Help: "Reads that joined an already in-flight fetch for the same key",
	})

	CacheFetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_cache_fetch_errors_total",
		Help: "Fetches that ended in the error state after retries",
	})

	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "desk_cache_entries",
		Help: "Live entries in the query cache",
	})
)

// UI metrics, recorded by the local server middleware.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "desk_ui_requests_total",
		Help: "Local UI requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "desk_ui_request_duration_seconds",
		Help:    "Local UI request duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
