// Package metrics exposes prometheus instrumentation and a SQLite-backed
// store for suggestion-provider usage.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SuggestionCacheHits counts suggestion requests answered from the cache.
	SuggestionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "suggestion_cache_hits_total",
		Help: "Number of suggestion requests served from the local cache.",
	})

	// SuggestionCacheMisses counts suggestion requests that went upstream.
	SuggestionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "suggestion_cache_misses_total",
		Help: "Number of suggestion requests that missed the local cache.",
	})

	// ProviderRequests counts calls issued to the suggestion provider.
	ProviderRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "suggestion_provider_requests_total",
		Help: "Number of requests sent to the suggestion provider.",
	})

	// ProviderFailures counts provider calls that errored.
	ProviderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "suggestion_provider_failures_total",
		Help: "Number of suggestion provider requests that failed.",
	})

	// ProviderLatency tracks provider round-trip time in seconds.
	ProviderLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "suggestion_provider_latency_seconds",
		Help:    "Latency of suggestion provider requests.",
		Buckets: prometheus.DefBuckets,
	})
)
