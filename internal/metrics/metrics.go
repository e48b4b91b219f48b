// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "directory"

var (
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"method", "route", "status"})

	TreeCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity_tree_cache",
		Name:      "hits_total",
		Help:      "Activity tree lookups served from cache.",
	})
	TreeCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity_tree_cache",
		Name:      "misses_total",
		Help:      "Activity tree lookups that went to the store.",
	})
	TreeCacheErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity_tree_cache",
		Name:      "errors_total",
		Help:      "Cache read or write failures (the request still succeeds from the store).",
	})

	DomainErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "errors_total",
		Help:      "Errors returned to clients by stable code.",
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(RequestDuration, TreeCacheHits, TreeCacheMisses, TreeCacheErrors, DomainErrors)
}
