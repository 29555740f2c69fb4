// Package metrics holds the Prometheus collectors scraped from /metrics.
// Route labels use the gin route template, so path parameters never become
// label values.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "assetops"

var (
	// HTTPRequestsTotal counts served requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LinkResolutions counts short-link redirects by outcome
	LinkResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_resolutions_total",
			Help:      "Short link resolutions by result (redirect, gone, not_found, error).",
		},
		[]string{"result"},
	)

	// CacheLookups counts link cache lookups per tier
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Link cache lookups by tier (lru, redis) and result (hit, miss).",
		},
		[]string{"tier", "result"},
	)

	// EventsPublished counts domain events passed to the bus
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Domain events published by type.",
		},
		[]string{"event_type"},
	)

	// EventHandlerFailures counts handler errors and panics
	EventHandlerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_handler_failures_total",
			Help:      "Domain event handler failures by event type.",
		},
		[]string{"event_type"},
	)
)

// Label values
const (
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultRedirect = "redirect"
	ResultGone     = "gone"
	ResultNotFound = "not_found"
	ResultError    = "error"

	TierLRU   = "lru"
	TierRedis = "redis"
)

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
