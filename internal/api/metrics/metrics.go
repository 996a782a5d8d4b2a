// Package metrics defines and registers all custom Prometheus metrics for the
// STWMS workforce portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "rejected" (bad credentials) or "error" (transport)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRestoredTotal counts per-request session restores.
// Label:
//   - result: "hit" (session found) or "miss" (absent, expired or malformed)
var SessionsRestoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_restored_total",
		Help:      "Total number of session restore attempts, by result.",
	},
	[]string{"result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the STWMS backend.
// Labels:
//   - method: HTTP method
//   - route:  path with numeric segments collapsed to ":id"
//   - status: numeric HTTP status, or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the STWMS backend.",
	},
	[]string{"method", "route", "status"},
)

// UpstreamRequestDuration measures backend round-trip time per route.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the STWMS backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ── View cache metrics ────────────────────────────────────────────────────────

// CacheHitsTotal counts resource cache hits per resource class.
var CacheHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of view cache hits, by resource.",
	},
	[]string{"resource"},
)

// CacheMissesTotal counts resource cache misses per resource class.
var CacheMissesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of view cache misses, by resource.",
	},
	[]string{"resource"},
)

// CacheInvalidationsTotal counts explicit invalidations issued by writes.
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of resource invalidations triggered by writes.",
	},
	[]string{"resource"},
)
