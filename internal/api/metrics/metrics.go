// Package metrics defines and registers all custom Prometheus metrics for the
// portfolio API. It is the single source of truth for metric names, labels,
// and help strings. HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts admin login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentWritesTotal counts successful admin writes.
// Labels:
//   - resource: "project" or "post"
//   - op: "create", "update" or "delete"
var ContentWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_writes_total",
		Help:      "Total number of successful content writes, by resource and operation.",
	},
	[]string{"resource", "op"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts public list cache lookups.
// Labels:
//   - namespace: "projects" or "posts"
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"namespace", "result"},
)

// CacheInvalidationsTotal counts list cache generation bumps.
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of list cache invalidations, by namespace.",
	},
	[]string{"namespace"},
)
