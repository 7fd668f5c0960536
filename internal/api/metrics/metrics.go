// Package metrics defines and registers all custom Prometheus metrics for the
// todo backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// ── Authorization boundary metrics ───────────────────────────────────────────

// AuthFailuresTotal counts rejected credentials at the verification stage.
// Label:
//   - reason: "missing_header", "bad_scheme", "invalid_token", "missing_tenant"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by token verification.",
	},
	[]string{"reason"},
)

// TenantMismatchTotal counts requests whose path tenant disagreed with the
// verified token tenant. These are 403s, distinct from auth failures.
var TenantMismatchTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tenant_mismatch_total",
		Help:      "Total number of requests rejected because the addressed tenant did not match the token identity.",
	},
)

// ── Task metrics ─────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "medium", "high", or "none"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TaskMutationsTotal counts successful task mutations.
// Label:
//   - action: "updated", "completed", "reopened", "deleted"
var TaskMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_mutations_total",
		Help:      "Total number of successful task mutations, by action.",
	},
	[]string{"action"},
)

// ── Stats cache metrics ──────────────────────────────────────────────────────

// StatsCacheTotal counts tenant stats cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of tenant stats cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Activity pipeline metrics ────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
