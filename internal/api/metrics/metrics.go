// Package metrics defines and registers all custom Prometheus metrics for the
// shop management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at import time
// via promauto, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shopms"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - realm: "shop" or "admin"
//   - result: "success", "invalid_credentials", or "locked"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by realm and result.",
	},
	[]string{"realm", "result"},
)

// LockoutsTotal counts accounts that crossed the failed-attempt threshold.
// Label:
//   - realm: "shop" or "admin"
var LockoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of accounts locked after repeated failures.",
	},
	[]string{"realm"},
)

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - decision: "allowed", "redirected", or "loading"
//   - family: "general", "admin", or "guest"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard evaluations, by decision and route family.",
	},
	[]string{"decision", "family"},
)

// ── Shop metrics ──────────────────────────────────────────────────────────────

// ReceiptsCreatedTotal counts receipts created.
// Label:
//   - creator_role: "owner", "staff", or "guest"
var ReceiptsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "receipts_created_total",
		Help:      "Total number of receipts created, by creator role.",
	},
	[]string{"creator_role"},
)

// AuditQueueDepth tracks the current number of audit events waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
