// Package metrics defines and registers the custom Prometheus metrics of the
// issues service. Metrics register with the default registry on import; the
// HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "issues"

// ── Issue metrics ─────────────────────────────────────────────────────────────

// IssuesCreatedTotal counts create requests, by result.
// Label:
//   - result: "created", "replayed" (idempotency key seen before) or "error"
var IssuesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of issue create requests, by result.",
	},
	[]string{"result"},
)

// IssuesListedTotal counts list requests, by result ("ok" or "error").
var IssuesListedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_requests_total",
		Help:      "Total number of issue list requests, by result.",
	},
	[]string{"result"},
)

// IssuesDeletedTotal counts rows removed by account deletion.
var IssuesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_rows_total",
		Help:      "Total number of issue rows removed by account deletion.",
	},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountDeletionsTotal counts account deletion attempts.
// Label:
//   - result: "ok", "identity_failed" or "issues_failed" (identity already gone)
var AccountDeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_deletions_total",
		Help:      "Total number of account deletions, by result.",
	},
	[]string{"result"},
)

// ── Keep-alive metrics ────────────────────────────────────────────────────────

// KeepAliveRunsTotal counts keep-alive queries.
// Labels:
//   - trigger: "http", "cron" or "cli"
//   - result: "ok" or "error"
var KeepAliveRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "keepalive_runs_total",
		Help:      "Total number of keep-alive database reads, by trigger and result.",
	},
	[]string{"trigger", "result"},
)

// KeepAliveDuration measures the keep-alive query latency.
var KeepAliveDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "keepalive_duration_seconds",
		Help:      "Duration of the keep-alive database read.",
		Buckets:   prometheus.DefBuckets,
	},
)
