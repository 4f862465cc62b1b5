// Package metrics defines and registers all custom Prometheus metrics for the
// agency API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry through promauto
// when the package is first imported. HTTP request metrics come from the
// echoprometheus middleware and share the same registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// RequestsSubmittedTotal counts new onboarding and product requests.
// Label:
//   - kind: "model_onboarding" or "product_listing"
var RequestsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_submitted_total",
		Help:      "Total number of lifecycle requests submitted, by kind.",
	},
	[]string{"kind"},
)

// RequestTransitionsTotal counts successful status transitions.
// Labels:
//   - kind: request kind
//   - status: the status the request moved into (e.g. "approved")
var RequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_transitions_total",
		Help:      "Total number of request status transitions applied.",
	},
	[]string{"kind", "status"},
)

// RequestTransitionConflictsTotal counts decisions rejected because the stored
// status changed between the read and the conditional write.
var RequestTransitionConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_transition_conflicts_total",
		Help:      "Total number of status transitions lost to a concurrent update.",
	},
	[]string{"kind"},
)

// IdempotentReplaysTotal counts submissions answered from an Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of submissions replayed from an idempotency key.",
	},
	[]string{"kind"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - flow: "user" or "admin"
//   - result: "success", "invalid_credentials", "not_active", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// AccountsCreatedTotal counts accounts created, by kind.
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by kind.",
	},
	[]string{"kind"},
)

// ── Asset metrics ─────────────────────────────────────────────────────────────

// AssetsUploadedTotal counts files stored in object storage.
var AssetsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assets_uploaded_total",
		Help:      "Total number of assets uploaded, by purpose.",
	},
	[]string{"purpose"},
)

// AssetUploadBytes observes uploaded file sizes.
var AssetUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "asset_upload_bytes",
		Help:      "Size of uploaded assets in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 7), // 16KiB .. 64MiB
	},
)
