// Package metrics defines and registers all custom Prometheus metrics for the
// account registry. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registry"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by terminal outcome.
// Label:
//   - outcome: "created", "rejected_invalid", "rejected_duplicate", or "failed"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by terminal outcome.",
	},
	[]string{"outcome"},
)

// RegistrationDuration measures how long a registration takes end-to-end,
// including the advisory read and the insert.
var RegistrationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "registration_duration_seconds",
		Help:      "Duration of the registration sequence from receipt to terminal state.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityTouchesTotal counts last-seen touches applied successfully.
var ActivityTouchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_touches_total",
		Help:      "Total number of last-seen touches applied to accounts.",
	},
)

// ActivityErrorsTotal counts touches that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "touch_failed")
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity touches that failed processing.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks the current number of touches waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of touches pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Rate limit metrics ────────────────────────────────────────────────────────

// RateLimitTotal counts rate-limit decisions on the registration endpoint.
// Label:
//   - result: "allowed" or "limited"
var RateLimitTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_total",
		Help:      "Total number of rate-limit checks, labelled by result (allowed/limited).",
	},
	[]string{"result"},
)
