// Package metrics holds the Prometheus collectors of the portal. They are
// registered on the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bizportal"

// ── Auth ──────────────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts password and code checks.
// Labels:
//   - stage: "password" or "mfa"
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by stage and result.",
	},
	[]string{"stage", "result"},
)

// RegistrationsTotal counts registration outcomes.
// Label:
//   - result: "created", "exists", "quota" or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Queries ───────────────────────────────────────────────────────────────────

var QueriesSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_submitted_total",
		Help:      "Total number of customer queries submitted.",
	},
)

var QueriesAutoResolvedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_auto_resolved_total",
		Help:      "Total number of queries answered from a similar past query.",
	},
)

var QueriesRespondedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_responded_total",
		Help:      "Total number of queries answered manually.",
	},
)

// ── Sales ─────────────────────────────────────────────────────────────────────

// PurchasesTotal counts recorded sales.
// Label:
//   - result: "recorded" or "not_found"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, by result.",
	},
	[]string{"result"},
)

// ── Charts ────────────────────────────────────────────────────────────────────

// ChartRenderFailuresTotal counts charts that could not be produced.
// Label:
//   - chart: fixed chart name
var ChartRenderFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chart_render_failures_total",
		Help:      "Total number of chart renders that failed and were skipped.",
	},
	[]string{"chart"},
)

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/products")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
