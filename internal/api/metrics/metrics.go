// Package metrics defines and registers all custom Prometheus metrics for the
// sales portal gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package load; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salesportal"

// ── Upstream backend metrics ──────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the upstream REST backend.
// Labels:
//   - endpoint: logical endpoint name (e.g. "stats", "orders", "login")
//   - outcome: "ok", "upstream_error" (non-2xx), or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the upstream backend.",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamRequestDuration measures upstream call latency end-to-end.
// Label:
//   - endpoint: logical endpoint name
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream backend requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint"},
)

// ── Refresh pipeline metrics ──────────────────────────────────────────────────

// RefreshesDispatchedTotal counts section refreshes handed to the worker pool.
// Labels:
//   - section: dashboard, orders, maintenance, or history
//   - trigger: "poll" for timer-driven refreshes, "manual" for enqueued ones
var RefreshesDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_dispatched_total",
		Help:      "Total number of section refreshes dispatched, by trigger.",
	},
	[]string{"section", "trigger"},
)

// RefreshQueueDepth tracks the current number of refresh jobs waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RefreshQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_queue_depth",
		Help:      "Current number of refresh jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Poller metrics ────────────────────────────────────────────────────────────

// PollTicksTotal counts dashboard auto-refresh ticks.
// Label:
//   - result: "refreshed" (at least one session enqueued) or "idle"
var PollTicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_ticks_total",
		Help:      "Total number of dashboard poller ticks, labelled by result (refreshed/idle).",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsEstablishedTotal counts successful logins.
var SessionsEstablishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total number of portal sessions established.",
	},
)
