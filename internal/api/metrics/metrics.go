// Package metrics defines and registers all custom Prometheus metrics for the
// VetLink session gateway. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via promauto;
// request-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vetlink"

// LoginsTotal counts login attempts through the gateway.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionTeardownsTotal counts forced session teardowns triggered by an
// upstream 401.
var SessionTeardownsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardowns_total",
		Help:      "Total number of sessions torn down after an upstream 401.",
	},
)

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "allowed", "loading", "login_redirect", or "home_redirect"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// BookingsTotal counts appointments created through the booking flow.
var BookingsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of appointments booked through the gateway.",
	},
)

// DepositsTotal counts deposit outcomes of the booking flow.
// Label:
//   - status: receipt status ("pending", "completed") or "failed"
var DepositsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposits_total",
		Help:      "Total number of deposit attempts, by outcome.",
	},
	[]string{"status"},
)
