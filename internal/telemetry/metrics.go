/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package telemetry exposes Prometheus metrics and OpenTelemetry tracing
// for the scheduling engine.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SearchesTotal counts search invocations by mode (day, range) and
	// outcome (ok, truncated, error).
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roundtable_searches_total",
		Help: "Search invocations by mode and outcome.",
	}, []string{"mode", "outcome"})

	// SearchDuration observes wall time per search by mode.
	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roundtable_search_duration_seconds",
		Help:    "Search duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	// BranchesPrunedTotal counts pruned backtracking branches by gate.
	BranchesPrunedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roundtable_branches_pruned_total",
		Help: "Backtracking branches pruned, by constraint gate.",
	}, []string{"gate"})

	// CombinationsAcceptedTotal counts accepted single-day combinations.
	CombinationsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roundtable_combinations_accepted_total",
		Help: "Accepted single-day combinations.",
	})

	// PlansAcceptedTotal counts accepted multi-day plans.
	PlansAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roundtable_plans_accepted_total",
		Help: "Accepted multi-day plans.",
	})

	// BookingsTotal counts booking operations by action.
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roundtable_bookings_total",
		Help: "Booking operations by action (create, cancel).",
	}, []string{"action"})

	// DatabaseQueryDuration observes query wall time by operation and table.
	DatabaseQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roundtable_database_query_duration_seconds",
		Help:    "Database query duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseErrorsTotal counts database errors by operation.
	DatabaseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roundtable_database_errors_total",
		Help: "Database errors by operation and kind.",
	}, []string{"operation", "kind"})

	// DatabaseConnectionsActive tracks open connections in the pool.
	DatabaseConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roundtable_database_connections_active",
		Help: "Open database connections.",
	})
)

// Prune gate labels.
const (
	GateAvailability = "availability"
	GateBusyOverlap  = "busy_overlap"
	GateLoadLimit    = "load_limit"
	GateReuse        = "cross_round_reuse"
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
