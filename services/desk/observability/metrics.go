// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the desk client.
//
// # Description
//
// Metrics cover the HTTP client (request counts, latencies, error kinds)
// and the state container (degraded slices, unknown actions). All metric
// operations are thread-safe via Prometheus's internal locking.
//
// # Integration
//
// The CLI registers against the default registry. Long-running embedders can
// scrape via promhttp or push as they see fit; this package only defines and
// updates the series.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "deskctl"
	clientSubsystem  = "client"
	storeSubsystem   = "store"
)

// Metrics holds all Prometheus metrics for the desk client and store.
//
// Initialize once at startup via Init(). A nil *Metrics is valid and all
// methods become no-ops, so library users can opt out entirely.
type Metrics struct {
	// RequestsTotal counts API requests by endpoint and outcome.
	// Labels: endpoint (incidents_list, chat_send, ...), status (success, error)
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures wall time per API request.
	// Labels: endpoint
	RequestDurationSeconds *prometheus.HistogramVec

	// ErrorsTotal counts client errors by taxonomy kind.
	// Labels: endpoint, kind (transport, validation, not_found, server, decode)
	ErrorsTotal *prometheus.CounterVec

	// DegradedSlices tracks which state slices are currently degraded.
	// Labels: slice (incidents, chat, analytics)
	DegradedSlices *prometheus.GaugeVec

	// UnknownActionsTotal counts reducer actions that matched no known
	// variant. Should stay at zero; a nonzero value means a new action type
	// was added without a reducer case.
	UnknownActionsTotal prometheus.Counter
}

// Default is the singleton instance, set by Init().
var Default *Metrics

// Init creates and registers all metrics against the default registry.
//
// Panics if called twice (duplicate registration), matching promauto
// semantics. Call once from main.
func Init() *Metrics {
	Default = &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: clientSubsystem,
				Name:      "requests_total",
				Help:      "API requests by endpoint and outcome.",
			},
			[]string{"endpoint", "status"},
		),
		RequestDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: clientSubsystem,
				Name:      "request_duration_seconds",
				Help:      "API request wall time.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: clientSubsystem,
				Name:      "errors_total",
				Help:      "Client errors by taxonomy kind.",
			},
			[]string{"endpoint", "kind"},
		),
		DegradedSlices: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: storeSubsystem,
				Name:      "degraded_slices",
				Help:      "1 when a state slice is degraded, 0 otherwise.",
			},
			[]string{"slice"},
		),
		UnknownActionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: storeSubsystem,
				Name:      "unknown_actions_total",
				Help:      "Reducer actions that matched no known variant.",
			},
		),
	}
	return Default
}

// ObserveRequest records one completed API request.
func (m *Metrics) ObserveRequest(endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.RequestDurationSeconds.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveError records one classified client error.
func (m *Metrics) ObserveError(endpoint, kind string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(endpoint, kind).Inc()
}

// SetDegraded flags or clears the degraded gauge for a slice.
func (m *Metrics) SetDegraded(slice string, degraded bool) {
	if m == nil {
		return
	}
	v := 0.0
	if degraded {
		v = 1.0
	}
	m.DegradedSlices.WithLabelValues(slice).Set(v)
}

// CountUnknownAction records a reducer action with no matching variant.
func (m *Metrics) CountUnknownAction() {
	if m == nil {
		return
	}
	m.UnknownActionsTotal.Inc()
}
