// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics registers the Prometheus collectors exported on /metrics.

All collectors live on the default registry through promauto, so importing
the package is enough to make them visible to promhttp.Handler.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "riwayati"

// Draft outcomes recorded on [DraftTotal].
const (
	OutcomeOK        = "ok"
	OutcomeTooShort  = "too_short"
	OutcomeBusy      = "busy"
	OutcomeUpstream  = "upstream_error"
	OutcomeNotFound  = "not_found"
	OutcomeCancelled = "cancelled"
)

var (
	// # HTTP

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "route"},
	)

	// # Drafting

	DraftTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "draft",
			Name:      "requests_total",
			Help:      "Chapter draft requests by outcome",
		},
		[]string{"provider", "outcome"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "Text generation call duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120},
		},
		[]string{"provider", "model"},
	)

	DraftWordCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "draft",
			Name:      "generated_words",
			Help:      "Word count of generated drafts",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2000, 5000},
		},
	)
)
