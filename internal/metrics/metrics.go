// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package metrics defines the Prometheus instrumentation for Skillify.
// All collectors are registered on the default registry via promauto and
// exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route pattern and
	// status class.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillify_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillify_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CatalogRequestsTotal counts upstream catalog calls by operation and
	// outcome (success, error, rate_limited, circuit_open).
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillify_catalog_requests_total",
			Help: "Total number of video catalog API requests",
		},
		[]string{"operation", "outcome"},
	)

	// CatalogRequestDuration observes upstream catalog call latency.
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillify_catalog_request_duration_seconds",
			Help:    "Video catalog API request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// CircuitBreakerState exports the catalog circuit breaker state
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skillify_catalog_circuit_breaker_state",
			Help: "Catalog circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// CacheHitsTotal counts response cache hits.
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillify_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	// CacheMissesTotal counts response cache misses.
	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillify_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// CacheEvictionsTotal counts entries evicted by capacity or TTL.
	CacheEvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillify_cache_evictions_total",
			Help: "Total number of cache entries evicted",
		},
		[]string{"reason"},
	)

	// StoreOperationsTotal counts document store operations by collection,
	// operation and outcome.
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillify_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"collection", "operation", "outcome"},
	)

	// RecommendationRequestsTotal counts recommendation aggregations.
	RecommendationRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillify_recommendation_requests_total",
			Help: "Total number of recommendation aggregations served",
		},
	)

	// RecommendationTermFailuresTotal counts per-skill catalog searches that
	// failed and contributed an empty result set.
	RecommendationTermFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillify_recommendation_term_failures_total",
			Help: "Total number of per-skill catalog searches that failed",
		},
	)

	// AuthAttemptsTotal counts login attempts by outcome.
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillify_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)
)
