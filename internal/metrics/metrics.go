// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

// Package metrics holds the Prometheus collectors for SmartCart.
//
// Collectors are registered on the default registry at package init through
// promauto and exposed by the API router at /metrics. Callers record through
// the Record* helpers rather than touching collectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by several collectors.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
	OutcomeUnknown = "unknown_user"
	OutcomeCached  = "cached"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartcart_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartcart_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartcart_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Model Metrics
	ModelRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartcart_model_rebuilds_total",
			Help: "Total number of recommendation model rebuilds by status",
		},
		[]string{"status"},
	)

	ModelRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "smartcart_model_rebuild_duration_seconds",
			Help:    "Duration of recommendation model rebuilds in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		},
	)

	ModelUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartcart_model_users",
			Help: "Number of users in the current interaction matrix",
		},
	)

	ModelProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartcart_model_products",
			Help: "Number of products in the current interaction matrix",
		},
	)

	ModelNonZero = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartcart_model_nonzero_entries",
			Help: "Number of non-zero cells in the current interaction matrix",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "smartcart_model_version",
			Help: "Version of the recommendation model currently serving",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartcart_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "smartcart_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// Allocation Metrics
	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartcart_allocations_total",
			Help: "Total number of shopping list allocations by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	AllocationSpendRatio = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartcart_allocation_spend_ratio",
			Help:    "Fraction of the budget spent by an allocation",
			Buckets: []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99, 1},
		},
		[]string{"mode"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartcart_store_operation_duration_seconds",
			Help:    "Duration of data store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartcart_store_operation_errors_total",
			Help: "Total number of failed data store operations",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordModelRebuild records a model rebuild attempt. Shape gauges are only
// updated on success so that a failed rebuild keeps reporting the model that
// is still serving.
func RecordModelRebuild(duration time.Duration, users, products, nonZero int, version int64, err error) {
	ModelRebuildDuration.Observe(duration.Seconds())
	if err != nil {
		ModelRebuildsTotal.WithLabelValues(OutcomeError).Inc()
		return
	}
	ModelRebuildsTotal.WithLabelValues(OutcomeOK).Inc()
	ModelUsers.Set(float64(users))
	ModelProducts.Set(float64(products))
	ModelNonZero.Set(float64(nonZero))
	ModelVersion.Set(float64(version))
}

// RecordRecommendation records a served recommendation request.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordAllocation records an allocation. spent/budget is observed only
// for positive budgets.
func RecordAllocation(mode string, empty bool, spent, budget float64) {
	outcome := OutcomeOK
	if empty {
		outcome = OutcomeEmpty
	}
	AllocationsTotal.WithLabelValues(mode, outcome).Inc()
	if budget > 0 {
		AllocationSpendRatio.WithLabelValues(mode).Observe(spent / budget)
	}
}

// RecordStoreOperation records a data store operation.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}
