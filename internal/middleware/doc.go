// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

/*
Package middleware provides chi-compatible HTTP middleware.

Key Components:

  - RequestID: request and correlation ids in the response header and the
    logging context
  - AccessLog: one structured zerolog entry per request
  - PrometheusMetrics: request counters, latency histograms and the active
    request gauge

Every middleware has the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Metrics are labeled with the chi route pattern (for example
/api/v1/recommendations/user/{userID}) rather than the raw path, which keeps
label cardinality bounded.
*/
package middleware
