// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package api

import (
	"net/http"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status       string `json:"status"`
	ModelReady   bool   `json:"model_ready"`
	ModelVersion int64  `json:"model_version,omitempty"`
}

// HealthLive handles GET /api/v1/health/live. The process is alive if it
// can answer.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:     "alive",
		ModelReady: h.engine.Ready(),
	})
}

// HealthReady handles GET /api/v1/health/ready. It reports 503 until the
// first model is built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.engine.Ready() {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Recommendation model not built yet", HealthStatus{Status: "not_ready"})
		return
	}
	rw.Success(HealthStatus{
		Status:       "ready",
		ModelReady:   true,
		ModelVersion: h.engine.Status().ModelVersion,
	})
}
