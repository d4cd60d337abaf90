// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/smartcart/internal/logging"
	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/store"
)

// RecommendedProduct is a recommendation enriched with catalog details.
// The catalog fields are empty when the product is not in the catalog.
type RecommendedProduct struct {
	ProductID   int      `json:"product_id"`
	Affinity    float64  `json:"affinity"`
	ProductName string   `json:"product_name,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// RecommendationsResponse is the body of GET /recommendations/user/{userID}.
type RecommendationsResponse struct {
	UserID       int                  `json:"user_id"`
	Items        []RecommendedProduct `json:"items"`
	UnknownUser  bool                 `json:"unknown_user"`
	Cached       bool                 `json:"cached"`
	ModelVersion int64                `json:"model_version"`
}

// StatusResponse is the body of GET /recommendations/status.
type StatusResponse struct {
	Model recommend.Status `json:"model"`
	Store *store.Counts    `json:"store,omitempty"`
}

// GetRecommendations handles GET /api/v1/recommendations/user/{userID}?k=
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		rw.BadRequest("userID must be an integer")
		return
	}

	// k=0 or an absent k selects the configured default.
	var topK int
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		topK, err = strconv.Atoi(kStr)
		if err != nil || topK < 0 {
			rw.BadRequest("k must be a non-negative integer")
			return
		}
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{UserID: userID, TopK: topK})
	if err != nil {
		if errors.Is(err, recommend.ErrNotReady) {
			rw.ServiceUnavailable("Recommendation model not built yet")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", userID).Msg("recommendation failed")
		rw.InternalError("Failed to generate recommendations")
		return
	}

	items := h.enrich(r, resp.Items)
	rw.SuccessWithCount(RecommendationsResponse{
		UserID:       resp.UserID,
		Items:        items,
		UnknownUser:  resp.UnknownUser,
		Cached:       resp.Cached,
		ModelVersion: resp.ModelVersion,
	}, len(items))
}

// enrich attaches catalog details. A catalog failure degrades to bare ids.
func (h *Handler) enrich(r *http.Request, recs []recommend.Recommendation) []RecommendedProduct {
	out := make([]RecommendedProduct, len(recs))
	ids := make([]int, len(recs))
	for i, rec := range recs {
		out[i] = RecommendedProduct{ProductID: rec.ProductID, Affinity: rec.Affinity}
		ids[i] = rec.ProductID
	}
	if len(recs) == 0 {
		return out
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	catalog, err := h.store.LookupProducts(ctx, ids)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("catalog lookup failed, returning bare recommendations")
		return out
	}
	for i := range out {
		item, ok := catalog[out[i].ProductID]
		if !ok {
			continue
		}
		price := item.UnitPrice
		out[i].ProductName = item.Name
		out[i].Brand = item.Brand
		out[i].Category = item.Category
		out[i].Price = &price
	}
	return out
}

// GetStatus handles GET /api/v1/recommendations/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Model: h.engine.Status()}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	counts, err := h.store.Counts(ctx)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("store counts unavailable")
	} else {
		resp.Store = &counts
	}

	NewResponseWriter(w, r).Success(resp)
}

// RebuildResponse is the body of POST /recommendations/rebuild.
type RebuildResponse struct {
	Status string `json:"status"`
}

// TriggerRebuild handles POST /api/v1/recommendations/rebuild. The rebuild
// runs asynchronously in the rebuild service.
func (h *Handler) TriggerRebuild(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.rebuilds == nil {
		rw.ServiceUnavailable("Model rebuilds are not available")
		return
	}
	if !h.rebuilds.RequestRebuild("api") {
		rw.TooManyRequests("A rebuild was requested too recently, retry later")
		return
	}
	rw.Accepted(RebuildResponse{Status: "queued"})
}
