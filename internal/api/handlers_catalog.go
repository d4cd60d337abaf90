// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/smartcart/internal/logging"
	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/shopping"
	"github.com/tomtom215/smartcart/internal/store"
	"github.com/tomtom215/smartcart/internal/validation"
)

// IngestResponse is the body of a successful ingestion request.
type IngestResponse struct {
	Accepted         int  `json:"accepted"`
	RebuildRequested bool `json:"rebuild_requested"`
}

// AddInteractions handles POST /api/v1/interactions. Records are merged into
// the store and a model rebuild is requested; until it completes,
// recommendations come from the previous model.
func (h *Handler) AddInteractions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req InteractionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	records := req.toInteractions()
	if err := h.store.AddInteractions(ctx, records); err != nil {
		if errors.Is(err, recommend.ErrInvalidInteraction) {
			rw.ValidationError(err.Error(), nil)
			return
		}
		rw.StoreError(err)
		return
	}

	requested := false
	if h.rebuilds != nil {
		requested = h.rebuilds.RequestRebuild("interactions")
	}

	logging.Ctx(r.Context()).Info().
		Int("records", len(records)).
		Bool("rebuild_requested", requested).
		Msg("interactions ingested")

	rw.Created(IngestResponse{Accepted: len(records), RebuildRequested: requested})
}

// ListProducts handles GET /api/v1/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := h.requestContext(r)
	defer cancel()

	items, err := h.store.Products(ctx)
	if err != nil {
		rw.StoreError(err)
		return
	}
	if items == nil {
		items = []shopping.Item{}
	}
	rw.SuccessWithCount(items, len(items))
}

// PutProducts handles POST /api/v1/products. Existing products are replaced.
func (h *Handler) PutProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ProductsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	items := req.toItems()
	if err := h.store.PutProducts(ctx, items); err != nil {
		if errors.Is(err, store.ErrInvalidProduct) {
			rw.ValidationError(err.Error(), nil)
			return
		}
		rw.StoreError(err)
		return
	}

	rw.Created(IngestResponse{Accepted: len(items)})
}
