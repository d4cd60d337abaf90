// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/smartcart/internal/shopping"
	"github.com/tomtom215/smartcart/internal/validation"
)

// ShoppingListResponse is the body of POST /api/v1/shopping-list.
type ShoppingListResponse struct {
	shopping.ShoppingList

	// Message explains an empty list to the shopper.
	Message string `json:"message,omitempty"`
}

// CreateShoppingList handles POST /api/v1/shopping-list. It plans a list
// from the stored catalog.
func (h *Handler) CreateShoppingList(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ShoppingListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	budget := *req.Budget
	if budget < h.config.MinBudget || budget > h.config.MaxBudget {
		rw.ValidationError(
			fmt.Sprintf("budget must be between %.2f and %.2f", h.config.MinBudget, h.config.MaxBudget),
			map[string]interface{}{"field": "budget", "min": h.config.MinBudget, "max": h.config.MaxBudget},
		)
		return
	}

	mode := h.config.DefaultMode
	if req.Mode != "" {
		mode = shopping.Mode(req.Mode)
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	catalog, err := h.store.Products(ctx)
	if err != nil {
		rw.StoreError(err)
		return
	}

	list, err := h.planner.Plan(catalog, shopping.PlanRequest{
		Budget:      budget,
		Mode:        mode,
		Preferences: req.Preferences,
		Filter:      req.Filter,
	})
	if err != nil {
		var verr *shopping.ValidationError
		if errors.As(err, &verr) {
			rw.ValidationError(verr.Error(), map[string]string{"field": verr.Field})
			return
		}
		rw.InternalError("Failed to plan shopping list")
		return
	}

	resp := ShoppingListResponse{ShoppingList: list}
	if list.NoAffordableItems {
		resp.Message = fmt.Sprintf(
			"No items fit within a budget of %.2f. Try a higher budget or fewer filters.", budget)
	}
	rw.Success(resp)
}
