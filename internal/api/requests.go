// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package api

import (
	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/shopping"
)

// InteractionInput is one purchase record in an ingestion request.
type InteractionInput struct {
	UserID    int `json:"user_id"`
	ProductID int `json:"product_id"`

	// Signal defaults to 1 when omitted.
	Signal *float64 `json:"signal,omitempty" validate:"omitempty,gte=0"`
}

// InteractionsRequest is the body of POST /api/v1/interactions.
type InteractionsRequest struct {
	Interactions []InteractionInput `json:"interactions" validate:"required,min=1,max=10000,dive"`
}

// toInteractions applies the default signal.
func (req *InteractionsRequest) toInteractions() []recommend.Interaction {
	out := make([]recommend.Interaction, len(req.Interactions))
	for i, in := range req.Interactions {
		signal := 1.0
		if in.Signal != nil {
			signal = *in.Signal
		}
		out[i] = recommend.Interaction{UserID: in.UserID, ProductID: in.ProductID, Signal: signal}
	}
	return out
}

// ProductInput is one catalog item in an upsert request.
type ProductInput struct {
	ProductID           int     `json:"product_id"`
	Name                string  `json:"product_name" validate:"notblank,max=256"`
	Brand               string  `json:"brand" validate:"max=256"`
	Category            string  `json:"category" validate:"notblank,max=128"`
	Price               float64 `json:"price" validate:"gte=0"`
	HealthLabel         string  `json:"health_label,omitempty" validate:"max=64"`
	SustainabilityLabel string  `json:"sustainability_label,omitempty" validate:"max=64"`
}

// ProductsRequest is the body of POST /api/v1/products.
type ProductsRequest struct {
	Products []ProductInput `json:"products" validate:"required,min=1,max=5000,dive"`
}

func (req *ProductsRequest) toItems() []shopping.Item {
	out := make([]shopping.Item, len(req.Products))
	for i, p := range req.Products {
		out[i] = shopping.Item{
			ProductID:           p.ProductID,
			Name:                p.Name,
			Brand:               p.Brand,
			Category:            p.Category,
			UnitPrice:           p.Price,
			HealthLabel:         p.HealthLabel,
			SustainabilityLabel: p.SustainabilityLabel,
		}
	}
	return out
}

// ShoppingListRequest is the body of POST /api/v1/shopping-list.
type ShoppingListRequest struct {
	// Budget is required; its bounds come from configuration.
	Budget *float64 `json:"budget" validate:"required"`

	// Mode defaults to the configured mode when empty.
	Mode string `json:"mode,omitempty" validate:"omitempty,oneof=single-unit quantity budget-only"`

	Preferences []shopping.CategoryPreference `json:"preferences" validate:"max=64,dive"`
	Filter      shopping.Filter               `json:"filter"`
}
