// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import (
	"context"
	"time"
)

// Interaction is one purchase record.
type Interaction struct {
	// UserID identifies the shopper.
	UserID int `json:"user_id"`

	// ProductID identifies the purchased product.
	ProductID int `json:"product_id"`

	// Signal is the strength of the record, e.g. a reorder indicator.
	// Must be >= 0. Loaders default it to 1 so that sums become counts.
	Signal float64 `json:"signal"`
}

// Recommendation is a candidate product with its aggregated neighbor affinity.
type Recommendation struct {
	ProductID int     `json:"product_id"`
	Affinity  float64 `json:"affinity"`
}

// Request is a recommendation request served by the Engine.
type Request struct {
	// UserID is the target shopper.
	UserID int

	// TopK is the maximum number of products to return.
	// Zero means the configured default; values above the configured
	// maximum are clamped.
	TopK int
}

// Response is the Engine's answer to a Request.
type Response struct {
	UserID int              `json:"user_id"`
	Items  []Recommendation `json:"items"`

	// UnknownUser is set when the user has no purchase history in the
	// current model. Items is empty in that case.
	UnknownUser bool `json:"unknown_user"`

	// Cached is set when the response was served from the result cache.
	Cached bool `json:"cached"`

	// ModelVersion is the version of the model that produced the items.
	ModelVersion int64 `json:"model_version"`
}

// Status describes the model currently serving.
type Status struct {
	Ready           bool      `json:"ready"`
	Building        bool      `json:"building"`
	ModelVersion    int64     `json:"model_version"`
	Users           int       `json:"users"`
	Products        int       `json:"products"`
	NonZero         int       `json:"nonzero_entries"`
	BuiltAt         time.Time `json:"built_at,omitempty"`
	BuildDurationMS int64     `json:"build_duration_ms"`
	LastError       string    `json:"last_error,omitempty"`
	CacheEntries    int       `json:"cache_entries"`
	CacheHits       int64     `json:"cache_hits"`
	CacheMisses     int64     `json:"cache_misses"`
}

// DataProvider supplies the interaction history a model is built from.
// It is implemented by the data store.
type DataProvider interface {
	// Interactions returns every stored interaction.
	Interactions(ctx context.Context) ([]Interaction, error)
}
