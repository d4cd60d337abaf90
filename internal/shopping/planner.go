// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package shopping

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/smartcart/internal/metrics"
)

// PlanRequest is one shopping list request.
type PlanRequest struct {
	Budget      float64              `json:"budget"`
	Mode        Mode                 `json:"mode"`
	Preferences []CategoryPreference `json:"preferences"`
	Filter      Filter               `json:"filter"`
}

// Planner runs filter, dedupe, score and allocate for a request.
type Planner struct {
	maxRank int
	logger  zerolog.Logger
}

// NewPlanner creates a Planner. A maxRank below 1 selects DefaultMaxRank.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPlanner(maxRank int, logger zerolog.Logger) *Planner {
	if maxRank < 1 {
		maxRank = DefaultMaxRank
	}
	return &Planner{
		maxRank: maxRank,
		logger:  logger.With().Str("component", "shopping").Logger(),
	}
}

// MaxRank returns the rank ceiling applied to preferences.
func (p *Planner) MaxRank() int { return p.maxRank }

// Plan builds a shopping list from catalog for req. An empty Mode selects
// ModeSingleUnit.
func (p *Planner) Plan(catalog []Item, req PlanRequest) (ShoppingList, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeSingleUnit
	}
	if err := req.Filter.Validate(); err != nil {
		return ShoppingList{}, err
	}
	prefs, err := NewPreferences(p.maxRank, req.Preferences...)
	if err != nil {
		return ShoppingList{}, err
	}

	eligible := Dedupe(req.Filter.Apply(catalog))
	list, err := Allocate(ScoreCatalog(eligible, prefs), req.Budget, mode)
	if err != nil {
		return ShoppingList{}, err
	}

	metrics.RecordAllocation(string(mode), list.NoAffordableItems, list.TotalCost, list.Budget)

	event := p.logger.Debug()
	if list.NoAffordableItems {
		event = p.logger.Info()
	}
	event.
		Str("mode", string(mode)).
		Float64("budget", req.Budget).
		Int("catalog", len(catalog)).
		Int("eligible", len(eligible)).
		Int("entries", len(list.Entries)).
		Float64("total_cost", list.TotalCost).
		Bool("no_affordable_items", list.NoAffordableItems).
		Msg("shopping list planned")

	return list, nil
}
