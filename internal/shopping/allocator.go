// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package shopping

import (
	"fmt"
	"math"
	"sort"
)

// budgetEpsilon absorbs float error from summing prices, so an item that
// fits exactly (e.g. 0.1+0.2 against a budget of 0.3) is not rejected.
const budgetEpsilon = 1e-9

// Allocate greedily builds a shopping list from scored items without
// exceeding budget.
//
// Items are visited once in mode order and never revisited. An item that
// does not fit is skipped and the scan continues. No item is split into a
// fractional unit. The input slice is not modified.
func Allocate(scored []ScoredItem, budget float64, mode Mode) (ShoppingList, error) {
	if err := validateAllocation(scored, budget, mode); err != nil {
		return ShoppingList{}, err
	}

	ordered := append([]ScoredItem(nil), scored...)
	sortForMode(ordered, mode)

	list := ShoppingList{
		Mode:    mode,
		Entries: []Entry{},
		Budget:  budget,
	}
	seen := make(map[int]struct{}, len(ordered))

	for _, it := range ordered {
		if _, dup := seen[it.ProductID]; dup {
			continue
		}

		qty := 0
		switch mode {
		case ModeQuantity:
			qty = quantityFor(it, budget-list.TotalCost)
		default:
			if list.TotalCost+it.UnitPrice <= budget+budgetEpsilon {
				qty = 1
			}
		}
		if qty == 0 {
			continue
		}

		seen[it.ProductID] = struct{}{}
		line := float64(qty) * it.UnitPrice
		list.Entries = append(list.Entries, Entry{
			ProductID: it.ProductID,
			Name:      it.Name,
			Brand:     it.Brand,
			Category:  it.Category,
			UnitPrice: it.UnitPrice,
			Quantity:  qty,
			LineTotal: line,
		})
		list.TotalCost = math.Min(list.TotalCost+line, budget)
	}

	list.Remaining = budget - list.TotalCost
	list.NoAffordableItems = len(list.Entries) == 0
	return list, nil
}

// quantityFor returns how many units of it to buy with remaining budget,
// or 0 to skip it.
func quantityFor(it ScoredItem, remaining float64) int {
	want := 1
	if it.PreferQuantity {
		want = PreferredQuantity
	}
	if it.UnitPrice == 0 {
		return want
	}
	affordable := math.Floor((remaining + budgetEpsilon) / it.UnitPrice)
	if affordable < 1 {
		return 0
	}
	if affordable < float64(want) {
		return int(affordable)
	}
	return want
}

func sortForMode(items []ScoredItem, mode Mode) {
	if mode == ModeBudgetOnly {
		sort.SliceStable(items, func(a, b int) bool {
			if items[a].UnitPrice != items[b].UnitPrice {
				return items[a].UnitPrice < items[b].UnitPrice
			}
			return items[a].ProductID < items[b].ProductID
		})
		return
	}
	sort.SliceStable(items, func(a, b int) bool {
		x, y := items[a], items[b]
		if x.Score != y.Score {
			return x.Score > y.Score
		}
		if x.UnitPrice != y.UnitPrice {
			return x.UnitPrice < y.UnitPrice
		}
		return x.ProductID < y.ProductID
	})
}

func validateAllocation(scored []ScoredItem, budget float64, mode Mode) error {
	if !mode.Valid() {
		return newValidationError("mode", "unknown mode %q", string(mode))
	}
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return newValidationError("budget", "must be a finite number")
	}
	if budget < 0 {
		return newValidationError("budget", "must be >= 0, got %v", budget)
	}
	for i, it := range scored {
		if math.IsNaN(it.UnitPrice) || math.IsInf(it.UnitPrice, 0) {
			return newValidationError(fmt.Sprintf("items[%d].price", i),
				"product %d has a non-finite price", it.ProductID)
		}
		if it.UnitPrice < 0 {
			return newValidationError(fmt.Sprintf("items[%d].price", i),
				"product %d has negative price %v", it.ProductID, it.UnitPrice)
		}
		if math.IsNaN(it.Score) {
			return newValidationError(fmt.Sprintf("items[%d].score", i),
				"product %d has a NaN score", it.ProductID)
		}
	}
	return nil
}
