// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package shopping

import "strings"

// Item is one catalog product.
type Item struct {
	ProductID           int     `json:"product_id"`
	Name                string  `json:"product_name"`
	Brand               string  `json:"brand"`
	Category            string  `json:"category"`
	UnitPrice           float64 `json:"price"`
	HealthLabel         string  `json:"health_label,omitempty"`
	SustainabilityLabel string  `json:"sustainability_label,omitempty"`
}

// CategoryPreference is a shopper's rank for a category (1 is best) and
// whether they want more than one unit of items in it.
type CategoryPreference struct {
	Category       string `json:"category" validate:"notblank"`
	Rank           int    `json:"rank" validate:"gte=1"`
	PreferQuantity bool   `json:"prefer_quantity"`
}

// ScoredItem is an Item with its preference score attached.
type ScoredItem struct {
	Item
	Score          float64 `json:"score"`
	PreferQuantity bool    `json:"prefer_quantity"`
}

// Mode selects the allocation strategy.
type Mode string

const (
	// ModeSingleUnit buys at most one unit of each item, in score order.
	ModeSingleUnit Mode = "single-unit"

	// ModeQuantity buys up to two units of items whose category prefers
	// quantity, in score order.
	ModeQuantity Mode = "quantity"

	// ModeBudgetOnly ignores preferences and buys the cheapest items first.
	ModeBudgetOnly Mode = "budget-only"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeSingleUnit, ModeQuantity, ModeBudgetOnly}

// ParseMode parses a mode name. The empty string selects ModeSingleUnit.
// Underscores are accepted in place of hyphens.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeSingleUnit, nil
	}
	m := Mode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !m.Valid() {
		return "", newValidationError("mode", "unknown mode %q", s)
	}
	return m, nil
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeSingleUnit, ModeQuantity, ModeBudgetOnly:
		return true
	}
	return false
}

func (m Mode) String() string { return string(m) }

// Entry is one line of a shopping list.
type Entry struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"product_name"`
	Brand     string  `json:"brand"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// ShoppingList is the result of an allocation.
type ShoppingList struct {
	Mode      Mode    `json:"mode"`
	Entries   []Entry `json:"entries"`
	TotalCost float64 `json:"total_cost"`
	Budget    float64 `json:"budget"`
	Remaining float64 `json:"remaining"`

	// NoAffordableItems is set when nothing fit the budget.
	NoAffordableItems bool `json:"no_affordable_items"`
}

// ItemCount returns the total number of units on the list.
func (l *ShoppingList) ItemCount() int {
	n := 0
	for _, e := range l.Entries {
		n += e.Quantity
	}
	return n
}
