// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package shopping

import "strings"

const (
	// DefaultMaxRank is the number of category ranks the shopper UI offers.
	DefaultMaxRank = 9

	// QuantityBonus is added to the base score of categories that prefer
	// quantity.
	QuantityBonus = 2.0

	// PreferredQuantity is how many units quantity mode tries to buy of an
	// item whose category prefers quantity.
	PreferredQuantity = 2

	// priceSmoothing keeps near-free items from dominating the score.
	priceSmoothing = 1.0
)

type categoryPref struct {
	rank           int
	preferQuantity bool
}

// Preferences maps categories to the shopper's rank and quantity flag.
// The zero value has no ranked categories and MaxRank 0; use NewPreferences.
type Preferences struct {
	maxRank    int
	categories map[string]categoryPref
}

// NewPreferences validates and indexes category preferences. Ranks must lie
// in [1, maxRank]. Duplicate ranks are allowed; for a repeated category the
// last entry wins.
func NewPreferences(maxRank int, prefs ...CategoryPreference) (*Preferences, error) {
	if maxRank < 1 {
		return nil, newValidationError("max_rank", "must be at least 1, got %d", maxRank)
	}
	p := &Preferences{
		maxRank:    maxRank,
		categories: make(map[string]categoryPref, len(prefs)),
	}
	for i, cp := range prefs {
		if strings.TrimSpace(cp.Category) == "" {
			return nil, newValidationError("preferences", "entry %d has an empty category", i)
		}
		if cp.Rank < 1 || cp.Rank > maxRank {
			return nil, newValidationError("preferences",
				"rank %d for %q is outside [1, %d]", cp.Rank, cp.Category, maxRank)
		}
		p.categories[cp.Category] = categoryPref{rank: cp.Rank, preferQuantity: cp.PreferQuantity}
	}
	return p, nil
}

// MaxRank returns the configured rank ceiling.
func (p *Preferences) MaxRank() int { return p.maxRank }

// Len returns the number of ranked categories.
func (p *Preferences) Len() int { return len(p.categories) }

// Rank returns the category's rank and quantity flag. An unranked category
// reports rank MaxRank+1, false.
func (p *Preferences) Rank(category string) (rank int, preferQuantity bool, ranked bool) {
	cp, ok := p.categories[category]
	if !ok {
		return p.maxRank + 1, false, false
	}
	return cp.rank, cp.preferQuantity, true
}

// Score returns the desirability of item under prefs; higher is better.
// Unranked categories have a base of 0, so they score 0 at any price.
func Score(item Item, prefs *Preferences) float64 {
	rank, preferQuantity, _ := prefs.Rank(item.Category)
	base := float64(prefs.maxRank + 1 - rank)
	if preferQuantity {
		base += QuantityBonus
	}
	return base / (item.UnitPrice + priceSmoothing)
}

// ScoreCatalog scores every item, preserving input order.
func ScoreCatalog(items []Item, prefs *Preferences) []ScoredItem {
	scored := make([]ScoredItem, len(items))
	for i, it := range items {
		_, preferQuantity, _ := prefs.Rank(it.Category)
		scored[i] = ScoredItem{
			Item:           it,
			Score:          Score(it, prefs),
			PreferQuantity: preferQuantity,
		}
	}
	return scored
}
