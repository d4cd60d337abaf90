// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package shopping

import "strings"

const (
	// MaxSelectedCategories caps how many categories a filter may select.
	MaxSelectedCategories = 9

	// HealthyLabel and SustainableLabel are the catalog label values the
	// filter flags keep.
	HealthyLabel     = "Healthy"
	SustainableLabel = "Sustainable"
)

// Filter narrows a catalog before scoring.
type Filter struct {
	// Categories keeps only items in these categories. Empty keeps all.
	Categories []string `json:"categories,omitempty" validate:"max=9,dive,notblank"`

	HealthyOnly     bool `json:"healthy_only,omitempty"`
	SustainableOnly bool `json:"sustainable_only,omitempty"`
}

// Validate checks the filter.
func (f Filter) Validate() error {
	if len(f.Categories) > MaxSelectedCategories {
		return newValidationError("filter.categories",
			"at most %d categories may be selected, got %d", MaxSelectedCategories, len(f.Categories))
	}
	return nil
}

// Match reports whether item passes the filter.
func (f Filter) Match(item Item) bool {
	if f.HealthyOnly && !strings.EqualFold(strings.TrimSpace(item.HealthLabel), HealthyLabel) {
		return false
	}
	if f.SustainableOnly && !strings.EqualFold(strings.TrimSpace(item.SustainabilityLabel), SustainableLabel) {
		return false
	}
	if len(f.Categories) == 0 {
		return true
	}
	for _, c := range f.Categories {
		if item.Category == c {
			return true
		}
	}
	return false
}

// Apply returns the items that pass the filter, preserving order.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Dedupe keeps the first item for each (name, brand) pair. The catalog
// lists the same product under several ids when it is stocked in more
// than one aisle.
func Dedupe(items []Item) []Item {
	type nameBrand struct{ name, brand string }
	seen := make(map[nameBrand]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := nameBrand{it.Name, it.Brand}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
