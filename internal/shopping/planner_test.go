// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package shopping

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func plannerCatalog() []Item {
	return []Item{
		{ProductID: 1, Name: "Apples", Brand: "Orchard", Category: "Produce", UnitPrice: 3, HealthLabel: "Healthy"},
		{ProductID: 2, Name: "Steak", Brand: "Ranch", Category: "Meat", UnitPrice: 5},
		{ProductID: 3, Name: "Apples", Brand: "Orchard", Category: "Produce", UnitPrice: 2.5, HealthLabel: "Healthy"},
		{ProductID: 4, Name: "Milk", Brand: "Dairyland", Category: "Dairy", UnitPrice: 1.5, HealthLabel: "Healthy"},
	}
}

func TestPlanner_Plan(t *testing.T) {
	t.Parallel()

	p := NewPlanner(0, zerolog.Nop())
	if p.MaxRank() != DefaultMaxRank {
		t.Fatalf("MaxRank() = %d, want %d", p.MaxRank(), DefaultMaxRank)
	}

	tests := []struct {
		name      string
		req       PlanRequest
		wantIDs   []int
		wantQty   []int
		wantTotal float64
	}{
		{
			name: "produce preferred within budget",
			req: PlanRequest{
				Budget:      4,
				Preferences: []CategoryPreference{{Category: "Produce", Rank: 1}},
				Filter:      Filter{Categories: []string{"Produce", "Meat"}},
			},
			// The duplicate Apples listing (id 3) is dropped before scoring.
			wantIDs:   []int{1},
			wantQty:   []int{1},
			wantTotal: 3,
		},
		{
			name: "quantity mode doubles preferred dairy",
			req: PlanRequest{
				Budget: 11,
				Mode:   ModeQuantity,
				Preferences: []CategoryPreference{
					{Category: "Dairy", Rank: 1, PreferQuantity: true},
					{Category: "Produce", Rank: 2},
				},
			},
			wantIDs:   []int{4, 1, 2},
			wantQty:   []int{2, 1, 1},
			wantTotal: 11,
		},
		{
			name: "healthy only in budget mode",
			req: PlanRequest{
				Budget: 100,
				Mode:   ModeBudgetOnly,
				Filter: Filter{HealthyOnly: true},
			},
			wantIDs:   []int{4, 1},
			wantQty:   []int{1, 1},
			wantTotal: 4.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			list, err := p.Plan(plannerCatalog(), tt.req)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			var qty []int
			for _, e := range list.Entries {
				qty = append(qty, e.Quantity)
			}
			if got := entryIDs(list); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("entries = %v, want %v", got, tt.wantIDs)
			}
			if !reflect.DeepEqual(qty, tt.wantQty) {
				t.Errorf("quantities = %v, want %v", qty, tt.wantQty)
			}
			if list.TotalCost != tt.wantTotal {
				t.Errorf("TotalCost = %v, want %v", list.TotalCost, tt.wantTotal)
			}
		})
	}
}

func TestPlanner_PlanNoAffordableItems(t *testing.T) {
	t.Parallel()

	p := NewPlanner(DefaultMaxRank, zerolog.Nop())
	list, err := p.Plan(plannerCatalog(), PlanRequest{Budget: 1})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if !list.NoAffordableItems || len(list.Entries) != 0 {
		t.Errorf("list = %+v, want empty with NoAffordableItems", list)
	}
	if list.Mode != ModeSingleUnit {
		t.Errorf("Mode = %q, want %q", list.Mode, ModeSingleUnit)
	}
}

func TestPlanner_PlanValidation(t *testing.T) {
	t.Parallel()

	p := NewPlanner(5, zerolog.Nop())

	tests := []struct {
		name  string
		req   PlanRequest
		field string
	}{
		{"rank above planner max", PlanRequest{Budget: 10, Preferences: []CategoryPreference{{Category: "Produce", Rank: 6}}}, "preferences"},
		{"too many categories", PlanRequest{Budget: 10, Filter: Filter{Categories: make([]string, 10)}}, "filter.categories"},
		{"negative budget", PlanRequest{Budget: -5}, "budget"},
		{"unknown mode", PlanRequest{Budget: 10, Mode: "cheapest"}, "mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := p.Plan(plannerCatalog(), tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeSingleUnit, false},
		{"single-unit", ModeSingleUnit, false},
		{"quantity", ModeQuantity, false},
		{"Budget_Only", ModeBudgetOnly, false},
		{" QUANTITY ", ModeQuantity, false},
		{"knapsack", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
