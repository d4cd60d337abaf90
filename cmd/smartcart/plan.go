// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/smartcart/internal/dataset"
	"github.com/tomtom215/smartcart/internal/logging"
	"github.com/tomtom215/smartcart/internal/shopping"
	"github.com/tomtom215/smartcart/internal/validation"
)

type planOptions struct {
	catalog     string
	mode        string
	prefs       []string
	categories  []string
	healthy     bool
	sustainable bool
	maxRank     int
	minBudget   float64
	maxBudget   float64
	budget      float64
}

// planInput is the parsed, validated form of the plan flags.
type planInput struct {
	Budget      float64                       `json:"budget" validate:"gte=0"`
	Preferences []shopping.CategoryPreference `json:"pref" validate:"max=64,dive"`
	Filter      shopping.Filter               `json:"filter"`
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a shopping list that fits a budget",
		Long: `Build a shopping list that fits a budget.

Preferences are given as CATEGORY:RANK[:QUANTITY], where rank 1 is the most
preferred category and QUANTITY (true/false) asks for two units of items in
that category when --mode quantity is used.

Examples:
  smartcart plan --catalog products.csv --budget 40
  smartcart plan --catalog products.csv --budget 60 --mode quantity \
      --pref Produce:1:true --pref Dairy:2 --category Produce --category Dairy --healthy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := shopping.ParseMode(opts.mode)
			if err != nil {
				return err
			}
			prefs, err := parsePreferences(opts.prefs)
			if err != nil {
				return err
			}

			in := planInput{
				Budget:      opts.budget,
				Preferences: prefs,
				Filter: shopping.Filter{
					Categories:      opts.categories,
					HealthyOnly:     opts.healthy,
					SustainableOnly: opts.sustainable,
				},
			}
			if verr := validation.ValidateStruct(&in); verr != nil {
				return verr
			}
			if in.Budget < opts.minBudget || in.Budget > opts.maxBudget {
				return fmt.Errorf("--budget must be between %.2f and %.2f, got %.2f",
					opts.minBudget, opts.maxBudget, in.Budget)
			}

			catalog, err := dataset.LoadCatalogFile(opts.catalog)
			if err != nil {
				return err
			}

			planner := shopping.NewPlanner(opts.maxRank, logging.WithComponent("shopping"))
			list, err := planner.Plan(catalog, shopping.PlanRequest{
				Budget:      in.Budget,
				Mode:        mode,
				Preferences: in.Preferences,
				Filter:      in.Filter,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if g.json {
				return printJSON(w, list)
			}
			if list.NoAffordableItems {
				fmt.Fprintf(w, "No items fit within a budget of %.2f. Try a higher budget or fewer filters.\n", list.Budget)
				return nil
			}
			t := newTable(w, "PRODUCT", "NAME", "BRAND", "CATEGORY", "PRICE", "QTY", "TOTAL")
			for _, e := range list.Entries {
				t.row(e.ProductID, e.Name, e.Brand, e.Category, e.UnitPrice, e.Quantity, e.LineTotal)
			}
			if err := t.flush(); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nMode: %s  Items: %d  Total: %.2f  Budget: %.2f  Remaining: %.2f\n",
				list.Mode, list.ItemCount(), list.TotalCost, list.Budget, list.Remaining)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "product catalog CSV")
	cmd.Flags().Float64Var(&opts.budget, "budget", 0, "budget to spend")
	cmd.Flags().StringVar(&opts.mode, "mode", string(shopping.ModeSingleUnit), "allocation mode: single-unit, quantity or budget-only")
	cmd.Flags().StringArrayVar(&opts.prefs, "pref", nil, "category preference CATEGORY:RANK[:QUANTITY] (repeatable)")
	cmd.Flags().StringArrayVar(&opts.categories, "category", nil, "keep only this category (repeatable)")
	cmd.Flags().BoolVar(&opts.healthy, "healthy", false, "keep only items labelled Healthy")
	cmd.Flags().BoolVar(&opts.sustainable, "sustainable", false, "keep only items labelled Sustainable")
	cmd.Flags().IntVar(&opts.maxRank, "max-rank", shopping.DefaultMaxRank, "number of category ranks")
	cmd.Flags().Float64Var(&opts.minBudget, "min-budget", 5, "smallest accepted budget")
	cmd.Flags().Float64Var(&opts.maxBudget, "max-budget", 500, "largest accepted budget")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

// parsePreferences parses CATEGORY:RANK[:QUANTITY] values. The category is
// everything before the last one or two fields, so it may itself contain
// colons.
func parsePreferences(values []string) ([]shopping.CategoryPreference, error) {
	prefs := make([]shopping.CategoryPreference, 0, len(values))
	for _, v := range values {
		p, err := parsePreference(v)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, nil
}

func parsePreference(v string) (shopping.CategoryPreference, error) {
	parts := strings.Split(v, ":")
	if len(parts) < 2 {
		return shopping.CategoryPreference{}, fmt.Errorf("--pref %q: want CATEGORY:RANK[:QUANTITY]", v)
	}

	var quantity bool
	if len(parts) >= 3 {
		if q, err := strconv.ParseBool(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			quantity = q
			parts = parts[:len(parts)-1]
		}
	}

	rank, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return shopping.CategoryPreference{}, fmt.Errorf("--pref %q: rank must be an integer", v)
	}
	category := strings.TrimSpace(strings.Join(parts[:len(parts)-1], ":"))
	if category == "" {
		return shopping.CategoryPreference{}, fmt.Errorf("--pref %q: category is empty", v)
	}

	return shopping.CategoryPreference{Category: category, Rank: rank, PreferQuantity: quantity}, nil
}
