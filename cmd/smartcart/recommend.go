// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/smartcart/internal/dataset"
	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/shopping"
)

type recommendOptions struct {
	interactions string
	catalog      string
	user         int
	top          int
	workers      int
}

// recommendOutput is the --json shape of the recommend command.
type recommendOutput struct {
	UserID      int                  `json:"user_id"`
	UnknownUser bool                 `json:"unknown_user"`
	Items       []recommendedProduct `json:"items"`
}

type recommendedProduct struct {
	ProductID int     `json:"product_id"`
	Affinity  float64 `json:"affinity"`
	Name      string  `json:"product_name,omitempty"`
	Category  string  `json:"category,omitempty"`
}

func newRecommendCmd(g *globalOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend products for a user from purchase history",
		Long: `Recommend products for a user from purchase history.

Every other user's purchases are summed, products the user already bought
are removed, and the rest are ranked by the summed signal.

Examples:
  smartcart recommend --interactions orders.csv --user 42
  smartcart recommend --interactions orders.csv --catalog products.csv --user 42 --top 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.top < 1 {
				return fmt.Errorf("--top must be at least 1, got %d", opts.top)
			}

			records, err := dataset.LoadInteractionsFile(opts.interactions)
			if err != nil {
				return err
			}
			model, err := recommend.NewModel(cmd.Context(), records, opts.workers)
			if err != nil {
				return err
			}

			var names map[int]shopping.Item
			if opts.catalog != "" {
				items, err := dataset.LoadCatalogFile(opts.catalog)
				if err != nil {
					return err
				}
				names = make(map[int]shopping.Item, len(items))
				for _, it := range items {
					names[it.ProductID] = it
				}
			}

			out := recommendOutput{
				UserID:      opts.user,
				UnknownUser: !model.Matrix.HasUser(opts.user),
				Items:       []recommendedProduct{},
			}
			for _, r := range model.Recommend(opts.user, opts.top) {
				p := recommendedProduct{ProductID: r.ProductID, Affinity: r.Affinity}
				if it, ok := names[r.ProductID]; ok {
					p.Name, p.Category = it.Name, it.Category
				}
				out.Items = append(out.Items, p)
			}

			w := cmd.OutOrStdout()
			if g.json {
				return printJSON(w, out)
			}
			if out.UnknownUser {
				fmt.Fprintf(w, "User %d has no purchase history; no recommendations.\n", opts.user)
				return nil
			}
			if len(out.Items) == 0 {
				fmt.Fprintf(w, "User %d has already bought every known product.\n", opts.user)
				return nil
			}
			t := newTable(w, "RANK", "PRODUCT", "NAME", "CATEGORY", "AFFINITY")
			for i, p := range out.Items {
				t.row(i+1, p.ProductID, p.Name, p.Category, p.Affinity)
			}
			return t.flush()
		},
	}

	cmd.Flags().StringVar(&opts.interactions, "interactions", "", "purchase history CSV (user_id, product_id[, reordered|signal])")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "optional product catalog CSV for names")
	cmd.Flags().IntVar(&opts.user, "user", 0, "target user id")
	cmd.Flags().IntVar(&opts.top, "top", 5, "number of recommendations")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "similarity workers (0 = GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("interactions")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
