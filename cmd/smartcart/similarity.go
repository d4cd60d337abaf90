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
)

type similarityOptions struct {
	interactions string
	user         int
	other        int
	neighbors    int
}

type similarityOutput struct {
	UserID     int                  `json:"user_id"`
	OtherID    *int                 `json:"other_id,omitempty"`
	Similarity *float64             `json:"similarity,omitempty"`
	Neighbors  []recommend.Neighbor `json:"neighbors,omitempty"`
}

func newSimilarityCmd(g *globalOptions) *cobra.Command {
	opts := &similarityOptions{}

	cmd := &cobra.Command{
		Use:   "similarity",
		Short: "Show cosine similarity between users",
		Long: `Show cosine similarity between users.

With --other, prints the similarity of the two users. Otherwise prints the
user's nearest neighbors.

Examples:
  smartcart similarity --interactions orders.csv --user 42 --other 7
  smartcart similarity --interactions orders.csv --user 42 --neighbors 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := dataset.LoadInteractionsFile(opts.interactions)
			if err != nil {
				return err
			}
			m, err := recommend.BuildMatrix(records)
			if err != nil {
				return err
			}
			sim, err := recommend.ComputeSimilarity(cmd.Context(), m, 0)
			if err != nil {
				return err
			}

			if !sim.HasUser(opts.user) {
				return fmt.Errorf("user %d has no purchase history", opts.user)
			}

			out := similarityOutput{UserID: opts.user}
			if cmd.Flags().Changed("other") {
				if !sim.HasUser(opts.other) {
					return fmt.Errorf("user %d has no purchase history", opts.other)
				}
				s := sim.Similarity(opts.user, opts.other)
				out.OtherID, out.Similarity = &opts.other, &s
			} else {
				out.Neighbors = sim.Neighbors(opts.user)
				if opts.neighbors > 0 && len(out.Neighbors) > opts.neighbors {
					out.Neighbors = out.Neighbors[:opts.neighbors]
				}
			}

			w := cmd.OutOrStdout()
			if g.json {
				return printJSON(w, out)
			}
			if out.Similarity != nil {
				fmt.Fprintf(w, "similarity(%d, %d) = %.4f\n", opts.user, opts.other, *out.Similarity)
				return nil
			}
			t := newTable(w, "USER", "SIMILARITY")
			for _, nb := range out.Neighbors {
				t.row(nb.UserID, fmt.Sprintf("%.4f", nb.Similarity))
			}
			return t.flush()
		},
	}

	cmd.Flags().StringVar(&opts.interactions, "interactions", "", "purchase history CSV")
	cmd.Flags().IntVar(&opts.user, "user", 0, "first user id")
	cmd.Flags().IntVar(&opts.other, "other", 0, "second user id")
	cmd.Flags().IntVar(&opts.neighbors, "neighbors", 10, "neighbors to list when --other is not set (0 = all)")
	_ = cmd.MarkFlagRequired("interactions")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
