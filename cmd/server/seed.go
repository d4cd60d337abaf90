// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/smartcart/internal/config"
	"github.com/tomtom215/smartcart/internal/dataset"
	"github.com/tomtom215/smartcart/internal/logging"
	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/shopping"
	"github.com/tomtom215/smartcart/internal/store"
)

// seedTarget is the part of the store seeding writes to.
type seedTarget interface {
	Counts(ctx context.Context) (store.Counts, error)
	AddInteractions(ctx context.Context, records []recommend.Interaction) error
	PutProducts(ctx context.Context, items []shopping.Item) error
}

// seedStore loads the configured CSV files into the store. Each file is
// only loaded when the store holds no records of that kind, so restarting
// against a persistent store does not double-count purchases.
func seedStore(ctx context.Context, st seedTarget, data config.DataConfig) error {
	if data.InteractionsFile == "" && data.CatalogFile == "" {
		return nil
	}

	counts, err := st.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count stored records: %w", err)
	}

	if data.InteractionsFile != "" {
		if counts.Interactions > 0 {
			logging.Info().
				Int("interactions", counts.Interactions).
				Msg("Store already holds interactions, skipping seed file")
		} else {
			records, err := dataset.LoadInteractionsFile(data.InteractionsFile)
			if err != nil {
				return fmt.Errorf("seed interactions: %w", err)
			}
			if err := st.AddInteractions(ctx, records); err != nil {
				return fmt.Errorf("seed interactions: %w", err)
			}
			logging.Info().
				Str("file", data.InteractionsFile).
				Int("records", len(records)).
				Msg("Interactions seeded")
		}
	}

	if data.CatalogFile != "" {
		if counts.Products > 0 {
			logging.Info().
				Int("products", counts.Products).
				Msg("Store already holds a catalog, skipping seed file")
		} else {
			items, err := dataset.LoadCatalogFile(data.CatalogFile)
			if err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			if err := st.PutProducts(ctx, items); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			logging.Info().
				Str("file", data.CatalogFile).
				Int("products", len(items)).
				Msg("Catalog seeded")
		}
	}

	return nil
}
