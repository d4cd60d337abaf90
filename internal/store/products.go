// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/smartcart/internal/shopping"
)

const prefixProduct = "product:"

func productKey(id int) []byte {
	return []byte(prefixProduct + strconv.Itoa(id))
}

// PutProducts inserts or replaces catalog items in one transaction.
func (s *Store) PutProducts(ctx context.Context, items []shopping.Item) error {
	for i, it := range items {
		if it.UnitPrice < 0 || math.IsNaN(it.UnitPrice) || math.IsInf(it.UnitPrice, 0) {
			return fmt.Errorf("%w: product %d (record %d) has price %v", ErrInvalidProduct, it.ProductID, i, it.UnitPrice)
		}
	}

	return s.run(ctx, "put_products", func() error {
		wb := s.db.NewWriteBatch()
		defer wb.Cancel()

		for _, it := range items {
			data, err := json.Marshal(it)
			if err != nil {
				return fmt.Errorf("marshal product: %w", err)
			}
			if err := wb.Set(productKey(it.ProductID), data); err != nil {
				return fmt.Errorf("set product: %w", err)
			}
		}
		if err := wb.Flush(); err != nil {
			return fmt.Errorf("flush products: %w", err)
		}
		return nil
	})
}

// Product returns a single catalog item or ErrNotFound.
func (s *Store) Product(ctx context.Context, id int) (shopping.Item, error) {
	var item shopping.Item
	err := s.run(ctx, "product", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			entry, err := txn.Get(productKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}
			return entry.Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			})
		})
	})
	return item, err
}

// Products returns the whole catalog ordered by product id.
func (s *Store) Products(ctx context.Context) ([]shopping.Item, error) {
	var items []shopping.Item
	err := s.run(ctx, "products", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = true
			it := txn.NewIterator(opts)
			defer it.Close()

			prefix := []byte(prefixProduct)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				var item shopping.Item
				if err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &item)
				}); err != nil {
					return fmt.Errorf("decode product %s: %w", it.Item().Key(), err)
				}
				items = append(items, item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Keys sort as strings ("product:10" < "product:2").
	sort.Slice(items, func(a, b int) bool { return items[a].ProductID < items[b].ProductID })
	return items, nil
}

// LookupProducts returns the catalog items for ids that exist. Missing ids
// are left out of the map.
func (s *Store) LookupProducts(ctx context.Context, ids []int) (map[int]shopping.Item, error) {
	found := make(map[int]shopping.Item, len(ids))
	err := s.run(ctx, "lookup_products", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			for _, id := range ids {
				entry, err := txn.Get(productKey(id))
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				if err != nil {
					return fmt.Errorf("get product: %w", err)
				}
				var item shopping.Item
				if err := entry.Value(func(val []byte) error {
					return json.Unmarshal(val, &item)
				}); err != nil {
					return fmt.Errorf("decode product %d: %w", id, err)
				}
				found[id] = item
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
