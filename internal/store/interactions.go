// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/smartcart/internal/recommend"
)

const prefixInteraction = "interaction:"

var _ recommend.DataProvider = (*Store)(nil)

// interactionBatchSize bounds the keys written per transaction so that a
// large import stays under BadgerDB's transaction size limit.
const interactionBatchSize = 5000

type interactionValue struct {
	Signal float64 `json:"signal"`
}

func interactionKey(user, product int) []byte {
	return []byte(prefixInteraction + strconv.Itoa(user) + ":" + strconv.Itoa(product))
}

func parseInteractionKey(key []byte) (user, product int, err error) {
	rest := bytes.TrimPrefix(key, []byte(prefixInteraction))
	u, p, ok := bytes.Cut(rest, []byte(":"))
	if !ok {
		return 0, 0, fmt.Errorf("malformed interaction key %q", key)
	}
	if user, err = strconv.Atoi(string(u)); err != nil {
		return 0, 0, fmt.Errorf("malformed interaction key %q: %w", key, err)
	}
	if product, err = strconv.Atoi(string(p)); err != nil {
		return 0, 0, fmt.Errorf("malformed interaction key %q: %w", key, err)
	}
	return user, product, nil
}

// AddInteractions merges records into the stored aggregate: the signal of
// each record is added to the value already stored for its (user, product)
// pair. Records with a zero signal still register the pair.
//
// Every record is validated before anything is written. Each batch commits
// atomically; an error part way through a large import leaves earlier
// batches committed.
func (s *Store) AddInteractions(ctx context.Context, records []recommend.Interaction) error {
	for i, r := range records {
		if r.Signal < 0 || math.IsNaN(r.Signal) || math.IsInf(r.Signal, 0) {
			return fmt.Errorf("%w: record %d (user %d, product %d) has signal %v",
				recommend.ErrInvalidInteraction, i, r.UserID, r.ProductID, r.Signal)
		}
	}

	return s.run(ctx, "add_interactions", func() error {
		for start := 0; start < len(records); start += interactionBatchSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			end := min(start+interactionBatchSize, len(records))
			if err := s.mergeBatch(records[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}

type pair struct{ user, product int }

func (s *Store) mergeBatch(records []recommend.Interaction) error {
	sums := make(map[pair]float64, len(records))
	for _, r := range records {
		sums[pair{r.UserID, r.ProductID}] += r.Signal
	}
	keys := make([]pair, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].user != keys[b].user {
			return keys[a].user < keys[b].user
		}
		return keys[a].product < keys[b].product
	})

	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			key := interactionKey(k.user, k.product)

			var current interactionValue
			item, err := txn.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
			case err != nil:
				return fmt.Errorf("get interaction: %w", err)
			default:
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &current)
				}); err != nil {
					return fmt.Errorf("decode interaction %s: %w", key, err)
				}
			}

			data, err := json.Marshal(interactionValue{Signal: current.Signal + sums[k]})
			if err != nil {
				return fmt.Errorf("marshal interaction: %w", err)
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set interaction: %w", err)
			}
		}
		return nil
	})
}

// Interactions returns one record per stored (user, product) pair carrying
// the aggregated signal. It implements recommend.DataProvider.
func (s *Store) Interactions(ctx context.Context) ([]recommend.Interaction, error) {
	var out []recommend.Interaction
	err := s.run(ctx, "interactions", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = true
			it := txn.NewIterator(opts)
			defer it.Close()

			prefix := []byte(prefixInteraction)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				item := it.Item()
				user, product, err := parseInteractionKey(item.Key())
				if err != nil {
					return err
				}
				var v interactionValue
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &v)
				}); err != nil {
					return fmt.Errorf("decode interaction %s: %w", item.Key(), err)
				}
				out = append(out, recommend.Interaction{UserID: user, ProductID: product, Signal: v.Signal})
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
