// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

// Package store persists the two input datasets, purchase interactions and
// the product catalog, in BadgerDB. Derived recommendation state is never
// stored; it is rebuilt from these datasets.
//
// Key layout:
//
//	interaction:<user_id>:<product_id>  aggregated signal (JSON)
//	product:<product_id>                catalog item (JSON)
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/smartcart/internal/logging"
	"github.com/tomtom215/smartcart/internal/metrics"
)

// Errors
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store is closed")

	// ErrInvalidProduct is wrapped by errors for catalog items that cannot
	// be stored.
	ErrInvalidProduct = errors.New("invalid product")
)

// Config configures the store.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory keeps all data in memory; nothing survives Close.
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every commit.
	SyncWrites bool `koanf:"sync_writes"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return errors.New("store path is required unless in_memory is set")
	}
	return nil
}

// Store is a BadgerDB-backed dataset store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	config Config

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store.
func Open(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	path := cfg.Path
	if cfg.InMemory {
		path = ""
	}
	opts := badger.DefaultOptions(path)
	opts.InMemory = cfg.InMemory
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("data store opened")

	return &Store{db: db, config: *cfg}, nil
}

// Close closes the underlying database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}

// Config returns the store configuration.
func (s *Store) Config() Config {
	return s.config
}

// Counts summarizes what the store holds.
type Counts struct {
	Interactions int `json:"interactions"`
	Users        int `json:"users"`
	Products     int `json:"products"`
}

// Counts returns the number of stored interaction pairs, distinct users and
// catalog products.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	err := s.run(ctx, "counts", func() error {
		return s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			it := txn.NewIterator(opts)
			defer it.Close()

			users := make(map[int]struct{})
			prefix := []byte(prefixInteraction)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				user, _, err := parseInteractionKey(it.Item().Key())
				if err != nil {
					return err
				}
				users[user] = struct{}{}
				counts.Interactions++
			}
			counts.Users = len(users)

			prefix = []byte(prefixProduct)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				counts.Products++
			}
			return nil
		})
	})
	return counts, err
}

// run executes op under the read lock, failing with ErrClosed after Close,
// and records the operation's latency and outcome.
func (s *Store) run(ctx context.Context, name string, op func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	start := time.Now()
	err := op()
	metrics.RecordStoreOperation(name, time.Since(start), ignoreNotFound(err))
	return err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
