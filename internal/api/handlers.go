// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/shopping"
	"github.com/tomtom215/smartcart/internal/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// Recommender serves recommendations from the current model.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Status() recommend.Status
	Ready() bool
}

// DataStore holds interactions and the product catalog.
type DataStore interface {
	AddInteractions(ctx context.Context, records []recommend.Interaction) error
	PutProducts(ctx context.Context, items []shopping.Item) error
	Products(ctx context.Context) ([]shopping.Item, error)
	LookupProducts(ctx context.Context, ids []int) (map[int]shopping.Item, error)
	Counts(ctx context.Context) (store.Counts, error)
}

// RebuildRequester schedules an asynchronous model rebuild. It returns
// false when the request was throttled.
type RebuildRequester interface {
	RequestRebuild(reason string) bool
}

// HandlerConfig holds request limits enforced at the HTTP boundary.
type HandlerConfig struct {
	MinBudget      float64
	MaxBudget      float64
	DefaultMode    shopping.Mode
	RequestTimeout time.Duration
}

// DefaultHandlerConfig returns the default request limits.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		MinBudget:      5,
		MaxBudget:      500,
		DefaultMode:    shopping.ModeSingleUnit,
		RequestTimeout: 10 * time.Second,
	}
}

// Handler implements the HTTP endpoints.
type Handler struct {
	engine   Recommender
	store    DataStore
	planner  *shopping.Planner
	rebuilds RebuildRequester
	config   HandlerConfig
}

// NewHandler creates a Handler. rebuilds may be nil, in which case the
// rebuild endpoint reports 503 and ingestion does not schedule rebuilds.
func NewHandler(engine Recommender, ds DataStore, planner *shopping.Planner, rebuilds RebuildRequester, cfg HandlerConfig) *Handler {
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = shopping.ModeSingleUnit
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultHandlerConfig().RequestTimeout
	}
	return &Handler{
		engine:   engine,
		store:    ds,
		planner:  planner,
		rebuilds: rebuilds,
		config:   cfg,
	}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.config.RequestTimeout)
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes a single JSON value from the request body, rejecting
// unknown fields and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: unexpected data after the first value")
	}
	return nil
}
