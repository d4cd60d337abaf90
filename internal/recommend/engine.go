// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartcart/internal/cache"
	"github.com/tomtom215/smartcart/internal/metrics"
)

// Engine serves recommendations from the most recently built Model.
// It is safe for concurrent use; readers never block on a rebuild.
type Engine struct {
	config *Config
	logger zerolog.Logger

	model   atomic.Pointer[Model]
	version atomic.Int64

	// buildMu serializes rebuilds; statusMu guards the fields below it.
	buildMu   sync.Mutex
	statusMu  sync.RWMutex
	building  bool
	lastError string

	cache *cache.LRU[cacheKey, []Recommendation]

	dataProvider DataProvider
}

type cacheKey struct {
	version int64
	userID  int
	topK    int
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[cacheKey, []Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// SetDataProvider sets the source Rebuild reads interactions from.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// Rebuild loads every interaction from the data provider, builds a new
// Model and swaps it in. On failure the previous model keeps serving.
func (e *Engine) Rebuild(ctx context.Context) error {
	if e.dataProvider == nil {
		return ErrNoDataProvider
	}
	if !e.buildMu.TryLock() {
		return ErrBuildInProgress
	}
	defer e.buildMu.Unlock()

	e.setBuilding(true)
	defer e.setBuilding(false)

	ctx, cancel := context.WithTimeout(ctx, e.config.Build.Timeout)
	defer cancel()

	start := time.Now()
	e.logger.Info().Msg("starting model rebuild")

	interactions, err := e.dataProvider.Interactions(ctx)
	if err != nil {
		err = fmt.Errorf("load interactions: %w", err)
		e.recordBuildFailure(start, err)
		return err
	}

	model, err := NewModel(ctx, interactions, e.config.Build.Workers)
	if err != nil {
		e.recordBuildFailure(start, err)
		return err
	}

	e.Swap(model)

	e.logger.Info().
		Int64("version", model.Version).
		Int("interactions", len(interactions)).
		Int("users", model.Matrix.NumUsers()).
		Int("products", model.Matrix.NumProducts()).
		Int("nonzero", model.Matrix.NumNonZero()).
		Dur("duration", model.BuildDuration).
		Msg("model rebuild complete")

	return nil
}

// Swap installs a prebuilt model, assigning it the next version and
// dropping cached results. The model must not be shared with another Engine.
func (e *Engine) Swap(model *Model) {
	model.Version = e.version.Add(1)
	e.model.Store(model)

	if e.cache != nil {
		e.cache.Clear()
	}

	e.statusMu.Lock()
	e.lastError = ""
	e.statusMu.Unlock()

	metrics.RecordModelRebuild(model.BuildDuration, model.Matrix.NumUsers(),
		model.Matrix.NumProducts(), model.Matrix.NumNonZero(), model.Version, nil)
}

func (e *Engine) recordBuildFailure(start time.Time, err error) {
	e.statusMu.Lock()
	e.lastError = err.Error()
	e.statusMu.Unlock()

	metrics.RecordModelRebuild(time.Since(start), 0, 0, 0, 0, err)

	if errors.Is(err, ErrEmptyInput) {
		e.logger.Warn().Msg("model rebuild skipped: no interactions stored")
		return
	}
	e.logger.Error().Err(err).Msg("model rebuild failed")
}

func (e *Engine) setBuilding(b bool) {
	e.statusMu.Lock()
	e.building = b
	e.statusMu.Unlock()
}

// Model returns the model currently serving, or nil before the first build.
func (e *Engine) Model() *Model {
	return e.model.Load()
}

// Ready reports whether a model has been built.
func (e *Engine) Ready() bool {
	return e.model.Load() != nil
}

// Recommend serves a recommendation request from the current model.
//
// An unknown user is not an error: the response has no items and
// UnknownUser set.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := e.model.Load()
	if model == nil {
		return nil, ErrNotReady
	}

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Int("user_id", req.UserID).
		Int("top_k", req.TopK).
		Int64("model_version", model.Version).
		Logger()

	resp := &Response{
		UserID:       req.UserID,
		ModelVersion: model.Version,
	}

	key := cacheKey{version: model.Version, userID: req.UserID, topK: req.TopK}
	if e.cache != nil {
		if items, ok := e.cache.Get(key); ok {
			resp.Items = append([]Recommendation(nil), items...)
			resp.Cached = true
			metrics.RecordRecommendation(metrics.OutcomeCached, time.Since(start))
			logger.Debug().Msg("cache hit")
			return resp, nil
		}
	}

	if !model.Similarity.HasUser(req.UserID) {
		resp.Items = []Recommendation{}
		resp.UnknownUser = true
		metrics.RecordRecommendation(metrics.OutcomeUnknown, time.Since(start))
		logger.Debug().Msg("unknown user, no personalization possible")
		return resp, nil
	}

	resp.Items = model.Recommend(req.UserID, req.TopK)
	if e.cache != nil {
		e.cache.Add(key, append([]Recommendation(nil), resp.Items...))
	}

	outcome := metrics.OutcomeOK
	if len(resp.Items) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(outcome, time.Since(start))

	logger.Debug().
		Int("returned", len(resp.Items)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return resp, nil
}

func (e *Engine) prepareRequest(req Request) Request {
	if req.TopK <= 0 {
		req.TopK = e.config.Limits.DefaultTopK
	}
	if req.TopK > e.config.Limits.MaxTopK {
		req.TopK = e.config.Limits.MaxTopK
	}
	return req
}

// Status reports the model currently serving and the state of rebuilds.
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	st := Status{
		Building:  e.building,
		LastError: e.lastError,
	}
	e.statusMu.RUnlock()

	if model := e.model.Load(); model != nil {
		st.Ready = true
		st.ModelVersion = model.Version
		st.Users = model.Matrix.NumUsers()
		st.Products = model.Matrix.NumProducts()
		st.NonZero = model.Matrix.NumNonZero()
		st.BuiltAt = model.BuiltAt
		st.BuildDurationMS = model.BuildDuration.Milliseconds()
	}
	if e.cache != nil {
		st.CacheHits, st.CacheMisses, st.CacheEntries = e.cache.Stats()
	}
	return st
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}
