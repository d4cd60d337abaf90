// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartcart/internal/config"
	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/supervisor/services"
)

// ModelComponents holds the recommendation engine and the service that
// keeps its model current.
type ModelComponents struct {
	Engine  *recommend.Engine
	Service *services.RebuildService
}

// initModel creates the engine over the given interaction source and the
// rebuild service that builds its first model on startup.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initModel(cfg *config.Config, source recommend.DataProvider, logger zerolog.Logger) (*ModelComponents, error) {
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.SetDataProvider(source)

	service := services.NewRebuildService(engine, services.RebuildServiceConfig{
		RebuildOnStartup: true,
		Interval:         cfg.Recommend.RebuildInterval,
		MinGap:           cfg.Recommend.RebuildMinGap,
	}, logger)

	logger.Info().
		Int("default_top_k", cfg.Recommend.DefaultTopK).
		Bool("cache_enabled", cfg.Recommend.CacheEnabled).
		Dur("rebuild_interval", cfg.Recommend.RebuildInterval).
		Dur("rebuild_min_gap", cfg.Recommend.RebuildMinGap).
		Msg("recommendation engine initialized")

	return &ModelComponents{Engine: engine, Service: service}, nil
}
