// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/smartcart/internal/recommend"
)

// ModelRebuilder rebuilds the recommendation model from stored data.
// Satisfied by *recommend.Engine.
type ModelRebuilder interface {
	Rebuild(ctx context.Context) error
}

// RebuildServiceConfig holds configuration for the rebuild service.
type RebuildServiceConfig struct {
	// RebuildOnStartup builds the first model as soon as the service starts.
	RebuildOnStartup bool

	// Interval is the period of scheduled rebuilds. Zero disables them.
	Interval time.Duration

	// MinGap is the minimum time between two requested rebuilds. Requests
	// arriving sooner are rejected. Zero accepts every request.
	MinGap time.Duration
}

// RebuildStats counts rebuild attempts by outcome.
type RebuildStats struct {
	Completed int64
	Failed    int64
	Skipped   int64
}

// RebuildService runs model rebuilds on startup, on a schedule and on
// request. Rebuilds run one at a time on the service goroutine; requests
// made while one is running coalesce into a single follow-up rebuild.
//
// A failed rebuild is logged and the previous model keeps serving, so the
// service itself only stops when its context ends.
type RebuildService struct {
	engine  ModelRebuilder
	config  RebuildServiceConfig
	limiter *rate.Limiter
	trigger chan string
	logger  zerolog.Logger
	name    string

	completed atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
}

// NewRebuildService creates a new rebuild service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRebuildService(engine ModelRebuilder, cfg RebuildServiceConfig, logger zerolog.Logger) *RebuildService {
	limit := rate.Inf
	if cfg.MinGap > 0 {
		limit = rate.Every(cfg.MinGap)
	}
	return &RebuildService{
		engine:  engine,
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
		trigger: make(chan string, 1),
		logger:  logger.With().Str("service", "rebuild").Logger(),
		name:    "rebuild-service",
	}
}

// RequestRebuild schedules a rebuild and returns immediately. It returns
// false when the request is rejected because the previous accepted request
// was less than MinGap ago. A request made while another is still pending
// is accepted and merged with it.
func (s *RebuildService) RequestRebuild(reason string) bool {
	if !s.limiter.Allow() {
		s.logger.Debug().Str("reason", reason).Msg("rebuild request throttled")
		return false
	}
	select {
	case s.trigger <- reason:
	default:
		s.logger.Debug().Str("reason", reason).Msg("rebuild already pending")
	}
	return true
}

// Stats returns rebuild counts since the service was created.
func (s *RebuildService) Stats() RebuildStats {
	return RebuildStats{
		Completed: s.completed.Load(),
		Failed:    s.failed.Load(),
		Skipped:   s.skipped.Load(),
	}
}

// Serve implements suture.Service.
func (s *RebuildService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("rebuild_on_startup", s.config.RebuildOnStartup).
		Dur("interval", s.config.Interval).
		Dur("min_gap", s.config.MinGap).
		Msg("rebuild service starting")

	if s.config.RebuildOnStartup {
		s.rebuild(ctx, "startup")
	}

	// A nil channel never fires, which disables scheduled rebuilds.
	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rebuild service shutting down")
			return ctx.Err()

		case <-tick:
			s.rebuild(ctx, "schedule")

		case reason := <-s.trigger:
			s.rebuild(ctx, reason)
		}
	}
}

func (s *RebuildService) rebuild(ctx context.Context, reason string) {
	start := time.Now()
	err := s.engine.Rebuild(ctx)

	switch {
	case err == nil:
		s.completed.Add(1)
		s.logger.Info().Str("reason", reason).Dur("duration", time.Since(start)).Msg("model rebuilt")

	case errors.Is(err, recommend.ErrBuildInProgress):
		s.skipped.Add(1)
		s.logger.Debug().Str("reason", reason).Msg("rebuild skipped, another is running")

	case ctx.Err() != nil:
		// Shutting down; the loop returns on its next iteration.
		s.skipped.Add(1)

	default:
		s.failed.Add(1)
		s.logger.Warn().Err(err).Str("reason", reason).Msg("model rebuild failed, previous model still serving")
	}
}

// String returns the service name for logging.
func (s *RebuildService) String() string {
	return s.name
}
