// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/smartcart/internal/logging"
	"github.com/tomtom215/smartcart/internal/shopping"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateShopping(); err != nil {
		return err
	}
	return c.validateStore()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting bounds unless rate limiting is disabled.
func (c *Config) validateRateLimits() error {
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitRequests < minRateLimitRequests || c.Server.RateLimitRequests > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Server.RateLimitWindow < minRateLimitWindow || c.Server.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogFormats defines the allowed log output formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateRecommend validates the engine settings and rebuild schedule.
func (c *Config) validateRecommend() error {
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if c.Recommend.RebuildInterval < 0 {
		return fmt.Errorf("RECOMMEND_REBUILD_INTERVAL must not be negative")
	}
	if c.Recommend.RebuildMinGap < 0 {
		return fmt.Errorf("RECOMMEND_REBUILD_MIN_GAP must not be negative")
	}
	return nil
}

// validateShopping validates shopping list bounds.
func (c *Config) validateShopping() error {
	s := c.Shopping
	if s.MaxRank < 1 {
		return fmt.Errorf("SHOPPING_MAX_RANK must be at least 1")
	}
	if s.MinBudget < 0 {
		return fmt.Errorf("SHOPPING_MIN_BUDGET must not be negative")
	}
	if s.MaxBudget < s.MinBudget {
		return fmt.Errorf("SHOPPING_MAX_BUDGET (%v) must be >= SHOPPING_MIN_BUDGET (%v)", s.MaxBudget, s.MinBudget)
	}
	if _, err := shopping.ParseMode(s.DefaultMode); err != nil {
		return fmt.Errorf("SHOPPING_DEFAULT_MODE must be one of: single-unit, quantity, budget-only")
	}
	return nil
}

// validateStore validates data store configuration
func (c *Config) validateStore() error {
	if err := c.Store.StoreConfig().Validate(); err != nil {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	return nil
}
