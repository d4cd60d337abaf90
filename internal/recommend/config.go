// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`

	// Build contains model build parameters.
	Build BuildConfig `json:"build"`
}

// LimitsConfig bounds the size of a recommendation request.
type LimitsConfig struct {
	// DefaultTopK is used when a request leaves TopK at zero.
	DefaultTopK int `json:"default_top_k"`

	// MaxTopK clamps larger requests.
	MaxTopK int `json:"max_top_k"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// BuildConfig controls model builds.
type BuildConfig struct {
	// Workers bounds the goroutines used for the similarity matrix.
	// Zero means GOMAXPROCS.
	Workers int `json:"workers"`

	// Timeout bounds a single rebuild.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the default engine configuration. DefaultTopK of 5
// matches the number of recommendations the shopper UI shows.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopK: 5,
			MaxTopK:     100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 10000,
		},
		Build: BuildConfig{
			Workers: 0,
			Timeout: 10 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultTopK < 1 {
		return fmt.Errorf("limits.default_top_k must be at least 1, got %d", c.Limits.DefaultTopK)
	}
	if c.Limits.MaxTopK < c.Limits.DefaultTopK {
		return fmt.Errorf("limits.max_top_k (%d) must be >= limits.default_top_k (%d)",
			c.Limits.MaxTopK, c.Limits.DefaultTopK)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be at least 1, got %d", c.Cache.MaxEntries)
		}
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must be >= 0, got %d", c.Build.Workers)
	}
	if c.Build.Timeout <= 0 {
		return fmt.Errorf("build.timeout must be positive, got %s", c.Build.Timeout)
	}
	return nil
}
