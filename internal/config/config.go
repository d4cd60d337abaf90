// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

// Package config loads SmartCart configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (CONFIG_PATH, or config.yaml in the
//     working directory, or /etc/smartcart/config.yaml)
//  3. Environment Variables: Override any setting
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	  cors_origins: ["https://shop.example.com"]
//	recommend:
//	  default_top_k: 5
//	  rebuild_interval: 1h
//	shopping:
//	  min_budget: 5
//	  max_budget: 500
//	store:
//	  path: /data/smartcart
//	data:
//	  interactions_file: /data/seed/interactions.csv
//	  catalog_file: /data/seed/catalog.csv
package config

import (
	"time"

	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/store"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Shopping  ShoppingConfig  `koanf:"shopping"`
	Store     StoreConfig     `koanf:"store"`
	Data      DataConfig      `koanf:"data"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine and rebuild settings.
type RecommendConfig struct {
	DefaultTopK int `koanf:"default_top_k"`
	MaxTopK     int `koanf:"max_top_k"`

	// Workers bounds similarity goroutines; 0 means GOMAXPROCS.
	Workers      int           `koanf:"workers"`
	BuildTimeout time.Duration `koanf:"build_timeout"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`

	// RebuildInterval is how often the model is rebuilt from the store.
	// Zero disables periodic rebuilds; requested rebuilds still run.
	RebuildInterval time.Duration `koanf:"rebuild_interval"`

	// RebuildMinGap is the minimum time between two requested rebuilds.
	RebuildMinGap time.Duration `koanf:"rebuild_min_gap"`
}

// EngineConfig converts the settings into a recommend.Config.
func (c *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultTopK: c.DefaultTopK,
			MaxTopK:     c.MaxTopK,
		},
		Cache: recommend.CacheConfig{
			Enabled:    c.CacheEnabled,
			TTL:        c.CacheTTL,
			MaxEntries: c.CacheMaxEntries,
		},
		Build: recommend.BuildConfig{
			Workers: c.Workers,
			Timeout: c.BuildTimeout,
		},
	}
}

// ShoppingConfig holds shopping list settings.
type ShoppingConfig struct {
	// MaxRank is the number of category ranks a shopper can assign.
	MaxRank int `koanf:"max_rank"`

	// MinBudget and MaxBudget bound the budget accepted by the API and CLI.
	MinBudget float64 `koanf:"min_budget"`
	MaxBudget float64 `koanf:"max_budget"`

	// DefaultMode is used when a request names no mode.
	DefaultMode string `koanf:"default_mode"`
}

// StoreConfig holds data store settings.
type StoreConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// StoreConfig converts the settings into a store.Config.
func (c *StoreConfig) StoreConfig() *store.Config {
	return &store.Config{
		Path:       c.Path,
		InMemory:   c.InMemory,
		SyncWrites: c.SyncWrites,
	}
}

// DataConfig names the CSV files used to seed an empty store.
type DataConfig struct {
	InteractionsFile string `koanf:"interactions_file"`
	CatalogFile      string `koanf:"catalog_file"`
}

// Load reads configuration from defaults, the optional config file and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
