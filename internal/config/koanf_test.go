// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("Server.CORSOrigins = %v, want [*]", cfg.Server.CORSOrigins)
	}
	if cfg.Recommend.DefaultTopK != 5 {
		t.Errorf("Recommend.DefaultTopK = %d, want 5", cfg.Recommend.DefaultTopK)
	}
	if cfg.Recommend.RebuildInterval != time.Hour {
		t.Errorf("Recommend.RebuildInterval = %v, want 1h", cfg.Recommend.RebuildInterval)
	}
	if cfg.Shopping.MinBudget != 5 || cfg.Shopping.MaxBudget != 500 {
		t.Errorf("Shopping budget bounds = [%v, %v], want [5, 500]", cfg.Shopping.MinBudget, cfg.Shopping.MaxBudget)
	}
	if cfg.Shopping.MaxRank != 9 {
		t.Errorf("Shopping.MaxRank = %d, want 9", cfg.Shopping.MaxRank)
	}
	if cfg.Shopping.DefaultMode != "single-unit" {
		t.Errorf("Shopping.DefaultMode = %q, want single-unit", cfg.Shopping.DefaultMode)
	}
	if cfg.Store.Path != "/data/smartcart" {
		t.Errorf("Store.Path = %q, want /data/smartcart", cfg.Store.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"CORS_ORIGINS", "server.cors_origins"},
		{"DISABLE_RATE_LIMIT", "server.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"RECOMMEND_CACHE_TTL", "recommend.cache_ttl"},
		{"RECOMMEND_REBUILD_INTERVAL", "recommend.rebuild_interval"},
		{"SHOPPING_MAX_BUDGET", "shopping.max_budget"},
		{"STORE_PATH", "store.path"},
		{"store_in_memory", "store.in_memory"},
		{"CATALOG_FILE", "data.catalog_file"},
		{"PATH", ""},
		{"HOME", ""},
		{"UNKNOWN_SETTING", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() with missing file = %q, want empty", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RECOMMEND_CACHE_TTL", "2m")
	t.Setenv("RECOMMEND_DEFAULT_TOP_K", "3")
	t.Setenv("SHOPPING_MAX_BUDGET", "250.5")
	t.Setenv("STORE_IN_MEMORY", "true")
	t.Setenv("STORE_PATH", "")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("Server.CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("Server.CORSOrigins[%d] = %q, want %q", i, cfg.Server.CORSOrigins[i], want[i])
		}
	}
	if cfg.Recommend.CacheTTL != 2*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 2m", cfg.Recommend.CacheTTL)
	}
	if cfg.Recommend.DefaultTopK != 3 {
		t.Errorf("Recommend.DefaultTopK = %d, want 3", cfg.Recommend.DefaultTopK)
	}
	if cfg.Shopping.MaxBudget != 250.5 {
		t.Errorf("Shopping.MaxBudget = %v, want 250.5", cfg.Shopping.MaxBudget)
	}
	if !cfg.Store.InMemory {
		t.Error("Store.InMemory should be true")
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
  cors_origins:
    - https://shop.example.com
recommend:
  default_top_k: 8
  rebuild_interval: 15m
shopping:
  min_budget: 10
  max_budget: 100
  default_mode: quantity
store:
  path: /var/lib/smartcart
data:
  interactions_file: /seed/interactions.csv
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://shop.example.com" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Recommend.DefaultTopK != 8 {
		t.Errorf("Recommend.DefaultTopK = %d, want 8", cfg.Recommend.DefaultTopK)
	}
	if cfg.Recommend.RebuildInterval != 15*time.Minute {
		t.Errorf("Recommend.RebuildInterval = %v, want 15m", cfg.Recommend.RebuildInterval)
	}
	if cfg.Shopping.MinBudget != 10 || cfg.Shopping.MaxBudget != 100 {
		t.Errorf("Shopping bounds = [%v, %v], want [10, 100]", cfg.Shopping.MinBudget, cfg.Shopping.MaxBudget)
	}
	if cfg.Shopping.DefaultMode != "quantity" {
		t.Errorf("Shopping.DefaultMode = %q, want quantity", cfg.Shopping.DefaultMode)
	}
	if cfg.Store.Path != "/var/lib/smartcart" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Data.InteractionsFile != "/seed/interactions.csv" {
		t.Errorf("Data.InteractionsFile = %q", cfg.Data.InteractionsFile)
	}
	// Untouched values keep their defaults.
	if cfg.Recommend.MaxTopK != 100 {
		t.Errorf("Recommend.MaxTopK = %d, want default 100", cfg.Recommend.MaxTopK)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want 7100 (env should override file)", cfg.Server.Port)
	}
}

func TestLoadWithKoanfInvalid(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("SHOPPING_DEFAULT_MODE", "cheapest")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an unknown default mode")
	}
}
