// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/skillify/config.yaml",
	"/etc/skillify/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config populated with sensible defaults.
// These are applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:     "/data/skillify",
			InMemory: false,
		},
		Catalog: CatalogConfig{
			BaseURL:       "https://www.googleapis.com/youtube/v3",
			APIKey:        "",
			Timeout:       10 * time.Second,
			MaxResults:    12,
			RatePerSecond: 5,
			RateBurst:     10,
		},
		Cache: CacheConfig{
			Capacity:      512,
			SearchTTL:     1 * time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Recommend: RecommendConfig{
			SearchConcurrency: 4,
			DefaultPageSize:   12,
			MaxPageSize:       50,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			TokenTTL:          24 * time.Hour,
			BcryptCost:        12,
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Uploads: UploadsConfig{
			Dir: "/data/uploads",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: override any setting
//
// Precedence is ENV > file > defaults. The merged result is validated
// before being returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// SKILLIFY_CATALOG_API_KEY -> catalog.api_key, JWT_SECRET -> security.jwt_secret
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches the env override then the default paths.
// Returns the first existing file, or empty string.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when supplied via environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env strings to slices for the
// known slice fields. YAML-sourced values are already slices and are skipped.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return empty string and are skipped, which keeps random
// environment variables from polluting the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Database
		"database_path":      "database.path",
		"database_in_memory": "database.in_memory",

		// Catalog
		"catalog_base_url":        "catalog.base_url",
		"catalog_api_key":         "catalog.api_key",
		"youtube_api_key":         "catalog.api_key",
		"catalog_timeout":         "catalog.timeout",
		"catalog_max_results":     "catalog.max_results",
		"catalog_rate_per_second": "catalog.rate_per_second",
		"catalog_rate_burst":      "catalog.rate_burst",

		// Cache
		"cache_capacity":       "cache.capacity",
		"cache_search_ttl":     "cache.search_ttl",
		"cache_sweep_interval": "cache.sweep_interval",

		// Recommend
		"recommend_search_concurrency": "recommend.search_concurrency",
		"recommend_default_page_size":  "recommend.default_page_size",
		"recommend_max_page_size":      "recommend.max_page_size",

		// Security
		"jwt_secret":          "security.jwt_secret",
		"token_ttl":           "security.token_ttl",
		"bcrypt_cost":         "security.bcrypt_cost",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Uploads
		"uploads_dir": "uploads.dir",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
