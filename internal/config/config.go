// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package config holds application configuration loaded from defaults,
// an optional YAML file, and environment variables (in that precedence).
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Uploads   UploadsConfig   `koanf:"uploads"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig controls the embedded Badger document store.
type DatabaseConfig struct {
	Path string `koanf:"path"`

	// InMemory runs Badger without disk persistence. Used by tests.
	InMemory bool `koanf:"in_memory"`
}

// CatalogConfig controls the external video catalog client.
type CatalogConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// MaxResults caps how many items a single search requests upstream.
	MaxResults int `koanf:"max_results"`

	// RatePerSecond and RateBurst bound the upstream request rate.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`
}

// CacheConfig controls the in-process response cache.
type CacheConfig struct {
	Capacity      int           `koanf:"capacity"`
	SearchTTL     time.Duration `koanf:"search_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// RecommendConfig controls the recommendation aggregator.
type RecommendConfig struct {
	// SearchConcurrency limits concurrent per-skill catalog searches.
	SearchConcurrency int `koanf:"search_concurrency"`

	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig controls authentication and request throttling.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// UploadsConfig controls static upload serving (profile photos).
type UploadsConfig struct {
	Dir string `koanf:"dir"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// minJWTSecretLength is the minimum accepted JWT secret length in bytes.
// HS256 keys shorter than the hash output weaken the MAC.
const minJWTSecretLength = 32

// Validate checks the configuration for values that would make the service
// inoperable or insecure. Called after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Database.Path == "" && !c.Database.InMemory {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}

	if c.Catalog.APIKey == "" {
		return fmt.Errorf("catalog.api_key is required")
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive, got %s", c.Catalog.Timeout)
	}
	if c.Catalog.MaxResults < 1 || c.Catalog.MaxResults > 50 {
		return fmt.Errorf("catalog.max_results must be between 1 and 50, got %d", c.Catalog.MaxResults)
	}

	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity must be positive, got %d", c.Cache.Capacity)
	}
	if c.Cache.SearchTTL <= 0 {
		return fmt.Errorf("cache.search_ttl must be positive, got %s", c.Cache.SearchTTL)
	}

	if c.Recommend.SearchConcurrency < 1 {
		return fmt.Errorf("recommend.search_concurrency must be positive, got %d", c.Recommend.SearchConcurrency)
	}
	if c.Recommend.DefaultPageSize < 1 || c.Recommend.MaxPageSize < c.Recommend.DefaultPageSize {
		return fmt.Errorf("recommend page sizes invalid: default=%d max=%d",
			c.Recommend.DefaultPageSize, c.Recommend.MaxPageSize)
	}

	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("security.jwt_secret must be at least %d characters", minJWTSecretLength)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive, got %s", c.Security.TokenTTL)
	}

	return nil
}
