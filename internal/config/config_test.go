// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package config

import (
	"strings"
	"testing"
)

// validConfig returns defaults with the required secrets filled in.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Catalog.APIKey = "test-api-key"
	cfg.Security.JWTSecret = strings.Repeat("s", minJWTSecretLength)
	return cfg
}

func TestValidate_DefaultsWithSecrets(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"server timeout zero", func(c *Config) { c.Server.Timeout = 0 }},
		{"no database path", func(c *Config) { c.Database.Path = "" }},
		{"missing api key", func(c *Config) { c.Catalog.APIKey = "" }},
		{"missing base url", func(c *Config) { c.Catalog.BaseURL = "" }},
		{"catalog timeout zero", func(c *Config) { c.Catalog.Timeout = 0 }},
		{"max results too large", func(c *Config) { c.Catalog.MaxResults = 100 }},
		{"cache capacity zero", func(c *Config) { c.Cache.Capacity = 0 }},
		{"search ttl zero", func(c *Config) { c.Cache.SearchTTL = 0 }},
		{"search concurrency zero", func(c *Config) { c.Recommend.SearchConcurrency = 0 }},
		{"default page size above max", func(c *Config) {
			c.Recommend.DefaultPageSize = 100
			c.Recommend.MaxPageSize = 50
		}},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "too-short" }},
		{"token ttl zero", func(c *Config) { c.Security.TokenTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestValidate_InMemoryNeedsNoPath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""
	cfg.Database.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected in-memory config to validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DATABASE_PATH", "database.path"},
		{"YOUTUBE_API_KEY", "catalog.api_key"},
		{"CATALOG_API_KEY", "catalog.api_key"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("YOUTUBE_API_KEY", "env-api-key")
	t.Setenv("JWT_SECRET", strings.Repeat("s", minJWTSecretLength))
	t.Setenv("DATABASE_IN_MEMORY", "true")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.APIKey != "env-api-key" {
		t.Errorf("Expected env api key, got %q", cfg.Catalog.APIKey)
	}
	if !cfg.Database.InMemory {
		t.Error("Expected in-memory database")
	}

	want := []string{"https://app.example.com", "https://admin.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("Expected %d CORS origins, got %v", len(want), cfg.Security.CORSOrigins)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("Origin %d: expected %q, got %q", i, want[i], cfg.Security.CORSOrigins[i])
		}
	}
}

func TestLoadWithKoanf_ValidationFailure(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "env-api-key")
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("DATABASE_IN_MEMORY", "true")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("Expected validation failure for short JWT secret")
	}
}
