// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package main is the entry point for the Skillify server.
//
// Skillify is a self-hosted skill tracking platform with goal management,
// learning resource recommendations sourced from an external video catalog,
// a community forum with moderation, and a support workflow.
//
// The server initializes components in this order:
//
//  1. Configuration: layered load from defaults, config.yaml and environment
//     variables (Koanf v2)
//  2. Document store: embedded BadgerDB
//  3. Catalog client: rate-limited HTTP client wrapped by a circuit breaker
//     and an LRU search cache
//  4. Authentication: JWT manager and bcrypt password hasher
//  5. HTTP server: chi router under Suture supervision
//
// Graceful shutdown runs on SIGINT and SIGTERM: the listener stops
// accepting connections, in-flight requests get the shutdown timeout to
// finish, then the store is closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillify-dev/skillify/internal/api"
	"github.com/skillify-dev/skillify/internal/auth"
	"github.com/skillify-dev/skillify/internal/cache"
	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/recommend"
	"github.com/skillify-dev/skillify/internal/store"
	"github.com/skillify-dev/skillify/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("catalog_url", cfg.Catalog.BaseURL).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	st, err := store.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close document store")
		}
	}()

	searchCache := cache.NewLRU[*catalog.SearchResult](cfg.Cache.Capacity, cfg.Cache.SearchTTL)
	catalogClient := catalog.NewStack(cfg.Catalog, searchCache)
	recommender := recommend.NewAggregator(st, catalogClient, cfg.Recommend)

	jwtManager := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)

	handlers := api.NewHandlers(st, catalogClient, recommender, jwtManager, hasher, cfg)
	router := api.SetupRouter(handlers, jwtManager, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	tree.AddBackgroundService(cache.NewJanitor(cfg.Cache.SweepInterval, searchCache))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}
