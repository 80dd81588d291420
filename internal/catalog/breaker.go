// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/metrics"
	"github.com/skillify-dev/skillify/internal/models"
)

// BreakerClient wraps an API with a circuit breaker so that a failing
// catalog does not pile up goroutines waiting on timeouts.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests exercise the wrapped client directly or use a fake API.
type BreakerClient struct {
	inner API
	cb    *gobreaker.CircuitBreaker[interface{}]
}

// NewBreakerClient wraps the inner client with a circuit breaker:
// 3 concurrent probes in half-open, 1 minute measurement window, 2 minute
// open timeout, tripping at a 60% failure rate over at least 10 requests.
// Single-video misses count as successes; they are answers, not failures.
func NewBreakerClient(inner API) *BreakerClient {
	metrics.CircuitBreakerState.Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        "video-catalog",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening catalog circuit")
				return true
			}
			return false
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrVideoNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", stateToString(from)).
				Str("to", stateToString(to)).Msg("Catalog circuit state transition")
			metrics.CircuitBreakerState.Set(stateToFloat(to))
		},
	})

	return &BreakerClient{inner: inner, cb: cb}
}

// Search runs a catalog search with circuit breaker protection.
func (b *BreakerClient) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	return castResult[SearchResult](b.execute(func() (interface{}, error) {
		return b.inner.Search(ctx, opts)
	}))
}

// Video fetches a single video with circuit breaker protection.
func (b *BreakerClient) Video(ctx context.Context, id string) (*models.Resource, error) {
	return castResult[models.Resource](b.execute(func() (interface{}, error) {
		return b.inner.Video(ctx, id)
	}))
}

// execute wraps a call, translating breaker rejections into the catalog's
// unavailability sentinel so callers see one failure mode.
func (b *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CatalogRequestsTotal.WithLabelValues("any", "circuit_open").Inc()
			return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		return nil, err
	}
	return result, nil
}

// castResult type-asserts the breaker's untyped result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
