// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package cache

import (
	"context"
	"time"

	"github.com/skillify-dev/skillify/internal/logging"
)

// Sweeper is the subset of the cache the janitor needs.
type Sweeper interface {
	CleanupExpired() int
}

// Janitor periodically sweeps expired entries from one or more caches.
// It implements suture.Service and runs under the application supervisor.
type Janitor struct {
	interval time.Duration
	caches   []Sweeper
}

// NewJanitor creates a janitor sweeping the given caches at the interval.
func NewJanitor(interval time.Duration, caches ...Sweeper) *Janitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{interval: interval, caches: caches}
}

// Serve runs the sweep loop until the context is canceled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", j.interval).Msg("Cache janitor started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Cache janitor stopped")
			return ctx.Err()
		case <-ticker.C:
			removed := 0
			for _, c := range j.caches {
				removed += c.CleanupExpired()
			}
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Swept expired cache entries")
			}
		}
	}
}

// String names the service in supervisor logs.
func (j *Janitor) String() string {
	return "cache-janitor"
}
