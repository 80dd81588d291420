// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package catalog

import (
	"context"
	"fmt"

	"github.com/skillify-dev/skillify/internal/cache"
	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/models"
)

// CachedClient caches successful search responses in an injected LRU.
// Single-video lookups are not cached; they are cheap and their counts
// should stay fresh on the detail view.
//
// Concurrent misses for the same key may both hit the upstream; the last
// write wins. Entries are whole values, so this only costs a duplicate
// fetch, never a torn read.
type CachedClient struct {
	inner API
	lru   *cache.LRU[*SearchResult]
}

// NewCachedClient wraps the inner client with the given search cache.
func NewCachedClient(inner API, lru *cache.LRU[*SearchResult]) *CachedClient {
	return &CachedClient{inner: inner, lru: lru}
}

// Search serves from cache when possible. Only successful responses are
// cached, so upstream failures are retried on the next call.
func (c *CachedClient) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	key := searchCacheKey(opts)
	if cached, ok := c.lru.Get(key); ok {
		return cached, nil
	}

	result, err := c.inner.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, result)
	return result, nil
}

// Video passes through to the inner client.
func (c *CachedClient) Video(ctx context.Context, id string) (*models.Resource, error) {
	return c.inner.Video(ctx, id)
}

// searchCacheKey serializes the search parameters into a cache key.
func searchCacheKey(opts SearchOptions) string {
	return fmt.Sprintf("search|%s|%d|%s|%s", opts.Query, opts.MaxResults, opts.Duration, opts.PageToken)
}

// NewStack assembles the production catalog pipeline:
// HTTP client -> circuit breaker -> response cache.
func NewStack(cfg config.CatalogConfig, lru *cache.LRU[*SearchResult]) API {
	return NewCachedClient(NewBreakerClient(NewClient(cfg)), lru)
}
