// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package cache provides a bounded, TTL-aware LRU cache used to hold
// catalog search responses. Callers inject a cache instance where needed;
// there is no process-global cache.
package cache

import (
	"sync"
	"time"

	"github.com/skillify-dev/skillify/internal/metrics"
)

// entry is a node in the doubly-linked LRU list.
type entry[V any] struct {
	key       string
	value     V
	prev      *entry[V]
	next      *entry[V]
	expiresAt time.Time
}

// LRU implements a thread-safe least-recently-used cache with per-cache TTL.
//
//   - O(1) Get, Add, Remove
//   - O(1) eviction when capacity is reached
//   - lazy expiration on read plus periodic sweeps via CleanupExpired
//
// A doubly-linked list maintains recency order and a map provides lookups.
// head.next is the most recently used entry, tail.prev the least.
type LRU[V any] struct {
	mu sync.RWMutex

	capacity int
	ttl      time.Duration

	items map[string]*entry[V]

	// head and tail are sentinel nodes.
	head *entry[V]
	tail *entry[V]

	hits   int64
	misses int64
}

// NewLRU creates a cache with the given capacity and entry TTL.
// Non-positive arguments fall back to defaults.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = 512
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		head:     &entry[V]{},
		tail:     &entry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get retrieves a value and marks it most recently used.
// Expired entries are removed on access and reported as misses.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	if e, exists := c.items[key]; exists {
		if time.Now().After(e.expiresAt) {
			c.removeEntry(e)
			metrics.CacheEvictionsTotal.WithLabelValues("expired").Inc()
			c.misses++
			metrics.CacheMissesTotal.Inc()
			return zero, false
		}
		c.moveToFront(e)
		c.hits++
		metrics.CacheHitsTotal.Inc()
		return e.value, true
	}

	c.misses++
	metrics.CacheMissesTotal.Inc()
	return zero, false
}

// Add inserts or refreshes a value with a fresh TTL. When at capacity the
// least recently used entry is evicted.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)

	if e, exists := c.items[key]; exists {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes a key. Returns true when the key was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.items[key]; exists {
		c.removeEntry(e)
		return true
	}
	return false
}

// Len returns the current number of entries.
func (c *LRU[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes every entry.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries and returns how many were
// dropped. Called periodically by the janitor service.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0

	// Walk from tail (oldest) to head (newest).
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.removeEntry(e)
			metrics.CacheEvictionsTotal.WithLabelValues("expired").Inc()
			removed++
		}
		e = prev
	}

	return removed
}

// Stats returns hit/miss counters and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods, called with the lock held.

func (c *LRU[V]) addToFront(e *entry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[V]) moveToFront(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *LRU[V]) removeEntry(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

func (c *LRU[V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	metrics.CacheEvictionsTotal.WithLabelValues("capacity").Inc()
}
