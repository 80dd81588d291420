// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package store persists the Skillify domain model in an embedded BadgerDB
// keyspace. Each collection lives under its own key prefix and values are
// JSON documents. Secondary index keys support per-owner scans:
//
//	user:<id>                 user document
//	user_name:<lowercased>    uniqueness index -> user ID
//	user_email:<lowercased>   login lookup index -> user ID
//	skill:<id>                skill document
//	skill_user:<uid>:<id>     owner index -> skill ID
//	goal:<id>                 goal document
//	goal_user:<uid>:<id>      owner index -> goal ID
//	post:<id>                 post document (comments/likes/flags embedded)
//	concern:<id>              concern document
//	concern_user:<uid>:<id>   owner index -> concern ID
//
// Multi-document updates (cascading deletes, uniqueness checks) happen
// inside a single Badger transaction.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/metrics"
)

// Sentinel errors returned by store operations.
var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateUser indicates the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already registered")

	// ErrDuplicateFlag indicates the reporter already has a pending flag
	// on the target.
	ErrDuplicateFlag = errors.New("a pending flag from this reporter already exists")

	// ErrDuplicateResourceLink indicates the goal already embeds a resource
	// with the same link.
	ErrDuplicateResourceLink = errors.New("resource link already attached to goal")
)

// Key prefixes for the Badger keyspace.
const (
	userKeyPrefix        = "user:"
	userNameKeyPrefix    = "user_name:"
	userEmailKeyPrefix   = "user_email:"
	skillKeyPrefix       = "skill:"
	skillUserKeyPrefix   = "skill_user:"
	goalKeyPrefix        = "goal:"
	goalUserKeyPrefix    = "goal_user:"
	postKeyPrefix        = "post:"
	concernKeyPrefix     = "concern:"
	concernUserKeyPrefix = "concern_user:"
)

// Store wraps a Badger database with typed collection operations.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the document store at the configured path.
// With InMemory set, nothing touches disk; tests use this mode.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).
		Msg("Document store opened")

	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close document store: %w", err)
	}
	return nil
}

// DB exposes the raw Badger handle for maintenance tasks.
func (s *Store) DB() *badger.DB {
	return s.db
}

// record increments the store operation counter with the op outcome.
func record(collection, op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		if errors.Is(err, ErrNotFound) {
			outcome = "not_found"
		}
	}
	metrics.StoreOperationsTotal.WithLabelValues(collection, op, outcome).Inc()
}

// getDoc reads and unmarshals a JSON document inside a transaction.
func getDoc(txn *badger.Txn, key string, out interface{}) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, out); err != nil {
			return fmt.Errorf("unmarshal %s: %w", key, err)
		}
		return nil
	})
}

// unmarshalDoc decodes a raw document value.
func unmarshalDoc(val []byte, out interface{}) error {
	if err := json.Unmarshal(val, out); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	return nil
}

// setDoc marshals and writes a JSON document inside a transaction.
func setDoc(txn *badger.Txn, key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := txn.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// scanIndex collects the values of every index key under the prefix.
// Index values are the primary IDs of the referenced documents.
func (s *Store) scanIndex(prefix string) ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan index %s: %w", prefix, err)
	}
	return ids, nil
}

// scanIndexTxn is scanIndex inside an existing transaction.
func scanIndexTxn(txn *badger.Txn, prefix string) ([]string, error) {
	var ids []string
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			ids = append(ids, string(val))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// countPrefix counts keys under a prefix without fetching values.
func countPrefixTxn(txn *badger.Txn, prefix string) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		n++
	}
	return n
}

// normalizeKey lowercases and trims an index key component.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// badgerLogger routes Badger's internal logging through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Str("component", "badger").Msgf(format, args...)
}
