// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/skillify-dev/skillify/internal/models"
)

// CreateConcern persists a new support concern with its owner index.
func (s *Store) CreateConcern(ctx context.Context, concern *models.Concern) (err error) {
	defer func() { record("concerns", "create", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := setDoc(txn, concernKeyPrefix+concern.ID, concern); err != nil {
			return err
		}
		indexKey := concernUserKeyPrefix + concern.UserID + ":" + concern.ID
		if err := txn.Set([]byte(indexKey), []byte(concern.ID)); err != nil {
			return fmt.Errorf("set concern index: %w", err)
		}
		return nil
	})
	return err
}

// GetConcern retrieves a concern by ID. Ownership checks belong to the
// caller; admins may read any concern.
func (s *Store) GetConcern(ctx context.Context, id string) (concern *models.Concern, err error) {
	defer func() { record("concerns", "get", err) }()

	concern = &models.Concern{}
	err = s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, concernKeyPrefix+id, concern)
	})
	if err != nil {
		return nil, err
	}
	return concern, nil
}

// UpdateConcern applies a mutation to the concern document in one
// transaction.
func (s *Store) UpdateConcern(ctx context.Context, id string, mutate func(*models.Concern) error) (concern *models.Concern, err error) {
	defer func() { record("concerns", "update", err) }()

	concern = &models.Concern{}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := getDoc(txn, concernKeyPrefix+id, concern); err != nil {
			return err
		}
		if err := mutate(concern); err != nil {
			return err
		}
		concern.UpdatedAt = time.Now().UTC()
		return setDoc(txn, concernKeyPrefix+id, concern)
	})
	if err != nil {
		return nil, err
	}
	return concern, nil
}

// ListConcernsByUser returns the user's concerns, newest first.
func (s *Store) ListConcernsByUser(ctx context.Context, userID string) (concerns []*models.Concern, err error) {
	defer func() { record("concerns", "list", err) }()

	ids, err := s.scanIndex(concernUserKeyPrefix + userID + ":")
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			concern := &models.Concern{}
			if err := getDoc(txn, concernKeyPrefix+id, concern); err != nil {
				return err
			}
			concerns = append(concerns, concern)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortConcerns(concerns)
	return concerns, nil
}

// ListConcerns returns every concern, newest first. Admin surface only.
func (s *Store) ListConcerns(ctx context.Context) (concerns []*models.Concern, err error) {
	defer func() { record("concerns", "list_all", err) }()

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(concernKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			concern := &models.Concern{}
			valErr := it.Item().Value(func(val []byte) error {
				return unmarshalDoc(val, concern)
			})
			if valErr != nil {
				return valErr
			}
			concerns = append(concerns, concern)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortConcerns(concerns)
	return concerns, nil
}

// AddConcernReply appends an admin reply and moves a pending concern into
// review. Returns the updated concern.
func (s *Store) AddConcernReply(ctx context.Context, concernID string, reply models.ConcernReply) (*models.Concern, error) {
	reply.ID = uuid.New().String()
	reply.CreatedAt = time.Now().UTC()

	return s.UpdateConcern(ctx, concernID, func(c *models.Concern) error {
		c.Replies = append(c.Replies, reply)
		if c.Status == models.ConcernPending {
			c.Status = models.ConcernInReview
		}
		return nil
	})
}

// SetConcernStatus transitions the concern status. Resolving stamps
// ResolvedAt; leaving Resolved clears it.
func (s *Store) SetConcernStatus(ctx context.Context, concernID string, status models.ConcernStatus) (*models.Concern, error) {
	return s.UpdateConcern(ctx, concernID, func(c *models.Concern) error {
		c.Status = status
		if status == models.ConcernResolved {
			now := time.Now().UTC()
			c.ResolvedAt = &now
		} else {
			c.ResolvedAt = nil
		}
		return nil
	})
}

func sortConcerns(concerns []*models.Concern) {
	sort.Slice(concerns, func(i, j int) bool {
		return concerns[i].CreatedAt.After(concerns[j].CreatedAt)
	})
}
