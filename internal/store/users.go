// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/skillify-dev/skillify/internal/models"
)

// CreateUser persists a new user. Username and email uniqueness is enforced
// inside the creation transaction via index keys.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (err error) {
	defer func() { record("users", "create", err) }()

	nameKey := userNameKeyPrefix + normalizeKey(user.Name)
	emailKey := userEmailKeyPrefix + normalizeKey(user.Email)

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{nameKey, emailKey} {
			_, getErr := txn.Get([]byte(key))
			if getErr == nil {
				return ErrDuplicateUser
			}
			if !errors.Is(getErr, badger.ErrKeyNotFound) {
				return fmt.Errorf("check uniqueness %s: %w", key, getErr)
			}
		}

		if err := setDoc(txn, userKeyPrefix+user.ID, user); err != nil {
			return err
		}
		if err := txn.Set([]byte(nameKey), []byte(user.ID)); err != nil {
			return fmt.Errorf("set name index: %w", err)
		}
		if err := txn.Set([]byte(emailKey), []byte(user.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		return nil
	})
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (user *models.User, err error) {
	defer func() { record("users", "get", err) }()

	user = &models.User{}
	err = s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, userKeyPrefix+id, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail resolves the email index and loads the user document.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user *models.User, err error) {
	defer func() { record("users", "get_by_email", err) }()

	user = &models.User{}
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(userEmailKeyPrefix + normalizeKey(email)))
		if errors.Is(getErr, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if getErr != nil {
			return fmt.Errorf("get email index: %w", getErr)
		}

		var id string
		if valErr := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); valErr != nil {
			return valErr
		}
		return getDoc(txn, userKeyPrefix+id, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a mutation to the user document inside one transaction.
// The mutate callback may return an error to abort the update. Name and
// email changes re-point the uniqueness indexes.
func (s *Store) UpdateUser(ctx context.Context, id string, mutate func(*models.User) error) (user *models.User, err error) {
	defer func() { record("users", "update", err) }()

	user = &models.User{}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := getDoc(txn, userKeyPrefix+id, user); err != nil {
			return err
		}
		oldName := normalizeKey(user.Name)
		oldEmail := normalizeKey(user.Email)

		if err := mutate(user); err != nil {
			return err
		}

		newName := normalizeKey(user.Name)
		newEmail := normalizeKey(user.Email)
		if newName != oldName {
			if err := reindex(txn, userNameKeyPrefix, oldName, newName, id); err != nil {
				return err
			}
		}
		if newEmail != oldEmail {
			if err := reindex(txn, userEmailKeyPrefix, oldEmail, newEmail, id); err != nil {
				return err
			}
		}

		return setDoc(txn, userKeyPrefix+id, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// reindex moves a uniqueness index entry, rejecting taken targets.
func reindex(txn *badger.Txn, prefix, oldVal, newVal, id string) error {
	_, getErr := txn.Get([]byte(prefix + newVal))
	if getErr == nil {
		return ErrDuplicateUser
	}
	if !errors.Is(getErr, badger.ErrKeyNotFound) {
		return fmt.Errorf("check index %s: %w", prefix+newVal, getErr)
	}
	if err := txn.Delete([]byte(prefix + oldVal)); err != nil {
		return fmt.Errorf("delete index %s: %w", prefix+oldVal, err)
	}
	if err := txn.Set([]byte(prefix+newVal), []byte(id)); err != nil {
		return fmt.Errorf("set index %s: %w", prefix+newVal, err)
	}
	return nil
}

// DeleteUser removes the user and everything they own: skills, goals,
// concerns, and the uniqueness indexes, all in a single transaction.
// Forum posts survive for thread continuity.
func (s *Store) DeleteUser(ctx context.Context, id string) (err error) {
	defer func() { record("users", "delete", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		user := &models.User{}
		if err := getDoc(txn, userKeyPrefix+id, user); err != nil {
			return err
		}

		skillIDs, err := scanIndexTxn(txn, skillUserKeyPrefix+id+":")
		if err != nil {
			return fmt.Errorf("scan user skills: %w", err)
		}
		for _, sid := range skillIDs {
			if err := txn.Delete([]byte(skillKeyPrefix + sid)); err != nil {
				return fmt.Errorf("delete skill %s: %w", sid, err)
			}
			if err := txn.Delete([]byte(skillUserKeyPrefix + id + ":" + sid)); err != nil {
				return fmt.Errorf("delete skill index %s: %w", sid, err)
			}
		}

		goalIDs, err := scanIndexTxn(txn, goalUserKeyPrefix+id+":")
		if err != nil {
			return fmt.Errorf("scan user goals: %w", err)
		}
		for _, gid := range goalIDs {
			if err := txn.Delete([]byte(goalKeyPrefix + gid)); err != nil {
				return fmt.Errorf("delete goal %s: %w", gid, err)
			}
			if err := txn.Delete([]byte(goalUserKeyPrefix + id + ":" + gid)); err != nil {
				return fmt.Errorf("delete goal index %s: %w", gid, err)
			}
		}

		concernIDs, err := scanIndexTxn(txn, concernUserKeyPrefix+id+":")
		if err != nil {
			return fmt.Errorf("scan user concerns: %w", err)
		}
		for _, cid := range concernIDs {
			if err := txn.Delete([]byte(concernKeyPrefix + cid)); err != nil {
				return fmt.Errorf("delete concern %s: %w", cid, err)
			}
			if err := txn.Delete([]byte(concernUserKeyPrefix + id + ":" + cid)); err != nil {
				return fmt.Errorf("delete concern index %s: %w", cid, err)
			}
		}

		if err := txn.Delete([]byte(userNameKeyPrefix + normalizeKey(user.Name))); err != nil {
			return fmt.Errorf("delete name index: %w", err)
		}
		if err := txn.Delete([]byte(userEmailKeyPrefix + normalizeKey(user.Email))); err != nil {
			return fmt.Errorf("delete email index: %w", err)
		}
		return txn.Delete([]byte(userKeyPrefix + id))
	})
	return err
}

// ListUsers returns every user sorted by creation time, newest first.
// Admin surface only.
func (s *Store) ListUsers(ctx context.Context) (users []*models.User, err error) {
	defer func() { record("users", "list", err) }()

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(userKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			user := &models.User{}
			valErr := it.Item().Value(func(val []byte) error {
				return unmarshalDoc(val, user)
			})
			if valErr != nil {
				return valErr
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// TouchLastActive stamps the user's last-active time. Used by login.
func (s *Store) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	_, err := s.UpdateUser(ctx, id, func(u *models.User) error {
		u.LastActiveAt = at
		return nil
	})
	return err
}

// AddNotification appends an in-app notification to the user document and
// returns it.
func (s *Store) AddNotification(ctx context.Context, userID, message string) (*models.Notification, error) {
	note := models.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.UpdateUser(ctx, userID, func(u *models.User) error {
		u.Notifications = append(u.Notifications, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// MarkNotificationRead flags a notification as read.
// Returns ErrNotFound when the notification does not exist.
func (s *Store) MarkNotificationRead(ctx context.Context, userID, noteID string) error {
	_, err := s.UpdateUser(ctx, userID, func(u *models.User) error {
		for i := range u.Notifications {
			if u.Notifications[i].ID == noteID {
				u.Notifications[i].Read = true
				return nil
			}
		}
		return ErrNotFound
	})
	return err
}

// DeleteNotification removes a notification from the user document.
func (s *Store) DeleteNotification(ctx context.Context, userID, noteID string) error {
	_, err := s.UpdateUser(ctx, userID, func(u *models.User) error {
		for i := range u.Notifications {
			if u.Notifications[i].ID == noteID {
				u.Notifications = append(u.Notifications[:i], u.Notifications[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	return err
}
