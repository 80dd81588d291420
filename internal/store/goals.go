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

	"github.com/skillify-dev/skillify/internal/models"
)

// CreateGoal persists a new goal with its owner index. Referenced skills
// must exist and belong to the same owner.
func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) (err error) {
	defer func() { record("goals", "create", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, skillID := range goal.SkillIDs {
			skill := &models.Skill{}
			if err := getDoc(txn, skillKeyPrefix+skillID, skill); err != nil {
				return fmt.Errorf("referenced skill %s: %w", skillID, err)
			}
			if skill.UserID != goal.UserID {
				return ErrNotFound
			}
		}

		if err := setDoc(txn, goalKeyPrefix+goal.ID, goal); err != nil {
			return err
		}
		indexKey := goalUserKeyPrefix + goal.UserID + ":" + goal.ID
		if err := txn.Set([]byte(indexKey), []byte(goal.ID)); err != nil {
			return fmt.Errorf("set goal index: %w", err)
		}
		return nil
	})
	return err
}

// GetGoal retrieves a goal by ID. Ownership checks belong to the caller.
func (s *Store) GetGoal(ctx context.Context, id string) (goal *models.Goal, err error) {
	defer func() { record("goals", "get", err) }()

	goal = &models.Goal{}
	err = s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, goalKeyPrefix+id, goal)
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateGoal applies a mutation to the goal document in one transaction.
func (s *Store) UpdateGoal(ctx context.Context, id string, mutate func(*models.Goal) error) (goal *models.Goal, err error) {
	defer func() { record("goals", "update", err) }()

	goal = &models.Goal{}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := getDoc(txn, goalKeyPrefix+id, goal); err != nil {
			return err
		}
		if err := mutate(goal); err != nil {
			return err
		}
		goal.UpdatedAt = time.Now().UTC()
		return setDoc(txn, goalKeyPrefix+id, goal)
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes a goal and its owner index.
func (s *Store) DeleteGoal(ctx context.Context, userID, id string) (err error) {
	defer func() { record("goals", "delete", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		goal := &models.Goal{}
		if err := getDoc(txn, goalKeyPrefix+id, goal); err != nil {
			return err
		}
		if goal.UserID != userID {
			return ErrNotFound
		}
		if err := txn.Delete([]byte(goalUserKeyPrefix + userID + ":" + id)); err != nil {
			return fmt.Errorf("delete goal index: %w", err)
		}
		return txn.Delete([]byte(goalKeyPrefix + id))
	})
	return err
}

// ListGoalsByUser returns the user's goals sorted by target date,
// soonest first.
func (s *Store) ListGoalsByUser(ctx context.Context, userID string) (goals []*models.Goal, err error) {
	defer func() { record("goals", "list", err) }()

	ids, err := s.scanIndex(goalUserKeyPrefix + userID + ":")
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			goal := &models.Goal{}
			if err := getDoc(txn, goalKeyPrefix+id, goal); err != nil {
				return err
			}
			goals = append(goals, goal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].TargetDate.Before(goals[j].TargetDate)
	})
	return goals, nil
}

// AddGoalResource attaches a denormalized resource copy to the goal.
// Returns ErrDuplicateResourceLink when the link is already attached.
func (s *Store) AddGoalResource(ctx context.Context, userID, goalID string, res models.LinkedResource) (goal *models.Goal, err error) {
	defer func() { record("goals", "add_resource", err) }()

	res.AddedAt = time.Now().UTC()
	goal, err = s.UpdateGoal(ctx, goalID, func(g *models.Goal) error {
		if g.UserID != userID {
			return ErrNotFound
		}
		if g.HasResourceLink(res.Link) {
			return ErrDuplicateResourceLink
		}
		g.Resources = append(g.Resources, res)
		return nil
	})
	return goal, err
}

// RemoveGoalResource detaches the resource with the matching link.
// Returns ErrNotFound when no attached resource matches.
func (s *Store) RemoveGoalResource(ctx context.Context, userID, goalID, link string) (goal *models.Goal, err error) {
	defer func() { record("goals", "remove_resource", err) }()

	goal, err = s.UpdateGoal(ctx, goalID, func(g *models.Goal) error {
		if g.UserID != userID {
			return ErrNotFound
		}
		if !g.RemoveResourceLink(link) {
			return ErrNotFound
		}
		return nil
	})
	return goal, err
}
