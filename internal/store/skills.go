// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/skillify-dev/skillify/internal/models"
)

// CreateSkill persists a new skill with its owner index.
func (s *Store) CreateSkill(ctx context.Context, skill *models.Skill) (err error) {
	defer func() { record("skills", "create", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := setDoc(txn, skillKeyPrefix+skill.ID, skill); err != nil {
			return err
		}
		indexKey := skillUserKeyPrefix + skill.UserID + ":" + skill.ID
		if err := txn.Set([]byte(indexKey), []byte(skill.ID)); err != nil {
			return fmt.Errorf("set skill index: %w", err)
		}
		return nil
	})
	return err
}

// GetSkill retrieves a skill by ID. Ownership checks belong to the caller.
func (s *Store) GetSkill(ctx context.Context, id string) (skill *models.Skill, err error) {
	defer func() { record("skills", "get", err) }()

	skill = &models.Skill{}
	err = s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, skillKeyPrefix+id, skill)
	})
	if err != nil {
		return nil, err
	}
	return skill, nil
}

// UpdateSkill applies a mutation to the skill document in one transaction.
func (s *Store) UpdateSkill(ctx context.Context, id string, mutate func(*models.Skill) error) (skill *models.Skill, err error) {
	defer func() { record("skills", "update", err) }()

	skill = &models.Skill{}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := getDoc(txn, skillKeyPrefix+id, skill); err != nil {
			return err
		}
		if err := mutate(skill); err != nil {
			return err
		}
		return setDoc(txn, skillKeyPrefix+id, skill)
	})
	if err != nil {
		return nil, err
	}
	return skill, nil
}

// DeleteSkillCascade removes a skill and every goal of the same owner that
// references it, in a single transaction. Phase one collects the referencing
// goal IDs, phase two deletes skill, goals and index keys together, so no
// reader can observe a goal pointing at a missing skill.
//
// Returns the IDs of the goals that were deleted alongside the skill.
func (s *Store) DeleteSkillCascade(ctx context.Context, userID, skillID string) (deletedGoals []string, err error) {
	defer func() { record("skills", "delete_cascade", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		skill := &models.Skill{}
		if err := getDoc(txn, skillKeyPrefix+skillID, skill); err != nil {
			return err
		}
		if skill.UserID != userID {
			return ErrNotFound
		}

		// Phase 1: collect goals referencing the skill.
		goalIDs, err := scanIndexTxn(txn, goalUserKeyPrefix+userID+":")
		if err != nil {
			return fmt.Errorf("scan user goals: %w", err)
		}
		for _, gid := range goalIDs {
			goal := &models.Goal{}
			if err := getDoc(txn, goalKeyPrefix+gid, goal); err != nil {
				return err
			}
			if goal.ReferencesSkill(skillID) {
				deletedGoals = append(deletedGoals, gid)
			}
		}

		// Phase 2: delete everything together.
		for _, gid := range deletedGoals {
			if err := txn.Delete([]byte(goalKeyPrefix + gid)); err != nil {
				return fmt.Errorf("delete goal %s: %w", gid, err)
			}
			if err := txn.Delete([]byte(goalUserKeyPrefix + userID + ":" + gid)); err != nil {
				return fmt.Errorf("delete goal index %s: %w", gid, err)
			}
		}
		if err := txn.Delete([]byte(skillUserKeyPrefix + userID + ":" + skillID)); err != nil {
			return fmt.Errorf("delete skill index: %w", err)
		}
		return txn.Delete([]byte(skillKeyPrefix + skillID))
	})
	if err != nil {
		return nil, err
	}
	return deletedGoals, nil
}

// ListSkillsByUser returns the user's skills sorted by creation time,
// oldest first.
func (s *Store) ListSkillsByUser(ctx context.Context, userID string) (skills []*models.Skill, err error) {
	defer func() { record("skills", "list", err) }()

	ids, err := s.scanIndex(skillUserKeyPrefix + userID + ":")
	if err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			skill := &models.Skill{}
			if err := getDoc(txn, skillKeyPrefix+id, skill); err != nil {
				return err
			}
			skills = append(skills, skill)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(skills, func(i, j int) bool {
		return skills[i].CreatedAt.Before(skills[j].CreatedAt)
	})
	return skills, nil
}
