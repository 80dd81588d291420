// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillify-dev/skillify/internal/models"
)

func TestSkillCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSkill(t, s, "s1", "u1", "Go")

	skill, err := s.GetSkill(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "Go", skill.Name)

	updated, err := s.UpdateSkill(ctx, "s1", func(sk *models.Skill) error {
		sk.Progress = 40
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 40, updated.Progress)

	_, err = s.GetSkill(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListSkillsByUser_OldestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &models.Skill{ID: "s1", UserID: "u1", Name: "Go",
		CreatedAt: time.Now().UTC().Add(-time.Hour)}
	require.NoError(t, s.CreateSkill(ctx, older))
	seedSkill(t, s, "s2", "u1", "Docker")
	seedSkill(t, s, "s3", "u2", "Rust")

	skills, err := s.ListSkillsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, skills, 2)
	require.Equal(t, "s1", skills[0].ID)
	require.Equal(t, "s2", skills[1].ID)
}

func TestDeleteSkillCascade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSkill(t, s, "s1", "u1", "Go")
	seedSkill(t, s, "s2", "u1", "Docker")

	seedGoal(t, s, "g1", "u1", "s1")       // references only s1
	seedGoal(t, s, "g2", "u1", "s1", "s2") // references both
	seedGoal(t, s, "g3", "u1", "s2")       // untouched
	seedGoal(t, s, "g4", "u1")             // no skill refs

	deleted, err := s.DeleteSkillCascade(ctx, "u1", "s1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"g1", "g2"}, deleted)

	_, err = s.GetSkill(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetGoal(ctx, "g1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetGoal(ctx, "g2")
	require.ErrorIs(t, err, ErrNotFound)

	// Goals not referencing the skill survive.
	for _, id := range []string{"g3", "g4"} {
		goal, err := s.GetGoal(ctx, id)
		require.NoError(t, err, "goal %s should survive", id)
		require.Equal(t, "u1", goal.UserID)
	}

	goals, err := s.ListGoalsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 2)
}

func TestDeleteSkillCascade_WrongOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedSkill(t, s, "s1", "u1", "Go")

	_, err := s.DeleteSkillCascade(ctx, "u2", "s1")
	require.ErrorIs(t, err, ErrNotFound, "other users' skills look nonexistent")

	_, err = s.GetSkill(ctx, "s1")
	require.NoError(t, err, "skill must survive the rejected delete")
}
