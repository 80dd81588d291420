// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillify-dev/skillify/internal/models"
)

func TestSkills_CRUD(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	skillID := e.createSkill(token, "Go")

	status, env := e.request(http.MethodGet, "/api/v1/skills", token, nil)
	require.Equal(t, http.StatusOK, status)
	var skills []models.Skill
	e.decodeData(env, &skills)
	require.Len(t, skills, 1)
	require.Equal(t, "Go", skills[0].Name)

	status, env = e.request(http.MethodPut, "/api/v1/skills/"+skillID, token, map[string]interface{}{
		"name":     "Go",
		"progress": 65,
	})
	require.Equal(t, http.StatusOK, status)
	var updated models.Skill
	e.decodeData(env, &updated)
	require.Equal(t, 65, updated.Progress)
}

func TestSkills_OwnershipIsolation(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.registerUser("alice", "alice@example.com")
	_, bob := e.registerUser("bob", "bob@example.com")

	skillID := e.createSkill(alice, "Go")

	// Bob cannot see, update or delete Alice's skill.
	status, env := e.request(http.MethodGet, "/api/v1/skills", bob, nil)
	require.Equal(t, http.StatusOK, status)
	var skills []models.Skill
	e.decodeData(env, &skills)
	require.Empty(t, skills)

	status, _ = e.request(http.MethodPut, "/api/v1/skills/"+skillID, bob, map[string]interface{}{
		"name": "Hijacked",
	})
	require.Equal(t, http.StatusNotFound, status)

	status, _ = e.request(http.MethodDelete, "/api/v1/skills/"+skillID, bob, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestDeleteSkill_CascadesReferencingGoals(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	skillID := e.createSkill(token, "Go")
	otherSkill := e.createSkill(token, "Docker")

	referencing := e.createGoal(token, "Learn Go", []string{skillID})
	independent := e.createGoal(token, "Learn Docker", []string{otherSkill})

	status, env := e.request(http.MethodDelete, "/api/v1/skills/"+skillID, token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Deleted      string   `json:"deleted"`
		DeletedGoals []string `json:"deletedGoals"`
	}
	e.decodeData(env, &data)
	require.Equal(t, skillID, data.Deleted)
	require.Equal(t, []string{referencing}, data.DeletedGoals)

	status, env = e.request(http.MethodGet, "/api/v1/goals", token, nil)
	require.Equal(t, http.StatusOK, status)
	var goals []models.Goal
	e.decodeData(env, &goals)
	require.Len(t, goals, 1)
	require.Equal(t, independent, goals[0].ID)
}

func TestCreateGoal_DateOrdering(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	// Target before start is rejected.
	status, env := e.request(http.MethodPost, "/api/v1/goals", token, map[string]interface{}{
		"title":      "Backwards",
		"startDate":  "2026-06-01",
		"targetDate": "2026-01-01",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, env.Error.Message, "Target date")

	// Equal dates are a valid same-day goal.
	status, _ = e.request(http.MethodPost, "/api/v1/goals", token, map[string]interface{}{
		"title":      "Same day",
		"startDate":  "2026-06-01",
		"targetDate": "2026-06-01",
	})
	require.Equal(t, http.StatusCreated, status)
}

func TestCreateGoal_BadSkillReference(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.registerUser("alice", "alice@example.com")
	_, bob := e.registerUser("bob", "bob@example.com")

	bobSkill := e.createSkill(bob, "Rust")

	// Alice cannot reference Bob's skill.
	status, _ := e.request(http.MethodPost, "/api/v1/goals", alice, map[string]interface{}{
		"title":      "Steal",
		"skillIds":   []string{bobSkill},
		"startDate":  "2026-01-01",
		"targetDate": "2026-06-01",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestGoalResources_LinkLifecycle(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")
	goalID := e.createGoal(token, "Learn Go", nil)

	resource := map[string]interface{}{
		"title":    "Go Tutorial",
		"platform": "YouTube",
		"link":     "https://www.youtube.com/watch?v=abc",
		"duration": "PT15M",
	}

	status, env := e.request(http.MethodPost, "/api/v1/goals/"+goalID+"/resources", token, resource)
	require.Equal(t, http.StatusCreated, status)
	var goal models.Goal
	e.decodeData(env, &goal)
	require.Len(t, goal.Resources, 1)
	require.Equal(t, 900, goal.Resources[0].DurationSeconds, "ISO duration converted to seconds")

	// Duplicate link rejected.
	status, env = e.request(http.MethodPost, "/api/v1/goals/"+goalID+"/resources", token, resource)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, env.Error.Message, "already attached")

	// Unlink via the URL-encoded link path segment.
	escaped := "https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc"
	status, env = e.request(http.MethodDelete, "/api/v1/goals/"+goalID+"/resources/"+escaped, token, nil)
	require.Equal(t, http.StatusOK, status)
	e.decodeData(env, &goal)
	require.Empty(t, goal.Resources)
}
