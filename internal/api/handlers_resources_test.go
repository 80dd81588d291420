// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/recommend"
)

func TestRecommendedResources_NoSkills(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	status, env := e.request(http.MethodGet, "/api/v1/resources/recommended", token, nil)
	require.Equal(t, http.StatusOK, status)

	var result recommend.Result
	e.decodeData(env, &result)
	require.False(t, result.HasSkillsOrGoals)
	require.Empty(t, result.Resources)
	require.Zero(t, e.catalog.calls(), "catalog must not be queried without skills")
}

func TestRecommendedResources_FromSkills(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")
	e.createSkill(token, "Go")

	e.catalog.resources = []models.Resource{
		{ID: "v1", Title: "Go Tutorial", Views: 1000, Likes: 10},
		{ID: "v2", Title: "Go Deep Dive", Views: 50, Likes: 2},
	}

	status, env := e.request(http.MethodGet, "/api/v1/resources/recommended?pageSize=10", token, nil)
	require.Equal(t, http.StatusOK, status)

	var result recommend.Result
	e.decodeData(env, &result)
	require.True(t, result.HasSkillsOrGoals)
	require.Len(t, result.Resources, 2)
	require.Equal(t, "v1", result.Resources[0].ID, "sorted by engagement")
	require.Equal(t, 1, e.catalog.calls())
}

func TestResourceByID(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	e.catalog.video = &models.Resource{ID: "v1", Title: "Go Tutorial"}

	status, env := e.request(http.MethodGet, "/api/v1/resources/v1", token, nil)
	require.Equal(t, http.StatusOK, status)

	var resource models.Resource
	e.decodeData(env, &resource)
	require.Equal(t, "v1", resource.ID)
}

func TestResourceByID_NotFound(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	e.catalog.videoErr = catalog.ErrVideoNotFound
	status, _ := e.request(http.MethodGet, "/api/v1/resources/missing", token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestResourceByID_CatalogDown(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	e.catalog.videoErr = catalog.ErrCatalogUnavailable
	status, env := e.request(http.MethodGet, "/api/v1/resources/v1", token, nil)
	require.Equal(t, http.StatusBadGateway, status)
	require.Equal(t, "EXTERNAL_SERVICE_FAILED", env.Error.Code)
}
