// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillify-dev/skillify/internal/models"
)

func TestProfile_Me(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	status, env := e.request(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	var user models.User
	e.decodeData(env, &user)
	require.Equal(t, "alice", user.Name)
	require.Empty(t, user.PasswordHash)
}

func TestProfile_PartialUpdate(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.registerUser("alice", "alice@example.com")

	status, env := e.request(http.MethodPut, "/api/v1/users/me", token, map[string]string{
		"bio": "Learning Go, one goroutine at a time",
	})
	require.Equal(t, http.StatusOK, status)

	var user models.User
	e.decodeData(env, &user)
	require.Equal(t, "alice", user.Name, "omitted fields stay unchanged")
	require.Equal(t, "Learning Go, one goroutine at a time", user.Bio)
}

func TestProfile_RenameConflict(t *testing.T) {
	e := newTestEnv(t)
	e.registerUser("alice", "alice@example.com")
	_, bob := e.registerUser("bob", "bob@example.com")

	status, env := e.request(http.MethodPut, "/api/v1/users/me", bob, map[string]string{
		"name": "Alice",
	})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "CONFLICT", env.Error.Code)
}

func TestNotifications_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	aliceID, alice := e.registerUser("alice", "alice@example.com")

	note, err := e.store.AddNotification(context.Background(), aliceID, "Welcome to Skillify")
	require.NoError(t, err)

	var notes struct {
		Notifications []models.Notification `json:"notifications"`
		Unread        int                   `json:"unread"`
	}

	status, env := e.request(http.MethodGet, "/api/v1/notifications", alice, nil)
	require.Equal(t, http.StatusOK, status)
	e.decodeData(env, &notes)
	require.Len(t, notes.Notifications, 1)
	require.Equal(t, 1, notes.Unread)

	status, _ = e.request(http.MethodPost, "/api/v1/notifications/"+note.ID+"/read", alice, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = e.request(http.MethodGet, "/api/v1/notifications", alice, nil)
	require.Equal(t, http.StatusOK, status)
	e.decodeData(env, &notes)
	require.Equal(t, 0, notes.Unread)

	status, _ = e.request(http.MethodDelete, "/api/v1/notifications/"+note.ID, alice, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = e.request(http.MethodGet, "/api/v1/notifications", alice, nil)
	require.Equal(t, http.StatusOK, status)
	e.decodeData(env, &notes)
	require.Empty(t, notes.Notifications)

	// Operating on a removed notification is a 404.
	status, _ = e.request(http.MethodPost, "/api/v1/notifications/"+note.ID+"/read", alice, nil)
	require.Equal(t, http.StatusNotFound, status)
}
