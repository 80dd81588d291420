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

func TestRegister_SanitizesUser(t *testing.T) {
	e := newTestEnv(t)

	status, env := e.request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	var data struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	e.decodeData(env, &data)
	require.Empty(t, data.User.PasswordHash, "password hash must never leave the server")
	require.Equal(t, models.RoleUser, data.User.Role)
	require.NotEmpty(t, data.Token)
}

func TestRegister_Duplicate(t *testing.T) {
	e := newTestEnv(t)
	e.registerUser("alice", "alice@example.com")

	status, env := e.request(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "different@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "CONFLICT", env.Error.Code)
}

func TestLogin_Flow(t *testing.T) {
	e := newTestEnv(t)
	e.registerUser("alice", "alice@example.com")

	status, env := e.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	e.decodeData(env, &data)

	// The issued token grants access to protected routes.
	status, _ = e.request(http.MethodGet, "/api/v1/users/me", data.Token, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestLogin_UniformFailureResponse(t *testing.T) {
	e := newTestEnv(t)
	e.registerUser("alice", "alice@example.com")

	// Wrong password and unknown email must be indistinguishable.
	status1, env1 := e.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	status2, env2 := e.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusUnauthorized, status1)
	require.Equal(t, http.StatusUnauthorized, status2)
	require.Equal(t, env1.Error.Message, env2.Error.Message)
}
