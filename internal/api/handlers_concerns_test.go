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

func (e *testEnv) createConcern(token, subject string) string {
	e.t.Helper()

	status, env := e.request(http.MethodPost, "/api/v1/concerns", token, map[string]string{
		"subject": subject,
		"message": "Something is wrong",
	})
	require.Equal(e.t, http.StatusCreated, status, "create concern: %+v", env.Error)

	var concern models.Concern
	e.decodeData(env, &concern)
	return concern.ID
}

func TestConcerns_OwnerScoping(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.registerUser("alice", "alice@example.com")
	_, bob := e.registerUser("bob", "bob@example.com")

	concernID := e.createConcern(alice, "Billing issue")
	e.createConcern(bob, "Login trouble")

	// Each user lists only their own concerns.
	status, env := e.request(http.MethodGet, "/api/v1/concerns", alice, nil)
	require.Equal(t, http.StatusOK, status)
	var concerns []models.Concern
	e.decodeData(env, &concerns)
	require.Len(t, concerns, 1)
	require.Equal(t, "Billing issue", concerns[0].Subject)

	// Reading someone else's concern looks like a missing record.
	status, _ = e.request(http.MethodGet, "/api/v1/concerns/"+concernID, bob, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = e.request(http.MethodGet, "/api/v1/concerns/"+concernID, alice, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestConcerns_AdminReplyNotifiesOwner(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.registerUser("alice", "alice@example.com")
	_, admin := e.seedAdmin()

	concernID := e.createConcern(alice, "Billing issue")

	status, env := e.request(http.MethodPost, "/api/v1/admin/concerns/"+concernID+"/replies", admin,
		map[string]string{"message": "We are on it"})
	require.Equal(t, http.StatusOK, status)

	var concern models.Concern
	e.decodeData(env, &concern)
	require.Equal(t, models.ConcernInReview, concern.Status)
	require.Len(t, concern.Replies, 1)
	require.Equal(t, "root", concern.Replies[0].Replier)

	status, env = e.request(http.MethodGet, "/api/v1/notifications", alice, nil)
	require.Equal(t, http.StatusOK, status)
	var notes struct {
		Notifications []models.Notification `json:"notifications"`
	}
	e.decodeData(env, &notes)
	require.Len(t, notes.Notifications, 1)
	require.Equal(t, "Support replied to your concern: Billing issue", notes.Notifications[0].Message)

	// Admins see every concern, and the owner can read the reply.
	status, env = e.request(http.MethodGet, "/api/v1/admin/concerns", admin, nil)
	require.Equal(t, http.StatusOK, status)
	var all []models.Concern
	e.decodeData(env, &all)
	require.Len(t, all, 1)
}

func TestConcerns_StatusTransitions(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.registerUser("alice", "alice@example.com")
	_, admin := e.seedAdmin()

	concernID := e.createConcern(alice, "Billing issue")

	status, env := e.request(http.MethodPut, "/api/v1/admin/concerns/"+concernID+"/status", admin,
		map[string]string{"status": "Resolved"})
	require.Equal(t, http.StatusOK, status)
	var concern models.Concern
	e.decodeData(env, &concern)
	require.Equal(t, models.ConcernResolved, concern.Status)
	require.NotNil(t, concern.ResolvedAt)

	// An invalid state is rejected by validation.
	status, env = e.request(http.MethodPut, "/api/v1/admin/concerns/"+concernID+"/status", admin,
		map[string]string{"status": "Closed"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}
