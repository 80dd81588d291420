// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillify-dev/skillify/internal/auth"
	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/metrics"
	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/store"
)

// Register creates a new account and returns the sanitized user with a
// fresh token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RegisterRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Password hashing failed")
		rw.InternalError("Could not create account")
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		Role:          models.RoleUser,
		LastActiveAt:  now,
		CreatedAt:     now,
		Notifications: []models.Notification{},
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			rw.Conflict("Username or email already registered")
			return
		}
		rw.DatabaseError(err)
		return
	}

	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Token generation failed")
		rw.InternalError("Could not create session")
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User registered")
	rw.Created(map[string]interface{}{
		"user":  user.Sanitized(),
		"token": token,
	})
}

// Login verifies credentials and issues a token. Wrong email and wrong
// password produce the same response so the endpoint does not leak which
// accounts exist.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req LoginRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
			rw.Unauthorized("Invalid email or password")
			return
		}
		rw.DatabaseError(err)
		return
	}

	if err := h.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
			rw.Unauthorized("Invalid email or password")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Password comparison failed")
		rw.InternalError("Could not verify credentials")
		return
	}

	if err := h.store.TouchLastActive(r.Context(), user.ID, time.Now().UTC()); err != nil {
		// Login still succeeds; the stamp is best effort.
		logging.Ctx(r.Context()).Warn().Err(err).Str("user_id", user.ID).
			Msg("Failed to update last-active timestamp")
	}

	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Token generation failed")
		rw.InternalError("Could not create session")
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User logged in")
	rw.Success(map[string]interface{}{
		"user":  user.Sanitized(),
		"token": token,
	})
}
