// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/store"
)

// ListConcerns returns the caller's own support concerns.
func (h *Handlers) ListConcerns(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	concerns, err := h.store.ListConcernsByUser(r.Context(), c.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if concerns == nil {
		concerns = []*models.Concern{}
	}
	rw.Success(concerns)
}

// GetConcern returns one concern. Users may only read their own; admins
// may read any.
func (h *Handlers) GetConcern(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	concern, err := h.store.GetConcern(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Concern not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	if concern.UserID != c.UserID && c.Role != models.RoleAdmin {
		rw.NotFound("Concern not found")
		return
	}
	rw.Success(concern)
}

// CreateConcern opens a new support concern.
func (h *Handlers) CreateConcern(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req ConcernRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	now := time.Now().UTC()
	concern := &models.Concern{
		ID:        uuid.New().String(),
		UserID:    c.UserID,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.ConcernPending,
		Replies:   []models.ConcernReply{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.CreateConcern(r.Context(), concern); err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Created(concern)
}
