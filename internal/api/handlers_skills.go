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

	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/store"
)

// ListSkills returns the caller's skills.
func (h *Handlers) ListSkills(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	skills, err := h.store.ListSkillsByUser(r.Context(), c.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if skills == nil {
		skills = []*models.Skill{}
	}
	rw.Success(skills)
}

// CreateSkill records a new skill for the caller.
func (h *Handlers) CreateSkill(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req SkillRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	now := time.Now().UTC()
	skill := &models.Skill{
		ID:          uuid.New().String(),
		UserID:      c.UserID,
		Name:        req.Name,
		Description: req.Description,
		Progress:    req.Progress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateSkill(r.Context(), skill); err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Created(skill)
}

// UpdateSkill replaces a skill's mutable fields.
func (h *Handlers) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req SkillRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	skillID := chi.URLParam(r, "id")
	skill, err := h.store.UpdateSkill(r.Context(), skillID, func(s *models.Skill) error {
		if s.UserID != c.UserID {
			return store.ErrNotFound
		}
		s.Name = req.Name
		s.Description = req.Description
		s.Progress = req.Progress
		s.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Skill not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(skill)
}

// DeleteSkill removes a skill and cascades to every goal referencing it.
func (h *Handlers) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	skillID := chi.URLParam(r, "id")
	deletedGoals, err := h.store.DeleteSkillCascade(r.Context(), c.UserID, skillID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Skill not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("skill_id", skillID).
		Int("cascaded_goals", len(deletedGoals)).Msg("Skill deleted")
	rw.Success(map[string]interface{}{
		"deleted":      skillID,
		"deletedGoals": deletedGoals,
	})
}
