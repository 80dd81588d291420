// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/store"
)

// ListGoals returns the caller's goals.
func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	goals, err := h.store.ListGoalsByUser(r.Context(), c.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if goals == nil {
		goals = []*models.Goal{}
	}
	rw.Success(goals)
}

// CreateGoal records a new goal. The target date must not precede the
// start date; equal dates are a valid same-day goal.
func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req GoalRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	start, target, ok := h.parseGoalDates(rw, req)
	if !ok {
		return
	}

	status := models.GoalStatus(req.Status)
	if req.Status == "" {
		status = models.GoalPending
	}

	now := time.Now().UTC()
	goal := &models.Goal{
		ID:          uuid.New().String(),
		UserID:      c.UserID,
		Title:       req.Title,
		Description: req.Description,
		SkillIDs:    req.SkillIDs,
		StartDate:   start,
		TargetDate:  target,
		Status:      status,
		Resources:   []models.LinkedResource{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if goal.SkillIDs == nil {
		goal.SkillIDs = []string{}
	}

	if err := h.store.CreateGoal(r.Context(), goal); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.BadRequest("One or more referenced skills do not exist")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Created(goal)
}

// UpdateGoal replaces a goal's mutable fields.
func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req GoalRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	start, target, ok := h.parseGoalDates(rw, req)
	if !ok {
		return
	}

	goalID := chi.URLParam(r, "id")
	goal, err := h.store.UpdateGoal(r.Context(), goalID, func(g *models.Goal) error {
		if g.UserID != c.UserID {
			return store.ErrNotFound
		}
		g.Title = req.Title
		g.Description = req.Description
		if req.SkillIDs != nil {
			g.SkillIDs = req.SkillIDs
		}
		g.StartDate = start
		g.TargetDate = target
		if req.Status != "" {
			g.Status = models.GoalStatus(req.Status)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Goal not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(goal)
}

// DeleteGoal removes a goal.
func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	goalID := chi.URLParam(r, "id")
	if err := h.store.DeleteGoal(r.Context(), c.UserID, goalID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Goal not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(map[string]string{"deleted": goalID})
}

// AddGoalResource links a resource to a goal. Each link may appear on a
// goal at most once.
func (h *Handlers) AddGoalResource(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req GoalResourceRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	res := models.LinkedResource{
		Title:           req.Title,
		Platform:        req.Platform,
		Link:            req.Link,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: catalog.ParseISODuration(req.Duration),
	}

	goalID := chi.URLParam(r, "id")
	goal, err := h.store.AddGoalResource(r.Context(), c.UserID, goalID, res)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateResourceLink):
			rw.BadRequest("Resource link already attached to this goal")
		case errors.Is(err, store.ErrNotFound):
			rw.NotFound("Goal not found")
		default:
			rw.DatabaseError(err)
		}
		return
	}
	rw.Created(goal)
}

// RemoveGoalResource unlinks a resource from a goal. The link arrives
// URL-encoded in the path.
func (h *Handlers) RemoveGoalResource(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	link, err := url.PathUnescape(chi.URLParam(r, "link"))
	if err != nil || link == "" {
		rw.BadRequest("Invalid resource link")
		return
	}

	goalID := chi.URLParam(r, "id")
	goal, err := h.store.RemoveGoalResource(r.Context(), c.UserID, goalID, link)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Goal or resource link not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(goal)
}

// parseGoalDates parses and orders the goal dates, writing the error
// response on failure.
func (h *Handlers) parseGoalDates(rw *ResponseWriter, req GoalRequest) (start, target time.Time, ok bool) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		rw.BadRequest("Invalid start date")
		return time.Time{}, time.Time{}, false
	}
	target, err = parseDate(req.TargetDate)
	if err != nil {
		rw.BadRequest("Invalid target date")
		return time.Time{}, time.Time{}, false
	}
	if target.Before(start) {
		rw.BadRequest("Target date must not be before start date")
		return time.Time{}, time.Time{}, false
	}
	return start, target, true
}
