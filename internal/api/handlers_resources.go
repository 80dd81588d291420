// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/recommend"
)

// RecommendedResources aggregates personalized learning resources from the
// caller's skills and goals.
//
// Query parameters: page, pageSize, type, level, platform, search.
func (h *Handlers) RecommendedResources(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	q := r.URL.Query()
	filters := recommend.Filters{
		Type:     q.Get("type"),
		Level:    q.Get("level"),
		Platform: q.Get("platform"),
		Search:   q.Get("search"),
		Page:     parseIntParam(q.Get("page"), 1),
		PageSize: parseIntParam(q.Get("pageSize"), 0),
	}

	ctx, cancel := context.WithTimeout(r.Context(), catalogCallTimeout)
	defer cancel()

	result, err := h.recommender.Recommend(ctx, c.UserID, filters)
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(result)
}

// ResourceByID fetches full metadata for a single catalog video.
func (h *Handlers) ResourceByID(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	if id == "" {
		rw.BadRequest("Missing resource ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), catalogCallTimeout)
	defer cancel()

	resource, err := h.catalog.Video(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrVideoNotFound):
			rw.NotFound("Resource not found")
		case errors.Is(err, catalog.ErrCatalogUnavailable):
			rw.ExternalServiceError("video catalog", err)
		default:
			rw.InternalError("Could not fetch resource")
		}
		return
	}
	rw.Success(resource)
}

// parseIntParam parses a positive integer query value with a fallback.
func parseIntParam(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
