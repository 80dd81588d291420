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

// ListPosts returns the forum feed, newest first.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	rw.Success(posts)
}

// GetPost returns one post with its comments, likes and flags.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	post, err := h.store.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Post not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(post)
}

// CreatePost starts a new discussion thread.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req PostRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.New().String(),
		AuthorID:  c.UserID,
		Author:    c.Name,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		Comments:  []models.Comment{},
		LikedBy:   []string{},
		Flags:     []models.Flag{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := h.store.CreatePost(r.Context(), post); err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Created(post)
}

// AddComment replies to a post.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req CommentRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	comment, err := h.store.AddComment(r.Context(), chi.URLParam(r, "id"), models.Comment{
		AuthorID: c.UserID,
		Author:   c.Name,
		Content:  req.Content,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Post not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Created(comment)
}

// ToggleLike flips the caller's like on a post.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	post, liked, err := h.store.ToggleLike(r.Context(), chi.URLParam(r, "id"), c.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Post not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(map[string]interface{}{
		"liked": liked,
		"likes": len(post.LikedBy),
	})
}

// FlagPost reports a post for moderation. A reporter may hold one pending
// flag per post; once that flag is resolved they may flag again.
func (h *Handlers) FlagPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req FlagRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	flag, err := h.store.FlagPost(r.Context(), chi.URLParam(r, "id"), c.UserID, req.Reason)
	if err != nil {
		h.writeFlagError(rw, err)
		return
	}
	rw.Created(flag)
}

// FlagComment reports a comment for moderation.
func (h *Handlers) FlagComment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req FlagRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	flag, err := h.store.FlagComment(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "commentID"), c.UserID, req.Reason)
	if err != nil {
		h.writeFlagError(rw, err)
		return
	}
	rw.Created(flag)
}

func (h *Handlers) writeFlagError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateFlag):
		rw.BadRequest("You already have a pending flag on this content")
	case errors.Is(err, store.ErrNotFound):
		rw.NotFound("Post or comment not found")
	default:
		rw.DatabaseError(err)
	}
}
