// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/store"
)

// AdminListUsers returns every account, sanitized.
func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	sanitized := make([]*models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	rw.Success(sanitized)
}

// AdminUpdateUser updates any account's name, role or bio.
func (h *Handlers) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AdminUserRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	userID := chi.URLParam(r, "id")
	user, err := h.store.UpdateUser(r.Context(), userID, func(u *models.User) error {
		if req.Name != "" {
			u.Name = req.Name
		}
		if req.Role != "" {
			u.Role = models.Role(req.Role)
		}
		if req.Bio != "" {
			u.Bio = req.Bio
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUser):
			rw.Conflict("Username already taken")
		case errors.Is(err, store.ErrNotFound):
			rw.NotFound("User not found")
		default:
			rw.DatabaseError(err)
		}
		return
	}
	rw.Success(user.Sanitized())
}

// AdminDeleteUser removes an account and all content it owns. Admins
// cannot delete themselves; demote first so at least one admin survives.
func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == c.UserID {
		rw.BadRequest("Administrators cannot delete their own account")
		return
	}

	if err := h.store.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("User not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", userID).
		Str("admin_id", c.UserID).Msg("User deleted by administrator")
	rw.Success(map[string]string{"deleted": userID})
}

// AdminFlaggedPosts returns the moderation queue: posts with at least one
// pending flag on the post or any comment.
func (h *Handlers) AdminFlaggedPosts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	posts, err := h.store.ListFlaggedPosts(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(posts)
}

// AdminResolveFlag settles a pending flag as reviewed or dismissed,
// optionally notifying the owner of the flagged content.
func (h *Handlers) AdminResolveFlag(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ResolveFlagRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	postID := chi.URLParam(r, "id")
	flagID := chi.URLParam(r, "flagID")

	post, contentAuthor, err := h.store.ResolveFlag(r.Context(), postID, flagID,
		models.FlagStatus(req.Resolution))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Pending flag not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	if req.Notify && contentAuthor != "" {
		message := req.Message
		if message == "" {
			message = "A moderator has reviewed your content."
		}
		if _, err := h.store.AddNotification(r.Context(), contentAuthor, message); err != nil {
			// Resolution already succeeded; the notification is best effort.
			logging.Ctx(r.Context()).Warn().Err(err).Str("user_id", contentAuthor).
				Msg("Failed to notify content owner after flag resolution")
		}
	}

	rw.Success(post)
}

// AdminDeletePost removes a post as a moderation action.
func (h *Handlers) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, _ := claims(r)

	postID := chi.URLParam(r, "id")
	if err := h.store.DeletePost(r.Context(), postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Post not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("post_id", postID).
		Str("admin_id", c.UserID).Msg("Post removed by moderator")
	rw.Success(map[string]string{"deleted": postID})
}

// AdminListConcerns returns every support concern.
func (h *Handlers) AdminListConcerns(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	concerns, err := h.store.ListConcerns(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	if concerns == nil {
		concerns = []*models.Concern{}
	}
	rw.Success(concerns)
}

// AdminReplyConcern adds a reply and notifies the concern's owner.
func (h *Handlers) AdminReplyConcern(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req ConcernReplyRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	concernID := chi.URLParam(r, "id")
	concern, err := h.store.AddConcernReply(r.Context(), concernID, models.ConcernReply{
		ReplierID: c.UserID,
		Replier:   c.Name,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Concern not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	if _, err := h.store.AddNotification(r.Context(), concern.UserID,
		"Support replied to your concern: "+concern.Subject); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("user_id", concern.UserID).
			Msg("Failed to notify concern owner")
	}

	rw.Success(concern)
}

// AdminSetConcernStatus transitions a concern's workflow state.
func (h *Handlers) AdminSetConcernStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ConcernStatusRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	concernID := chi.URLParam(r, "id")
	concern, err := h.store.SetConcernStatus(r.Context(), concernID,
		models.ConcernStatus(req.Status))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Concern not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(concern)
}

// AdminReports returns platform-wide aggregate counts.
func (h *Handlers) AdminReports(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	report, err := h.store.BuildReport(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(report)
}
