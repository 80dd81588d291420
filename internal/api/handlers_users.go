// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillify-dev/skillify/internal/models"
	"github.com/skillify-dev/skillify/internal/store"
)

// Me returns the caller's own sanitized profile.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	user, err := h.store.GetUser(r.Context(), c.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("User not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(user.Sanitized())
}

// UpdateMe updates the caller's profile fields. Empty fields are left
// unchanged so a photo upload doesn't have to resend the bio.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	var req ProfileRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	user, err := h.store.UpdateUser(r.Context(), c.UserID, func(u *models.User) error {
		if req.Name != "" {
			u.Name = req.Name
		}
		if req.Bio != "" {
			u.Bio = req.Bio
		}
		if req.PhotoPath != "" {
			u.PhotoPath = req.PhotoPath
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

// ListNotifications returns the caller's notifications.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	user, err := h.store.GetUser(r.Context(), c.UserID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	notifications := user.Notifications
	if notifications == nil {
		notifications = []models.Notification{}
	}
	rw.Success(map[string]interface{}{
		"notifications": notifications,
		"unread":        user.UnreadNotifications(),
	})
}

// MarkNotificationRead marks one notification as read.
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	noteID := chi.URLParam(r, "id")
	if err := h.store.MarkNotificationRead(r.Context(), c.UserID, noteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Notification not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(map[string]string{"read": noteID})
}

// DeleteNotification removes one notification.
func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	c, ok := claims(r)
	if !ok {
		rw.Unauthorized("Authentication required")
		return
	}

	noteID := chi.URLParam(r, "id")
	if err := h.store.DeleteNotification(r.Context(), c.UserID, noteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Notification not found")
			return
		}
		rw.DatabaseError(err)
		return
	}
	rw.Success(map[string]string{"deleted": noteID})
}
