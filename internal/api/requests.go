// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// maxRequestBodySize bounds request bodies. Nothing in the API legitimately
// needs more than 1 MiB.
const maxRequestBodySize = 1 << 20

// RegisterRequest creates an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SkillRequest creates or fully replaces a skill.
type SkillRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Progress    int    `json:"progress" validate:"min=0,max=100"`
}

// GoalRequest creates or fully replaces a goal. Dates accept "2006-01-02"
// or full RFC3339 timestamps.
type GoalRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	SkillIDs    []string `json:"skillIds" validate:"max=20,dive,uuid"`
	StartDate   string   `json:"startDate" validate:"required,rfc3339date"`
	TargetDate  string   `json:"targetDate" validate:"required,rfc3339date"`
	Status      string   `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
}

// GoalResourceRequest attaches a denormalized resource copy to a goal.
// Duration is the ISO-8601 form delivered by the catalog.
type GoalResourceRequest struct {
	Title        string `json:"title" validate:"required,max=300"`
	Platform     string `json:"platform" validate:"required,max=50"`
	Link         string `json:"link" validate:"required,url,max=500"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url,max=500"`
	Duration     string `json:"duration" validate:"omitempty,max=30"`
}

// PostRequest creates a forum post.
type PostRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required,max=10000"`
	Tags    []string `json:"tags" validate:"max=10,dive,max=30"`
}

// CommentRequest adds a comment to a post.
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// FlagRequest reports a post or comment.
type FlagRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// ResolveFlagRequest settles a flag. When Notify is set, the owner of the
// flagged content receives an in-app notification with the given message.
type ResolveFlagRequest struct {
	Resolution string `json:"resolution" validate:"required,oneof=reviewed dismissed"`
	Notify     bool   `json:"notify"`
	Message    string `json:"message" validate:"omitempty,max=500"`
}

// ConcernRequest opens a support concern.
type ConcernRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ConcernReplyRequest adds an admin reply to a concern.
type ConcernReplyRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

// ConcernStatusRequest transitions a concern's workflow state.
type ConcernStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending 'In Review' Resolved"`
}

// ProfileRequest updates the caller's own profile.
type ProfileRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=50"`
	Bio       string `json:"bio" validate:"max=1000"`
	PhotoPath string `json:"photoPath" validate:"max=500"`
}

// AdminUserRequest lets an administrator update any account.
type AdminUserRequest struct {
	Name string `json:"name" validate:"omitempty,min=2,max=50"`
	Role string `json:"role" validate:"omitempty,oneof=user admin"`
	Bio  string `json:"bio" validate:"max=1000"`
}

// decodeJSON decodes a bounded request body, rejecting unknown fields and
// trailing garbage.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// parseDate accepts a date-only or full RFC3339 string.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
