// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package models

import (
	"strings"
	"time"
)

// GoalStatus is the progress state of a goal.
type GoalStatus string

// Goal statuses.
const (
	GoalPending    GoalStatus = "Pending"
	GoalInProgress GoalStatus = "In Progress"
	GoalCompleted  GoalStatus = "Completed"
)

// Valid reports whether the status is a known value.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalPending, GoalInProgress, GoalCompleted:
		return true
	}
	return false
}

// LinkedResource is a denormalized copy of a catalog resource attached to a
// goal. The source resource is ephemeral, so the fields needed for display
// are embedded here.
type LinkedResource struct {
	Title           string    `json:"title"`
	Platform        string    `json:"platform"`
	Link            string    `json:"link"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	AddedAt         time.Time `json:"addedAt"`
}

// Goal is a learning objective referencing zero or more skills.
// TargetDate must not precede StartDate; equal dates are allowed.
type Goal struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	SkillIDs    []string         `json:"skillIds"`
	StartDate   time.Time        `json:"startDate"`
	TargetDate  time.Time        `json:"targetDate"`
	Status      GoalStatus       `json:"status"`
	Resources   []LinkedResource `json:"resources"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ReferencesSkill reports whether the goal lists the given skill ID.
func (g *Goal) ReferencesSkill(skillID string) bool {
	for _, id := range g.SkillIDs {
		if id == skillID {
			return true
		}
	}
	return false
}

// HasResourceLink reports whether a resource with the given link is already
// attached. Links are compared case-insensitively after trimming.
func (g *Goal) HasResourceLink(link string) bool {
	link = normalizeLink(link)
	for _, res := range g.Resources {
		if normalizeLink(res.Link) == link {
			return true
		}
	}
	return false
}

// RemoveResourceLink deletes the resource with the matching link.
// Returns false when no resource matched.
func (g *Goal) RemoveResourceLink(link string) bool {
	link = normalizeLink(link)
	for i, res := range g.Resources {
		if normalizeLink(res.Link) == link {
			g.Resources = append(g.Resources[:i], g.Resources[i+1:]...)
			return true
		}
	}
	return false
}

func normalizeLink(link string) string {
	return strings.ToLower(strings.TrimSpace(link))
}
