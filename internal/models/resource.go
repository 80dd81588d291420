// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package models

import "time"

// Level is the difficulty classification of a learning resource.
type Level string

// Resource skill levels.
const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Resource is a learning resource fetched from the external video catalog.
// Resources are ephemeral: they are never persisted as standalone documents,
// only as denormalized LinkedResource copies embedded in goals.
type Resource struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Link         string    `json:"link"`
	Platform     string    `json:"platform"`
	Type         string    `json:"type"`
	Level        Level     `json:"level"`

	// Views and Likes arrive as string numerics from the catalog and are
	// normalized to integers. Missing counts are zero.
	Views int64 `json:"views"`
	Likes int64 `json:"likes"`

	// Duration is the raw ISO-8601 duration string (e.g. "PT12M34S").
	Duration    string    `json:"duration"`
	PublishedAt time.Time `json:"publishedAt"`
}

// EngagementScore ranks a resource for recommendation ordering.
// Likes floor at 1 so that view count dominates when likes are absent.
func (r *Resource) EngagementScore() int64 {
	likes := r.Likes
	if likes < 1 {
		likes = 1
	}
	return r.Views * likes
}
