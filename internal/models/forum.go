// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package models

import "time"

// FlagStatus is the moderation state of a content flag.
type FlagStatus string

// Flag statuses. Pending flags block duplicates from the same reporter;
// reviewed and dismissed are terminal.
const (
	FlagPending   FlagStatus = "pending"
	FlagReviewed  FlagStatus = "reviewed"
	FlagDismissed FlagStatus = "dismissed"
)

// Valid reports whether the status is a known value.
func (s FlagStatus) Valid() bool {
	switch s {
	case FlagPending, FlagReviewed, FlagDismissed:
		return true
	}
	return false
}

// Terminal reports whether the flag has been resolved either way.
func (s FlagStatus) Terminal() bool {
	return s == FlagReviewed || s == FlagDismissed
}

// Flag is a moderation report against a post or comment.
type Flag struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporterId"`
	Reason     string     `json:"reason"`
	Status     FlagStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// Comment is a reply embedded in its parent post document.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Flags     []Flag    `json:"flags"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a forum discussion thread. Comments, likes and flags are embedded
// in the post document and updated via read-modify-write transactions.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Comments  []Comment `json:"comments"`
	LikedBy   []string  `json:"likedBy"`
	Flags     []Flag    `json:"flags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPendingFlagFrom reports whether the reporter already has an unresolved
// flag on the post itself.
func (p *Post) HasPendingFlagFrom(reporterID string) bool {
	return hasPendingFlag(p.Flags, reporterID)
}

// LikedByUser reports whether the user has liked the post.
func (p *Post) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike adds or removes the user's like. Returns true when the post is
// liked after the call.
func (p *Post) ToggleLike(userID string) bool {
	for i, id := range p.LikedBy {
		if id == userID {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			return false
		}
	}
	p.LikedBy = append(p.LikedBy, userID)
	return true
}

// FindComment returns the embedded comment with the given ID, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// PendingFlagCount counts unresolved flags on the post and its comments.
func (p *Post) PendingFlagCount() int {
	n := 0
	for _, f := range p.Flags {
		if f.Status == FlagPending {
			n++
		}
	}
	for _, c := range p.Comments {
		for _, f := range c.Flags {
			if f.Status == FlagPending {
				n++
			}
		}
	}
	return n
}

// HasPendingFlagFrom reports whether the reporter already has an unresolved
// flag on the comment.
func (c *Comment) HasPendingFlagFrom(reporterID string) bool {
	return hasPendingFlag(c.Flags, reporterID)
}

func hasPendingFlag(flags []Flag, reporterID string) bool {
	for _, f := range flags {
		if f.ReporterID == reporterID && f.Status == FlagPending {
			return true
		}
	}
	return false
}
