// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package models

import "time"

// ConcernStatus is the support workflow state of a concern.
type ConcernStatus string

// Concern statuses.
const (
	ConcernPending  ConcernStatus = "Pending"
	ConcernInReview ConcernStatus = "In Review"
	ConcernResolved ConcernStatus = "Resolved"
)

// Valid reports whether the status is a known value.
func (s ConcernStatus) Valid() bool {
	switch s {
	case ConcernPending, ConcernInReview, ConcernResolved:
		return true
	}
	return false
}

// ConcernReply is an admin response embedded in the concern document.
type ConcernReply struct {
	ID        string    `json:"id"`
	ReplierID string    `json:"replierId"`
	Replier   string    `json:"replier"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Concern is a user support request handled by administrators.
type Concern struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Subject    string         `json:"subject"`
	Message    string         `json:"message"`
	Status     ConcernStatus  `json:"status"`
	Replies    []ConcernReply `json:"replies"`
	ResolvedAt *time.Time     `json:"resolvedAt,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
