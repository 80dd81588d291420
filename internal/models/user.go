// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package models defines the domain entities stored in the document store
// and exchanged over the HTTP API.
package models

import "time"

// Role is a user authorization role.
type Role string

// User roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. The stored document includes the password
// hash; handlers must respond with Sanitized() copies only.
type User struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"passwordHash,omitempty"`
	Role          Role           `json:"role"`
	Bio           string         `json:"bio,omitempty"`
	PhotoPath     string         `json:"photoPath,omitempty"`
	LastActiveAt  time.Time      `json:"lastActiveAt"`
	CreatedAt     time.Time      `json:"createdAt"`
	Notifications []Notification `json:"notifications"`
}

// Sanitized returns a copy safe for API responses, with the password hash
// stripped.
func (u *User) Sanitized() *User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

// UnreadNotifications counts notifications not yet marked read.
func (u *User) UnreadNotifications() int {
	n := 0
	for _, note := range u.Notifications {
		if !note.Read {
			n++
		}
	}
	return n
}

// Notification is an in-app message embedded in its owning user document.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
