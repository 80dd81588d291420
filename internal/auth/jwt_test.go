// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/skillify-dev/skillify/internal/models"
)

const testSecret = "test-secret-at-least-32-characters-long"

func testUser() *models.User {
	return &models.User{
		ID:   "user-123",
		Name: "Alice",
		Role: models.RoleUser,
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("Expected UserID 'user-123', got %q", claims.UserID)
	}
	if claims.Name != "Alice" {
		t.Errorf("Expected Name 'Alice', got %q", claims.Name)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("Expected role %q, got %q", models.RoleUser, claims.Role)
	}
	if claims.Issuer != "skillify" {
		t.Errorf("Expected issuer 'skillify', got %q", claims.Issuer)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager(testSecret, -time.Minute)

	token, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = m.ValidateToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := NewJWTManager(testSecret, time.Hour)
	verifier := NewJWTManager("a-different-secret-also-32-chars-xx", time.Hour)

	token, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = verifier.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_GarbageToken(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateToken(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestJWTManager_EmptyUserIDRejected(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, err := m.GenerateToken(&models.User{Name: "no-id"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for empty uid claim, got %v", err)
	}
}
