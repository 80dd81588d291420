// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/models"
)

type contextKey string

// ClaimsContextKey is where the middleware stores validated claims.
const ClaimsContextKey contextKey = "auth_claims"

// ClaimsFromContext retrieves the authenticated claims installed by
// Authenticate. The second return is false on unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

// Authenticate validates the Bearer token and installs the claims into the
// request context. Requests without a valid token get 401.
func (m *JWTManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearerToken(r)
		if tokenString == "" {
			unauthorized(w, "Missing or malformed Authorization header")
			return
		}

		claims, err := m.ValidateToken(tokenString)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only admin-role claims through. Must run after
// Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			unauthorized(w, "Authentication required")
			return
		}
		if claims.Role != models.RoleAdmin {
			forbidden(w, "Administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken pulls the token out of "Authorization: Bearer <tok>".
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// unauthorized and forbidden write minimal envelope errors without pulling
// in the api package (which would create an import cycle).

func unauthorized(w http.ResponseWriter, message string) {
	writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func forbidden(w http.ResponseWriter, message string) {
	writeAuthError(w, http.StatusForbidden, "FORBIDDEN", message)
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
