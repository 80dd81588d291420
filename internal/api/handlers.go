// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"net/http"
	"time"

	"github.com/skillify-dev/skillify/internal/auth"
	"github.com/skillify-dev/skillify/internal/catalog"
	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/recommend"
	"github.com/skillify-dev/skillify/internal/store"
	"github.com/skillify-dev/skillify/internal/validation"
)

// catalogCallTimeout caps how long a handler waits on the video catalog.
const catalogCallTimeout = 15 * time.Second

// Handlers bundles the dependencies every endpoint needs.
type Handlers struct {
	store       *store.Store
	catalog     catalog.API
	recommender *recommend.Aggregator
	jwt         *auth.JWTManager
	hasher      *auth.PasswordHasher
	cfg         *config.Config
}

// NewHandlers wires the handler set.
func NewHandlers(
	st *store.Store,
	cat catalog.API,
	rec *recommend.Aggregator,
	jwt *auth.JWTManager,
	hasher *auth.PasswordHasher,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		store:       st,
		catalog:     cat,
		recommender: rec,
		jwt:         jwt,
		hasher:      hasher,
		cfg:         cfg,
	}
}

// claims pulls the authenticated identity installed by the auth middleware.
// Routes behind Authenticate always have it; the ok guard covers mistakes
// in route wiring.
func claims(r *http.Request) (*auth.Claims, bool) {
	return auth.ClaimsFromContext(r.Context())
}

// decodeAndValidate decodes the body and runs struct validation, writing
// the error response itself. Returns false when the handler should stop.
func decodeAndValidate(rw *ResponseWriter, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		rw.BadRequest("Invalid request body: " + err.Error())
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
