// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// Health reports process liveness. The document store is embedded, so a
// serving process implies a working store.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
	})
}
