// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillify-dev/skillify/internal/auth"
	"github.com/skillify-dev/skillify/internal/config"
)

// SetupRouter assembles the chi router: global middleware, public routes,
// the authenticated API group and the admin group.
func SetupRouter(h *Handlers, jwtManager *auth.JWTManager, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RequestIDWithLogging)
	r.Use(chimiddleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !cfg.Security.RateLimitDisabled {
		r.Use(httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow))
	}

	// Public surface.
	r.Get("/api/v1/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.Uploads.Dir))))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.With(LoginRateLimiter()).Post("/login", h.Login)
	})

	// Authenticated surface.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtManager.Authenticate)

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", h.ListSkills)
			r.Post("/", h.CreateSkill)
			r.Put("/{id}", h.UpdateSkill)
			r.Delete("/{id}", h.DeleteSkill)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.ListGoals)
			r.Post("/", h.CreateGoal)
			r.Put("/{id}", h.UpdateGoal)
			r.Delete("/{id}", h.DeleteGoal)
			r.Post("/{id}/resources", h.AddGoalResource)
			r.Delete("/{id}/resources/{link}", h.RemoveGoalResource)
		})

		r.Route("/resources", func(r chi.Router) {
			r.Get("/recommended", h.RecommendedResources)
			r.Get("/{id}", h.ResourceByID)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Post("/", h.CreatePost)
			r.Get("/{id}", h.GetPost)
			r.Post("/{id}/comments", h.AddComment)
			r.Post("/{id}/like", h.ToggleLike)
			r.Post("/{id}/flags", h.FlagPost)
			r.Post("/{id}/comments/{commentID}/flags", h.FlagComment)
		})

		r.Route("/concerns", func(r chi.Router) {
			r.Get("/", h.ListConcerns)
			r.Post("/", h.CreateConcern)
			r.Get("/{id}", h.GetConcern)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.ListNotifications)
			r.Post("/{id}/read", h.MarkNotificationRead)
			r.Delete("/{id}", h.DeleteNotification)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateMe)
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Get("/users", h.AdminListUsers)
			r.Put("/users/{id}", h.AdminUpdateUser)
			r.Delete("/users/{id}", h.AdminDeleteUser)

			r.Get("/posts/flagged", h.AdminFlaggedPosts)
			r.Put("/posts/{id}/flags/{flagID}", h.AdminResolveFlag)
			r.Delete("/posts/{id}", h.AdminDeletePost)

			r.Get("/concerns", h.AdminListConcerns)
			r.Post("/concerns/{id}/replies", h.AdminReplyConcern)
			r.Put("/concerns/{id}/status", h.AdminSetConcernStatus)

			r.Get("/reports", h.AdminReports)
		})
	})

	return r
}
