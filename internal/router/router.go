// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// atelier API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"atelier/internal/handlers"
	"atelier/internal/middleware"
	"atelier/internal/session"
)

// Login attempts per IP per window before 429s start.
const (
	loginRateLimit  = 10
	loginRateWindow = 5 * time.Minute
)

// Deps bundles the handler groups the router wires up.
type Deps struct {
	Sessions      *session.Store
	Auth          *handlers.Auth
	Public        *handlers.Public
	AdminProjects *handlers.AdminProjects
	AdminArchives *handlers.AdminArchives
	AdminPosts    *handlers.AdminPosts
	AdminIntake   *handlers.AdminIntake
	AdminUploads  *handlers.AdminUploads
	LoginLimiter  *middleware.RateLimiter
}

// NewLoginLimiter builds the rate limiter applied to login attempts.
// The caller owns it and should Stop() it on shutdown.
func NewLoginLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	r.Get("/health", d.Public.Health)

	// Public content and intake. Intake forms carry no rate limit by
	// design.
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", d.Public.ListProjects)
		r.Get("/projects/{slug}", d.Public.GetProject)
		r.Get("/archives", d.Public.ListArchives)
		r.Get("/archives/{slug}", d.Public.GetArchive)
		r.Get("/posts", d.Public.ListPosts)
		r.Get("/posts/{slug}", d.Public.GetPost)
		r.Post("/inquiries", d.Public.CreateInquiry)
		r.Post("/feedback", d.Public.CreateFeedback)
	})

	// Admin routes — session cookie, CSRF, admin role.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Login is reachable without a session, but rate-limited.
		r.Group(func(r chi.Router) {
			if d.LoginLimiter != nil {
				r.Use(d.LoginLimiter.Middleware)
			}
			r.Post("/login", d.Auth.Login)
		})
		r.Post("/logout", d.Auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", d.Auth.TwoFASetup)
			r.Post("/2fa/verify", d.Auth.TwoFAVerify)
		})

		// Authenticated, 2FA-verified, admin-role area. Every content
		// and intake mutation lives behind all three gates.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", d.AdminProjects.List)
				r.Post("/", d.AdminProjects.Create)
				r.Post("/reorder", d.AdminProjects.Reorder)
				r.Get("/{id}", d.AdminProjects.Get)
				r.Patch("/{id}", d.AdminProjects.Update)
				r.Delete("/{id}", d.AdminProjects.Delete)
			})

			r.Route("/archives", func(r chi.Router) {
				r.Get("/", d.AdminArchives.List)
				r.Post("/", d.AdminArchives.Create)
				r.Get("/{id}", d.AdminArchives.Get)
				r.Patch("/{id}", d.AdminArchives.Update)
				r.Delete("/{id}", d.AdminArchives.Delete)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", d.AdminPosts.List)
				r.Post("/", d.AdminPosts.Create)
				r.Get("/{id}", d.AdminPosts.Get)
				r.Patch("/{id}", d.AdminPosts.Update)
				r.Delete("/{id}", d.AdminPosts.Delete)
			})

			r.Post("/uploads/presign", d.AdminUploads.Presign)
			r.Delete("/uploads", d.AdminUploads.Delete)

			r.Route("/inquiries", func(r chi.Router) {
				r.Get("/", d.AdminIntake.ListInquiries)
				r.Patch("/{id}", d.AdminIntake.SetInquiryStatus)
				r.Delete("/{id}", d.AdminIntake.DeleteInquiry)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", d.AdminIntake.ListFeedback)
				r.Patch("/{id}", d.AdminIntake.SetFeedbackStatus)
				r.Delete("/{id}", d.AdminIntake.DeleteFeedback)
			})
		})
	})

	return r
}
