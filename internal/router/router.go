// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// storefront API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"lightshop/internal/handlers"
	"lightshop/internal/middleware"
)

// Handlers bundles the handler groups mounted by the router.
type Handlers struct {
	Products *handlers.Products
	Settings *handlers.Settings
	Auth     *handlers.Auth
	Media    *handlers.Media
	Pages    *handlers.Pages
	Telegram *handlers.Telegram
}

// Options carries the cross-cutting dependencies of the middleware chain.
type Options struct {
	Sessions      middleware.SessionGetter
	Gate          middleware.TokenChecker
	CORSOrigin    string
	SecureCookies bool

	// TrustedProxies may set the client address through X-Forwarded-For.
	TrustedProxies []netip.Prefix

	// UnlockLimiter throttles panel unlock attempts. Optional.
	UnlockLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP(opts.TrustedProxies))
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(opts.SecureCookies))
	r.Use(middleware.CORS(opts.CORSOrigin))

	r.Get("/health", healthHandler)
	r.Get("/theme.css", h.Settings.ThemeCSS)

	r.Route("/api", func(r chi.Router) {
		// Public storefront API.
		r.Get("/products", h.Products.List)
		r.Get("/products/{id}", h.Products.Get)
		r.Get("/site", h.Settings.Site)
		r.Get("/media", h.Media.PublicList)
		r.Get("/hero", h.Pages.Hero)
		r.Get("/delivery", h.Pages.Delivery)
		r.Post("/orders", h.Pages.Order)

		r.Get("/telegram/webhook", h.Telegram.Status)
		r.Post("/telegram/webhook", h.Telegram.Webhook)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.LoadSession(opts.Sessions))

			// Gate, reachable while the panel is locked.
			r.Group(func(r chi.Router) {
				r.Use(middleware.NewCSRF(opts.SecureCookies))
				r.Get("/session", h.Auth.Status)
				if opts.UnlockLimiter != nil {
					r.With(opts.UnlockLimiter.Middleware).Post("/unlock", h.Auth.Unlock)
				} else {
					r.Post("/unlock", h.Auth.Unlock)
				}
			})

			// Token or unlocked session required. CSRF runs after
			// RequireAdmin so token clients skip it.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(opts.Gate))
				r.Use(middleware.NewCSRF(opts.SecureCookies))

				r.Post("/lock", h.Auth.Lock)
				r.Get("/totp.png", h.Auth.TOTPQRCode)

				r.Route("/products", func(r chi.Router) {
					r.Post("/", h.Products.Create)
					r.Put("/", h.Products.Update)
					r.Delete("/", h.Products.Delete)
					r.Get("/export.xlsx", h.Products.Export)
					r.Post("/import", h.Products.Import)
					r.Put("/{id}", h.Products.Update)
					r.Delete("/{id}", h.Products.Delete)
				})

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", h.Settings.Get)
					r.Post("/", h.Settings.Save)
					r.Post("/reset", h.Settings.Reset)
				})

				r.Route("/media", func(r chi.Router) {
					r.Get("/", h.Media.Folders)
					r.Get("/{folderID}", h.Media.Folder)
					r.Post("/{folderID}", h.Media.Upload)
					r.Delete("/{folderID}/{imageID}", h.Media.Delete)
				})

				r.Post("/hero/{action}", h.Pages.HeroControl)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
