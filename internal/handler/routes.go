// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/catalog"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/middleware"
)

// RouterDeps are the collaborators the router wires together.
type RouterDeps struct {
	Catalog  *catalog.Store
	Gate     *auth.Gate
	Sessions *scs.SessionManager

	// LoginProtection and RateLimiter are optional.
	LoginProtection *middleware.LoginProtection
	RateLimiter     *middleware.RateLimiter

	CSRF     middleware.CSRFConfig
	Security middleware.SecurityHeadersConfig

	// RequestTimeout bounds each request; zero disables it.
	RequestTimeout time.Duration

	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
	Recorder *logging.Recorder
	Logger   *slog.Logger
}

// compressMinSize is the smallest API response worth compressing.
const compressMinSize = 1024

// NewRouter builds the HTTP routes.
func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	catalogHandler := NewCatalogHandler(d.Catalog, logger)
	adminHandler := NewAdminHandler(d.Catalog, d.Gate, d.LoginProtection, d.Recorder, logger)
	healthHandler := NewHealthHandler(d.Catalog, d.Gate)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	// Timeout runs the rest of the chain in its own goroutine, so it wraps Recoverer.
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RedirectSlashes)
	r.Use(middleware.SecurityHeaders(d.Security))
	r.Use(d.Sessions.LoadAndSave)

	r.Get("/health/live", healthHandler.Liveness)

	// Public
	r.Group(func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware())
		}
		r.Get("/health", healthHandler.Health)

		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.CacheControl(middleware.Revalidate))
			r.Use(middleware.Compress(compressMinSize))

			r.Get("/site", catalogHandler.Site)
			r.Get("/categories", catalogHandler.Categories)
			r.Get("/projects", catalogHandler.Projects)
			r.Get("/projects/featured", catalogHandler.Featured)
			r.Get("/projects/{id}", catalogHandler.Project)
		})

		if d.Gatherer != nil {
			r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
		}
	})

	// Admin
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CacheControl(middleware.NoStore))
		r.Use(middleware.CSRF(d.CSRF))

		r.Group(func(r chi.Router) {
			if d.LoginProtection != nil {
				r.Use(d.LoginProtection.Middleware())
			}
			r.Post("/login", adminHandler.Login)
		})
		r.Post("/logout", adminHandler.Logout)
		r.Get("/session", adminHandler.Session)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Gate))

			r.Post("/projects", adminHandler.CreateProject)
			r.Put("/projects/{id}", adminHandler.UpdateProject)
			r.Delete("/projects/{id}", adminHandler.DeleteProject)
			r.Post("/categories", adminHandler.CreateCategory)
			r.Delete("/categories/{id}", adminHandler.DeleteCategory)
			r.Put("/site-config", adminHandler.UpdateSiteConfig)
			r.Post("/seed", adminHandler.Seed)
			r.Get("/diagnostics", adminHandler.Diagnostics)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// requestLogger logs each request at debug level with its chi request id.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"category", logging.CategoryHTTP,
				"request_id", chimw.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
			)
		})
	}
}
