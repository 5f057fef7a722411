// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/catalog"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/render"
)

// CatalogHandler serves the public, read-only catalog.
type CatalogHandler struct {
	store  *catalog.Store
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(store *catalog.Store, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{store: store, logger: logger}
}

// Site handles GET /api/site.
func (h *CatalogHandler) Site(w http.ResponseWriter, r *http.Request) {
	cfg := h.store.SiteConfig()

	headline, err := render.Headline(cfg.HeroHeadline)
	if err != nil {
		h.logger.Warn("failed to render headline", "category", logging.CategoryHTTP, "error", err)
		headline = ""
	}

	writeJSONSuccess(w, map[string]any{
		"site":          cfg,
		"headlineHtml":  headline,
		"headlineText":  render.HeadlineText(cfg.HeroHeadline),
		"contactLinks":  model.ContactLinks(cfg),
		"featuredCount": catalog.FeaturedCount,
	})
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.store.Categories()
	writeJSONSuccess(w, map[string]any{
		"categories": categories,
		"selections": catalog.Selections(categories),
	})
}

// Projects handles GET /api/projects?category=&id=.
// Selecting all categories explicitly redirects to the URL without the parameter.
func (h *CatalogHandler) Projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has(catalog.CategoryParam) && q.Get(catalog.CategoryParam) == catalog.AllCategories {
		catalog.SetSelection(q, catalog.AllCategories)
		u := *r.URL
		u.RawQuery = q.Encode()
		http.Redirect(w, r, u.RequestURI(), http.StatusFound)
		return
	}

	selection := catalog.SelectionFromQuery(q)
	projects := catalog.Filter(h.store.Projects(), selection)

	data := map[string]any{
		"selection": selection,
		"projects":  projects,
	}
	if id := q.Get("id"); id != "" {
		if p, ok := h.store.Project(id); ok {
			data["selected"] = p
		}
	}
	writeJSONSuccess(w, data)
}

// Featured handles GET /api/projects/featured.
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"projects": catalog.Featured(h.store.Projects(), catalog.FeaturedCount),
	})
}

// Project handles GET /api/projects/{id}.
func (h *CatalogHandler) Project(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.Project(chi.URLParam(r, "id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSONSuccess(w, map[string]any{"project": p})
}
