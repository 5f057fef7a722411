// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/catalog"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
)

// AdminHandler serves the admin API. Mutations answer 202 with the optimistic
// entity: the change is visible immediately and confirmed in the background.
type AdminHandler struct {
	store    *catalog.Store
	gate     *auth.Gate
	login    *middleware.LoginProtection
	recorder *logging.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewAdminHandler creates a new admin handler. login and recorder may be nil.
func NewAdminHandler(store *catalog.Store, gate *auth.Gate, login *middleware.LoginProtection, recorder *logging.Recorder, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		store:    store,
		gate:     gate,
		login:    login,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ip := middleware.ClientIP(r)
	if !h.gate.Login(r.Context(), in.Secret) {
		if h.login != nil {
			h.login.RecordFailedAttempt(ip)
		}
		writeJSONError(w, http.StatusUnauthorized, "Invalid secret")
		return
	}
	if h.login != nil {
		h.login.RecordSuccessfulLogin(ip)
	}
	writeJSONSuccess(w, map[string]any{"authenticated": true})
}

// Logout handles POST /admin/logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout(r.Context())
	writeJSONSuccess(w, map[string]any{"authenticated": false})
}

// Session handles GET /admin/session.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, map[string]any{"authenticated": h.gate.IsAuthenticated(r.Context())})
}

// CreateProject handles POST /admin/projects.
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in projectInput
	if !h.decodeValid(w, r, &in) {
		return
	}

	p := in.project(uuid.NewString(), h.now())
	h.store.AddProject(r.Context(), p)
	writeJSONStatus(w, http.StatusAccepted, map[string]any{"project": p})
}

// UpdateProject handles PUT /admin/projects/{id}.
func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.Project(id); !ok {
		writeJSONError(w, http.StatusNotFound, "Project not found")
		return
	}

	var in projectInput
	if !h.decodeValid(w, r, &in) {
		return
	}

	p := in.project(id, h.now())
	h.store.UpdateProject(r.Context(), p)
	writeJSONStatus(w, http.StatusAccepted, map[string]any{"project": p})
}

// DeleteProject handles DELETE /admin/projects/{id}.
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.store.DeleteProject(r.Context(), id)
	writeJSONStatus(w, http.StatusAccepted, map[string]any{"id": id})
}

// CreateCategory handles POST /admin/categories.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if !h.decodeValid(w, r, &in) {
		return
	}

	h.store.AddCategory(r.Context(), in.Name)
	writeJSONStatus(w, http.StatusAccepted, map[string]any{"category": model.NewCategory(in.Name)})
}

// DeleteCategory handles DELETE /admin/categories/{id}.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.store.DeleteCategory(r.Context(), id)
	writeJSONStatus(w, http.StatusAccepted, map[string]any{"id": id})
}

// UpdateSiteConfig handles PUT /admin/site-config.
func (h *AdminHandler) UpdateSiteConfig(w http.ResponseWriter, r *http.Request) {
	var in siteConfigInput
	if !h.decodeValid(w, r, &in) {
		return
	}

	cfg := in.siteConfig()
	h.store.UpdateSiteConfig(r.Context(), cfg)
	writeJSONStatus(w, http.StatusAccepted, map[string]any{"site": cfg})
}

// Seed handles POST /admin/seed.
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SeedDefaults(r.Context()); err != nil {
		writeJSONError(w, http.StatusBadGateway, "Seeding failed: "+err.Error())
		return
	}
	writeJSONSuccess(w, map[string]any{"message": "Default data seeded"})
}

// Diagnostics handles GET /admin/diagnostics.
func (h *AdminHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	entries := []logging.Entry{}
	if h.recorder != nil {
		entries = h.recorder.Entries()
	}
	writeJSONSuccess(w, map[string]any{"entries": entries})
}

// decodeValid decodes and validates the body, writing a 400 on failure.
func (h *AdminHandler) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}
