// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/folio-go/internal/catalog"
	"github.com/olegiv/folio-go/internal/version"
)

// authChecker reports whether the request session passed the auth gate.
type authChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store     *catalog.Store
	gate      authChecker
	startTime time.Time
}

// NewHealthHandler creates a new health handler. gate may be nil, in which
// case every caller gets the public response.
func NewHealthHandler(store *catalog.Store, gate authChecker) *HealthHandler {
	return &HealthHandler{
		store:     store,
		gate:      gate,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for unauthenticated callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus represents the overall health status (authenticated callers only).
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Uptime    string         `json:"uptime"`
	Version   version.Info   `json:"version"`
	Catalog   map[string]int `json:"catalog"`
	System    *SystemInfo    `json:"system,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
}

// Health handles GET /health.
// The cache always serves (defaults at worst), so the service reports healthy
// once it is up. Authenticated callers also get uptime, version and counts.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.gate == nil || !h.gate.IsAuthenticated(r.Context()) {
		writeJSON(w, http.StatusOK, HealthStatusPublic{Status: "healthy"})
		return
	}

	content := h.store.Snapshot()
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Get(),
		Catalog: map[string]int{
			"projects":   len(content.Projects),
			"categories": len(content.Categories),
		},
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			NumCPU:       runtime.NumCPU(),
		}
	}
	writeJSON(w, http.StatusOK, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
