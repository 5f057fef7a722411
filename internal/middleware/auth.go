// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the admin gate, CSRF,
// rate limiting and security headers.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// Authenticator reports whether the request's session passed the admin gate.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// RequireAuth rejects requests whose session is not authenticated with 401.
// It must run inside the session manager's LoadAndSave.
func RequireAuth(gate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.IsAuthenticated(r.Context()) {
				writeJSONError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}
