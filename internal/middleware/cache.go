// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import "net/http"

// Cache-Control policies.
const (
	// NoStore keeps admin responses out of every cache.
	NoStore = "no-store"
	// Revalidate lets clients keep public reads but check back each time,
	// so catalog edits show up on the next request.
	Revalidate = "no-cache"
)

// CacheControl sets the Cache-Control header on every response.
func CacheControl(policy string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", policy)
			next.ServeHTTP(w, r)
		})
	}
}
