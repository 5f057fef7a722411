// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth gates the admin surface behind one shared secret. It is a
// capability check, not an identity system: there are no users or roles, and
// anyone holding the secret is an admin for the rest of their session.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olegiv/folio-go/internal/logging"
)

// FlagKey is the persisted flag marking a session as authenticated.
const FlagKey = "folio_auth"

// flagValue is the only value that counts as authenticated.
const flagValue = "true"

// FlagStore persists per-session flags.
type FlagStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Renewer is implemented by flag stores that can rotate their session token.
// The gate renews on a successful login.
type Renewer interface {
	Renew(ctx context.Context) error
}

// Gate checks the admin secret and tracks the authenticated flag.
type Gate struct {
	verifier Verifier
	flags    FlagStore
	logger   *slog.Logger
}

// NewGate creates a gate. A nil logger uses slog.Default().
func NewGate(verifier Verifier, flags FlagStore, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{verifier: verifier, flags: flags, logger: logger}
}

// Login checks secret. On a match it persists the authenticated flag and
// returns true. On a mismatch it returns false and changes nothing.
func (g *Gate) Login(ctx context.Context, secret string) bool {
	if !g.verifier.Verify(secret) {
		g.logger.Warn("admin login failed", "category", logging.CategoryAuth)
		return false
	}

	if r, ok := g.flags.(Renewer); ok {
		if err := r.Renew(ctx); err != nil {
			g.logger.Error("failed to renew session on login", "category", logging.CategoryAuth, "error", err)
			return false
		}
	}
	if err := g.flags.Set(ctx, FlagKey, flagValue); err != nil {
		g.logger.Error("failed to persist auth flag", "category", logging.CategoryAuth, "error", err)
		return false
	}

	g.logger.Info("admin logged in", "category", logging.CategoryAuth)
	return true
}

// Logout removes the authenticated flag.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.flags.Remove(ctx, FlagKey); err != nil {
		g.logger.Error("failed to remove auth flag", "category", logging.CategoryAuth, "error", err)
		return
	}
	g.logger.Info("admin logged out", "category", logging.CategoryAuth)
}

// IsAuthenticated reports whether the flag is present and set.
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	v, ok := g.flags.Get(ctx, FlagKey)
	return ok && v == flagValue
}

// MemoryFlags is a FlagStore for a single process-local session.
type MemoryFlags struct {
	mu    sync.RWMutex
	flags map[string]string
}

// NewMemoryFlags creates an empty flag store.
func NewMemoryFlags() *MemoryFlags {
	return &MemoryFlags{flags: make(map[string]string)}
}

// Get implements FlagStore.
func (m *MemoryFlags) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.flags[key]
	return v, ok
}

// Set implements FlagStore.
func (m *MemoryFlags) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
	return nil
}

// Remove implements FlagStore.
func (m *MemoryFlags) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flags, key)
	return nil
}
