// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// Flags stores auth flags in the request's session. The context passed to
// each method must come from a request wrapped by the manager's LoadAndSave.
type Flags struct {
	sm *scs.SessionManager
}

// NewFlags creates a flag store over sm.
func NewFlags(sm *scs.SessionManager) *Flags {
	return &Flags{sm: sm}
}

// Get returns the flag value and whether it exists.
func (f *Flags) Get(ctx context.Context, key string) (string, bool) {
	if !f.sm.Exists(ctx, key) {
		return "", false
	}
	return f.sm.GetString(ctx, key), true
}

// Set stores a flag.
func (f *Flags) Set(ctx context.Context, key, value string) error {
	f.sm.Put(ctx, key, value)
	return nil
}

// Remove deletes a flag.
func (f *Flags) Remove(ctx context.Context, key string) error {
	f.sm.Remove(ctx, key)
	return nil
}

// Renew issues a new session token, keeping the session data.
func (f *Flags) Renew(ctx context.Context) error {
	return f.sm.RenewToken(ctx)
}
