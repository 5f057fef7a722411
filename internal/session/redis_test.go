// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("FOLIO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: FOLIO_TEST_REDIS_URL not set")
	}
	return url
}

func TestNewRedisStore_RequiresURL(t *testing.T) {
	if _, err := NewRedisStore(DefaultRedisStoreOptions()); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestNewRedisStore_BadURL(t *testing.T) {
	opts := DefaultRedisStoreOptions()
	opts.URL = "not a url"
	if _, err := NewRedisStore(opts); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestRedisStore_Roundtrip(t *testing.T) {
	opts := DefaultRedisStoreOptions()
	opts.URL = skipIfNoRedis(t)
	opts.Prefix = "folio:test:"

	store, err := NewRedisStore(opts)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.CommitCtx(ctx, "tok", []byte("data"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	b, found, err := store.FindCtx(ctx, "tok")
	if err != nil || !found || string(b) != "data" {
		t.Fatalf("Find = %q, %v, %v", b, found, err)
	}

	if err := store.Delete("tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := store.Find("tok"); found {
		t.Error("session should be gone after delete")
	}

	// Already expired data is not stored.
	if err := store.Commit("old", []byte("x"), time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("Commit expired: %v", err)
	}
	if _, found, _ := store.Find("old"); found {
		t.Error("expired session should not be stored")
	}
}
