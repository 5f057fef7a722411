// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCacheControl(t *testing.T) {
	tests := []struct {
		name   string
		policy string
	}{
		{"no store", NoStore},
		{"revalidate", Revalidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := CacheControl(tt.policy)(okHandler)

			rr := httptest.NewRecorder()
			wrapped.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

			if got := rr.Header().Get("Cache-Control"); got != tt.policy {
				t.Errorf("Cache-Control = %q, want %q", got, tt.policy)
			}
			if rr.Code != http.StatusOK {
				t.Errorf("Status = %d, want %d", rr.Code, http.StatusOK)
			}
		})
	}
}

func jsonHandler(body string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestCompress_LargeJSON(t *testing.T) {
	body := `{"projects":"` + strings.Repeat("x", 2048) + `"}`
	wrapped := Compress(1024)(jsonHandler(body, http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if ce := rr.Header().Get("Content-Encoding"); ce != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", ce)
	}
	zr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	got, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("reading gzip body: %v", err)
	}
	if string(got) != body {
		t.Error("decompressed body does not match")
	}
}

func TestCompress_Skips(t *testing.T) {
	large := strings.Repeat("x", 2048)

	tests := []struct {
		name        string
		accept      string
		contentType string
		body        string
	}{
		{"client without gzip", "", "application/json", large},
		{"small body", "gzip", "application/json", "{}"},
		{"binary type", "gzip", "image/png", large},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rr := httptest.NewRecorder()
			Compress(1024)(h).ServeHTTP(rr, req)

			if ce := rr.Header().Get("Content-Encoding"); ce != "" {
				t.Errorf("Content-Encoding = %q, want none", ce)
			}
			if rr.Body.String() != tt.body {
				t.Error("body changed")
			}
		})
	}
}

func TestCompress_KeepsStatusWithoutBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	Compress(0)(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestCompress_KeepsStatus(t *testing.T) {
	body := strings.Repeat("y", 2048)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	Compress(10)(jsonHandler(body, http.StatusNotFound)).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
