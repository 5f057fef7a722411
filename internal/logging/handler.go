// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that keeps recent warnings and errors
// in memory so admins can inspect remote failures without shell access.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Diagnostic categories.
const (
	CategoryCatalog = "catalog"
	CategoryAuth    = "auth"
	CategoryHTTP    = "http"
	CategorySystem  = "system"
)

// Entry is one recorded log record.
type Entry struct {
	Time     time.Time         `json:"time"`
	Level    string            `json:"level"`
	Category string            `json:"category"`
	Message  string            `json:"message"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// Recorder is a bounded ring of diagnostic entries. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// DefaultRecorderSize is the ring size used when NewRecorder gets size <= 0.
const DefaultRecorderSize = 200

// NewRecorder creates a recorder holding at most size entries.
func NewRecorder(size int) *Recorder {
	if size <= 0 {
		size = DefaultRecorderSize
	}
	return &Recorder{entries: make([]Entry, size)}
}

// Add appends an entry, evicting the oldest when full.
func (r *Recorder) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

// Entries returns recorded entries, newest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.next
	if r.full {
		n = len(r.entries)
	}
	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.entries)
	}
	return r.next
}

// DiagnosticsHandler is a slog.Handler that wraps another handler and also
// records WARN and ERROR level logs into a Recorder.
type DiagnosticsHandler struct {
	inner    slog.Handler
	recorder *Recorder
	level    slog.Level // Minimum level to record (default: WARN)
	attrs    []slog.Attr
}

// NewDiagnosticsHandler creates a handler recording WARN and above.
func NewDiagnosticsHandler(inner slog.Handler, recorder *Recorder) *DiagnosticsHandler {
	return NewDiagnosticsHandlerWithLevel(inner, recorder, slog.LevelWarn)
}

// NewDiagnosticsHandlerWithLevel creates a handler with a custom minimum level.
func NewDiagnosticsHandlerWithLevel(inner slog.Handler, recorder *Recorder, level slog.Level) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		inner:    inner,
		recorder: recorder,
		level:    level,
	}
}

// Enabled implements slog.Handler.
func (h *DiagnosticsHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *DiagnosticsHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.record(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *DiagnosticsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DiagnosticsHandler{
		inner:    h.inner.WithAttrs(attrs),
		recorder: h.recorder,
		level:    h.level,
		attrs:    merged,
	}
}

// WithGroup implements slog.Handler.
func (h *DiagnosticsHandler) WithGroup(name string) slog.Handler {
	return &DiagnosticsHandler{
		inner:    h.inner.WithGroup(name),
		recorder: h.recorder,
		level:    h.level,
		attrs:    h.attrs,
	}
}

func (h *DiagnosticsHandler) record(r slog.Record) {
	attrs := make(map[string]string, r.NumAttrs()+len(h.attrs))
	category := ""

	collect := func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return true
		}
		attrs[a.Key] = a.Value.String()
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	if category == "" {
		category = inferCategory(r.Message)
	}
	if len(attrs) == 0 {
		attrs = nil
	}

	h.recorder.Add(Entry{
		Time:     r.Time,
		Level:    r.Level.String(),
		Category: category,
		Message:  r.Message,
		Attrs:    attrs,
	})
}

// inferCategory guesses a category from the message when none was attached.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") || strings.Contains(msg, "auth"):
		return CategoryAuth
	case strings.Contains(msg, "project") || strings.Contains(msg, "categor") ||
		strings.Contains(msg, "site config") || strings.Contains(msg, "catalog"):
		return CategoryCatalog
	case strings.Contains(msg, "request") || strings.Contains(msg, "csrf"):
		return CategoryHTTP
	default:
		return CategorySystem
	}
}
