// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import "sync"

// Change is a bit set of collections replaced in the cache.
type Change uint8

// Collections that can change.
const (
	ProjectsChanged Change = 1 << iota
	CategoriesChanged
	SiteConfigChanged

	AllChanged = ProjectsChanged | CategoriesChanged | SiteConfigChanged
)

// Has reports whether c includes every bit of other.
func (c Change) Has(other Change) bool {
	return c&other == other
}

// Listener is called after the cache changed. It runs on the goroutine that
// made the change and must not block.
type Listener func(Change)

// hooks manages change listeners.
type hooks struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	h := &s.hooks
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listeners == nil {
		h.listeners = make(map[int]Listener)
	}
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners, id)
		})
	}
}

// notify calls every listener with the change. Never called while holding s.mu.
func (s *Store) notify(c Change) {
	if c == 0 {
		return
	}
	s.gauges()

	h := &s.hooks
	h.mu.RLock()
	fns := make([]Listener, 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}
