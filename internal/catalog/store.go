// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog holds the in-memory mirror of the remote catalog (projects,
// categories, site config). Reads are served from memory; mutations update
// memory first and confirm against the remote store in the background. A failed
// remote write discards the optimistic change and reloads everything.
package catalog

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/olegiv/folio-go/internal/metrics"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/remote"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *metrics.Catalog) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// Store is the session-scoped catalog cache and the sole caller of the remote store.
//
// Lifecycle: New, then Load once, then any number of reads and mutations, then
// Close. Close waits for in-flight remote writes (and any recovery reloads they
// trigger); the remote store must stay open until Close returns.
type Store struct {
	remote  remote.Store
	logger  *slog.Logger
	metrics *metrics.Catalog

	mu         sync.RWMutex
	projects   []model.Project
	categories []model.Category
	siteConfig model.SiteConfig

	// Last state produced by a load (remote rows or defaults), without optimistic edits.
	baseProjects   []model.Project
	baseCategories []model.Category
	baseSiteConfig model.SiteConfig

	hooks hooks

	lifecycle sync.Mutex
	closed    bool
	inflight  sync.WaitGroup
}

// New creates a store over the remote. The cache starts with no projects, no
// categories and the default site config until Load runs.
func New(r remote.Store, opts ...Option) *Store {
	s := &Store{
		remote:         r,
		logger:         slog.Default(),
		siteConfig:     model.DefaultSiteConfig(),
		baseSiteConfig: model.DefaultSiteConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Projects returns a copy of the cached projects, newest first.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

// Project returns the cached project with the given id.
func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.projects, func(p model.Project) bool { return p.ID == id })
	if i < 0 {
		return model.Project{}, false
	}
	return s.projects[i], true
}

// Categories returns a copy of the cached categories.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// SiteConfig returns the cached site config. It is never empty.
func (s *Store) SiteConfig() model.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteConfig
}

// Snapshot returns a consistent copy of the whole catalog.
func (s *Store) Snapshot() model.SiteContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.SiteContent{
		Projects:   slices.Clone(s.projects),
		Categories: slices.Clone(s.categories),
		SiteConfig: s.siteConfig,
	}
}

// Wait blocks until every in-flight remote write, and the reload a failed write
// triggers, has finished. Callers must not issue mutations concurrently with Wait.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Close stops accepting mutations and waits for in-flight remote writes.
func (s *Store) Close() error {
	s.lifecycle.Lock()
	s.closed = true
	s.lifecycle.Unlock()

	s.inflight.Wait()
	return nil
}

// gauges publishes collection sizes.
func (s *Store) gauges() {
	if s.metrics == nil {
		return
	}
	s.mu.RLock()
	np, nc := len(s.projects), len(s.categories)
	s.mu.RUnlock()
	s.metrics.Items("projects", np)
	s.metrics.Items("categories", nc)
}
