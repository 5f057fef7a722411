// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/metrics"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/remote"
)

// Load fetches projects, categories and site config from the remote store and
// replaces the cache. It never fails: a collection whose fetch fails (or comes
// back empty) falls back to its default data as described per collection below.
//
//   - projects: replaced by remote rows (newest first); defaults only if the cache is empty
//   - categories: replaced by remote rows, or by defaults
//   - site config: replaced by the remote row, otherwise left as is
func (s *Store) Load(ctx context.Context) {
	s.load(ctx, metrics.ReasonStartup)
}

// Refresh reloads the catalog outside of startup, e.g. from the scheduler.
func (s *Store) Refresh(ctx context.Context) {
	s.load(ctx, metrics.ReasonScheduled)
}

func (s *Store) load(ctx context.Context, reason string) {
	s.metrics.Reload(reason)

	var changed Change
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("critical error loading catalog, using defaults",
				"category", logging.CategoryCatalog, "reason", reason, "panic", r)
			changed |= s.defaultsIfEmpty()
		}
		s.notify(changed)
	}()

	changed |= s.loadProjects(ctx)
	changed |= s.loadCategories(ctx)
	changed |= s.loadSiteConfig(ctx)

	s.logger.Debug("catalog loaded", "reason", reason, "changed", uint8(changed))
}

func (s *Store) loadProjects(ctx context.Context) Change {
	rows, err := s.remote.Select(ctx, remote.TableProjects, remote.Order{Column: "date", Desc: true})
	var projects []model.Project
	if err == nil {
		projects, err = mapRows(rows, model.ProjectFromRow)
	}
	if err != nil {
		s.readFailed(remote.TableProjects, remote.OpSelect, err)
		return s.defaultProjectsIfEmpty()
	}
	if len(projects) == 0 {
		return s.defaultProjectsIfEmpty()
	}

	s.mu.Lock()
	s.projects = projects
	s.baseProjects = slices.Clone(projects)
	s.mu.Unlock()
	return ProjectsChanged
}

func (s *Store) loadCategories(ctx context.Context) Change {
	rows, err := s.remote.Select(ctx, remote.TableCategories)
	var categories []model.Category
	if err == nil {
		categories, err = mapRows(rows, model.CategoryFromRow)
	}
	if err != nil {
		s.readFailed(remote.TableCategories, remote.OpSelect, err)
	}
	if err != nil || len(categories) == 0 {
		categories = model.DefaultCategories()
	}

	s.mu.Lock()
	s.categories = categories
	s.baseCategories = slices.Clone(categories)
	s.mu.Unlock()
	return CategoriesChanged
}

func (s *Store) loadSiteConfig(ctx context.Context) Change {
	row, err := s.remote.SelectOne(ctx, remote.TableSiteConfig, remote.SiteConfigKey)
	var cfg model.SiteConfig
	if err == nil {
		cfg, err = model.SiteConfigFromRow(row)
	}
	if err != nil {
		s.readFailed(remote.TableSiteConfig, remote.OpSelectOne, err)
		return 0
	}

	s.mu.Lock()
	s.siteConfig = cfg
	s.baseSiteConfig = cfg
	s.mu.Unlock()
	return SiteConfigChanged
}

// defaultProjectsIfEmpty installs the default projects when the cache holds none.
func (s *Store) defaultProjectsIfEmpty() Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.projects) > 0 {
		return 0
	}
	s.projects = model.DefaultProjects()
	s.baseProjects = model.DefaultProjects()
	return ProjectsChanged
}

// defaultsIfEmpty is the fallback after an unexpected failure during load.
func (s *Store) defaultsIfEmpty() Change {
	changed := s.defaultProjectsIfEmpty()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.categories) == 0 {
		s.categories = model.DefaultCategories()
		s.baseCategories = model.DefaultCategories()
		changed |= CategoriesChanged
	}
	return changed
}

// revert drops optimistic edits, restoring the state of the last load.
func (s *Store) revert() {
	s.mu.Lock()
	s.projects = slices.Clone(s.baseProjects)
	s.categories = slices.Clone(s.baseCategories)
	s.siteConfig = s.baseSiteConfig
	s.mu.Unlock()
}

func (s *Store) readFailed(table remote.Table, op remote.Op, err error) {
	if errors.Is(err, remote.ErrNotFound) && table == remote.TableSiteConfig {
		s.logger.Info("no site config stored, keeping current", "category", logging.CategoryCatalog)
		return
	}
	s.logger.Warn("remote read failed, using fallback data",
		"category", logging.CategoryCatalog, "table", string(table), "op", string(op), "error", err)
	s.metrics.RemoteError(string(table), string(op))
}

func mapRows[T any](rows []remote.Row, fn func(remote.Row) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, r := range rows {
		v, err := fn(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
