// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"slices"

	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/metrics"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/remote"
)

// Mutations apply to the cache immediately and return before the remote write
// completes. When the write fails the error is logged, the optimistic edit is
// discarded and the whole catalog is reloaded. Callers are never told about
// remote failures.

// AddProject puts p at the front of the cached list and inserts it remotely.
// The caller supplies a unique id.
func (s *Store) AddProject(ctx context.Context, p model.Project) {
	if !s.accepting("add project") {
		return
	}

	s.mu.Lock()
	s.projects = append([]model.Project{p}, s.projects...)
	s.mu.Unlock()
	s.notify(ProjectsChanged)

	s.dispatch(ctx, "adding project", remote.TableProjects, remote.OpInsert, func(ctx context.Context) error {
		return s.remote.Insert(ctx, remote.TableProjects, model.ProjectRow(p))
	})
}

// DeleteProject removes every cached project with the given id and deletes it remotely.
func (s *Store) DeleteProject(ctx context.Context, id string) {
	if !s.accepting("delete project") {
		return
	}

	s.mu.Lock()
	s.projects = slices.DeleteFunc(slices.Clone(s.projects), func(p model.Project) bool { return p.ID == id })
	s.mu.Unlock()
	s.notify(ProjectsChanged)

	s.dispatch(ctx, "deleting project", remote.TableProjects, remote.OpDelete, func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.TableProjects, id)
	})
}

// UpdateProject replaces the cached project with p.ID in place and updates it
// remotely. An unknown id leaves the cache unchanged but still issues the update.
func (s *Store) UpdateProject(ctx context.Context, p model.Project) {
	if !s.accepting("update project") {
		return
	}

	s.mu.Lock()
	projects := slices.Clone(s.projects)
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
		}
	}
	s.projects = projects
	s.mu.Unlock()
	s.notify(ProjectsChanged)

	s.dispatch(ctx, "updating project", remote.TableProjects, remote.OpUpdate, func(ctx context.Context) error {
		return s.remote.Update(ctx, remote.TableProjects, p.ID, model.ProjectUpdateRow(p))
	})
}

// AddCategory appends a category named name, with an id derived from the name,
// and inserts it remotely. An empty name is ignored. No uniqueness check is made:
// a colliding id is rejected by the remote store and dropped by the reload.
func (s *Store) AddCategory(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if !s.accepting("add category") {
		return
	}

	c := model.NewCategory(name)
	s.mu.Lock()
	s.categories = append(slices.Clone(s.categories), c)
	s.mu.Unlock()
	s.notify(CategoriesChanged)

	s.dispatch(ctx, "adding category", remote.TableCategories, remote.OpInsert, func(ctx context.Context) error {
		return s.remote.Insert(ctx, remote.TableCategories, model.CategoryRow(c))
	})
}

// DeleteCategory removes the category with the given id and deletes it remotely.
// Projects referencing the category name are left alone.
func (s *Store) DeleteCategory(ctx context.Context, id string) {
	if !s.accepting("delete category") {
		return
	}

	s.mu.Lock()
	s.categories = slices.DeleteFunc(slices.Clone(s.categories), func(c model.Category) bool { return c.ID == id })
	s.mu.Unlock()
	s.notify(CategoriesChanged)

	s.dispatch(ctx, "deleting category", remote.TableCategories, remote.OpDelete, func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.TableCategories, id)
	})
}

// UpdateSiteConfig replaces the site config and updates the singleton row remotely.
func (s *Store) UpdateSiteConfig(ctx context.Context, cfg model.SiteConfig) {
	if !s.accepting("update site config") {
		return
	}

	s.mu.Lock()
	s.siteConfig = cfg
	s.mu.Unlock()
	s.notify(SiteConfigChanged)

	s.dispatch(ctx, "updating site config", remote.TableSiteConfig, remote.OpUpdate, func(ctx context.Context) error {
		return s.remote.Update(ctx, remote.TableSiteConfig, remote.SiteConfigKey, model.SiteConfigRow(cfg))
	})
}

// accepting reports whether the store still takes mutations.
func (s *Store) accepting(action string) bool {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.closed {
		s.logger.Warn("catalog store closed, dropping mutation", "category", logging.CategoryCatalog, "action", action)
		return false
	}
	return true
}

// dispatch runs the remote write in the background. The write outlives the
// caller's context cancellation but keeps its values.
func (s *Store) dispatch(ctx context.Context, action string, table remote.Table, op remote.Op, call func(context.Context) error) {
	s.lifecycle.Lock()
	if s.closed {
		s.lifecycle.Unlock()
		return
	}
	s.inflight.Add(1)
	s.lifecycle.Unlock()

	ctx = context.WithoutCancel(ctx)
	go func() {
		defer s.inflight.Done()

		if err := call(ctx); err != nil {
			s.logger.Error("error "+action,
				"category", logging.CategoryCatalog, "table", string(table), "op", string(op), "error", err)
			s.metrics.RemoteError(string(table), string(op))
			s.resync(ctx)
		}
	}()
}

// resync discards optimistic edits and reloads from the remote store.
func (s *Store) resync(ctx context.Context) {
	s.revert()
	s.notify(AllChanged)
	s.load(ctx, metrics.ReasonRecovery)
}
