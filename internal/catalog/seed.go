// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/metrics"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/remote"
)

// SeedDefaults writes the default projects and categories to the remote store,
// then reloads. Existing rows with the same keys are overwritten; other rows are
// kept. The site config row is only created when it is missing, from the current
// in-memory value; a stored config is never replaced. Unlike mutations it blocks
// and reports the first remote error.
func (s *Store) SeedDefaults(ctx context.Context) error {
	projects := model.DefaultProjects()
	projectRows := make([]remote.Row, 0, len(projects))
	for _, p := range projects {
		projectRows = append(projectRows, model.ProjectRow(p))
	}
	if err := s.seed(ctx, remote.TableProjects, projectRows); err != nil {
		return err
	}

	categories := model.DefaultCategories()
	categoryRows := make([]remote.Row, 0, len(categories))
	for _, c := range categories {
		categoryRows = append(categoryRows, model.CategoryRow(c))
	}
	if err := s.seed(ctx, remote.TableCategories, categoryRows); err != nil {
		return err
	}

	_, err := s.remote.SelectOne(ctx, remote.TableSiteConfig, remote.SiteConfigKey)
	switch {
	case errors.Is(err, remote.ErrNotFound):
		row := model.SiteConfigSingletonRow(s.SiteConfig())
		if err := s.seed(ctx, remote.TableSiteConfig, []remote.Row{row}); err != nil {
			return err
		}
	case err != nil:
		s.logger.Error("error reading site config before seeding",
			"category", logging.CategoryCatalog, "table", string(remote.TableSiteConfig), "op", string(remote.OpSelectOne), "error", err)
		s.metrics.RemoteError(string(remote.TableSiteConfig), string(remote.OpSelectOne))
		return fmt.Errorf("seeding %s: %w", remote.TableSiteConfig, err)
	}

	s.logger.Info("catalog seeded with defaults",
		"category", logging.CategoryCatalog, "projects", len(projectRows), "categories", len(categoryRows))
	s.load(ctx, metrics.ReasonSeed)
	return nil
}

func (s *Store) seed(ctx context.Context, table remote.Table, rows []remote.Row) error {
	if err := s.remote.Upsert(ctx, table, rows...); err != nil {
		s.logger.Error("error seeding catalog",
			"category", logging.CategoryCatalog, "table", string(table), "op", string(remote.OpUpsert), "error", err)
		s.metrics.RemoteError(string(table), string(remote.OpUpsert))
		return fmt.Errorf("seeding %s: %w", table, err)
	}
	return nil
}
