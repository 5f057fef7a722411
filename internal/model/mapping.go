// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"

	"github.com/olegiv/folio-go/internal/remote"
)

// Column names differ from field names (image_url vs ImageURL); each entity has
// one function per direction and nothing else translates.

// ProjectRow maps a project to a projects row.
func ProjectRow(p Project) remote.Row {
	return remote.Row{
		"id":          p.ID,
		"title":       p.Title,
		"category":    p.Category,
		"description": p.Description,
		"image_url":   p.ImageURL,
		"date":        p.Date,
	}
}

// ProjectUpdateRow maps a project to the columns written by an update (no key).
func ProjectUpdateRow(p Project) remote.Row {
	row := ProjectRow(p)
	delete(row, remote.KeyColumn)
	return row
}

// ProjectFromRow maps a projects row to a project.
func ProjectFromRow(row remote.Row) (Project, error) {
	var p Project
	if err := scan(row, map[string]*string{
		"id":          &p.ID,
		"title":       &p.Title,
		"category":    &p.Category,
		"description": &p.Description,
		"image_url":   &p.ImageURL,
		"date":        &p.Date,
	}); err != nil {
		return Project{}, fmt.Errorf("mapping project: %w", err)
	}
	return p, nil
}

// CategoryRow maps a category to a categories row.
func CategoryRow(c Category) remote.Row {
	return remote.Row{
		"id":   c.ID,
		"name": c.Name,
	}
}

// CategoryFromRow maps a categories row to a category.
func CategoryFromRow(row remote.Row) (Category, error) {
	var c Category
	if err := scan(row, map[string]*string{
		"id":   &c.ID,
		"name": &c.Name,
	}); err != nil {
		return Category{}, fmt.Errorf("mapping category: %w", err)
	}
	return c, nil
}

// SiteConfigRow maps the site config to the columns of the singleton row (no key).
func SiteConfigRow(c SiteConfig) remote.Row {
	return remote.Row{
		"hero_headline":    c.HeroHeadline,
		"hero_subheadline": c.HeroSubheadline,
		"contact_email":    c.ContactEmail,
		"instagram_handle": c.InstagramHandle,
		"whatsapp_number":  c.WhatsappNumber,
	}
}

// SiteConfigSingletonRow is SiteConfigRow plus the fixed singleton key, for
// inserts and upserts.
func SiteConfigSingletonRow(c SiteConfig) remote.Row {
	row := SiteConfigRow(c)
	row[remote.KeyColumn] = remote.SiteConfigKey
	return row
}

// SiteConfigFromRow maps the site_config singleton row to a site config.
func SiteConfigFromRow(row remote.Row) (SiteConfig, error) {
	var c SiteConfig
	if err := scan(row, map[string]*string{
		"hero_headline":    &c.HeroHeadline,
		"hero_subheadline": &c.HeroSubheadline,
		"contact_email":    &c.ContactEmail,
		"instagram_handle": &c.InstagramHandle,
		"whatsapp_number":  &c.WhatsappNumber,
	}); err != nil {
		return SiteConfig{}, fmt.Errorf("mapping site config: %w", err)
	}
	return c, nil
}

func scan(row remote.Row, dest map[string]*string) error {
	for col, ptr := range dest {
		v, err := row.String(col)
		if err != nil {
			return err
		}
		*ptr = v
	}
	return nil
}
