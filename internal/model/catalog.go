// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the catalog entities shown by the site and their
// mapping to remote table rows.
package model

import (
	"regexp"
	"strings"
)

// Project is a portfolio item.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"` // Category name, not id
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Date        string `json:"date"` // ISO date
}

// Category groups projects by display name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SiteConfig holds the editable site text. Exactly one exists per deployment.
type SiteConfig struct {
	HeroHeadline    string `json:"heroHeadline"`
	HeroSubheadline string `json:"heroSubheadline"`
	ContactEmail    string `json:"contactEmail"`
	InstagramHandle string `json:"instagramHandle"`
	WhatsappNumber  string `json:"whatsappNumber"`
}

// SiteContent is a point-in-time view of the whole catalog.
type SiteContent struct {
	Projects   []Project  `json:"projects"`
	Categories []Category `json:"categories"`
	SiteConfig SiteConfig `json:"siteConfig"`
}

// whitespaceRun matches one or more whitespace characters.
var whitespaceRun = regexp.MustCompile(`\s+`)

// CategoryID derives a category id from its name: lowercase, then every run of
// whitespace becomes a single hyphen. Leading and trailing whitespace is not
// trimmed, so "  A   B " yields "-a-b-". Distinct names can collide.
func CategoryID(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// NewCategory builds a category whose id is derived from name.
func NewCategory(name string) Category {
	return Category{ID: CategoryID(name), Name: name}
}
