// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"net/url"

	"github.com/olegiv/folio-go/internal/model"
)

// AllCategories is the selection that matches every project.
const AllCategories = "All"

// CategoryParam is the query parameter holding the category selection.
const CategoryParam = "category"

// FeaturedCount is how many projects the home page features.
const FeaturedCount = 3

// Filter returns the projects whose category equals selection exactly
// (case-sensitive), keeping their order. AllCategories returns every project.
func Filter(projects []model.Project, selection string) []model.Project {
	if selection == AllCategories {
		return projects
	}
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == selection {
			out = append(out, p)
		}
	}
	return out
}

// SelectionFromQuery reads the selection from query parameters. A missing or
// empty parameter selects all projects.
func SelectionFromQuery(q url.Values) string {
	if v := q.Get(CategoryParam); v != "" {
		return v
	}
	return AllCategories
}

// SetSelection writes selection into q. Selecting all removes the parameter.
func SetSelection(q url.Values, selection string) {
	if selection == AllCategories || selection == "" {
		q.Del(CategoryParam)
		return
	}
	q.Set(CategoryParam, selection)
}

// Featured returns the first n projects, or all of them when there are fewer.
func Featured(projects []model.Project, n int) []model.Project {
	if n < 0 {
		n = 0
	}
	if len(projects) <= n {
		return projects
	}
	return projects[:n]
}

// Selections lists the choices offered to visitors: AllCategories followed by
// every category name.
func Selections(categories []model.Category) []string {
	out := make([]string, 0, len(categories)+1)
	out = append(out, AllCategories)
	for _, c := range categories {
		out = append(out, c.Name)
	}
	return out
}
