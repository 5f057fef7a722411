// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package remote defines the boundary to the tabular backing store that holds
// the catalog. The catalog store is the only caller of this boundary.
package remote

import (
	"context"
	"slices"
)

// Table names a table on the remote store.
type Table string

// Tables known to the remote store.
const (
	TableProjects   Table = "projects"
	TableCategories Table = "categories"
	TableSiteConfig Table = "site_config"
)

// KeyColumn is the primary key column of every table.
const KeyColumn = "id"

// SiteConfigKey is the fixed key of the site_config singleton row.
const SiteConfigKey = 1

// schema lists the columns of each table, key first.
var schema = map[Table][]string{
	TableProjects:   {"id", "title", "category", "description", "image_url", "date"},
	TableCategories: {"id", "name"},
	TableSiteConfig: {"id", "hero_headline", "hero_subheadline", "contact_email", "instagram_handle", "whatsapp_number"},
}

// Tables returns all known tables.
func Tables() []Table {
	return []Table{TableProjects, TableCategories, TableSiteConfig}
}

// Columns returns the columns of a table, key first.
// Returns ErrUnknownTable for tables outside the schema.
func Columns(table Table) ([]string, error) {
	cols, ok := schema[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	return slices.Clone(cols), nil
}

// HasColumn reports whether the table has the named column.
func HasColumn(table Table, column string) bool {
	return slices.Contains(schema[table], column)
}

// Row is a single table row keyed by column name.
type Row map[string]any

// Order sorts a select by one column.
type Order struct {
	Column string
	Desc   bool
}

// Store is the remote tabular store. Every call reports success or an error;
// implementations never panic on a reported failure.
type Store interface {
	// Select returns all rows of a table, sorted by the given orders (unordered when none).
	Select(ctx context.Context, table Table, order ...Order) ([]Row, error)

	// SelectOne returns the row with the given key, or ErrNotFound.
	SelectOne(ctx context.Context, table Table, key any) (Row, error)

	// Insert adds rows. A duplicate key is an error.
	Insert(ctx context.Context, table Table, rows ...Row) error

	// Upsert inserts rows, replacing rows that share a key.
	Upsert(ctx context.Context, table Table, rows ...Row) error

	// Update sets the given columns on the row with the given key.
	// Updating a missing key is not an error.
	Update(ctx context.Context, table Table, key any, values Row) error

	// Delete removes the row with the given key. Deleting a missing key is not an error.
	Delete(ctx context.Context, table Table, key any) error

	// Close releases resources held by the store.
	Close() error
}
