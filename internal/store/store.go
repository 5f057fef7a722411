// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the remote catalog store on database/sql.
// SQLite (modernc or mattn driver) and MySQL are supported.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"

	"github.com/olegiv/folio-go/internal/remote"
)

var _ remote.Store = (*Store)(nil)

// mysqlDuplicateEntry is the MySQL error number for a duplicate key.
const mysqlDuplicateEntry = 1062

// Store is a remote.Store backed by a SQL database.
// Table and column names are checked against the remote schema before any
// statement is built, so only values are ever bound as parameters.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open database.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open opens the database, runs migrations and returns a ready store.
func Open(driver, dsn string) (*Store, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := NewDB(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, dialect), nil
}

// Select returns all rows of a table.
func (s *Store) Select(ctx context.Context, table remote.Table, order ...remote.Order) ([]remote.Row, error) {
	cols, err := remote.Columns(table)
	if err != nil {
		return nil, remote.Wrap(remote.OpSelect, table, err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
	if len(order) > 0 {
		terms := make([]string, 0, len(order))
		for _, o := range order {
			if !remote.HasColumn(table, o.Column) {
				return nil, remote.Wrap(remote.OpSelect, table, fmt.Errorf("%w: %s", remote.ErrUnknownColumn, o.Column))
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			terms = append(terms, o.Column+" "+dir)
		}
		query += " ORDER BY " + strings.Join(terms, ", ")
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, remote.Wrap(remote.OpSelect, table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []remote.Row
	for rows.Next() {
		row, err := scanRow(rows, cols)
		if err != nil {
			return nil, remote.Wrap(remote.OpSelect, table, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, remote.Wrap(remote.OpSelect, table, err)
	}
	return out, nil
}

// SelectOne returns the row with the given key.
func (s *Store) SelectOne(ctx context.Context, table remote.Table, key any) (remote.Row, error) {
	cols, err := remote.Columns(table)
	if err != nil {
		return nil, remote.Wrap(remote.OpSelectOne, table, err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", strings.Join(cols, ", "), table, remote.KeyColumn)
	rows, err := s.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, remote.Wrap(remote.OpSelectOne, table, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, remote.Wrap(remote.OpSelectOne, table, err)
		}
		return nil, remote.Wrap(remote.OpSelectOne, table, remote.ErrNotFound)
	}
	row, err := scanRow(rows, cols)
	if err != nil {
		return nil, remote.Wrap(remote.OpSelectOne, table, err)
	}
	return row, nil
}

// Insert adds rows in one statement.
func (s *Store) Insert(ctx context.Context, table remote.Table, rows ...remote.Row) error {
	query, args, err := s.insertStatement(table, rows, false)
	if err != nil {
		return remote.Wrap(remote.OpInsert, table, err)
	}
	if query == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return remote.Wrap(remote.OpInsert, table, translateError(err))
	}
	return nil
}

// Upsert inserts rows, replacing rows that share a key.
func (s *Store) Upsert(ctx context.Context, table remote.Table, rows ...remote.Row) error {
	query, args, err := s.insertStatement(table, rows, true)
	if err != nil {
		return remote.Wrap(remote.OpUpsert, table, err)
	}
	if query == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return remote.Wrap(remote.OpUpsert, table, translateError(err))
	}
	return nil
}

// Update sets columns on the row with the given key.
func (s *Store) Update(ctx context.Context, table remote.Table, key any, values remote.Row) error {
	if err := values.Validate(table); err != nil {
		return remote.Wrap(remote.OpUpdate, table, err)
	}
	cols := sortedColumns(values)
	cols = slices.DeleteFunc(cols, func(c string) bool { return c == remote.KeyColumn })
	if len(cols) == 0 {
		return nil
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = c + " = ?"
		args = append(args, values[c])
	}
	args = append(args, key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", table, strings.Join(sets, ", "), remote.KeyColumn)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return remote.Wrap(remote.OpUpdate, table, translateError(err))
	}
	return nil
}

// Delete removes the row with the given key.
func (s *Store) Delete(ctx context.Context, table remote.Table, key any) error {
	if _, err := remote.Columns(table); err != nil {
		return remote.Wrap(remote.OpDelete, table, err)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, remote.KeyColumn)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return remote.Wrap(remote.OpDelete, table, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// insertStatement builds a multi-row INSERT. All rows must carry the same columns.
func (s *Store) insertStatement(table remote.Table, rows []remote.Row, upsert bool) (string, []any, error) {
	if len(rows) == 0 {
		return "", nil, nil
	}
	if _, err := remote.Columns(table); err != nil {
		return "", nil, err
	}

	cols := sortedColumns(rows[0])
	if !slices.Contains(cols, remote.KeyColumn) {
		return "", nil, remote.ErrMissingKey
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*len(cols))
	for _, r := range rows {
		if err := r.Validate(table); err != nil {
			return "", nil, err
		}
		if !slices.Equal(sortedColumns(r), cols) {
			return "", nil, fmt.Errorf("rows of a batch must share columns")
		}
		for _, c := range cols {
			args = append(args, r[c])
		}
		values = append(values, placeholder)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(cols, ", "), strings.Join(values, ", "))
	if upsert {
		query += s.upsertClause(cols)
	}
	return query, args, nil
}

func (s *Store) upsertClause(cols []string) string {
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == remote.KeyColumn {
			continue
		}
		if s.dialect == DialectMySQL {
			sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
		} else {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
		}
	}
	if s.dialect == DialectMySQL {
		if len(sets) == 0 {
			return fmt.Sprintf(" ON DUPLICATE KEY UPDATE %s = %s", remote.KeyColumn, remote.KeyColumn)
		}
		return " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	}
	if len(sets) == 0 {
		return fmt.Sprintf(" ON CONFLICT(%s) DO NOTHING", remote.KeyColumn)
	}
	return fmt.Sprintf(" ON CONFLICT(%s) DO UPDATE SET %s", remote.KeyColumn, strings.Join(sets, ", "))
}

func scanRow(rows *sql.Rows, cols []string) (remote.Row, error) {
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	row := make(remote.Row, len(cols))
	for i, c := range cols {
		row[c] = values[i]
	}
	return row, nil
}

func sortedColumns(r remote.Row) []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

// translateError maps driver-specific duplicate key errors to remote.ErrDuplicateKey.
func translateError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %v", remote.ErrDuplicateKey, err)
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint &&
		(liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || liteErr.ExtendedCode == sqlite3.ErrConstraintUnique) {
		return fmt.Errorf("%w: %v", remote.ErrDuplicateKey, err)
	}
	// modernc reports constraint violations only through the message.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", remote.ErrDuplicateKey, err)
	}
	return err
}
