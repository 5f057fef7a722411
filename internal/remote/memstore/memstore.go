// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package memstore provides an in-memory remote store used by tests and the
// memory driver. Failures can be injected per operation and table.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/olegiv/folio-go/internal/remote"
)

var _ remote.Store = (*Store)(nil)

// failure is an injected error for one operation on one table.
type failure struct {
	err       error
	remaining int // <0 = until cleared
}

type faultKey struct {
	op    remote.Op
	table remote.Table
}

// Store is a thread-safe in-memory remote store.
// Rows keep insertion order; keys are compared by their string form.
type Store struct {
	mu     sync.Mutex
	tables map[remote.Table][]remote.Row
	faults map[faultKey]*failure
	calls  map[remote.Op]int
	closed atomic.Bool
}

// New creates an empty store with all schema tables.
func New() *Store {
	s := &Store{
		tables: make(map[remote.Table][]remote.Row),
		faults: make(map[faultKey]*failure),
		calls:  make(map[remote.Op]int),
	}
	for _, t := range remote.Tables() {
		s.tables[t] = nil
	}
	return s
}

// Fail makes every op on table return err until Clear is called.
func (s *Store) Fail(op remote.Op, table remote.Table, err error) {
	s.setFault(op, table, err, -1)
}

// FailOnce makes the next op on table return err.
func (s *Store) FailOnce(op remote.Op, table remote.Table, err error) {
	s.setFault(op, table, err, 1)
}

// FailAll makes every op on every table return err until Clear is called.
func (s *Store) FailAll(err error) {
	for _, op := range []remote.Op{remote.OpSelect, remote.OpSelectOne, remote.OpInsert, remote.OpUpsert, remote.OpUpdate, remote.OpDelete} {
		for _, t := range remote.Tables() {
			s.Fail(op, t, err)
		}
	}
}

// Clear removes all injected failures.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[faultKey]*failure)
}

// Calls returns how many times op has been invoked.
func (s *Store) Calls(op remote.Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Len returns the number of rows in a table.
func (s *Store) Len(table remote.Table) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}

func (s *Store) setFault(op remote.Op, table remote.Table, err error, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[faultKey{op, table}] = &failure{err: err, remaining: n}
}

// begin records the call and returns any injected failure. Must hold mu.
func (s *Store) begin(op remote.Op, table remote.Table) error {
	s.calls[op]++
	if s.closed.Load() {
		return remote.Wrap(op, table, remote.ErrClosed)
	}
	if _, ok := s.tables[table]; !ok {
		return remote.Wrap(op, table, remote.ErrUnknownTable)
	}
	f, ok := s.faults[faultKey{op, table}]
	if !ok {
		return nil
	}
	if f.remaining > 0 {
		f.remaining--
		if f.remaining == 0 {
			delete(s.faults, faultKey{op, table})
		}
	}
	return remote.Wrap(op, table, f.err)
}

// Select returns copies of all rows, optionally sorted.
func (s *Store) Select(ctx context.Context, table remote.Table, order ...remote.Order) ([]remote.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, remote.Wrap(remote.OpSelect, table, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(remote.OpSelect, table); err != nil {
		return nil, err
	}
	for _, o := range order {
		if !remote.HasColumn(table, o.Column) {
			return nil, remote.Wrap(remote.OpSelect, table, fmt.Errorf("%w: %s", remote.ErrUnknownColumn, o.Column))
		}
	}

	rows := make([]remote.Row, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		rows = append(rows, r.Clone())
	}
	if len(order) > 0 {
		slices.SortStableFunc(rows, func(a, b remote.Row) int {
			for _, o := range order {
				c := cmp.Compare(keyString(a[o.Column]), keyString(b[o.Column]))
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}
	return rows, nil
}

// SelectOne returns a copy of the row with the given key.
func (s *Store) SelectOne(ctx context.Context, table remote.Table, key any) (remote.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, remote.Wrap(remote.OpSelectOne, table, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(remote.OpSelectOne, table); err != nil {
		return nil, err
	}
	i := s.indexOf(table, key)
	if i < 0 {
		return nil, remote.Wrap(remote.OpSelectOne, table, remote.ErrNotFound)
	}
	return s.tables[table][i].Clone(), nil
}

// Insert appends rows. The whole batch fails on any duplicate key.
func (s *Store) Insert(ctx context.Context, table remote.Table, rows ...remote.Row) error {
	if err := ctx.Err(); err != nil {
		return remote.Wrap(remote.OpInsert, table, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(remote.OpInsert, table); err != nil {
		return err
	}
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if err := checkRow(table, r); err != nil {
			return remote.Wrap(remote.OpInsert, table, err)
		}
		k := keyString(r[remote.KeyColumn])
		if seen[k] || s.indexOf(table, r[remote.KeyColumn]) >= 0 {
			return remote.Wrap(remote.OpInsert, table, fmt.Errorf("%w: %s", remote.ErrDuplicateKey, k))
		}
		seen[k] = true
	}
	for _, r := range rows {
		s.tables[table] = append(s.tables[table], r.Clone())
	}
	return nil
}

// Upsert inserts rows or replaces the rows sharing their keys.
func (s *Store) Upsert(ctx context.Context, table remote.Table, rows ...remote.Row) error {
	if err := ctx.Err(); err != nil {
		return remote.Wrap(remote.OpUpsert, table, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(remote.OpUpsert, table); err != nil {
		return err
	}
	for _, r := range rows {
		if err := checkRow(table, r); err != nil {
			return remote.Wrap(remote.OpUpsert, table, err)
		}
	}
	for _, r := range rows {
		if i := s.indexOf(table, r[remote.KeyColumn]); i >= 0 {
			s.tables[table][i] = r.Clone()
			continue
		}
		s.tables[table] = append(s.tables[table], r.Clone())
	}
	return nil
}

// Update merges values into the row with the given key.
func (s *Store) Update(ctx context.Context, table remote.Table, key any, values remote.Row) error {
	if err := ctx.Err(); err != nil {
		return remote.Wrap(remote.OpUpdate, table, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(remote.OpUpdate, table); err != nil {
		return err
	}
	if err := values.Validate(table); err != nil {
		return remote.Wrap(remote.OpUpdate, table, err)
	}
	i := s.indexOf(table, key)
	if i < 0 {
		return nil
	}
	for col, v := range values {
		if col == remote.KeyColumn {
			continue
		}
		s.tables[table][i][col] = v
	}
	return nil
}

// Delete removes the row with the given key.
func (s *Store) Delete(ctx context.Context, table remote.Table, key any) error {
	if err := ctx.Err(); err != nil {
		return remote.Wrap(remote.OpDelete, table, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(remote.OpDelete, table); err != nil {
		return err
	}
	if i := s.indexOf(table, key); i >= 0 {
		s.tables[table] = slices.Delete(s.tables[table], i, i+1)
	}
	return nil
}

// Close marks the store closed. Later calls fail with remote.ErrClosed.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *Store) indexOf(table remote.Table, key any) int {
	k := keyString(key)
	return slices.IndexFunc(s.tables[table], func(r remote.Row) bool {
		return keyString(r[remote.KeyColumn]) == k
	})
}

func checkRow(table remote.Table, r remote.Row) error {
	if err := r.Validate(table); err != nil {
		return err
	}
	if v, ok := r[remote.KeyColumn]; !ok || v == nil || keyString(v) == "" {
		return remote.ErrMissingKey
	}
	return nil
}

func keyString(v any) string {
	if v == nil {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}
