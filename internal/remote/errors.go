// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package remote

import "fmt"

// Error represents an error type for remote store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates a single-row select matched no row.
	ErrNotFound Error = "row not found"

	// ErrUnknownTable indicates a table outside the schema.
	ErrUnknownTable Error = "unknown table"

	// ErrUnknownColumn indicates a column outside the table schema.
	ErrUnknownColumn Error = "unknown column"

	// ErrMissingKey indicates a row without a key column value.
	ErrMissingKey Error = "missing key column"

	// ErrDuplicateKey indicates an insert collided with an existing key.
	ErrDuplicateKey Error = "duplicate key"

	// ErrClosed indicates the store has been closed.
	ErrClosed Error = "store closed"
)

// Op names a remote store operation.
type Op string

// Remote store operations.
const (
	OpSelect    Op = "select"
	OpSelectOne Op = "select_one"
	OpInsert    Op = "insert"
	OpUpsert    Op = "upsert"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
)

// OpError describes a failed remote call.
type OpError struct {
	Op    Op
	Table Table
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Wrap returns err wrapped in an OpError, or nil when err is nil.
func Wrap(op Op, table Table, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Table: table, Err: err}
}
