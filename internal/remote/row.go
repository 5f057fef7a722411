// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package remote

import (
	"fmt"
	"strconv"
)

// String returns the column value as a string.
// Drivers hand back TEXT as string or []byte depending on the backend; both are accepted.
// A NULL or absent column yields "".
func (r Row) String(column string) (string, error) {
	v, ok := r[column]
	if !ok || v == nil {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case int:
		return strconv.Itoa(t), nil
	default:
		return "", fmt.Errorf("column %q: unexpected type %T", column, v)
	}
}

// Validate checks that every column of the row belongs to the table.
func (r Row) Validate(table Table) error {
	if _, ok := schema[table]; !ok {
		return ErrUnknownTable
	}
	for col := range r {
		if !HasColumn(table, col) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, col)
		}
	}
	return nil
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
