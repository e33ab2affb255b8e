// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// Table is the display table: column names and pre-stringified rows.
// A diagnostic is a table with no headers and exactly one single-cell row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Diagnostic returns the table form of a one-line message.
func Diagnostic(message string) Table {
	return Table{Rows: [][]string{{message}}}
}

// IsDiagnostic reports whether t carries a message instead of a result set.
func (t Table) IsDiagnostic() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 1 && len(t.Rows[0]) == 1
}

// IsEmpty reports whether t has neither headers nor rows.
func (t Table) IsEmpty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// Message returns the diagnostic text, or "" for a regular table.
func (t Table) Message() string {
	if !t.IsDiagnostic() {
		return ""
	}
	return t.Rows[0][0]
}

// Width returns the number of columns: the header count, or for a headerless
// table the widest row.
func (t Table) Width() int {
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	w := 0
	for _, row := range t.Rows {
		w = max(w, len(row))
	}
	return w
}

// Valid reports whether every row matches the header count. Headerless
// tables are always valid.
func (t Table) Valid() bool {
	if len(t.Headers) == 0 {
		return true
	}
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return false
		}
	}
	return true
}
