// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// dialect is what differs between backends when loading a table.
type dialect struct {
	name        string
	driver      string
	defaultDSN  string
	singleConn  bool
	quote       func(string) string
	placeholder func(int) string
	types       map[arrow.Type]string
}

func doubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

func questionMark(int) string { return "?" }

func dollar(i int) string { return "$" + strconv.Itoa(i) }

var dialects = map[string]dialect{
	"sqlite": {
		name:        "sqlite",
		driver:      "sqlite",
		defaultDSN:  ":memory:",
		singleConn:  true,
		quote:       doubleQuote,
		placeholder: questionMark,
		types: map[arrow.Type]string{
			arrow.INT64:   "INTEGER",
			arrow.FLOAT64: "REAL",
			arrow.BOOL:    "BOOLEAN",
			arrow.STRING:  "TEXT",
		},
	},
	"postgres": {
		name:        "postgres",
		driver:      "pgx",
		quote:       doubleQuote,
		placeholder: dollar,
		types: map[arrow.Type]string{
			arrow.INT64:   "BIGINT",
			arrow.FLOAT64: "DOUBLE PRECISION",
			arrow.BOOL:    "BOOLEAN",
			arrow.STRING:  "TEXT",
		},
	},
	"mysql": {
		name:        "mysql",
		driver:      "mysql",
		quote:       backtick,
		placeholder: questionMark,
		types: map[arrow.Type]string{
			arrow.INT64:   "BIGINT",
			arrow.FLOAT64: "DOUBLE",
			arrow.BOOL:    "BOOLEAN",
			arrow.STRING:  "TEXT",
		},
	},
}

// Drivers lists the supported backend names.
func Drivers() []string {
	return []string{"sqlite", "postgres", "mysql"}
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return dialect{}, fmt.Errorf("unknown driver %q (want one of %s)", name, strings.Join(Drivers(), ", "))
	}
	return d, nil
}

func (d dialect) columnType(dt arrow.DataType) string {
	if t, ok := d.types[dt.ID()]; ok {
		return t
	}
	return d.types[arrow.STRING]
}

// createTable renders the DDL for a loaded file.
func (d dialect) createTable(table string, cols []string, schema *arrow.Schema) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(d.quote(table))
	b.WriteString(" (")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.quote(col))
		b.WriteByte(' ')
		b.WriteString(d.columnType(schema.Field(i).Type))
	}
	b.WriteString(")")
	return b.String()
}

// insert renders a single-row parameterized INSERT.
func (d dialect) insert(table string, cols []string) string {
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = d.quote(col)
		marks[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

// columnNames makes schema field names usable as SQL columns: empty names
// become column_N and repeats get a _2, _3 suffix. Comparison ignores case
// because most backends fold identifiers.
func columnNames(schema *arrow.Schema) []string {
	names := make([]string, schema.NumFields())
	seen := make(map[string]bool, len(names))
	for i, f := range schema.Fields() {
		base := strings.TrimSpace(f.Name)
		if base == "" {
			base = fmt.Sprintf("column_%d", i+1)
		}
		name := base
		for n := 2; seen[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
