// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
)

// kind is a point in the inference lattice. kindNull is "no evidence yet".
type kind int

const (
	kindNull kind = iota
	kindInt
	kindFloat
	kindBool
	kindString
)

// widen returns the narrowest kind that can hold both a and b.
func widen(a, b kind) kind {
	switch {
	case a == kindNull:
		return b
	case b == kindNull, a == b:
		return a
	case (a == kindInt && b == kindFloat) || (a == kindFloat && b == kindInt):
		return kindFloat
	default:
		return kindString
	}
}

func (k kind) dataType() arrow.DataType {
	switch k {
	case kindInt:
		return arrow.PrimitiveTypes.Int64
	case kindFloat:
		return arrow.PrimitiveTypes.Float64
	case kindBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// textKind classifies one CSV cell. The order matches how the Arrow CSV
// reader parses the chosen type, so an inferred column always decodes.
func textKind(s string) kind {
	if s == "" {
		return kindNull
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return kindInt
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return kindFloat
	}
	if _, err := strconv.ParseBool(s); err == nil {
		return kindBool
	}
	return kindString
}

// buildSchema turns per-column kinds into a schema. Every field is nullable.
func buildSchema(names []string, kinds []kind) *arrow.Schema {
	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		fields[i] = arrow.Field{Name: name, Type: kinds[i].dataType(), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}
