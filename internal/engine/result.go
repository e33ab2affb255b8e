// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Result is a query result: the schema and the batches in engine order.
type Result struct {
	Schema  *arrow.Schema
	Records []arrow.Record
}

// NumRows returns the total row count across batches.
func (r *Result) NumRows() int64 {
	var n int64
	for _, rec := range r.Records {
		n += rec.NumRows()
	}
	return n
}

// Release frees every batch. Safe to call more than once.
func (r *Result) Release() {
	for _, rec := range r.Records {
		rec.Release()
	}
	r.Records = nil
}

// =============================================================================
// COLUMN TYPES
// =============================================================================

// declaredType maps a backend type name to an Arrow type. Nil means the
// backend did not say and the values decide.
func declaredType(dbType string) arrow.DataType {
	t := strings.ToUpper(dbType)
	switch {
	case t == "":
		return nil
	case strings.Contains(t, "INT"), strings.Contains(t, "SERIAL"):
		return arrow.PrimitiveTypes.Int64
	case strings.Contains(t, "BOOL"):
		return arrow.FixedWidthTypes.Boolean
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"),
		strings.Contains(t, "NUMERIC"), strings.Contains(t, "DECIMAL"):
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// inferredType picks a type from scanned values when nothing was declared.
func inferredType(values []any) arrow.DataType {
	var ints, floats, bools, other bool
	for _, v := range values {
		switch v.(type) {
		case nil:
		case int64, int32, int16, int8, int, uint64, uint32, uint16, uint8, uint:
			ints = true
		case float64, float32:
			floats = true
		case bool:
			bools = true
		default:
			other = true
		}
	}
	switch {
	case other, bools && (ints || floats):
		return arrow.BinaryTypes.String
	case floats:
		return arrow.PrimitiveTypes.Float64
	case ints:
		return arrow.PrimitiveTypes.Int64
	case bools:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// resolveType settles a column type. A type that some value cannot be
// converted to falls back to Utf8, which every value can.
func resolveType(dbType string, values []any) arrow.DataType {
	dt := declaredType(dbType)
	if dt == nil {
		dt = inferredType(values)
	}
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := convert(dt, v); !ok {
			return arrow.BinaryTypes.String
		}
	}
	return dt
}

// =============================================================================
// VALUE CONVERSION
// =============================================================================

func convert(dt arrow.DataType, v any) (any, bool) {
	switch dt.ID() {
	case arrow.INT64:
		return toInt64(v)
	case arrow.FLOAT64:
		return toFloat64(v)
	case arrow.BOOL:
		return toBool(v)
	default:
		return toText(v), true
	}
}

func toInt64(v any) (any, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case int:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case bool:
		if v {
			return int64(1), true
		}
		return int64(0), true
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return nil, false
}

func toFloat64(v any) (any, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	if n, ok := toInt64(v); ok {
		return float64(n.(int64)), true
	}
	return nil, false
}

func toBool(v any) (any, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case int64:
		if v == 0 || v == 1 {
			return v == 1, true
		}
	case []byte:
		b, err := strconv.ParseBool(string(v))
		return b, err == nil
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	return nil, false
}

func toText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// =============================================================================
// BATCH BUILDING
// =============================================================================

// buildRecords turns scanned rows into batches of at most batchSize rows.
func buildRecords(mem memory.Allocator, schema *arrow.Schema, rows [][]any, batchSize int) ([]arrow.Record, error) {
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	var recs []arrow.Record
	for start := 0; start < len(rows); start += batchSize {
		end := min(len(rows), start+batchSize)
		for _, row := range rows[start:end] {
			for col, v := range row {
				if err := appendValue(b.Field(col), schema.Field(col).Type, v); err != nil {
					for _, rec := range recs {
						rec.Release()
					}
					return nil, fmt.Errorf("column %q: %w", schema.Field(col).Name, err)
				}
			}
		}
		recs = append(recs, b.NewRecord())
	}
	return recs, nil
}

func appendValue(fb array.Builder, dt arrow.DataType, v any) error {
	if v == nil {
		fb.AppendNull()
		return nil
	}
	cv, ok := convert(dt, v)
	if !ok {
		return fmt.Errorf("cannot convert %T to %s", v, dt)
	}
	switch fb := fb.(type) {
	case *array.Int64Builder:
		fb.Append(cv.(int64))
	case *array.Float64Builder:
		fb.Append(cv.(float64))
	case *array.BooleanBuilder:
		fb.Append(cv.(bool))
	case *array.StringBuilder:
		fb.Append(cv.(string))
	default:
		return fmt.Errorf("unsupported builder %T", fb)
	}
	return nil
}

// cellValue reads one Arrow cell as a database/sql argument.
func cellValue(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	default:
		return arr.ValueStr(i)
	}
}
