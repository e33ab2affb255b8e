// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/goccy/go-json"
)

// errNotObject marks a top-level value that is not a JSON object.
var errNotObject = errors.New("top-level value is not an object")

func readJSON(path string, opts Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	objects, err := splitObjects(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileAccess, path, err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: %s: no records", ErrFileAccess, path)
	}

	rows := make([]map[string]any, len(objects))
	for i, raw := range objects {
		if rows[i], err = decodeObject(raw); err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", ErrFileAccess, path, i+1, err)
		}
	}

	names, kinds, err := inferJSON(objects, rows, opts.InferRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileAccess, path, err)
	}
	schema := buildSchema(names, kinds)

	recs, err := buildJSONRecords(schema, rows, opts)
	if err != nil && opts.InferRows < len(objects) {
		// A record past the sample disagrees with its column: infer over
		// every record and build once more.
		if names, kinds, err = inferJSON(objects, rows, len(objects)); err == nil {
			schema = buildSchema(names, kinds)
			recs, err = buildJSONRecords(schema, rows, opts)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileAccess, path, err)
	}
	return &Table{Schema: schema, Records: recs}, nil
}

// splitObjects reads data as newline-delimited JSON first. When that fails
// and the document is a single top-level array, its elements are used.
func splitObjects(data []byte) ([]json.RawMessage, error) {
	objects, ndErr := splitNDJSON(data)
	if ndErr == nil {
		return objects, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ndErr
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, err
	}
	for i, el := range elems {
		if !isObject(el) {
			return nil, fmt.Errorf("element %d: %w", i+1, errNotObject)
		}
	}
	return elems, nil
}

func splitNDJSON(data []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var out []json.RawMessage
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if !isObject(raw) {
			return nil, fmt.Errorf("record %d: %w", len(out)+1, errNotObject)
		}
		out = append(out, raw)
	}
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// objectKeys returns the top-level keys of a JSON object in document order.
// Token skips commas and colons, so at depth 1 keys and values alternate;
// a container value is skipped by tracking depth until it closes.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var keys []string
	depth, expectKey := 1, true
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 1 {
					expectKey = true
				}
			}
			continue
		}
		if depth != 1 {
			continue
		}
		if expectKey {
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected token %v", tok)
			}
			keys = append(keys, key)
		}
		expectKey = !expectKey
	}
	return keys, nil
}

// inferJSON collects field names in first-seen order and widens kinds over
// the first limit records. Keys that only appear later are not columns.
func inferJSON(objects []json.RawMessage, rows []map[string]any, limit int) ([]string, []kind, error) {
	var names []string
	index := make(map[string]int)
	var kinds []kind

	for i := 0; i < len(objects) && i < limit; i++ {
		keys, err := objectKeys(objects[i])
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		for _, key := range keys {
			col, ok := index[key]
			if !ok {
				col = len(names)
				index[key] = col
				names = append(names, key)
				kinds = append(kinds, kindNull)
			}
			kinds[col] = widen(kinds[col], valueKind(rows[i][key]))
		}
	}
	return names, kinds, nil
}

func valueKind(v any) kind {
	switch v := v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case json.Number:
		if _, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return kindInt
		}
		return kindFloat
	default:
		return kindString
	}
}

func buildJSONRecords(schema *arrow.Schema, rows []map[string]any, opts Options) ([]arrow.Record, error) {
	b := array.NewRecordBuilder(opts.Allocator, schema)
	defer b.Release()

	var recs []arrow.Record
	for start := 0; start < len(rows); start += opts.BatchSize {
		end := min(len(rows), start+opts.BatchSize)
		for r := start; r < end; r++ {
			for col, field := range schema.Fields() {
				if err := appendJSONValue(b.Field(col), rows[r][field.Name]); err != nil {
					releaseAll(recs)
					return nil, fmt.Errorf("record %d field %q: %w", r+1, field.Name, err)
				}
			}
		}
		recs = append(recs, b.NewRecord())
	}
	return recs, nil
}

func appendJSONValue(fb array.Builder, v any) error {
	if v == nil {
		fb.AppendNull()
		return nil
	}
	switch fb := fb.(type) {
	case *array.Int64Builder:
		n, ok := v.(json.Number)
		if !ok {
			return fmt.Errorf("expected integer, got %T", v)
		}
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return err
		}
		fb.Append(i)
	case *array.Float64Builder:
		n, ok := v.(json.Number)
		if !ok {
			return fmt.Errorf("expected number, got %T", v)
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return err
		}
		fb.Append(f)
	case *array.BooleanBuilder:
		bv, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected boolean, got %T", v)
		}
		fb.Append(bv)
	case *array.StringBuilder:
		s, err := jsonText(v)
		if err != nil {
			return err
		}
		fb.Append(s)
	default:
		return fmt.Errorf("unsupported builder %T", fb)
	}
	return nil
}

// jsonText renders a value for a Utf8 column. Strings are stored bare;
// everything else keeps its JSON spelling.
func jsonText(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
