// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tabq/internal/ingest"
)

func openTest(t *testing.T, batch int) *SQLEngine {
	t.Helper()
	eng, err := Open(context.Background(), Config{Driver: "sqlite", BatchSize: batch}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func strings2D(res *Result) [][]string {
	var out [][]string
	for _, rec := range res.Records {
		for r := 0; r < int(rec.NumRows()); r++ {
			row := make([]string, rec.NumCols())
			for c := range row {
				if rec.Column(c).IsNull(r) {
					row[c] = "null"
				} else {
					row[c] = rec.Column(c).ValueStr(r)
				}
			}
			out = append(out, row)
		}
	}
	return out
}

func fieldNames(s *arrow.Schema) []string {
	var out []string
	for _, f := range s.Fields() {
		out = append(out, f.Name)
	}
	return out
}

// =============================================================================
// REGISTER / EXECUTE TESTS
// =============================================================================

func TestRegisterAndSelect(t *testing.T) {
	ctx := context.Background()
	eng := openTest(t, 1024)
	path := writeFile(t, "data.csv", "id,name,score,ok\n1,ann,2.5,true\n2,bob,,false\n")

	require.NoError(t, eng.Register(ctx, "a", path, ingest.FormatCSV))

	res, err := eng.Execute(ctx, "SELECT * FROM a LIMIT 1")
	require.NoError(t, err)
	defer res.Release()

	assert.Equal(t, []string{"id", "name", "score", "ok"}, fieldNames(res.Schema))
	assert.Equal(t, [][]string{{"1", "ann", "2.5", "true"}}, strings2D(res))

	res2, err := eng.Execute(ctx, "SELECT name, score FROM a ORDER BY id")
	require.NoError(t, err)
	defer res2.Release()
	assert.Equal(t, [][]string{{"ann", "2.5"}, {"bob", "null"}}, strings2D(res2))
}

func TestRegisterJSON(t *testing.T) {
	ctx := context.Background()
	eng := openTest(t, 1024)
	path := writeFile(t, "people.json", `[{"name":"ann","age":31},{"name":"bob","age":40}]`)

	require.NoError(t, eng.Register(ctx, "b", path, ingest.FormatJSON))

	res, err := eng.Execute(ctx, "SELECT SUM(age) AS total FROM b")
	require.NoError(t, err)
	defer res.Release()
	assert.Equal(t, arrow.INT64, res.Schema.Field(0).Type.ID())
	assert.Equal(t, [][]string{{"71"}}, strings2D(res))
}

func TestRegisterDuplicateHeaders(t *testing.T) {
	ctx := context.Background()
	eng := openTest(t, 1024)
	path := writeFile(t, "dup.csv", "a,A,\n1,2,3\n")

	require.NoError(t, eng.Register(ctx, "a", path, ingest.FormatCSV))

	res, err := eng.Execute(ctx, "SELECT * FROM a")
	require.NoError(t, err)
	defer res.Release()
	assert.Equal(t, []string{"a", "A_2", "column_3"}, fieldNames(res.Schema))
}

func TestRegisterErrors(t *testing.T) {
	ctx := context.Background()
	eng := openTest(t, 1024)

	err := eng.Register(ctx, "a", filepath.Join(t.TempDir(), "missing.csv"), ingest.FormatCSV)
	assert.ErrorIs(t, err, ErrFileAccess)

	path := writeFile(t, "bad.json", "not json")
	err = eng.Register(ctx, "a", path, ingest.FormatJSON)
	assert.ErrorIs(t, err, ErrFileAccess)

	// nothing was left behind by the failed loads
	path = writeFile(t, "ok.csv", "x\n1\n")
	assert.NoError(t, eng.Register(ctx, "a", path, ingest.FormatCSV))
}

func TestExecuteBatches(t *testing.T) {
	ctx := context.Background()
	eng := openTest(t, 2)

	var b strings.Builder
	b.WriteString("n\n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	require.NoError(t, eng.Register(ctx, "a", writeFile(t, "n.csv", b.String()), ingest.FormatCSV))

	res, err := eng.Execute(ctx, "SELECT n FROM a ORDER BY n")
	require.NoError(t, err)
	defer res.Release()

	require.Len(t, res.Records, 3)
	assert.EqualValues(t, 5, res.NumRows())
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}, strings2D(res))
}

func TestExecuteUntypedColumns(t *testing.T) {
	eng := openTest(t, 1024)

	res, err := eng.Execute(context.Background(), "SELECT 1 + 1 AS two, 'x' AS s, 1.5 AS f, NULL AS n")
	require.NoError(t, err)
	defer res.Release()

	var ids []arrow.Type
	for _, f := range res.Schema.Fields() {
		ids = append(ids, f.Type.ID())
	}
	assert.Equal(t, []arrow.Type{arrow.INT64, arrow.STRING, arrow.FLOAT64, arrow.STRING}, ids)
	assert.Equal(t, [][]string{{"2", "x", "1.5", "null"}}, strings2D(res))
}

func TestExecuteEmptyResult(t *testing.T) {
	ctx := context.Background()
	eng := openTest(t, 1024)
	require.NoError(t, eng.Register(ctx, "a", writeFile(t, "d.csv", "x,y\n1,2\n"), ingest.FormatCSV))

	res, err := eng.Execute(ctx, "SELECT * FROM a WHERE x > 10")
	require.NoError(t, err)
	defer res.Release()

	assert.Equal(t, []string{"x", "y"}, fieldNames(res.Schema))
	assert.Empty(t, res.Records)
}

func TestExecuteErrorKinds(t *testing.T) {
	ctx := context.Background()
	eng := openTest(t, 1024)
	require.NoError(t, eng.Register(ctx, "a", writeFile(t, "d.csv", "x\n1\n"), ingest.FormatCSV))

	tests := []struct {
		query string
		kind  error
	}{
		{"SELEC * FROM a", ErrQueryParse},
		{"SELECT * FROM missing", ErrQueryPlan},
		{"SELECT nope FROM a", ErrQueryPlan},
	}

	for _, tt := range tests {
		_, err := eng.Execute(ctx, tt.query)
		if !errors.Is(err, tt.kind) {
			t.Errorf("Execute(%q) error = %v, want kind %v", tt.query, err, tt.kind)
		}
		var qe *QueryError
		if assert.ErrorAs(t, err, &qe) {
			assert.Equal(t, tt.query, qe.Query)
			assert.True(t, strings.HasPrefix(err.Error(), tt.kind.Error()+": "), err.Error())
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle"}, zerolog.Nop())
	assert.Error(t, err)

	_, err = Open(context.Background(), Config{Driver: "postgres"}, zerolog.Nop())
	assert.ErrorContains(t, err, "needs a dsn")
}

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestClassifyDriverErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pg syntax", &pgconn.PgError{Code: "42601"}, ErrQueryParse},
		{"pg undefined table", &pgconn.PgError{Code: "42P01"}, ErrQueryPlan},
		{"pg division by zero", &pgconn.PgError{Code: "22012"}, ErrQueryExecution},
		{"mysql syntax", &mysql.MySQLError{Number: 1064}, ErrQueryParse},
		{"mysql unknown column", &mysql.MySQLError{Number: 1054}, ErrQueryPlan},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, ErrQueryExecution},
		{"wrapped pg", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42703"}), ErrQueryPlan},
		{"other", errors.New("boom"), ErrQueryExecution},
	}
	for _, tt := range tests {
		if got := classify(tt.err); got != tt.want {
			t.Errorf("%s: classify() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// =============================================================================
// DIALECT / TYPE TESTS
// =============================================================================

func TestDialectStatements(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: `we"ird`, Type: arrow.BinaryTypes.String},
	}, nil)
	cols := columnNames(schema)

	pg := dialects["postgres"]
	assert.Equal(t, `CREATE TABLE "a" ("id" BIGINT, "we""ird" TEXT)`, pg.createTable("a", cols, schema))
	assert.Equal(t, `INSERT INTO "a" ("id", "we""ird") VALUES ($1, $2)`, pg.insert("a", cols))

	my := dialects["mysql"]
	assert.Equal(t, "INSERT INTO `a` (`id`, `we\"ird`) VALUES (?, ?)", my.insert("a", cols))
}

func TestDeclaredType(t *testing.T) {
	tests := []struct {
		dbType string
		want   arrow.Type
	}{
		{"INTEGER", arrow.INT64},
		{"BIGINT", arrow.INT64},
		{"int4", arrow.INT64},
		{"BOOLEAN", arrow.BOOL},
		{"REAL", arrow.FLOAT64},
		{"DOUBLE PRECISION", arrow.FLOAT64},
		{"NUMERIC", arrow.FLOAT64},
		{"TEXT", arrow.STRING},
		{"VARCHAR", arrow.STRING},
	}
	for _, tt := range tests {
		if got := declaredType(tt.dbType).ID(); got != tt.want {
			t.Errorf("declaredType(%q) = %v, want %v", tt.dbType, got, tt.want)
		}
	}
	assert.Nil(t, declaredType(""))
}

func TestResolveTypeFallsBackToString(t *testing.T) {
	assert.Equal(t, arrow.STRING, resolveType("INTEGER", []any{int64(1), "abc"}).ID())
	assert.Equal(t, arrow.FLOAT64, resolveType("", []any{int64(1), 2.5, nil}).ID())
	assert.Equal(t, arrow.BOOL, resolveType("BOOLEAN", []any{int64(0), int64(1)}).ID())
	assert.Equal(t, arrow.STRING, resolveType("BOOLEAN", []any{int64(2)}).ID())
	assert.Equal(t, arrow.INT64, resolveType("BIGINT", []any{[]byte("42")}).ID())
}
