package source

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/util"
)

func column(t *testing.T, tbl *frame.Table, name string) *frame.Column {
	t.Helper()
	col, ok := tbl.Column(name)
	if !ok {
		t.Fatalf("missing column %q in %v", name, tbl.ColumnNames())
	}
	return col
}

func TestSpecKind(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
		err  error
	}{
		{"csv", Spec{CSV: "homes.csv"}, "csv", nil},
		{"parquet", Spec{Parquet: "homes.parquet"}, "parquet", nil},
		{"sqlite", Spec{SQLite: "homes.db", Query: "SELECT 1"}, "sqlite", nil},
		{"postgres", Spec{DSN: "postgres://localhost/homes", Query: "SELECT 1"}, "postgres", nil},
		{"none", Spec{}, "", util.ErrNoSource},
		{"two files", Spec{CSV: "a.csv", Parquet: "b.parquet"}, "", util.ErrAmbiguousSource},
		{"sqlite without query", Spec{SQLite: "homes.db"}, "", util.ErrQueryRequired},
		{"postgres without query", Spec{DSN: "postgres://localhost/homes"}, "", util.ErrQueryRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Kind()
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if got != tt.want {
				t.Fatalf("kind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpecName(t *testing.T) {
	if got := (Spec{CSV: "/data/zhvi/home_values.csv"}).Name(); got != "home_values.csv" {
		t.Fatalf("Name = %q", got)
	}
	if got := (Spec{DSN: "postgres://u:p@host/db", Query: "SELECT 1"}).Name(); got != "postgres" {
		t.Fatalf("Name = %q, want postgres (no credentials)", got)
	}
}

func TestReadCSV_InfersKinds(t *testing.T) {
	in := "RegionName,SizeRank,HomeValue,Date,Active,Notes\n" +
		"\"Austin, TX\",1,512000.5,2024-01-31,true,\n" +
		"Boise,2,,2024-02-29,false,\n" +
		"Miami,3,401000,2024-03-31,true,\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if rows, cols := tbl.Shape(); rows != 3 || cols != 6 {
		t.Fatalf("shape = %d×%d, want 3×6", rows, cols)
	}

	kinds := map[string]frame.Kind{
		"RegionName": frame.KindString,
		"SizeRank":   frame.KindInt,
		"HomeValue":  frame.KindFloat,
		"Date":       frame.KindTime,
		"Active":     frame.KindBool,
		"Notes":      frame.KindFloat,
	}
	for name, want := range kinds {
		if got := column(t, tbl, name).Kind(); got != want {
			t.Errorf("%s kind = %s, want %s", name, got, want)
		}
	}

	if v := column(t, tbl, "HomeValue").Value(1); !v.Null {
		t.Fatalf("empty cell should be null, got %v", v)
	}
	if got := column(t, tbl, "RegionName").Value(0).String(); got != "Austin, TX" {
		t.Fatalf("quoted cell = %q", got)
	}
	if got := column(t, tbl, "SizeRank").Value(2); got != frame.Int(3) {
		t.Fatalf("SizeRank[2] = %v", got)
	}
	day, _ := column(t, tbl, "Date").Value(1).Time()
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !day.Equal(want) {
		t.Fatalf("Date[1] = %v, want %v", day, want)
	}
}

func TestReadCSV_Headers(t *testing.T) {
	in := "\ufeffState,State,,State\nCA,1,2,3\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := "State,State.1,Unnamed: 2,State.2"
	if got := strings.Join(tbl.ColumnNames(), ","); got != want {
		t.Fatalf("names = %s, want %s", got, want)
	}
}

func TestReadCSV_RepairsLatin1(t *testing.T) {
	in := "RegionName\nA\xf1asco\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got := column(t, tbl, "RegionName").Value(0).String(); got != "Añasco" {
		t.Fatalf("got %q, want Añasco", got)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, util.ErrEmptyTable) {
		t.Fatalf("empty input: err = %v", err)
	}
	if _, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n")); err == nil {
		t.Fatal("ragged row should fail")
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestOpen_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home_values.csv")
	if err := os.WriteFile(path, []byte("StateName,HomeValue\nCA,100\nTX,200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Open(context.Background(), Spec{CSV: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tbl.Len())
	}
}

func TestFromValues(t *testing.T) {
	names := []string{"Region", "Value", "Mixed"}
	rows := [][]any{
		{"CA", int64(100), int64(1)},
		{[]byte("TX"), 250.5, "two"},
		{nil, nil, nil},
	}
	tbl, err := FromValues(names, rows)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}

	if got := column(t, tbl, "Region").Value(1).String(); got != "TX" {
		t.Fatalf("bytes should become text, got %q", got)
	}
	value := column(t, tbl, "Value")
	if value.Kind() != frame.KindFloat {
		t.Fatalf("int and float should widen to float, got %s", value.Kind())
	}
	if f, _ := value.Value(0).Float(); f != 100 {
		t.Fatalf("Value[0] = %v", f)
	}
	mixed := column(t, tbl, "Mixed")
	if mixed.Kind() != frame.KindString {
		t.Fatalf("int and text should fall back to text, got %s", mixed.Kind())
	}
	if got := mixed.Value(0).String(); got != "1" {
		t.Fatalf("Mixed[0] = %q", got)
	}
	if !mixed.Value(2).Null {
		t.Fatal("nil should stay null")
	}
}

func TestQuerySQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homes.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE home_values (id INTEGER PRIMARY KEY, StateName TEXT, HomeValue REAL)`,
		`INSERT INTO home_values (StateName, HomeValue) VALUES ('CA', 812000.5), ('TX', NULL), ('NY', 455000)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	db.Close()

	tbl, err := Open(context.Background(), Spec{
		SQLite: path,
		Query:  "SELECT StateName, HomeValue FROM home_values ORDER BY id",
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := strings.Join(tbl.ColumnNames(), ","); got != "StateName,HomeValue" {
		t.Fatalf("columns = %s", got)
	}
	hv := column(t, tbl, "HomeValue")
	if hv.Kind() != frame.KindFloat {
		t.Fatalf("HomeValue kind = %s", hv.Kind())
	}
	if !hv.Value(1).Null {
		t.Fatal("NULL should load as null")
	}
	if got := column(t, tbl, "StateName").Value(2).String(); got != "NY" {
		t.Fatalf("StateName[2] = %q", got)
	}
}

func TestQuerySQLite_MissingFile(t *testing.T) {
	_, err := QuerySQLite(context.Background(), filepath.Join(t.TempDir(), "none.db"), "SELECT 1")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func arrowTable(t *testing.T) arrow.Table {
	t.Helper()
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "RegionName", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "SizeRank", Type: arrow.PrimitiveTypes.Int32},
		{Name: "HomeValue", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "Date", Type: arrow.FixedWidthTypes.Date32},
	}, nil)

	names := array.NewStringBuilder(mem)
	defer names.Release()
	names.AppendValues([]string{"Austin, TX", ""}, []bool{true, false})

	ranks := array.NewInt32Builder(mem)
	defer ranks.Release()
	ranks.AppendValues([]int32{1, 2}, nil)

	values := array.NewFloat64Builder(mem)
	defer values.Release()
	values.Append(512000.5)
	values.AppendNull()

	dates := array.NewDate32Builder(mem)
	defer dates.Release()
	dates.Append(arrow.Date32FromTime(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	dates.Append(arrow.Date32FromTime(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))

	arrs := []arrow.Array{names.NewArray(), ranks.NewArray(), values.NewArray(), dates.NewArray()}
	cols := make([]arrow.Column, len(arrs))
	for i, arr := range arrs {
		chunked := arrow.NewChunked(schema.Field(i).Type, []arrow.Array{arr})
		cols[i] = *arrow.NewColumn(schema.Field(i), chunked)
		arr.Release()
		chunked.Release()
	}
	tbl := array.NewTable(schema, cols, 2)
	t.Cleanup(tbl.Release)
	return tbl
}

func checkArrowRows(t *testing.T, tbl *frame.Table) {
	t.Helper()
	if rows, cols := tbl.Shape(); rows != 2 || cols != 4 {
		t.Fatalf("shape = %d×%d, want 2×4", rows, cols)
	}
	if got := column(t, tbl, "SizeRank").Kind(); got != frame.KindInt {
		t.Fatalf("SizeRank kind = %s", got)
	}
	if !column(t, tbl, "RegionName").Value(1).Null {
		t.Fatal("null string should stay null")
	}
	if !column(t, tbl, "HomeValue").Value(1).Null {
		t.Fatal("null float should stay null")
	}
	day, ok := column(t, tbl, "Date").Value(1).Time()
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !ok || !day.Equal(want) {
		t.Fatalf("Date[1] = %v, want %v", day, want)
	}
}

func TestFromArrow(t *testing.T) {
	tbl, err := FromArrow(arrowTable(t))
	if err != nil {
		t.Fatalf("FromArrow: %v", err)
	}
	checkArrowRows(t, tbl)
}

func TestLoadParquet(t *testing.T) {
	at := arrowTable(t)
	var buf bytes.Buffer
	w, err := pqarrow.NewFileWriter(at.Schema(), &buf, parquet.NewWriterProperties(),
		pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := w.WriteTable(at, at.NumRows()); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "homes.parquet")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Open(context.Background(), Spec{Parquet: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	checkArrowRows(t, tbl)
}
