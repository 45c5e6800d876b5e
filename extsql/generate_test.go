package extsql_test

import (
	"strings"
	"testing"

	"github.com/pgext/go-extension-spec/extspec"
	"github.com/pgext/go-extension-spec/extsql"
)

// spiExtension returns the SPI example extension: a placeholder table, a
// seeded table, and six native function registrations.
func spiExtension() *extspec.Extension {
	return &extspec.Extension{
		Name:        "spi",
		Version:     "1.0",
		Comment:     "Server Programming Interface examples",
		Relocatable: true,
		Tables: []extspec.Table{
			{Name: "foo"},
			{Name: "spi_example", Columns: []extspec.Column{
				{Name: "id", Type: "bigserial", PrimaryKey: true, NotNull: true},
				{Name: "title", Type: "text"},
			}},
		},
		Seeds: []extspec.Seed{
			{Table: "spi_example", Columns: []string{"title"}, Rows: [][]any{
				{"This is a test"},
				{"Hello There!"},
				{"I like pudding"},
			}},
		},
		Functions: []extspec.Function{
			{Name: "spi_insert_title", Args: []extspec.Argument{{Name: "title", Type: "text"}}, Returns: extspec.ReturnShape{Type: "bigint"}, Strict: true},
			{Name: "spi_insert_title2", Args: []extspec.Argument{{Name: "title", Type: "text"}}, Strict: true},
			{Name: "spi_query_by_id", Args: []extspec.Argument{{Name: "id", Type: "bigint"}}, Returns: extspec.ReturnShape{Type: "text"}, Strict: true},
			{Name: "spi_query_title", Args: []extspec.Argument{{Name: "title", Type: "text"}}, Returns: extspec.ReturnShape{Type: "bigint"}, Strict: true, Volatile: extspec.VolatilityImmutable, Parallel: extspec.ParallelSafe},
			{Name: "spi_query_random_id", Returns: extspec.ReturnShape{Type: "bigint"}, Volatile: extspec.VolatilityVolatile},
			{Name: "spi_return_query", Returns: extspec.ReturnShape{Table: []extspec.Argument{{Name: "id", Type: "bigint"}, {Name: "title", Type: "text"}}}},
		},
	}
}

func TestGenerateInstallOrder(t *testing.T) {
	stmts, err := extsql.GenerateInstall(spiExtension())
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		kind   extsql.StatementKind
		object string
	}{
		{extsql.KindCreateTable, "foo"},
		{extsql.KindCreateTable, "spi_example"},
		{extsql.KindInsertSeed, "spi_example"},
		{extsql.KindCreateFunction, "spi_insert_title"},
		{extsql.KindCreateFunction, "spi_insert_title2"},
		{extsql.KindCreateFunction, "spi_query_by_id"},
		{extsql.KindCreateFunction, "spi_query_title"},
		{extsql.KindCreateFunction, "spi_query_random_id"},
		{extsql.KindCreateFunction, "spi_return_query"},
	}
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(want))
	}
	for i, w := range want {
		if stmts[i].Kind != w.kind || stmts[i].Object != w.object {
			t.Errorf("statement %d = %s %s, want %s %s", i, stmts[i].Kind, stmts[i].Object, w.kind, w.object)
		}
	}
}

func TestGenerateCreateTable(t *testing.T) {
	stmts, err := extsql.GenerateInstall(spiExtension())
	if err != nil {
		t.Fatal(err)
	}

	if got, want := stmts[0].SQL, "CREATE TABLE foo ();"; got != want {
		t.Errorf("zero-column table:\ngot  %q\nwant %q", got, want)
	}

	want := "CREATE TABLE spi_example (\n" +
		"  id bigserial NOT NULL PRIMARY KEY,\n" +
		"  title text\n" +
		");"
	if got := stmts[1].SQL; got != want {
		t.Errorf("spi_example:\ngot  %q\nwant %q", got, want)
	}
}

func TestGenerateSeedInsert(t *testing.T) {
	stmts, err := extsql.GenerateInstall(spiExtension())
	if err != nil {
		t.Fatal(err)
	}

	want := "INSERT INTO spi_example (title) VALUES\n" +
		"  ('This is a test'),\n" +
		"  ('Hello There!'),\n" +
		"  ('I like pudding');"
	if got := stmts[2].SQL; got != want {
		t.Errorf("seed insert:\ngot  %q\nwant %q", got, want)
	}
}

func TestGenerateSeedEscapesQuotes(t *testing.T) {
	ext := spiExtension()
	ext.Seeds[0].Rows = [][]any{{"it's"}}

	stmts, err := extsql.GenerateInstall(ext)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stmts[2].SQL, "('it''s')") {
		t.Errorf("quote not doubled: %s", stmts[2].SQL)
	}
}

func TestGenerateSeedNullAndNumbers(t *testing.T) {
	ext := spiExtension()
	ext.Tables[1].Columns = append(ext.Tables[1].Columns, extspec.Column{Name: "rank", Type: "bigint"})
	ext.Seeds[0].Columns = []string{"title", "rank"}
	ext.Seeds[0].Rows = [][]any{{nil, 42}}

	stmts, err := extsql.GenerateInstall(ext)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stmts[2].SQL, "(NULL, 42)") {
		t.Errorf("literals not rendered: %s", stmts[2].SQL)
	}
}

func TestGenerateSeedRejectsEmptyRows(t *testing.T) {
	ext := spiExtension()
	ext.Seeds[0].Rows = nil

	_, err := extsql.GenerateInstall(ext)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "has no rows") {
		t.Errorf("error %q", err)
	}
}

func TestGenerateSeedRejectsUnsupportedLiteral(t *testing.T) {
	ext := spiExtension()
	ext.Seeds[0].Rows = [][]any{{[]string{"a"}}}

	_, err := extsql.GenerateInstall(ext)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unsupported seed literal") {
		t.Errorf("error %q", err)
	}
}

func TestGenerateCreateFunction(t *testing.T) {
	stmts, err := extsql.GenerateInstall(spiExtension())
	if err != nil {
		t.Fatal(err)
	}

	byObject := make(map[string]string)
	for _, s := range stmts {
		if s.Kind == extsql.KindCreateFunction {
			byObject[s.Object] = s.SQL
		}
	}

	want := "CREATE FUNCTION spi_query_title(title text) RETURNS bigint\n" +
		"STRICT IMMUTABLE PARALLEL SAFE LANGUAGE c\n" +
		"AS 'MODULE_PATHNAME', 'spi_query_title';"
	if got := byObject["spi_query_title"]; got != want {
		t.Errorf("spi_query_title:\ngot  %q\nwant %q", got, want)
	}

	tests := []struct {
		object string
		want   []string
	}{
		{"spi_insert_title", []string{"RETURNS bigint", "STRICT "}},
		{"spi_insert_title2", []string{"RETURNS void"}},
		{"spi_query_random_id", []string{"spi_query_random_id() RETURNS bigint", "VOLATILE "}},
		{"spi_return_query", []string{"RETURNS TABLE(id bigint, title text)"}},
	}
	for _, tt := range tests {
		sql := byObject[tt.object]
		for _, w := range tt.want {
			if !strings.Contains(sql, w) {
				t.Errorf("%s: missing %q in:\n%s", tt.object, w, sql)
			}
		}
	}
}

func TestGenerateFunctionSymbolAndSchema(t *testing.T) {
	ext := spiExtension()
	ext.Functions = []extspec.Function{{
		Name:    "spi_insert_title",
		Schema:  "spi",
		Symbol:  "spi_insert_title_wrapper",
		Args:    []extspec.Argument{{Name: "title", Type: "text"}},
		Returns: extspec.ReturnShape{Type: "bigint"},
	}}

	stmts, err := extsql.GenerateInstall(ext)
	if err != nil {
		t.Fatal(err)
	}
	sql := stmts[len(stmts)-1].SQL
	for _, want := range []string{"CREATE FUNCTION spi.spi_insert_title(", "'MODULE_PATHNAME', 'spi_insert_title_wrapper'"} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in:\n%s", want, sql)
		}
	}
}

func TestGenerateModulePathnameOverride(t *testing.T) {
	ext := spiExtension()
	ext.ModulePathname = "$libdir/spi_example"

	stmts, err := extsql.GenerateInstall(ext)
	if err != nil {
		t.Fatal(err)
	}
	last := stmts[len(stmts)-1].SQL
	if !strings.Contains(last, "AS '$libdir/spi_example', 'spi_return_query';") {
		t.Errorf("module pathname not applied: %s", last)
	}
}

func TestGenerateIfNotExists(t *testing.T) {
	stmts, err := extsql.GenerateInstall(spiExtension(), extsql.WithIfNotExists())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stmts[0].SQL, "CREATE TABLE IF NOT EXISTS foo") {
		t.Errorf("table guard missing: %s", stmts[0].SQL)
	}
	if !strings.HasPrefix(stmts[3].SQL, "CREATE OR REPLACE FUNCTION") {
		t.Errorf("function guard missing: %s", stmts[3].SQL)
	}
}

func TestGenerateQuotesReservedIdentifiers(t *testing.T) {
	ext := spiExtension()
	ext.Tables = []extspec.Table{{Name: "user", Columns: []extspec.Column{
		{Name: "order", Type: "bigint"},
	}}}
	ext.Seeds = nil
	ext.Functions = nil

	stmts, err := extsql.GenerateInstall(ext)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`CREATE TABLE "user"`, `"order" bigint`} {
		if !strings.Contains(stmts[0].SQL, want) {
			t.Errorf("missing %q in:\n%s", want, stmts[0].SQL)
		}
	}
}

func TestGenerateSQLiteDialect(t *testing.T) {
	ext := spiExtension()
	ext.Functions = nil

	stmts, err := extsql.GenerateInstall(ext, extsql.WithDialect(extsql.SQLite))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stmts[1].SQL, "id INTEGER PRIMARY KEY AUTOINCREMENT") {
		t.Errorf("serial column not mapped: %s", stmts[1].SQL)
	}
	if !strings.Contains(stmts[1].SQL, "title TEXT") {
		t.Errorf("text column not mapped: %s", stmts[1].SQL)
	}
}

func TestGenerateSQLiteZeroColumnTable(t *testing.T) {
	ext := spiExtension()
	ext.Functions = nil

	stmts, err := extsql.GenerateInstall(ext, extsql.WithDialect(extsql.SQLite))
	if err != nil {
		t.Fatal(err)
	}
	// SQLite rejects an empty column list, so the placeholder relation
	// carries a single nullable column on that dialect.
	if got, want := stmts[0].SQL, "CREATE TABLE foo (placeholder INTEGER);"; got != want {
		t.Errorf("zero-column table:\ngot  %q\nwant %q", got, want)
	}
}

func TestGenerateSQLiteRejectsFunctions(t *testing.T) {
	_, err := extsql.GenerateInstall(spiExtension(), extsql.WithDialect(extsql.SQLite))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cannot be generated for sqlite") {
		t.Errorf("error %q", err)
	}
}

func TestGenerateUpgrade(t *testing.T) {
	up := extspec.UpgradeScript{From: "1.0", To: "1.1", SQL: "ALTER TABLE spi_example ADD COLUMN created_at timestamptz;"}
	stmt := extsql.GenerateUpgrade(up)
	if stmt.Kind != extsql.KindUpgrade || stmt.Object != "1.0--1.1" {
		t.Errorf("unexpected statement: %+v", stmt)
	}
	if stmt.SQL != up.SQL {
		t.Error("upgrade SQL not passed through verbatim")
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    extsql.Dialect
		wantErr bool
	}{
		{"postgres", extsql.Postgres, false},
		{"postgresql", extsql.Postgres, false},
		{"SQLite", extsql.SQLite, false},
		{"oracle", 0, true},
	}
	for _, tt := range tests {
		got, err := extsql.ParseDialect(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDialect(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDialect(%q) = %v, %v", tt.in, got, err)
		}
	}
}
