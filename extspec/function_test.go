package extspec

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestReturnShapeUnmarshalScalar(t *testing.T) {
	var f Function
	doc := `
name: spi_query_random_id
returns: bigint
strict: true
`
	if err := yaml.Unmarshal([]byte(doc), &f); err != nil {
		t.Fatal(err)
	}
	if f.Returns.Type != "bigint" || f.Returns.SetOf || len(f.Returns.Table) != 0 {
		t.Errorf("got %+v, want scalar bigint", f.Returns)
	}
	if f.Returns.IsSet() {
		t.Error("scalar return reported as set")
	}
}

func TestReturnShapeUnmarshalSetOf(t *testing.T) {
	var f Function
	doc := `
name: spi_query_title
returns: {setof: text}
`
	if err := yaml.Unmarshal([]byte(doc), &f); err != nil {
		t.Fatal(err)
	}
	if f.Returns.Type != "text" || !f.Returns.SetOf {
		t.Errorf("got %+v, want setof text", f.Returns)
	}
	if !f.Returns.IsSet() {
		t.Error("setof return not reported as set")
	}
}

func TestReturnShapeUnmarshalTable(t *testing.T) {
	var f Function
	doc := `
name: spi_return_query
returns:
  table:
    - {name: id, type: bigint}
    - {name: title, type: text}
`
	if err := yaml.Unmarshal([]byte(doc), &f); err != nil {
		t.Fatal(err)
	}
	if len(f.Returns.Table) != 2 {
		t.Fatalf("got %d table columns, want 2", len(f.Returns.Table))
	}
	if f.Returns.Table[0].Name != "id" || f.Returns.Table[1].Type != "text" {
		t.Errorf("unexpected table columns: %+v", f.Returns.Table)
	}
}

func TestReturnShapeUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"both forms", "returns: {setof: text, table: [{name: id, type: bigint}]}", "mutually exclusive"},
		{"empty mapping", "returns: {}", "expected setof or table"},
		{"sequence", "returns: [a, b]", "expected scalar type name or mapping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Function
			err := yaml.Unmarshal([]byte(tt.doc), &f)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestReturnShapeVoid(t *testing.T) {
	var f Function
	if err := yaml.Unmarshal([]byte("name: spi_insert_title2"), &f); err != nil {
		t.Fatal(err)
	}
	if !f.Returns.IsVoid() {
		t.Errorf("missing returns should be void, got %+v", f.Returns)
	}
}

func TestFunctionDefaults(t *testing.T) {
	f := Function{Name: "spi_insert_title"}
	if got := f.ExternalSymbol(); got != "spi_insert_title" {
		t.Errorf("ExternalSymbol() = %q, want name", got)
	}
	if got := f.Lang(); got != "c" {
		t.Errorf("Lang() = %q, want c", got)
	}

	f.Symbol = "spi_insert_title_wrapper"
	f.Schema = "spi"
	if got := f.ExternalSymbol(); got != "spi_insert_title_wrapper" {
		t.Errorf("ExternalSymbol() = %q, want override", got)
	}
	if got := f.QualifiedName(); got != "spi.spi_insert_title" {
		t.Errorf("QualifiedName() = %q", got)
	}
}

func TestFunctionUnmarshalRecordsPosition(t *testing.T) {
	var list []Function
	doc := `
- name: spi_insert_title
  returns: bigint
- name: spi_query_random_id
  returns: bigint
`
	if err := yaml.Unmarshal([]byte(doc), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d functions, want 2", len(list))
	}
	if list[0].Line() == 0 || list[1].Line() <= list[0].Line() {
		t.Errorf("line positions not increasing: %d, %d", list[0].Line(), list[1].Line())
	}
}

func TestVolatilityAndParallel(t *testing.T) {
	if got := VolatilityImmutable.SQL(); got != "IMMUTABLE" {
		t.Errorf("SQL() = %q", got)
	}
	if got := ParallelSafe.SQL(); got != "PARALLEL SAFE" {
		t.Errorf("SQL() = %q", got)
	}
	if Volatility("sometimes").Valid() {
		t.Error("invalid volatility accepted")
	}
	if Parallel("maybe").Valid() {
		t.Error("invalid parallel mode accepted")
	}
	if !Volatility("").Valid() || !Parallel("").Valid() {
		t.Error("zero values should be valid")
	}
}

func TestStringOrStringsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"scalar", `requires: plpgsql`, []string{"plpgsql"}},
		{"list", `requires: [plpgsql, hstore]`, []string{"plpgsql", "hstore"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ext Extension
			if err := yaml.Unmarshal([]byte(tt.doc), &ext); err != nil {
				t.Fatal(err)
			}
			if len(ext.Requires) != len(tt.want) {
				t.Fatalf("got %v, want %v", ext.Requires, tt.want)
			}
			for i := range tt.want {
				if ext.Requires[i] != tt.want[i] {
					t.Errorf("got %v, want %v", ext.Requires, tt.want)
				}
			}
		})
	}
}
