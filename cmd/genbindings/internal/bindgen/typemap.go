package bindgen

import (
	"strings"

	"github.com/dave/jennifer/jen"
)

// argType returns the Go type used for a function argument with the given
// SQL type. Declared functions are STRICT-friendly so arguments are plain
// (non-nullable) Go values.
func argType(sqlType string) *jen.Statement {
	switch normalizeType(sqlType) {
	case "bigint", "int8", "bigserial":
		return jen.Int64()
	case "integer", "int", "int4", "serial":
		return jen.Int32()
	case "smallint", "int2":
		return jen.Int16()
	case "text", "varchar", "character varying", "char", "name":
		return jen.String()
	case "boolean", "bool":
		return jen.Bool()
	case "real", "float4":
		return jen.Float32()
	case "double precision", "float8":
		return jen.Float64()
	case "bytea":
		return jen.Index().Byte()
	case "timestamp", "timestamptz", "timestamp with time zone", "date":
		return jen.Qual("time", "Time")
	default:
		return jen.Id("any")
	}
}

// scanType returns the Go type used to scan a function result with the
// given SQL type. Results may be SQL NULL, so scannable nullable wrappers
// are used where database/sql provides one.
func scanType(sqlType string) *jen.Statement {
	switch normalizeType(sqlType) {
	case "bigint", "int8", "bigserial":
		return jen.Qual("database/sql", "NullInt64")
	case "integer", "int", "int4", "serial":
		return jen.Qual("database/sql", "NullInt32")
	case "smallint", "int2":
		return jen.Qual("database/sql", "NullInt16")
	case "text", "varchar", "character varying", "char", "name":
		return jen.Qual("database/sql", "NullString")
	case "boolean", "bool":
		return jen.Qual("database/sql", "NullBool")
	case "real", "float4", "double precision", "float8":
		return jen.Qual("database/sql", "NullFloat64")
	case "bytea":
		return jen.Index().Byte()
	case "timestamp", "timestamptz", "timestamp with time zone", "date":
		return jen.Qual("database/sql", "NullTime")
	default:
		return jen.Id("any")
	}
}

// normalizeType lower-cases a SQL type name and strips any length or
// precision suffix like "varchar(64)".
func normalizeType(sqlType string) string {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
