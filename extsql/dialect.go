package extsql

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavor the generator targets. Postgres is the
// primary target and produces the full installation script. SQLite covers
// tables and seed rows only, which is enough to inspect an extension's
// relational surface or exercise the applier without a running server;
// native C function registrations have no SQLite equivalent.
type Dialect int

// Enum values for Dialect.
const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// ParseDialect converts a dialect name from a CLI flag to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return 0, fmt.Errorf("unknown dialect %q (expected postgres or sqlite)", name)
}

// columnType maps a declared SQL type to the dialect's spelling. For
// Postgres the manifest type is used verbatim. For SQLite the serial types
// collapse to INTEGER and the auto-increment behavior is attached to the
// primary-key clause instead.
func (d Dialect) columnType(declared string) string {
	if d != SQLite {
		return declared
	}
	switch strings.ToLower(declared) {
	case "bigserial", "serial", "serial8", "serial4", "bigint", "int8", "integer", "int", "int4", "smallint", "int2":
		return "INTEGER"
	case "text", "varchar", "character varying":
		return "TEXT"
	case "double precision", "float8", "real", "float4", "numeric":
		return "REAL"
	case "bytea":
		return "BLOB"
	default:
		return declared
	}
}

// isSerial reports whether the declared type is sequence-backed.
func isSerial(declared string) bool {
	switch strings.ToLower(declared) {
	case "bigserial", "serial", "serial8", "serial4", "smallserial", "serial2":
		return true
	}
	return false
}
