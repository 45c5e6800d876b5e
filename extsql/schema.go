package extsql

import (
	"fmt"
	"strings"

	"github.com/pgext/go-extension-spec/extspec"
)

// createTable renders a CREATE TABLE statement. A table with no columns
// renders with an empty column list on postgres. SQLite rejects an empty
// column list, so the placeholder relation carries a single nullable
// column there.
func createTable(t *extspec.Table, cfg *genConfig) string {
	var b strings.Builder

	b.WriteString("CREATE TABLE ")
	if cfg.ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(quoteIdent(t.Name))

	if len(t.Columns) == 0 {
		if cfg.dialect == SQLite {
			b.WriteString(" (placeholder INTEGER);")
		} else {
			b.WriteString(" ();")
		}
		return b.String()
	}

	b.WriteString(" (\n")
	for i, col := range t.Columns {
		b.WriteString("  ")
		b.WriteString(columnDef(col, cfg.dialect))
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		if col.Comment != "" {
			b.WriteString(" -- " + col.Comment)
		}
		b.WriteString("\n")
	}
	b.WriteString(");")

	return b.String()
}

// columnDef renders a single column declaration.
func columnDef(col extspec.Column, d Dialect) string {
	var b strings.Builder

	b.WriteString(quoteIdent(col.Name))
	b.WriteString(" ")
	b.WriteString(d.columnType(col.Type))

	if col.NotNull && !(d == SQLite && col.PrimaryKey) {
		b.WriteString(" NOT NULL")
	}
	if col.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
		if d == SQLite && isSerial(col.Type) {
			b.WriteString(" AUTOINCREMENT")
		}
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	if col.Default != "" {
		b.WriteString(" DEFAULT " + col.Default)
	}
	if col.References != "" {
		b.WriteString(fmt.Sprintf(" REFERENCES %s", quoteIdent(col.References)))
	}

	return b.String()
}
