package extsql

import (
	"fmt"
	"strings"

	"github.com/pgext/go-extension-spec/extspec"
)

// insertSeed renders one multi-row INSERT for a seed declaration. Values
// are rendered as literals so the statement is self-contained in the
// installation script, matching the installer files this package
// reproduces.
func insertSeed(s *extspec.Seed) (string, error) {
	// A VALUES clause needs at least one row.
	if len(s.Rows) == 0 {
		return "", fmt.Errorf("seed for table %s has no rows", s.Table)
	}

	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = quoteIdent(c)
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdent(s.Table))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES\n")

	for i, row := range s.Rows {
		vals := make([]string, len(row))
		for j, v := range row {
			lit, err := quoteLiteral(v)
			if err != nil {
				return "", fmt.Errorf("row %d column %s: %w", i, s.Columns[j], err)
			}
			vals[j] = lit
		}
		b.WriteString("  (")
		b.WriteString(strings.Join(vals, ", "))
		b.WriteString(")")
		if i < len(s.Rows)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + ";", nil
}
