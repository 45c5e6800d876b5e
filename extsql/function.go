package extsql

import (
	"fmt"
	"strings"

	"github.com/pgext/go-extension-spec/extspec"
)

// createFunction renders a CREATE FUNCTION registration binding a SQL name
// to a native symbol in the extension's shared module. The statement carries
// only the declared signature and hints; the implementation is externally
// linked and resolved by the host engine through the module pathname.
func createFunction(f *extspec.Function, ext *extspec.Extension, cfg *genConfig) string {
	var b strings.Builder

	if cfg.ifNotExists {
		b.WriteString("CREATE OR REPLACE FUNCTION ")
	} else {
		b.WriteString("CREATE FUNCTION ")
	}
	b.WriteString(functionName(f, ext))
	b.WriteString("(")
	for i, a := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if a.Name != "" {
			b.WriteString(quoteIdent(a.Name))
			b.WriteString(" ")
		}
		b.WriteString(a.Type)
		if a.Default != "" {
			b.WriteString(" DEFAULT " + a.Default)
		}
	}
	b.WriteString(") RETURNS ")
	b.WriteString(returnClause(f.Returns))
	b.WriteString("\n")

	if f.Strict {
		b.WriteString("STRICT ")
	}
	if f.Volatile != "" {
		b.WriteString(f.Volatile.SQL() + " ")
	}
	if f.Parallel != "" {
		b.WriteString(f.Parallel.SQL() + " ")
	}
	if f.Cost > 0 {
		b.WriteString(fmt.Sprintf("COST %v ", f.Cost))
	}
	b.WriteString("LANGUAGE " + f.Lang() + "\n")

	b.WriteString(fmt.Sprintf("AS '%s', '%s';", ext.Module(), f.ExternalSymbol()))

	return b.String()
}

// functionName renders the schema-qualified function name. A per-function
// schema wins over the extension-level schema.
func functionName(f *extspec.Function, ext *extspec.Extension) string {
	schema := f.Schema
	if schema == "" {
		schema = ext.Schema
	}
	if schema != "" {
		return quoteIdent(schema) + "." + quoteIdent(f.Name)
	}
	return quoteIdent(f.Name)
}

// returnClause renders the RETURNS clause for a return shape.
func returnClause(r extspec.ReturnShape) string {
	switch {
	case len(r.Table) > 0:
		cols := make([]string, len(r.Table))
		for i, c := range r.Table {
			cols[i] = quoteIdent(c.Name) + " " + c.Type
		}
		return "TABLE(" + strings.Join(cols, ", ") + ")"
	case r.SetOf:
		return "SETOF " + r.Type
	case r.Type != "":
		return r.Type
	default:
		return "void"
	}
}
