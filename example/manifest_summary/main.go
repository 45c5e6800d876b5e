// Command manifest_summary reads an extension manifest and prints a summary
// of its tables, seed data, and native function registrations.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pgext/go-extension-spec/extreader"
	"github.com/pgext/go-extension-spec/extspec"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <manifest-dir>\n", os.Args[0])
		os.Exit(1)
	}

	ext, err := extreader.Read(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s %s", ext.Name, ext.Version)
	if ext.Comment != "" {
		fmt.Printf(" (%s)", ext.Comment)
	}
	fmt.Println()
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "TABLE\tCOLUMNS\tSEED ROWS\n")
	for _, tbl := range ext.Tables {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", tbl.Name, len(tbl.Columns), seedRows(ext, tbl.Name))
	}
	fmt.Fprintf(tw, "\t\t\n")

	fmt.Fprintf(tw, "FUNCTION\tRETURNS\tFLAGS\n")
	for i := range ext.Functions {
		fn := &ext.Functions[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", fn.Name, returns(fn), flags(fn))
	}
	tw.Flush()
}

// seedRows counts declared seed rows destined for the named table.
func seedRows(ext *extspec.Extension, table string) int {
	n := 0
	for _, s := range ext.Seeds {
		if s.Table == table {
			n += len(s.Rows)
		}
	}
	return n
}

func returns(fn *extspec.Function) string {
	switch {
	case fn.Returns.IsVoid():
		return "void"
	case len(fn.Returns.Table) > 0:
		cols := make([]string, len(fn.Returns.Table))
		for i, c := range fn.Returns.Table {
			cols[i] = c.Name + " " + c.Type
		}
		return "TABLE(" + strings.Join(cols, ", ") + ")"
	case fn.Returns.SetOf:
		return "SETOF " + fn.Returns.Type
	default:
		return fn.Returns.Type
	}
}

func flags(fn *extspec.Function) string {
	var parts []string
	if fn.Strict {
		parts = append(parts, "strict")
	}
	if fn.Volatile != "" {
		parts = append(parts, string(fn.Volatile))
	}
	if fn.Parallel != "" {
		parts = append(parts, "parallel "+string(fn.Parallel))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
