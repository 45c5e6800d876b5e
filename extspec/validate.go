package extspec

import (
	"errors"
	"fmt"
	"regexp"
)

// identPattern matches unquoted SQL identifiers the manifest format
// accepts for object, column, and argument names.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate performs structural checks on a loaded extension: identity
// fields, identifier syntax, name uniqueness, seed arity against the
// declared table, and function enum values. All problems are reported
// together as a joined error, each citing the manifest position when the
// record carries one.
func Validate(ext *Extension) error {
	var errs []error

	fail := func(m FileMetadata, format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		if pos := m.Pos(); pos != "" {
			msg = pos + ": " + msg
		}
		errs = append(errs, errors.New(msg))
	}

	if ext.Name == "" {
		fail(ext.FileMetadata, "extension name is required")
	} else if !identPattern.MatchString(ext.Name) {
		fail(ext.FileMetadata, "extension name %q is not a valid identifier", ext.Name)
	}
	if ext.Version == "" {
		fail(ext.FileMetadata, "extension version is required")
	}

	tables := make(map[string]*Table, len(ext.Tables))
	for i := range ext.Tables {
		t := &ext.Tables[i]
		if !identPattern.MatchString(t.Name) {
			fail(t.FileMetadata, "table name %q is not a valid identifier", t.Name)
			continue
		}
		if _, dup := tables[t.Name]; dup {
			fail(t.FileMetadata, "duplicate table %q", t.Name)
			continue
		}
		tables[t.Name] = t

		cols := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			if !identPattern.MatchString(c.Name) {
				fail(t.FileMetadata, "table %q: column name %q is not a valid identifier", t.Name, c.Name)
			}
			if c.Type == "" {
				fail(t.FileMetadata, "table %q: column %q has no type", t.Name, c.Name)
			}
			if cols[c.Name] {
				fail(t.FileMetadata, "table %q: duplicate column %q", t.Name, c.Name)
			}
			cols[c.Name] = true
		}
	}

	for i := range ext.Seeds {
		s := &ext.Seeds[i]
		t, ok := tables[s.Table]
		if !ok {
			fail(s.FileMetadata, "seed references unknown table %q", s.Table)
			continue
		}
		declared := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			declared[c.Name] = true
		}
		for _, c := range s.Columns {
			if !declared[c] {
				fail(s.FileMetadata, "seed for table %q references unknown column %q", s.Table, c)
			}
		}
		if len(s.Rows) == 0 {
			fail(s.FileMetadata, "seed for table %q has no rows", s.Table)
		}
		for r, row := range s.Rows {
			if len(row) != len(s.Columns) {
				fail(s.FileMetadata, "seed for table %q: row %d has %d values, want %d", s.Table, r, len(row), len(s.Columns))
			}
		}
	}

	funcs := make(map[string]bool, len(ext.Functions))
	for i := range ext.Functions {
		f := &ext.Functions[i]
		if !identPattern.MatchString(f.Name) {
			fail(f.FileMetadata, "function name %q is not a valid identifier", f.Name)
			continue
		}
		if funcs[f.QualifiedName()] {
			fail(f.FileMetadata, "duplicate function %q", f.QualifiedName())
		}
		funcs[f.QualifiedName()] = true

		if !f.Volatile.Valid() {
			fail(f.FileMetadata, "function %q: invalid volatility %q", f.Name, f.Volatile)
		}
		if !f.Parallel.Valid() {
			fail(f.FileMetadata, "function %q: invalid parallel mode %q", f.Name, f.Parallel)
		}
		for _, a := range f.Args {
			if a.Name != "" && !identPattern.MatchString(a.Name) {
				fail(f.FileMetadata, "function %q: argument name %q is not a valid identifier", f.Name, a.Name)
			}
			if a.Type == "" {
				fail(f.FileMetadata, "function %q: argument %q has no type", f.Name, a.Name)
			}
		}
		for _, c := range f.Returns.Table {
			if c.Name == "" || c.Type == "" {
				fail(f.FileMetadata, "function %q: table return columns need a name and a type", f.Name)
			}
		}
	}

	return errors.Join(errs...)
}
