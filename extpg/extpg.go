// Package extpg verifies an installed extension against a live PostgreSQL
// database. It checks the observable installation contract: declared tables
// exist, seed rows are present, and each registered function is callable
// under its declared name with the declared strictness and optimizer hints.
//
// The checks read pg_catalog through a pgx connection; both *pgx.Conn and
// *pgxpool.Pool satisfy [Querier].
package extpg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pgext/go-extension-spec/extspec"
)

// Querier is the subset of pgx query methods the checks need.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ErrNotFound is returned when a looked-up object does not exist in the
// target database.
var ErrNotFound = errors.New("object not found")

// TableExists reports whether the named relation exists.
func TableExists(ctx context.Context, q Querier, name string) (bool, error) {
	var regclass *uint32
	err := q.QueryRow(ctx, "SELECT to_regclass($1)::oid", name).Scan(&regclass)
	if err != nil {
		return false, fmt.Errorf("looking up relation %s: %w", name, err)
	}
	return regclass != nil, nil
}

// RowCount returns the number of rows in the named table. The identifier
// must come from a validated manifest; it is quoted but not otherwise
// sanitized.
func RowCount(ctx context.Context, q Querier, table string) (int64, error) {
	var n int64
	sql := fmt.Sprintf("SELECT count(*) FROM %s", pgx.Identifier{table}.Sanitize())
	if err := q.QueryRow(ctx, sql).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows in %s: %w", table, err)
	}
	return n, nil
}

// FunctionInfo is the catalog's view of a registered function.
type FunctionInfo struct {
	Name       string
	Schema     string
	Language   string
	Strict     bool
	Volatility extspec.Volatility
	Parallel   extspec.Parallel
	Arguments  string // pg_get_function_arguments output
	Result     string // pg_get_function_result output
}

// LookupFunction reads a function's registration record from pg_proc.
// The schema defaults to "public". Returns ErrNotFound when no function
// with the name exists in the schema.
func LookupFunction(ctx context.Context, q Querier, schema, name string) (*FunctionInfo, error) {
	if schema == "" {
		schema = "public"
	}

	const query = `
SELECT p.proisstrict, p.provolatile, p.proparallel, l.lanname,
       pg_get_function_arguments(p.oid), pg_get_function_result(p.oid)
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
JOIN pg_language l ON l.oid = p.prolang
WHERE n.nspname = $1 AND p.proname = $2`

	info := &FunctionInfo{Name: name, Schema: schema}
	var volatile, parallel string
	err := q.QueryRow(ctx, query, schema, name).Scan(
		&info.Strict, &volatile, &parallel, &info.Language, &info.Arguments, &info.Result,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("function %s.%s: %w", schema, name, ErrNotFound)
		}
		return nil, fmt.Errorf("looking up function %s.%s: %w", schema, name, err)
	}

	info.Volatility = volatilityFromCode(volatile)
	info.Parallel = parallelFromCode(parallel)
	return info, nil
}

// Verify checks the full installation contract of an extension and reports
// all violations together. Seed-row counts match only immediately after a
// fresh installation; on a database with subsequent writes the count checks
// are expected to fail and callers should rely on the schema checks alone.
func Verify(ctx context.Context, q Querier, ext *extspec.Extension) error {
	var errs []error

	for i := range ext.Tables {
		t := &ext.Tables[i]
		ok, err := TableExists(ctx, q, t.Name)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, fmt.Errorf("table %s: %w", t.Name, ErrNotFound))
		}
	}

	for table, want := range expectedSeedRows(ext) {
		got, err := RowCount(ctx, q, table)
		if err != nil {
			return err
		}
		if got != want {
			errs = append(errs, fmt.Errorf("table %s: %d rows, want %d seed rows", table, got, want))
		}
	}

	for i := range ext.Functions {
		f := &ext.Functions[i]
		info, err := LookupFunction(ctx, q, f.Schema, f.Name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				errs = append(errs, err)
				continue
			}
			return err
		}
		errs = append(errs, compareFunction(f, info)...)
	}

	return errors.Join(errs...)
}

// compareFunction checks a catalog record against its declaration.
// Volatility and parallel mode are only compared when the manifest
// declares them; otherwise the engine defaults are in effect and any
// value is acceptable.
func compareFunction(f *extspec.Function, info *FunctionInfo) []error {
	var errs []error

	if info.Strict != f.Strict {
		errs = append(errs, fmt.Errorf("function %s: strict = %t, want %t", f.Name, info.Strict, f.Strict))
	}
	if f.Volatile != "" && info.Volatility != f.Volatile {
		errs = append(errs, fmt.Errorf("function %s: volatility = %s, want %s", f.Name, info.Volatility, f.Volatile))
	}
	if f.Parallel != "" && info.Parallel != f.Parallel {
		errs = append(errs, fmt.Errorf("function %s: parallel = %s, want %s", f.Name, info.Parallel, f.Parallel))
	}
	if info.Language != f.Lang() {
		errs = append(errs, fmt.Errorf("function %s: language = %s, want %s", f.Name, info.Language, f.Lang()))
	}

	return errs
}

// expectedSeedRows sums declared seed rows per table.
func expectedSeedRows(ext *extspec.Extension) map[string]int64 {
	counts := make(map[string]int64)
	for _, s := range ext.Seeds {
		counts[s.Table] += int64(len(s.Rows))
	}
	return counts
}

// volatilityFromCode maps a pg_proc.provolatile code to the manifest enum.
func volatilityFromCode(code string) extspec.Volatility {
	switch code {
	case "i":
		return extspec.VolatilityImmutable
	case "s":
		return extspec.VolatilityStable
	case "v":
		return extspec.VolatilityVolatile
	}
	return ""
}

// parallelFromCode maps a pg_proc.proparallel code to the manifest enum.
func parallelFromCode(code string) extspec.Parallel {
	switch code {
	case "s":
		return extspec.ParallelSafe
	case "r":
		return extspec.ParallelRestricted
	case "u":
		return extspec.ParallelUnsafe
	}
	return ""
}
