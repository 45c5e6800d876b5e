// Package extsql generates and applies PostgreSQL extension installation
// scripts from extspec manifests.
//
// [GenerateInstall] turns a manifest into an ordered list of statements:
// CREATE TABLE for each declared table, one INSERT per seed declaration,
// and CREATE FUNCTION for each native function registration. [Script]
// renders the statements as a single installer file of the kind a database
// loads at extension-install time, and [ControlFile] produces the matching
// extension control file. [Apply] executes the statements against a live
// database inside one transaction.
//
// Statement generation is deterministic: object order follows manifest
// declaration order, with all tables first, then seed rows, then function
// registrations.
package extsql

import "fmt"

// StatementKind classifies a generated statement.
type StatementKind string

// Enum values for StatementKind.
const (
	KindCreateTable    StatementKind = "create table"
	KindInsertSeed     StatementKind = "insert seed"
	KindCreateFunction StatementKind = "create function"
	KindUpgrade        StatementKind = "upgrade"
)

// Statement is a single generated DDL/DML statement together with the
// manifest object it was generated from, so application errors can name
// the failing object.
type Statement struct {
	Kind   StatementKind
	Object string // manifest object name (table or function)
	SQL    string // statement text, without a trailing newline
}

func (s Statement) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.Object)
}
