package extsql

import (
	"fmt"

	"github.com/pgext/go-extension-spec/extspec"
)

// Option configures statement generation.
type Option func(*genConfig)

type genConfig struct {
	dialect     Dialect
	ifNotExists bool
}

// WithDialect selects the target SQL dialect. The default is Postgres.
func WithDialect(d Dialect) Option {
	return func(c *genConfig) {
		c.dialect = d
	}
}

// WithIfNotExists emits idempotent guards: CREATE TABLE IF NOT EXISTS and
// CREATE OR REPLACE FUNCTION. Without it the generated script matches the
// classic installer contract — re-applying against a database where the
// objects already exist fails with the host engine's duplicate-object
// error.
func WithIfNotExists() Option {
	return func(c *genConfig) {
		c.ifNotExists = true
	}
}

// GenerateInstall produces the installation statements for an extension in
// a fixed order: tables in declaration order, then seed rows, then function
// registrations. The order matters — seeds reference tables, and the whole
// list is expected to be applied sequentially inside one transaction.
func GenerateInstall(ext *extspec.Extension, opts ...Option) ([]Statement, error) {
	cfg := &genConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	stmts := make([]Statement, 0, len(ext.Tables)+len(ext.Seeds)+len(ext.Functions))

	for i := range ext.Tables {
		t := &ext.Tables[i]
		stmts = append(stmts, Statement{
			Kind:   KindCreateTable,
			Object: t.Name,
			SQL:    createTable(t, cfg),
		})
	}

	for i := range ext.Seeds {
		s := &ext.Seeds[i]
		sql, err := insertSeed(s)
		if err != nil {
			return nil, fmt.Errorf("seed for table %s: %w", s.Table, err)
		}
		stmts = append(stmts, Statement{
			Kind:   KindInsertSeed,
			Object: s.Table,
			SQL:    sql,
		})
	}

	for i := range ext.Functions {
		f := &ext.Functions[i]
		if cfg.dialect == SQLite {
			return nil, fmt.Errorf("function %s: native function registrations cannot be generated for sqlite", f.Name)
		}
		stmts = append(stmts, Statement{
			Kind:   KindCreateFunction,
			Object: f.Name,
			SQL:    createFunction(f, ext, cfg),
		})
	}

	return stmts, nil
}

// GenerateUpgrade wraps an upgrade script as a single verbatim statement.
// Upgrade scripts are authored SQL and are not reparsed or split.
func GenerateUpgrade(up extspec.UpgradeScript) Statement {
	return Statement{
		Kind:   KindUpgrade,
		Object: up.From + "--" + up.To,
		SQL:    up.SQL,
	}
}
