package extsql

import (
	"context"
	"database/sql"
	"fmt"
)

// ApplyOption configures Apply.
type ApplyOption func(*applyConfig)

type applyConfig struct {
	progress func(Statement)
}

// WithProgress registers a callback invoked before each statement is
// executed. Callers use it for logging; it must not modify the statement.
func WithProgress(fn func(Statement)) ApplyOption {
	return func(c *applyConfig) {
		c.progress = fn
	}
}

// Apply executes the statements in order inside a single transaction, so
// the whole script either installs or leaves the database untouched —
// the install/upgrade-transaction contract of extension scripts. The first
// failing statement aborts the installation and the returned error names
// the manifest object that produced it.
//
// Apply imports only database/sql; the caller chooses the driver and
// passes an open *sql.DB.
func Apply(ctx context.Context, db *sql.DB, stmts []Statement, opts ...ApplyOption) error {
	cfg := &applyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range stmts {
		if cfg.progress != nil {
			cfg.progress(s)
		}
		if _, err := tx.ExecContext(ctx, s.SQL); err != nil {
			return fmt.Errorf("applying %s %q: %w", s.Kind, s.Object, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing installation: %w", err)
	}
	return nil
}
