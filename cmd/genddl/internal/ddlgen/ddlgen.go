// Package ddlgen turns an extension manifest directory into the on-disk
// SQL artifacts a database server expects: the versioned installation
// script, the extension control file, and any upgrade scripts.
package ddlgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgext/go-extension-spec/extreader"
	"github.com/pgext/go-extension-spec/extspec"
	"github.com/pgext/go-extension-spec/extsql"
)

// Config holds all configuration for a generator run.
type Config struct {
	ManifestDir string // Directory containing extension.yml and friends.
	OutputDir   string // Output directory for generated SQL files.
	Dialect     string // Target dialect name (default "postgres").
	IfNotExists bool   // Emit re-runnable DDL with existence guards.
	GitMetadata bool   // Record the manifest repository's HEAD commit.
}

// Run reads and validates the manifest, then writes the installation
// script, the control file, and one file per upgrade script.
func Run(cfg Config) error {
	dialect := extsql.Postgres
	if cfg.Dialect != "" {
		var err error
		dialect, err = extsql.ParseDialect(cfg.Dialect)
		if err != nil {
			return err
		}
	}

	var readOpts []extreader.Option
	if cfg.GitMetadata {
		readOpts = append(readOpts, extreader.WithGitMetadata())
	}
	ext, err := extreader.Read(cfg.ManifestDir, readOpts...)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	genOpts := []extsql.Option{extsql.WithDialect(dialect)}
	if cfg.IfNotExists {
		genOpts = append(genOpts, extsql.WithIfNotExists())
	}
	script, err := extsql.Script(ext, genOpts...)
	if err != nil {
		return fmt.Errorf("generating installation script: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := writeFile(cfg.OutputDir, extsql.ScriptFileName(ext), script); err != nil {
		return err
	}

	// The control file is engine metadata, not SQL. Only the postgres
	// dialect has a use for it.
	if dialect == extsql.Postgres {
		if err := writeFile(cfg.OutputDir, extsql.ControlFileName(ext), extsql.ControlFile(ext)); err != nil {
			return err
		}
	}

	for _, up := range ext.Upgrades {
		if err := writeFile(cfg.OutputDir, up.FileName(ext.Name), upgradeContents(up)); err != nil {
			return err
		}
	}
	return nil
}

func upgradeContents(up extspec.UpgradeScript) string {
	return extsql.GenerateUpgrade(up).SQL
}

func writeFile(dir, name, contents string) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
