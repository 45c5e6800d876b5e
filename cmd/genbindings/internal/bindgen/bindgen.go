// Package bindgen generates typed Go call wrappers for the native functions
// declared in an extension manifest. The generated package exposes one
// method per declared function on a Queries struct that works with any
// database/sql-compatible handle (DB, Conn, or Tx).
package bindgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgext/go-extension-spec/extreader"
)

// Config holds all configuration for a generator run.
type Config struct {
	ManifestDir string // Directory containing extension.yml and friends.
	OutputDir   string // Directory to write the generated Go file to.
	PackageName string // Package name for the generated file (default "bindings").
	OutputFile  string // File name within OutputDir (default "bindings.go").
}

// Run executes the full binding generation pipeline: read and validate the
// manifest, then emit one Go file with a wrapper per declared function.
func Run(cfg Config) error {
	ext, err := extreader.Read(cfg.ManifestDir)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	pkgName := cfg.PackageName
	if pkgName == "" {
		pkgName = "bindings"
	}
	outFile := cfg.OutputFile
	if outFile == "" {
		outFile = "bindings.go"
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	emitter := NewEmitter(pkgName)
	f, err := emitter.Emit(ext)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, outFile)
	if err := f.Save(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
