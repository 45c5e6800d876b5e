// Command genddl generates the SQL installation script, control file, and
// upgrade scripts for an extension from its declarative manifest directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pgext/go-extension-spec/cmd/genddl/internal/ddlgen"
)

func main() {
	cfg := ddlgen.Config{}

	flag.StringVar(&cfg.ManifestDir, "manifest", "", "Path to manifest directory containing extension.yml (required)")
	flag.StringVar(&cfg.OutputDir, "output", "sql", "Output directory for generated SQL files")
	flag.StringVar(&cfg.Dialect, "dialect", "postgres", "Target dialect (postgres or sqlite)")
	flag.BoolVar(&cfg.IfNotExists, "if-not-exists", false, "Emit re-runnable DDL with existence guards")
	flag.BoolVar(&cfg.GitMetadata, "git-metadata", false, "Record the manifest repository's HEAD commit in the script header")
	flag.Parse()

	if cfg.ManifestDir == "" {
		fmt.Fprintln(os.Stderr, "error: -manifest flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := ddlgen.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
