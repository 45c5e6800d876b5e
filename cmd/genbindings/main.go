// Command genbindings generates typed Go call wrappers for the native
// functions declared in an extension manifest directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pgext/go-extension-spec/cmd/genbindings/internal/bindgen"
)

func main() {
	cfg := bindgen.Config{}

	flag.StringVar(&cfg.ManifestDir, "manifest", "", "Path to manifest directory containing extension.yml (required)")
	flag.StringVar(&cfg.OutputDir, "output", "bindings", "Output directory for the generated Go file")
	flag.StringVar(&cfg.PackageName, "package", "bindings", "Go package name for the generated file")
	flag.StringVar(&cfg.OutputFile, "file", "bindings.go", "File name within the output directory")
	flag.Parse()

	if cfg.ManifestDir == "" {
		fmt.Fprintln(os.Stderr, "error: -manifest flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := bindgen.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
