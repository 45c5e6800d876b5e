package extsql

import (
	"fmt"
	"strings"

	"github.com/pgext/go-extension-spec/extspec"
)

// Script renders the full installation script as a single file, the form a
// database's DDL loader consumes at extension-install time. The header
// records provenance; statements follow in generation order separated by
// blank lines. Output is deterministic for a given manifest.
func Script(ext *extspec.Extension, opts ...Option) (string, error) {
	stmts, err := GenerateInstall(ext, opts...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(scriptHeader(ext))
	for _, s := range stmts {
		b.WriteString("\n")
		b.WriteString(s.SQL)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// ScriptFileName returns the conventional installation-script file name,
// e.g. "spi--1.0.sql".
func ScriptFileName(ext *extspec.Extension) string {
	return ext.Name + "--" + ext.Version + ".sql"
}

// scriptHeader renders the generated-file banner. The git commit is
// included when the reader recorded one.
func scriptHeader(ext *extspec.Extension) string {
	var b strings.Builder
	fmt.Fprintf(&b, "/*\nInstallation script for the %s extension, version %s.\n", ext.Name, ext.Version)
	b.WriteString("Generated by genddl. DO NOT EDIT.\n")
	if ext.Commit != "" {
		fmt.Fprintf(&b, "Source commit: %s\n", ext.Commit)
	}
	b.WriteString("*/\n")
	return b.String()
}
