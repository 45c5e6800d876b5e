// Package extreader loads PostgreSQL extension manifest directories into
// extspec types.
//
// The primary entry point is [Read], which accepts a manifest directory path
// and returns a fully-populated [extspec.Extension]. A manifest directory
// contains:
//
//	extension.yml   identity and control-file fields (required)
//	tables.yml      list of table declarations (optional)
//	seed.yml        list of seed-row declarations (optional)
//	functions.yml   list of native function registrations (optional)
//	upgrades/       <from>--<to>.sql upgrade scripts (optional)
//
// The reader uses [io/fs.FS] for filesystem abstraction, which allows
// testing with in-memory filesystems. By default it uses [os.DirFS] for
// the provided path.
package extreader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pgext/go-extension-spec/extspec"
)

// Option configures the behavior of Read.
type Option func(*config)

type config struct {
	fsys         fs.FS
	knownFields  bool
	gitMetadata  bool
	pathPrefix   string
	manifestPath string // original OS path, needed for git operations
}

// WithFS provides a custom filesystem for reading manifest files. When set,
// the path argument to Read is interpreted relative to this filesystem.
func WithFS(fsys fs.FS) Option {
	return func(c *config) {
		c.fsys = fsys
	}
}

// WithKnownFields enables strict YAML validation where only fields defined
// in the model types are allowed. By default, unknown fields are silently
// ignored for forward compatibility.
func WithKnownFields() Option {
	return func(c *config) {
		c.knownFields = true
	}
}

// WithGitMetadata enables git metadata enrichment. When set, the reader
// populates Extension.Commit with the HEAD commit ID of the manifest
// directory's repository, which generators embed in file headers.
func WithGitMetadata() Option {
	return func(c *config) {
		c.gitMetadata = true
	}
}

// WithPathPrefix sets a prefix that is prepended to all
// [extspec.FileMetadata] file paths after loading. This is useful when a
// manifest lives inside a larger repository, allowing error positions to be
// repo-relative (e.g. "extensions/spi/functions.yml").
func WithPathPrefix(prefix string) Option {
	return func(c *config) {
		c.pathPrefix = prefix
	}
}

// Read loads an extension manifest from the given directory path and
// validates it. The returned extension preserves declaration order for
// tables, seeds, and functions, which is also their installation order.
func Read(manifestPath string, opts ...Option) (*extspec.Extension, error) {
	cfg := &config{
		manifestPath: manifestPath,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var root string
	if cfg.fsys != nil {
		root = manifestPath
	} else {
		cfg.fsys = os.DirFS(manifestPath)
		root = "."
	}

	ext := &extspec.Extension{}

	// Read identity.
	extensionPath := path.Join(root, "extension.yml")
	if err := decodeYAML(cfg.fsys, extensionPath, ext, cfg.knownFields); err != nil {
		return nil, fmt.Errorf("reading extension manifest: %w", err)
	}
	extspec.AnnotateFileMetadata(extensionPath, ext)

	// Read tables (optional).
	tablesPath := path.Join(root, "tables.yml")
	if ok, err := decodeOptionalYAML(cfg.fsys, tablesPath, &ext.Tables, cfg.knownFields); err != nil {
		return nil, fmt.Errorf("reading tables: %w", err)
	} else if ok {
		extspec.AnnotateFileMetadata(tablesPath, &ext.Tables)
	}

	// Read seed rows (optional).
	seedPath := path.Join(root, "seed.yml")
	if ok, err := decodeOptionalYAML(cfg.fsys, seedPath, &ext.Seeds, cfg.knownFields); err != nil {
		return nil, fmt.Errorf("reading seed rows: %w", err)
	} else if ok {
		extspec.AnnotateFileMetadata(seedPath, &ext.Seeds)
	}

	// Read function registrations (optional).
	functionsPath := path.Join(root, "functions.yml")
	if ok, err := decodeOptionalYAML(cfg.fsys, functionsPath, &ext.Functions, cfg.knownFields); err != nil {
		return nil, fmt.Errorf("reading functions: %w", err)
	} else if ok {
		extspec.AnnotateFileMetadata(functionsPath, &ext.Functions)
	}

	// Read upgrade scripts (optional).
	upgrades, err := readUpgrades(cfg.fsys, path.Join(root, "upgrades"))
	if err != nil {
		return nil, fmt.Errorf("reading upgrades: %w", err)
	}
	ext.Upgrades = upgrades

	// Git metadata enrichment.
	if cfg.gitMetadata {
		commit, err := gitRevParseHEAD(cfg.manifestPath)
		if err != nil {
			return nil, fmt.Errorf("reading git commit: %w", err)
		}
		ext.Commit = commit
	}

	// Prefix all FileMetadata file paths.
	if cfg.pathPrefix != "" {
		extspec.PrefixFileMetadata(cfg.pathPrefix, ext)
	}

	if err := extspec.Validate(ext); err != nil {
		return nil, fmt.Errorf("validating %s: %w", manifestPath, err)
	}

	return ext, nil
}

// readUpgrades loads <from>--<to>.sql scripts from the upgrades directory,
// sorted by file name so application order is deterministic. A missing
// directory yields no upgrades.
func readUpgrades(fsys fs.FS, dir string) ([]extspec.UpgradeScript, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var upgrades []extspec.UpgradeScript
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		from, to, err := parseUpgradeName(entry.Name())
		if err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		upgrades = append(upgrades, extspec.UpgradeScript{
			From: from,
			To:   to,
			SQL:  string(data),
		})
	}

	sort.Slice(upgrades, func(i, j int) bool {
		if upgrades[i].From != upgrades[j].From {
			return upgrades[i].From < upgrades[j].From
		}
		return upgrades[i].To < upgrades[j].To
	})

	return upgrades, nil
}

// parseUpgradeName splits "<from>--<to>.sql" into its version components.
func parseUpgradeName(name string) (from, to string, err error) {
	base := strings.TrimSuffix(name, ".sql")
	from, to, ok := strings.Cut(base, "--")
	if !ok || from == "" || to == "" {
		return "", "", fmt.Errorf("upgrade script %q: name must be <from>--<to>.sql", name)
	}
	return from, to, nil
}
