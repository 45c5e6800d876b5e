// Package extspec defines the data model for PostgreSQL extension manifests.
//
// An extension manifest declares the schema objects and native function
// registrations that make up an extension's installation script: tables,
// seed rows, and SQL-callable functions bound to symbols in a shared module.
// The types here are registration records only — a signature plus a pointer
// to an externally linked implementation — and carry no executable logic of
// their own. Generation of the installation script and application against a
// database live in the extsql package.
package extspec

import "gopkg.in/yaml.v3"

// Extension is a fully-loaded extension manifest. The identity fields map
// onto the extension control file; Tables, Seeds, Functions, and Upgrades
// are populated by extreader from the manifest directory and retain their
// declaration order, which is also their installation order.
type Extension struct {
	Name           string          `yaml:"name" json:"name"`
	Version        string          `yaml:"version" json:"version"`
	Comment        string          `yaml:"comment,omitempty" json:"comment,omitempty"`
	Schema         string          `yaml:"schema,omitempty" json:"schema,omitempty"`
	Relocatable    bool            `yaml:"relocatable,omitempty" json:"relocatable,omitempty"`
	Superuser      bool            `yaml:"superuser,omitempty" json:"superuser,omitempty"`
	Requires       StringOrStrings `yaml:"requires,omitempty" json:"requires,omitempty"`
	ModulePathname string          `yaml:"module_pathname,omitempty" json:"module_pathname,omitempty"`

	Tables    []Table         `yaml:"-" json:"tables,omitempty"`
	Seeds     []Seed          `yaml:"-" json:"seeds,omitempty"`
	Functions []Function      `yaml:"-" json:"functions,omitempty"`
	Upgrades  []UpgradeScript `yaml:"-" json:"upgrades,omitempty"`

	// Commit is the git HEAD commit ID of the manifest directory's
	// repository. Empty unless extreader.WithGitMetadata is used.
	Commit string `yaml:"-" json:"commit,omitempty"`

	FileMetadata `yaml:"-" json:"-"`
}

// Module returns the shared-module path to bind native functions against.
// When the manifest does not override it, the MODULE_PATHNAME placeholder is
// used, which the host engine resolves to the extension's shared library at
// CREATE FUNCTION time.
func (e *Extension) Module() string {
	if e.ModulePathname != "" {
		return e.ModulePathname
	}
	return "MODULE_PATHNAME"
}

// Table declares a relation created at extension installation. A table with
// no columns is legal and renders as a placeholder relation.
type Table struct {
	Name    string   `yaml:"name" json:"name"`
	Comment string   `yaml:"comment,omitempty" json:"comment,omitempty"`
	Columns []Column `yaml:"columns,omitempty" json:"columns,omitempty"`

	FileMetadata `yaml:"-" json:"-"`
}

// UnmarshalYAML implements [yaml.Unmarshaler] for Table. It decodes the
// mapping normally and records the node position for error reporting.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	type plain Table
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Table(p)
	t.FileMetadata.line = node.Line
	t.FileMetadata.column = node.Column
	return nil
}

// Column declares a single table column. Type is the SQL type name verbatim
// (e.g. "bigserial", "text"); no type mapping happens at this layer.
type Column struct {
	Name       string `yaml:"name" json:"name"`
	Type       string `yaml:"type" json:"type"`
	PrimaryKey bool   `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	NotNull    bool   `yaml:"not_null,omitempty" json:"not_null,omitempty"`
	Unique     bool   `yaml:"unique,omitempty" json:"unique,omitempty"`
	Default    string `yaml:"default,omitempty" json:"default,omitempty"`
	References string `yaml:"references,omitempty" json:"references,omitempty"`
	Comment    string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// Seed declares literal rows inserted into a table at installation time.
// Row values are literals only; expressions are not supported, matching the
// installer scripts this model reproduces.
type Seed struct {
	Table   string   `yaml:"table" json:"table"`
	Columns []string `yaml:"columns" json:"columns"`
	Rows    [][]any  `yaml:"rows" json:"rows"`

	FileMetadata `yaml:"-" json:"-"`
}

// UnmarshalYAML implements [yaml.Unmarshaler] for Seed. It decodes the
// mapping normally and records the node position for error reporting.
func (s *Seed) UnmarshalYAML(node *yaml.Node) error {
	type plain Seed
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Seed(p)
	s.FileMetadata.line = node.Line
	s.FileMetadata.column = node.Column
	return nil
}

// UpgradeScript is a verbatim SQL script applied when upgrading the
// extension between two versions.
type UpgradeScript struct {
	From string // version the script upgrades from
	To   string // version the script upgrades to
	SQL  string // script contents, applied verbatim
}

// FileName returns the conventional installation-script file name for the
// upgrade, e.g. "spi--1.0--1.1.sql" for an extension named "spi".
func (u UpgradeScript) FileName(extension string) string {
	return extension + "--" + u.From + "--" + u.To + ".sql"
}
