package extspec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Volatility is the optimizer's view of a function's side effects.
type Volatility string

// Enum values for Volatility. The zero value means the declaration carries
// no volatility clause and the engine default (VOLATILE) applies.
const (
	VolatilityImmutable Volatility = "immutable"
	VolatilityStable    Volatility = "stable"
	VolatilityVolatile  Volatility = "volatile"
)

// SQL returns the keyword used in a CREATE FUNCTION clause.
func (v Volatility) SQL() string {
	return strings.ToUpper(string(v))
}

// Valid reports whether v is empty or one of the enum values.
func (v Volatility) Valid() bool {
	switch v {
	case "", VolatilityImmutable, VolatilityStable, VolatilityVolatile:
		return true
	}
	return false
}

// Parallel declares whether a function is safe to execute in parallel
// query workers.
type Parallel string

// Enum values for Parallel. The zero value means no PARALLEL clause is
// emitted and the engine default (UNSAFE) applies.
const (
	ParallelSafe       Parallel = "safe"
	ParallelUnsafe     Parallel = "unsafe"
	ParallelRestricted Parallel = "restricted"
)

// SQL returns the keyword pair used in a CREATE FUNCTION clause.
func (p Parallel) SQL() string {
	return "PARALLEL " + strings.ToUpper(string(p))
}

// Valid reports whether p is empty or one of the enum values.
func (p Parallel) Valid() bool {
	switch p {
	case "", ParallelSafe, ParallelUnsafe, ParallelRestricted:
		return true
	}
	return false
}

// Function is a registration record binding a SQL-callable name to a native
// symbol in the extension's shared module. It declares only the callable
// surface — name, typed parameter list, return shape, strictness, and
// optimizer hints. The implementation behind Symbol is externally linked and
// is never part of the manifest.
type Function struct {
	Name     string      `yaml:"name" json:"name"`
	Schema   string      `yaml:"schema,omitempty" json:"schema,omitempty"`
	Symbol   string      `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Language string      `yaml:"language,omitempty" json:"language,omitempty"`
	Args     []Argument  `yaml:"args,omitempty" json:"args,omitempty"`
	Returns  ReturnShape `yaml:"returns,omitempty" json:"returns,omitempty"`
	Strict   bool        `yaml:"strict,omitempty" json:"strict,omitempty"`
	Volatile Volatility  `yaml:"volatility,omitempty" json:"volatility,omitempty"`
	Parallel Parallel    `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	Cost     float64     `yaml:"cost,omitempty" json:"cost,omitempty"`

	FileMetadata `yaml:"-" json:"-"`
}

// UnmarshalYAML implements [yaml.Unmarshaler] for Function. It decodes the
// mapping normally and records the node position for error reporting.
func (f *Function) UnmarshalYAML(node *yaml.Node) error {
	type plain Function
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*f = Function(p)
	f.FileMetadata.line = node.Line
	f.FileMetadata.column = node.Column
	return nil
}

// ExternalSymbol returns the native symbol the function binds to. It
// defaults to the SQL name when the manifest does not override it.
func (f *Function) ExternalSymbol() string {
	if f.Symbol != "" {
		return f.Symbol
	}
	return f.Name
}

// Lang returns the declared language, defaulting to "c" for native
// module bindings.
func (f *Function) Lang() string {
	if f.Language != "" {
		return f.Language
	}
	return "c"
}

// QualifiedName returns the schema-qualified SQL name.
func (f *Function) QualifiedName() string {
	if f.Schema != "" {
		return f.Schema + "." + f.Name
	}
	return f.Name
}

// Argument is a single named, typed function parameter.
type Argument struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
}

// ReturnShape describes a function's declared return: a scalar type, a set
// of a scalar type, or a named row set (RETURNS TABLE). An empty shape
// means the function returns void.
//
// In YAML the shape is written either as a bare scalar:
//
//	returns: bigint
//
// or as a mapping for set-returning forms:
//
//	returns: {setof: text}
//	returns:
//	  table:
//	    - {name: id, type: bigint}
//	    - {name: title, type: text}
type ReturnShape struct {
	Type  string     `json:"type,omitempty"`
	SetOf bool       `json:"setof,omitempty"`
	Table []Argument `json:"table,omitempty"`
}

// IsVoid reports whether the shape declares no return value.
func (r ReturnShape) IsVoid() bool {
	return r.Type == "" && len(r.Table) == 0
}

// IsSet reports whether the function returns zero or more rows rather than
// a single value.
func (r ReturnShape) IsSet() bool {
	return r.SetOf || len(r.Table) > 0
}

// UnmarshalYAML implements [yaml.Unmarshaler] for ReturnShape, accepting
// the scalar and mapping forms described on the type.
func (r *ReturnShape) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*r = ReturnShape{Type: node.Value}
		return nil
	case yaml.MappingNode:
		var m struct {
			SetOf string     `yaml:"setof"`
			Table []Argument `yaml:"table"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		switch {
		case m.SetOf != "" && len(m.Table) > 0:
			return fmt.Errorf("returns: setof and table are mutually exclusive")
		case m.SetOf != "":
			*r = ReturnShape{Type: m.SetOf, SetOf: true}
		case len(m.Table) > 0:
			*r = ReturnShape{Table: m.Table}
		default:
			return fmt.Errorf("returns: expected setof or table key")
		}
		return nil
	default:
		return fmt.Errorf("returns: expected scalar type name or mapping, got YAML kind %d", node.Kind)
	}
}

// MarshalYAML implements [yaml.Marshaler] for ReturnShape, producing the
// most compact of the accepted input forms.
func (r ReturnShape) MarshalYAML() (any, error) {
	switch {
	case len(r.Table) > 0:
		return map[string]any{"table": r.Table}, nil
	case r.SetOf:
		return map[string]any{"setof": r.Type}, nil
	case r.Type != "":
		return r.Type, nil
	}
	return nil, nil
}
