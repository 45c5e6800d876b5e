package bindgen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/pgext/go-extension-spec/extspec"
)

// Emitter renders the generated bindings package using jennifer.
type Emitter struct {
	pkgName string
}

// NewEmitter creates an emitter for the named output package.
func NewEmitter(pkgName string) *Emitter {
	return &Emitter{pkgName: pkgName}
}

// Emit builds the generated file for the extension: the DBTX interface,
// the Queries struct, and one call wrapper per declared function.
func (e *Emitter) Emit(ext *extspec.Extension) (*jen.File, error) {
	f := jen.NewFile(e.pkgName)
	f.HeaderComment(fmt.Sprintf("Code generated by genbindings for the %s extension. DO NOT EDIT.", ext.Name))

	e.emitDBTX(f)
	e.emitQueries(f)

	for i := range ext.Functions {
		fn := &ext.Functions[i]
		if err := e.emitFunction(f, ext, fn); err != nil {
			return nil, fmt.Errorf("emitting wrapper for %s: %w", fn.Name, err)
		}
	}
	return f, nil
}

// emitDBTX declares the minimal database handle interface. *sql.DB,
// *sql.Conn, and *sql.Tx all satisfy it.
func (e *Emitter) emitDBTX(f *jen.File) {
	f.Comment("DBTX is the database handle the wrappers call through.")
	f.Comment("*sql.DB, *sql.Conn, and *sql.Tx all satisfy it.")
	f.Type().Id("DBTX").Interface(
		jen.Id("ExecContext").Params(
			jen.Qual("context", "Context"), jen.String(), jen.Op("...").Id("any"),
		).Params(jen.Qual("database/sql", "Result"), jen.Error()),
		jen.Id("QueryContext").Params(
			jen.Qual("context", "Context"), jen.String(), jen.Op("...").Id("any"),
		).Params(jen.Op("*").Qual("database/sql", "Rows"), jen.Error()),
		jen.Id("QueryRowContext").Params(
			jen.Qual("context", "Context"), jen.String(), jen.Op("...").Id("any"),
		).Params(jen.Op("*").Qual("database/sql", "Row")),
	)
	f.Line()
}

func (e *Emitter) emitQueries(f *jen.File) {
	f.Comment("Queries exposes one method per declared extension function.")
	f.Type().Id("Queries").Struct(
		jen.Id("db").Id("DBTX"),
	)
	f.Line()
	f.Comment("New creates Queries backed by the given database handle.")
	f.Func().Id("New").Params(jen.Id("db").Id("DBTX")).Op("*").Id("Queries").Block(
		jen.Return(jen.Op("&").Id("Queries").Values(jen.Dict{
			jen.Id("db"): jen.Id("db"),
		})),
	)
	f.Line()
}

func (e *Emitter) emitFunction(f *jen.File, ext *extspec.Extension, fn *extspec.Function) error {
	goName := GoName(fn.Name)
	callSQL := callStatement(ext, fn)

	params := []jen.Code{jen.Id("ctx").Qual("context", "Context")}
	callArgs := []jen.Code{jen.Id("ctx"), jen.Lit(callSQL)}
	for i, arg := range fn.Args {
		p := paramName(arg.Name, i)
		params = append(params, jen.Id(p).Add(argType(arg.Type)))
		callArgs = append(callArgs, jen.Id(p))
	}

	switch {
	case fn.Returns.IsVoid():
		e.emitVoidWrapper(f, fn, goName, params, callArgs)
	case len(fn.Returns.Table) > 0:
		e.emitTableWrapper(f, fn, goName, params, callArgs)
	case fn.Returns.SetOf:
		e.emitSetWrapper(f, fn, goName, params, callArgs)
	default:
		e.emitScalarWrapper(f, fn, goName, params, callArgs)
	}
	return nil
}

func (e *Emitter) emitScalarWrapper(f *jen.File, fn *extspec.Function, goName string, params, callArgs []jen.Code) {
	retType := scanType(fn.Returns.Type)
	f.Comment(fmt.Sprintf("%s calls the %s function.", goName, fn.Name))
	f.Func().Params(jen.Id("q").Op("*").Id("Queries")).Id(goName).
		Params(params...).
		Params(retType.Clone(), jen.Error()).
		Block(
			jen.Var().Id("out").Add(retType.Clone()),
			jen.If(
				jen.Err().Op(":=").Id("q").Dot("db").Dot("QueryRowContext").Call(callArgs...).Dot("Scan").Call(jen.Op("&").Id("out")),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Id("out"), jen.Qual("fmt", "Errorf").Call(jen.Lit("calling "+fn.Name+": %w"), jen.Err())),
			),
			jen.Return(jen.Id("out"), jen.Nil()),
		)
	f.Line()
}

func (e *Emitter) emitVoidWrapper(f *jen.File, fn *extspec.Function, goName string, params, callArgs []jen.Code) {
	f.Comment(fmt.Sprintf("%s calls the %s function.", goName, fn.Name))
	f.Func().Params(jen.Id("q").Op("*").Id("Queries")).Id(goName).
		Params(params...).
		Error().
		Block(
			jen.If(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("q").Dot("db").Dot("ExecContext").Call(callArgs...),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("calling "+fn.Name+": %w"), jen.Err())),
			),
			jen.Return(jen.Nil()),
		)
	f.Line()
}

func (e *Emitter) emitSetWrapper(f *jen.File, fn *extspec.Function, goName string, params, callArgs []jen.Code) {
	elemType := scanType(fn.Returns.Type)
	f.Comment(fmt.Sprintf("%s calls the %s set-returning function.", goName, fn.Name))
	f.Func().Params(jen.Id("q").Op("*").Id("Queries")).Id(goName).
		Params(params...).
		Params(jen.Index().Add(elemType.Clone()), jen.Error()).
		Block(
			jen.List(jen.Id("rows"), jen.Err()).Op(":=").Id("q").Dot("db").Dot("QueryContext").Call(callArgs...),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit("calling "+fn.Name+": %w"), jen.Err())),
			),
			jen.Defer().Id("rows").Dot("Close").Call(),
			jen.Var().Id("out").Index().Add(elemType.Clone()),
			jen.For(jen.Id("rows").Dot("Next").Call()).Block(
				jen.Var().Id("v").Add(elemType.Clone()),
				jen.If(
					jen.Err().Op(":=").Id("rows").Dot("Scan").Call(jen.Op("&").Id("v")),
					jen.Err().Op("!=").Nil(),
				).Block(
					jen.Return(jen.Nil(), jen.Err()),
				),
				jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("v")),
			),
			jen.If(
				jen.Err().Op(":=").Id("rows").Dot("Err").Call(),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.Return(jen.Id("out"), jen.Nil()),
		)
	f.Line()
}

func (e *Emitter) emitTableWrapper(f *jen.File, fn *extspec.Function, goName string, params, callArgs []jen.Code) {
	rowName := goName + "Row"

	fields := make([]jen.Code, 0, len(fn.Returns.Table))
	scanTargets := make([]jen.Code, 0, len(fn.Returns.Table))
	for _, col := range fn.Returns.Table {
		fieldName := GoName(col.Name)
		fields = append(fields, jen.Id(fieldName).Add(scanType(col.Type)))
		scanTargets = append(scanTargets, jen.Op("&").Id("r").Dot(fieldName))
	}

	f.Comment(fmt.Sprintf("%s is one result row of %s.", rowName, fn.Name))
	f.Type().Id(rowName).Struct(fields...)
	f.Line()

	f.Comment(fmt.Sprintf("%s calls the %s set-returning function.", goName, fn.Name))
	f.Func().Params(jen.Id("q").Op("*").Id("Queries")).Id(goName).
		Params(params...).
		Params(jen.Index().Id(rowName), jen.Error()).
		Block(
			jen.List(jen.Id("rows"), jen.Err()).Op(":=").Id("q").Dot("db").Dot("QueryContext").Call(callArgs...),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit("calling "+fn.Name+": %w"), jen.Err())),
			),
			jen.Defer().Id("rows").Dot("Close").Call(),
			jen.Var().Id("out").Index().Id(rowName),
			jen.For(jen.Id("rows").Dot("Next").Call()).Block(
				jen.Var().Id("r").Id(rowName),
				jen.If(
					jen.Err().Op(":=").Id("rows").Dot("Scan").Call(scanTargets...),
					jen.Err().Op("!=").Nil(),
				).Block(
					jen.Return(jen.Nil(), jen.Err()),
				),
				jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("r")),
			),
			jen.If(
				jen.Err().Op(":=").Id("rows").Dot("Err").Call(),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.Return(jen.Id("out"), jen.Nil()),
		)
	f.Line()
}

// callStatement builds the SQL text the wrapper executes. Scalar and void
// functions are invoked in a bare SELECT, set-returning functions in the
// FROM clause so each element arrives as its own row.
func callStatement(ext *extspec.Extension, fn *extspec.Function) string {
	name := fn.QualifiedName()
	if fn.Schema == "" && ext.Schema != "" {
		name = ext.Schema + "." + fn.Name
	}

	placeholders := make([]string, len(fn.Args))
	for i := range fn.Args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	call := name + "(" + strings.Join(placeholders, ", ") + ")"

	if fn.Returns.IsSet() {
		return "SELECT * FROM " + call
	}
	return "SELECT " + call
}

// paramName converts a SQL argument name to an unexported Go parameter
// name, e.g. "query_id" becomes "queryID". Unnamed arguments are numbered
// by position so two of them cannot collide.
func paramName(s string, index int) string {
	words := splitWords(s)
	if len(words) == 0 {
		return fmt.Sprintf("arg%d", index+1)
	}
	name := strings.ToLower(words[0]) + GoName(strings.Join(words[1:], "_"))
	if reservedParamNames[name] {
		name += "Arg"
	}
	return name
}

// reservedParamNames are identifiers already used inside wrapper bodies or
// reserved by Go.
var reservedParamNames = map[string]bool{
	"ctx": true, "q": true, "out": true, "rows": true, "err": true,
	"v": true, "r": true, "type": true, "func": true, "range": true,
	"select": true, "return": true, "var": true, "defer": true,
}
