package gen

import (
	"errors"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/modelql/compiler/load"
)

// =============================================================================
// Import ledger
// =============================================================================

// Import is one import of a generated file.
type Import struct {
	Path string
	Name string
}

// ImportLedger collects imports in first-seen order. Adding a path twice
// keeps the first entry.
type ImportLedger struct {
	imports []Import
	seen    map[string]struct{}
}

// NewImportLedger returns an empty ledger.
func NewImportLedger() *ImportLedger {
	return &ImportLedger{seen: make(map[string]struct{})}
}

// Add records path under name and reports whether it was new.
func (l *ImportLedger) Add(path, name string) bool {
	if _, ok := l.seen[path]; ok {
		return false
	}
	l.seen[path] = struct{}{}
	l.imports = append(l.imports, Import{Path: path, Name: name})
	return true
}

// Merge adds the imports of o, in order, to l.
func (l *ImportLedger) Merge(o *ImportLedger) {
	for _, imp := range o.imports {
		l.Add(imp.Path, imp.Name)
	}
}

// Imports returns the recorded imports in first-seen order.
func (l *ImportLedger) Imports() []Import {
	return append([]Import(nil), l.imports...)
}

func (l *ImportLedger) apply(f *jen.File) {
	for _, imp := range l.imports {
		f.ImportName(imp.Path, imp.Name)
	}
}

// =============================================================================
// Resolver source
// =============================================================================

// ResolverSource is the generated resolver of one model: the validation
// functions of its operations, followed by the resolver struct, its
// constructor and one method per operation.
type ResolverSource struct {
	Model      *load.Model
	Imports    *ImportLedger
	Validators []jen.Code
	Decls      []jen.Code
}

// FileName returns the name of the file holding the source.
func (r *ResolverSource) FileName() string {
	return ResolverFileName(r.Model.Name)
}

// File renders the source into a jennifer file of the configured package.
func (r *ResolverSource) File(c *Config) *jen.File {
	f := newFile(c)
	r.Imports.apply(f)
	for _, code := range r.Validators {
		f.Add(code)
		f.Line()
	}
	for _, code := range r.Decls {
		f.Add(code)
		f.Line()
	}
	return f
}

// ResolverSources builds the resolver source of every registered model, in
// registration order, and the ledger of all their imports.
func (s *Session) ResolverSources(reg *ValidatorRegistry) ([]*ResolverSource, *ImportLedger, error) {
	imports := NewImportLedger()
	sources := make([]*ResolverSource, 0, len(s.models))
	for _, m := range s.models {
		src, err := s.ResolverSource(m, reg)
		if err != nil {
			return nil, nil, err
		}
		imports.Merge(src.Imports)
		sources = append(sources, src)
	}
	return sources, imports, nil
}

// ResolverSource builds the resolver of a registered model. Every validator
// of every argument is resolved before anything is emitted, so an unknown
// validator kind fails the model without partial output.
//
// Operations whose method names collide keep the position of the first one
// and the body of the last one.
func (s *Session) ResolverSource(m *load.Model, reg *ValidatorRegistry) (*ResolverSource, error) {
	if _, ok := s.objects[m.Name]; !ok {
		return nil, NewModelNotFoundError(m.Name)
	}
	if reg == nil {
		reg = DefaultValidators
	}
	type method struct {
		validate jen.Code
		resolve  jen.Code
	}
	var (
		order   []string
		methods = make(map[string]method)
	)
	for _, op := range m.Operations {
		kind, err := ParseOperationKind(op.Type)
		if err != nil {
			return nil, &UnsupportedOperationError{Type: op.Type, Model: m.Name, Operation: op.Name}
		}
		checks, err := validatorChecks(reg, m, op)
		if err != nil {
			return nil, err
		}
		name := MethodName(op.Name, m.Name)
		if _, ok := methods[name]; !ok {
			order = append(order, name)
		}
		var validate jen.Code
		if len(checks) > 0 {
			validate = validateFunc(m, op, kind, checks)
		}
		methods[name] = method{validate: validate, resolve: resolverMethod(m, op, kind, len(checks) > 0)}
	}
	src := &ResolverSource{Model: m, Imports: NewImportLedger()}
	src.Imports.Add("context", "context")
	src.Imports.Add(RuntimePackage, "runtime")
	for _, name := range order {
		if v := methods[name].validate; v != nil {
			src.Validators = append(src.Validators, v)
		}
	}
	src.Decls = append(src.Decls, resolverStruct(m)...)
	for _, name := range order {
		src.Decls = append(src.Decls, methods[name].resolve)
	}
	return src, nil
}

// validatorChecks emits one check per validator of the operation's
// arguments, reading from the "input" parameter.
func validatorChecks(reg *ValidatorRegistry, m *load.Model, op *load.Operation) ([]jen.Code, error) {
	var checks []jen.Code
	for _, a := range op.Arguments {
		for _, v := range a.Validators {
			code, err := reg.Emit("input", a.Name, v)
			var (
				unknown *UnknownValidatorError
				invalid *ValidatorError
			)
			switch {
			case errors.As(err, &unknown):
				unknown.Model, unknown.Argument = m.Name, a.Name
				return nil, unknown
			case errors.As(err, &invalid):
				if invalid.Argument == "" {
					invalid.Argument = a.Name
				}
				return nil, fmt.Errorf("model %s: %w", m.Name, invalid)
			case err != nil:
				return nil, err
			}
			if code != nil {
				checks = append(checks, code)
			}
		}
	}
	return checks, nil
}

func validateFunc(m *load.Model, op *load.Operation, kind OperationKind, checks []jen.Code) jen.Code {
	name := validateFuncName(op.Name, m.Name)
	return jen.Commentf("%s validates the arguments of %s.", name, RootFieldName(op.Name, m.Name)).Line().
		Func().Id(name).Params(jen.Id("input").Op("*").Id(InputTypeName(m.Name, kind))).Error().Block(
		jen.Return(jen.Qual(RuntimePackage, "Validate").CallFunc(func(g *jen.Group) {
			for _, c := range checks {
				g.Line().Add(c)
			}
			g.Line()
		})),
	)
}

func resolverStruct(m *load.Model) []jen.Code {
	resolver, field := ResolverName(m.Name), serviceField(m.Name)
	return []jen.Code{
		jen.Commentf("%s resolves the operations of the %s model.", resolver, m.Name).Line().
			Type().Id(resolver).Struct(
			jen.Id(field).Qual(RuntimePackage, "Service"),
		),
		jen.Commentf("New%s returns a %s backed by the given service.", resolver, resolver).Line().
			Func().Id("New"+resolver).Params(jen.Id(field).Qual(RuntimePackage, "Service")).Op("*").Id(resolver).Block(
			jen.Return(jen.Op("&").Id(resolver).Values(jen.Dict{jen.Id(field): jen.Id(field)})),
		),
	}
}

// serviceCalls maps each kind to the runtime function calling the service.
var serviceCalls = map[OperationKind]string{
	Show:   "Find",
	List:   "Find",
	Create: "Create",
	Update: "Update",
	Remove: "Remove",
}

func resolverMethod(m *load.Model, op *load.Operation, kind OperationKind, validated bool) jen.Code {
	var (
		name    = MethodName(op.Name, m.Name)
		root    = RootFieldName(op.Name, m.Name)
		result  = ResultTypeName(m.Name, kind)
		keyword = "mutation"
	)
	if kind.IsQuery() {
		keyword = "query"
	}
	doc := fmt.Sprintf("%s resolves the %s %s.", name, root, keyword)
	if kind == List {
		doc = fmt.Sprintf("%s resolves the %s query, returning a page of %s.", name, root, plural(m.Name))
	}
	return jen.Comment(doc).Line().
		Func().Params(jen.Id("r").Op("*").Id(ResolverName(m.Name))).Id(name).Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("input").Id(InputTypeName(m.Name, kind)),
	).Params(jen.Op("*").Id(result), jen.Error()).BlockFunc(func(g *jen.Group) {
		if validated {
			g.If(
				jen.Err().Op(":=").Id(validateFuncName(op.Name, m.Name)).Call(jen.Op("&").Id("input")),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Nil(), jen.Err()))
		}
		g.Return(
			jen.Qual(RuntimePackage, serviceCalls[kind]).Types(jen.Op("*").Id(result)).Call(
				jen.Id("ctx"),
				jen.Id("r").Dot(serviceField(m.Name)),
				jen.Op("&").Id("input"),
			),
		)
	})
}
