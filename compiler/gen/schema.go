package gen

import (
	"bytes"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// Schema is the closed type graph of a finalized session.
type Schema struct {
	*ast.Schema
	// Operations holds the synthesized operation types of the Query and
	// Mutation roots, in root field order.
	Operations []*OperationTypes
}

// BuildSchema resolves every object type, assembles the Query and Mutation
// roots and collects all types reachable from them into one schema. Scalars
// and the Sort/Paginate inputs are included only when referenced. An empty
// root is left out.
func (s *Session) BuildSchema() (*Schema, error) {
	schema := &ast.Schema{
		Types:         make(map[string]*ast.Definition),
		Directives:    make(map[string]*ast.DirectiveDefinition),
		PossibleTypes: make(map[string][]*ast.Definition),
		Implements:    make(map[string][]*ast.Definition),
	}
	for _, m := range s.models {
		t := s.objects[m.Name]
		if _, err := t.Fields(); err != nil {
			return nil, err
		}
		schema.Types[m.Name] = t.Definition
	}
	query, queryOps, err := s.RootType(QueryTypeName, QueryKinds)
	if err != nil {
		return nil, err
	}
	mutation, mutationOps, err := s.RootType(MutationTypeName, MutationKinds)
	if err != nil {
		return nil, err
	}
	ops := append(queryOps, mutationOps...)
	for _, op := range ops {
		schema.Types[op.Input.Name] = op.Input
		schema.Types[op.Result.Name] = op.Result
	}
	if len(query.Fields) > 0 {
		schema.Query = query
		schema.Types[query.Name] = query
	}
	if len(mutation.Fields) > 0 {
		schema.Mutation = mutation
		schema.Types[mutation.Name] = mutation
	}
	if err := s.closeOver(schema); err != nil {
		return nil, err
	}
	return &Schema{Schema: schema, Operations: ops}, nil
}

// closeOver adds every referenced scalar and input type to the schema and
// fails on a reference to a type that is not registered.
func (s *Session) closeOver(schema *ast.Schema) error {
	queue := make([]*ast.Definition, 0, len(schema.Types))
	for _, d := range schema.Types {
		queue = append(queue, d)
	}
	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]
		for _, f := range d.Fields {
			names := []string{f.Type.Name()}
			for _, a := range f.Arguments {
				names = append(names, a.Type.Name())
			}
			for _, name := range names {
				if _, ok := schema.Types[name]; ok {
					continue
				}
				ref, ok := s.lookup(name)
				if !ok {
					return &UnknownTypeError{Name: name, Model: d.Name, Field: f.Name}
				}
				schema.Types[name] = ref
				queue = append(queue, ref)
			}
		}
	}
	return nil
}

// PrintSchema serializes a schema to SDL. Built-in scalars are omitted and
// types are printed in name order.
func PrintSchema(schema *ast.Schema) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent("  ")).FormatSchema(schema)
	return buf.String()
}

// Result holds the text artifacts of a finalized session.
type Result struct {
	Schema   *Schema
	SDL      string
	Document string
}

// Finalize derives the schema, its SDL rendering and the example document
// from the models added so far. Either every artifact is produced or an
// error is returned.
func (s *Session) Finalize() (*Result, error) {
	schema, err := s.BuildSchema()
	if err != nil {
		return nil, err
	}
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	return &Result{
		Schema:   schema,
		SDL:      PrintSchema(schema.Schema),
		Document: doc,
	}, nil
}
