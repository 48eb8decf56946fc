package gen

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
)

// Root type names.
const (
	QueryTypeName    = "Query"
	MutationTypeName = "Mutation"
)

// RootType builds a root object type whose fields are the operations of
// the given kinds across all models, in model then operation order. Each
// field takes input: <Input>! and returns <Result>!.
//
// Two operations with the same root field name do not fail: the later one
// replaces the earlier one in place. The returned operations hold the
// surviving entries in field order.
func (s *Session) RootType(name string, kinds []OperationKind) (*ast.Definition, []*OperationTypes, error) {
	var (
		fields ast.FieldList
		ops    []*OperationTypes
		index  = make(map[string]int)
	)
	for _, m := range s.models {
		for _, op := range m.Operations {
			kind, err := ParseOperationKind(op.Type)
			if err != nil {
				return nil, nil, &UnsupportedOperationError{Type: op.Type, Model: m.Name, Operation: op.Name}
			}
			if !slices.Contains(kinds, kind) {
				continue
			}
			types, err := s.OperationTypes(m, op)
			if err != nil {
				return nil, nil, err
			}
			f := &ast.FieldDefinition{
				Name: types.FieldName(),
				Arguments: ast.ArgumentDefinitionList{
					{Name: "input", Type: ast.NonNullNamedType(types.Input.Name, nil)},
				},
				Type: ast.NonNullNamedType(types.Result.Name, nil),
			}
			if i, ok := index[f.Name]; ok {
				fields[i], ops[i] = f, types
				continue
			}
			index[f.Name] = len(fields)
			fields = append(fields, f)
			ops = append(ops, types)
		}
	}
	return &ast.Definition{Kind: ast.Object, Name: name, Fields: fields}, ops, nil
}
