package gen

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/modelql/compiler/load"
)

// OperationTypes is the input and output type pair synthesized for one
// operation of a model.
type OperationTypes struct {
	Model     *load.Model
	Operation *load.Operation
	Kind      OperationKind
	Input     *ast.Definition
	Result    *ast.Definition
}

// FieldName returns the root field name serving the operation.
func (o *OperationTypes) FieldName() string {
	return RootFieldName(o.Operation.Name, o.Model.Name)
}

// OperationTypes synthesizes the input and output types of an operation.
// The names are derived from the model name and the operation kind only, so
// two operations of the same kind on one model produce equally named types.
//
// Input fields by kind:
//
//	Show, Remove  no arguments: id: ID!; otherwise id: ID followed by the arguments
//	List          arguments, sort: Sort, paginate: Paginate
//	Create        arguments
//	Update        id: ID! followed by the arguments
//
// List results hold entries: [Model!]! and total: Int!, every other kind
// holds a nullable entry: Model. A field named twice keeps its first
// position and its last type, so a declared id argument replaces the
// implicit one.
func (s *Session) OperationTypes(m *load.Model, op *load.Operation) (*OperationTypes, error) {
	kind, err := ParseOperationKind(op.Type)
	if err != nil {
		return nil, &UnsupportedOperationError{Type: op.Type, Model: m.Name, Operation: op.Name}
	}
	if _, ok := s.objects[m.Name]; !ok {
		return nil, NewModelNotFoundError(m.Name)
	}
	args, err := s.argumentFields(m, op)
	if err != nil {
		return nil, err
	}
	var inputFields, resultFields ast.FieldList
	switch kind {
	case Show, Remove:
		inputFields = genericInputFields(args)
		resultFields = entryFields(m.Name)
	case List:
		inputFields = setField(args, &ast.FieldDefinition{Name: "sort", Type: ast.NamedType(SortTypeName, nil)})
		inputFields = setField(inputFields, &ast.FieldDefinition{Name: "paginate", Type: ast.NamedType(PaginateTypeName, nil)})
		resultFields = ast.FieldList{
			{Name: "entries", Type: ast.NonNullListType(ast.NonNullNamedType(m.Name, nil), nil)},
			{Name: "total", Type: ast.NonNullNamedType("Int", nil)},
		}
	case Create:
		inputFields = args
		resultFields = entryFields(m.Name)
	case Update:
		inputFields = withID(idField(true), args)
		resultFields = entryFields(m.Name)
	default:
		return nil, &UnsupportedOperationError{Type: op.Type, Model: m.Name, Operation: op.Name}
	}
	return &OperationTypes{
		Model:     m,
		Operation: op,
		Kind:      kind,
		Input:     &ast.Definition{Kind: ast.InputObject, Name: InputTypeName(m.Name, kind), Fields: inputFields},
		Result:    &ast.Definition{Kind: ast.Object, Name: ResultTypeName(m.Name, kind), Fields: resultFields},
	}, nil
}

func (s *Session) argumentFields(m *load.Model, op *load.Operation) (ast.FieldList, error) {
	fields := make(ast.FieldList, 0, len(op.Arguments)+2)
	for _, a := range op.Arguments {
		t, err := s.ResolveType(argumentRef(a))
		if err != nil {
			return nil, withField(err, m.Name, op.Name+"."+a.Name)
		}
		fields = setField(fields, &ast.FieldDefinition{Name: a.Name, Type: t})
	}
	return fields, nil
}

// genericInputFields makes id non-null only when there are no arguments.
func genericInputFields(args ast.FieldList) ast.FieldList {
	if len(args) == 0 {
		return ast.FieldList{idField(true)}
	}
	return withID(idField(false), args)
}

// withID puts id first. A declared id argument replaces it.
func withID(id *ast.FieldDefinition, args ast.FieldList) ast.FieldList {
	fields := ast.FieldList{id}
	for _, a := range args {
		fields = setField(fields, a)
	}
	return fields
}

func idField(required bool) *ast.FieldDefinition {
	if required {
		return &ast.FieldDefinition{Name: "id", Type: ast.NonNullNamedType("ID", nil)}
	}
	return &ast.FieldDefinition{Name: "id", Type: ast.NamedType("ID", nil)}
}

func entryFields(model string) ast.FieldList {
	return ast.FieldList{{Name: "entry", Type: ast.NamedType(model, nil)}}
}
