package gen

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/modelql/compiler/load"
)

// ObjectType is the output object type of one model. Its field list is
// computed on first access so relationships can reference models that are
// registered after it, including cycles.
type ObjectType struct {
	// Definition is the schema definition. Its Fields are empty until
	// Fields has been called successfully.
	Definition *ast.Definition
	Model      *load.Model

	session    *Session
	properties ast.FieldList
	resolved   bool
}

func (s *Session) newObjectType(m *load.Model) (*ObjectType, error) {
	props := make(ast.FieldList, 0, len(m.Properties)+1)
	props = append(props, &ast.FieldDefinition{Name: "id", Type: ast.NonNullNamedType("ID", nil)})
	for _, p := range m.Properties {
		t, err := s.ResolveType(propertyRef(p))
		if err != nil {
			return nil, withField(err, m.Name, p.Name)
		}
		props = setField(props, &ast.FieldDefinition{Name: p.Name, Type: t})
	}
	return &ObjectType{
		Definition: &ast.Definition{Kind: ast.Object, Name: m.Name},
		Model:      m,
		session:    s,
		properties: props,
	}, nil
}

// Fields returns the fields of the object type in order: the implicit id,
// the properties, then the relationships. A declared field reusing a name,
// id included, replaces the earlier one in place. The result is computed once;
// later calls return the same list.
func (t *ObjectType) Fields() (ast.FieldList, error) {
	if t.resolved {
		return t.Definition.Fields, nil
	}
	fields := make(ast.FieldList, 0, len(t.properties)+len(t.Model.Relationships))
	fields = append(fields, t.properties...)
	for _, r := range t.Model.Relationships {
		typ, err := t.session.ResolveType(relationshipRef(r))
		if err != nil {
			return nil, withField(err, t.Model.Name, r.Name)
		}
		fields = setField(fields, &ast.FieldDefinition{Name: r.Name, Type: typ})
	}
	t.Definition.Fields = fields
	t.resolved = true
	return fields, nil
}

// setField appends f, or replaces the field of the same name in place.
func setField(fields ast.FieldList, f *ast.FieldDefinition) ast.FieldList {
	for i, existing := range fields {
		if existing.Name == f.Name {
			fields[i] = f
			return fields
		}
	}
	return append(fields, f)
}

// withField attaches the model and field context to an UnknownTypeError.
func withField(err error, model, field string) error {
	if e, ok := err.(*UnknownTypeError); ok {
		return &UnknownTypeError{Name: e.Name, Model: model, Field: field}
	}
	return err
}
