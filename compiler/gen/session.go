package gen

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/modelql/compiler/load"
)

// DateTimeDescription is the description printed for the DateTime scalar.
const DateTimeDescription = "Represents a time value as seconds since midnight, January 1, 1970 UTC. " +
	"DateTime may either be expressed as a number of milliseconds or an ISO-8601 string. " +
	"DateTime is serialized into JSON in the number of milliseconds since epoch."

// Names of the input types injected into List operations.
const (
	SortTypeName     = "Sort"
	PaginateTypeName = "Paginate"
)

// Session holds the registries of one compilation run. Models are added
// one at a time and the derived artifacts are produced by Finalize.
//
// A Session is not safe for concurrent use. Separate compilations use
// separate sessions and never share registries.
type Session struct {
	scalars map[string]*ast.Definition
	inputs  map[string]*ast.Definition
	objects map[string]*ObjectType
	models  []*load.Model
}

// NewSession returns a session whose type registry is seeded with the
// fixed scalar set (Int, Float, String, Boolean, ID, DateTime) and the Sort
// and Paginate input types.
func NewSession() *Session {
	s := &Session{
		scalars: make(map[string]*ast.Definition),
		inputs:  make(map[string]*ast.Definition),
		objects: make(map[string]*ObjectType),
	}
	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
		s.scalars[name] = &ast.Definition{Kind: ast.Scalar, Name: name, BuiltIn: true}
	}
	s.scalars["DateTime"] = &ast.Definition{
		Kind:        ast.Scalar,
		Name:        "DateTime",
		Description: DateTimeDescription,
	}
	s.inputs[SortTypeName] = &ast.Definition{
		Kind: ast.InputObject,
		Name: SortTypeName,
		Fields: ast.FieldList{
			{Name: "column", Type: ast.NamedType("String", nil)},
		},
	}
	s.inputs[PaginateTypeName] = &ast.Definition{
		Kind: ast.InputObject,
		Name: PaginateTypeName,
		Fields: ast.FieldList{
			{Name: "skip", Type: ast.NamedType("Int", nil), DefaultValue: &ast.Value{Raw: "0", Kind: ast.IntValue}},
			{Name: "take", Type: ast.NamedType("Int", nil), DefaultValue: &ast.Value{Raw: "10", Kind: ast.IntValue}},
		},
	}
	return s
}

// Models returns the models added so far, in insertion order.
func (s *Session) Models() []*load.Model {
	return s.models
}

// ObjectType returns the object type registered for the named model.
func (s *Session) ObjectType(name string) (*ObjectType, bool) {
	t, ok := s.objects[name]
	return t, ok
}

// IsScalar reports whether name is a registered scalar.
func (s *Session) IsScalar(name string) bool {
	_, ok := s.scalars[name]
	return ok
}

// AddModel registers the object type of a model and appends the model to
// the list consumed at finalization. The properties are resolved right away
// and a failure leaves the session unchanged. Relationships are resolved
// lazily, so they may reference models that are added later.
func (s *Session) AddModel(m *load.Model) error {
	t, err := s.newObjectType(m)
	if err != nil {
		return err
	}
	s.objects[m.Name] = t
	s.models = append(s.models, m)
	return nil
}

// AddModels adds the given models in order, stopping at the first error.
func (s *Session) AddModels(models ...*load.Model) error {
	for _, m := range models {
		if err := s.AddModel(m); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Type resolver
// =============================================================================

// TypeRef is a reference to a type together with its list and required
// modifiers. A nil Required means required.
type TypeRef struct {
	Name     string
	List     bool
	Required *bool
}

// ResolveType maps a type reference to a wrapped type. Scalars are looked
// up first, then object types. A list reference wraps the base type in a
// list, and the required flag (absent or true) makes the outermost type
// non-null, so {String, list, required} is [String]!.
func (s *Session) ResolveType(ref TypeRef) (*ast.Type, error) {
	if _, ok := s.scalars[ref.Name]; !ok {
		if _, ok := s.objects[ref.Name]; !ok {
			return nil, NewUnknownTypeError(ref.Name)
		}
	}
	t := ast.NamedType(ref.Name, nil)
	if ref.List {
		t = ast.ListType(t, nil)
	}
	if ref.Required == nil || *ref.Required {
		t.NonNull = true
	}
	return t, nil
}

func propertyRef(p *load.Property) TypeRef {
	return TypeRef{Name: p.Type, List: p.List, Required: p.Required}
}

func relationshipRef(r *load.Relationship) TypeRef {
	return TypeRef{Name: r.Type, List: r.List, Required: r.Required}
}

func argumentRef(a *load.Argument) TypeRef {
	return TypeRef{Name: a.Type, List: a.List, Required: a.Required}
}

// lookup returns the definition of any registered named type.
func (s *Session) lookup(name string) (*ast.Definition, bool) {
	if d, ok := s.scalars[name]; ok {
		return d, true
	}
	if d, ok := s.inputs[name]; ok {
		return d, true
	}
	if t, ok := s.objects[name]; ok {
		return t.Definition, true
	}
	return nil, false
}
