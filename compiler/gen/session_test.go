package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/modelql/compiler/load"
)

// libraryModels returns an Author/Book pair that references each other and
// uses every operation kind.
func libraryModels() []*load.Model {
	return []*load.Model{
		{
			Name: "Author",
			Properties: []*load.Property{
				{Name: "name", Type: "String"},
				{Name: "bio", Type: "String", Required: load.Bool(false)},
			},
			Relationships: []*load.Relationship{
				{Name: "books", Type: "Book", List: true},
			},
			Operations: []*load.Operation{
				{Name: "find", Type: "show"},
			},
		},
		{
			Name: "Book",
			Properties: []*load.Property{
				{Name: "title", Type: "String", Unique: true},
				{Name: "tags", Type: "String", List: true},
				{Name: "publishedAt", Type: "DateTime", Required: load.Bool(false)},
			},
			Relationships: []*load.Relationship{
				{Name: "author", Type: "Author"},
			},
			Operations: []*load.Operation{
				{Name: "list", Type: "list", Arguments: []*load.Argument{
					{Name: "search", Type: "String", Required: load.Bool(false)},
				}},
				{Name: "create", Type: "create", Arguments: []*load.Argument{
					{Name: "title", Type: "String", Validators: []*load.Validator{
						{Type: "Length", Properties: map[string]any{"min": 1, "max": 120}},
					}},
				}},
				{Name: "update", Type: "update", Arguments: []*load.Argument{
					{Name: "title", Type: "String", Required: load.Bool(false)},
				}},
				{Name: "remove", Type: "remove"},
			},
		},
	}
}

// fieldTypes renders a field list as name -> type string.
func fieldTypes(fields ast.FieldList) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Type.String()
	}
	return m
}

func fieldNames(fields ast.FieldList) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID", "DateTime"} {
		assert.True(t, s.IsScalar(name), name)
	}
	assert.False(t, s.IsScalar("Sort"))
	assert.Empty(t, s.Models())
}

func TestResolveType(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddModel(&load.Model{Name: "Book"}))

	tests := []struct {
		name string
		ref  TypeRef
		want string
	}{
		{"required scalar by default", TypeRef{Name: "String"}, "String!"},
		{"explicitly required", TypeRef{Name: "Int", Required: load.Bool(true)}, "Int!"},
		{"optional scalar", TypeRef{Name: "Float", Required: load.Bool(false)}, "Float"},
		{"required list", TypeRef{Name: "String", List: true}, "[String]!"},
		{"optional list", TypeRef{Name: "ID", List: true, Required: load.Bool(false)}, "[ID]"},
		{"object", TypeRef{Name: "Book"}, "Book!"},
		{"optional object list", TypeRef{Name: "Book", List: true, Required: load.Bool(false)}, "[Book]"},
		{"datetime", TypeRef{Name: "DateTime"}, "DateTime!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := s.ResolveType(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ.String())
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := s.ResolveType(TypeRef{Name: "Publisher"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownType))
	})
}

func TestAddModel(t *testing.T) {
	t.Run("properties resolve eagerly", func(t *testing.T) {
		s := NewSession()
		err := s.AddModel(&load.Model{
			Name:       "Book",
			Properties: []*load.Property{{Name: "publisher", Type: "Publisher"}},
		})
		var typeErr *UnknownTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "Publisher", typeErr.Name)
		assert.Equal(t, "Book", typeErr.Model)
		assert.Equal(t, "publisher", typeErr.Field)

		_, ok := s.ObjectType("Book")
		assert.False(t, ok, "failed model must not be registered")
		assert.Empty(t, s.Models())
	})

	t.Run("property may reference an earlier model", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(&load.Model{Name: "Author"}))
		require.NoError(t, s.AddModel(&load.Model{
			Name:       "Book",
			Properties: []*load.Property{{Name: "writer", Type: "Author"}},
		}))
	})

	t.Run("insertion order", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModels(libraryModels()...))
		require.Len(t, s.Models(), 2)
		assert.Equal(t, "Author", s.Models()[0].Name)
		assert.Equal(t, "Book", s.Models()[1].Name)
	})
}

func TestObjectTypeFields(t *testing.T) {
	t.Run("order and types", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModels(libraryModels()...))
		book, ok := s.ObjectType("Book")
		require.True(t, ok)

		fields, err := book.Fields()
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "title", "tags", "publishedAt", "author"}, fieldNames(fields))
		assert.Equal(t, map[string]string{
			"id":          "ID!",
			"title":       "String!",
			"tags":        "[String]!",
			"publishedAt": "DateTime",
			"author":      "Author!",
		}, fieldTypes(fields))
	})

	t.Run("declared id replaces the implicit one", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(&load.Model{
			Name: "Book",
			Properties: []*load.Property{
				{Name: "title", Type: "String"},
				{Name: "id", Type: "String"},
			},
		}))
		book, _ := s.ObjectType("Book")
		fields, err := book.Fields()
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "title"}, fieldNames(fields))
		assert.Equal(t, "String!", fieldTypes(fields)["id"])
	})

	t.Run("relationships resolve lazily across a cycle", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(&load.Model{
			Name:          "Author",
			Relationships: []*load.Relationship{{Name: "books", Type: "Book", List: true}},
		}))
		author, _ := s.ObjectType("Author")
		assert.Empty(t, author.Definition.Fields)

		require.NoError(t, s.AddModel(&load.Model{
			Name:          "Book",
			Relationships: []*load.Relationship{{Name: "author", Type: "Author"}},
		}))
		fields, err := author.Fields()
		require.NoError(t, err)
		assert.Equal(t, "[Book]!", fieldTypes(fields)["books"])
	})

	t.Run("memoized", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModels(libraryModels()...))
		book, _ := s.ObjectType("Book")
		first, err := book.Fields()
		require.NoError(t, err)
		second, err := book.Fields()
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Same(t, first[0], second[0])
	})

	t.Run("unknown relationship type", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(&load.Model{
			Name:          "Book",
			Relationships: []*load.Relationship{{Name: "publisher", Type: "Publisher"}},
		}))
		book, _ := s.ObjectType("Book")
		_, err := book.Fields()
		var typeErr *UnknownTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "publisher", typeErr.Field)
		assert.Equal(t, "Book", typeErr.Model)
	})
}
