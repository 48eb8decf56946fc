package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelql/compiler/load"
)

func librarySession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.AddModels(libraryModels()...))
	return s
}

func TestOperationTypes(t *testing.T) {
	book := &load.Model{
		Name:       "Book",
		Properties: []*load.Property{{Name: "title", Type: "String"}},
	}
	args := []*load.Argument{
		{Name: "title", Type: "String"},
		{Name: "year", Type: "Int", Required: load.Bool(false)},
	}
	tests := []struct {
		name       string
		op         *load.Operation
		input      string
		inputs     []string
		inputTypes map[string]string
		result     string
		results    map[string]string
	}{
		{
			name:       "show without arguments",
			op:         &load.Operation{Name: "find", Type: "show"},
			input:      "BookShowInput",
			inputs:     []string{"id"},
			inputTypes: map[string]string{"id": "ID!"},
			result:     "BookShowResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "show with arguments",
			op:         &load.Operation{Name: "find", Type: "Show", Arguments: args},
			input:      "BookShowInput",
			inputs:     []string{"id", "title", "year"},
			inputTypes: map[string]string{"id": "ID", "title": "String!", "year": "Int"},
			result:     "BookShowResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "list",
			op:         &load.Operation{Name: "list", Type: "list", Arguments: args},
			input:      "BookListInput",
			inputs:     []string{"title", "year", "sort", "paginate"},
			inputTypes: map[string]string{"title": "String!", "year": "Int", "sort": "Sort", "paginate": "Paginate"},
			result:     "BookListResult",
			results:    map[string]string{"entries": "[Book!]!", "total": "Int!"},
		},
		{
			name:       "create",
			op:         &load.Operation{Name: "create", Type: "create", Arguments: args},
			input:      "BookCreateInput",
			inputs:     []string{"title", "year"},
			inputTypes: map[string]string{"title": "String!", "year": "Int"},
			result:     "BookCreateResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "create without arguments",
			op:         &load.Operation{Name: "create", Type: "create"},
			input:      "BookCreateInput",
			inputs:     []string{},
			inputTypes: map[string]string{},
			result:     "BookCreateResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "update",
			op:         &load.Operation{Name: "update", Type: "update", Arguments: args},
			input:      "BookUpdateInput",
			inputs:     []string{"id", "title", "year"},
			inputTypes: map[string]string{"id": "ID!", "title": "String!", "year": "Int"},
			result:     "BookUpdateResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "update without arguments",
			op:         &load.Operation{Name: "touch", Type: "update"},
			input:      "BookUpdateInput",
			inputs:     []string{"id"},
			inputTypes: map[string]string{"id": "ID!"},
			result:     "BookUpdateResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "update with a declared id",
			op:         &load.Operation{Name: "update", Type: "update", Arguments: []*load.Argument{{Name: "title", Type: "String"}, {Name: "id", Type: "String"}}},
			input:      "BookUpdateInput",
			inputs:     []string{"id", "title"},
			inputTypes: map[string]string{"id": "String!", "title": "String!"},
			result:     "BookUpdateResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "show with a declared id",
			op:         &load.Operation{Name: "find", Type: "show", Arguments: []*load.Argument{{Name: "id", Type: "ID"}}},
			input:      "BookShowInput",
			inputs:     []string{"id"},
			inputTypes: map[string]string{"id": "ID!"},
			result:     "BookShowResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "repeated argument",
			op:         &load.Operation{Name: "create", Type: "create", Arguments: []*load.Argument{{Name: "title", Type: "String"}, {Name: "year", Type: "Int"}, {Name: "title", Type: "Int", Required: load.Bool(false)}}},
			input:      "BookCreateInput",
			inputs:     []string{"title", "year"},
			inputTypes: map[string]string{"title": "Int", "year": "Int!"},
			result:     "BookCreateResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "remove without arguments",
			op:         &load.Operation{Name: "remove", Type: "Remove"},
			input:      "BookRemoveInput",
			inputs:     []string{"id"},
			inputTypes: map[string]string{"id": "ID!"},
			result:     "BookRemoveResult",
			results:    map[string]string{"entry": "Book"},
		},
		{
			name:       "remove with arguments",
			op:         &load.Operation{Name: "remove", Type: "remove", Arguments: args[:1]},
			input:      "BookRemoveInput",
			inputs:     []string{"id", "title"},
			inputTypes: map[string]string{"id": "ID", "title": "String!"},
			result:     "BookRemoveResult",
			results:    map[string]string{"entry": "Book"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			require.NoError(t, s.AddModel(book))

			types, err := s.OperationTypes(book, tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.input, types.Input.Name)
			assert.Equal(t, tt.inputs, fieldNames(types.Input.Fields))
			assert.Equal(t, tt.inputTypes, fieldTypes(types.Input.Fields))
			assert.Equal(t, tt.result, types.Result.Name)
			assert.Equal(t, tt.results, fieldTypes(types.Result.Fields))
			assert.Equal(t, tt.op.Name+"Book", types.FieldName())
		})
	}
}

func TestOperationTypesErrors(t *testing.T) {
	book := &load.Model{Name: "Book"}

	t.Run("unsupported kind", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(book))
		_, err := s.OperationTypes(book, &load.Operation{Name: "archive", Type: "archive"})
		var opErr *UnsupportedOperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "archive", opErr.Type)
		assert.Equal(t, "Book", opErr.Model)
	})

	t.Run("model not registered", func(t *testing.T) {
		_, err := NewSession().OperationTypes(book, &load.Operation{Name: "find", Type: "show"})
		assert.True(t, errors.Is(err, ErrModelNotFound))
	})

	t.Run("unknown argument type", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(book))
		_, err := s.OperationTypes(book, &load.Operation{Name: "find", Type: "show", Arguments: []*load.Argument{
			{Name: "isbn", Type: "ISBN"},
		}})
		var typeErr *UnknownTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "ISBN", typeErr.Name)
		assert.Equal(t, "find.isbn", typeErr.Field)
	})

	t.Run("argument may reference a model", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(book))
		types, err := s.OperationTypes(book, &load.Operation{Name: "create", Type: "create", Arguments: []*load.Argument{
			{Name: "sequel", Type: "Book", Required: load.Bool(false)},
		}})
		require.NoError(t, err)
		assert.Equal(t, "Book", types.Input.Fields[0].Type.String())
	})
}

func TestRootType(t *testing.T) {
	t.Run("fields in model then operation order", func(t *testing.T) {
		s := librarySession(t)
		query, ops, err := s.RootType(QueryTypeName, QueryKinds)
		require.NoError(t, err)
		assert.Equal(t, []string{"findAuthor", "listBook"}, fieldNames(query.Fields))
		require.Len(t, ops, 2)
		assert.Equal(t, Show, ops[0].Kind)
		assert.Equal(t, List, ops[1].Kind)

		mutation, _, err := s.RootType(MutationTypeName, MutationKinds)
		require.NoError(t, err)
		assert.Equal(t, []string{"createBook", "updateBook", "removeBook"}, fieldNames(mutation.Fields))
	})

	t.Run("field signature", func(t *testing.T) {
		s := librarySession(t)
		query, _, err := s.RootType(QueryTypeName, QueryKinds)
		require.NoError(t, err)
		f := query.Fields.ForName("listBook")
		require.NotNil(t, f)
		require.Len(t, f.Arguments, 1)
		assert.Equal(t, "input", f.Arguments[0].Name)
		assert.Equal(t, "BookListInput!", f.Arguments[0].Type.String())
		assert.Equal(t, "BookListResult!", f.Type.String())
	})

	t.Run("no operations of a kind", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(&load.Model{Name: "Tag"}))
		query, ops, err := s.RootType(QueryTypeName, QueryKinds)
		require.NoError(t, err)
		assert.Empty(t, query.Fields)
		assert.Empty(t, ops)
	})

	t.Run("colliding field names keep the later operation", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(&load.Model{
			Name: "Book",
			Operations: []*load.Operation{
				{Name: "get", Type: "show"},
				{Name: "list", Type: "list"},
				{Name: "get", Type: "list"},
			},
		}))
		query, ops, err := s.RootType(QueryTypeName, QueryKinds)
		require.NoError(t, err)
		assert.Equal(t, []string{"getBook", "listBook"}, fieldNames(query.Fields))
		assert.Equal(t, "BookListResult!", query.Fields[0].Type.String())
		assert.Equal(t, List, ops[0].Kind)
	})

	t.Run("unsupported kind", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.AddModel(&load.Model{
			Name:       "Book",
			Operations: []*load.Operation{{Name: "archive", Type: "archive"}},
		}))
		_, _, err := s.RootType(MutationTypeName, MutationKinds)
		assert.True(t, IsUnsupportedOperationError(err))
	})
}
