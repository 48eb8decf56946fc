package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
)

// =============================================================================
// Naming derivation
// =============================================================================

// typeLabel returns the prefix shared by the input and output type of an
// operation kind on a model, e.g. "BookShow".
func typeLabel(model string, kind OperationKind) string {
	return model + kind.Label()
}

// InputTypeName returns the name of the input type synthesized for a model
// and operation kind.
func InputTypeName(model string, kind OperationKind) string {
	return typeLabel(model, kind) + "Input"
}

// ResultTypeName returns the name of the output type synthesized for a
// model and operation kind.
func ResultTypeName(model string, kind OperationKind) string {
	return typeLabel(model, kind) + "Result"
}

// RootFieldName returns the Query/Mutation field name of an operation.
func RootFieldName(operation, model string) string {
	return operation + model
}

// DocumentOperationName returns the name of the operation block emitted in
// the example document, e.g. "ShowBook".
func DocumentOperationName(model string, kind OperationKind) string {
	return kind.Label() + model
}

// FragmentName returns the name of a model's field-selection fragment.
func FragmentName(model string) string {
	return model + "Fragment"
}

// ResolverName returns the Go type name of a model's resolver.
func ResolverName(model string) string {
	return strcase.ToCamel(model + "Resolver")
}

// ServiceName returns the name of a model's service, e.g. "BookService".
func ServiceName(model string) string {
	return strcase.ToCamel(model + "Service")
}

// serviceField returns the resolver struct field holding the service.
func serviceField(model string) string {
	return strcase.ToLowerCamel(ServiceName(model))
}

// MethodName returns the Go method name serving an operation. It is the
// root field name in Pascal case, which is also how gqlgen names resolver
// methods.
func MethodName(operation, model string) string {
	return strcase.ToCamel(RootFieldName(operation, model))
}

// validateFuncName returns the name of the function validating the input
// of one operation.
func validateFuncName(operation, model string) string {
	return "validate" + MethodName(operation, model) + "Input"
}

// GoFieldName returns the exported Go struct field name for a GraphQL
// field name.
func GoFieldName(name string) string {
	if strings.EqualFold(name, "id") {
		return "ID"
	}
	return strcase.ToCamel(name)
}

// ResolverFileName returns the file name of a model's resolver source.
func ResolverFileName(model string) string {
	return inflect.Underscore(model) + "_resolver.go"
}

// plural returns the lowercase plural of a model name, used in generated
// doc comments.
func plural(model string) string {
	return strings.ToLower(inflect.Pluralize(model))
}
