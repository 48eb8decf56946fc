package gen

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"
)

// goScalars maps the GraphQL scalars to their Go types.
var goScalars = map[string]func() *jen.Statement{
	"ID":       func() *jen.Statement { return jen.String() },
	"String":   func() *jen.Statement { return jen.String() },
	"Int":      func() *jen.Statement { return jen.Int() },
	"Float":    func() *jen.Statement { return jen.Float64() },
	"Boolean":  func() *jen.Statement { return jen.Bool() },
	"DateTime": func() *jen.Statement { return jen.Qual(RuntimePackage, "DateTime") },
}

// GoType returns the Go type of a GraphQL type reference. Nullable scalars
// become pointers, named object and input types are always pointers, and
// lists become slices.
func GoType(t *ast.Type) jen.Code {
	if t.Elem != nil {
		return jen.Index().Add(GoType(t.Elem))
	}
	if scalar, ok := goScalars[t.NamedType]; ok {
		if t.NonNull {
			return scalar()
		}
		return jen.Op("*").Add(scalar())
	}
	return jen.Op("*").Id(t.NamedType)
}

// newFile creates a jennifer file for the generated package with the
// configured header comment.
func newFile(c *Config) *jen.File {
	f := jen.NewFilePathName(c.Package, c.PackageName())
	f.HeaderComment(c.Header)
	f.ImportName(RuntimePackage, "runtime")
	return f
}

// ModelsFile renders the Go structs of every object and input type of the
// schema, except the roots, in name order.
func ModelsFile(c *Config, schema *ast.Schema) *jen.File {
	f := newFile(c)
	for _, name := range slices.Sorted(maps.Keys(schema.Types)) {
		def := schema.Types[name]
		if def.Kind != ast.Object && def.Kind != ast.InputObject {
			continue
		}
		if def == schema.Query || def == schema.Mutation {
			continue
		}
		f.Comment(modelComment(def))
		f.Type().Id(def.Name).StructFunc(func(g *jen.Group) {
			for _, fd := range def.Fields {
				tag := fd.Name
				if !fd.Type.NonNull {
					tag += ",omitempty"
				}
				g.Id(GoFieldName(fd.Name)).Add(GoType(fd.Type)).Tag(map[string]string{"json": tag})
			}
		})
		f.Line()
	}
	return f
}

func modelComment(def *ast.Definition) string {
	switch {
	case def.Kind == ast.InputObject:
		return fmt.Sprintf("%s is the %s input type.", def.Name, def.Name)
	case len(def.Fields) > 0 && (def.Fields[0].Name == "entry" || def.Fields[0].Name == "entries"):
		return fmt.Sprintf("%s is the result type of an operation.", def.Name)
	default:
		return fmt.Sprintf("%s is the object type of the %s model.", def.Name, def.Name)
	}
}
