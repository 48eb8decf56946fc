// Package graphql connects modelql to gqlgen.
//
// The Extension runs after a generation and creates or updates gqlgen.yml so
// that `go run github.com/99designs/gqlgen generate` picks up the outputs:
//
//   - the generated schema file is added to `schema`
//   - the generated package is added to `autobind`, so gqlgen uses the
//     models in models.go instead of generating its own
//   - the DateTime scalar is bound to runtime.DateTime
//   - the executor and resolver stubs default to the target directory
//
// Values already present in gqlgen.yml are kept.
package graphql
