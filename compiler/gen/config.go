package gen

import (
	"context"
	"path"
	"runtime"
	"slices"
)

// Default output file names.
const (
	DefaultSchemaFile   = "schema.graphql"
	DefaultDocumentFile = "operations.graphql"
	DefaultModelsFile   = "models.go"
)

// DefaultHeader is written at the top of every generated Go file.
const DefaultHeader = "Code generated by modelql. DO NOT EDIT."

// Config holds the configuration of one code generation run.
type Config struct {
	// Package is the import path of the generated Go package,
	// e.g. "example.com/app/graph".
	Package string

	// Target is the directory the generated files are written to.
	Target string

	// Header is the comment placed at the top of generated Go files.
	Header string

	// SchemaFile and DocumentFile name the SDL and example document files,
	// relative to Target.
	SchemaFile   string
	DocumentFile string

	// Workers bounds the number of files written in parallel.
	Workers int

	// Features holds the enabled features.
	Features []Feature

	// Hooks wrap the generator, outermost first.
	Hooks []Hook

	// Validators is the validator registry used for resolver sources.
	Validators *ValidatorRegistry
}

// PackageName returns the Go package name of the generated package.
func (c *Config) PackageName() string {
	return path.Base(c.Package)
}

// FeatureEnabled reports whether the named feature is enabled.
func (c *Config) FeatureEnabled(name string) bool {
	return slices.ContainsFunc(c.Features, func(f Feature) bool { return f.Name == name })
}

// defaults fills the unset fields.
func (c *Config) defaults() {
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.SchemaFile == "" {
		c.SchemaFile = DefaultSchemaFile
	}
	if c.DocumentFile == "" {
		c.DocumentFile = DefaultDocumentFile
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Validators == nil {
		c.Validators = DefaultValidators
	}
}

// =============================================================================
// Features
// =============================================================================

// A Feature is an optional output of the generator.
type Feature struct {
	// Name of the feature.
	Name string

	// Default reports whether the feature is enabled when the configuration
	// names no features.
	Default bool

	// A Description of this feature.
	Description string
}

var (
	// FeatureDocument writes the example query/mutation document.
	FeatureDocument = Feature{
		Name:        "document",
		Default:     true,
		Description: "Writes an example document with one fragment per model and one block per operation",
	}

	// FeatureModels writes the Go structs of all object, input and result types.
	FeatureModels = Feature{
		Name:        "models",
		Default:     true,
		Description: "Writes Go structs for the object, input and result types of the schema",
	}

	// FeatureResolver writes one resolver source file per model.
	FeatureResolver = Feature{
		Name:        "resolver",
		Default:     true,
		Description: "Writes a resolver per model that validates input and calls into a runtime.Service",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureDocument,
		FeatureModels,
		FeatureResolver,
	}
)

// DefaultFeatures returns the features enabled by default.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

// =============================================================================
// Generator and hooks
// =============================================================================

// Generator is the interface that wraps the Generate method.
type Generator interface {
	// Generate writes the outputs of the graph.
	Generate(context.Context, *Graph) error
}

// GenerateFunc is an adapter to allow the use of ordinary functions as
// Generator.
type GenerateFunc func(context.Context, *Graph) error

// Generate calls f(ctx, g).
func (f GenerateFunc) Generate(ctx context.Context, g *Graph) error {
	return f(ctx, g)
}

// Hook is a middleware around a Generator, used by extensions to run
// before or after the files are written.
type Hook func(Generator) Generator
