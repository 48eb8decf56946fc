package gen

import (
	"bytes"
	"context"
	"strings"

	"github.com/syssam/modelql/compiler/load"
)

// Graph holds the compiled form of a set of models: the GraphQL schema,
// its SDL and example document, and the resolver source of every model.
type Graph struct {
	*Config

	// Models in registration order.
	Models []*load.Model

	// Schema is the assembled schema and SDL the printed form of it.
	Schema *Schema
	SDL    string

	// Document is the example document. It is empty when the document
	// feature is disabled.
	Document string

	// Resolvers holds one source per model, and Imports the imports of all
	// of them. Both are empty when the resolver feature is disabled.
	Resolvers []*ResolverSource
	Imports   *ImportLedger

	session *Session
}

// NewGraph compiles the models into a Graph. The models are registered in
// order, so a relationship may name a model registered after it.
func NewGraph(c *Config, models ...*load.Model) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing config")
	}
	c.defaults()
	s := NewSession()
	if err := s.AddModels(models...); err != nil {
		return nil, err
	}
	res, err := s.Finalize()
	if err != nil {
		return nil, err
	}
	g := &Graph{
		Config:  c,
		Models:  s.Models(),
		Schema:  res.Schema,
		SDL:     res.SDL,
		Imports: NewImportLedger(),
		session: s,
	}
	if c.FeatureEnabled(FeatureDocument.Name) {
		g.Document = res.Document
	}
	if c.FeatureEnabled(FeatureResolver.Name) {
		if g.Resolvers, g.Imports, err = s.ResolverSources(c.Validators); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Session returns the session the graph was compiled in.
func (g *Graph) Session() *Session {
	return g.session
}

// File is one generated output file, relative to the target directory.
type File struct {
	Name    string
	Content []byte
}

// IsGo reports whether the file holds Go source.
func (f File) IsGo() bool {
	return strings.HasSuffix(f.Name, ".go")
}

// Files renders all enabled outputs in memory, in a stable order: the
// schema, the document, the Go models and the resolvers in model order.
func (g *Graph) Files() ([]File, error) {
	files := []File{{Name: g.SchemaFile, Content: []byte(g.SDL)}}
	if g.FeatureEnabled(FeatureDocument.Name) {
		files = append(files, File{Name: g.DocumentFile, Content: []byte(g.Document)})
	}
	if g.Package == "" && (g.FeatureEnabled(FeatureModels.Name) || len(g.Resolvers) > 0) {
		return nil, NewConfigError("Package", nil, "go outputs require a package path")
	}
	if g.FeatureEnabled(FeatureModels.Name) {
		var buf bytes.Buffer
		if err := ModelsFile(g.Config, g.Schema.Schema).Render(&buf); err != nil {
			return nil, NewGenerationError("render", DefaultModelsFile, "", err)
		}
		files = append(files, File{Name: DefaultModelsFile, Content: buf.Bytes()})
	}
	for _, r := range g.Resolvers {
		var buf bytes.Buffer
		if err := r.File(g.Config).Render(&buf); err != nil {
			return nil, NewGenerationError("render", r.FileName(), "", err)
		}
		files = append(files, File{Name: r.FileName(), Content: buf.Bytes()})
	}
	return files, nil
}

// Gen renders the graph and writes it to the target directory, running the
// configured hooks around the write.
func (g *Graph) Gen(ctx context.Context) error {
	var gen Generator = GenerateFunc(generate)
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		gen = g.Hooks[i](gen)
	}
	return gen.Generate(ctx, g)
}

func generate(ctx context.Context, g *Graph) error {
	if g.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	files, err := g.Files()
	if err != nil {
		return err
	}
	_, err = NewWriter(g.Target, g.Workers).Write(ctx, files)
	return err
}

// Generate compiles the models with the given options and writes the
// outputs to the target directory.
func Generate(ctx context.Context, models []*load.Model, opts ...Option) (*Graph, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := NewGraph(c, models...)
	if err != nil {
		return nil, err
	}
	if err := g.Gen(ctx); err != nil {
		return nil, err
	}
	return g, nil
}
