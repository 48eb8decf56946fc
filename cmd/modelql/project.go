package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/syssam/modelql/compiler/gen"
	"github.com/syssam/modelql/contrib/graphql"
)

// DefaultProjectFile is the project file looked up when --config is not set.
const DefaultProjectFile = "modelql.yml"

// Project is the content of a modelql.yml file. Relative paths are resolved
// against the directory of the file.
type Project struct {
	// Models holds the model files or glob patterns, loaded in order.
	Models []string `yaml:"models" validate:"required,min=1,dive,required"`

	// Target is the output directory.
	Target string `yaml:"target" validate:"required"`

	// Package is the import path of the generated Go package. It is
	// required unless both Go outputs are disabled.
	Package string `yaml:"package,omitempty"`

	Schema   string `yaml:"schema,omitempty"`
	Document string `yaml:"document,omitempty"`
	Header   string `yaml:"header,omitempty"`
	Workers  int    `yaml:"workers,omitempty" validate:"gte=0"`

	// Disable names the features to turn off.
	Disable []string `yaml:"disable,omitempty" validate:"dive,oneof=document models resolver"`

	// GQLGen is the gqlgen.yml to keep in sync. Empty disables it.
	GQLGen string `yaml:"gqlgen,omitempty"`

	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
}

// LoadProject reads and validates the project file at path.
func LoadProject(path string) (*Project, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}
	p.resolve(filepath.Dir(path))
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("project %s: %w", path, err)
	}
	return &p, nil
}

func (p *Project) resolve(dir string) {
	abs := func(s string) string {
		if s == "" || filepath.IsAbs(s) {
			return s
		}
		return filepath.Join(dir, s)
	}
	for i, m := range p.Models {
		p.Models[i] = abs(m)
	}
	p.Target = abs(p.Target)
	p.GQLGen = abs(p.GQLGen)
}

// Validate checks the project against its struct tags.
func (p *Project) Validate() error {
	err := validator.New().Struct(p)
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	list := make([]error, 0, len(errs))
	for _, fe := range errs {
		list = append(list, fmt.Errorf("%s: failed on %q", fe.Namespace(), fe.Tag()))
	}
	return errors.Join(list...)
}

// Options returns the generator options of the project.
func (p *Project) Options() ([]gen.Option, error) {
	opts := []gen.Option{gen.WithTarget(p.Target)}
	if p.Package != "" {
		opts = append(opts, gen.WithPackage(p.Package))
	}
	if p.Schema != "" {
		opts = append(opts, gen.WithSchemaFile(p.Schema))
	}
	if p.Document != "" {
		opts = append(opts, gen.WithDocumentFile(p.Document))
	}
	if p.Header != "" {
		opts = append(opts, gen.WithHeader(p.Header))
	}
	if p.Workers > 0 {
		opts = append(opts, gen.WithWorkers(p.Workers))
	}
	if len(p.Disable) > 0 {
		opts = append(opts, gen.WithoutFeatures(p.Disable...))
	}
	if p.GQLGen != "" {
		ex, err := graphql.NewExtension(graphql.WithConfigPath(p.GQLGen))
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithHooks(ex.Hooks()...))
	}
	return opts, nil
}
