package gen

import (
	"errors"
	"go/token"
	"path"
	"slices"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated Go file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/graph".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if name := path.Base(pkg); !token.IsIdentifier(name) {
			return NewConfigError("Package", pkg, "last path element must be a valid Go package name")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated files will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithSchemaFile sets the SDL file name, relative to the target directory.
func WithSchemaFile(name string) Option {
	return func(c *Config) error {
		if err := checkFileName("SchemaFile", name); err != nil {
			return err
		}
		c.SchemaFile = name
		return nil
	}
}

// WithDocumentFile sets the example document file name, relative to the
// target directory.
func WithDocumentFile(name string) Option {
	return func(c *Config) error {
		if err := checkFileName("DocumentFile", name); err != nil {
			return err
		}
		c.DocumentFile = name
		return nil
	}
}

func checkFileName(option, name string) error {
	switch {
	case name == "":
		return NewConfigError(option, nil, "file name cannot be empty")
	case path.IsAbs(name) || strings.HasPrefix(path.Clean(name), ".."):
		return NewConfigError(option, name, "file must be inside the target directory")
	}
	return nil
}

// WithWorkers sets the number of files written in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithFeatures enables specific features.
// Features control which optional files are generated.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.FeatureEnabled(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables the named features.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if !slices.ContainsFunc(AllFeatures, func(f Feature) bool { return f.Name == name }) {
				return NewConfigError("Features", name, "unknown feature")
			}
		}
		c.Features = slices.DeleteFunc(c.Features, func(f Feature) bool {
			return slices.Contains(names, f.Name)
		})
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks are called around the file writing step.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithValidator binds a validator kind to a custom emission rule, on top of
// the built-in registry.
func WithValidator(kind string, fn ValidatorFunc) Option {
	return func(c *Config) error {
		if kind == "" || fn == nil {
			return NewConfigError("Validator", kind, "validator kind and function are required")
		}
		if c.Validators == nil {
			c.Validators = DefaultValidators
		}
		c.Validators = c.Validators.With(kind, fn)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the default features and the given
// options applied on top.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Features: DefaultFeatures()}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	c.defaults()
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
