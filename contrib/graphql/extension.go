package graphql

import (
	"context"
	"path"
	"path/filepath"

	"github.com/syssam/modelql/compiler/gen"
)

// DateTimeModel is the Go type bound to the DateTime scalar.
const DateTimeModel = gen.RuntimePackage + ".DateTime"

// Extension keeps a gqlgen.yml in sync with the outputs of a modelql
// generation: the schema file, the package holding the models, and the
// scalar bindings.
//
// Usage:
//
//	ex, err := graphql.NewExtension(
//	    graphql.WithConfigPath("./gqlgen.yml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = gen.Generate(ctx, models,
//	    gen.WithTarget("./graph"),
//	    gen.WithPackage("example.com/app/graph"),
//	    gen.WithHooks(ex.Hooks()...),
//	)
type Extension struct {
	configPath string
	execFile   string
	resolver   ResolverConfig
	hooks      []gen.Hook
}

// ExtensionOption is a function that configures the Extension.
type ExtensionOption func(*Extension) error

// NewExtension creates a new gqlgen extension with the given options.
func NewExtension(opts ...ExtensionOption) (*Extension, error) {
	ex := &Extension{
		configPath: "gqlgen.yml",
		execFile:   "generated.go",
		resolver:   ResolverConfig{Layout: "follow-schema", DirName: "resolvers", Package: "resolvers"},
	}
	for _, opt := range opts {
		if err := opt(ex); err != nil {
			return nil, err
		}
	}
	ex.hooks = append(ex.hooks, ex.generateHook())
	return ex, nil
}

// Hooks returns the hooks for code generation.
func (e *Extension) Hooks() []gen.Hook {
	return e.hooks
}

// ConfigPath returns the path of the managed gqlgen.yml.
func (e *Extension) ConfigPath() string {
	return e.configPath
}

// generateHook returns a hook that updates gqlgen.yml after the files were
// written. Nothing is touched when the generation fails.
func (e *Extension) generateHook() gen.Hook {
	return func(next gen.Generator) gen.Generator {
		return gen.GenerateFunc(func(ctx context.Context, g *gen.Graph) error {
			if err := next.Generate(ctx, g); err != nil {
				return err
			}
			cfg, err := LoadGQLGenConfig(e.configPath)
			if err != nil {
				return gen.NewGenerationError("gqlgen", e.configPath, "", err)
			}
			if err := e.Inject(cfg, g); err != nil {
				return err
			}
			if err := SaveGQLGenConfig(e.configPath, cfg); err != nil {
				return gen.NewGenerationError("gqlgen", e.configPath, "", err)
			}
			return nil
		})
	}
}

// Inject adds the bindings of the graph to cfg. Existing values are kept;
// paths are made relative to the directory of the config file.
func (e *Extension) Inject(cfg *GQLGenConfig, g *gen.Graph) error {
	if g.Package == "" {
		return gen.NewConfigError("Package", nil, "gqlgen bindings require a package path")
	}
	schemaPath, err := e.rel(filepath.Join(g.Target, g.SchemaFile))
	if err != nil {
		return err
	}
	cfg.AddSchemaPath(schemaPath)
	cfg.AddAutobind(g.Package)
	if cfg.Exec.Filename == "" {
		if cfg.Exec.Filename, err = e.rel(filepath.Join(g.Target, e.execFile)); err != nil {
			return err
		}
		cfg.Exec.Package = g.PackageName()
	}
	if cfg.Resolver.Layout == "" {
		r := e.resolver
		if r.DirName, err = e.rel(filepath.Join(g.Target, r.DirName)); err != nil {
			return err
		}
		cfg.Resolver = r
	}
	if _, ok := g.Schema.Schema.Types["DateTime"]; ok {
		cfg.SetModel("DateTime", DateTimeModel)
	}
	cfg.OmitRootModels = true
	cfg.ResolversAlwaysReturnPointers = true
	return nil
}

func (e *Extension) rel(target string) (string, error) {
	base, err := filepath.Abs(filepath.Dir(e.configPath))
	if err == nil {
		target, err = filepath.Abs(target)
	}
	var p string
	if err == nil {
		p, err = filepath.Rel(base, target)
	}
	if err != nil {
		return "", gen.NewConfigError("Target", target, err.Error())
	}
	return filepath.ToSlash(p), nil
}

// =============================================================================
// Extension options
// =============================================================================

// WithConfigPath sets the path of the gqlgen.yml to create or update.
func WithConfigPath(p string) ExtensionOption {
	return func(e *Extension) error {
		if p == "" {
			return gen.NewConfigError("ConfigPath", p, "path must not be empty")
		}
		e.configPath = p
		return nil
	}
}

// WithExecFile sets the file name of the gqlgen executor, relative to the
// target directory. It is used only when gqlgen.yml names none.
func WithExecFile(name string) ExtensionOption {
	return func(e *Extension) error {
		if name == "" || path.Ext(name) != ".go" {
			return gen.NewConfigError("ExecFile", name, "must name a .go file")
		}
		e.execFile = name
		return nil
	}
}

// WithResolverPackage sets the directory, relative to the target, and the
// package of the gqlgen resolver stubs. It is used only when gqlgen.yml
// configures no resolver layout.
func WithResolverPackage(dir, pkg string) ExtensionOption {
	return func(e *Extension) error {
		if dir == "" || pkg == "" {
			return gen.NewConfigError("ResolverPackage", dir, "directory and package are required")
		}
		e.resolver.DirName = dir
		e.resolver.Package = pkg
		return nil
	}
}
