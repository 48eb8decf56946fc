package graphql

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// GQLGenConfig is the part of gqlgen.yml the post-generation hook touches.
// Keys outside it are dropped when the file is saved. Models binds GraphQL
// type names to Go types, e.g. DateTime to the runtime scalar.
type GQLGenConfig struct {
	SchemaFilename                StringList              `yaml:"schema,omitempty"`
	Exec                          PackageConfig           `yaml:"exec,omitempty"`
	Resolver                      ResolverConfig          `yaml:"resolver,omitempty"`
	Autobind                      []string                `yaml:"autobind,omitempty"`
	Models                        map[string]TypeMapEntry `yaml:"models,omitempty"`
	OmitRootModels                bool                    `yaml:"omit_root_models,omitempty"`
	ResolversAlwaysReturnPointers bool                    `yaml:"resolvers_always_return_pointers,omitempty"`
}

// PackageConfig is the exec section: the file gqlgen generates and its package.
type PackageConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ResolverConfig is the resolver section. modelql writes its own resolvers
// into the target package, so gqlgen's stubs go to a sibling directory.
type ResolverConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
	Layout   string `yaml:"layout,omitempty"`
	DirName  string `yaml:"dir,omitempty"`
}

// TypeMapEntry is one entry of the models section.
type TypeMapEntry struct {
	Model StringList `yaml:"model,omitempty"`
}

// StringList decodes both `schema: a.graphql` and `schema: [a.graphql]`.
// A single element is encoded back as a plain string.
type StringList []string

func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = StringList{node.Value}
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: want a string or a list of strings", node.Line)
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*s = items
	return nil
}

func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadGQLGenConfig reads path. When the file does not exist yet the hook
// starts from an empty config and creates it on save.
func LoadGQLGenConfig(path string) (*GQLGenConfig, error) {
	cfg := &GQLGenConfig{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read gqlgen config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse gqlgen config %s: %w", path, err)
		}
	}
	if cfg.Models == nil {
		cfg.Models = map[string]TypeMapEntry{}
	}
	return cfg, nil
}

// SaveGQLGenConfig encodes cfg to path.
func SaveGQLGenConfig(path string, cfg *GQLGenConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode gqlgen config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create gqlgen config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// AddSchemaPath lists the printed schema, once.
func (c *GQLGenConfig) AddSchemaPath(path string) {
	c.SchemaFilename = appendUnique(c.SchemaFilename, path)
}

// AddAutobind lets gqlgen pick up the generated models package, once.
func (c *GQLGenConfig) AddAutobind(pkg string) {
	c.Autobind = appendUnique(c.Autobind, pkg)
}

// SetModel binds typeName to the Go type modelPath, keeping other bindings.
func (c *GQLGenConfig) SetModel(typeName, modelPath string) {
	if c.Models == nil {
		c.Models = map[string]TypeMapEntry{}
	}
	entry := c.Models[typeName]
	entry.Model = appendUnique(entry.Model, modelPath)
	c.Models[typeName] = entry
}

func appendUnique[S ~[]string](list S, v string) S {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
