package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a model file.
type Format int

// Supported model file formats.
const (
	FormatYAML Format = iota + 1
	FormatJSON
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the format of a model file by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("load: unsupported model file extension %q", filepath.Ext(path))
	}
}

// Parse decodes a list of models from buf. Unknown keys are rejected, and the
// decoded models are structurally validated before they are returned.
func Parse(buf []byte, format Format) ([]*Model, error) {
	models, err := decode(buf, format)
	if err != nil {
		return nil, err
	}
	if err := Validate(models); err != nil {
		return nil, err
	}
	return models, nil
}

// File loads and validates the models declared in the file at path.
func File(path string) ([]*Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	models, err := Parse(buf, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return models, nil
}

// Files loads the models of all given files, in argument order. Glob
// patterns are expanded; a pattern matching nothing is an error.
func Files(patterns ...string) ([]*Model, error) {
	var models []*Model
	for _, pattern := range patterns {
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("load: bad pattern %q: %w", pattern, err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("load: no model files match %q", pattern)
		}
		for _, path := range paths {
			ms, err := File(path)
			if err != nil {
				return nil, err
			}
			models = append(models, ms...)
		}
	}
	return models, nil
}

func decode(buf []byte, format Format) ([]*Model, error) {
	var models []*Model
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(&models); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&models); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("load: unknown format %v", format)
	}
	return models, nil
}
