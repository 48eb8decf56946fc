package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

var documentTemplate = template.Must(template.New("document").Parse(`
{{- range .Fragments }}
fragment {{ .Name }} on {{ .Type }} {
{{- range .Fields }}
  {{ . }}
{{- end }}
}
{{ end }}
{{- range .Operations }}
{{ .Keyword }} {{ .Name }}($input: {{ .Input }}!) {
  {{ .Field }}(input: $input) {
{{- if .List }}
    entries {
      ...{{ .Fragment }}
    }
    total
{{- else }}
    entry {
      ...{{ .Fragment }}
    }
{{- end }}
  }
}
{{ end }}`))

type (
	docFragment struct {
		Name   string
		Type   string
		Fields []string
	}
	docOperation struct {
		Keyword  string
		Name     string
		Input    string
		Field    string
		Fragment string
		List     bool
	}
)

// Document renders the example query/mutation document for the session's
// models. Every model with at least one operation gets a fragment selecting
// its properties, and every operation gets one block taking
// $input: <Input>!. Fragments come first, then operations, in model and
// operation order.
//
// The names are derived here independently of the schema, with the same
// naming functions, so the document validates against the printed schema.
func (s *Session) Document() (string, error) {
	var (
		fragments  []docFragment
		operations []docOperation
	)
	for _, m := range s.models {
		if len(m.Operations) == 0 {
			continue
		}
		frag := docFragment{Name: FragmentName(m.Name), Type: m.Name}
		for _, p := range m.Properties {
			frag.Fields = append(frag.Fields, p.Name)
		}
		fragments = append(fragments, frag)
		for _, op := range m.Operations {
			kind, err := ParseOperationKind(op.Type)
			if err != nil {
				return "", &UnsupportedOperationError{Type: op.Type, Model: m.Name, Operation: op.Name}
			}
			block := docOperation{
				Name:     DocumentOperationName(m.Name, kind),
				Input:    InputTypeName(m.Name, kind),
				Field:    RootFieldName(op.Name, m.Name),
				Fragment: frag.Name,
			}
			switch kind {
			case Show:
				block.Keyword = "query"
			case List:
				block.Keyword, block.List = "query", true
			case Create, Update, Remove:
				block.Keyword = "mutation"
			default:
				return "", &UnsupportedOperationError{Type: op.Type, Model: m.Name, Operation: op.Name}
			}
			operations = append(operations, block)
		}
	}
	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, struct {
		Fragments  []docFragment
		Operations []docOperation
	}{fragments, operations})
	if err != nil {
		return "", fmt.Errorf("execute document template: %w", err)
	}
	return strings.TrimPrefix(buf.String(), "\n"), nil
}
