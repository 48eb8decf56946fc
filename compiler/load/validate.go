package load

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one structural problem in a model file.
type FieldError struct {
	// Path locates the offending value, e.g. "[0].properties[1].type".
	Path string
	// Rule is the failed constraint (required, oneof, ...).
	Rule    string
	Message string
}

// String implements fmt.Stringer.
func (e FieldError) String() string {
	return e.Path + ": " + e.Message
}

// ValidationError holds every field-level problem found in a batch of
// models. A batch that fails validation is never handed to the compiler.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load: %d invalid model field", len(e.Fields))
	if len(e.Fields) != 1 {
		b.WriteString("s")
	}
	for _, f := range e.Fields {
		b.WriteString("\n\t")
		b.WriteString(f.String())
	}
	return b.String()
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

var structural = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
})

// Validate checks the structure of the given models: required keys are
// present and closed enumerations hold one of their values. All problems are
// reported together in a *ValidationError.
func Validate(models []*Model) error {
	var fields []FieldError
	for i, m := range models {
		if m == nil {
			fields = append(fields, FieldError{Path: fmt.Sprintf("[%d]", i), Rule: "required", Message: "model is empty"})
			continue
		}
		err := structural().Struct(m)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("load: validate model %d: %w", i, err)
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Path:    fieldPath(i, fe.Namespace()),
				Rule:    fe.Tag(),
				Message: message(fe),
			})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// fieldPath replaces the root struct name of a validator namespace
// ("Model.properties[0].type") with the model index.
func fieldPath(i int, ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return fmt.Sprintf("[%d]", i)
	}
	return fmt.Sprintf("[%d].%s", i, rest)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
