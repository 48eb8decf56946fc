package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnknownType indicates a type name that is neither a scalar nor a registered model.
	ErrUnknownType = errors.New("modelql: unknown type")
	// ErrUnsupportedOperation indicates an operation kind outside the closed set.
	ErrUnsupportedOperation = errors.New("modelql: unsupported operation")
	// ErrUnknownValidator indicates a validator kind absent from the registry.
	ErrUnknownValidator = errors.New("modelql: unknown validator")
	// ErrInvalidValidator indicates a validator whose properties do not fit its kind.
	ErrInvalidValidator = errors.New("modelql: invalid validator")
	// ErrModelNotFound indicates a model whose object type is not registered.
	ErrModelNotFound = errors.New("modelql: model not found")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("modelql: missing configuration")
	// ErrGenerationFailed indicates an output could not be produced or written.
	ErrGenerationFailed = errors.New("modelql: generation failed")
)

// UnknownTypeError is returned when a property, relationship or argument
// names a type that is not present in the scalar or object registries.
type UnknownTypeError struct {
	Name  string // Unresolved type name
	Model string // Enclosing model (if known)
	Field string // Field that declared the type (if known)
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "modelql: unknown type %q", e.Name)
	if e.Field != "" {
		b.WriteString(" for field ")
		b.WriteString(e.Field)
	}
	if e.Model != "" {
		b.WriteString(" on model ")
		b.WriteString(e.Model)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnknownTypeError.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// NewUnknownTypeError creates a new UnknownTypeError.
func NewUnknownTypeError(name string) *UnknownTypeError {
	return &UnknownTypeError{Name: name}
}

// UnsupportedOperationError is returned for an operation kind outside of
// Show, List, Create, Update and Remove.
type UnsupportedOperationError struct {
	Type      string
	Model     string
	Operation string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "modelql: unsupported operation type %q", e.Type)
	if e.Operation != "" {
		b.WriteString(" for operation ")
		b.WriteString(e.Operation)
	}
	if e.Model != "" {
		b.WriteString(" on model ")
		b.WriteString(e.Model)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnsupportedOperationError.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// NewUnsupportedOperationError creates a new UnsupportedOperationError.
func NewUnsupportedOperationError(typ string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Type: typ}
}

// UnknownValidatorError is returned when an argument validator names a kind
// that the registry does not know.
type UnknownValidatorError struct {
	Kind     string
	Model    string
	Argument string
}

// Error implements the error interface.
func (e *UnknownValidatorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "modelql: unknown validator %q", e.Kind)
	if e.Argument != "" {
		b.WriteString(" on argument ")
		b.WriteString(e.Argument)
	}
	if e.Model != "" {
		b.WriteString(" of model ")
		b.WriteString(e.Model)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnknownValidatorError.
func (e *UnknownValidatorError) Is(target error) bool {
	return target == ErrUnknownValidator
}

// NewUnknownValidatorError creates a new UnknownValidatorError.
func NewUnknownValidatorError(kind string) *UnknownValidatorError {
	return &UnknownValidatorError{Kind: kind}
}

// ValidatorError represents a known validator kind whose properties bag
// is missing a parameter or holds one of the wrong shape.
type ValidatorError struct {
	Kind     string
	Argument string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ValidatorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "modelql: validator %s", e.Kind)
	if e.Argument != "" {
		b.WriteString(" on argument ")
		b.WriteString(e.Argument)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidatorError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidatorError.
func (e *ValidatorError) Is(target error) bool {
	return target == ErrInvalidValidator
}

// NewValidatorError creates a new ValidatorError.
func NewValidatorError(kind, argument, message string, cause error) *ValidatorError {
	return &ValidatorError{
		Kind:     kind,
		Argument: argument,
		Message:  message,
		Cause:    cause,
	}
}

// ModelNotFoundError is returned when an operation is assembled for a model
// whose object type was never registered.
type ModelNotFoundError struct {
	Model string
}

// Error implements the error interface.
func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("modelql: model %s not found", e.Model)
}

// Is reports whether the target matches the sentinel error for ModelNotFoundError.
func (e *ModelNotFoundError) Is(target error) bool {
	return target == ErrModelNotFound
}

// NewModelNotFoundError creates a new ModelNotFoundError.
func NewModelNotFoundError(model string) *ModelNotFoundError {
	return &ModelNotFoundError{Model: model}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("modelql: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("modelql: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a failure to render or write an output file.
type GenerationError struct {
	Phase   string // "schema", "document", "resolver", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("modelql: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsUnknownTypeError reports whether the error is an UnknownTypeError.
func IsUnknownTypeError(err error) bool {
	var typeErr *UnknownTypeError
	return errors.As(err, &typeErr)
}

// IsUnsupportedOperationError reports whether the error is an UnsupportedOperationError.
func IsUnsupportedOperationError(err error) bool {
	var opErr *UnsupportedOperationError
	return errors.As(err, &opErr)
}

// IsUnknownValidatorError reports whether the error is an UnknownValidatorError.
func IsUnknownValidatorError(err error) bool {
	var valErr *UnknownValidatorError
	return errors.As(err, &valErr)
}

// IsModelNotFoundError reports whether the error is a ModelNotFoundError.
func IsModelNotFoundError(err error) bool {
	var nfErr *ModelNotFoundError
	return errors.As(err, &nfErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
