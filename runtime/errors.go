package runtime

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for resolver calls.
var (
	// ErrNotFound is returned by a service when the requested entry does not exist.
	ErrNotFound = errors.New("modelql: entry not found")

	// ErrNotImplemented is returned for a service operation without an implementation.
	ErrNotImplemented = errors.New("modelql: operation not implemented")

	// ErrNilService is returned when a resolver is called without a service.
	ErrNilService = errors.New("modelql: nil service")
)

// NotFoundError represents an error when an entry is not found.
type NotFoundError struct {
	model string
	id    any // Optional: the ID that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("modelql: %s not found (id=%v)", e.model, e.id)
	}
	return fmt.Sprintf("modelql: %s not found", e.model)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Model returns the model name.
func (e *NotFoundError) Model() string {
	return e.model
}

// ID returns the ID that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given model.
func NewNotFoundError(model string) *NotFoundError {
	return &NotFoundError{model: model}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the ID that was searched for.
func NewNotFoundErrorWithID(model string, id any) *NotFoundError {
	return &NotFoundError{model: model, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ValidationError represents a failed check on one input field.
type ValidationError struct {
	Field string // Input field name
	Rule  string // Rule that failed, e.g. "min=1"
	Err   error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("modelql: validator failed for field %q: %s", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given field.
func NewValidationError(field, rule string, err error) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during validation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "modelql: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("modelql: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

// ServiceError wraps an error returned by a service with the operation
// that produced it.
type ServiceError struct {
	Op  string // Operation (find, create, update or remove)
	Err error  // Underlying error
}

// Error returns the error string.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("modelql: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ResultTypeError is returned when a service result does not have the type
// the resolver returns.
type ResultTypeError struct {
	Op   string
	Want string
	Got  string
}

// Error returns the error string.
func (e *ResultTypeError) Error() string {
	return fmt.Sprintf("modelql: %s returned %s, want %s", e.Op, e.Got, e.Want)
}
