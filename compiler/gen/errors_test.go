package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownTypeError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &UnknownTypeError{Name: "Publisher", Model: "Book", Field: "publisher"}
		assert.Equal(t, `modelql: unknown type "Publisher" for field publisher on model Book`, err.Error())
	})

	t.Run("Error message with name only", func(t *testing.T) {
		err := NewUnknownTypeError("Publisher")
		assert.Equal(t, `modelql: unknown type "Publisher"`, err.Error())
	})

	t.Run("Is matches ErrUnknownType", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", NewUnknownTypeError("X"))
		assert.True(t, errors.Is(err, ErrUnknownType))
		assert.True(t, IsUnknownTypeError(err))
		assert.False(t, IsUnknownTypeError(errors.New("other")))
	})
}

func TestUnsupportedOperationError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &UnsupportedOperationError{Type: "archive", Model: "Book", Operation: "archive"}
		assert.Equal(t, `modelql: unsupported operation type "archive" for operation archive on model Book`, err.Error())
	})

	t.Run("Is matches ErrUnsupportedOperation", func(t *testing.T) {
		err := NewUnsupportedOperationError("archive")
		assert.True(t, errors.Is(err, ErrUnsupportedOperation))
		assert.True(t, IsUnsupportedOperationError(err))
	})
}

func TestUnknownValidatorError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &UnknownValidatorError{Kind: "IsShiny", Model: "Book", Argument: "title"}
		assert.Equal(t, `modelql: unknown validator "IsShiny" on argument title of model Book`, err.Error())
	})

	t.Run("Is matches ErrUnknownValidator", func(t *testing.T) {
		err := NewUnknownValidatorError("IsShiny")
		assert.True(t, errors.Is(err, ErrUnknownValidator))
		assert.True(t, IsUnknownValidatorError(err))
		assert.False(t, errors.Is(err, ErrInvalidValidator))
	})
}

func TestValidatorError(t *testing.T) {
	t.Run("Error message with cause", func(t *testing.T) {
		cause := errors.New("bad number")
		err := NewValidatorError("Min", "age", "missing min", cause)
		assert.Equal(t, "modelql: validator Min on argument age: missing min: bad number", err.Error())
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrInvalidValidator))
	})
}

func TestModelNotFoundError(t *testing.T) {
	err := NewModelNotFoundError("Book")
	assert.Equal(t, "modelql: model Book not found", err.Error())
	assert.True(t, errors.Is(err, ErrModelNotFound))
	assert.True(t, IsModelNotFoundError(err))
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "workers must be positive")
		assert.Equal(t, `modelql: config error for "Workers" (value: -1): workers must be positive`, err.Error())
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing target")
		assert.Equal(t, `modelql: config error for "Target": missing target`, err.Error())
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("syntax error")
		err := NewGenerationError("format", "book_resolver.go", "unformatted written to x.error", cause)

		assert.Contains(t, err.Error(), "modelql: generation error")
		assert.Contains(t, err.Error(), "in phase format")
		assert.Contains(t, err.Error(), "(file: book_resolver.go)")
		assert.Contains(t, err.Error(), "unformatted written to x.error")
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewGenerationError("write", "", "", cause)
		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("render", "", "", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, IsGenerationError(err))
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrUnknownType,
		ErrUnsupportedOperation,
		ErrUnknownValidator,
		ErrInvalidValidator,
		ErrModelNotFound,
		ErrMissingConfig,
		ErrGenerationFailed,
	}
	for i, a := range sentinels {
		assert.Contains(t, a.Error(), "modelql: ")
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
