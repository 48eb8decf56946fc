package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelql/runtime"
)

type bookInput struct {
	ID    *string
	Title string
}

type bookResult struct {
	Title string
}

func TestServiceCalls(t *testing.T) {
	ctx := context.Background()
	var got []string
	record := func(op string) func(context.Context, any) (any, error) {
		return func(_ context.Context, input any) (any, error) {
			got = append(got, op)
			in := input.(*bookInput)
			return &bookResult{Title: in.Title}, nil
		}
	}
	svc := &runtime.ServiceFuncs{
		FindFunc:   record("find"),
		CreateFunc: record("create"),
		UpdateFunc: record("update"),
		RemoveFunc: record("remove"),
	}
	input := &bookInput{Title: "Dune"}

	r, err := runtime.Find[*bookResult](ctx, svc, input)
	require.NoError(t, err)
	assert.Equal(t, "Dune", r.Title)

	_, err = runtime.Create[*bookResult](ctx, svc, input)
	require.NoError(t, err)
	_, err = runtime.Update[*bookResult](ctx, svc, input)
	require.NoError(t, err)
	_, err = runtime.Remove[*bookResult](ctx, svc, input)
	require.NoError(t, err)

	assert.Equal(t, []string{"find", "create", "update", "remove"}, got)
}

func TestServiceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("nil service", func(t *testing.T) {
		r, err := runtime.Find[*bookResult](ctx, nil, &bookInput{})
		assert.Nil(t, r)
		assert.ErrorIs(t, err, runtime.ErrNilService)
	})

	t.Run("not implemented", func(t *testing.T) {
		_, err := runtime.Remove[*bookResult](ctx, &runtime.ServiceFuncs{}, &bookInput{})
		assert.ErrorIs(t, err, runtime.ErrNotImplemented)
		var svcErr *runtime.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "remove", svcErr.Op)
	})

	t.Run("service error is wrapped", func(t *testing.T) {
		svc := &runtime.ServiceFuncs{FindFunc: func(context.Context, any) (any, error) {
			return nil, runtime.NewNotFoundErrorWithID("Book", "42")
		}}
		_, err := runtime.Find[*bookResult](ctx, svc, &bookInput{})
		assert.True(t, runtime.IsNotFound(err))
		assert.Equal(t, "modelql: find: modelql: Book not found (id=42)", err.Error())
	})

	t.Run("wrapped error keeps the cause", func(t *testing.T) {
		cause := errors.New("storage offline")
		svc := &runtime.ServiceFuncs{CreateFunc: func(context.Context, any) (any, error) {
			return nil, cause
		}}
		_, err := runtime.Create[*bookResult](ctx, svc, &bookInput{})
		assert.ErrorIs(t, err, cause)
		var svcErr *runtime.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create", svcErr.Op)
		assert.Same(t, cause, svcErr.Err)
	})

	t.Run("wrong result type", func(t *testing.T) {
		svc := &runtime.ServiceFuncs{CreateFunc: func(context.Context, any) (any, error) {
			return bookResult{}, nil
		}}
		_, err := runtime.Create[*bookResult](ctx, svc, &bookInput{})
		var typeErr *runtime.ResultTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "*runtime_test.bookResult", typeErr.Want)
		assert.Equal(t, "runtime_test.bookResult", typeErr.Got)
	})

	t.Run("nil result", func(t *testing.T) {
		svc := &runtime.ServiceFuncs{UpdateFunc: func(context.Context, any) (any, error) {
			return nil, nil
		}}
		r, err := runtime.Update[*bookResult](ctx, svc, &bookInput{})
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		called := false
		svc := &runtime.ServiceFuncs{FindFunc: func(context.Context, any) (any, error) {
			called = true
			return nil, nil
		}}
		_, err := runtime.Find[*bookResult](ctx, svc, &bookInput{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestNotFoundError(t *testing.T) {
	err := runtime.NewNotFoundError("Book")
	assert.Equal(t, "modelql: Book not found", err.Error())
	assert.Equal(t, "Book", err.Model())
	assert.Nil(t, err.ID())
	assert.True(t, errors.Is(err, runtime.ErrNotFound))
	assert.True(t, runtime.IsNotFound(fmt.Errorf("wrap: %w", err)))
	assert.True(t, runtime.IsNotFound(runtime.ErrNotFound))
	assert.False(t, runtime.IsNotFound(nil))
	assert.False(t, runtime.IsNotFound(errors.New("other")))
}

func TestAggregateError(t *testing.T) {
	t.Run("nil when empty", func(t *testing.T) {
		assert.NoError(t, runtime.NewAggregateError())
		assert.NoError(t, runtime.NewAggregateError(nil, nil))
	})

	t.Run("single error is returned as is", func(t *testing.T) {
		e := errors.New("one")
		assert.Same(t, e, runtime.NewAggregateError(nil, e))
	})

	t.Run("multiple errors", func(t *testing.T) {
		a, b := errors.New("a"), errors.New("b")
		err := runtime.NewAggregateError(a, nil, b)
		assert.Equal(t, "modelql: multiple errors:\n  [1] a\n  [2] b", err.Error())
		assert.ErrorIs(t, err, a)
		assert.ErrorIs(t, err, b)
	})
}
