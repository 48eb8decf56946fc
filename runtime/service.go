// Package runtime holds the types and helpers that generated resolvers
// call into: the Service a resolver delegates to, the DateTime scalar and
// the input validation functions.
package runtime

import (
	"context"
	"fmt"
)

// Service performs the operations of one model. Generated resolvers
// validate their input and pass a pointer to it to the service; the
// returned value must be a pointer to the operation's result type.
//
// Show and List operations call Find.
type Service interface {
	Find(ctx context.Context, input any) (any, error)
	Create(ctx context.Context, input any) (any, error)
	Update(ctx context.Context, input any) (any, error)
	Remove(ctx context.Context, input any) (any, error)
}

// The ServiceFuncs type is an adapter to allow the use of ordinary
// functions as Service. A nil function fails with ErrNotImplemented.
type ServiceFuncs struct {
	FindFunc   func(context.Context, any) (any, error)
	CreateFunc func(context.Context, any) (any, error)
	UpdateFunc func(context.Context, any) (any, error)
	RemoveFunc func(context.Context, any) (any, error)
}

var _ Service = (*ServiceFuncs)(nil)

// Find calls s.FindFunc(ctx, input).
func (s *ServiceFuncs) Find(ctx context.Context, input any) (any, error) {
	return callFunc(ctx, s.FindFunc, input)
}

// Create calls s.CreateFunc(ctx, input).
func (s *ServiceFuncs) Create(ctx context.Context, input any) (any, error) {
	return callFunc(ctx, s.CreateFunc, input)
}

// Update calls s.UpdateFunc(ctx, input).
func (s *ServiceFuncs) Update(ctx context.Context, input any) (any, error) {
	return callFunc(ctx, s.UpdateFunc, input)
}

// Remove calls s.RemoveFunc(ctx, input).
func (s *ServiceFuncs) Remove(ctx context.Context, input any) (any, error) {
	return callFunc(ctx, s.RemoveFunc, input)
}

func callFunc(ctx context.Context, fn func(context.Context, any) (any, error), input any) (any, error) {
	if fn == nil {
		return nil, ErrNotImplemented
	}
	return fn(ctx, input)
}

// Find calls svc.Find and returns its result as R. The result value is
// passed through unchanged; an error from the service comes back wrapped
// in a *ServiceError naming the operation, and errors.Is and errors.As
// still reach the service's own error. The same holds for Create, Update
// and Remove.
func Find[R any](ctx context.Context, svc Service, input any) (R, error) {
	if svc == nil {
		var zero R
		return zero, ErrNilService
	}
	return result[R](ctx, "find", svc.Find, input)
}

// Create calls svc.Create and returns its result as R. Service errors are
// wrapped in a *ServiceError, as with Find.
func Create[R any](ctx context.Context, svc Service, input any) (R, error) {
	if svc == nil {
		var zero R
		return zero, ErrNilService
	}
	return result[R](ctx, "create", svc.Create, input)
}

// Update calls svc.Update and returns its result as R. Service errors are
// wrapped in a *ServiceError, as with Find.
func Update[R any](ctx context.Context, svc Service, input any) (R, error) {
	if svc == nil {
		var zero R
		return zero, ErrNilService
	}
	return result[R](ctx, "update", svc.Update, input)
}

// Remove calls svc.Remove and returns its result as R. Service errors are
// wrapped in a *ServiceError, as with Find.
func Remove[R any](ctx context.Context, svc Service, input any) (R, error) {
	if svc == nil {
		var zero R
		return zero, ErrNilService
	}
	return result[R](ctx, "remove", svc.Remove, input)
}

func result[R any](ctx context.Context, op string, call func(context.Context, any) (any, error), input any) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	v, err := call(ctx, input)
	if err != nil {
		return zero, &ServiceError{Op: op, Err: err}
	}
	if v == nil {
		return zero, nil
	}
	r, ok := v.(R)
	if !ok {
		return zero, &ResultTypeError{Op: op, Want: fmt.Sprintf("%T", zero), Got: fmt.Sprintf("%T", v)}
	}
	return r, nil
}
