package runtime

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, fn := range customTags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("modelql: register validation %q: %v", tag, err))
		}
	}
	return v
})

// Validator returns the shared validator instance used by Tag, with the
// custom tags registered.
func Validator() *validator.Validate {
	return validate()
}

// Validate collects the results of the checks of one input. It returns nil
// when every check passed, the failing error when one did, and an
// *AggregateError otherwise.
func Validate(checks ...error) error {
	return NewAggregateError(checks...)
}

// Tag checks value against a validator tag. A nil pointer passes every tag
// except one starting with "required", so optional fields are only checked
// when set.
func Tag(field string, value any, tag string) error {
	value, isNil := indirect(value)
	if isNil && !strings.HasPrefix(tag, "required") {
		return nil
	}
	err := check(value, tag)
	var errs validator.ValidationErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &errs) && len(errs) > 0:
		fe := errs[0]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return NewValidationError(field, rule, fmt.Errorf("value does not satisfy %q", rule))
	default:
		return NewValidationError(field, tag, err)
	}
}

// check runs the validator, turning the panic it raises for a tag applied
// to a value kind the tag does not support into an error.
func check(value any, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tag %q does not apply to a value of type %T: %v", tag, value, r)
		}
	}()
	return validate().Var(value, tag)
}

// Defined fails when value is nil or a nil pointer.
func Defined(field string, value any) error {
	if _, isNil := indirect(value); isNil {
		return NewValidationError(field, "defined", errors.New("value must be defined"))
	}
	return nil
}

var patterns sync.Map // map[string]*regexp.Regexp

// Matches checks a string value against a regular expression. Unset
// optional values pass.
func Matches(field string, value any, pattern string) error {
	v, isNil := indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return NewValidationError(field, "matches", fmt.Errorf("value of type %T is not a string", v))
	}
	re, err := compile(pattern)
	if err != nil {
		return NewValidationError(field, "matches", err)
	}
	if !re.MatchString(s) {
		return NewValidationError(field, "matches", fmt.Errorf("value does not match %q", pattern))
	}
	return nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

// MinDate fails when the date value is before the RFC 3339 date.
func MinDate(field string, value any, date string) error {
	return compareDate(field, "min_date", value, date, func(v, bound time.Time) bool { return !v.Before(bound) })
}

// MaxDate fails when the date value is after the RFC 3339 date.
func MaxDate(field string, value any, date string) error {
	return compareDate(field, "max_date", value, date, func(v, bound time.Time) bool { return !v.After(bound) })
}

func compareDate(field, rule string, value any, date string, ok func(v, bound time.Time) bool) error {
	v, isNil := indirect(value)
	if isNil {
		return nil
	}
	bound, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return NewValidationError(field, rule, err)
	}
	t, isTime := v.(time.Time)
	if !isTime {
		return NewValidationError(field, rule, fmt.Errorf("value of type %T is not a date", v))
	}
	if !ok(t, bound) {
		return NewValidationError(field, rule+"="+date, fmt.Errorf("value %s is out of range", t.Format(time.RFC3339)))
	}
	return nil
}

// Instance fails unless the value's type, with pointers removed, is named
// typeName.
func Instance(field string, value any, typeName string) error {
	v, isNil := indirect(value)
	if isNil {
		return nil
	}
	if name := reflect.TypeOf(v).Name(); name != typeName {
		return NewValidationError(field, "instance="+typeName, fmt.Errorf("value of type %T is not a %s", v, typeName))
	}
	return nil
}

// indirect removes pointers from value and unwraps DateTime, reporting
// whether a nil was found on the way.
func indirect(value any) (any, bool) {
	if value == nil {
		return nil, true
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	v := rv.Interface()
	if d, ok := v.(DateTime); ok {
		return d.Time, false
	}
	return v, false
}
