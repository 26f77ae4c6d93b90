package templatable

import (
	"errors"
	"fmt"
)

// Domain errors for the templatable package.
//
// Typed errors below unwrap to these sentinels, so callers can use either
// errors.Is for the category or errors.As for the details:
//
//	var rangeErr *templatable.RangeError
//	if errors.As(err, &rangeErr) {
//	    // rangeErr.Field, rangeErr.Value, rangeErr.Max
//	}
var (
	// ErrTypeMismatch is returned when a literal cannot be coerced to the declared type.
	ErrTypeMismatch = errors.New("templatable: type mismatch")

	// ErrOutOfRange is returned when a bounded integer lies outside its bounds.
	ErrOutOfRange = errors.New("templatable: value out of range")

	// ErrInvalidExpression is returned when a !lambda expression fails to compile.
	ErrInvalidExpression = errors.New("templatable: invalid expression")

	// ErrUnset is returned when evaluating a Value that was never set.
	ErrUnset = errors.New("templatable: value not set")
)

// TypeMismatchError reports a value whose type cannot be coerced to the
// field's declared type.
type TypeMismatchError struct {
	Field    string
	Expected Type
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// RangeError reports a bounded integer outside [Min, Max].
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("value %d outside [%d, %d]", e.Value, e.Min, e.Max)
	}
	return fmt.Sprintf("field %q: value %d outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// ExpressionError reports a !lambda expression that could not be compiled.
type ExpressionError struct {
	Field  string
	Source string
	Err    error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("field %q: expression %q: %v", e.Field, e.Source, e.Err)
}

func (e *ExpressionError) Unwrap() []error { return []error{ErrInvalidExpression, e.Err} }

// withField stamps the field name onto typed errors produced by the
// coercers, which do not know which field they are converting.
func withField(err error, field string) error {
	var mismatch *TypeMismatchError
	if errors.As(err, &mismatch) && mismatch.Field == "" {
		cpy := *mismatch
		cpy.Field = field
		return &cpy
	}
	var rangeErr *RangeError
	if errors.As(err, &rangeErr) && rangeErr.Field == "" {
		cpy := *rangeErr
		cpy.Field = field
		return &cpy
	}
	return err
}
