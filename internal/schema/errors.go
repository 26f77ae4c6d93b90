package schema

import (
	"errors"
	"fmt"
)

// Domain errors for the schema package.
var (
	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("schema: missing required field")

	// ErrUnknownField is returned when an entry carries a key its schema does not declare.
	ErrUnknownField = errors.New("schema: unknown field")

	// ErrNoComponents is returned when an entry is validated without a component set.
	ErrNoComponents = errors.New("schema: no components to resolve reference")

	// ErrInvalidSchema is returned when a schema declaration is malformed.
	ErrInvalidSchema = errors.New("schema: invalid schema")
)

// MissingFieldError names the action kind and the absent required field.
type MissingFieldError struct {
	Kind  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Kind, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// UnknownFieldError names the action kind and the undeclared key.
type UnknownFieldError struct {
	Kind  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field %q", e.Kind, e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }
