package roboeyes

import (
	"errors"
	"fmt"
)

// Domain errors for the roboeyes package.
var (
	// ErrUnknownComponent is returned when an identity has no registered component.
	ErrUnknownComponent = errors.New("roboeyes: unknown component")

	// ErrComponentExists is returned when registering an identity twice.
	ErrComponentExists = errors.New("roboeyes: component already registered")

	// ErrInvalidComponent is returned when registering a nil component or one without an identity.
	ErrInvalidComponent = errors.New("roboeyes: invalid component")
)

// UnknownComponentError names the identity that could not be resolved.
type UnknownComponentError struct {
	ID string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("roboeyes: unknown component %q", e.ID)
}

func (e *UnknownComponentError) Unwrap() error { return ErrUnknownComponent }
