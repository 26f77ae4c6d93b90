package actions

import "errors"

// Domain errors for the actions package.
var (
	// ErrUnknownAction is returned when an entry names an action kind that is not registered.
	ErrUnknownAction = errors.New("actions: unknown action")

	// ErrKindExists is returned when registering an action kind twice.
	ErrKindExists = errors.New("actions: kind already registered")

	// ErrInvalidEntry is returned when an entry's configuration is not a mapping.
	ErrInvalidEntry = errors.New("actions: invalid entry")
)
