package automation

import "errors"

// Domain errors for the automation package.
//
//	if errors.Is(err, automation.ErrScriptNotFound) {
//	    // handle not found case
//	}
var (
	// ErrScriptNotFound is returned when a script ID does not exist.
	ErrScriptNotFound = errors.New("script: not found")

	// ErrScriptExists is returned when adding a script whose ID is taken.
	ErrScriptExists = errors.New("script: already exists")

	// ErrInvalidScript is returned for a nil script or one without an ID.
	ErrInvalidScript = errors.New("script: invalid")

	// ErrInvalidArgs is returned when run arguments do not match the declared parameters.
	ErrInvalidArgs = errors.New("script: invalid arguments")

	// ErrExecutionNotFound is returned when an execution ID does not exist.
	ErrExecutionNotFound = errors.New("script: execution not found")

	// ErrEngineStopped is returned when a run is requested after the loop exited.
	ErrEngineStopped = errors.New("script: engine stopped")

	// ErrRunTimeout is returned when a queued run does not finish in time.
	ErrRunTimeout = errors.New("script: run timed out")

	// ErrActionPanic is recorded when an action panics while playing.
	ErrActionPanic = errors.New("script: action panicked")
)
