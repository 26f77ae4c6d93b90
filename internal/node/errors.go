package node

import (
	"errors"
	"fmt"

	"github.com/bench2012/Esphome-Chatbot/internal/actions"
)

// ErrInvalidDocument is returned when the node document is not valid YAML
// or does not have the expected shape.
var ErrInvalidDocument = errors.New("node: invalid document")

// ComponentError reports a component declaration that could not be registered.
type ComponentError struct {
	ID   string
	Line int
	Err  error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("robo_eyes %s (line %d): %v", e.ID, e.Line, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// ScriptError reports a script that could not be registered.
type ScriptError struct {
	ID   string
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s (line %d): %v", e.ID, e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// ActionError reports one action entry that failed to compile. The entry is
// left out of its script.
type ActionError struct {
	Script string
	Index  int
	Kind   actions.Kind
	Line   int
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("script %s: action %d (%s, line %d): %v", e.Script, e.Index, e.Kind, e.Line, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
