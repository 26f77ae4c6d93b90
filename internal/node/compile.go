package node

import (
	"errors"
	"fmt"

	"github.com/bench2012/Esphome-Chatbot/internal/actions"
	"github.com/bench2012/Esphome-Chatbot/internal/automation"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// Logger defines the logging interface used by Compiler.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// DriverFactory creates the driver for a declared component. kind is the
// component's driver field and may be empty.
type DriverFactory func(componentID, kind string) (roboeyes.Driver, error)

// Program is a compiled node document.
type Program struct {
	Components *roboeyes.Registry
	Scripts    *automation.Registry
}

// Compiler turns node documents into Programs.
type Compiler struct {
	catalogue *actions.Catalogue
	drivers   DriverFactory
	logger    Logger
}

// NewCompiler creates a compiler that builds actions from catalogue and
// drivers from drivers.
func NewCompiler(catalogue *actions.Catalogue, drivers DriverFactory) *Compiler {
	return &Compiler{
		catalogue: catalogue,
		drivers:   drivers,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the compiler and the registries it creates.
func (c *Compiler) SetLogger(logger Logger) {
	c.logger = logger
}

// Compile registers every component, then compiles every script against
// them.
//
// An entry that fails does not stop compilation: a rejected action is left
// out of its script, a rejected component or script is left out of the
// Program. All failures are returned together, and the Program is returned
// alongside them so callers can report what did compile.
//
// Returns:
//   - *Program: the components and scripts that compiled
//   - error: nil, or the joined *ComponentError, *ScriptError and *ActionError values
func (c *Compiler) Compile(doc *Document) (*Program, error) {
	prog := &Program{
		Components: roboeyes.NewRegistry(),
		Scripts:    automation.NewRegistry(),
	}
	prog.Components.SetLogger(c.logger)
	prog.Scripts.SetLogger(c.logger)

	var errs []error

	for i, spec := range doc.Components {
		if err := c.registerComponent(prog.Components, i, spec); err != nil {
			errs = append(errs, err)
		}
	}

	for _, spec := range doc.Scripts {
		script, actionErrs := c.compileScript(prog.Components, spec)
		errs = append(errs, actionErrs...)
		if err := prog.Scripts.Add(script); err != nil {
			errs = append(errs, &ScriptError{ID: spec.ID, Line: spec.Line, Err: err})
		}
	}

	c.logger.Info("node compiled",
		"components", prog.Components.Count(),
		"scripts", prog.Scripts.Count(),
		"errors", len(errs),
	)
	return prog, errors.Join(errs...)
}

func (c *Compiler) registerComponent(reg *roboeyes.Registry, index int, spec ComponentSpec) error {
	id := spec.ID
	if id == "" {
		id = fmt.Sprintf("robo_eyes_%d", index)
	}

	d, err := c.drivers(id, spec.Driver)
	if err != nil {
		return &ComponentError{ID: id, Line: spec.Line, Err: err}
	}

	comp := roboeyes.NewComponent(id, d, roboeyes.Geometry{
		Width:     spec.Width,
		Height:    spec.Height,
		FrameRate: spec.FrameRate,
	})
	comp.SetLogger(c.logger)

	if err := reg.Register(comp); err != nil {
		return &ComponentError{ID: id, Line: spec.Line, Err: err}
	}
	return nil
}

func (c *Compiler) compileScript(components *roboeyes.Registry, spec ScriptSpec) (*automation.Script, []error) {
	script := &automation.Script{ID: spec.ID, Parameters: spec.Parameters}
	env := templatable.NewEnv(spec.Parameters)

	var errs []error
	for i, entry := range spec.Actions {
		a, err := c.compileAction(components, entry, env)
		if err != nil {
			errs = append(errs, &ActionError{
				Script: spec.ID,
				Index:  i,
				Kind:   entry.Kind,
				Line:   entry.Line,
				Err:    err,
			})
			continue
		}
		script.Actions = append(script.Actions, a)
	}

	c.logger.Debug("script compiled",
		"script_id", spec.ID,
		"actions", len(script.Actions),
		"rejected", len(errs),
	)
	return script, errs
}

func (c *Compiler) compileAction(components *roboeyes.Registry, entry ActionSpec, env templatable.Env) (actions.Action, error) {
	var raw map[string]any
	switch f := entry.Fields.(type) {
	case nil:
		raw = map[string]any{}
	case map[string]any:
		raw = f
	default:
		return nil, fmt.Errorf("%w: expected a mapping, got %T", actions.ErrInvalidEntry, entry.Fields)
	}
	return c.catalogue.Compile(entry.Kind, raw, components, env)
}
