package actions

import (
	"fmt"
	"sort"

	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/schema"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// Strategy is how an action kind is constructed from its resolved fields.
type Strategy int

// Build strategies.
const (
	StrategyConstructor Strategy = iota
	StrategySetters
	StrategyNoFields
)

func (s Strategy) String() string {
	switch s {
	case StrategyConstructor:
		return "constructor"
	case StrategySetters:
		return "setters"
	case StrategyNoFields:
		return "no-fields"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Fields holds the resolved values of a validated entry keyed by field
// name. Each value is a templatable.Value of the field's declared type.
// Optional fields without a default that were absent are not present.
type Fields map[string]any

// Field returns the resolved value of name and whether it is present.
func Field[T templatable.Scalar](f Fields, name string) (templatable.Value[T], bool) {
	v, ok := f[name].(templatable.Value[T])
	return v, ok
}

// BuildFunc constructs an Action. It must not fail: validation and
// resolution have already succeeded when it runs.
type BuildFunc func(parent *roboeyes.Component, f Fields) Action

// Definition registers an action kind.
type Definition struct {
	Schema   schema.Schema
	Strategy Strategy
	Build    BuildFunc
}

// Components resolves component references for Compile.
type Components interface {
	schema.Components
	Get(id string) (*roboeyes.Component, error)
}

// Catalogue maps action kinds to their definitions.
//
// A Catalogue is populated once at startup and read-only afterwards, so it
// can be shared without locking.
type Catalogue struct {
	defs map[Kind]Definition
}

// NewCatalogue returns a Catalogue holding every built-in action kind.
func NewCatalogue() *Catalogue {
	c := &Catalogue{defs: make(map[Kind]Definition)}
	c.registerBuiltins()
	return c
}

// Register adds an action kind.
// Returns ErrKindExists if the kind is already registered.
func (c *Catalogue) Register(kind Kind, def Definition) error {
	if _, exists := c.defs[kind]; exists {
		return fmt.Errorf("%w: %s", ErrKindExists, kind)
	}
	if def.Build == nil {
		return fmt.Errorf("actions: %s: nil build function", kind)
	}
	c.defs[kind] = def
	return nil
}

// Lookup returns the definition of kind.
func (c *Catalogue) Lookup(kind Kind) (Definition, bool) {
	def, ok := c.defs[kind]
	return def, ok
}

// Kinds returns every registered kind, sorted.
func (c *Catalogue) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.defs))
	for k := range c.defs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Compile validates, resolves and builds one action entry.
//
// Parameters:
//   - kind: the entry's configuration key
//   - raw: the entry's configuration mapping
//   - components: resolves the component reference
//   - env: trigger arguments expressions may reference
//
// Returns:
//   - Action: the built action, bound to its component
//   - error: ErrUnknownAction, or the first validation or resolution error
func (c *Catalogue) Compile(kind Kind, raw map[string]any, components Components, env templatable.Env) (Action, error) {
	def, ok := c.defs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, kind)
	}

	entry, err := def.Schema.Validate(raw, components)
	if err != nil {
		return nil, err
	}

	fields, err := resolve(def.Schema, entry, env)
	if err != nil {
		return nil, err
	}

	parent, err := components.Get(entry.Component)
	if err != nil {
		return nil, err
	}

	return def.Build(parent, fields), nil
}

func resolve(s schema.Schema, entry schema.Entry, env templatable.Env) (Fields, error) {
	out := make(Fields, len(entry.Values))
	for _, f := range s.Fields {
		raw, ok := entry.Values[f.Name]
		if !ok {
			continue
		}

		var (
			v   any
			err error
		)
		switch f.Type {
		case templatable.TypeBool:
			v, err = templatable.ResolveBool(f.Name, raw, env)
		case templatable.TypeInt:
			v, err = templatable.ResolveInt(f.Name, raw, env)
		case templatable.TypeByte:
			v, err = templatable.ResolveByte(f.Name, raw, env)
		case templatable.TypeString:
			v, err = templatable.ResolveString(f.Name, raw, env)
		default:
			err = fmt.Errorf("%w: field %q has type %q", schema.ErrInvalidSchema, f.Name, f.Type)
		}
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}
