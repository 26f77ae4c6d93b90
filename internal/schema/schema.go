// Package schema declares the fields each action kind accepts and validates
// raw configuration entries against those declarations.
//
// Validation runs before value resolution. It enforces presence, substitutes
// defaults, range-checks byte constants and resolves the component reference.
// Expressions pass through untouched; their types are checked when they are
// compiled and their ranges when they are evaluated.
package schema

import (
	"fmt"
	"sort"

	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// ComponentKey is the reference field every action entry must carry.
const ComponentKey = "component"

// Field declares one configuration key of an action kind.
type Field struct {
	Name     string
	Type     templatable.Type
	Required bool

	// Default is substituted when an optional field is absent. nil means the
	// field stays absent and the action leaves the corresponding setting alone.
	Default any
}

// Required declares a field that must be present.
func Required(name string, t templatable.Type) Field {
	return Field{Name: name, Type: t, Required: true}
}

// Optional declares a field that may be absent and has no default.
func Optional(name string, t templatable.Type) Field {
	return Field{Name: name, Type: t}
}

// WithDefault declares an optional field whose default is used when absent.
func WithDefault(name string, t templatable.Type, def any) Field {
	return Field{Name: name, Type: t, Default: def}
}

// Components resolves component references during validation.
type Components interface {
	// Require returns nil if id names a registered component, or an error
	// describing the unknown identity.
	Require(id string) error
}

// Schema is the field declaration of one action kind. The component
// reference is implicit and always required.
type Schema struct {
	Kind   string
	Fields []Field
}

// New declares a schema and checks it is well formed.
func New(kind string, fields ...Field) (Schema, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		switch {
		case f.Name == "" || f.Name == ComponentKey:
			return Schema{}, fmt.Errorf("%w: %s: field name %q is reserved or empty", ErrInvalidSchema, kind, f.Name)
		case seen[f.Name]:
			return Schema{}, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidSchema, kind, f.Name)
		case !f.Type.Valid():
			return Schema{}, fmt.Errorf("%w: %s: field %q has unknown type %q", ErrInvalidSchema, kind, f.Name, f.Type)
		case f.Required && f.Default != nil:
			return Schema{}, fmt.Errorf("%w: %s: required field %q cannot have a default", ErrInvalidSchema, kind, f.Name)
		}
		if f.Default != nil {
			if _, err := f.Type.Coerce(f.Default); err != nil {
				return Schema{}, fmt.Errorf("%w: %s: default for %q: %w", ErrInvalidSchema, kind, f.Name, err)
			}
		}
		seen[f.Name] = true
	}
	return Schema{Kind: kind, Fields: fields}, nil
}

// MustNew is New for built-in declarations; it panics on a malformed schema.
func MustNew(kind string, fields ...Field) Schema {
	s, err := New(kind, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Field returns the declaration of name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Entry is a validated configuration entry.
type Entry struct {
	Kind      string
	Component string

	// Values holds every present field and every defaulted field, keyed by
	// name, as raw values or templatable.Expression markers.
	Values map[string]any
}

// Has reports whether name is present after default substitution.
func (e Entry) Has(name string) bool {
	_, ok := e.Values[name]
	return ok
}

// Validate checks raw against the schema and returns the normalized entry.
//
// Validation fails fast, in a fixed order: undeclared keys, the component
// reference, then each declared field in declaration order.
func (s Schema) Validate(raw map[string]any, components Components) (Entry, error) {
	if err := s.checkKeys(raw); err != nil {
		return Entry{}, err
	}

	id, err := s.component(raw, components)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Kind: s.Kind, Component: id, Values: make(map[string]any, len(s.Fields))}
	for _, f := range s.Fields {
		v, present := raw[f.Name]
		if !present {
			switch {
			case f.Required:
				return Entry{}, &MissingFieldError{Kind: s.Kind, Field: f.Name}
			case f.Default != nil:
				entry.Values[f.Name] = f.Default
			}
			continue
		}
		if err := checkRange(f, v); err != nil {
			return Entry{}, err
		}
		entry.Values[f.Name] = v
	}
	return entry, nil
}

func (s Schema) checkKeys(raw map[string]any) error {
	var unknown []string
	for key := range raw {
		if key == ComponentKey {
			continue
		}
		if _, ok := s.Field(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &UnknownFieldError{Kind: s.Kind, Field: unknown[0]}
}

func (s Schema) component(raw map[string]any, components Components) (string, error) {
	v, ok := raw[ComponentKey]
	if !ok {
		return "", &MissingFieldError{Kind: s.Kind, Field: ComponentKey}
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", &templatable.TypeMismatchError{
			Field:    ComponentKey,
			Expected: templatable.TypeString,
			Actual:   fmt.Sprintf("%T", v),
		}
	}
	if components == nil {
		return "", fmt.Errorf("%w: %s: component %q", ErrNoComponents, s.Kind, id)
	}
	if err := components.Require(id); err != nil {
		return "", err
	}
	return id, nil
}

// checkRange rejects byte constants outside [0, 255]. Expressions are not
// checked here.
func checkRange(f Field, v any) error {
	if f.Type != templatable.TypeByte {
		return nil
	}
	if _, ok := v.(templatable.Expression); ok {
		return nil
	}
	n, err := templatable.Int(v)
	if err != nil {
		// Non-integers are reported by value resolution as type mismatches.
		return nil
	}
	if n < templatable.ByteMin || n > templatable.ByteMax {
		return &templatable.RangeError{Field: f.Name, Value: n, Min: templatable.ByteMin, Max: templatable.ByteMax}
	}
	return nil
}
