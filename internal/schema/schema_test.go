package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

var errUnknown = errors.New("unknown component")

type componentSet map[string]bool

func (c componentSet) Require(id string) error {
	if !c[id] {
		return fmt.Errorf("%w: %s", errUnknown, id)
	}
	return nil
}

var (
	eyes = componentSet{"eyes1": true}

	flicker = MustNew("robo_eyes.set_h_flicker",
		Required("state", templatable.TypeBool),
		Optional("amplitude", templatable.TypeByte),
	)

	idle = MustNew("robo_eyes.set_idle_mode",
		Required("state", templatable.TypeBool),
		WithDefault("interval", templatable.TypeInt, 1),
		WithDefault("variation", templatable.TypeInt, 3),
	)
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		raw     map[string]any
		want    map[string]any
		wantErr error
	}{
		{
			name:   "required present, optional absent without default",
			schema: flicker,
			raw:    map[string]any{"component": "eyes1", "state": true},
			want:   map[string]any{"state": true},
		},
		{
			name:   "defaults substituted",
			schema: idle,
			raw:    map[string]any{"component": "eyes1", "state": true},
			want:   map[string]any{"state": true, "interval": 1, "variation": 3},
		},
		{
			name:   "explicit value overrides default",
			schema: idle,
			raw:    map[string]any{"component": "eyes1", "state": false, "interval": 9},
			want:   map[string]any{"state": false, "interval": 9, "variation": 3},
		},
		{
			name:   "byte bounds accepted",
			schema: flicker,
			raw:    map[string]any{"component": "eyes1", "state": true, "amplitude": 255},
			want:   map[string]any{"state": true, "amplitude": 255},
		},
		{
			name:   "expression bypasses range check",
			schema: flicker,
			raw:    map[string]any{"component": "eyes1", "state": true, "amplitude": templatable.Expression{Source: "999"}},
			want:   map[string]any{"state": true, "amplitude": templatable.Expression{Source: "999"}},
		},
		{
			name:    "required field missing",
			schema:  flicker,
			raw:     map[string]any{"component": "eyes1"},
			wantErr: ErrMissingField,
		},
		{
			name:    "component missing",
			schema:  flicker,
			raw:     map[string]any{"state": true},
			wantErr: ErrMissingField,
		},
		{
			name:    "component unknown",
			schema:  flicker,
			raw:     map[string]any{"component": "eyes2", "state": true},
			wantErr: errUnknown,
		},
		{
			name:    "component not a string",
			schema:  flicker,
			raw:     map[string]any{"component": 7, "state": true},
			wantErr: templatable.ErrTypeMismatch,
		},
		{
			name:    "byte above range",
			schema:  flicker,
			raw:     map[string]any{"component": "eyes1", "state": true, "amplitude": 256},
			wantErr: templatable.ErrOutOfRange,
		},
		{
			name:    "byte below range",
			schema:  flicker,
			raw:     map[string]any{"component": "eyes1", "state": true, "amplitude": -1},
			wantErr: templatable.ErrOutOfRange,
		},
		{
			name:    "undeclared key",
			schema:  flicker,
			raw:     map[string]any{"component": "eyes1", "state": true, "speed": 3},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := tt.schema.Validate(tt.raw, eyes)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if entry.Component != "eyes1" {
				t.Errorf("Component = %q, want eyes1", entry.Component)
			}
			if len(entry.Values) != len(tt.want) {
				t.Fatalf("Values = %v, want %v", entry.Values, tt.want)
			}
			for k, v := range tt.want {
				if entry.Values[k] != v {
					t.Errorf("Values[%q] = %v, want %v", k, entry.Values[k], v)
				}
			}
		})
	}
}

func TestValidateErrorDetails(t *testing.T) {
	_, err := flicker.Validate(map[string]any{"component": "eyes1"}, eyes)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingFieldError", err)
	}
	if missing.Kind != "robo_eyes.set_h_flicker" || missing.Field != "state" {
		t.Errorf("MissingFieldError = %+v", missing)
	}

	_, err = flicker.Validate(map[string]any{"component": "eyes1", "state": true, "amplitude": 300}, eyes)
	var rangeErr *templatable.RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want *RangeError", err)
	}
	if rangeErr.Field != "amplitude" || rangeErr.Value != 300 || rangeErr.Max != 255 {
		t.Errorf("RangeError = %+v", rangeErr)
	}
}

func TestValidateWithoutComponents(t *testing.T) {
	_, err := flicker.Validate(map[string]any{"component": "eyes1", "state": true}, nil)
	if !errors.Is(err, ErrNoComponents) {
		t.Errorf("error = %v, want ErrNoComponents", err)
	}
}

func TestValidateIsPure(t *testing.T) {
	raw := map[string]any{"component": "eyes1", "state": true}
	if _, err := idle.Validate(raw, eyes); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(raw) != 2 {
		t.Errorf("Validate() mutated its input: %v", raw)
	}
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{name: "reserved name", fields: []Field{Required("component", templatable.TypeString)}},
		{name: "duplicate", fields: []Field{Optional("a", templatable.TypeInt), Optional("a", templatable.TypeInt)}},
		{name: "unknown type", fields: []Field{Optional("a", templatable.Type("float"))}},
		{name: "required with default", fields: []Field{{Name: "a", Type: templatable.TypeInt, Required: true, Default: 1}}},
		{name: "default out of range", fields: []Field{WithDefault("a", templatable.TypeByte, 300)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New("test", tt.fields...); !errors.Is(err, ErrInvalidSchema) {
				t.Errorf("New() error = %v, want ErrInvalidSchema", err)
			}
		})
	}
}
