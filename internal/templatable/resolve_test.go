package templatable

import (
	"errors"
	"testing"
)

func TestResolveConstant(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{name: "int", raw: 4, want: 4},
		{name: "int64", raw: int64(-7), want: -7},
		{name: "uint8", raw: uint8(200), want: 200},
		{name: "integral float", raw: float64(12), want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ResolveInt("interval", tt.raw, nil)
			if err != nil {
				t.Fatalf("ResolveInt() error = %v", err)
			}
			if !v.IsConstant() {
				t.Fatalf("ResolveInt() = %s, want constant", v)
			}
			got, ok := v.Constant()
			if !ok || got != tt.want {
				t.Errorf("Constant() = %d, %v, want %d, true", got, ok, tt.want)
			}
		})
	}
}

func TestResolveTypeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		resolve func() error
		field   string
	}{
		{
			name: "string into bool",
			resolve: func() error {
				_, err := ResolveBool("state", "maybe", nil)
				return err
			},
			field: "state",
		},
		{
			name: "fractional float into int",
			resolve: func() error {
				_, err := ResolveInt("width", 1.5, nil)
				return err
			},
			field: "width",
		},
		{
			name: "bool into string",
			resolve: func() error {
				_, err := ResolveString("mood", true, nil)
				return err
			},
			field: "mood",
		},
		{
			name: "mapping into byte",
			resolve: func() error {
				_, err := ResolveByte("main", map[string]any{"a": 1}, nil)
				return err
			},
			field: "main",
		},
		{
			name: "null into int",
			resolve: func() error {
				_, err := ResolveInt("radius", nil, nil)
				return err
			},
			field: "radius",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resolve()
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("error = %v, want ErrTypeMismatch", err)
			}
			var mismatch *TypeMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("error = %T, want *TypeMismatchError", err)
			}
			if mismatch.Field != tt.field {
				t.Errorf("Field = %q, want %q", mismatch.Field, tt.field)
			}
		})
	}
}

func TestResolveIsReferentiallyTransparent(t *testing.T) {
	a, err := ResolveString("mood", "HAPPY", nil)
	if err != nil {
		t.Fatalf("ResolveString() error = %v", err)
	}
	b, err := ResolveString("mood", "HAPPY", nil)
	if err != nil {
		t.Fatalf("ResolveString() error = %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("%s not equal to %s", a, b)
	}

	env := NewEnv(map[string]Type{"level": TypeInt})
	x := Expression{Source: "level * 2"}
	c, err := ResolveInt("width", x, env)
	if err != nil {
		t.Fatalf("ResolveInt() error = %v", err)
	}
	d, err := ResolveInt("width", x, env)
	if err != nil {
		t.Fatalf("ResolveInt() error = %v", err)
	}
	if !c.Equal(d) {
		t.Errorf("deferred values from the same source should compare equal")
	}
	if c.Equal(Constant(0)) {
		t.Errorf("deferred value should not equal a constant")
	}
}

func TestResolveByteRange(t *testing.T) {
	for _, raw := range []any{0, 255, uint8(17)} {
		if _, err := ResolveByte("amplitude", raw, nil); err != nil {
			t.Errorf("ResolveByte(%v) error = %v", raw, err)
		}
	}

	for _, raw := range []any{-1, 256, 1000} {
		_, err := ResolveByte("amplitude", raw, nil)
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("ResolveByte(%v) error = %v, want *RangeError", raw, err)
		}
		if rangeErr.Field != "amplitude" || rangeErr.Max != ByteMax {
			t.Errorf("RangeError = %+v", rangeErr)
		}
	}
}

func TestValueUnset(t *testing.T) {
	var v Value[int]
	if v.IsSet() {
		t.Error("zero Value should be unset")
	}
	if _, err := v.Evaluate(nil); !errors.Is(err, ErrUnset) {
		t.Errorf("Evaluate() error = %v, want ErrUnset", err)
	}
}

func TestBoolStrings(t *testing.T) {
	tests := map[string]bool{
		"true": true, "YES": true, "On": true,
		"false": false, "no": false, " off ": false,
	}
	for in, want := range tests {
		got, err := Bool(in)
		if err != nil {
			t.Errorf("Bool(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Bool(%q) = %v, want %v", in, got, want)
		}
	}
}
