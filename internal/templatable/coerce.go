package templatable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type names a declared field or parameter type.
type Type string

// Declared types.
const (
	TypeBool   Type = "bool"
	TypeInt    Type = "int"
	TypeByte   Type = "byte"
	TypeString Type = "string"
)

// Byte bounds.
const (
	ByteMin = 0
	ByteMax = math.MaxUint8
)

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	switch t {
	case TypeBool, TypeInt, TypeByte, TypeString:
		return true
	}
	return false
}

// Zero returns the zero value of t, used to declare expression environments.
func (t Type) Zero() any {
	switch t {
	case TypeBool:
		return false
	case TypeInt:
		return 0
	case TypeByte:
		return uint8(0)
	default:
		return ""
	}
}

// Coerce converts raw to the Go representation of t.
func (t Type) Coerce(raw any) (any, error) {
	switch t {
	case TypeBool:
		return Bool(raw)
	case TypeInt:
		return Int(raw)
	case TypeByte:
		return Byte(raw)
	case TypeString:
		return String(raw)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrTypeMismatch, t)
	}
}

// Coercer converts a raw configuration literal into T.
type Coercer[T Scalar] func(raw any) (T, error)

// Bool accepts a bool, or one of true/false/yes/no/on/off in any case.
func Bool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, mismatch(TypeBool, raw)
}

// Int accepts any Go integer that fits in an int, or a float64 with no
// fractional part (JSON numbers arrive as float64).
func Int(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			break
		}
		return int(v), nil
	case uint:
		if v > math.MaxInt {
			break
		}
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			break
		}
		return int(v), nil
	case float32:
		return floatToInt(float64(v), raw)
	case float64:
		return floatToInt(v, raw)
	}
	return 0, mismatch(TypeInt, raw)
}

func floatToInt(f float64, raw any) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, mismatch(TypeInt, raw)
	}
	return int(f), nil
}

// Byte accepts whatever Int accepts and then requires [ByteMin, ByteMax].
func Byte(raw any) (uint8, error) {
	n, err := Int(raw)
	if err != nil {
		return 0, mismatch(TypeByte, raw)
	}
	if n < ByteMin || n > ByteMax {
		return 0, &RangeError{Value: n, Min: ByteMin, Max: ByteMax}
	}
	return uint8(n), nil
}

// String accepts a string, or formats an integer or float.
func String(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", mismatch(TypeString, raw)
}

func mismatch(expected Type, raw any) error {
	return &TypeMismatchError{Expected: expected, Actual: describe(raw)}
}

func describe(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case Expression:
		return "expression"
	case string:
		return fmt.Sprintf("string %q", v)
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T %v", raw, raw)
	}
}
