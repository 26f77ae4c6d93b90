package templatable

import "fmt"

// Args is the payload a trigger hands to an action when it fires.
type Args map[string]any

// Scalar is the set of Go types a configuration field can be declared as.
type Scalar interface {
	~bool | ~int | ~uint8 | ~string
}

// Func is a deferred computation evaluated against the trigger payload.
type Func[T Scalar] func(args Args) (T, error)

type state uint8

const (
	unset state = iota
	constant
	deferred
)

// Value is a field that is either known when the configuration is compiled
// or computed from the trigger payload when the action plays.
//
// The zero Value is unset. Only optional fields that were absent from the
// configuration and carry no default are left unset.
type Value[T Scalar] struct {
	state    state
	constant T
	fn       Func[T]
	source   string
}

// Constant returns a Value that always yields v.
func Constant[T Scalar](v T) Value[T] {
	return Value[T]{state: constant, constant: v}
}

// Deferred returns a Value that calls fn on every evaluation.
func Deferred[T Scalar](fn Func[T]) Value[T] {
	return Value[T]{state: deferred, fn: fn}
}

// deferredFrom records the expression source alongside the compiled function
// so two resolutions of the same expression compare equal.
func deferredFrom[T Scalar](fn Func[T], source string) Value[T] {
	return Value[T]{state: deferred, fn: fn, source: source}
}

// IsSet reports whether the Value holds a constant or a deferred computation.
func (v Value[T]) IsSet() bool { return v.state != unset }

// IsConstant reports whether the Value is known at compile time.
func (v Value[T]) IsConstant() bool { return v.state == constant }

// IsDeferred reports whether the Value is computed at evaluation time.
func (v Value[T]) IsDeferred() bool { return v.state == deferred }

// Constant returns the compile-time value and true, or the zero T and false
// when the Value is deferred or unset.
func (v Value[T]) Constant() (T, bool) {
	if v.state != constant {
		var zero T
		return zero, false
	}
	return v.constant, true
}

// Source returns the expression text of a deferred Value built from a
// !lambda field, or "" otherwise.
func (v Value[T]) Source() string { return v.source }

// Evaluate produces the concrete value. Constants ignore args.
func (v Value[T]) Evaluate(args Args) (T, error) {
	switch v.state {
	case constant:
		return v.constant, nil
	case deferred:
		return v.fn(args)
	default:
		var zero T
		return zero, ErrUnset
	}
}

// Equal reports whether two Values hold the same constant, or were resolved
// from the same expression source.
func (v Value[T]) Equal(other Value[T]) bool {
	if v.state != other.state {
		return false
	}
	switch v.state {
	case constant:
		return v.constant == other.constant
	case deferred:
		return v.source != "" && v.source == other.source
	default:
		return true
	}
}

func (v Value[T]) String() string {
	switch v.state {
	case constant:
		return fmt.Sprintf("%v", v.constant)
	case deferred:
		if v.source != "" {
			return "!lambda " + v.source
		}
		return "<deferred>"
	default:
		return "<unset>"
	}
}
