package templatable

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression complexity limits.
const (
	maxExpressionLength = 1000
	maxExpressionNodes  = 200
)

// Expression marks a configuration value computed from the trigger payload.
// The node loader produces it for scalars tagged !lambda.
type Expression struct {
	Source string
}

func (x Expression) String() string { return "!lambda " + x.Source }

// Env declares the trigger arguments an expression may reference. Keys are
// argument names, values are zero values of the declared argument types.
type Env map[string]any

// NewEnv builds an Env from declared parameter types.
func NewEnv(params map[string]Type) Env {
	env := make(Env, len(params))
	for name, t := range params {
		env[name] = t.Zero()
	}
	return env
}

// Compile turns an expression into a deferred computation producing T.
//
// Parameters:
//   - field: name of the field being resolved, used in errors
//   - x: the expression
//   - coerce: the coercion the result passes through on every evaluation
//   - env: arguments the expression may reference; unknown names fail here
//
// Returns:
//   - Value[T]: a deferred Value carrying x.Source
//   - error: *ExpressionError if the expression is too long or fails to compile
func Compile[T Scalar](field string, x Expression, coerce Coercer[T], env Env) (Value[T], error) {
	if len(x.Source) > maxExpressionLength {
		return Value[T]{}, &ExpressionError{
			Field:  field,
			Source: x.Source,
			Err:    fmt.Errorf("longer than %d characters", maxExpressionLength),
		}
	}

	options := []expr.Option{
		expr.Env(map[string]any(env)),
		expr.MaxNodes(maxExpressionNodes),
	}
	if hint := resultHint[T](); hint != nil {
		options = append(options, hint)
	}

	program, err := expr.Compile(x.Source, options...)
	if err != nil {
		return Value[T]{}, &ExpressionError{Field: field, Source: x.Source, Err: err}
	}

	return deferredFrom(evaluator(field, program, coerce), x.Source), nil
}

func evaluator[T Scalar](field string, program *vm.Program, coerce Coercer[T]) Func[T] {
	return func(args Args) (T, error) {
		var zero T
		output, err := expr.Run(program, map[string]any(args))
		if err != nil {
			return zero, fmt.Errorf("field %q: evaluate: %w", field, err)
		}
		v, err := coerce(output)
		if err != nil {
			return zero, withField(err, field)
		}
		return v, nil
	}
}

// resultHint constrains the compiled result type where expr can check it
// statically. Integer fields get no hint: expr's division yields float64, and
// integral floats are accepted by the Int coercion at evaluation time.
func resultHint[T Scalar]() expr.Option {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Bool:
		return expr.AsBool()
	case reflect.String:
		return expr.AsKind(reflect.String)
	default:
		return nil
	}
}
