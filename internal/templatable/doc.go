// Package templatable resolves configuration fields into values that are
// either fixed when the node document is compiled or computed from the
// trigger payload when an action plays.
//
// A field written as a literal becomes a constant:
//
//	mood: HAPPY            → Constant("HAPPY")
//
// A field written with the !lambda tag becomes a deferred computation. The
// expression is compiled once, against the arguments the enclosing script
// declares, and evaluated on every play:
//
//	amplitude: !lambda "level * 10"   → Deferred(func(args) (uint8, error))
//
// # Key Types
//
//   - Value[T]: tagged union of Constant(T) and Deferred(Func[T]); the zero
//     Value is unset and models an absent optional field
//   - Expression: the marker the node loader produces for !lambda scalars
//   - Env: the declared trigger arguments an expression may reference
//   - Args: the runtime trigger payload
//
// # Type Discipline
//
// The declared type of a field never changes after declaration. Literal
// coercion only accepts conversions that lose nothing (an integral float64
// into an int, an int into a byte within [0, 255]) and deferred results are
// coerced through the same rules at evaluation time.
//
// Byte fields are range-checked for constants by the schema layer at compile
// time. Deferred byte results are range-checked here, at evaluation time,
// and a value outside [0, 255] is reported as a RangeError instead of being
// truncated.
package templatable
