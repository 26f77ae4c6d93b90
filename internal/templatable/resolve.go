package templatable

// Resolve turns a raw configuration value into a Value[T].
//
// An Expression becomes a deferred Value compiled against env. Anything else
// must be coercible to T and becomes a constant. Resolution has no side
// effects: the same input always yields an equal Value.
func Resolve[T Scalar](field string, raw any, coerce Coercer[T], env Env) (Value[T], error) {
	if x, ok := raw.(Expression); ok {
		return Compile(field, x, coerce, env)
	}
	v, err := coerce(raw)
	if err != nil {
		return Value[T]{}, withField(err, field)
	}
	return Constant(v), nil
}

// ResolveBool resolves a bool field.
func ResolveBool(field string, raw any, env Env) (Value[bool], error) {
	return Resolve(field, raw, Bool, env)
}

// ResolveInt resolves an int field.
func ResolveInt(field string, raw any, env Env) (Value[int], error) {
	return Resolve(field, raw, Int, env)
}

// ResolveByte resolves a byte field.
func ResolveByte(field string, raw any, env Env) (Value[uint8], error) {
	return Resolve(field, raw, Byte, env)
}

// ResolveString resolves a string field.
func ResolveString(field string, raw any, env Env) (Value[string], error) {
	return Resolve(field, raw, String, env)
}
