package automation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// CoerceArgs converts raw run arguments to the declared parameter types.
// Every declared parameter must be supplied and no others are accepted.
// All problems are reported together, wrapped in ErrInvalidArgs.
func CoerceArgs(params map[string]templatable.Type, raw map[string]any) (templatable.Args, error) {
	var errs []string

	for name := range raw {
		if _, ok := params[name]; !ok {
			errs = append(errs, fmt.Sprintf("unknown argument %q", name))
		}
	}

	args := make(templatable.Args, len(params))
	for name, t := range params {
		v, ok := raw[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("missing argument %q", name))
			continue
		}
		coerced, err := t.Coerce(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("argument %q: %v", name, err))
			continue
		}
		args[name] = coerced
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgs, strings.Join(errs, "; "))
	}
	return args, nil
}

// GenerateID returns a new execution ID.
func GenerateID() string {
	return uuid.NewString()
}
