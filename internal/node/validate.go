package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "embed"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

//go:embed schema/node-v1.json
var nodeSchemaJSON string

const nodeSchemaURL = "node-v1.json"

var nodeSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(nodeSchemaURL, strings.NewReader(nodeSchemaJSON)); err != nil {
		return nil, fmt.Errorf("adding node schema: %w", err)
	}
	schema, err := compiler.Compile(nodeSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling node schema: %w", err)
	}
	return schema, nil
})

// validateShape checks a decoded document against the node schema. The
// value is passed through JSON so the validator sees JSON types, with
// expressions rendered as their tagged source.
func validateShape(v any) error {
	schema, err := nodeSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(jsonValue(v))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w:\n  - %s", ErrInvalidDocument, strings.Join(schemaMessages(verr), "\n  - "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// schemaMessages flattens a validation error tree into one line per leaf.
func schemaMessages(err *jsonschema.ValidationError) []string {
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "/"
			}
			out = append(out, fmt.Sprintf("%s: %s", location, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	return out
}

func jsonValue(v any) any {
	switch val := v.(type) {
	case templatable.Expression:
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonValue(item)
		}
		return out
	default:
		return v
	}
}
