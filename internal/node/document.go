package node

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bench2012/Esphome-Chatbot/internal/actions"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// LambdaTag marks a scalar as a deferred computation.
const LambdaTag = "!lambda"

// Document is a parsed node document.
type Document struct {
	Components []ComponentSpec
	Scripts    []ScriptSpec
}

// ComponentSpec declares one display.
type ComponentSpec struct {
	ID        string `yaml:"id"`
	Driver    string `yaml:"driver"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FrameRate int    `yaml:"frame_rate"`

	Line int `yaml:"-"`
}

// ScriptSpec declares a named action list.
type ScriptSpec struct {
	ID         string
	Parameters map[string]templatable.Type
	Actions    []ActionSpec
	Line       int
}

// ActionSpec is one entry of a script's action list. Fields holds the
// entry's configuration mapping with !lambda scalars decoded as
// templatable.Expression; it is nil when the entry has no mapping.
type ActionSpec struct {
	Kind   actions.Kind
	Fields any
	Line   int
}

// Load reads and parses the node document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied
	if err != nil {
		return nil, fmt.Errorf("reading node document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a node document and checks its shape against the embedded
// schema. Field-level checks of action entries happen at compile time.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return &Document{}, nil
	}
	top := &root
	if top.Kind == yaml.DocumentNode {
		top = top.Content[0]
	}

	value, err := decode(top)
	if err != nil {
		return nil, err
	}
	if err := validateShape(value); err != nil {
		return nil, err
	}

	doc := &Document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], resolveAlias(top.Content[i+1])
		switch key.Value {
		case "robo_eyes":
			for _, item := range val.Content {
				spec, err := decodeComponent(resolveAlias(item))
				if err != nil {
					return nil, err
				}
				doc.Components = append(doc.Components, spec)
			}
		case "script":
			for _, item := range val.Content {
				spec, err := decodeScript(resolveAlias(item))
				if err != nil {
					return nil, err
				}
				doc.Scripts = append(doc.Scripts, spec)
			}
		}
	}
	return doc, nil
}

func decodeComponent(n *yaml.Node) (ComponentSpec, error) {
	var spec ComponentSpec
	if err := n.Decode(&spec); err != nil {
		return spec, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, n.Line, err)
	}
	spec.Line = n.Line
	return spec, nil
}

func decodeScript(n *yaml.Node) (ScriptSpec, error) {
	var raw struct {
		ID         string            `yaml:"id"`
		Parameters map[string]string `yaml:"parameters"`
		Then       []yaml.Node       `yaml:"then"`
	}
	if err := n.Decode(&raw); err != nil {
		return ScriptSpec{}, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, n.Line, err)
	}

	spec := ScriptSpec{ID: raw.ID, Line: n.Line}
	if len(raw.Parameters) > 0 {
		spec.Parameters = make(map[string]templatable.Type, len(raw.Parameters))
		for name, t := range raw.Parameters {
			spec.Parameters[name] = templatable.Type(t)
		}
	}

	for i := range raw.Then {
		entry := resolveAlias(&raw.Then[i])
		// The schema guarantees a single-key mapping.
		key, val := entry.Content[0], entry.Content[1]
		fields, err := decode(val)
		if err != nil {
			return ScriptSpec{}, err
		}
		spec.Actions = append(spec.Actions, ActionSpec{
			Kind:   actions.Kind(key.Value),
			Fields: fields,
			Line:   key.Line,
		})
	}
	return spec, nil
}

// decode converts a YAML node to plain Go values. Mappings become
// map[string]any, sequences []any, and !lambda scalars Expression.
func decode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decode(n.Content[0])

	case yaml.AliasNode:
		return decode(n.Alias)

	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: mapping keys must be scalars", ErrInvalidDocument, key.Line)
			}
			if _, dup := out[key.Value]; dup {
				return nil, fmt.Errorf("%w: line %d: duplicate key %q", ErrInvalidDocument, key.Line, key.Value)
			}
			v, err := decode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		if n.Tag == LambdaTag {
			src := strings.TrimSpace(n.Value)
			if src == "" {
				return nil, fmt.Errorf("%w: line %d: empty %s", ErrInvalidDocument, n.Line, LambdaTag)
			}
			return templatable.Expression{Source: src}, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: line %d: unsupported node", ErrInvalidDocument, n.Line)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
