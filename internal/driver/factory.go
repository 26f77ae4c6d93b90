package driver

import (
	"fmt"
	"sort"

	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
)

// Driver kinds a component may name.
const (
	KindMQTT = "mqtt"
	KindLog  = "log"
)

// Factory builds the driver for one component.
type Factory struct {
	Publisher Publisher // may be nil when no broker is configured
	Node      string
	QoS       byte
	Fallback  string // kind used when a component names none
	Logger    Logger
}

// New returns the driver of the given kind for componentID. An empty kind
// uses the factory's fallback.
func (f Factory) New(componentID, kind string) (roboeyes.Driver, error) {
	if kind == "" {
		kind = f.Fallback
	}
	switch kind {
	case KindMQTT:
		if f.Publisher == nil {
			return nil, fmt.Errorf("%w: component %s", ErrNoPublisher, componentID)
		}
		return NewMQTT(f.Publisher, f.Node, componentID, f.QoS, f.Logger), nil
	case KindLog:
		return NewLog(f.Logger, componentID), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, kind)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
