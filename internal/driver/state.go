package driver

import (
	"encoding/json"
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/mqtt"
)

// StatePublisher mirrors component state and run results onto MQTT so
// dashboards can follow the host. It satisfies automation.MetricsWriter.
type StatePublisher struct {
	pub    Publisher
	node   string
	qos    byte
	logger Logger
}

// NewStatePublisher returns a StatePublisher for node.
func NewStatePublisher(pub Publisher, node string, qos byte, logger Logger) *StatePublisher {
	if logger == nil {
		logger = noopLogger{}
	}
	return &StatePublisher{pub: pub, node: node, qos: qos, logger: logger}
}

// WriteComponentState publishes the state retained on
// roboeyes/state/{node}/{component}.
func (s *StatePublisher) WriteComponentState(componentID string, fields map[string]any) {
	s.send(mqtt.Topics{}.ComponentState(s.node, componentID), fields, true)
}

// WriteScriptRun publishes a run summary on roboeyes/script/{node}/result.
func (s *StatePublisher) WriteScriptRun(scriptID, status string, actions int, duration time.Duration) {
	s.send(mqtt.Topics{}.ScriptResult(s.node), map[string]any{
		"script_id":   scriptID,
		"status":      status,
		"actions":     actions,
		"duration_ms": duration.Milliseconds(),
	}, false)
}

func (s *StatePublisher) send(topic string, body map[string]any, retained bool) {
	payload, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("marshalling state", "topic", topic, "error", err)
		return
	}
	notPublished := func(err error) {
		if err != nil {
			s.logger.Warn("state not published", "topic", topic, "error", err)
		}
	}
	notPublished(s.pub.PublishAsync(topic, payload, s.qos, retained, notPublished))
}
