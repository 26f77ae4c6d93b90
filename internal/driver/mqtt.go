package driver

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/mqtt"
)

// Publisher is the subset of the MQTT client the driver needs. Driver
// calls run on the engine loop, so PublishAsync must not wait for the
// broker; a late delivery failure arrives through onResult.
type Publisher interface {
	PublishAsync(topic string, payload []byte, qos byte, retained bool, onResult func(error)) error
}

// command is the JSON body published for every driver call.
type command struct {
	ID         string         `json:"id"`
	Component  string         `json:"component"`
	Command    string         `json:"command"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Source     string         `json:"source"`
}

// MQTT drives a remote display by publishing commands to its topic.
// Publish failures are logged and dropped; the Driver contract has no
// error path and the next command supersedes the lost one.
type MQTT struct {
	Commands
	pub       Publisher
	topic     string
	node      string
	component string
	qos       byte
	logger    Logger
}

// NewMQTT returns a driver publishing to roboeyes/command/{node}/{component}.
func NewMQTT(pub Publisher, node, component string, qos byte, logger Logger) *MQTT {
	if logger == nil {
		logger = noopLogger{}
	}
	m := &MQTT{
		pub:       pub,
		topic:     mqtt.Topics{}.Command(node, component),
		node:      node,
		component: component,
		qos:       qos,
		logger:    logger,
	}
	m.Commands = NewCommands(m.publish)
	return m
}

// Topic returns the command topic.
func (m *MQTT) Topic() string { return m.topic }

func (m *MQTT) publish(name string, params map[string]any) {
	payload, err := json.Marshal(command{
		ID:         uuid.NewString(),
		Component:  m.component,
		Command:    name,
		Parameters: params,
		Source:     "roboeyes:" + m.node,
	})
	if err != nil {
		m.logger.Error("marshalling command", "component", m.component, "command", name, "error", err)
		return
	}

	undelivered := func(err error) {
		m.logger.Warn("command not delivered",
			"component", m.component,
			"command", name,
			"topic", m.topic,
			"error", err,
		)
	}
	err = m.pub.PublishAsync(m.topic, payload, m.qos, false, func(err error) {
		if err != nil {
			undelivered(err)
		}
	})
	if err != nil {
		undelivered(err)
		return
	}

	m.logger.Debug("command published", "component", m.component, "command", name, "topic", m.topic)
}
