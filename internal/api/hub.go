package api

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/logging"
)

// Channels a WebSocket client can subscribe to.
const (
	ChannelComponentState = "component.state_changed"
	ChannelScriptRun      = "script.run_completed"
)

var knownChannels = map[string]bool{
	ChannelComponentState: true,
	ChannelScriptRun:      true,
}

// Hub fans engine telemetry out to WebSocket clients and remembers the
// last state reported for each component. It satisfies
// automation.MetricsWriter, so the engine loop feeds it directly and the
// API never reads a component itself.
type Hub struct {
	logger *logging.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	states  map[string]map[string]any
}

// NewHub creates an empty hub.
func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
		states:  make(map[string]map[string]any),
	}
}

// Run blocks until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "clients", n)
}

// remove drops c and closes its send channel. Safe to call twice.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Debug("websocket client disconnected", "clients", n)
	}
}

// deliver queues data for c if it is still connected. A full buffer drops
// the message.
func (h *Hub) deliver(c *client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; ok {
		c.offer(data)
	}
}

// publish sends an event to every client subscribed to channel.
func (h *Hub) publish(channel string, payload any) {
	data, err := encodeEvent(channel, payload)
	if err != nil {
		h.logger.Error("failed to encode websocket event", "channel", channel, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.subscribed(channel) {
			c.offer(data)
		}
	}
}

// WriteComponentState records fields as the state of componentID and
// publishes it on ChannelComponentState.
func (h *Hub) WriteComponentState(componentID string, fields map[string]any) {
	snapshot := maps.Clone(fields)

	h.mu.Lock()
	h.states[componentID] = snapshot
	h.mu.Unlock()

	h.publish(ChannelComponentState, stateEvent(componentID, snapshot))
}

// WriteScriptRun publishes a run summary on ChannelScriptRun.
func (h *Hub) WriteScriptRun(scriptID, status string, actions int, duration time.Duration) {
	h.publish(ChannelScriptRun, map[string]any{
		"script_id":   scriptID,
		"status":      status,
		"actions":     actions,
		"duration_ms": duration.Milliseconds(),
	})
}

// State returns the last state reported for componentID.
func (h *Hub) State(componentID string) (map[string]any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	st, ok := h.states[componentID]
	return st, ok
}

// replayStates sends c the current state of every component, ordered by
// id, so a new subscriber does not wait for the next change.
func (h *Hub) replayStates(c *client) {
	h.mu.RLock()
	ids := slices.Sorted(maps.Keys(h.states))
	events := make([][]byte, 0, len(ids))
	for _, id := range ids {
		data, err := encodeEvent(ChannelComponentState, stateEvent(id, h.states[id]))
		if err == nil {
			events = append(events, data)
		}
	}
	h.mu.RUnlock()

	for _, data := range events {
		h.deliver(c, data)
	}
}

func stateEvent(componentID string, state map[string]any) map[string]any {
	return map[string]any{"component_id": componentID, "state": state}
}

func encodeEvent(channel string, payload any) ([]byte, error) {
	return json.Marshal(Message{
		Type:      MessageEvent,
		Channel:   channel,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:   payload,
	})
}
