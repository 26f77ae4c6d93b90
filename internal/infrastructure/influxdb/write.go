package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementScriptRun      = "script_run"
	MeasurementComponentState = "component_state"
)

// WriteScriptRun records one finished script run.
//
// Example:
//
//	client.WriteScriptRun("greet", "completed", 3, 2*time.Millisecond)
func (c *Client) WriteScriptRun(scriptID, status string, actions int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(scriptRunPoint(c.node, scriptID, status, actions, duration, time.Now()))
}

// WriteComponentState records a component's state after a change.
func (c *Client) WriteComponentState(componentID string, fields map[string]any) {
	if !c.IsConnected() || len(fields) == 0 {
		return
	}
	c.writeAPI.WritePoint(componentStatePoint(c.node, componentID, fields, time.Now()))
}

// WritePoint writes an arbitrary point tagged with the node identity.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]any) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, withNode(c.node, tags), fields, time.Now()))
}

func scriptRunPoint(node, scriptID, status string, actions int, duration time.Duration, at time.Time) *write.Point {
	return write.NewPoint(
		MeasurementScriptRun,
		map[string]string{"node": node, "script_id": scriptID, "status": status},
		map[string]any{"actions": actions, "duration_ms": duration.Milliseconds()},
		at,
	)
}

func componentStatePoint(node, componentID string, fields map[string]any, at time.Time) *write.Point {
	return write.NewPoint(
		MeasurementComponentState,
		map[string]string{"node": node, "component_id": componentID},
		fields,
		at,
	)
}

func withNode(node string, tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		out[k] = v
	}
	out["node"] = node
	return out
}
