// Package influxdb writes RoboEyes host telemetry to InfluxDB v2.
//
// Two measurements are recorded:
//   - script_run: one point per finished run (script_id, status, actions, duration_ms)
//   - component_state: one point per component state change (mood, flicker, ...)
//
// Writes are non-blocking and batched according to batch_size and
// flush_interval. Asynchronous write failures are delivered to the
// SetOnError callback.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB, cfg.Node.ID)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // telemetry off
//	}
//	defer client.Close()
//
//	client.WriteScriptRun("greet", "completed", 3, elapsed)
package influxdb
