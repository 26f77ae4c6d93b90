// Package api implements the HTTP REST API and WebSocket server of the
// RoboEyes host.
//
// This package provides:
//   - REST endpoints listing components and scripts, starting script runs
//     and reading the execution log
//   - WebSocket hub broadcasting component state changes and run results
//   - Middleware for request IDs, access logs, panic recovery, CORS and body size
//
// # Routes
//
//	GET  /api/v1/health
//	GET  /api/v1/components
//	GET  /api/v1/components/{id}
//	GET  /api/v1/scripts
//	GET  /api/v1/scripts/{id}
//	POST /api/v1/scripts/{id}/run         body: JSON object of arguments
//	GET  /api/v1/scripts/{id}/executions  ?limit=
//	GET  /api/v1/executions               ?limit=
//	GET  /api/v1/executions/{id}
//	GET  /api/v1/ws
//
// # WebSocket Channels
//
//	component.state_changed   {"component_id": ..., "state": {...}}
//	script.run_completed      {"script_id": ..., "status": ..., ...}
//
// A client subscribes with {"type":"subscribe","id":"1","channels":[...]}
// and gets an ack. Subscribing to component.state_changed first replays
// the last known state of every component. Unknown channels are rejected
// with an error frame and nothing is subscribed.
//
// The Hub receives both through automation.MetricsWriter, so it is wired
// into the engine's telemetry like any other sink.
package api
