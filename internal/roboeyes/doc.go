// Package roboeyes models the RoboEyes display controller: the Driver that
// talks to the peripheral, the Component that owns its runtime state, and
// the Registry that maps document identities to Components.
//
// # Architecture
//
//	┌──────────────┐  Get(id)   ┌──────────────┐
//	│   actions    │───────────▶│   Registry   │  one *Component per id
//	└──────┬───────┘            └──────┬───────┘
//	       │ SetMood, SetHFlicker, ... │
//	       ▼                           ▼
//	┌──────────────────────────────────────────┐
//	│               Component                  │  last mood/position,
//	│  state, flicker amplitudes, autoblinker  │  flicker amplitudes, ...
//	└──────────────────┬───────────────────────┘
//	                   │ Driver calls
//	                   ▼
//	┌──────────────────────────────────────────┐
//	│   Driver (MQTT publisher, log, double)   │
//	└──────────────────────────────────────────┘
//
// # Thread Safety
//
// The Registry is safe for concurrent use. A Component is not: Setup, Loop
// and every setter must be called from the single host loop goroutine that
// also plays actions.
//
// # Library Declarations
//
// The first successful registration records the display libraries the
// firmware build needs (see Libraries). Later registrations do not repeat
// the declaration.
package roboeyes
