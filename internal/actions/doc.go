// Package actions compiles RoboEyes action entries into typed, parent-bound
// Actions that the host plays with a trigger payload.
//
// # Pipeline
//
//	raw entry ──▶ schema.Validate ──▶ templatable.Resolve ──▶ build ──▶ Action
//	              (presence, defaults,  (constant or deferred  (one of three
//	               byte range, parent)   per field)             strategies)
//
// # Build Strategies
//
//   - full constructor: every field is passed to the constructor
//     (SetMood, SetPosition, SetCuriosity, SetSweat, SetIdleMode)
//   - setter-configured: the action is created with its parent only and a
//     setter is called for each field present after default substitution
//     (SetShape, SetHFlicker, SetVFlicker, SetAutoblinker, SetDisplayColors)
//   - no fields: the parent is the only input (Open, Close, Laugh, Confused)
//
// # Playing
//
// Play evaluates deferred fields inline and calls the parent's setters. An
// evaluation failure is logged by the parent Component and the setter that
// needed the value is skipped; other setters of the same action still run.
package actions
