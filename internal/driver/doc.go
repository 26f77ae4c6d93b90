// Package driver provides the roboeyes.Driver implementations the host can
// bind a component to.
//
// The display itself runs on a microcontroller that animates the eyes; the
// host only sends it commands. Every Driver call is translated to a named
// command with parameters:
//
//	SetMood(HAPPY)            -> set_mood        {"mood": "HAPPY"}
//	SetHFlicker(true, 2)      -> set_h_flicker   {"on": true, "amplitude": 2}
//	SetDisplayColors(0, 1)    -> set_display_colors {"background": 0, "main": 1}
//
// MQTT publishes each command as JSON to roboeyes/command/{node}/{component}.
// Log writes each command to the logger, which is what --dry-run uses.
// Update is not forwarded: frames are produced on the display.
package driver
