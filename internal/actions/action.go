package actions

import (
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// Kind identifies an action by its configuration key.
type Kind string

// Built-in action kinds.
const (
	KindSetMood          Kind = "robo_eyes.set_mood"
	KindSetShape         Kind = "robo_eyes.set_shape"
	KindSetPosition      Kind = "robo_eyes.set_position"
	KindSetCuriosity     Kind = "robo_eyes.set_curiosity"
	KindSetSweat         Kind = "robo_eyes.set_sweat"
	KindOpen             Kind = "robo_eyes.open"
	KindClose            Kind = "robo_eyes.close"
	KindLaugh            Kind = "robo_eyes.laugh"
	KindConfused         Kind = "robo_eyes.confused"
	KindSetIdleMode      Kind = "robo_eyes.set_idle_mode"
	KindSetHFlicker      Kind = "robo_eyes.set_h_flicker"
	KindSetVFlicker      Kind = "robo_eyes.set_v_flicker"
	KindSetAutoblinker   Kind = "robo_eyes.set_autoblinker"
	KindSetDisplayColors Kind = "robo_eyes.set_display_colors"
)

// Action is a compiled action entry bound to its Component.
type Action interface {
	Kind() Kind

	// Parent returns the Component the action configures. It is never nil.
	Parent() *roboeyes.Component

	// Play applies the action with the trigger payload. It never blocks.
	Play(args templatable.Args)
}

// base carries the parent every action holds.
type base struct {
	parent *roboeyes.Component
}

func (b base) Parent() *roboeyes.Component { return b.parent }

// evaluate resolves v for a play. On failure the parent logs the error and
// ok is false, so the caller skips the setter.
func evaluate[T templatable.Scalar](parent *roboeyes.Component, kind Kind, field string, v templatable.Value[T], args templatable.Args) (T, bool) {
	out, err := v.Evaluate(args)
	if err != nil {
		parent.ReportError(string(kind), field, err)
		var zero T
		return zero, false
	}
	return out, true
}
