package actions

import (
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// SetMoodAction changes the displayed mood.
type SetMoodAction struct {
	base
	mood templatable.Value[string]
}

// NewSetMood creates a SetMoodAction.
func NewSetMood(parent *roboeyes.Component, mood templatable.Value[string]) *SetMoodAction {
	return &SetMoodAction{base: base{parent}, mood: mood}
}

func (a *SetMoodAction) Kind() Kind { return KindSetMood }

func (a *SetMoodAction) Play(args templatable.Args) {
	if mood, ok := evaluate(a.parent, KindSetMood, "mood", a.mood, args); ok {
		a.parent.SetMood(mood)
	}
}

// SetPositionAction moves the eyes to a compass position.
type SetPositionAction struct {
	base
	position templatable.Value[string]
}

// NewSetPosition creates a SetPositionAction.
func NewSetPosition(parent *roboeyes.Component, position templatable.Value[string]) *SetPositionAction {
	return &SetPositionAction{base: base{parent}, position: position}
}

func (a *SetPositionAction) Kind() Kind { return KindSetPosition }

func (a *SetPositionAction) Play(args templatable.Args) {
	if p, ok := evaluate(a.parent, KindSetPosition, "position", a.position, args); ok {
		a.parent.SetPosition(p)
	}
}

// SetCuriosityAction toggles curiosity.
type SetCuriosityAction struct {
	base
	state templatable.Value[bool]
}

// NewSetCuriosity creates a SetCuriosityAction.
func NewSetCuriosity(parent *roboeyes.Component, state templatable.Value[bool]) *SetCuriosityAction {
	return &SetCuriosityAction{base: base{parent}, state: state}
}

func (a *SetCuriosityAction) Kind() Kind { return KindSetCuriosity }

func (a *SetCuriosityAction) Play(args templatable.Args) {
	if on, ok := evaluate(a.parent, KindSetCuriosity, "state", a.state, args); ok {
		a.parent.SetCuriosity(on)
	}
}

// SetSweatAction toggles the sweat animation.
type SetSweatAction struct {
	base
	state templatable.Value[bool]
}

// NewSetSweat creates a SetSweatAction.
func NewSetSweat(parent *roboeyes.Component, state templatable.Value[bool]) *SetSweatAction {
	return &SetSweatAction{base: base{parent}, state: state}
}

func (a *SetSweatAction) Kind() Kind { return KindSetSweat }

func (a *SetSweatAction) Play(args templatable.Args) {
	if on, ok := evaluate(a.parent, KindSetSweat, "state", a.state, args); ok {
		a.parent.SetSweat(on)
	}
}

// SetIdleModeAction toggles random repositioning.
type SetIdleModeAction struct {
	base
	state     templatable.Value[bool]
	interval  templatable.Value[int]
	variation templatable.Value[int]
}

// NewSetIdleMode creates a SetIdleModeAction.
func NewSetIdleMode(parent *roboeyes.Component, state templatable.Value[bool], interval, variation templatable.Value[int]) *SetIdleModeAction {
	return &SetIdleModeAction{base: base{parent}, state: state, interval: interval, variation: variation}
}

func (a *SetIdleModeAction) Kind() Kind { return KindSetIdleMode }

// Play drives the parent only when all three values evaluate.
func (a *SetIdleModeAction) Play(args templatable.Args) {
	on, ok := evaluate(a.parent, KindSetIdleMode, "state", a.state, args)
	if !ok {
		return
	}
	interval, ok := evaluate(a.parent, KindSetIdleMode, "interval", a.interval, args)
	if !ok {
		return
	}
	variation, ok := evaluate(a.parent, KindSetIdleMode, "variation", a.variation, args)
	if !ok {
		return
	}
	a.parent.SetIdleMode(on, interval, variation)
}
