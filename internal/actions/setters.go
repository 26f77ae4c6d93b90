package actions

import (
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// SetShapeAction adjusts eye geometry. Fields that were never set leave the
// corresponding geometry unchanged.
type SetShapeAction struct {
	base
	width   templatable.Value[int]
	height  templatable.Value[int]
	radius  templatable.Value[int]
	space   templatable.Value[int]
	cyclops templatable.Value[bool]
}

// NewSetShape creates a SetShapeAction with no fields set.
func NewSetShape(parent *roboeyes.Component) *SetShapeAction {
	return &SetShapeAction{base: base{parent}}
}

func (a *SetShapeAction) Kind() Kind { return KindSetShape }

func (a *SetShapeAction) SetWidth(v templatable.Value[int])    { a.width = v }
func (a *SetShapeAction) SetHeight(v templatable.Value[int])   { a.height = v }
func (a *SetShapeAction) SetRadius(v templatable.Value[int])   { a.radius = v }
func (a *SetShapeAction) SetSpace(v templatable.Value[int])    { a.space = v }
func (a *SetShapeAction) SetCyclops(v templatable.Value[bool]) { a.cyclops = v }

func (a *SetShapeAction) Play(args templatable.Args) {
	apply(a.parent, "width", a.width, args, a.parent.SetWidth)
	apply(a.parent, "height", a.height, args, a.parent.SetHeight)
	apply(a.parent, "radius", a.radius, args, a.parent.SetBorderRadius)
	apply(a.parent, "space", a.space, args, a.parent.SetSpaceBetween)
	apply(a.parent, "cyclops", a.cyclops, args, a.parent.SetCyclops)
}

func apply[T templatable.Scalar](parent *roboeyes.Component, field string, v templatable.Value[T], args templatable.Args, set func(T)) {
	if !v.IsSet() {
		return
	}
	if out, ok := evaluate(parent, KindSetShape, field, v, args); ok {
		set(out)
	}
}

// FlickerAction toggles flicker on one axis. When both fields evaluate,
// state and amplitude reach the driver in one call.
type FlickerAction struct {
	base
	kind      Kind
	state     templatable.Value[bool]
	amplitude templatable.Value[uint8]
}

// NewSetHFlicker creates a horizontal FlickerAction with no fields set.
func NewSetHFlicker(parent *roboeyes.Component) *FlickerAction {
	return &FlickerAction{base: base{parent}, kind: KindSetHFlicker}
}

// NewSetVFlicker creates a vertical FlickerAction with no fields set.
func NewSetVFlicker(parent *roboeyes.Component) *FlickerAction {
	return &FlickerAction{base: base{parent}, kind: KindSetVFlicker}
}

func (a *FlickerAction) Kind() Kind { return a.kind }

func (a *FlickerAction) SetState(v templatable.Value[bool])      { a.state = v }
func (a *FlickerAction) SetAmplitude(v templatable.Value[uint8]) { a.amplitude = v }

func (a *FlickerAction) Play(args templatable.Args) {
	setAmplitude, setState, configure := a.parent.SetHFlickerAmplitude, a.parent.SetHFlicker, a.parent.ConfigureHFlicker
	if a.kind == KindSetVFlicker {
		setAmplitude, setState, configure = a.parent.SetVFlickerAmplitude, a.parent.SetVFlicker, a.parent.ConfigureVFlicker
	}

	var (
		amp     uint8
		on      bool
		ampOK   bool
		stateOK bool
	)
	if a.amplitude.IsSet() {
		amp, ampOK = evaluate(a.parent, a.kind, "amplitude", a.amplitude, args)
	}
	if a.state.IsSet() {
		on, stateOK = evaluate(a.parent, a.kind, "state", a.state, args)
	}

	switch {
	case ampOK && stateOK:
		configure(on, amp)
	case ampOK:
		setAmplitude(amp)
	case stateOK:
		setState(on)
	}
}

// SetAutoblinkerAction toggles automatic blinking.
type SetAutoblinkerAction struct {
	base
	state     templatable.Value[bool]
	interval  templatable.Value[int]
	variation templatable.Value[int]
}

// NewSetAutoblinker creates a SetAutoblinkerAction with no fields set.
func NewSetAutoblinker(parent *roboeyes.Component) *SetAutoblinkerAction {
	return &SetAutoblinkerAction{base: base{parent}}
}

func (a *SetAutoblinkerAction) Kind() Kind { return KindSetAutoblinker }

func (a *SetAutoblinkerAction) SetState(v templatable.Value[bool])    { a.state = v }
func (a *SetAutoblinkerAction) SetInterval(v templatable.Value[int])  { a.interval = v }
func (a *SetAutoblinkerAction) SetVariation(v templatable.Value[int]) { a.variation = v }

// Play keeps the parent's current interval or variation for a field that
// was never set.
func (a *SetAutoblinkerAction) Play(args templatable.Args) {
	current := a.parent.State().Autoblinker
	on, interval, variation := current.On, current.Interval, current.Variation

	var ok bool
	if a.state.IsSet() {
		if on, ok = evaluate(a.parent, KindSetAutoblinker, "state", a.state, args); !ok {
			return
		}
	}
	if a.interval.IsSet() {
		if interval, ok = evaluate(a.parent, KindSetAutoblinker, "interval", a.interval, args); !ok {
			return
		}
	}
	if a.variation.IsSet() {
		if variation, ok = evaluate(a.parent, KindSetAutoblinker, "variation", a.variation, args); !ok {
			return
		}
	}
	a.parent.SetAutoblinker(on, interval, variation)
}

// SetDisplayColorsAction sets background and drawing colours.
type SetDisplayColorsAction struct {
	base
	background templatable.Value[uint8]
	main       templatable.Value[uint8]
}

// NewSetDisplayColors creates a SetDisplayColorsAction with no fields set.
func NewSetDisplayColors(parent *roboeyes.Component) *SetDisplayColorsAction {
	return &SetDisplayColorsAction{base: base{parent}}
}

func (a *SetDisplayColorsAction) Kind() Kind { return KindSetDisplayColors }

func (a *SetDisplayColorsAction) SetBackground(v templatable.Value[uint8]) { a.background = v }
func (a *SetDisplayColorsAction) SetMain(v templatable.Value[uint8])       { a.main = v }

func (a *SetDisplayColorsAction) Play(args templatable.Args) {
	current := a.parent.State()
	background, main := current.BackgroundColor, current.MainColor

	var ok bool
	if a.background.IsSet() {
		if background, ok = evaluate(a.parent, KindSetDisplayColors, "background", a.background, args); !ok {
			return
		}
	}
	if a.main.IsSet() {
		if main, ok = evaluate(a.parent, KindSetDisplayColors, "main", a.main, args); !ok {
			return
		}
	}
	a.parent.SetDisplayColors(background, main)
}
