package actions

import (
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/schema"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

const (
	typeBool   = templatable.TypeBool
	typeInt    = templatable.TypeInt
	typeByte   = templatable.TypeByte
	typeString = templatable.TypeString
)

func (c *Catalogue) registerBuiltins() {
	builtins := map[Kind]Definition{
		KindSetMood: {
			Schema:   schema.MustNew(string(KindSetMood), schema.Required("mood", typeString)),
			Strategy: StrategyConstructor,
			Build: func(p *roboeyes.Component, f Fields) Action {
				mood, _ := Field[string](f, "mood")
				return NewSetMood(p, mood)
			},
		},
		KindSetPosition: {
			Schema:   schema.MustNew(string(KindSetPosition), schema.Required("position", typeString)),
			Strategy: StrategyConstructor,
			Build: func(p *roboeyes.Component, f Fields) Action {
				position, _ := Field[string](f, "position")
				return NewSetPosition(p, position)
			},
		},
		KindSetCuriosity: {
			Schema:   schema.MustNew(string(KindSetCuriosity), schema.Required("state", typeBool)),
			Strategy: StrategyConstructor,
			Build: func(p *roboeyes.Component, f Fields) Action {
				state, _ := Field[bool](f, "state")
				return NewSetCuriosity(p, state)
			},
		},
		KindSetSweat: {
			Schema:   schema.MustNew(string(KindSetSweat), schema.Required("state", typeBool)),
			Strategy: StrategyConstructor,
			Build: func(p *roboeyes.Component, f Fields) Action {
				state, _ := Field[bool](f, "state")
				return NewSetSweat(p, state)
			},
		},
		KindSetIdleMode: {
			Schema: schema.MustNew(string(KindSetIdleMode),
				schema.Required("state", typeBool),
				schema.WithDefault("interval", typeInt, roboeyes.DefaultIdleInterval),
				schema.WithDefault("variation", typeInt, roboeyes.DefaultIdleVariation),
			),
			Strategy: StrategyConstructor,
			Build: func(p *roboeyes.Component, f Fields) Action {
				state, _ := Field[bool](f, "state")
				interval, _ := Field[int](f, "interval")
				variation, _ := Field[int](f, "variation")
				return NewSetIdleMode(p, state, interval, variation)
			},
		},

		KindSetShape: {
			Schema: schema.MustNew(string(KindSetShape),
				schema.Optional("width", typeInt),
				schema.Optional("height", typeInt),
				schema.Optional("radius", typeInt),
				schema.Optional("space", typeInt),
				schema.Optional("cyclops", typeBool),
			),
			Strategy: StrategySetters,
			Build: func(p *roboeyes.Component, f Fields) Action {
				a := NewSetShape(p)
				if v, ok := Field[int](f, "width"); ok {
					a.SetWidth(v)
				}
				if v, ok := Field[int](f, "height"); ok {
					a.SetHeight(v)
				}
				if v, ok := Field[int](f, "radius"); ok {
					a.SetRadius(v)
				}
				if v, ok := Field[int](f, "space"); ok {
					a.SetSpace(v)
				}
				if v, ok := Field[bool](f, "cyclops"); ok {
					a.SetCyclops(v)
				}
				return a
			},
		},
		KindSetHFlicker: {
			Schema:   flickerSchema(KindSetHFlicker),
			Strategy: StrategySetters,
			Build: func(p *roboeyes.Component, f Fields) Action {
				return buildFlicker(NewSetHFlicker(p), f)
			},
		},
		KindSetVFlicker: {
			Schema:   flickerSchema(KindSetVFlicker),
			Strategy: StrategySetters,
			Build: func(p *roboeyes.Component, f Fields) Action {
				return buildFlicker(NewSetVFlicker(p), f)
			},
		},
		KindSetAutoblinker: {
			Schema: schema.MustNew(string(KindSetAutoblinker),
				schema.Required("state", typeBool),
				schema.WithDefault("interval", typeInt, roboeyes.DefaultAutoblinkInterval),
				schema.WithDefault("variation", typeInt, roboeyes.DefaultAutoblinkVariation),
			),
			Strategy: StrategySetters,
			Build: func(p *roboeyes.Component, f Fields) Action {
				a := NewSetAutoblinker(p)
				if v, ok := Field[bool](f, "state"); ok {
					a.SetState(v)
				}
				if v, ok := Field[int](f, "interval"); ok {
					a.SetInterval(v)
				}
				if v, ok := Field[int](f, "variation"); ok {
					a.SetVariation(v)
				}
				return a
			},
		},
		KindSetDisplayColors: {
			Schema: schema.MustNew(string(KindSetDisplayColors),
				schema.WithDefault("background", typeByte, roboeyes.DefaultBackgroundColor),
				schema.WithDefault("main", typeByte, roboeyes.DefaultMainColor),
			),
			Strategy: StrategySetters,
			Build: func(p *roboeyes.Component, f Fields) Action {
				a := NewSetDisplayColors(p)
				if v, ok := Field[uint8](f, "background"); ok {
					a.SetBackground(v)
				}
				if v, ok := Field[uint8](f, "main"); ok {
					a.SetMain(v)
				}
				return a
			},
		},

		KindOpen:     noFields(KindOpen, func(p *roboeyes.Component) Action { return NewOpen(p) }),
		KindClose:    noFields(KindClose, func(p *roboeyes.Component) Action { return NewClose(p) }),
		KindLaugh:    noFields(KindLaugh, func(p *roboeyes.Component) Action { return NewLaugh(p) }),
		KindConfused: noFields(KindConfused, func(p *roboeyes.Component) Action { return NewConfused(p) }),
	}

	for kind, def := range builtins {
		if err := c.Register(kind, def); err != nil {
			panic(err)
		}
	}
}

func flickerSchema(kind Kind) schema.Schema {
	return schema.MustNew(string(kind),
		schema.Required("state", typeBool),
		schema.Optional("amplitude", typeByte),
	)
}

func buildFlicker(a *FlickerAction, f Fields) Action {
	if v, ok := Field[bool](f, "state"); ok {
		a.SetState(v)
	}
	if v, ok := Field[uint8](f, "amplitude"); ok {
		a.SetAmplitude(v)
	}
	return a
}

func noFields(kind Kind, build func(*roboeyes.Component) Action) Definition {
	return Definition{
		Schema:   schema.MustNew(string(kind)),
		Strategy: StrategyNoFields,
		Build:    func(p *roboeyes.Component, _ Fields) Action { return build(p) },
	}
}
