package driver

import "github.com/bench2012/Esphome-Chatbot/internal/roboeyes"

// Command names.
const (
	CommandBegin            = "begin"
	CommandSetMood          = "set_mood"
	CommandSetPosition      = "set_position"
	CommandSetWidth         = "set_width"
	CommandSetHeight        = "set_height"
	CommandSetBorderRadius  = "set_border_radius"
	CommandSetSpaceBetween  = "set_space_between"
	CommandSetCyclops       = "set_cyclops"
	CommandSetCuriosity     = "set_curiosity"
	CommandSetSweat         = "set_sweat"
	CommandOpen             = "open"
	CommandClose            = "close"
	CommandAnimLaugh        = "anim_laugh"
	CommandAnimConfused     = "anim_confused"
	CommandSetIdleMode      = "set_idle_mode"
	CommandSetHFlicker      = "set_h_flicker"
	CommandSetVFlicker      = "set_v_flicker"
	CommandSetAutoblinker   = "set_autoblinker"
	CommandSetDisplayColors = "set_display_colors"
)

// Logger is the logging interface drivers use.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Sink receives one translated driver call.
type Sink func(command string, params map[string]any)

// Commands implements roboeyes.Driver by passing every call to a Sink.
type Commands struct {
	sink Sink
}

var _ roboeyes.Driver = Commands{}

// NewCommands returns a Driver that forwards to sink.
func NewCommands(sink Sink) Commands {
	return Commands{sink: sink}
}

func (c Commands) Begin(width, height, frameRate int) {
	c.sink(CommandBegin, map[string]any{"width": width, "height": height, "frame_rate": frameRate})
}

// Update is not forwarded.
func (c Commands) Update() {}

func (c Commands) SetMood(mood roboeyes.Mood) {
	c.sink(CommandSetMood, map[string]any{"mood": string(mood)})
}

func (c Commands) SetPosition(position roboeyes.Position) {
	c.sink(CommandSetPosition, map[string]any{"position": string(position)})
}

func (c Commands) SetWidth(left, right int)  { c.pair(CommandSetWidth, left, right) }
func (c Commands) SetHeight(left, right int) { c.pair(CommandSetHeight, left, right) }
func (c Commands) SetBorderRadius(left, right int) {
	c.pair(CommandSetBorderRadius, left, right)
}

func (c Commands) SetSpaceBetween(space int) {
	c.sink(CommandSetSpaceBetween, map[string]any{"space": space})
}

func (c Commands) SetCyclops(on bool)   { c.toggle(CommandSetCyclops, on) }
func (c Commands) SetCuriosity(on bool) { c.toggle(CommandSetCuriosity, on) }
func (c Commands) SetSweat(on bool)     { c.toggle(CommandSetSweat, on) }

func (c Commands) Open()         { c.sink(CommandOpen, nil) }
func (c Commands) Close()        { c.sink(CommandClose, nil) }
func (c Commands) AnimLaugh()    { c.sink(CommandAnimLaugh, nil) }
func (c Commands) AnimConfused() { c.sink(CommandAnimConfused, nil) }

func (c Commands) SetIdleMode(on bool, interval, variation int) {
	c.cycle(CommandSetIdleMode, on, interval, variation)
}

func (c Commands) SetHFlicker(on bool, amplitude uint8) {
	c.sink(CommandSetHFlicker, map[string]any{"on": on, "amplitude": amplitude})
}

func (c Commands) SetVFlicker(on bool, amplitude uint8) {
	c.sink(CommandSetVFlicker, map[string]any{"on": on, "amplitude": amplitude})
}

func (c Commands) SetAutoblinker(on bool, interval, variation int) {
	c.cycle(CommandSetAutoblinker, on, interval, variation)
}

func (c Commands) SetDisplayColors(background, main uint8) {
	c.sink(CommandSetDisplayColors, map[string]any{"background": background, "main": main})
}

func (c Commands) pair(command string, left, right int) {
	c.sink(command, map[string]any{"left": left, "right": right})
}

func (c Commands) toggle(command string, on bool) {
	c.sink(command, map[string]any{"on": on})
}

func (c Commands) cycle(command string, on bool, interval, variation int) {
	c.sink(command, map[string]any{"on": on, "interval": interval, "variation": variation})
}
