package roboeyes

// Logger defines the logging interface used by Component and Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Component is one RoboEyes display. Actions hold a pointer to the
// Component they configure and call its setters when they play.
//
// Every setter records the request in State before forwarding it to the
// Driver, so State is consistent after each call returns.
type Component struct {
	id       string
	driver   Driver
	geometry Geometry
	state    State
	logger   Logger
	observe  func(id string, st State)
}

// NewComponent creates a Component driving d. Zero geometry fields take
// their DefaultGeometry values.
func NewComponent(id string, d Driver, g Geometry) *Component {
	if g.Width <= 0 {
		g.Width = DefaultGeometry.Width
	}
	if g.Height <= 0 {
		g.Height = DefaultGeometry.Height
	}
	if g.FrameRate <= 0 {
		g.FrameRate = DefaultGeometry.FrameRate
	}
	return &Component{
		id:       id,
		driver:   d,
		geometry: g,
		logger:   noopLogger{},
		state: State{
			Mood:            MoodDefault,
			Position:        PositionDefault,
			Open:            true,
			HFlicker:        Flicker{Amplitude: DefaultFlickerAmplitude},
			VFlicker:        Flicker{Amplitude: DefaultFlickerAmplitude},
			Idle:            Cycle{Interval: DefaultIdleInterval, Variation: DefaultIdleVariation},
			Autoblinker:     Cycle{Interval: DefaultAutoblinkInterval, Variation: DefaultAutoblinkVariation},
			BackgroundColor: DefaultBackgroundColor,
			MainColor:       DefaultMainColor,
		},
	}
}

// SetLogger sets the logger for the component.
func (c *Component) SetLogger(logger Logger) {
	c.logger = logger
}

// SetObserver registers fn to receive the state after every change.
func (c *Component) SetObserver(fn func(id string, st State)) {
	c.observe = fn
}

// ID returns the identity the component was declared with.
func (c *Component) ID() string { return c.id }

// Geometry returns the display geometry.
func (c *Component) Geometry() Geometry { return c.geometry }

// State returns a copy of the current state.
func (c *Component) State() State { return c.state }

// Setup starts the display, enables the autoblinker with its defaults and
// resets the mood.
func (c *Component) Setup() {
	c.driver.Begin(c.geometry.Width, c.geometry.Height, c.geometry.FrameRate)
	c.SetAutoblinker(true, DefaultAutoblinkInterval, DefaultAutoblinkVariation)
	c.SetMood(string(MoodDefault))
	c.logger.Info("robo eyes ready",
		"component", c.id,
		"width", c.geometry.Width,
		"height", c.geometry.Height,
		"frame_rate", c.geometry.FrameRate,
	)
}

// Loop advances the display by one frame.
func (c *Component) Loop() {
	c.driver.Update()
}

// SetMood sets the mood. Unrecognised moods fall back to DEFAULT.
func (c *Component) SetMood(mood string) {
	m, ok := ParseMood(mood)
	if !ok {
		c.logger.Debug("unknown mood, using default", "component", c.id, "mood", mood)
	}
	c.state.Mood = m
	c.driver.SetMood(m)
	c.changed()
}

// SetPosition sets where the eyes look. Unrecognised positions fall back to centre.
func (c *Component) SetPosition(position string) {
	p, ok := ParsePosition(position)
	if !ok {
		c.logger.Debug("unknown position, using default", "component", c.id, "position", position)
	}
	c.state.Position = p
	c.driver.SetPosition(p)
	c.changed()
}

// SetWidth sets the width of both eyes.
func (c *Component) SetWidth(width int) {
	c.state.Shape.Width = width
	c.driver.SetWidth(width, width)
	c.changed()
}

// SetHeight sets the height of both eyes.
func (c *Component) SetHeight(height int) {
	c.state.Shape.Height = height
	c.driver.SetHeight(height, height)
	c.changed()
}

// SetBorderRadius sets the corner radius of both eyes.
func (c *Component) SetBorderRadius(radius int) {
	c.state.Shape.BorderRadius = radius
	c.driver.SetBorderRadius(radius, radius)
	c.changed()
}

// SetSpaceBetween sets the gap between the eyes.
func (c *Component) SetSpaceBetween(space int) {
	c.state.Shape.SpaceBetween = space
	c.driver.SetSpaceBetween(space)
	c.changed()
}

// SetCyclops switches between one and two eyes.
func (c *Component) SetCyclops(on bool) {
	c.state.Shape.Cyclops = on
	c.driver.SetCyclops(on)
	c.changed()
}

// SetCuriosity toggles the outer-eye enlargement when looking sideways.
func (c *Component) SetCuriosity(on bool) {
	c.state.Curious = on
	c.driver.SetCuriosity(on)
	c.changed()
}

// SetSweat toggles the sweat animation.
func (c *Component) SetSweat(on bool) {
	c.state.Sweat = on
	c.driver.SetSweat(on)
	c.changed()
}

// Open opens the eyes.
func (c *Component) Open() {
	c.state.Open = true
	c.driver.Open()
	c.changed()
}

// Close closes the eyes.
func (c *Component) Close() {
	c.state.Open = false
	c.driver.Close()
	c.changed()
}

// Laugh plays the laugh animation once.
func (c *Component) Laugh() {
	c.driver.AnimLaugh()
}

// Confused plays the confused animation once.
func (c *Component) Confused() {
	c.driver.AnimConfused()
}

// SetIdleMode toggles random repositioning.
func (c *Component) SetIdleMode(on bool, interval, variation int) {
	c.state.Idle = Cycle{On: on, Interval: interval, Variation: variation}
	c.driver.SetIdleMode(on, interval, variation)
	c.changed()
}

// SetHFlicker toggles horizontal flicker at the stored amplitude.
func (c *Component) SetHFlicker(on bool) {
	c.state.HFlicker.On = on
	c.driver.SetHFlicker(on, c.state.HFlicker.Amplitude)
	c.changed()
}

// SetHFlickerAmplitude stores the horizontal flicker amplitude. If flicker
// is already on, the new amplitude is applied immediately, so the order in
// which state and amplitude are set does not matter.
func (c *Component) SetHFlickerAmplitude(amplitude uint8) {
	c.state.HFlicker.Amplitude = amplitude
	if c.state.HFlicker.On {
		c.driver.SetHFlicker(true, amplitude)
	}
	c.changed()
}

// SetVFlicker toggles vertical flicker at the stored amplitude.
func (c *Component) SetVFlicker(on bool) {
	c.state.VFlicker.On = on
	c.driver.SetVFlicker(on, c.state.VFlicker.Amplitude)
	c.changed()
}

// SetVFlickerAmplitude stores the vertical flicker amplitude, applying it
// immediately when flicker is on.
func (c *Component) SetVFlickerAmplitude(amplitude uint8) {
	c.state.VFlicker.Amplitude = amplitude
	if c.state.VFlicker.On {
		c.driver.SetVFlicker(true, amplitude)
	}
	c.changed()
}

// ConfigureHFlicker sets horizontal flicker state and amplitude together
// with a single driver call.
func (c *Component) ConfigureHFlicker(on bool, amplitude uint8) {
	c.state.HFlicker = Flicker{On: on, Amplitude: amplitude}
	c.driver.SetHFlicker(on, amplitude)
	c.changed()
}

// ConfigureVFlicker sets vertical flicker state and amplitude together
// with a single driver call.
func (c *Component) ConfigureVFlicker(on bool, amplitude uint8) {
	c.state.VFlicker = Flicker{On: on, Amplitude: amplitude}
	c.driver.SetVFlicker(on, amplitude)
	c.changed()
}

// SetAutoblinker toggles automatic blinking.
func (c *Component) SetAutoblinker(on bool, interval, variation int) {
	c.state.Autoblinker = Cycle{On: on, Interval: interval, Variation: variation}
	c.driver.SetAutoblinker(on, interval, variation)
	c.changed()
}

// SetDisplayColors sets the background and drawing colours.
func (c *Component) SetDisplayColors(background, main uint8) {
	c.state.BackgroundColor = background
	c.state.MainColor = main
	c.driver.SetDisplayColors(background, main)
	c.changed()
}

// ReportError logs a failed deferred evaluation. The action skips the
// setter that needed the value.
func (c *Component) ReportError(action, field string, err error) {
	c.logger.Warn("action field evaluation failed",
		"component", c.id,
		"action", action,
		"field", field,
		"error", err,
	)
}

func (c *Component) changed() {
	if c.observe != nil {
		c.observe(c.id, c.state)
	}
}
