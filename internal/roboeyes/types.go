package roboeyes

import "strings"

// Mood is the expression the eyes display.
type Mood string

// Moods understood by the display library.
const (
	MoodDefault Mood = "DEFAULT"
	MoodHappy   Mood = "HAPPY"
	MoodAngry   Mood = "ANGRY"
	MoodTired   Mood = "TIRED"
)

// ParseMood maps a configuration string to a Mood. Unrecognised strings map
// to MoodDefault and ok is false.
func ParseMood(s string) (m Mood, ok bool) {
	switch Mood(strings.ToUpper(strings.TrimSpace(s))) {
	case MoodHappy:
		return MoodHappy, true
	case MoodAngry:
		return MoodAngry, true
	case MoodTired:
		return MoodTired, true
	case MoodDefault:
		return MoodDefault, true
	}
	return MoodDefault, false
}

// Position is where the eyes look, as a compass direction from centre.
type Position string

// Positions understood by the display library.
const (
	PositionDefault   Position = "DEFAULT"
	PositionNorth     Position = "N"
	PositionNorthEast Position = "NE"
	PositionEast      Position = "E"
	PositionSouthEast Position = "SE"
	PositionSouth     Position = "S"
	PositionSouthWest Position = "SW"
	PositionWest      Position = "W"
	PositionNorthWest Position = "NW"
)

var positions = map[Position]bool{
	PositionDefault: true, PositionNorth: true, PositionNorthEast: true,
	PositionEast: true, PositionSouthEast: true, PositionSouth: true,
	PositionSouthWest: true, PositionWest: true, PositionNorthWest: true,
}

// ParsePosition maps a configuration string to a Position. Unrecognised
// strings map to PositionDefault (centre) and ok is false.
func ParsePosition(s string) (p Position, ok bool) {
	p = Position(strings.ToUpper(strings.TrimSpace(s)))
	if positions[p] {
		return p, true
	}
	return PositionDefault, false
}

// Geometry is the display size and frame rate passed to the driver on setup.
type Geometry struct {
	Width     int
	Height    int
	FrameRate int
}

// DefaultGeometry is a 128x64 display at 30 frames per second.
var DefaultGeometry = Geometry{Width: 128, Height: 64, FrameRate: 30}

// Defaults applied on setup and by actions that omit the fields.
const (
	DefaultAutoblinkInterval  = 4
	DefaultAutoblinkVariation = 2
	DefaultIdleInterval       = 1
	DefaultIdleVariation      = 3
	DefaultFlickerAmplitude   = 2
	DefaultBackgroundColor    = 0
	DefaultMainColor          = 1
)

// Flicker is the state of one flicker axis.
type Flicker struct {
	On        bool
	Amplitude uint8
}

// Cycle is an on/off setting with an interval and random variation, in seconds.
type Cycle struct {
	On        bool
	Interval  int
	Variation int
}

// Shape is the eye geometry set by SetShape. Zero fields were never set.
type Shape struct {
	Width        int
	Height       int
	BorderRadius int
	SpaceBetween int
	Cyclops      bool
}

// State is the controller-side view of the display. It records what was
// last asked of the driver, not what the panel renders.
type State struct {
	Mood            Mood
	Position        Position
	Shape           Shape
	Curious         bool
	Sweat           bool
	Open            bool
	HFlicker        Flicker
	VFlicker        Flicker
	Idle            Cycle
	Autoblinker     Cycle
	BackgroundColor uint8
	MainColor       uint8
}

// Fields flattens the state for telemetry.
func (s State) Fields() map[string]any {
	return map[string]any{
		"mood":                 string(s.Mood),
		"position":             string(s.Position),
		"curious":              s.Curious,
		"sweat":                s.Sweat,
		"open":                 s.Open,
		"cyclops":              s.Shape.Cyclops,
		"h_flicker":            s.HFlicker.On,
		"h_flicker_amplitude":  int(s.HFlicker.Amplitude),
		"v_flicker":            s.VFlicker.On,
		"v_flicker_amplitude":  int(s.VFlicker.Amplitude),
		"idle":                 s.Idle.On,
		"autoblinker":          s.Autoblinker.On,
		"autoblinker_interval": s.Autoblinker.Interval,
	}
}

// Library is a firmware library the display build depends on.
type Library struct {
	Name       string
	Repository string
}

var libraries = []Library{
	{Name: "FluxGarage_RoboEyes", Repository: "https://github.com/FluxGarage/RoboEyes.git"},
	{Name: "Adafruit GFX Library"},
	{Name: "Adafruit SH110X"},
	{Name: "Adafruit BusIO"},
	{Name: "Wire"},
}

// Libraries returns the firmware libraries a RoboEyes display depends on.
func Libraries() []Library {
	out := make([]Library, len(libraries))
	copy(out, libraries)
	return out
}
