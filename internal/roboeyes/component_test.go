package roboeyes_test

import (
	"reflect"
	"testing"

	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes/roboeyestest"
)

func TestComponentSetup(t *testing.T) {
	rec := &roboeyestest.Recorder{}
	c := roboeyes.NewComponent("eyes1", rec, roboeyes.Geometry{})
	c.Setup()

	want := []string{"Begin", "SetAutoblinker", "SetMood"}
	if got := rec.Methods(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}

	begin, _ := rec.Last("Begin")
	if !reflect.DeepEqual(begin.Args, []any{128, 64, 30}) {
		t.Errorf("Begin args = %v, want [128 64 30]", begin.Args)
	}
	blink, _ := rec.Last("SetAutoblinker")
	if !reflect.DeepEqual(blink.Args, []any{true, 4, 2}) {
		t.Errorf("SetAutoblinker args = %v, want [true 4 2]", blink.Args)
	}
	if st := c.State(); st.Mood != roboeyes.MoodDefault || !st.Autoblinker.On {
		t.Errorf("state after Setup = %+v", st)
	}
}

func TestComponentMoodFallback(t *testing.T) {
	tests := []struct {
		in   string
		want roboeyes.Mood
	}{
		{in: "HAPPY", want: roboeyes.MoodHappy},
		{in: "angry", want: roboeyes.MoodAngry},
		{in: "TIRED", want: roboeyes.MoodTired},
		{in: "DEFAULT", want: roboeyes.MoodDefault},
		{in: "SLEEPY", want: roboeyes.MoodDefault},
		{in: "", want: roboeyes.MoodDefault},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rec := &roboeyestest.Recorder{}
			c := roboeyes.NewComponent("eyes1", rec, roboeyes.Geometry{})
			c.SetMood(tt.in)

			call, ok := rec.Last("SetMood")
			if !ok || call.Args[0] != tt.want {
				t.Errorf("SetMood(%q) drove %v, want %s", tt.in, call, tt.want)
			}
			if c.State().Mood != tt.want {
				t.Errorf("State().Mood = %s, want %s", c.State().Mood, tt.want)
			}
		})
	}
}

func TestComponentPositionFallback(t *testing.T) {
	rec := &roboeyestest.Recorder{}
	c := roboeyes.NewComponent("eyes1", rec, roboeyes.Geometry{})

	c.SetPosition("ne")
	if c.State().Position != roboeyes.PositionNorthEast {
		t.Errorf("Position = %s, want NE", c.State().Position)
	}
	c.SetPosition("UP")
	if c.State().Position != roboeyes.PositionDefault {
		t.Errorf("Position = %s, want DEFAULT", c.State().Position)
	}
}

func TestComponentFlickerAmplitudeCommutes(t *testing.T) {
	amplitudeFirst := &roboeyestest.Recorder{}
	a := roboeyes.NewComponent("a", amplitudeFirst, roboeyes.Geometry{})
	a.SetHFlickerAmplitude(9)
	a.SetHFlicker(true)

	stateFirst := &roboeyestest.Recorder{}
	b := roboeyes.NewComponent("b", stateFirst, roboeyes.Geometry{})
	b.SetHFlicker(true)
	b.SetHFlickerAmplitude(9)

	if a.State().HFlicker != b.State().HFlicker {
		t.Errorf("state differs: %+v vs %+v", a.State().HFlicker, b.State().HFlicker)
	}
	for _, rec := range []*roboeyestest.Recorder{amplitudeFirst, stateFirst} {
		last, _ := rec.Last("SetHFlicker")
		if !reflect.DeepEqual(last.Args, []any{true, uint8(9)}) {
			t.Errorf("last SetHFlicker = %v, want (true, 9)", last)
		}
	}
}

func TestComponentAmplitudeWhileOff(t *testing.T) {
	rec := &roboeyestest.Recorder{}
	c := roboeyes.NewComponent("eyes1", rec, roboeyes.Geometry{})
	c.SetVFlickerAmplitude(40)

	if _, ok := rec.Last("SetVFlicker"); ok {
		t.Error("amplitude change while off should not drive the display")
	}
	c.SetVFlicker(true)
	last, _ := rec.Last("SetVFlicker")
	if !reflect.DeepEqual(last.Args, []any{true, uint8(40)}) {
		t.Errorf("SetVFlicker = %v, want (true, 40)", last)
	}
}

func TestComponentConfigureFlickerSingleCall(t *testing.T) {
	rec := &roboeyestest.Recorder{}
	c := roboeyes.NewComponent("eyes1", rec, roboeyes.Geometry{})
	c.SetHFlicker(true)
	rec.Reset()

	c.ConfigureHFlicker(false, 25)

	want := []string{"SetHFlicker"}
	if got := rec.Methods(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	last, _ := rec.Last("SetHFlicker")
	if !reflect.DeepEqual(last.Args, []any{false, uint8(25)}) {
		t.Errorf("SetHFlicker = %v, want (false, 25)", last)
	}
	if got := c.State().HFlicker; got != (roboeyes.Flicker{On: false, Amplitude: 25}) {
		t.Errorf("HFlicker = %+v", got)
	}
}

func TestComponentObserver(t *testing.T) {
	c := roboeyes.NewComponent("eyes1", &roboeyestest.Recorder{}, roboeyes.Geometry{})

	var seen []roboeyes.State
	c.SetObserver(func(id string, st roboeyes.State) {
		if id != "eyes1" {
			t.Errorf("observer id = %s", id)
		}
		seen = append(seen, st)
	})

	c.SetSweat(true)
	c.Close()

	if len(seen) != 2 {
		t.Fatalf("observer called %d times, want 2", len(seen))
	}
	if !seen[0].Sweat || seen[1].Open {
		t.Errorf("observed states = %+v", seen)
	}
}
