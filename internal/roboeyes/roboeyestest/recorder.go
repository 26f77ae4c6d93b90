// Package roboeyestest provides a recording roboeyes.Driver for tests.
package roboeyestest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
)

// Call is one recorded driver call.
type Call struct {
	Method string
	Args   []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder implements roboeyes.Driver by recording every call.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

var _ roboeyes.Driver = (*Recorder)(nil)

// Calls returns every call recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Methods returns the method names of the recorded calls, in order.
func (r *Recorder) Methods() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

// Last returns the most recent call to method and whether there was one.
func (r *Recorder) Last(method string) (Call, bool) {
	calls := r.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i], true
		}
	}
	return Call{}, false
}

// Reset discards the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(method string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Method: method, Args: args})
}

func (r *Recorder) Begin(width, height, frameRate int) { r.record("Begin", width, height, frameRate) }
func (r *Recorder) Update()                            { r.record("Update") }
func (r *Recorder) SetMood(m roboeyes.Mood)            { r.record("SetMood", m) }
func (r *Recorder) SetPosition(p roboeyes.Position)    { r.record("SetPosition", p) }
func (r *Recorder) SetWidth(left, right int)           { r.record("SetWidth", left, right) }
func (r *Recorder) SetHeight(left, right int)          { r.record("SetHeight", left, right) }
func (r *Recorder) SetBorderRadius(left, right int)    { r.record("SetBorderRadius", left, right) }
func (r *Recorder) SetSpaceBetween(space int)          { r.record("SetSpaceBetween", space) }
func (r *Recorder) SetCyclops(on bool)                 { r.record("SetCyclops", on) }
func (r *Recorder) SetCuriosity(on bool)               { r.record("SetCuriosity", on) }
func (r *Recorder) SetSweat(on bool)                   { r.record("SetSweat", on) }
func (r *Recorder) Open()                              { r.record("Open") }
func (r *Recorder) Close()                             { r.record("Close") }
func (r *Recorder) AnimLaugh()                         { r.record("AnimLaugh") }
func (r *Recorder) AnimConfused()                      { r.record("AnimConfused") }

func (r *Recorder) SetIdleMode(on bool, interval, variation int) {
	r.record("SetIdleMode", on, interval, variation)
}

func (r *Recorder) SetHFlicker(on bool, amplitude uint8) { r.record("SetHFlicker", on, amplitude) }
func (r *Recorder) SetVFlicker(on bool, amplitude uint8) { r.record("SetVFlicker", on, amplitude) }

func (r *Recorder) SetAutoblinker(on bool, interval, variation int) {
	r.record("SetAutoblinker", on, interval, variation)
}

func (r *Recorder) SetDisplayColors(background, main uint8) {
	r.record("SetDisplayColors", background, main)
}
