package driver

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
)

type message struct {
	topic    string
	payload  map[string]any
	qos      byte
	retained bool
}

// mockPublisher records messages. err rejects a publish outright;
// deliveryErr is reported through onResult after the message is accepted.
type mockPublisher struct {
	mu          sync.Mutex
	messages    []message
	err         error
	deliveryErr error
}

func (p *mockPublisher) PublishAsync(topic string, payload []byte, qos byte, retained bool, onResult func(error)) error {
	p.mu.Lock()
	if p.err != nil {
		p.mu.Unlock()
		return p.err
	}
	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		p.mu.Unlock()
		return err
	}
	p.messages = append(p.messages, message{topic, parsed, qos, retained})
	deliveryErr := p.deliveryErr
	p.mu.Unlock()

	if onResult != nil {
		onResult(deliveryErr)
	}
	return nil
}

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
	last  []any
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Error(string, ...any) {}
func (l *recordingLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
	l.last = args
}
func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func TestCommandsTranslation(t *testing.T) {
	type sent struct {
		command string
		params  map[string]any
	}
	var got []sent
	d := NewCommands(func(command string, params map[string]any) {
		got = append(got, sent{command, params})
	})

	tests := []struct {
		name    string
		call    func(roboeyes.Driver)
		command string
		params  map[string]any
	}{
		{"begin", func(d roboeyes.Driver) { d.Begin(128, 64, 30) }, CommandBegin, map[string]any{"width": 128, "height": 64, "frame_rate": 30}},
		{"mood", func(d roboeyes.Driver) { d.SetMood(roboeyes.MoodHappy) }, CommandSetMood, map[string]any{"mood": "HAPPY"}},
		{"position", func(d roboeyes.Driver) { d.SetPosition(roboeyes.PositionDefault) }, CommandSetPosition, map[string]any{"position": string(roboeyes.PositionDefault)}},
		{"width", func(d roboeyes.Driver) { d.SetWidth(40, 40) }, CommandSetWidth, map[string]any{"left": 40, "right": 40}},
		{"radius", func(d roboeyes.Driver) { d.SetBorderRadius(8, 8) }, CommandSetBorderRadius, map[string]any{"left": 8, "right": 8}},
		{"space", func(d roboeyes.Driver) { d.SetSpaceBetween(10) }, CommandSetSpaceBetween, map[string]any{"space": 10}},
		{"sweat", func(d roboeyes.Driver) { d.SetSweat(true) }, CommandSetSweat, map[string]any{"on": true}},
		{"laugh", func(d roboeyes.Driver) { d.AnimLaugh() }, CommandAnimLaugh, nil},
		{"idle", func(d roboeyes.Driver) { d.SetIdleMode(true, 1, 3) }, CommandSetIdleMode, map[string]any{"on": true, "interval": 1, "variation": 3}},
		{"v flicker", func(d roboeyes.Driver) { d.SetVFlicker(true, 5) }, CommandSetVFlicker, map[string]any{"on": true, "amplitude": uint8(5)}},
		{"colors", func(d roboeyes.Driver) { d.SetDisplayColors(0, 1) }, CommandSetDisplayColors, map[string]any{"background": uint8(0), "main": uint8(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			tt.call(d)
			if len(got) != 1 {
				t.Fatalf("sink called %d times, want 1", len(got))
			}
			if got[0].command != tt.command {
				t.Errorf("command = %q, want %q", got[0].command, tt.command)
			}
			if len(got[0].params) != len(tt.params) {
				t.Fatalf("params = %v, want %v", got[0].params, tt.params)
			}
			for k, want := range tt.params {
				if got[0].params[k] != want {
					t.Errorf("params[%s] = %v (%T), want %v (%T)", k, got[0].params[k], got[0].params[k], want, want)
				}
			}
		})
	}

	got = nil
	d.Update()
	if len(got) != 0 {
		t.Errorf("Update() forwarded %v", got)
	}
}

func TestMQTTPublishesCommand(t *testing.T) {
	pub := &mockPublisher{}
	d := NewMQTT(pub, "desk", "eyes1", 1, nil)

	d.SetMood(roboeyes.MoodAngry)
	d.Open()

	if len(pub.messages) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.messages))
	}
	m := pub.messages[0]
	if m.topic != "roboeyes/command/desk/eyes1" || m.qos != 1 || m.retained {
		t.Errorf("message = topic:%q qos:%d retained:%v", m.topic, m.qos, m.retained)
	}
	if m.payload["component"] != "eyes1" || m.payload["command"] != CommandSetMood || m.payload["source"] != "roboeyes:desk" {
		t.Errorf("payload = %v", m.payload)
	}
	if id, _ := m.payload["id"].(string); len(id) != 36 {
		t.Errorf("id = %v, want a UUID", m.payload["id"])
	}
	params, _ := m.payload["parameters"].(map[string]any)
	if params["mood"] != "ANGRY" {
		t.Errorf("parameters = %v", m.payload["parameters"])
	}
	if _, ok := pub.messages[1].payload["parameters"]; ok {
		t.Error("open carries no parameters")
	}
	if pub.messages[0].payload["id"] == pub.messages[1].payload["id"] {
		t.Error("command IDs must be unique")
	}
}

func TestMQTTPublishFailureIsLogged(t *testing.T) {
	pub := &mockPublisher{err: errors.New("not connected")}
	logger := &recordingLogger{}
	d := NewMQTT(pub, "desk", "eyes1", 1, logger)

	d.Close()

	if len(logger.warns) != 1 {
		t.Errorf("warns = %v, want one", logger.warns)
	}
}

func TestMQTTLateDeliveryFailureIsLogged(t *testing.T) {
	pub := &mockPublisher{deliveryErr: errors.New("no acknowledgement")}
	logger := &recordingLogger{}
	d := NewMQTT(pub, "desk", "eyes1", 1, logger)

	d.Open()

	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.messages))
	}
	if len(logger.warns) != 1 || logger.warns[0] != "command not delivered" {
		t.Errorf("warns = %v, want one undelivered command", logger.warns)
	}
}

func TestStatePublisherDeliveryFailures(t *testing.T) {
	tests := []struct {
		name string
		pub  *mockPublisher
	}{
		{"rejected", &mockPublisher{err: errors.New("not connected")}},
		{"unacknowledged", &mockPublisher{deliveryErr: errors.New("no acknowledgement")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			s := NewStatePublisher(tt.pub, "desk", 1, logger)

			s.WriteComponentState("eyes1", map[string]any{"mood": "HAPPY"})

			if len(logger.warns) != 1 || logger.warns[0] != "state not published" {
				t.Errorf("warns = %v, want one", logger.warns)
			}
		})
	}
}

func TestStatePublisherSuccessIsQuiet(t *testing.T) {
	logger := &recordingLogger{}
	s := NewStatePublisher(&mockPublisher{}, "desk", 1, logger)

	s.WriteScriptRun("greet", "completed", 1, time.Millisecond)

	if len(logger.warns) != 0 {
		t.Errorf("warns = %v, want none", logger.warns)
	}
}

func TestLogDriver(t *testing.T) {
	logger := &recordingLogger{}
	d := NewLog(logger, "eyes1")

	d.SetAutoblinker(true, 4, 2)

	if len(logger.infos) != 1 {
		t.Fatalf("infos = %v, want one", logger.infos)
	}
	want := []any{"component", "eyes1", "command", CommandSetAutoblinker, "interval", 4, "on", true, "variation", 2}
	if len(logger.last) != len(want) {
		t.Fatalf("args = %v, want %v", logger.last, want)
	}
	for i := range want {
		if logger.last[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, logger.last[i], want[i])
		}
	}
}

func TestFactory(t *testing.T) {
	pub := &mockPublisher{}

	tests := []struct {
		name     string
		factory  Factory
		kind     string
		wantType string
		wantErr  error
	}{
		{"mqtt", Factory{Publisher: pub, Node: "desk"}, KindMQTT, "mqtt", nil},
		{"log", Factory{}, KindLog, "log", nil},
		{"fallback", Factory{Fallback: KindLog}, "", "log", nil},
		{"mqtt without publisher", Factory{}, KindMQTT, "", ErrNoPublisher},
		{"unknown", Factory{}, "serial", "", ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.factory.New("eyes1", tt.kind)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			switch d.(type) {
			case *MQTT:
				if tt.wantType != "mqtt" {
					t.Errorf("New() = %T", d)
				}
			case *Log:
				if tt.wantType != "log" {
					t.Errorf("New() = %T", d)
				}
			default:
				t.Errorf("New() = %T", d)
			}
		})
	}
}

func TestStatePublisher(t *testing.T) {
	pub := &mockPublisher{}
	s := NewStatePublisher(pub, "desk", 1, nil)

	s.WriteComponentState("eyes1", map[string]any{"mood": "HAPPY"})
	s.WriteScriptRun("greet", "completed", 2, 3*time.Millisecond)

	if len(pub.messages) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.messages))
	}
	state := pub.messages[0]
	if state.topic != "roboeyes/state/desk/eyes1" || !state.retained || state.payload["mood"] != "HAPPY" {
		t.Errorf("state message = %+v", state)
	}
	result := pub.messages[1]
	if result.topic != "roboeyes/script/desk/result" || result.retained {
		t.Errorf("result message = %+v", result)
	}
	if result.payload["script_id"] != "greet" || result.payload["duration_ms"] != float64(3) {
		t.Errorf("result payload = %v", result.payload)
	}
}
