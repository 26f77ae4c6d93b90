package automation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/actions"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes/roboeyestest"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// ─── Test Doubles ───────────────────────────────────────────────────────────

type scriptRun struct {
	scriptID string
	status   string
	actions  int
}

type mockMetrics struct {
	mu     sync.Mutex
	runs   []scriptRun
	states []string
}

func (m *mockMetrics) WriteScriptRun(scriptID, status string, actions int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, scriptRun{scriptID, status, actions})
}

func (m *mockMetrics) WriteComponentState(componentID string, _ map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, componentID)
}

func (m *mockMetrics) snapshot() ([]scriptRun, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]scriptRun(nil), m.runs...), append([]string(nil), m.states...)
}

type mockRepo struct {
	mu       sync.Mutex
	created  []string
	updated  []ExecutionStatus
	finished []ScriptExecution
}

func (r *mockRepo) CreateExecution(_ context.Context, e *ScriptExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, e.ID)
	return nil
}

func (r *mockRepo) UpdateExecution(_ context.Context, e *ScriptExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, e.Status)
	r.finished = append(r.finished, *e)
	return nil
}

// waitFinished returns the n-th finished record, waiting for the loop to
// write it.
func (r *mockRepo) waitFinished(t *testing.T, n int) ScriptExecution {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		if len(r.finished) > n {
			e := r.finished[n]
			r.mu.Unlock()
			return e
		}
		r.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("execution %d never finished", n)
	return ScriptExecution{}
}

func (r *mockRepo) GetExecution(context.Context, string) (*ScriptExecution, error) {
	return nil, ErrExecutionNotFound
}

func (r *mockRepo) ListExecutions(context.Context, string, int) ([]ScriptExecution, error) {
	return nil, nil
}

// funcAction runs an arbitrary function when played.
type funcAction struct {
	parent *roboeyes.Component
	fn     func()
}

func (a funcAction) Kind() actions.Kind          { return "test.func" }
func (a funcAction) Parent() *roboeyes.Component { return a.parent }
func (a funcAction) Play(templatable.Args)       { a.fn() }

// ─── Helpers ────────────────────────────────────────────────────────────────

type fixture struct {
	engine     *Engine
	scripts    *Registry
	components *roboeyes.Registry
	eyes       *roboeyes.Component
	rec        *roboeyestest.Recorder
	metrics    *mockMetrics
	repo       *mockRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, Options{RunTimeout: 2 * time.Second})
}

func newFixtureWith(t *testing.T, opts Options) *fixture {
	t.Helper()

	rec := &roboeyestest.Recorder{}
	eyes := roboeyes.NewComponent("eyes1", rec, roboeyes.Geometry{FrameRate: 100})
	components := roboeyes.NewRegistry()
	if err := components.Register(eyes); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	f := &fixture{
		scripts:    NewRegistry(),
		components: components,
		eyes:       eyes,
		rec:        rec,
		metrics:    &mockMetrics{},
		repo:       &mockRepo{},
	}
	f.engine = NewEngine(f.scripts, components, f.repo, f.metrics, nil, opts)
	return f
}

func (f *fixture) addScript(t *testing.T, s *Script) {
	t.Helper()
	if err := f.scripts.Add(s); err != nil {
		t.Fatalf("Add(%s) error = %v", s.ID, err)
	}
}

// start runs the engine loop until the test ends.
func (f *fixture) start(t *testing.T) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.engine.Loop(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestEngineRunPlaysActionsInOrder(t *testing.T) {
	f := newFixture(t)
	f.addScript(t, &Script{
		ID: "greet",
		Actions: []actions.Action{
			actions.NewSetMood(f.eyes, templatable.Constant("HAPPY")),
			actions.NewLaugh(f.eyes),
			actions.NewClose(f.eyes),
		},
	})
	f.start(t)

	exec, err := f.engine.Run(context.Background(), "greet", TriggerManual, "cli", nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if exec.Status != StatusCompleted || exec.ActionsPlayed != 3 || exec.ActionsSkipped != 0 {
		t.Errorf("exec = status:%s played:%d skipped:%d", exec.Status, exec.ActionsPlayed, exec.ActionsSkipped)
	}
	if exec.CompletedAt == nil || exec.DurationMS == nil {
		t.Error("completion not recorded")
	}

	var played []string
	for _, m := range f.rec.Methods() {
		switch m {
		case "SetMood", "AnimLaugh", "Close":
			played = append(played, m)
		}
	}
	// Setup resets the mood before the script runs.
	want := []string{"SetMood", "SetMood", "AnimLaugh", "Close"}
	if strings.Join(played, ",") != strings.Join(want, ",") {
		t.Errorf("driver calls = %v, want %v", played, want)
	}
	if last, _ := f.rec.Last("SetMood"); last.Args[0] != roboeyes.MoodHappy {
		t.Errorf("last SetMood = %v, want HAPPY", last.Args[0])
	}
	if st := f.eyes.State(); st.Open {
		t.Error("eyes still open after close action")
	}

	if len(f.repo.created) != 1 || len(f.repo.updated) != 1 || f.repo.updated[0] != StatusCompleted {
		t.Errorf("repo created=%v updated=%v", f.repo.created, f.repo.updated)
	}
	runs, states := f.metrics.snapshot()
	if len(runs) != 1 || runs[0] != (scriptRun{"greet", "completed", 3}) {
		t.Errorf("metrics runs = %v", runs)
	}
	if len(states) == 0 || states[0] != "eyes1" {
		t.Errorf("metrics states = %v, want eyes1 updates", states)
	}
}

func TestEngineRunEvaluatesArgsPerRun(t *testing.T) {
	f := newFixture(t)
	params := map[string]templatable.Type{"mood": templatable.TypeString}
	mood, err := templatable.Compile("mood", templatable.Expression{Source: "mood"}, templatable.String, templatable.NewEnv(params))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	f.addScript(t, &Script{
		ID:         "feel",
		Parameters: params,
		Actions:    []actions.Action{actions.NewSetMood(f.eyes, mood)},
	})
	f.start(t)

	for _, want := range []roboeyes.Mood{roboeyes.MoodAngry, roboeyes.MoodTired} {
		if _, err := f.engine.Run(context.Background(), "feel", TriggerMQTT, "", map[string]any{"mood": string(want)}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got := f.eyes.State().Mood; got != want {
			t.Errorf("mood = %s, want %s", got, want)
		}
	}
}

func TestEngineRunErrors(t *testing.T) {
	f := newFixture(t)
	f.addScript(t, &Script{
		ID:         "level",
		Parameters: map[string]templatable.Type{"level": templatable.TypeInt},
	})

	if _, err := f.engine.Run(context.Background(), "missing", TriggerManual, "", nil); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("Run(missing) error = %v, want ErrScriptNotFound", err)
	}
	if _, err := f.engine.Run(context.Background(), "level", TriggerManual, "", map[string]any{"level": "high"}); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("Run(bad args) error = %v, want ErrInvalidArgs", err)
	}
	if len(f.repo.created) != 0 {
		t.Error("rejected runs must not be recorded")
	}
}

func TestEngineActionPanicFailsRun(t *testing.T) {
	f := newFixture(t)
	f.addScript(t, &Script{
		ID: "broken",
		Actions: []actions.Action{
			actions.NewOpen(f.eyes),
			funcAction{parent: f.eyes, fn: func() { panic("driver exploded") }},
			actions.NewLaugh(f.eyes),
		},
	})
	f.start(t)

	exec, err := f.engine.Run(context.Background(), "broken", TriggerManual, "", nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if exec.Status != StatusFailed || exec.ActionsPlayed != 1 || exec.ActionsSkipped != 1 {
		t.Errorf("exec = status:%s played:%d skipped:%d", exec.Status, exec.ActionsPlayed, exec.ActionsSkipped)
	}
	if exec.ErrorMessage == nil || !strings.Contains(*exec.ErrorMessage, "driver exploded") {
		t.Errorf("ErrorMessage = %v", exec.ErrorMessage)
	}
	if _, ok := f.rec.Last("AnimLaugh"); ok {
		t.Error("action after the panic was played")
	}

	// The loop survives a panicking action.
	if _, err := f.engine.Run(context.Background(), "broken", TriggerManual, "", nil); err != nil {
		t.Errorf("second Run() error = %v", err)
	}
}

func TestEngineCancelledRunSkipsRemainingActions(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	release := make(chan struct{})

	f.addScript(t, &Script{
		ID: "interrupted",
		Actions: []actions.Action{
			funcAction{parent: f.eyes, fn: func() { cancel(); <-release }},
			actions.NewLaugh(f.eyes),
			actions.NewConfused(f.eyes),
		},
	})
	f.start(t)

	exec, err := f.engine.Run(ctx, "interrupted", TriggerManual, "", nil)
	close(release)
	if !errors.Is(err, context.Canceled) || errors.Is(err, ErrRunTimeout) {
		t.Fatalf("Run() = %v, %v; want context.Canceled", exec, err)
	}

	final := f.repo.waitFinished(t, 0)
	if final.Status != StatusCancelled || final.ActionsPlayed != 1 || final.ActionsSkipped != 2 {
		t.Errorf("record = status:%s played:%d skipped:%d", final.Status, final.ActionsPlayed, final.ActionsSkipped)
	}
	if _, ok := f.rec.Last("AnimLaugh"); ok {
		t.Error("action after cancellation was played")
	}
}

func TestEngineRunTimesOutWhileQueued(t *testing.T) {
	f := newFixtureWith(t, Options{QueueSize: 1, RunTimeout: 100 * time.Millisecond})
	f.addScript(t, &Script{ID: "greet", Actions: []actions.Action{actions.NewLaugh(f.eyes)}})

	// The loop is not running, so the job sits in the queue.
	start := time.Now()
	exec, err := f.engine.Run(context.Background(), "greet", TriggerManual, "", nil)
	if !errors.Is(err, ErrRunTimeout) {
		t.Fatalf("Run() = %v, %v; want ErrRunTimeout", exec, err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Run() returned after %v, want about the 100ms run timeout", elapsed)
	}

	// Once the loop starts it records the expired run without playing it.
	f.start(t)
	final := f.repo.waitFinished(t, 0)
	if final.Status != StatusTimedOut || final.ActionsPlayed != 0 || final.ActionsSkipped != 1 {
		t.Errorf("record = status:%s played:%d skipped:%d", final.Status, final.ActionsPlayed, final.ActionsSkipped)
	}
	if final.ErrorMessage == nil {
		t.Error("expired run has no error message")
	}
	if _, ok := f.rec.Last("AnimLaugh"); ok {
		t.Error("expired run was played")
	}
}

func TestEngineRunTimesOutWhilePlaying(t *testing.T) {
	f := newFixtureWith(t, Options{RunTimeout: 100 * time.Millisecond})
	release := make(chan struct{})
	f.addScript(t, &Script{
		ID: "slow",
		Actions: []actions.Action{
			funcAction{parent: f.eyes, fn: func() { <-release }},
			actions.NewLaugh(f.eyes),
		},
	})
	f.start(t)

	start := time.Now()
	exec, err := f.engine.Run(context.Background(), "slow", TriggerAPI, "", nil)
	elapsed := time.Since(start)
	close(release)
	if !errors.Is(err, ErrRunTimeout) || exec != nil {
		t.Fatalf("Run() = %v, %v; want nil, ErrRunTimeout", exec, err)
	}
	if elapsed > time.Second {
		t.Errorf("Run() returned after %v, want about the 100ms run timeout", elapsed)
	}

	final := f.repo.waitFinished(t, 0)
	if final.Status != StatusTimedOut || final.ActionsPlayed != 1 || final.ActionsSkipped != 1 {
		t.Errorf("record = status:%s played:%d skipped:%d", final.Status, final.ActionsPlayed, final.ActionsSkipped)
	}
	runs, _ := f.metrics.snapshot()
	if len(runs) != 1 || runs[0].status != string(StatusTimedOut) {
		t.Errorf("metrics runs = %v, want one timed_out run", runs)
	}
}

func TestEngineStopped(t *testing.T) {
	f := newFixture(t)
	f.addScript(t, &Script{ID: "greet"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.engine.Loop(ctx) }()
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Loop() error = %v, want context.Canceled", err)
	}

	if _, err := f.engine.Run(context.Background(), "greet", TriggerManual, "", nil); !errors.Is(err, ErrEngineStopped) {
		t.Errorf("Run() after stop error = %v, want ErrEngineStopped", err)
	}
}

func TestEngineLoopSetsUpAndTicks(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := f.rec.Last("Update"); ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	methods := f.rec.Methods()
	if len(methods) == 0 || methods[0] != "Begin" {
		t.Fatalf("first driver call = %v, want Begin", methods)
	}
	if _, ok := f.rec.Last("Update"); !ok {
		t.Error("no frame was ticked")
	}
}

func TestFrameInterval(t *testing.T) {
	slow := roboeyes.NewComponent("a", &roboeyestest.Recorder{}, roboeyes.Geometry{FrameRate: 20})
	fast := roboeyes.NewComponent("b", &roboeyestest.Recorder{}, roboeyes.Geometry{FrameRate: 50})

	tests := []struct {
		name       string
		components []*roboeyes.Component
		want       time.Duration
	}{
		{"none uses default", nil, time.Second / 30},
		{"single", []*roboeyes.Component{slow}, 50 * time.Millisecond},
		{"fastest wins", []*roboeyes.Component{slow, fast}, 20 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrameInterval(tt.components); got != tt.want {
				t.Errorf("FrameInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}
