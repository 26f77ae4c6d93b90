package automation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/actions"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// Engine defaults.
const (
	DefaultQueueSize  = 16
	DefaultRunTimeout = 10 * time.Second
)

// Components is what the engine needs from the component registry.
type Components interface {
	Components() []*roboeyes.Component
}

// MetricsWriter receives run and state telemetry. The InfluxDB client
// satisfies it.
type MetricsWriter interface {
	WriteScriptRun(scriptID, status string, actions int, duration time.Duration)
	WriteComponentState(componentID string, fields map[string]any)
}

// Options tunes an Engine. Zero fields take the package defaults.
type Options struct {
	QueueSize  int
	RunTimeout time.Duration
}

type job struct {
	ctx    context.Context
	script *Script
	exec   *ScriptExecution
	args   templatable.Args
	done   chan struct{}
}

// Engine owns the single cooperative loop that drives every component.
//
// Loop ticks Component.Loop at the highest declared frame rate and plays
// queued script runs between frames, one at a time. Components are only
// touched from the loop goroutine, so actions never race with frames.
//
// Run is safe for concurrent use.
type Engine struct {
	scripts    *Registry
	components Components
	repo       Repository
	metrics    MetricsWriter
	logger     Logger

	jobs       chan job
	runTimeout time.Duration

	stopped  chan struct{}
	stopOnce sync.Once
}

// NewEngine creates an engine.
//
// Parameters:
//   - scripts: compiled scripts available to Run
//   - components: components set up and ticked by Loop
//   - repo: execution log (nil disables logging)
//   - metrics: telemetry sink (may be nil)
//   - logger: Logger instance (may be nil)
//   - opts: queue size and run timeout
func NewEngine(scripts *Registry, components Components, repo Repository, metrics MetricsWriter, logger Logger, opts Options) *Engine {
	if logger == nil {
		logger = noopLogger{}
	}
	if repo == nil {
		repo = nopRepository{}
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = DefaultRunTimeout
	}
	return &Engine{
		scripts:    scripts,
		components: components,
		repo:       repo,
		metrics:    metrics,
		logger:     logger,
		jobs:       make(chan job, opts.QueueSize),
		runTimeout: opts.RunTimeout,
		stopped:    make(chan struct{}),
	}
}

// FrameInterval returns the loop period for the fastest component.
func FrameInterval(components []*roboeyes.Component) time.Duration {
	rate := 0
	for _, c := range components {
		if fr := c.Geometry().FrameRate; fr > rate {
			rate = fr
		}
	}
	if rate <= 0 {
		rate = roboeyes.DefaultGeometry.FrameRate
	}
	return time.Second / time.Duration(rate)
}

// Loop sets up every component, then ticks frames and plays queued runs
// until ctx is cancelled. Runs still queued when Loop returns are
// completed with ErrEngineStopped by their callers.
func (e *Engine) Loop(ctx context.Context) error {
	defer e.stopOnce.Do(func() { close(e.stopped) })

	components := e.components.Components()
	for _, c := range components {
		if e.metrics != nil {
			c.SetObserver(func(id string, st roboeyes.State) {
				e.metrics.WriteComponentState(id, st.Fields())
			})
		}
		c.Setup()
	}

	interval := FrameInterval(components)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("engine loop started", "components", len(components), "frame_interval", interval)

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine loop stopped")
			return ctx.Err()
		case <-ticker.C:
			for _, c := range components {
				c.Loop()
			}
		case j := <-e.jobs:
			e.execute(j)
			close(j.done)
		}
	}
}

// Run queues a run of scriptID and waits for it to finish. The run timeout
// covers queueing and playing; when it or ctx expires Run returns at once
// and the loop skips whatever actions remain.
//
// Parameters:
//   - ctx: cancelling it stops the run between actions
//   - scriptID: the script to run
//   - triggerType: how the run was triggered (manual, mqtt)
//   - triggerSource: where the trigger originated (cli, a topic name, ...)
//   - raw: arguments, coerced to the script's declared parameter types
//
// Returns:
//   - *ScriptExecution: the finished execution record
//   - error: ErrScriptNotFound, ErrInvalidArgs, ErrEngineStopped, ErrRunTimeout
//     or ctx's cancellation error
func (e *Engine) Run(ctx context.Context, scriptID, triggerType, triggerSource string, raw map[string]any) (*ScriptExecution, error) {
	script, err := e.scripts.Get(scriptID)
	if err != nil {
		return nil, err
	}
	args, err := CoerceArgs(script.Parameters, raw)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", scriptID, err)
	}

	exec := &ScriptExecution{
		ID:           GenerateID(),
		ScriptID:     scriptID,
		TriggerType:  triggerType,
		Args:         args,
		ActionsTotal: len(script.Actions),
	}
	if triggerSource != "" {
		exec.TriggerSource = &triggerSource
	}

	ctx, cancel := context.WithTimeout(ctx, e.runTimeout)
	defer cancel()

	j := job{ctx: ctx, script: script, exec: exec, args: args, done: make(chan struct{})}

	select {
	case e.jobs <- j:
	case <-e.stopped:
		return nil, ErrEngineStopped
	case <-ctx.Done():
		return nil, abandoned(scriptID, "queueing", ctx.Err())
	}

	select {
	case <-j.done:
		return exec, nil
	case <-ctx.Done():
		select {
		case <-j.done:
			return exec, nil
		default:
		}
		// The loop still owns exec and records the outcome.
		return nil, abandoned(scriptID, "running", ctx.Err())
	case <-e.stopped:
		// The loop may have finished this job just before exiting.
		select {
		case <-j.done:
			return exec, nil
		default:
			return nil, ErrEngineStopped
		}
	}
}

// execute plays a job's actions in order. Only the loop goroutine calls it.
func (e *Engine) execute(j job) {
	exec := j.exec
	exec.StartedAt = time.Now().UTC()
	exec.Status = StatusRunning

	// The run context may already be done; the record must still be written.
	store := context.WithoutCancel(j.ctx)
	if err := e.repo.CreateExecution(store, exec); err != nil {
		e.logger.Error("failed to create execution record", "error", err)
	}

	e.logger.Info("script run started",
		"script_id", exec.ScriptID,
		"execution_id", exec.ID,
		"actions", exec.ActionsTotal,
	)

	for i, a := range j.script.Actions {
		if err := j.ctx.Err(); err != nil {
			msg := err.Error()
			exec.Status = abandonedStatus(err)
			exec.ErrorMessage = &msg
			exec.ActionsSkipped = len(j.script.Actions) - i
			break
		}
		if err := play(a, j.args); err != nil {
			msg := err.Error()
			exec.Status = StatusFailed
			exec.ErrorMessage = &msg
			exec.ActionsSkipped = len(j.script.Actions) - i - 1
			e.logger.Error("action failed",
				"script_id", exec.ScriptID,
				"index", i,
				"kind", a.Kind(),
				"error", err,
			)
			break
		}
		exec.ActionsPlayed++
	}
	if exec.Status == StatusRunning {
		exec.Status = StatusCompleted
	}

	completedAt := time.Now().UTC()
	exec.CompletedAt = &completedAt
	elapsed := completedAt.Sub(exec.StartedAt)
	duration := int(elapsed.Milliseconds())
	exec.DurationMS = &duration

	if err := e.repo.UpdateExecution(store, exec); err != nil {
		e.logger.Error("failed to update execution record", "error", err)
	}
	if e.metrics != nil {
		e.metrics.WriteScriptRun(exec.ScriptID, string(exec.Status), exec.ActionsPlayed, elapsed)
	}

	e.logger.Info("script run complete",
		"script_id", exec.ScriptID,
		"execution_id", exec.ID,
		"status", exec.Status,
		"played", exec.ActionsPlayed,
		"skipped", exec.ActionsSkipped,
		"duration_ms", duration,
	)
}

// abandoned is the error Run returns when ctx ends before the run does.
func abandoned(scriptID, stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s: %w", ErrRunTimeout, stage, scriptID, err)
	}
	return fmt.Errorf("script %s: %s: %w", scriptID, stage, err)
}

func abandonedStatus(err error) ExecutionStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimedOut
	}
	return StatusCancelled
}

func play(a actions.Action, args templatable.Args) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrActionPanic, a.Kind(), r)
		}
	}()
	a.Play(args)
	return nil
}
