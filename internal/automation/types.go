package automation

import (
	"time"

	"github.com/bench2012/Esphome-Chatbot/internal/actions"
	"github.com/bench2012/Esphome-Chatbot/internal/templatable"
)

// Script is a named list of compiled actions played in order when the
// script runs. Parameters declare the arguments a run must supply; deferred
// fields in Actions were compiled against them.
type Script struct {
	ID         string
	Parameters map[string]templatable.Type
	Actions    []actions.Action
}

// ScriptExecution tracks a single run of a script.
type ScriptExecution struct {
	ID            string          `json:"id"`
	ScriptID      string          `json:"script_id"`
	TriggerType   string          `json:"trigger_type"`             // manual, mqtt, api
	TriggerSource *string         `json:"trigger_source,omitempty"` // cli, topic name, remote address
	Args          map[string]any  `json:"args,omitempty"`
	Status        ExecutionStatus `json:"status"`

	ActionsTotal   int `json:"actions_total"`
	ActionsPlayed  int `json:"actions_played"`
	ActionsSkipped int `json:"actions_skipped"`

	ErrorMessage *string `json:"error_message,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DurationMS  *int       `json:"duration_ms,omitempty"`
}

// ExecutionStatus represents the state of a script run.
type ExecutionStatus string

const (
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed"    // an action panicked; the rest were skipped
	StatusCancelled ExecutionStatus = "cancelled" // caller cancelled before the last action
	StatusTimedOut  ExecutionStatus = "timed_out" // run timeout expired before the last action
)

// Trigger types.
const (
	TriggerManual = "manual"
	TriggerMQTT   = "mqtt"
	TriggerAPI    = "api"
)
