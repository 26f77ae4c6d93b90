package automation

import (
	"fmt"
	"sort"
	"sync"
)

// Logger defines the logging interface used by the Registry and Engine.
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

// Registry holds the compiled scripts of a node document.
//
// All public methods are thread-safe.
type Registry struct {
	mu      sync.RWMutex
	scripts map[string]*Script
	logger  Logger
}

// NewRegistry creates an empty script registry.
func NewRegistry() *Registry {
	return &Registry{
		scripts: make(map[string]*Script),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Add registers s.
// Returns ErrInvalidScript or ErrScriptExists.
func (r *Registry) Add(s *Script) error {
	if s == nil || s.ID == "" {
		return ErrInvalidScript
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scripts[s.ID]; exists {
		return fmt.Errorf("%w: %s", ErrScriptExists, s.ID)
	}
	r.scripts[s.ID] = s

	r.logger.Debug("script added", "script_id", s.ID, "actions", len(s.Actions))
	return nil
}

// Get returns the script registered under id.
func (r *Registry) Get(id string) (*Script, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scripts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, id)
	}
	return s, nil
}

// List returns every script sorted by ID.
func (r *Registry) List() []*Script {
	r.mu.RLock()
	out := make([]*Script, 0, len(r.scripts))
	for _, s := range r.scripts {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of scripts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scripts)
}
