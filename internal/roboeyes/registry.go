package roboeyes

import (
	"fmt"
	"sync"
)

// Registry maps document identities to Components. Lookups always return
// the same pointer for an identity.
//
// All public methods are thread-safe.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*Component
	order      []string
	declared   bool
	logger     Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]*Component),
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Register adds c under its identity.
// Returns ErrComponentExists if the identity is taken.
func (r *Registry) Register(c *Component) error {
	if c == nil || c.ID() == "" {
		return ErrInvalidComponent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[c.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrComponentExists, c.ID())
	}
	r.components[c.ID()] = c
	r.order = append(r.order, c.ID())

	if !r.declared {
		r.declared = true
		for _, lib := range libraries {
			r.logger.Debug("library declared", "name", lib.Name, "repository", lib.Repository)
		}
	}

	r.logger.Info("component registered", "component", c.ID())
	return nil
}

// Get returns the component registered under id.
// Returns *UnknownComponentError if there is none.
func (r *Registry) Get(id string) (*Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.components[id]
	if !ok {
		return nil, &UnknownComponentError{ID: id}
	}
	return c, nil
}

// Require returns nil if id is registered.
func (r *Registry) Require(id string) error {
	_, err := r.Get(id)
	return err
}

// Components returns every registered component in registration order.
func (r *Registry) Components() []*Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Component, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.components[id])
	}
	return out
}

// Count returns the number of registered components.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

// Libraries returns the declared firmware libraries, or nil if nothing has
// been registered yet.
func (r *Registry) Libraries() []Library {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.declared {
		return nil
	}
	return Libraries()
}
