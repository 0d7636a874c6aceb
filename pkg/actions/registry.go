package actions

import (
	"context"
	"sort"
	"sync"

	"deskpilot/pkg/command"
)

// Handler is the contract every action collaborator implements. The pipeline
// guarantees only that params is a non-nil map; each handler validates its
// own argument shapes at its boundary.
//
// Handlers report failure through the returned Result or error; both are
// normalized by the step executor. Panics are contained there as well, so a
// broken handler cannot take the session down.
type Handler interface {
	// Name is the unique action identifier used in Commands and StepSpecs.
	Name() string
	// Description is a one-line summary injected into the NLU system prompt,
	// including the parameters the action expects.
	Description() string
	// Execute performs the action. Implementations should honor ctx
	// cancellation on anything that blocks.
	Execute(ctx context.Context, params map[string]any) (*command.Result, error)
}

// Registry acts as the central inventory of all actions available to the
// interpreter. It is populated once at startup and read-only during command
// execution; the lock exists for the registration phase and for front ends
// that start before registration finishes.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler under its action name. Registering the same name
// twice replaces the earlier handler; last registration wins.
func (r *Registry) Register(handlers ...Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range handlers {
		r.handlers[h.Name()] = h
	}
}

// Lookup retrieves a handler by action name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// All returns every registered handler sorted by action name, primarily for
// prompt generation and listings.
func (r *Registry) All() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handlers := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	sort.Slice(handlers, func(i, j int) bool {
		return handlers[i].Name() < handlers[j].Name()
	})
	return handlers
}

// Len reports how many actions are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
