package rpc

import (
	"sort"

	"github.com/gramofon/gramofon/pkg/remote"
)

// Handler executes one method against its parsed params.
type Handler func(params remote.Params) (any, error)

// Registry maps method names to handlers. It is populated once during
// startup wiring and read-only afterwards, so lookups need no locking.
type Registry struct {
	methods map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]Handler)}
}

// Register binds a handler to a method name. Registering a name twice
// replaces the earlier handler.
func (r *Registry) Register(name string, handler Handler) {
	r.methods[name] = handler
}

// Lookup resolves a method name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	handler, ok := r.methods[name]
	return handler, ok
}

// Methods returns the registered method names, sorted.
func (r *Registry) Methods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
