package provider

import (
	"sort"
	"sync"
)

// Constructor builds an adapter from the tagged configuration.
type Constructor func(cfg *Config) (Provider, error)

// Registry maps provider names to constructors. It is an instance handed to
// callers, never package state; callers that want the built-in adapters use
// llmops.NewDefaultRegistry.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor under name, silently overwriting any previous
// registration for the same name.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
}

// Get returns the constructor registered under name.
func (r *Registry) Get(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[name]
	return ctor, ok
}

// IsRegistered reports whether name has a constructor.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registrations. Intended for administrative and test
// resets.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors = make(map[string]Constructor)
}
