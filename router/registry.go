package router

import (
	"errors"
	"sync"
)

// ErrNilFactory is returned when a Registry is built without a factory.
var ErrNilFactory = errors.New("facade factory is required")

// Factory builds a facade for a registry name. The name lets factories
// vary configuration per tenant or session.
type Factory func(name string) (*Facade, error)

// Registry holds named facade instances, created lazily on first
// access. There is no package-level instance; callers construct a
// Registry and pass it where needed.
type Registry struct {
	mu      sync.Mutex
	factory Factory
	facades map[string]*Facade
}

// NewRegistry creates a registry backed by the given factory.
func NewRegistry(factory Factory) (*Registry, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	return &Registry{
		factory: factory,
		facades: make(map[string]*Facade),
	}, nil
}

// Get returns the facade for name, creating it on first access. A
// factory failure is returned to the caller and nothing is stored.
func (r *Registry) Get(name string) (*Facade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.facades[name]; ok {
		return f, nil
	}

	f, err := r.factory(name)
	if err != nil {
		return nil, err
	}
	r.facades[name] = f
	return f, nil
}

// Reset removes the named facade; the next Get rebuilds it.
func (r *Registry) Reset(name string) {
	r.mu.Lock()
	delete(r.facades, name)
	r.mu.Unlock()
}

// ResetAll removes every facade.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	r.facades = make(map[string]*Facade)
	r.mu.Unlock()
}

// Names returns the currently instantiated facade names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.facades))
	for name := range r.facades {
		names = append(names, name)
	}
	return names
}
