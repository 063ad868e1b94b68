package provider

import (
	"fmt"
	"sort"
	"sync"

	"stt-frontend/internal/app/api"
)

// Registry maps a provider value, as sent in the `provider` form field, to
// the transcriber serving it.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]api.Transcriber
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]api.Transcriber),
	}
}

// Register adds a transcriber under name.
func (r *Registry) Register(name string, transcriber api.Transcriber) error {
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if transcriber == nil {
		return fmt.Errorf("provider cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider '%s' already registered", name)
	}
	r.providers[name] = transcriber
	return nil
}

// Get returns the transcriber registered under name.
func (r *Registry) Get(name string) (api.Transcriber, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.providers[name]
	return t, ok
}

// Names returns the registered provider values in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
