package simplestruct

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps schema names to compiled schemas. It exists for collaborators
// that must recover a schema from its name alone, such as serialization
// codecs built on the reconstruction contract. A Registry is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Add registers a compiled schema under its name. Registering a second
// schema under the same name fails.
func (g *Registry) Add(s *Schema) error {
	if s == nil {
		return fmt.Errorf("register schema: nil schema")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if existing, ok := g.schemas[s.name]; ok && existing != s {
		return fmt.Errorf("register schema: name %q already registered", s.name)
	}
	g.schemas[s.name] = s
	return nil
}

// Lookup returns the schema registered under name.
func (g *Registry) Lookup(name string) (*Schema, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, ok := g.schemas[name]
	return s, ok
}

// Names returns the registered schema names, sorted.
func (g *Registry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.schemas))
	for name := range g.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
