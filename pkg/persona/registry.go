package persona

import (
	"fmt"
	"sort"
)

// Registry is an immutable persona-id to persona mapping. It is
// constructed once at process start and passed into the components that
// need it; there are no add/remove operations.
type Registry struct {
	personas map[string]Persona
}

// NewRegistry builds a registry from the given personas, validating each
// one against the startup invariants. Duplicate IDs are an error.
func NewRegistry(personas ...Persona) (*Registry, error) {
	m := make(map[string]Persona, len(personas))
	for _, p := range personas {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := m[p.ID]; dup {
			return nil, fmt.Errorf("persona: duplicate persona id %q", p.ID)
		}
		m[p.ID] = p.clone()
	}
	return &Registry{personas: m}, nil
}

// Resolve returns the persona for id, or an UnknownPersonaError.
// The returned persona is a copy; callers cannot mutate the registry.
func (r *Registry) Resolve(id string) (Persona, error) {
	p, ok := r.personas[id]
	if !ok {
		return Persona{}, &UnknownPersonaError{ID: id}
	}
	return p.clone(), nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.personas[id]
	return ok
}

// IDs returns all registered persona ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.personas))
	for id := range r.personas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered personas.
func (r *Registry) Len() int {
	return len(r.personas)
}

// Merge overlays personas on top of base, replacing entries with the
// same id and appending new ones. Used to apply a personas file over the
// built-in set before registry construction.
func Merge(base, overlay []Persona) []Persona {
	out := make([]Persona, 0, len(base)+len(overlay))
	index := make(map[string]int, len(base))
	for _, p := range base {
		index[p.ID] = len(out)
		out = append(out, p)
	}
	for _, p := range overlay {
		if i, ok := index[p.ID]; ok {
			out[i] = p
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}
