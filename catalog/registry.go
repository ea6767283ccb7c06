package catalog

import (
	"fmt"
	"maps"
	"slices"
)

// Registry holds the Collections of one session. Keys are assigned in
// increasing order starting at 1 and are never reused.
type Registry struct {
	collections map[int]*Collection
	next        int
}

func NewRegistry() *Registry {
	return &Registry{
		collections: map[int]*Collection{},
		next:        1,
	}
}

func (r *Registry) register(c *Collection) {
	c.key = r.next
	r.next++
	r.collections[c.key] = c
}

// Collection returns the Collection registered under key.
func (r *Registry) Collection(key int) (*Collection, error) {
	c, ok := r.collections[key]
	if !ok {
		return nil, fmt.Errorf("%w: no collection with key %d", ErrNotFound, key)
	}
	return c, nil
}

// Collections returns the registered Collections ordered by key.
func (r *Registry) Collections() []*Collection {
	keys := slices.Sorted(maps.Keys(r.collections))
	res := make([]*Collection, len(keys))
	for i, k := range keys {
		res[i] = r.collections[k]
	}
	return res
}

func (r *Registry) Len() int { return len(r.collections) }
