package ecs

type namedStore struct {
	name  string
	store Removable
}

// Registry knows every component store of a world by name. Destroying an
// entity clears it from all of them.
type Registry struct {
	stores []namedStore
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]namedStore, 0, 16),
	}
}

// Register adds a component store under name.
func (r *Registry) Register(name string, store Removable) {
	r.stores = append(r.stores, namedStore{name: name, store: store})
}

// RemoveAll clears h from every registered store.
func (r *Registry) RemoveAll(h Handle) {
	for _, s := range r.stores {
		s.store.Remove(h)
	}
}

// Holding lists the stores that still have a component for h, in
// registration order. A destroyed entity holds nothing.
func (r *Registry) Holding(h Handle) []string {
	var names []string
	for _, s := range r.stores {
		if s.store.Has(h) {
			names = append(names, s.name)
		}
	}
	return names
}
