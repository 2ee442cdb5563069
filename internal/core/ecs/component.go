package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(h Handle)
	Has(h Handle) bool
}

// Store is a typed component store keyed by Handle. Iteration follows
// insertion order so that scans (collision passes in particular) visit
// entities in spawn order on every run.
type Store[T any] struct {
	data  map[Handle]*T
	order []Handle
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data:  make(map[Handle]*T, 256),
		order: make([]Handle, 0, 256),
	}
}

func (s *Store[T]) Set(h Handle, c *T) {
	if _, ok := s.data[h]; !ok {
		s.order = append(s.order, h)
	}
	s.data[h] = c
}

// Get resolves h. A stale handle simply misses.
func (s *Store[T]) Get(h Handle) (*T, bool) {
	c, ok := s.data[h]
	return c, ok
}

func (s *Store[T]) Has(h Handle) bool {
	_, ok := s.data[h]
	return ok
}

func (s *Store[T]) Remove(h Handle) {
	if _, ok := s.data[h]; !ok {
		return
	}
	delete(s.data, h)
	for i, id := range s.order {
		if id == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store[T]) Clear() {
	clear(s.data)
	s.order = s.order[:0]
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Each visits entries in insertion order. Entries added by fn are not
// visited during the same call.
func (s *Store[T]) Each(fn func(Handle, *T)) {
	n := len(s.order)
	for i := 0; i < n && i < len(s.order); i++ {
		h := s.order[i]
		if c, ok := s.data[h]; ok {
			fn(h, c)
		}
	}
}

// Handles returns a copy of the handles in insertion order.
func (s *Store[T]) Handles() []Handle {
	out := make([]Handle, len(s.order))
	copy(out, s.order)
	return out
}
