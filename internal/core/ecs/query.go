package ecs

// Each2 visits entities that have both A and B, in the insertion order of sa.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(Handle, *A, *B)) {
	sa.Each(func(h Handle, a *A) {
		if b, ok := sb.Get(h); ok {
			fn(h, a, b)
		}
	})
}
