package vmath

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Overlap reports whether two axis-aligned boxes centred at a and b intersect.
// Rotation is never applied: hitboxes stay axis-aligned even when the sprite
// is drawn rotated. Touching edges do not count as overlap.
func Overlap(a Vec2, as Size, b Vec2, bs Size) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < (as.W+bs.W)/2 && dy < (as.H+bs.H)/2
}
