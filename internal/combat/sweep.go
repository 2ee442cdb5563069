package combat

import (
	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/vmath"
)

// Sweep removes bullets that left the field sideways or ran too far ahead
// and anything scrolled more than despawn_behind below the camera. Returns
// the number of entities queued for removal.
func (r *Resolver) Sweep() int {
	st := r.st
	f := st.Cfg.Field
	cam := st.Camera.Y
	n := 0
	st.Transforms.Each(func(h ecs.Handle, t *component.Transform) {
		if st.Permanents.Has(h) || st.Removing(h) {
			return
		}
		gone := t.Pos.Y < cam-f.DespawnBehind
		if st.Bullets.Has(h) {
			gone = gone || t.Pos.X < -f.BulletMargin || t.Pos.X > f.Width+f.BulletMargin ||
				t.Pos.Y > cam+f.BulletAhead
		}
		if gone {
			st.Despawn(h)
			n++
		}
	})
	return n
}

// ExpireWrecks counts down wreck timers and removes the wrecks that ran out.
func (r *Resolver) ExpireWrecks(dt float64) int {
	st := r.st
	n := 0
	st.Wrecks.Each(func(h ecs.Handle, w *component.Wreck) {
		if w.TTL <= 0 || st.Removing(h) {
			return
		}
		w.TTL -= dt
		if w.TTL <= 0 {
			st.Despawn(h)
			n++
		}
	})
	return n
}

func overlap(a *component.Transform, as vmath.Size, b *component.Transform, bs vmath.Size) bool {
	return vmath.Overlap(a.Pos, as, b.Pos, bs)
}
