package system

import (
	"time"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/core/event"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/motion"
	"github.com/broadside/sim/internal/vmath"
	"github.com/broadside/sim/internal/world"
)

// CannonSystem ticks cannon cooldowns and fires. The player cannon fires on
// the fire signal once its cooldown has run out; enemy cannons fire each
// time their cooldown wraps, if the player is in range and in the sights.
// Phase 3 (Spawn).
type CannonSystem struct {
	world *world.State
	input *InputBuffer
}

func NewCannonSystem(ws *world.State, input *InputBuffer) *CannonSystem {
	return &CannonSystem{world: ws, input: input}
}

func (s *CannonSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *CannonSystem) Update(dt time.Duration) {
	ws := s.world
	fire := s.input.Get().Fire
	player, _, _ := ws.WorldTransform(ws.MustPlayer())

	ws.Cannons.Each(func(h ecs.Handle, c *component.Cannon) {
		tr, ok := ws.Transforms.Get(h)
		if !ok || !ownerAlive(ws, c.Owner) {
			return
		}
		switch c.Mode {
		case component.AimAtPoint:
			c.Cooldown.Tick(dt)
			if !fire || !c.Cooldown.Ready() {
				return
			}
			c.Cooldown.Reset()
		default:
			if !c.Cooldown.Tick(dt) {
				return
			}
			if c.Range > 0 && tr.Pos.DistanceTo(player) > c.Range {
				return
			}
			if !motion.Aimed(tr.Rotation, motion.Bearing(tr.Pos, player), c.Tolerance) {
				return
			}
		}
		s.fire(h, c, tr)
	})
}

func (s *CannonSystem) fire(h ecs.Handle, c *component.Cannon, tr *component.Transform) {
	ws := s.world
	ws.SpawnBullet(c.Owner, tr.Pos, vmath.FromAngle(tr.Rotation), c.BulletSpeed, c.Damage, c.BulletSize)
	event.Emit(ws.Bus, event.Audio{Cue: event.CueBulletFired, Source: h, X: tr.Pos.X, Y: tr.Pos.Y})
}
