package system

import (
	"time"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/motion"
	"github.com/broadside/sim/internal/world"
)

// AimSystem turns every cannon toward its target, capped by the cannon's
// turn rate. The player cannon tracks the aim point, enemy cannons the
// player. Phase 1 (Motion), after MotionSystem.
type AimSystem struct {
	world *world.State
	input *InputBuffer
}

func NewAimSystem(ws *world.State, input *InputBuffer) *AimSystem {
	return &AimSystem{world: ws, input: input}
}

func (s *AimSystem) Phase() coresys.Phase { return coresys.PhaseMotion }

func (s *AimSystem) Update(dt time.Duration) {
	ws := s.world
	in := s.input.Get()
	player, _, _ := ws.WorldTransform(ws.MustPlayer())

	ws.Cannons.Each(func(h ecs.Handle, c *component.Cannon) {
		tr, ok := ws.Transforms.Get(h)
		if !ok || !ownerAlive(ws, c.Owner) {
			return
		}
		target := player
		if c.Mode == component.AimAtPoint {
			if !in.HasAim {
				return
			}
			target = in.Aim
		}
		bearing := motion.Bearing(tr.Pos, target)
		tr.Rotation = motion.TurnToward(tr.Rotation, bearing, c.TurnRate*dt.Seconds())
	})
}

// ownerAlive is false once the ship carrying a cannon has been wrecked.
func ownerAlive(ws *world.State, owner ecs.Handle) bool {
	if ws.Removing(owner) {
		return false
	}
	if col, ok := ws.Collidables.Get(owner); ok && !col.Alive {
		return false
	}
	return true
}
