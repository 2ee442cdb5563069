package system

import (
	"time"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/motion"
	"github.com/broadside/sim/internal/vmath"
	"github.com/broadside/sim/internal/world"
)

// MotionSystem points pirate ships at the player, integrates every moving
// entity, moves the camera with the player and re-seats mounted entities on
// their parents. Phase 1 (Motion).
type MotionSystem struct {
	world *world.State
}

func NewMotionSystem(ws *world.State) *MotionSystem {
	return &MotionSystem{world: ws}
}

func (s *MotionSystem) Phase() coresys.Phase { return coresys.PhaseMotion }

func (s *MotionSystem) Update(dt time.Duration) {
	ws := s.world
	sec := dt.Seconds()
	target, _, _ := ws.WorldTransform(ws.MustPlayer())

	// Hostile ships: the body snaps to the bearing, the heading only turns
	// as fast as its steer rate allows.
	ecs.Each2(ws.Enemies, ws.Movements, func(h ecs.Handle, _ *component.Enemy, mv *component.Movement) {
		if col, ok := ws.Collidables.Get(h); !ok || !col.Alive {
			return
		}
		tr, _ := ws.Transforms.Get(h)
		bearing := motion.Bearing(tr.Pos, target)
		tr.Rotation = bearing
		steer := 0.0
		if k, ok := ws.Kinds.Get(h); ok {
			if entry := ws.Tables.Kinds.Get(k.Name); entry != nil {
				steer = entry.SteerRate
			}
		}
		mv.Dir = motion.Steer(mv.Dir, vmath.FromAngle(bearing), steer, sec)
	})

	ecs.Each2(ws.Movements, ws.Transforms, func(_ ecs.Handle, mv *component.Movement, tr *component.Transform) {
		if tr.Mounted() || mv.Speed == 0 {
			return
		}
		tr.Pos = motion.Integrate(tr.Pos, mv.Dir, mv.Speed, sec)
	})

	p, _ := ws.Transforms.Get(ws.MustPlayer())
	ws.Camera = vmath.V(ws.Cfg.Field.Width/2, p.Pos.Y)
	ws.ResolveMounts()
}
