package main

import (
	"math"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/sim"
	"github.com/broadside/sim/internal/vmath"
	"github.com/broadside/sim/internal/world"
)

const (
	dodgeAhead = 180.0 // obstacles closer than this along y are avoided
	dodgeWidth = 60.0
	aimRange   = 450.0
)

// autopilot produces input for headless runs: sail forward, keep to the
// middle of the field, swerve around obstacles and shoot the nearest enemy.
type autopilot struct {
	ticks uint64
}

func (a *autopilot) next(ws *world.State) sim.Input {
	a.ticks++
	p, ok := ws.Player()
	if !ok {
		return sim.Input{}
	}
	tr, _ := ws.Transforms.Get(p)
	pos := tr.Pos

	drift := (ws.Origin.X - pos.X) / ws.Cfg.Field.Width
	weave := 0.3 * math.Sin(float64(a.ticks)/90)
	in := sim.Input{Move: vmath.V(drift+weave, 1)}

	if dx, ok := nearestObstacle(ws, pos); ok {
		if dx >= 0 {
			in.Move.X = -1
		} else {
			in.Move.X = 1
		}
	}
	if target, ok := nearestEnemy(ws, pos); ok {
		in.Aim = target
		in.HasAim = true
		in.Fire = true
	}
	return in
}

// nearestObstacle returns the x offset of the closest collidable in the
// boat's path.
func nearestObstacle(ws *world.State, pos vmath.Vec2) (float64, bool) {
	best := math.Inf(1)
	var dx float64
	ws.Collidables.Each(func(h ecs.Handle, c *component.Collidable) {
		if !c.Alive || ws.Players.Has(h) || ws.Tiles.Has(h) {
			return
		}
		tr, ok := ws.Transforms.Get(h)
		if !ok {
			return
		}
		ahead := tr.Pos.Y - pos.Y
		off := tr.Pos.X - pos.X
		if ahead <= 0 || ahead > dodgeAhead || math.Abs(off) > dodgeWidth+c.Hitbox.W/2 {
			return
		}
		if ahead < best {
			best, dx = ahead, off
		}
	})
	return dx, !math.IsInf(best, 1)
}

func nearestEnemy(ws *world.State, pos vmath.Vec2) (vmath.Vec2, bool) {
	best := aimRange
	var target vmath.Vec2
	found := false
	ws.Enemies.Each(func(h ecs.Handle, _ *component.Enemy) {
		if ws.Wrecks.Has(h) || ws.Removing(h) {
			return
		}
		at, _, ok := ws.WorldTransform(h)
		if !ok {
			return
		}
		if d := pos.DistanceTo(at); d < best {
			best, target, found = d, at, true
		}
	})
	return target, found
}
