package system

import (
	"time"

	"github.com/broadside/sim/internal/core/event"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/motion"
	"github.com/broadside/sim/internal/vmath"
	"github.com/broadside/sim/internal/world"
)

// Input is the already-resolved intent for one tick.
type Input struct {
	Move   vmath.Vec2 // movement direction; zero = no movement intent
	Aim    vmath.Vec2 // world-space aim point
	HasAim bool
	Fire   bool
}

// InputBuffer holds the intent consumed by the next tick.
type InputBuffer struct {
	cur Input
}

func (b *InputBuffer) Set(in Input) { b.cur = in }
func (b *InputBuffer) Get() Input   { return b.cur }

// PlayerControlSystem steers the player boat toward the movement intent.
// The boat only moves while an intent is present; the engine cue follows.
// Phase 0 (Input).
type PlayerControlSystem struct {
	world *world.State
	input *InputBuffer
}

func NewPlayerControlSystem(ws *world.State, input *InputBuffer) *PlayerControlSystem {
	return &PlayerControlSystem{world: ws, input: input}
}

func (s *PlayerControlSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *PlayerControlSystem) Update(dt time.Duration) {
	ws := s.world
	p := ws.MustPlayer()
	in := s.input.Get()
	player, _ := ws.Players.Get(p)
	mv, _ := ws.Movements.Get(p)
	tr, _ := ws.Transforms.Get(p)

	moving := !in.Move.IsZero()
	if moving {
		mv.Dir = motion.Steer(mv.Dir, in.Move.Normalize(), ws.Cfg.Player.SteerRate, dt.Seconds())
		mv.Speed = ws.Cfg.Player.Speed
		tr.Rotation = mv.Dir.Angle()
	} else {
		mv.Speed = 0
	}
	if moving != player.Moving {
		cue := event.CueEngineStop
		if moving {
			cue = event.CueEngineStart
		}
		event.Emit(ws.Bus, event.Audio{Cue: cue, Source: p, X: tr.Pos.X, Y: tr.Pos.Y})
	}
	player.Moving = moving
}
