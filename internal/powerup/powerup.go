// Package powerup handles power-up pickup and the timed weapon upgrade.
package powerup

import (
	"time"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/config"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/core/event"
	"github.com/broadside/sim/internal/timer"
	"github.com/broadside/sim/internal/vmath"
	"github.com/broadside/sim/internal/world"
)

// Effects applies power-ups to the player and reverts weapon upgrades when
// their exhaustion timers run out.
//
// The weapon upgrade and its reversal use multipliers that are not inverses
// of each other, so every pickup leaves the cannon slightly changed after it
// wears off. Cooldowns are scaled in float32 and truncated to whole
// milliseconds.
type Effects struct {
	st      *world.State
	cfg     config.PowerUpConfig
	exhaust timer.OneShots
	log     *zap.Logger
}

func New(st *world.State, cfg config.PowerUpConfig, log *zap.Logger) *Effects {
	return &Effects{st: st, cfg: cfg, log: log}
}

// Pickup consumes every power-up overlapping the player. Returns how many
// were collected.
func (e *Effects) Pickup() int {
	st := e.st
	p := st.MustPlayer()
	pt, _ := st.Transforms.Get(p)
	ph, _ := st.Healths.Get(p)
	n := 0
	st.PowerUps.Each(func(h ecs.Handle, pu *component.PowerUp) {
		if st.Removing(h) {
			return
		}
		t, ok := st.Transforms.Get(h)
		hp, ok2 := st.Healths.Get(h)
		if !ok || !ok2 || !vmath.Overlap(pt.Pos, ph.Hitbox, t.Pos, hp.Hitbox) {
			return
		}
		e.Apply(pu.Kind)
		st.Despawn(h)
		n++
	})
	return n
}

// Apply grants one power-up to the player.
func (e *Effects) Apply(kind component.PowerUpKind) {
	st := e.st
	p := st.MustPlayer()
	switch kind {
	case component.PowerUpRepair:
		Repair(st.PlayerHealth(), e.cfg.RepairMaxBonus, e.cfg.RepairHeal)
		e.emit(p, event.CueRepairCollected)
	case component.PowerUpWeapon:
		if c := e.playerCannon(); c != nil {
			Scale(c, e.cfg.WeaponCooldownMul, e.cfg.WeaponTurnMul)
		}
		e.exhaust.Add(e.cfg.WeaponDuration)
		e.emit(p, event.CueWeaponCollected)
	default:
		e.log.Warn("unknown power-up", zap.String("kind", string(kind)))
		return
	}
	event.Emit(st.Bus, event.PowerUpCollected{Kind: string(kind)})
	e.log.Debug("power-up collected", zap.String("kind", string(kind)))
}

// Tick advances exhaustion timers and reverts one weapon upgrade per timer
// that ran out. Returns the number reverted.
func (e *Effects) Tick(dt time.Duration) int {
	n := e.exhaust.Tick(dt)
	if n == 0 {
		return 0
	}
	c := e.playerCannon()
	p := e.st.MustPlayer()
	for i := 0; i < n; i++ {
		if c != nil {
			Scale(c, e.cfg.ExhaustCooldownMul, e.cfg.ExhaustTurnMul)
		}
		e.emit(p, event.CuePowerUpExhausted)
	}
	return n
}

// Active is the number of weapon upgrades still running.
func (e *Effects) Active() int { return e.exhaust.Len() }

// Reset drops every running upgrade without reverting it; the player cannon
// is rebuilt by the restart anyway.
func (e *Effects) Reset() { e.exhaust.Clear() }

func (e *Effects) playerCannon() *component.Cannon {
	h, ok := e.st.PlayerCannon()
	if !ok {
		return nil
	}
	c, _ := e.st.Cannons.Get(h)
	return c
}

func (e *Effects) emit(src ecs.Handle, cue event.Cue) {
	pos, _, _ := e.st.WorldTransform(src)
	event.Emit(e.st.Bus, event.Audio{Cue: cue, Source: src, X: pos.X, Y: pos.Y})
}

// Repair raises max health by bonus, then heals by heal without exceeding
// the new max.
func Repair(h *component.Health, bonus, heal int) {
	h.Max += bonus
	h.Amount = min(h.Amount+heal, h.Max)
}

// Scale multiplies a cannon's cooldown and turn rate.
func Scale(c *component.Cannon, cooldownMul float32, turnMul float64) {
	c.SetCooldownMS(int64(float32(c.CooldownMS()) * cooldownMul))
	c.TurnRate *= turnMul
}
