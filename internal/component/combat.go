package component

import (
	"fmt"
	"time"

	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/timer"
	"github.com/broadside/sim/internal/vmath"
)

// Mass selects the impact cue of a bullet hit. It has no effect on physics.
type Mass int

const (
	Wood Mass = iota
	Rock
)

func (m Mass) String() string {
	if m == Rock {
		return "rock"
	}
	return "wood"
}

// UnmarshalText accepts "wood" or "rock".
func (m *Mass) UnmarshalText(b []byte) error {
	switch string(b) {
	case "wood":
		*m = Wood
	case "rock":
		*m = Rock
	default:
		return fmt.Errorf("unknown mass class %q", b)
	}
	return nil
}

// Health makes an entity damageable. Amount may exceed Max only inside the
// repair step, which clamps immediately after raising Max.
type Health struct {
	Max    int
	Amount int
	Hitbox vmath.Size
	Immune bool // immune to projectiles
	Mass   Mass
}

func (h *Health) Dead() bool { return h.Amount <= 0 }

// Fraction is Amount/Max clamped to [0, 1].
func (h *Health) Fraction() float64 {
	if h.Max <= 0 || h.Amount <= 0 {
		return 0
	}
	f := float64(h.Amount) / float64(h.Max)
	if f > 1 {
		return 1
	}
	return f
}

// Collidable takes part in contact checks against the player while Alive.
type Collidable struct {
	Hitbox        vmath.Size
	ContactDamage int
	Alive         bool
}

// Bullet never damages Shooter.
type Bullet struct {
	Shooter ecs.Handle
	Damage  int
	Size    vmath.Size
}

// TargetMode selects what a cannon aims at.
type TargetMode int

const (
	AimAtPoint  TargetMode = iota // player cannon: input aim point
	AimAtPlayer                   // enemy cannons
)

// Cannon rotates toward its target at most TurnRate radians per second and
// fires bullets when its cooldown allows. Owner is the ship the bullets are
// attributed to.
type Cannon struct {
	Owner       ecs.Handle
	Mode        TargetMode
	Cooldown    timer.Timer
	TurnRate    float64
	Range       float64 // 0 = unlimited
	Tolerance   float64 // max heading error to fire, radians
	BulletSpeed float64
	Damage      int
	BulletSize  float64
}

// CooldownMS is the cooldown as whole milliseconds.
func (c *Cannon) CooldownMS() int64 { return c.Cooldown.Duration().Milliseconds() }

// SetCooldownMS replaces the cooldown duration.
func (c *Cannon) SetCooldownMS(ms int64) {
	c.Cooldown.SetDuration(time.Duration(ms) * time.Millisecond)
}
