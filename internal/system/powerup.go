package system

import (
	"time"

	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/powerup"
)

// PowerUpSystem collects power-ups touching the player and reverts expired
// weapon upgrades. Phase 4 (Combat), after CombatSystem.
type PowerUpSystem struct {
	effects *powerup.Effects
}

func NewPowerUpSystem(e *powerup.Effects) *PowerUpSystem {
	return &PowerUpSystem{effects: e}
}

func (s *PowerUpSystem) Phase() coresys.Phase { return coresys.PhaseCombat }

func (s *PowerUpSystem) Update(dt time.Duration) {
	s.effects.Pickup()
	s.effects.Tick(dt)
}
