package system

import (
	"time"

	"github.com/broadside/sim/internal/combat"
	coresys "github.com/broadside/sim/internal/core/system"
)

// CombatSystem runs the bullet, contact, death and player-death passes and
// keeps the report for the progress system. Phase 4 (Combat).
type CombatSystem struct {
	resolver *combat.Resolver
	last     combat.Report
}

func NewCombatSystem(r *combat.Resolver) *CombatSystem {
	return &CombatSystem{resolver: r}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseCombat }

func (s *CombatSystem) Update(_ time.Duration) {
	r := s.resolver
	s.last = combat.Report{
		Hits:         r.Bullets(),
		PlayerDamage: r.Contact(),
		Kills:        r.Deaths(),
		RunEnded:     r.PlayerDeath(),
	}
}

// Last returns the report of the most recent tick.
func (s *CombatSystem) Last() combat.Report { return s.last }

// Reset forgets the last report.
func (s *CombatSystem) Reset() { s.last = combat.Report{} }
