package system

import (
	"time"

	"github.com/broadside/sim/internal/combat"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/world"
)

// CleanupSystem sweeps out-of-view entities, expires short-lived wrecks and
// flushes the deferred entity destruction queue at tick end.
// Phase 7 (Cleanup).
type CleanupSystem struct {
	world    *world.State
	resolver *combat.Resolver
}

func NewCleanupSystem(ws *world.State, r *combat.Resolver) *CleanupSystem {
	return &CleanupSystem{world: ws, resolver: r}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(dt time.Duration) {
	s.resolver.Sweep()
	s.resolver.ExpireWrecks(dt.Seconds())
	s.world.ECS.FlushDestroyQueue()
}
