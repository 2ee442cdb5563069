package system

import (
	"time"

	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/spawn"
)

// SpawnSystem ticks the spawn timer pools. Phase 3 (Spawn).
type SpawnSystem struct {
	spawner *spawn.Spawner
}

func NewSpawnSystem(sp *spawn.Spawner) *SpawnSystem {
	return &SpawnSystem{spawner: sp}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(dt time.Duration) {
	s.spawner.Tick(dt)
}
