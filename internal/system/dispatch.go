package system

import (
	"time"

	"github.com/broadside/sim/internal/core/event"
	coresys "github.com/broadside/sim/internal/core/system"
)

// DispatchSystem delivers every event emitted this tick to its subscribers.
// Phase 6 (Output).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.Flush()
}
