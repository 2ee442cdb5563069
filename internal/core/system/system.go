package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput    Phase = iota // 0: apply input intent to the player
	PhaseMotion                // 1: steering, aiming, integration, camera
	PhaseTerrain               // 2: extend terrain ahead of the camera
	PhaseSpawn                 // 3: spawn timers, firing
	PhaseCombat                // 4: collisions, damage, death, pickups
	PhaseProgress              // 5: score and difficulty
	PhaseOutput                // 6: deliver this tick's events
	PhaseCleanup               // 7: out-of-view sweep, destroy queued entities

	phaseCount = PhaseCleanup + 1
)

var phaseNames = [...]string{"input", "motion", "terrain", "spawn", "combat", "progress", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
