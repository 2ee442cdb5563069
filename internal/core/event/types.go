package event

import "github.com/broadside/sim/internal/core/ecs"

// Cue names a discrete audio event. The core only decides that a cue fires;
// mixing and playback belong to the audio collaborator.
type Cue string

const (
	CueBulletFired       Cue = "bullet_fired"
	CueBulletHitWood     Cue = "bullet_hit_wood"
	CueBulletHitRock     Cue = "bullet_hit_rock"
	CueObstacleDestroyed Cue = "obstacle_destroyed"
	CueBoatDestroyed     Cue = "boat_destroyed"
	CueRepairCollected   Cue = "power_up_repair"
	CueWeaponCollected   Cue = "power_up_weapon"
	CuePowerUpExhausted  Cue = "power_up_exhausted"
	CueEngineStart       Cue = "engine_start"
	CueEngineStop        Cue = "engine_stop"
)

// Audio is emitted at the moment a sound-worthy thing happens.
type Audio struct {
	Cue    Cue
	Source ecs.Handle
	X, Y   float64
}

// Destroyed is emitted when a damageable entity turns into a wreck.
type Destroyed struct {
	Entity ecs.Handle
	Kind   string
	X, Y   float64
	Score  int
}

// RunEnded is emitted exactly once per run when the player dies.
type RunEnded struct {
	Score    int
	Distance float64
	Elapsed  float64 // seconds
	Tier     string
}

// DifficultyRaised is emitted on every tier promotion.
type DifficultyRaised struct {
	Tier string
}

// PowerUpCollected is emitted when the player picks up a power-up.
type PowerUpCollected struct {
	Kind string
}
