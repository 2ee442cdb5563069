package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/event"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/difficulty"
	"github.com/broadside/sim/internal/score"
	"github.com/broadside/sim/internal/spawn"
	"github.com/broadside/sim/internal/world"
)

// Player sprite damage tiers, as fractions of max health.
const (
	damagedBelow  = 0.6
	criticalBelow = 0.3
)

// ProgressSystem advances the run score, credits this tick's kills, promotes
// the difficulty tier and announces the end of the run. Phase 5 (Progress).
type ProgressSystem struct {
	world   *world.State
	combat  *CombatSystem
	tracker *score.Tracker
	diff    *difficulty.Controller
	spawner *spawn.Spawner
	log     *zap.Logger
}

func NewProgressSystem(ws *world.State, cs *CombatSystem, tr *score.Tracker, diff *difficulty.Controller, sp *spawn.Spawner, log *zap.Logger) *ProgressSystem {
	return &ProgressSystem{world: ws, combat: cs, tracker: tr, diff: diff, spawner: sp, log: log}
}

func (s *ProgressSystem) Phase() coresys.Phase { return coresys.PhaseProgress }

func (s *ProgressSystem) Update(dt time.Duration) {
	ws := s.world
	p := ws.MustPlayer()
	tr, _ := ws.Transforms.Get(p)
	s.tracker.Advance(dt, tr.Pos.Y, ws.Origin.Y)

	rep := s.combat.Last()
	if pts := rep.Score(); pts > 0 {
		s.tracker.AddKill(pts)
	}

	for _, tier := range s.diff.Evaluate(s.tracker.Score(), s.tracker.Distance()) {
		added := s.spawner.Grow(s.diff.Growth(tier))
		event.Emit(ws.Bus, event.DifficultyRaised{Tier: tier.String()})
		s.log.Info("tier entered", zap.Stringer("tier", tier), zap.Int("timers_added", added))
	}

	s.updateDamageTier()

	if rep.RunEnded {
		snap := s.tracker.Snapshot()
		event.Emit(ws.Bus, event.RunEnded{
			Score:    snap.Score,
			Distance: snap.Distance,
			Elapsed:  snap.Elapsed.Seconds(),
			Tier:     s.diff.Tier().String(),
		})
		event.Emit(ws.Bus, event.Audio{Cue: event.CueBoatDestroyed, Source: p, X: tr.Pos.X, Y: tr.Pos.Y})
	}
}

func (s *ProgressSystem) updateDamageTier() {
	ws := s.world
	p := ws.MustPlayer()
	sp, _ := ws.Sprites.Get(p)
	f := ws.PlayerHealth().Fraction()
	switch {
	case f <= 0:
		sp.Variant = component.VariantWreck
	case f < criticalBelow:
		sp.Variant = component.VariantCritical
	case f < damagedBelow:
		sp.Variant = component.VariantDamaged
	default:
		sp.Variant = component.VariantNormal
	}
}
