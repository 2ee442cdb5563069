// Package combat resolves bullets, contact damage, deaths and the
// out-of-view sweep once per tick, in that order.
package combat

import (
	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/core/event"
	"github.com/broadside/sim/internal/world"
)

// ContactSelfDamage is what a damageable collidable loses each tick it
// touches the player, whatever its own contact damage.
const ContactSelfDamage = 1

// Scorer decides the points a destroyed enemy is worth.
type Scorer interface {
	KillScore(kind string, base int) int
}

// Kill describes one entity that turned into a wreck this tick.
type Kill struct {
	Entity ecs.Handle
	Kind   string
	Score  int
	Drop   ecs.Handle // power-up spawned from the wreck, or None
}

// Report summarizes one Resolve call.
type Report struct {
	Hits         int
	PlayerDamage int
	Kills        []Kill
	RunEnded     bool // first tick the player is at or below zero health
	Swept        int
}

// Score is the total kill score of the report.
func (r *Report) Score() int {
	n := 0
	for _, k := range r.Kills {
		n += k.Score
	}
	return n
}

// Resolver runs the combat passes against a world. It latches the run-ended
// signal so it fires once per run.
type Resolver struct {
	st     *world.State
	scorer Scorer
	ended  bool
	log    *zap.Logger
}

// NewResolver builds a resolver. scorer may be nil, in which case kinds score
// their table value.
func NewResolver(st *world.State, scorer Scorer, log *zap.Logger) *Resolver {
	return &Resolver{st: st, scorer: scorer, log: log}
}

// Reset re-arms the run-ended signal.
func (r *Resolver) Reset() { r.ended = false }

// Ended reports whether the current run has ended.
func (r *Resolver) Ended() bool { return r.ended }

// Resolve runs every pass for one tick.
func (r *Resolver) Resolve() Report {
	var rep Report
	rep.Hits = r.Bullets()
	rep.PlayerDamage = r.Contact()
	rep.Kills = r.Deaths()
	rep.RunEnded = r.PlayerDeath()
	rep.Swept = r.Sweep()
	return rep
}

// alive reports whether h can still take part in collisions.
func (r *Resolver) alive(h ecs.Handle) bool {
	if r.st.Removing(h) {
		return false
	}
	if col, ok := r.st.Collidables.Get(h); ok && !col.Alive {
		return false
	}
	return true
}

// Bullets tests every bullet against every damageable entity in spawn
// order. A bullet skips its shooter and projectile-immune targets, damages
// the first target it overlaps and is removed. Returns the number of hits.
func (r *Resolver) Bullets() int {
	st := r.st
	hits := 0
	targets := st.Healths.Handles()
	for _, b := range st.Bullets.Handles() {
		if st.Removing(b) {
			continue
		}
		bullet, _ := st.Bullets.Get(b)
		bt, _ := st.Transforms.Get(b)
		for _, h := range targets {
			if h == bullet.Shooter || !r.alive(h) {
				continue
			}
			health, ok := st.Healths.Get(h)
			if !ok || health.Immune {
				continue
			}
			tt, ok := st.Transforms.Get(h)
			if !ok || !overlap(bt, bullet.Size, tt, health.Hitbox) {
				continue
			}
			health.Amount -= bullet.Damage
			st.Despawn(b)
			hits++
			cue := event.CueBulletHitWood
			if health.Mass == component.Rock {
				cue = event.CueBulletHitRock
			}
			event.Emit(st.Bus, event.Audio{Cue: cue, Source: h, X: tt.Pos.X, Y: tt.Pos.Y})
			break
		}
	}
	return hits
}

// Contact applies the contact damage of every live collidable overlapping
// the player. A collidable that can be damaged loses ContactSelfDamage in
// return. Returns the damage dealt to the player.
func (r *Resolver) Contact() int {
	st := r.st
	p := st.MustPlayer()
	pt, _ := st.Transforms.Get(p)
	ph, _ := st.Healths.Get(p)
	dealt := 0
	st.Collidables.Each(func(h ecs.Handle, col *component.Collidable) {
		if !col.Alive || st.Removing(h) {
			return
		}
		t, ok := st.Transforms.Get(h)
		if !ok || !overlap(pt, ph.Hitbox, t, col.Hitbox) {
			return
		}
		ph.Amount -= col.ContactDamage
		dealt += col.ContactDamage
		if health, ok := st.Healths.Get(h); ok {
			health.Amount -= ContactSelfDamage
		}
	})
	return dealt
}

// Deaths turns every live collidable at or below zero health into a wreck,
// credits enemy kills and rolls loot.
func (r *Resolver) Deaths() []Kill {
	st := r.st
	var kills []Kill
	st.Collidables.Each(func(h ecs.Handle, col *component.Collidable) {
		if !col.Alive || st.Removing(h) {
			return
		}
		health, ok := st.Healths.Get(h)
		if !ok || !health.Dead() {
			return
		}
		col.Alive = false
		kills = append(kills, r.wreck(h, health))
	})
	return kills
}

func (r *Resolver) wreck(h ecs.Handle, health *component.Health) Kill {
	st := r.st
	kind, _ := st.Kinds.Get(h)
	t, _ := st.Transforms.Get(h)
	kill := Kill{Entity: h, Kind: kind.Name}

	if sp, ok := st.Sprites.Get(h); ok {
		sp.Variant = component.VariantWreck
	}
	if mv, ok := st.Movements.Get(h); ok {
		mv.Speed = 0
	}
	ttl := 0.0
	if entry := st.Tables.Kinds.Get(kind.Name); entry != nil {
		ttl = entry.WreckTTL
	}
	st.Wrecks.Set(h, &component.Wreck{TTL: ttl})

	cue := event.CueObstacleDestroyed
	if enemy, ok := st.Enemies.Get(h); ok {
		cue = event.CueBoatDestroyed
		kill.Score = enemy.Score
		if r.scorer != nil {
			kill.Score = r.scorer.KillScore(kind.Name, enemy.Score)
		}
	}
	if loot, ok := st.Loots.Get(h); ok && st.Rng.Float64() < loot.Chance {
		kill.Drop = r.drop(t)
	}
	event.Emit(st.Bus, event.Audio{Cue: cue, Source: h, X: t.Pos.X, Y: t.Pos.Y})
	event.Emit(st.Bus, event.Destroyed{Entity: h, Kind: kind.Name, X: t.Pos.X, Y: t.Pos.Y, Score: kill.Score})
	r.log.Debug("wrecked", zap.String("kind", kind.Name), zap.Int("score", kill.Score), zap.Int("health", health.Amount))
	return kill
}

func (r *Resolver) drop(at *component.Transform) ecs.Handle {
	entry, err := r.st.Tables.Kinds.Pick(component.CategoryPowerUp, r.st.Rng)
	if err != nil {
		r.log.Warn("loot skipped", zap.Error(err))
		return ecs.None
	}
	return r.st.SpawnKind(entry, at.Pos)
}

// PlayerDeath reports true exactly once per run: on the first call that
// finds the player at or below zero health.
func (r *Resolver) PlayerDeath() bool {
	if r.ended {
		return false
	}
	if r.st.PlayerHealth().Amount > 0 {
		return false
	}
	r.ended = true
	return true
}
