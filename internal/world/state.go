package world

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/config"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/core/event"
	"github.com/broadside/sim/internal/data"
	"github.com/broadside/sim/internal/vmath"
)

// State is the entity registry of one simulation: every component store,
// the camera, and the permanent player entities. Accessed only from the
// simulation goroutine, so nothing here locks.
type State struct {
	ECS *ecs.World
	Bus *event.Bus
	Rng *rand.Rand

	Cfg    *config.Config
	Tables *data.Tables

	Transforms    *ecs.Store[component.Transform]
	Movements     *ecs.Store[component.Movement]
	Sprites       *ecs.Store[component.Sprite]
	Kinds         *ecs.Store[component.Kind]
	Healths       *ecs.Store[component.Health]
	Collidables   *ecs.Store[component.Collidable]
	Bullets       *ecs.Store[component.Bullet]
	Cannons       *ecs.Store[component.Cannon]
	Players       *ecs.Store[component.Player]
	PlayerCannons *ecs.Store[component.PlayerCannon]
	Enemies       *ecs.Store[component.Enemy]
	Tiles         *ecs.Store[component.Tile]
	PowerUps      *ecs.Store[component.PowerUp]
	Loots         *ecs.Store[component.Loot]
	Wrecks        *ecs.Store[component.Wreck]
	Permanents    *ecs.Store[component.Permanent]

	Camera vmath.Vec2
	Origin vmath.Vec2 // player spawn point

	player       ecs.Handle
	playerCannon ecs.Handle

	log *zap.Logger
}

func NewState(cfg *config.Config, tables *data.Tables, rng *rand.Rand, bus *event.Bus, log *zap.Logger) *State {
	s := &State{
		ECS:    ecs.NewWorld(),
		Bus:    bus,
		Rng:    rng,
		Cfg:    cfg,
		Tables: tables,

		Transforms:    ecs.NewStore[component.Transform](),
		Movements:     ecs.NewStore[component.Movement](),
		Sprites:       ecs.NewStore[component.Sprite](),
		Kinds:         ecs.NewStore[component.Kind](),
		Healths:       ecs.NewStore[component.Health](),
		Collidables:   ecs.NewStore[component.Collidable](),
		Bullets:       ecs.NewStore[component.Bullet](),
		Cannons:       ecs.NewStore[component.Cannon](),
		Players:       ecs.NewStore[component.Player](),
		PlayerCannons: ecs.NewStore[component.PlayerCannon](),
		Enemies:       ecs.NewStore[component.Enemy](),
		Tiles:         ecs.NewStore[component.Tile](),
		PowerUps:      ecs.NewStore[component.PowerUp](),
		Loots:         ecs.NewStore[component.Loot](),
		Wrecks:        ecs.NewStore[component.Wreck](),
		Permanents:    ecs.NewStore[component.Permanent](),

		Origin: vmath.V(cfg.Field.Width/2, cfg.Field.Height/2),
		log:    log,
	}
	reg := s.ECS.Registry()
	reg.Register("transforms", s.Transforms)
	reg.Register("movements", s.Movements)
	reg.Register("sprites", s.Sprites)
	reg.Register("kinds", s.Kinds)
	reg.Register("healths", s.Healths)
	reg.Register("collidables", s.Collidables)
	reg.Register("bullets", s.Bullets)
	reg.Register("cannons", s.Cannons)
	reg.Register("players", s.Players)
	reg.Register("playerCannons", s.PlayerCannons)
	reg.Register("enemies", s.Enemies)
	reg.Register("tiles", s.Tiles)
	reg.Register("powerUps", s.PowerUps)
	reg.Register("loots", s.Loots)
	reg.Register("wrecks", s.Wrecks)
	reg.Register("permanents", s.Permanents)
	return s
}

// Player returns the player boat handle, if one has been spawned.
func (s *State) Player() (ecs.Handle, bool) {
	if s.player.IsNone() || !s.ECS.Alive(s.player) {
		return ecs.None, false
	}
	return s.player, true
}

// MustPlayer returns the player boat. A running simulation always has one;
// calling this without a player is a programming error.
func (s *State) MustPlayer() ecs.Handle {
	h, ok := s.Player()
	if !ok {
		panic("world: no player entity while the simulation is running")
	}
	return h
}

// PlayerCannon returns the cannon mounted on the player boat.
func (s *State) PlayerCannon() (ecs.Handle, bool) {
	if s.playerCannon.IsNone() || !s.ECS.Alive(s.playerCannon) {
		return ecs.None, false
	}
	return s.playerCannon, true
}

// PlayerHealth returns the player's health component.
func (s *State) PlayerHealth() *component.Health {
	h, _ := s.Healths.Get(s.MustPlayer())
	return h
}

// EnsurePlayer spawns the player boat and its cannon on first use and puts
// both back to their starting state afterwards. Calling it repeatedly leaves
// the same state as calling it once.
func (s *State) EnsurePlayer() ecs.Handle {
	if _, ok := s.Player(); !ok {
		s.spawnPlayer()
	}
	s.resetPlayer()
	s.Camera = vmath.V(s.Cfg.Field.Width/2, s.Origin.Y)
	return s.player
}

func (s *State) spawnPlayer() {
	p := s.ECS.CreateEntity()
	s.Players.Set(p, &component.Player{})
	s.Kinds.Set(p, &component.Kind{Name: "player", Category: component.CategoryPlayer})
	s.Transforms.Set(p, &component.Transform{})
	s.Movements.Set(p, &component.Movement{})
	s.Sprites.Set(p, &component.Sprite{Name: "player"})
	s.Healths.Set(p, &component.Health{})
	s.Permanents.Set(p, &component.Permanent{})

	c := s.ECS.CreateEntity()
	s.PlayerCannons.Set(c, &component.PlayerCannon{})
	s.Kinds.Set(c, &component.Kind{Name: "player_cannon", Category: component.CategoryPlayer})
	s.Transforms.Set(c, &component.Transform{})
	s.Sprites.Set(c, &component.Sprite{Name: "player_cannon"})
	s.Cannons.Set(c, &component.Cannon{})
	s.Permanents.Set(c, &component.Permanent{})

	s.player, s.playerCannon = p, c
	if err := s.SetParent(c, p, vmath.V(s.Cfg.Player.CannonOffsetX, s.Cfg.Player.CannonOffsetY)); err != nil {
		panic(err)
	}
	s.log.Debug("player spawned", zap.Uint64("player", uint64(p)), zap.Uint64("cannon", uint64(c)))
}

func (s *State) resetPlayer() {
	pc := s.Cfg.Player
	p, c := s.player, s.playerCannon

	*mustGet(s.Players, p) = component.Player{}
	tr := mustGet(s.Transforms, p)
	*tr = component.Transform{Pos: s.Origin, Rotation: math.Pi / 2}
	*mustGet(s.Movements, p) = component.Movement{Dir: vmath.V(0, 1), Speed: pc.Speed}
	*mustGet(s.Sprites, p) = component.Sprite{Name: "player"}
	*mustGet(s.Healths, p) = component.Health{
		Max:    pc.Health,
		Amount: pc.Health,
		Hitbox: vmath.Size{W: pc.HitboxWidth, H: pc.HitboxHeight},
		Mass:   component.Wood,
	}

	ct := mustGet(s.Transforms, c)
	ct.Rotation = math.Pi / 2
	cannon := mustGet(s.Cannons, c)
	cooldown := newCooldown(pc.CannonCooldown)
	*cannon = component.Cannon{
		Owner:       p,
		Mode:        component.AimAtPoint,
		Cooldown:    cooldown,
		TurnRate:    pc.CannonTurnRate,
		BulletSpeed: pc.BulletSpeed,
		Damage:      pc.BulletDamage,
		BulletSize:  pc.BulletSize,
	}
	s.ResolveMounts()
}

func mustGet[T any](st *ecs.Store[T], h ecs.Handle) *T {
	c, ok := st.Get(h)
	if !ok {
		panic(fmt.Sprintf("world: entity %d lost a permanent component", h))
	}
	return c
}

// Reset wipes every non-permanent entity, drops undelivered events and puts
// the player back at the spawn point.
func (s *State) Reset() int {
	s.Transforms.Each(func(h ecs.Handle, _ *component.Transform) {
		if !s.Permanents.Has(h) {
			s.ECS.MarkForDestruction(h)
		}
	})
	n := s.ECS.FlushDestroyQueue()
	s.Bus.Discard()
	s.EnsurePlayer()
	s.log.Debug("world reset", zap.Int("removed", n))
	return n
}

// Despawn queues h and everything mounted on it for removal at the end of
// the tick. Permanent entities are never despawned.
func (s *State) Despawn(h ecs.Handle) {
	if s.Permanents.Has(h) {
		return
	}
	s.ECS.MarkForDestruction(h)
	s.Transforms.Each(func(child ecs.Handle, t *component.Transform) {
		if t.Parent == h {
			s.ECS.MarkForDestruction(child)
		}
	})
}

// Removing reports whether h is gone or queued for removal.
func (s *State) Removing(h ecs.Handle) bool {
	return !s.ECS.Alive(h) || s.ECS.PendingDestruction(h)
}

// Dynamic counts live entities that a restart would remove.
func (s *State) Dynamic() int {
	n := 0
	s.Transforms.Each(func(h ecs.Handle, _ *component.Transform) {
		if !s.Permanents.Has(h) {
			n++
		}
	})
	return n
}
