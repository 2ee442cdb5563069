package world

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/data"
	"github.com/broadside/sim/internal/timer"
	"github.com/broadside/sim/internal/vmath"
)

// SpawnKind instantiates a data-table kind at pos. The components attached
// follow the entry: every kind is damageable, everything except power-ups is
// collidable, and kinds with a cannon get one (mounted when the entry gives
// an offset, on the ship itself otherwise).
func (s *State) SpawnKind(k *data.KindEntry, pos vmath.Vec2) ecs.Handle {
	h := s.ECS.CreateEntity()
	rot := math.Pi / 2
	if k.RandomRotation {
		rot = s.Rng.Float64() * 2 * math.Pi
	}
	s.Transforms.Set(h, &component.Transform{Pos: pos, Rotation: rot})
	s.Sprites.Set(h, &component.Sprite{Name: k.Name})
	s.Kinds.Set(h, &component.Kind{Name: k.Name, Category: k.Category})
	s.Healths.Set(h, &component.Health{
		Max:    k.Health,
		Amount: k.Health,
		Hitbox: k.Hitbox,
		Immune: k.Immune,
		Mass:   k.Mass,
	})

	if k.Category == component.CategoryPowerUp {
		s.PowerUps.Set(h, &component.PowerUp{Kind: k.PowerUp})
	} else {
		s.Collidables.Set(h, &component.Collidable{
			Hitbox:        k.Hitbox,
			ContactDamage: k.ContactDamage,
			Alive:         true,
		})
	}
	if k.Category.Enemy() {
		pts := k.Score
		if pts == 0 {
			pts = s.Cfg.Score.KillScore
		}
		s.Enemies.Set(h, &component.Enemy{Score: pts})
	}
	if k.LootChance > 0 {
		s.Loots.Set(h, &component.Loot{Chance: k.LootChance})
	}
	if k.Speed > 0 {
		s.Movements.Set(h, &component.Movement{Dir: vmath.FromAngle(rot), Speed: k.Speed})
	}
	if k.Cannon != nil {
		s.spawnCannon(h, k)
	}
	s.log.Debug("spawned", zap.String("kind", k.Name), zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
	return h
}

func (s *State) spawnCannon(ship ecs.Handle, k *data.KindEntry) {
	cs := k.Cannon
	cannon := &component.Cannon{
		Owner:       ship,
		Mode:        component.AimAtPlayer,
		Cooldown:    timer.NewRepeating(cs.Cooldown),
		TurnRate:    cs.TurnRate,
		Range:       cs.Range,
		Tolerance:   cs.Tolerance,
		BulletSpeed: cs.BulletSpeed,
		Damage:      cs.Damage,
		BulletSize:  s.Cfg.Player.BulletSize,
	}
	if cs.Offset.IsZero() {
		s.Cannons.Set(ship, cannon)
		return
	}
	shipT, _ := s.Transforms.Get(ship)
	c := s.ECS.CreateEntity()
	s.Transforms.Set(c, &component.Transform{Rotation: shipT.Rotation})
	s.Sprites.Set(c, &component.Sprite{Name: k.Name + "_cannon"})
	s.Kinds.Set(c, &component.Kind{Name: k.Name + "_cannon", Category: k.Category})
	s.Cannons.Set(c, cannon)
	if err := s.SetParent(c, ship, cs.Offset); err != nil {
		s.log.Error("mount cannon", zap.Error(err))
	}
	s.ResolveMounts()
}

// SpawnBullet fires a bullet from pos along dir. The shooter is never hit by
// its own bullet.
func (s *State) SpawnBullet(shooter ecs.Handle, pos, dir vmath.Vec2, speed float64, damage int, size float64) ecs.Handle {
	h := s.ECS.CreateEntity()
	s.Transforms.Set(h, &component.Transform{Pos: pos, Rotation: dir.Angle()})
	s.Movements.Set(h, &component.Movement{Dir: dir.Normalize(), Speed: speed})
	s.Sprites.Set(h, &component.Sprite{Name: "bullet"})
	s.Kinds.Set(h, &component.Kind{Name: "bullet", Category: component.CategoryBullet})
	s.Bullets.Set(h, &component.Bullet{
		Shooter: shooter,
		Damage:  damage,
		Size:    vmath.Size{W: size, H: size},
	})
	return h
}

// SpawnTile places one terrain tile. Land tiles are solid and deal the
// terrain table's contact damage; other layers are decoration.
func (s *State) SpawnTile(layer component.TileLayer, x, y float64, sprite string) ecs.Handle {
	h := s.ECS.CreateEntity()
	s.Transforms.Set(h, &component.Transform{Pos: vmath.V(x, y)})
	s.Sprites.Set(h, &component.Sprite{Name: sprite})
	s.Kinds.Set(h, &component.Kind{Name: sprite, Category: component.CategoryTerrain})
	s.Tiles.Set(h, &component.Tile{Layer: layer})
	if layer == component.LayerLand {
		tile := s.Cfg.Field.TileSize
		s.Collidables.Set(h, &component.Collidable{
			Hitbox:        vmath.Size{W: tile, H: tile},
			ContactDamage: s.Tables.Terrain.LandContactDamage,
			Alive:         true,
		})
	}
	return h
}

// newCooldown returns a one-shot cooldown that starts out ready.
func newCooldown(d time.Duration) timer.Timer {
	t := timer.NewOnce(d)
	t.Expire()
	return t
}
