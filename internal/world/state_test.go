package world

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/config"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/core/event"
	"github.com/broadside/sim/internal/data"
	"github.com/broadside/sim/internal/vmath"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(config.Default(), data.MustDefaults(), rand.New(rand.NewSource(1)), event.NewBus(), zap.NewNop())
}

func near(a, b vmath.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestMustPlayer_PanicsWithoutPlayer(t *testing.T) {
	s := newTestState(t)
	defer func() {
		if recover() == nil {
			t.Error("MustPlayer did not panic")
		}
	}()
	s.MustPlayer()
}

func TestEnsurePlayer(t *testing.T) {
	s := newTestState(t)
	p := s.EnsurePlayer()
	tr, _ := s.Transforms.Get(p)
	if !near(tr.Pos, vmath.V(256, 288)) {
		t.Errorf("player at %v, want field centre", tr.Pos)
	}
	if s.Camera != vmath.V(256, 288) {
		t.Errorf("camera = %v", s.Camera)
	}
	c, ok := s.PlayerCannon()
	if !ok {
		t.Fatal("no player cannon")
	}
	pos, _, ok := s.WorldTransform(c)
	if !ok || !near(pos, vmath.V(256, 296)) {
		t.Errorf("cannon world pos = %v, want 8 units ahead of the boat", pos)
	}
	cannon, _ := s.Cannons.Get(c)
	if !cannon.Cooldown.Ready() {
		t.Error("player cannon starts on cooldown")
	}

	s.PlayerHealth().Amount = 3
	tr.Pos = vmath.V(10, 900)
	if again := s.EnsurePlayer(); again != p {
		t.Errorf("EnsurePlayer respawned: %v != %v", again, p)
	}
	if s.PlayerHealth().Amount != 10 {
		t.Errorf("health = %d, want reset to 10", s.PlayerHealth().Amount)
	}
	if !near(tr.Pos, s.Origin) {
		t.Errorf("position not reset: %v", tr.Pos)
	}
}

func TestReset_KeepsOnlyPermanent(t *testing.T) {
	s := newTestState(t)
	p := s.EnsurePlayer()
	rock := s.SpawnKind(s.Tables.Kinds.Get("rock1"), vmath.V(100, 900))
	s.SpawnKind(s.Tables.Kinds.Get("pirate"), vmath.V(200, 900))
	s.SpawnBullet(p, vmath.V(0, 0), vmath.V(0, 1), 400, 1, 5)
	s.SpawnTile(component.LayerLand, -96, 32, "land1")
	if s.Dynamic() != 5 {
		t.Fatalf("Dynamic = %d, want 5 (pirate cannon included)", s.Dynamic())
	}

	s.Reset()
	if s.Dynamic() != 0 {
		t.Errorf("Dynamic after Reset = %d", s.Dynamic())
	}
	if _, ok := s.Healths.Get(rock); ok {
		t.Error("stale handle still resolves")
	}
	if _, ok := s.Player(); !ok {
		t.Error("player removed by Reset")
	}
	if s.ECS.Live() != 2 {
		t.Errorf("Live = %d, want 2", s.ECS.Live())
	}
}

func TestSpawnKind_Components(t *testing.T) {
	s := newTestState(t)
	s.EnsurePlayer()

	wood := s.SpawnKind(s.Tables.Kinds.Get("wood1"), vmath.V(50, 50))
	col, ok := s.Collidables.Get(wood)
	if !ok || !col.Alive || col.ContactDamage != 1 {
		t.Errorf("wood collidable = %+v", col)
	}

	up := s.SpawnKind(s.Tables.Kinds.Get("power_up_weapon"), vmath.V(50, 50))
	if s.Collidables.Has(up) {
		t.Error("power-up is collidable")
	}
	if pu, _ := s.PowerUps.Get(up); pu == nil || pu.Kind != component.PowerUpWeapon {
		t.Errorf("power-up = %+v", pu)
	}

	side := s.SpawnKind(s.Tables.Kinds.Get("enemy_cannon"), vmath.V(0, 900))
	if !s.Cannons.Has(side) || !s.Enemies.Has(side) {
		t.Error("side cannon lacks its own cannon or enemy tag")
	}

	pirate := s.SpawnKind(s.Tables.Kinds.Get("pirate"), vmath.V(200, 900))
	if s.Cannons.Has(pirate) {
		t.Error("pirate cannon should be a mounted child")
	}
	var mounted int
	s.Transforms.Each(func(_ ecs.Handle, tr *component.Transform) {
		if tr.Parent == pirate {
			mounted++
		}
	})
	if mounted != 1 {
		t.Errorf("pirate mounts = %d, want 1", mounted)
	}
}

func TestSpawnKind_EnemyScoreFallsBackToConfig(t *testing.T) {
	s := newTestState(t)
	s.EnsurePlayer()
	s.Cfg.Score.KillScore = 7

	listed := s.SpawnKind(s.Tables.Kinds.Get("pirate"), vmath.V(200, 900))
	if e, _ := s.Enemies.Get(listed); e == nil || e.Score != 10 {
		t.Errorf("pirate enemy = %+v, want score 10 from its kind", e)
	}

	unscored := *s.Tables.Kinds.Get("pirate")
	unscored.Score = 0
	h := s.SpawnKind(&unscored, vmath.V(300, 900))
	if e, _ := s.Enemies.Get(h); e == nil || e.Score != 7 {
		t.Errorf("unscored enemy = %+v, want config kill score 7", e)
	}
}

func TestDespawn_RemovesMountedChildren(t *testing.T) {
	s := newTestState(t)
	s.EnsurePlayer()
	pirate := s.SpawnKind(s.Tables.Kinds.Get("pirate"), vmath.V(200, 900))
	before := s.ECS.Live()
	s.Despawn(pirate)
	if n := s.ECS.FlushDestroyQueue(); n != 2 {
		t.Errorf("removed %d, want pirate and its cannon", n)
	}
	if s.ECS.Live() != before-2 {
		t.Errorf("Live = %d, want %d", s.ECS.Live(), before-2)
	}
	if left := s.ECS.Registry().Holding(pirate); len(left) != 0 {
		t.Errorf("despawned pirate still holds %v", left)
	}

	p := s.MustPlayer()
	s.Despawn(p)
	if s.ECS.FlushDestroyQueue() != 0 {
		t.Error("player despawned")
	}
}

func TestSetParent_RefusesCycles(t *testing.T) {
	s := newTestState(t)
	p := s.EnsurePlayer()
	c, _ := s.PlayerCannon()
	if err := s.SetParent(p, c, vmath.V(0, 1)); !errors.Is(err, ErrMountCycle) {
		t.Errorf("mount player on its own cannon: err = %v, want ErrMountCycle", err)
	}
	if err := s.SetParent(p, p, vmath.Vec2{}); !errors.Is(err, ErrMountCycle) {
		t.Errorf("self mount: err = %v, want ErrMountCycle", err)
	}
}

func TestWorldTransform_RotatesOffset(t *testing.T) {
	s := newTestState(t)
	p := s.EnsurePlayer()
	c, _ := s.PlayerCannon()
	tr, _ := s.Transforms.Get(p)
	tr.Rotation = 0 // heading +x
	pos, _, _ := s.WorldTransform(c)
	if !near(pos, vmath.V(256+8, 288)) {
		t.Errorf("cannon at %v, want offset turned to +x", pos)
	}

	rock := s.SpawnKind(s.Tables.Kinds.Get("rock1"), vmath.V(1, 1))
	s.Despawn(rock)
	s.ECS.FlushDestroyQueue()
	if _, _, ok := s.WorldTransform(rock); ok {
		t.Error("stale handle resolved")
	}
}
