package spawn

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/config"
	"github.com/broadside/sim/internal/core/event"
	"github.com/broadside/sim/internal/data"
	"github.com/broadside/sim/internal/world"
)

func newSpawner(t *testing.T) (*Spawner, *world.State) {
	t.Helper()
	cfg := config.Default()
	st := world.NewState(cfg, data.MustDefaults(), rand.New(rand.NewSource(7)), event.NewBus(), zap.NewNop())
	st.EnsurePlayer()
	return New(st, cfg.Spawn, zap.NewNop()), st
}

func TestTick_ObstacleCadence(t *testing.T) {
	sp, st := newSpawner(t)
	got := sp.Tick(2 * time.Second)
	if len(got) != 1 {
		t.Fatalf("spawned %d at 2s, want 1 obstacle", len(got))
	}
	k, _ := st.Kinds.Get(got[0])
	if k.Category != component.CategoryObstacle {
		t.Errorf("spawned %s, want obstacle", k.Category)
	}
	tr, _ := st.Transforms.Get(got[0])
	if tr.Pos.Y != st.Camera.Y+600 {
		t.Errorf("spawn y = %v, want camera+600", tr.Pos.Y)
	}
	if tr.Pos.X < 30 || tr.Pos.X >= 482 {
		t.Errorf("spawn x = %v outside margins", tr.Pos.X)
	}
	d := sp.Pool(component.CategoryObstacle).Durations()
	if d[0] < 3500*time.Millisecond || d[0] >= 6*time.Second {
		t.Errorf("fired timer re-rolled to %s, want [3.5s, 6s)", d[0])
	}
	if d[1] != 4*time.Second {
		t.Errorf("idle timer changed to %s", d[1])
	}
}

func TestPlacement_SideCannonOnEdges(t *testing.T) {
	sp, _ := newSpawner(t)
	sides := map[float64]int{}
	for i := 0; i < 100; i++ {
		sides[sp.Placement(component.CategorySideCannon).X]++
	}
	if len(sides) != 2 || sides[0] == 0 || sides[512] == 0 {
		t.Errorf("side cannon x positions = %v, want both 0 and 512", sides)
	}
}

func TestGrow_AppendsOnly(t *testing.T) {
	sp, _ := newSpawner(t)
	pirate := sp.Pool(component.CategoryPirate)
	pirate.Tick(3*time.Second, rand.New(rand.NewSource(1)))
	before := pirate.Durations()

	added := sp.Grow(config.TierGrowth{Pirate: 2, SideCannon: 1})
	if added != 3 {
		t.Errorf("added = %d, want 3", added)
	}
	after := pirate.Durations()
	if len(after) != len(before)+2 {
		t.Fatalf("pirate timers = %d, want %d", len(after), len(before)+2)
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("existing timer %d changed: %s -> %s", i, before[i], after[i])
		}
	}
	if sp.Pool(component.CategorySideCannon).Len() != 2 {
		t.Errorf("side cannon timers = %d, want 2", sp.Pool(component.CategorySideCannon).Len())
	}

	sp.Reset()
	if sp.Timers() != 5 {
		t.Errorf("Timers after Reset = %d, want 5", sp.Timers())
	}
}

func TestTick_BarrelAfter15s(t *testing.T) {
	sp, st := newSpawner(t)
	var barrels int
	for i := 0; i < 15; i++ {
		for _, h := range sp.Tick(time.Second) {
			if k, _ := st.Kinds.Get(h); k.Category == component.CategoryBarrel {
				barrels++
			}
		}
	}
	if barrels != 1 {
		t.Errorf("barrels after 15s = %d, want 1", barrels)
	}
}
