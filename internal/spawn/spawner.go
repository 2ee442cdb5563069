// Package spawn owns the per-category spawn timer pools and turns fired
// timers into new entities just ahead of the camera.
package spawn

import (
	"time"

	"go.uber.org/zap"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/config"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/timer"
	"github.com/broadside/sim/internal/vmath"
	"github.com/broadside/sim/internal/world"
)

// Categories lists the spawn categories in the order they are ticked.
var Categories = []component.Category{
	component.CategorySideCannon,
	component.CategoryPirate,
	component.CategoryObstacle,
	component.CategoryBarrel,
}

type category struct {
	name component.Category
	pool *timer.Pool
	grow time.Duration // duration of timers added by Grow
}

// Spawner drives one timer pool per category. Each fired timer spawns one
// entity and draws its own next duration from the category's range.
type Spawner struct {
	st   *world.State
	cats []*category
	log  *zap.Logger
}

func New(st *world.State, cfg config.SpawnConfig, log *zap.Logger) *Spawner {
	pools := map[component.Category]config.PoolConfig{
		component.CategorySideCannon: cfg.SideCannon,
		component.CategoryPirate:     cfg.Pirate,
		component.CategoryObstacle:   cfg.Obstacle,
		component.CategoryBarrel:     cfg.Barrel,
	}
	s := &Spawner{st: st, log: log}
	for _, name := range Categories {
		pc := pools[name]
		s.cats = append(s.cats, &category{
			name: name,
			pool: timer.NewPool(pc.Initial, timer.Range{Min: pc.RerollMin, Max: pc.RerollMax}),
			grow: pc.Initial[0],
		})
	}
	return s
}

// Tick advances every pool and spawns one entity per fired timer. Returns
// the handles spawned this tick in category order.
func (s *Spawner) Tick(dt time.Duration) []ecs.Handle {
	var out []ecs.Handle
	for _, c := range s.cats {
		n := c.pool.Tick(dt, s.st.Rng)
		for i := 0; i < n; i++ {
			if h, ok := s.Spawn(c.name); ok {
				out = append(out, h)
			}
		}
	}
	return out
}

// Spawn places one entity of the category at its spawn position. The kind
// is picked uniformly from the category's palette.
func (s *Spawner) Spawn(cat component.Category) (ecs.Handle, bool) {
	kind, err := s.st.Tables.Kinds.Pick(cat, s.st.Rng)
	if err != nil {
		s.log.Warn("spawn skipped", zap.Error(err))
		return ecs.None, false
	}
	return s.st.SpawnKind(kind, s.Placement(cat)), true
}

// Placement returns where the next entity of cat appears: spawn_ahead past
// the camera, on a field edge for side cannons and at a random x inside the
// margins for everything else.
func (s *Spawner) Placement(cat component.Category) vmath.Vec2 {
	f := s.st.Cfg.Field
	y := s.st.Camera.Y + f.SpawnAhead
	if cat == component.CategorySideCannon {
		if s.st.Rng.Intn(2) == 0 {
			return vmath.V(0, y)
		}
		return vmath.V(f.Width, y)
	}
	lo, hi := f.SpawnMargin, f.Width-f.SpawnMargin
	return vmath.V(lo+s.st.Rng.Float64()*(hi-lo), y)
}

// Grow appends the tier's extra timers. Existing timers are left alone.
// Returns the number of timers added.
func (s *Spawner) Grow(g config.TierGrowth) int {
	counts := map[component.Category]int{
		component.CategorySideCannon: g.SideCannon,
		component.CategoryPirate:     g.Pirate,
		component.CategoryObstacle:   g.Obstacle,
		component.CategoryBarrel:     g.Barrel,
	}
	added := 0
	for _, c := range s.cats {
		n := counts[c.name]
		if n <= 0 {
			continue
		}
		c.pool.Grow(n, c.grow)
		added += n
		s.log.Info("spawn pool grown", zap.String("category", string(c.name)), zap.Int("timers", c.pool.Len()))
	}
	return added
}

// Reset restores every pool to its configured initial timers.
func (s *Spawner) Reset() {
	for _, c := range s.cats {
		c.pool.Reset()
	}
}

// Pool exposes a category's timer pool, or nil.
func (s *Spawner) Pool(cat component.Category) *timer.Pool {
	for _, c := range s.cats {
		if c.name == cat {
			return c.pool
		}
	}
	return nil
}

// Timers returns the total number of spawn timers across all categories.
func (s *Spawner) Timers() int {
	n := 0
	for _, c := range s.cats {
		n += c.pool.Len()
	}
	return n
}
