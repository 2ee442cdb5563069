package sim

import (
	"time"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
)

// HUD is the read-only snapshot the UI shows every frame.
type HUD struct {
	Score          int           `json:"score"` // kills plus one point per distance divisor meters
	Kills          int           `json:"kills"`
	Distance       float64       `json:"distance"` // meters
	Elapsed        time.Duration `json:"elapsed_ns"`
	Health         float64       `json:"health"` // amount/max in [0, 1]
	HealthAmount   int           `json:"health_amount"`
	HealthMax      int           `json:"health_max"`
	ActivePowerUps int           `json:"active_power_ups"`
	Tier           string        `json:"tier"`
	State          string        `json:"state"`
}

// HUD returns the current HUD snapshot. Before the first Begin there is no
// player and the health fields are zero.
func (s *Session) HUD() HUD {
	snap := s.tracker.Snapshot()
	h := HUD{
		Score:          snap.Display(s.cfg.Difficulty.DistanceDivisor),
		Kills:          snap.Score,
		Distance:       snap.Distance,
		Elapsed:        snap.Elapsed,
		ActivePowerUps: s.effects.Active(),
		Tier:           s.diff.Tier().String(),
		State:          s.state.String(),
	}
	if p, ok := s.world.Player(); ok {
		if hp, ok := s.world.Healths.Get(p); ok {
			h.Health = hp.Fraction()
			h.HealthAmount = hp.Amount
			h.HealthMax = hp.Max
		}
	}
	return h
}

// RenderItem is one live entity as the renderer sees it.
type RenderItem struct {
	ID       uint64  `json:"id"`
	Sprite   string  `json:"sprite"`
	Variant  string  `json:"variant,omitempty"`
	Category string  `json:"category"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Frame is everything an external renderer needs for one tick.
type Frame struct {
	Tick    uint64       `json:"tick"`
	CameraX float64      `json:"camera_x"`
	CameraY float64      `json:"camera_y"`
	Items   []RenderItem `json:"items"`
	HUD     HUD          `json:"hud"`
}

// RenderFeed lists every live entity with a sprite, in spawn order.
// Entities already queued for removal are left out.
func (s *Session) RenderFeed() []RenderItem {
	ws := s.world
	items := make([]RenderItem, 0, ws.Sprites.Len())
	ws.Sprites.Each(func(h ecs.Handle, sp *component.Sprite) {
		if ws.Removing(h) {
			return
		}
		pos, rot, ok := ws.WorldTransform(h)
		if !ok {
			return
		}
		item := RenderItem{
			ID:       uint64(h),
			Sprite:   sp.Name,
			Variant:  sp.Variant,
			X:        pos.X,
			Y:        pos.Y,
			Rotation: rot,
		}
		if k, ok := ws.Kinds.Get(h); ok {
			item.Category = string(k.Category)
		}
		items = append(items, item)
	})
	return items
}

// Frame bundles the render feed, camera and HUD.
func (s *Session) Frame() Frame {
	return Frame{
		Tick:    s.tick,
		CameraX: s.world.Camera.X,
		CameraY: s.world.Camera.Y,
		Items:   s.RenderFeed(),
		HUD:     s.HUD(),
	}
}
