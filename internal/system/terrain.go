package system

import (
	"time"

	"github.com/broadside/sim/internal/component"
	coresys "github.com/broadside/sim/internal/core/system"
	"github.com/broadside/sim/internal/terrain"
	"github.com/broadside/sim/internal/world"
)

var layers = []component.TileLayer{component.LayerWater, component.LayerBorder, component.LayerLand}

// TerrainSystem extends each terrain layer by at most one row per tick.
// Phase 2 (Terrain).
type TerrainSystem struct {
	world  *world.State
	gen    *terrain.Generator
	layout terrain.Layout
}

func NewTerrainSystem(ws *world.State, gen *terrain.Generator) *TerrainSystem {
	return &TerrainSystem{
		world: ws,
		gen:   gen,
		layout: terrain.Layout{
			Width:       ws.Cfg.Field.Width,
			Tile:        ws.Cfg.Field.TileSize,
			LandColumns: ws.Tables.Terrain.LandColumns,
		},
	}
}

func (s *TerrainSystem) Phase() coresys.Phase { return coresys.PhaseTerrain }

func (s *TerrainSystem) Update(_ time.Duration) {
	for _, l := range layers {
		s.Step(l)
	}
}

// Step places the next row of one layer if it is due. Returns whether a row
// was placed.
func (s *TerrainSystem) Step(layer component.TileLayer) bool {
	y, ok := s.gen.Advance(layer, s.world.Camera.Y)
	if !ok {
		return false
	}
	pal := s.world.Tables.Terrain
	for _, x := range s.layout.Columns(layer) {
		var sprite string
		switch layer {
		case component.LayerWater:
			sprite = pal.PickWater(s.world.Rng)
		case component.LayerBorder:
			sprite = pal.PickBorder(s.world.Rng)
		default:
			sprite = pal.PickLand(s.world.Rng)
		}
		s.world.SpawnTile(layer, x, y, sprite)
	}
	return true
}

// Fill generates rows until every layer has caught up with the camera.
func (s *TerrainSystem) Fill() int {
	rows := 0
	for _, l := range layers {
		for s.Step(l) {
			rows++
		}
	}
	return rows
}
