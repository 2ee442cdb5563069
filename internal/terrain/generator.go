// Package terrain tracks how far each terrain layer has been generated ahead
// of the camera and where the tiles of a new row go.
package terrain

import "github.com/broadside/sim/internal/component"

// Frontiers are the y coordinates of the last generated row per layer.
type Frontiers struct {
	Water  float64
	Border float64
	Land   float64
}

// Generator advances the three frontiers one row at a time. Frontiers only
// ever move forward; Reset is the one way back.
type Generator struct {
	tile  float64
	ahead float64
	f     Frontiers
}

// NewGenerator keeps terrain generated up to ahead units past the camera.
// The first row of every layer lands at y = tile/2.
func NewGenerator(tile, ahead float64) *Generator {
	g := &Generator{tile: tile, ahead: ahead}
	g.Reset()
	return g
}

func (g *Generator) Reset() {
	start := -g.tile / 2
	g.f = Frontiers{Water: start, Border: start, Land: start}
}

func (g *Generator) Frontiers() Frontiers { return g.f }

// AdvanceWater places the next water row if the frontier has not yet passed
// cameraY+ahead. It returns the row's y and whether a row was placed.
func (g *Generator) AdvanceWater(cameraY float64) (float64, bool) {
	return g.advance(&g.f.Water, cameraY)
}

func (g *Generator) AdvanceBorder(cameraY float64) (float64, bool) {
	return g.advance(&g.f.Border, cameraY)
}

func (g *Generator) AdvanceLand(cameraY float64) (float64, bool) {
	return g.advance(&g.f.Land, cameraY)
}

// Advance dispatches on layer.
func (g *Generator) Advance(layer component.TileLayer, cameraY float64) (float64, bool) {
	switch layer {
	case component.LayerWater:
		return g.AdvanceWater(cameraY)
	case component.LayerBorder:
		return g.AdvanceBorder(cameraY)
	default:
		return g.AdvanceLand(cameraY)
	}
}

func (g *Generator) advance(frontier *float64, cameraY float64) (float64, bool) {
	if *frontier > cameraY+g.ahead {
		return *frontier, false
	}
	*frontier += g.tile
	return *frontier, true
}

// Layout computes tile column centres for a field of the given width.
type Layout struct {
	Width       float64
	Tile        float64
	LandColumns int
}

// Water returns the centres of the water columns covering [0, Width).
func (l Layout) Water() []float64 {
	n := int(l.Width / l.Tile)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = l.Tile/2 + float64(i)*l.Tile
	}
	return xs
}

// Border returns the two edge columns just outside the field.
func (l Layout) Border() []float64 {
	return []float64{-l.Tile / 2, l.Width + l.Tile/2}
}

// Land returns LandColumns columns per side beyond the border, mirrored
// around the field centre.
func (l Layout) Land() []float64 {
	xs := make([]float64, 0, 2*l.LandColumns)
	for k := 1; k <= l.LandColumns; k++ {
		off := float64(k) * l.Tile
		xs = append(xs, -l.Tile/2-off, l.Width+l.Tile/2+off)
	}
	return xs
}

// Columns dispatches on layer.
func (l Layout) Columns(layer component.TileLayer) []float64 {
	switch layer {
	case component.LayerWater:
		return l.Water()
	case component.LayerBorder:
		return l.Border()
	default:
		return l.Land()
	}
}
