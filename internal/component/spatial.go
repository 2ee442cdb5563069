package component

import (
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/vmath"
)

// Transform is an entity's placement. For mounted entities (Parent set) Pos
// and Rotation are derived from the parent each tick; Local holds the mount
// offset in the parent's frame.
type Transform struct {
	Pos      vmath.Vec2
	Rotation float64 // radians around z
	Parent   ecs.Handle
	Local    vmath.Vec2
}

// Mounted reports whether the transform is relative to a parent.
func (t *Transform) Mounted() bool { return !t.Parent.IsNone() }

// Movement translates an entity by Dir*Speed every tick.
type Movement struct {
	Dir   vmath.Vec2 // normalized
	Speed float64
}

// Sprite is the symbolic render state. Variant distinguishes wreck and
// damage-tier states of the same sprite.
type Sprite struct {
	Name    string
	Variant string
}

const (
	VariantNormal   = ""
	VariantWreck    = "wreck"
	VariantDamaged  = "damaged"
	VariantCritical = "critical"
)
