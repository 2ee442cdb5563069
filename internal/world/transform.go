package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/core/ecs"
	"github.com/broadside/sim/internal/vmath"
)

// ErrMountCycle is returned when a mount would make an entity its own
// ancestor.
var ErrMountCycle = errors.New("mount cycle")

// SetParent mounts child on parent at a local offset. The offset's +y axis
// points along the parent's heading. Mounts are one level deep: a parent may
// not itself be mounted on the child, and an entity cannot mount itself.
func (s *State) SetParent(child, parent ecs.Handle, local vmath.Vec2) error {
	ct, ok := s.Transforms.Get(child)
	if !ok {
		return fmt.Errorf("mount %d: child has no transform", child)
	}
	pt, ok := s.Transforms.Get(parent)
	if !ok {
		return fmt.Errorf("mount %d on %d: parent has no transform", child, parent)
	}
	if child == parent || pt.Parent == child {
		return fmt.Errorf("mount %d on %d: %w", child, parent, ErrMountCycle)
	}
	ct.Parent = parent
	ct.Local = local
	return nil
}

// WorldTransform resolves the effective position and rotation of h. A mounted
// entity sits at parent position + local offset rotated into the parent's
// frame and keeps its own rotation. Only one level is walked. A stale handle
// or a vanished parent reports false.
func (s *State) WorldTransform(h ecs.Handle) (vmath.Vec2, float64, bool) {
	t, ok := s.Transforms.Get(h)
	if !ok {
		return vmath.Vec2{}, 0, false
	}
	if !t.Mounted() {
		return t.Pos, t.Rotation, true
	}
	pt, ok := s.Transforms.Get(t.Parent)
	if !ok {
		return vmath.Vec2{}, 0, false
	}
	return mountPoint(pt, t.Local), t.Rotation, true
}

// ResolveMounts writes the world position of every mounted entity into its
// Pos so later passes can read positions directly.
func (s *State) ResolveMounts() {
	s.Transforms.Each(func(_ ecs.Handle, t *component.Transform) {
		if !t.Mounted() {
			return
		}
		if pt, ok := s.Transforms.Get(t.Parent); ok {
			t.Pos = mountPoint(pt, t.Local)
		}
	})
}

func mountPoint(parent *component.Transform, local vmath.Vec2) vmath.Vec2 {
	return parent.Pos.Add(local.Rotate(parent.Rotation - math.Pi/2))
}
