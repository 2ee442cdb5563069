// Package motion holds the steering, aiming and integration math shared by
// the movement systems. Everything here is a pure function of its inputs.
package motion

import (
	"math"

	"github.com/broadside/sim/internal/vmath"
)

// Steer nudges a heading toward intent and re-normalizes it, so a ship turns
// over several ticks instead of snapping. A zero result keeps the old heading.
func Steer(dir, intent vmath.Vec2, rate, dt float64) vmath.Vec2 {
	next := dir.Add(intent.Scale(rate * dt)).Normalize()
	if next.IsZero() {
		return dir
	}
	return next
}

// TurnToward rotates current toward target by at most maxTurn radians,
// taking whichever way round is shorter. The result is wrapped to (-pi, pi].
func TurnToward(current, target, maxTurn float64) float64 {
	delta := vmath.AngleDelta(current, target)
	if math.Abs(delta) <= maxTurn {
		return vmath.WrapAngle(current + delta)
	}
	if delta < 0 {
		return vmath.WrapAngle(current - maxTurn)
	}
	return vmath.WrapAngle(current + maxTurn)
}

// Bearing is the angle of the line from -> to.
func Bearing(from, to vmath.Vec2) float64 {
	return to.Sub(from).Angle()
}

// Aimed reports whether heading is within tolerance of target.
func Aimed(heading, target, tolerance float64) bool {
	return math.Abs(vmath.AngleDelta(heading, target)) <= tolerance
}

// Integrate advances pos by dir*speed*dt.
func Integrate(pos, dir vmath.Vec2, speed, dt float64) vmath.Vec2 {
	return pos.Add(dir.Scale(speed * dt))
}
