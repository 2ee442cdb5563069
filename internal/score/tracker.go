// Package score accumulates the progress of one run.
package score

import "time"

// Tracker holds elapsed time, kill score and distance for the current run.
// It only advances while the simulation is running.
type Tracker struct {
	elapsed  time.Duration
	kills    int
	distance float64
	scale    float64
}

// New builds a tracker that converts world units to meters at scale units
// per meter.
func New(scale float64) *Tracker {
	return &Tracker{scale: scale}
}

// Advance adds dt to the run time and recomputes distance from the player's
// offset along the scroll axis. Distance never goes below zero.
func (t *Tracker) Advance(dt time.Duration, playerY, originY float64) {
	t.elapsed += dt
	d := (playerY - originY) / t.scale
	if d < 0 {
		d = 0
	}
	t.distance = d
}

// AddKill credits points to the kill score.
func (t *Tracker) AddKill(points int) {
	t.kills += points
}

// Reset zeroes the run.
func (t *Tracker) Reset() {
	*t = Tracker{scale: t.scale}
}

func (t *Tracker) Elapsed() time.Duration { return t.elapsed }
func (t *Tracker) Score() int             { return t.kills }
func (t *Tracker) Distance() float64      { return t.distance }

// Snapshot is a read-only copy of a tracker.
type Snapshot struct {
	Elapsed  time.Duration
	Score    int
	Distance float64
}

func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{Elapsed: t.elapsed, Score: t.kills, Distance: t.distance}
}

// Display is the score shown to the player: kills plus one point per
// divisor meters travelled.
func (s Snapshot) Display(divisor int) int {
	if divisor <= 0 {
		return s.Score
	}
	return s.Score + int(s.Distance)/divisor
}
