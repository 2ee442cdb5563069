// Package timer provides the countdown and repeating timers that drive every
// spawn cadence and cooldown in the simulation.
package timer

import (
	"fmt"
	"math/rand"
	"time"
)

type Mode int

const (
	Repeating Mode = iota
	Once
)

// Timer accumulates elapsed time against a duration. A repeating timer wraps
// on firing and keeps the remainder; a one-shot timer fires once and stays
// finished until Reset.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     Mode
	finished bool
	fired    bool
}

func New(d time.Duration, mode Mode) Timer {
	return Timer{duration: d, mode: mode}
}

func NewRepeating(d time.Duration) Timer { return New(d, Repeating) }
func NewOnce(d time.Duration) Timer      { return New(d, Once) }

// Tick advances the timer and reports whether it fired. A timer fires at most
// once per call regardless of how large dt is.
func (t *Timer) Tick(dt time.Duration) bool {
	t.fired = false
	if t.mode == Once && t.finished {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.duration {
		return false
	}
	t.fired = true
	if t.mode == Once {
		t.elapsed = t.duration
		t.finished = true
		return true
	}
	if t.duration > 0 {
		t.elapsed %= t.duration
	} else {
		t.elapsed = 0
	}
	return true
}

// JustFired reports whether the last Tick fired.
func (t *Timer) JustFired() bool { return t.fired }

// Finished is true for a one-shot timer that has fired.
func (t *Timer) Finished() bool { return t.finished }

// Ready reports whether a one-shot timer has run its course. Used for
// cooldowns that are restarted by hand.
func (t *Timer) Ready() bool { return t.elapsed >= t.duration }

func (t *Timer) Duration() time.Duration { return t.duration }
func (t *Timer) Elapsed() time.Duration  { return t.elapsed }
func (t *Timer) Mode() Mode              { return t.mode }

// SetDuration changes the duration without touching the elapsed time. A
// finished one-shot whose new duration lies beyond the elapsed time runs
// again.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
	if t.mode == Once && t.elapsed < d {
		t.finished = false
	}
}

// Expire runs the timer to the end without firing it, so a cooldown starts
// out ready.
func (t *Timer) Expire() {
	t.elapsed = t.duration
	t.finished = t.mode == Once
	t.fired = false
}

// Reset rewinds the timer to zero elapsed.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.fired = false
}

// Range is a half-open duration interval [Min, Max).
type Range struct {
	Min, Max time.Duration
}

func (r Range) Validate() error {
	if r.Min <= 0 || r.Max <= r.Min {
		return fmt.Errorf("duration range %s..%s is empty or inverted", r.Min, r.Max)
	}
	return nil
}

// Roll draws a duration uniformly from the range, at millisecond resolution.
func (r Range) Roll(rng *rand.Rand) time.Duration {
	lo, hi := r.Min.Milliseconds(), r.Max.Milliseconds()
	if hi <= lo {
		return r.Min
	}
	return time.Duration(lo+rng.Int63n(hi-lo)) * time.Millisecond
}
