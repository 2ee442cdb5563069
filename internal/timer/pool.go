package timer

import (
	"math/rand"
	"time"
)

// Pool is an ordered list of independent repeating timers for one spawn
// category. Every timer that fires draws its own next duration from the
// pool's range. Grow appends timers; nothing ever removes one except Reset.
type Pool struct {
	timers   []Timer
	reroll   Range
	defaults []time.Duration
}

func NewPool(initial []time.Duration, reroll Range) *Pool {
	p := &Pool{
		reroll:   reroll,
		defaults: append([]time.Duration(nil), initial...),
	}
	p.Reset()
	return p
}

// Tick advances every timer and returns how many fired. Fired timers are
// re-rolled before Tick returns.
func (p *Pool) Tick(dt time.Duration, rng *rand.Rand) int {
	fired := 0
	for i := range p.timers {
		if p.timers[i].Tick(dt) {
			fired++
			p.Reroll(i, rng)
		}
	}
	return fired
}

// Reroll assigns timer i a fresh duration from the pool's range.
func (p *Pool) Reroll(i int, rng *rand.Rand) {
	p.timers[i].SetDuration(p.reroll.Roll(rng))
}

// Grow appends n repeating timers of duration d.
func (p *Pool) Grow(n int, d time.Duration) {
	for i := 0; i < n; i++ {
		p.timers = append(p.timers, NewRepeating(d))
	}
}

// Reset restores the pool to its initial timers.
func (p *Pool) Reset() {
	p.timers = p.timers[:0]
	for _, d := range p.defaults {
		p.timers = append(p.timers, NewRepeating(d))
	}
}

func (p *Pool) Len() int { return len(p.timers) }

func (p *Pool) Range() Range { return p.reroll }

// Durations returns the current duration of every timer, in pool order.
func (p *Pool) Durations() []time.Duration {
	out := make([]time.Duration, len(p.timers))
	for i := range p.timers {
		out[i] = p.timers[i].duration
	}
	return out
}

// OneShots holds one-shot timers that are dropped once they fire, such as
// power-up exhaustion timers.
type OneShots struct {
	timers []Timer
}

func (o *OneShots) Add(d time.Duration) {
	o.timers = append(o.timers, NewOnce(d))
}

// Tick advances all timers, removes the ones that fired and returns their count.
func (o *OneShots) Tick(dt time.Duration) int {
	fired := 0
	kept := o.timers[:0]
	for i := range o.timers {
		if o.timers[i].Tick(dt) {
			fired++
			continue
		}
		kept = append(kept, o.timers[i])
	}
	o.timers = kept
	return fired
}

func (o *OneShots) Len() int { return len(o.timers) }

func (o *OneShots) Clear() { o.timers = o.timers[:0] }
