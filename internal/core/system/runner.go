package system

import (
	"fmt"
	"time"
)

// Resetter is implemented by systems that keep per-run state.
type Resetter interface {
	Reset()
}

// Runner executes systems phase by phase each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	phases [phaseCount][]System
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds s to the bucket of its phase. A system reporting an unknown
// phase is a wiring bug and panics.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system: %T registered in unknown phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
}

func (r *Runner) Tick(dt time.Duration) {
	for p := range r.phases {
		for _, s := range r.phases[p] {
			s.Update(dt)
		}
	}
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if phase < 0 || phase >= phaseCount {
		return
	}
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}

// Len is the number of registered systems.
func (r *Runner) Len() int {
	n := 0
	for p := range r.phases {
		n += len(r.phases[p])
	}
	return n
}

// Reset clears the per-run state of every Resetter, in tick order, and
// returns how many were reset.
func (r *Runner) Reset() int {
	n := 0
	for p := range r.phases {
		for _, s := range r.phases[p] {
			if rs, ok := s.(Resetter); ok {
				rs.Reset()
				n++
			}
		}
	}
	return n
}
