package system

import (
	"fmt"
	"time"
)

// Runner executes systems in phase order each tick. Each phase keeps its
// systems in registration order.
type Runner struct {
	phases [phaseCount][]System
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds a system to its phase. Systems reporting a phase outside
// the known range are a wiring bug and panic.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system %T registered with unknown phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
}

func (r *Runner) Tick(dt time.Duration) {
	for _, systems := range r.phases {
		for _, s := range systems {
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

// Count returns how many systems run in phase.
func (r *Runner) Count(phase Phase) int {
	if phase < 0 || phase >= phaseCount {
		return 0
	}
	return len(r.phases[phase])
}

func (r *Runner) Len() int {
	n := 0
	for _, systems := range r.phases {
		n += len(systems)
	}
	return n
}
