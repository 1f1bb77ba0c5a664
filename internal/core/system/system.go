package system

import "time"

// Phase defines execution ordering within a single simulation tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: player position for this tick
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseStream                  // 2: chunk window advance, generation, despawn
	PhaseUpdate                  // 3: actor integration, lifetimes
	PhasePostUpdate              // 4: visibility culling
	PhaseCleanup                 // 5: destroy queued entities
	phaseCount
)

var phaseNames = [phaseCount]string{"input", "pre_update", "stream", "update", "post_update", "cleanup"}

func (p Phase) String() string {
	if p >= 0 && p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
