package system

import (
	"time"

	coresys "github.com/curbrush/world/internal/core/system"
	"github.com/curbrush/world/internal/difficulty"
)

// PlayerState is the rider's progress as seen by the world. Z is the
// forward position, Distance the total distance travelled this run. The
// balance physics that normally drives them lives outside this module.
type PlayerState struct {
	Z        float64
	Distance float64
	Speed    float64 // forward speed in units per second
	Elapsed  time.Duration
}

// InputSystem advances the player at its current speed and runs the
// hardcore clock. Phase 0 (Input).
type InputSystem struct {
	player *PlayerState
	model  *difficulty.Model
}

func NewInputSystem(player *PlayerState, model *difficulty.Model) *InputSystem {
	return &InputSystem{player: player, model: model}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(dt time.Duration) {
	step := s.player.Speed * dt.Seconds()
	if step > 0 {
		s.player.Z += step
		s.player.Distance += step
	}
	s.player.Elapsed += dt
	if s.model.Mode() == difficulty.ModeHardcore {
		s.model.SetElapsedHardcore(s.model.ElapsedHardcore() + dt)
	}
}
