package system

import (
	"time"

	coresys "github.com/curbrush/world/internal/core/system"
	"github.com/curbrush/world/internal/stream"
)

// StreamSystem moves the chunk window to the player. Phase 2 (Stream).
type StreamSystem struct {
	player   *PlayerState
	streamer *stream.Streamer
}

func NewStreamSystem(player *PlayerState, streamer *stream.Streamer) *StreamSystem {
	return &StreamSystem{player: player, streamer: streamer}
}

func (s *StreamSystem) Phase() coresys.Phase { return coresys.PhaseStream }

func (s *StreamSystem) Update(_ time.Duration) {
	s.streamer.Advance(s.player.Z, s.player.Distance)
}
