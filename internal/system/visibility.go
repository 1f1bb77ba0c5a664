package system

import (
	"math"
	"time"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/core/ecs"
	coresys "github.com/curbrush/world/internal/core/system"
)

// lodInterval is the number of ticks between LOD passes.
const lodInterval = 2

// LODSystem flips buildings between their detailed and simplified
// silhouettes by distance to the player. Phase 4 (PostUpdate), every
// lodInterval ticks.
type LODSystem struct {
	store  *component.Store
	player *PlayerState
	ticks  int
	swaps  int
}

func NewLODSystem(store *component.Store, player *PlayerState) *LODSystem {
	return &LODSystem{store: store, player: player}
}

func (s *LODSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LODSystem) Update(_ time.Duration) {
	s.ticks++
	if s.ticks < lodInterval {
		return
	}
	s.ticks = 0
	s.refresh()
}

func (s *LODSystem) refresh() {
	ecs.Each2(s.store.LODs, s.store.Transforms, func(_ ecs.EntityID, lod *component.LOD, tr *component.Transform) {
		far := math.Abs(tr.Z-s.player.Z) > lod.SwapDistance
		if far != lod.UseSimplified {
			lod.UseSimplified = far
			s.swaps++
		}
	})
}

// Swaps returns how many silhouette changes were applied so far.
func (s *LODSystem) Swaps() int { return s.swaps }
