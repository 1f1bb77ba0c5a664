package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/core/ecs"
	coresys "github.com/curbrush/world/internal/core/system"
)

// cullSlack lets a vehicle drift a little past its spawn reach while the
// player closes in.
const cullSlack = 5.0

// Horizon reports how far ahead of the player chunks are generated.
// *stream.Streamer satisfies it.
type Horizon interface {
	RenderDistance() float64
}

// VehicleCullSystem owns every vehicle after the streamer hands it off.
// Vehicles drive at their own speed and are destroyed once they are too
// far behind or ahead of the player, independent of chunk lifetimes.
// The forward edge never falls inside the generation horizon, so a
// vehicle is not culled before the player could reach it.
// Phase 3 (Update).
type VehicleCullSystem struct {
	store  *component.Store
	player *PlayerState
	behind float64
	ahead  float64
	chunk  float64
	log    *zap.Logger

	horizon Horizon
	lead    float64 // furthest spawn offset ahead of a hazard slot

	tracked map[ecs.EntityID]int // vehicle -> spawning chunk
	culled  int
}

func NewVehicleCullSystem(cfg config.StreamConfig, store *component.Store, player *PlayerState, log *zap.Logger) *VehicleCullSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &VehicleCullSystem{
		store:   store,
		player:  player,
		behind:  cfg.VehicleCullBehind,
		ahead:   cfg.VehicleCullAhead,
		chunk:   cfg.ChunkLength,
		log:     log,
		tracked: make(map[ecs.EntityID]int),
	}
}

func (s *VehicleCullSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// FollowHorizon ties the forward cull edge to the live render distance.
// lead is the largest offset a vehicle may be spawned ahead of its slot.
func (s *VehicleCullSystem) FollowHorizon(h Horizon, lead float64) {
	s.horizon = h
	s.lead = lead
}

// AheadEdge returns the current forward cull distance from the player.
func (s *VehicleCullSystem) AheadEdge() float64 {
	if s.horizon == nil {
		return s.ahead
	}
	return max(s.ahead, s.horizon.RenderDistance()+s.chunk+s.lead+cullSlack)
}

// Track takes ownership of a freshly spawned vehicle.
func (s *VehicleCullSystem) Track(id ecs.EntityID, chunk int) {
	s.tracked[id] = chunk
}

func (s *VehicleCullSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	ahead := s.AheadEdge()
	for id := range s.tracked {
		if !s.store.Alive(id) {
			delete(s.tracked, id)
			continue
		}
		v, okV := s.store.Vehicles.Get(id)
		tr, okT := s.store.Transforms.Get(id)
		if !okV || !okT {
			continue
		}
		tr.Z += v.Direction * v.Speed * sec
		if tr.Z < s.player.Z-s.behind || tr.Z > s.player.Z+ahead {
			s.store.World.MarkForDestruction(id)
			delete(s.tracked, id)
			s.culled++
		}
	}
}

// Reset destroys every tracked vehicle immediately.
func (s *VehicleCullSystem) Reset() {
	for id := range s.tracked {
		s.store.Release(id)
	}
	clear(s.tracked)
	s.culled = 0
}

// Len returns the number of vehicles currently owned.
func (s *VehicleCullSystem) Len() int { return len(s.tracked) }

// Culled returns how many vehicles were culled since the last reset.
func (s *VehicleCullSystem) Culled() int { return s.culled }
