// Package stream keeps a sliding window of street chunks alive around the
// player: it generates chunks entering the window and releases every entity
// owned by chunks that fall behind.
package stream

import (
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/core/ecs"
	"github.com/curbrush/world/internal/core/event"
	"github.com/curbrush/world/internal/difficulty"
	"github.com/curbrush/world/internal/worldgen"
)

// Generator produces the content of one chunk. *worldgen.Generator
// satisfies it.
type Generator interface {
	Generate(index int, p difficulty.Params) worldgen.Result
	Reset()
}

// VehicleTracker takes ownership of vehicles at spawn time. The streamer
// never releases a vehicle.
type VehicleTracker interface {
	Track(id ecs.EntityID, chunk int)
}

// chunk is the streamer's record of one active chunk.
type chunk struct {
	index       int
	owned       []ecs.EntityID
	hasCrossing bool
	crossingZ   float64
}

// Streamer is the chunk streamer. It is driven once per tick from the
// stream phase and is not safe for concurrent use.
type Streamer struct {
	cfg      config.StreamConfig
	gen      Generator
	store    *component.Store
	model    *difficulty.Model
	vehicles VehicleTracker
	bus      *event.Bus
	log      *zap.Logger

	active map[int]*chunk
}

// New creates a streamer. bus may be nil; vehicles must not be.
func New(cfg config.StreamConfig, gen Generator, store *component.Store, model *difficulty.Model,
	vehicles VehicleTracker, bus *event.Bus, log *zap.Logger) *Streamer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Streamer{
		cfg:      cfg,
		gen:      gen,
		store:    store,
		model:    model,
		vehicles: vehicles,
		bus:      bus,
		log:      log,
		active:   make(map[int]*chunk),
	}
}

func (s *Streamer) chunkOf(z float64) int {
	return int(math.Floor(z / s.cfg.ChunkLength))
}

// despawnThreshold is the lowest chunk index allowed to stay active.
func (s *Streamer) despawnThreshold(playerZ float64) int {
	return s.chunkOf(playerZ+s.cfg.DespawnDistance) - 1
}

// Window returns the inclusive index range kept active for playerZ.
func (s *Streamer) Window(playerZ float64) (first, last int) {
	first = s.chunkOf(playerZ - s.cfg.TrailingMargin)
	if thr := s.despawnThreshold(playerZ); thr > first {
		first = thr
	}
	return first, s.chunkOf(playerZ + s.cfg.RenderDistance)
}

// Advance brings the active set in line with the player's position.
// Difficulty is sampled once per call from totalDistance. Calling Advance
// twice with the same position is a no-op.
func (s *Streamer) Advance(playerZ, totalDistance float64) {
	thr := s.despawnThreshold(playerZ)
	for idx, c := range s.active {
		if idx < thr {
			s.despawn(c)
		}
	}

	first, last := s.Window(playerZ)
	var (
		params    difficulty.Params
		haveParam bool
	)
	for idx := first; idx <= last; idx++ {
		if _, ok := s.active[idx]; ok {
			continue
		}
		if !haveParam {
			params = s.model.Params(totalDistance)
			haveParam = true
		}
		s.spawn(idx, params)
	}
}

func (s *Streamer) spawn(idx int, p difficulty.Params) {
	res := s.gen.Generate(idx, p)
	s.active[idx] = &chunk{
		index:       idx,
		owned:       res.Owned,
		hasCrossing: res.HasCrossing,
		crossingZ:   res.CrossingZ,
	}
	for _, id := range res.Vehicles {
		s.vehicles.Track(id, idx)
		event.Emit(s.bus, event.VehicleSpawned{EntityID: id, Chunk: idx})
	}
	event.Emit(s.bus, event.ChunkSpawned{
		Index:       idx,
		Entities:    len(res.Owned),
		HasCrossing: res.HasCrossing,
		CrossingZ:   res.CrossingZ,
	})
	s.log.Debug("chunk spawned",
		zap.Int("index", idx),
		zap.Int("entities", len(res.Owned)),
		zap.Int("vehicles", len(res.Vehicles)),
		zap.Float64("difficulty", p.Difficulty),
	)
}

// despawn releases every owned handle still alive and drops the record.
func (s *Streamer) despawn(c *chunk) {
	released := 0
	for _, id := range c.owned {
		if s.store.Release(id) {
			released++
		}
	}
	delete(s.active, c.index)
	event.Emit(s.bus, event.ChunkDespawned{Index: c.index, Released: released})
	s.log.Debug("chunk despawned", zap.Int("index", c.index), zap.Int("released", released))
}

// Reset tears down every active chunk and returns the generator's rarity
// trackers to their sentinels.
func (s *Streamer) Reset() {
	for _, c := range s.active {
		s.despawn(c)
	}
	s.gen.Reset()
}

// ActiveIndices returns the active chunk indices in ascending order.
func (s *Streamer) ActiveIndices() []int {
	out := make([]int, 0, len(s.active))
	for idx := range s.active {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// Active reports whether chunk idx is currently materialised.
func (s *Streamer) Active(idx int) bool {
	_, ok := s.active[idx]
	return ok
}

// Crossing returns the crossing of an active chunk, if it has one.
func (s *Streamer) Crossing(idx int) (z float64, ok bool) {
	c, found := s.active[idx]
	if !found || !c.hasCrossing {
		return 0, false
	}
	return c.crossingZ, true
}

func (s *Streamer) RenderDistance() float64 { return s.cfg.RenderDistance }

// SetRenderDistance changes how far ahead chunks are generated. Chunks
// already active beyond a shrunk distance stay until they fall behind.
func (s *Streamer) SetRenderDistance(d float64) {
	if d < 0 {
		d = 0
	}
	s.cfg.RenderDistance = d
}
