// Package worldgen synthesises the content of one street chunk: ground,
// buildings, scenery, skyline, sky decoration, actors and the hazard lane.
package worldgen

import (
	"math"

	"go.uber.org/zap"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/core/ecs"
	"github.com/curbrush/world/internal/data"
	"github.com/curbrush/world/internal/difficulty"
	"github.com/curbrush/world/internal/rarity"
)

// Rand is the pseudorandom source the generator draws from. *rand.Rand
// satisfies it; tests inject explicitly seeded sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Tables bundles the content pools.
type Tables struct {
	Buildings *data.BuildingTable
	Scenery   *data.SceneryTable
	Vehicles  *data.VehicleCatalog
}

// DefaultTables returns the built-in pools with the procedural vehicles.
func DefaultTables() Tables {
	return Tables{
		Buildings: data.DefaultBuildings(),
		Scenery:   data.DefaultScenery(),
		Vehicles:  data.ProceduralVehicles(),
	}
}

// Result is the outcome of generating one chunk. Owned lists every handle
// the chunk must release on teardown; Vehicles are handed off elsewhere and
// never appear in Owned.
type Result struct {
	Index       int
	Owned       []ecs.EntityID
	Vehicles    []ecs.EntityID
	HasCrossing bool
	CrossingZ   float64
}

// Stats counts what a generator produced since its last reset.
type Stats struct {
	Chunks             int
	Crossings          int
	PopulatedCrossings int
	ClustersStarted    int
	ClusterUnits       int // sum of initial remaining-counts of started clusters
	Skyscrapers        int
	Cranes             int
	Airplanes          int
	Flocks             int
	Pedestrians        int
	Vehicles           int
	Hazards            [4]int // indexed by component.HazardKind
}

// Generator is the content generator. It owns its rarity trackers; nothing
// else mutates them.
type Generator struct {
	stream config.StreamConfig
	rarity config.RarityConfig
	layout config.LayoutConfig
	tables Tables
	store  *component.Store
	rng    Rand
	track  *rarity.Trackers
	stats  Stats
	log    *zap.Logger
}

func New(cfg *config.Config, tables Tables, store *component.Store, rng Rand, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		stream: cfg.Stream,
		rarity: cfg.Rarity,
		layout: cfg.Layout,
		tables: tables,
		store:  store,
		rng:    rng,
		track:  rarity.New(),
		log:    log,
	}
}

// Trackers exposes the rarity state for inspection.
func (g *Generator) Trackers() *rarity.Trackers { return g.track }

func (g *Generator) Stats() Stats { return g.stats }

// Reset returns every tracker to its sentinel and clears the counters.
// Entities are not touched; the streamer releases them.
func (g *Generator) Reset() {
	g.track.Reset()
	g.stats = Stats{}
}

// build carries the state of one Generate call.
type build struct {
	index  int
	startZ float64
	endZ   float64
	params difficulty.Params
	res    *Result
}

// Generate synthesises the full content of chunk index.
func (g *Generator) Generate(index int, p difficulty.Params) Result {
	res := Result{Index: index}
	b := &build{
		index:  index,
		startZ: float64(index) * g.stream.ChunkLength,
		params: p,
		res:    &res,
	}
	b.endZ = b.startZ + g.stream.ChunkLength

	g.placeGround(b)
	g.decideCrossing(b)
	g.placeBuildings(b)
	g.placeScenery(b)
	g.placeLamps(b)
	g.placeClouds(b)
	g.placeBackground(b)
	g.placeFogWall(b)
	g.placeCrane(b)
	g.placeAirplane(b)

	g.spawnCrossingPedestrians(b)
	g.spawnSidewalkPedestrians(b)
	g.spawnPigeonFlock(b)
	if index > 0 {
		g.placeHazardLane(b)
	}

	g.stats.Chunks++
	return res
}

// place spawns a chunk-owned entity.
func (g *Generator) place(b *build, tag component.Tag, tr component.Transform) ecs.EntityID {
	tag.Chunk = b.index
	id := g.store.Spawn(tag, tr)
	b.res.Owned = append(b.res.Owned, id)
	return id
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// side returns -1 (left) or +1 (right).
func (g *Generator) side() float64 {
	if g.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) pickArchetype(pool []data.BuildingArchetype) *data.BuildingArchetype {
	return &pool[g.rng.Intn(len(pool))]
}

// alongZ converts a fraction of the chunk length into a Z coordinate.
func (b *build) alongZ(t float64) float64 {
	return b.startZ + (b.endZ-b.startZ)*t
}

func (b *build) nearCrossing(z, radius float64) bool {
	return b.res.HasCrossing && math.Abs(z-b.res.CrossingZ) < radius
}
