package worldgen

import (
	"math"

	"go.uber.org/zap"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/data"
	"github.com/curbrush/world/internal/rarity"
)

const (
	crossingStripeDepth = 4.0
	buildingSetback     = 1.0 // nominal distance of a facade behind buildings.min
	buildingJitterIn    = 1.0
	buildingJitterOut   = 3.0
	buildingGapMin      = 1.0
	buildingGapMax      = 4.0
	gapTreeMinGap       = 2.5
	sceneryStrideMin    = 3.0
	sceneryStrideMax    = 7.0
	sceneryFootprint    = 0.8
	sceneryCrossingKeep = 3.0
	minSlotLength       = 1.0
	maxSlots            = 64 // hard cap per cursor walk
)

var sceneryKind = map[string]component.Kind{
	"tree":       component.KindTree,
	"bush":       component.KindBush,
	"bench":      component.KindBench,
	"trash_bin":  component.KindTrashBin,
	"flower_bed": component.KindFlowerBed,
}

func (g *Generator) placeGround(b *build) {
	l := g.layout
	midZ := b.alongZ(0.5)
	g.place(b, component.Tag{Kind: component.KindGround}, component.Transform{
		Z:     midZ,
		Width: 2 * l.SidewalkOuter(),
		Depth: b.endZ - b.startZ,
	})
	g.place(b, component.Tag{Kind: component.KindGrass}, component.Transform{
		Y:     -0.01,
		Z:     midZ,
		Width: 2 * l.Grass.Max,
		Depth: b.endZ - b.startZ,
	})
}

// decideCrossing places a zebra crossing on chunks past the start line when
// the minimum gap since the previous one has elapsed and a coin flip passes.
func (g *Generator) decideCrossing(b *build) {
	if b.index <= 0 || !rarity.GapElapsed(g.track.LastCrossing, b.index, g.rarity.MinCrossingGap) {
		return
	}
	if !g.chance(g.rarity.CrossingChance) {
		return
	}
	z := b.alongZ(g.between(0.3, 0.7))
	g.place(b, component.Tag{Kind: component.KindCrossing}, component.Transform{
		Y:     0.01,
		Z:     z,
		Width: 2 * g.layout.RoadHalfWidth,
		Depth: crossingStripeDepth,
	})
	b.res.HasCrossing = true
	b.res.CrossingZ = z
	g.track.LastCrossing = b.index
	g.stats.Crossings++
}

func (g *Generator) maybeStartCluster(b *build) {
	if g.track.ClusterActive() || !rarity.GapElapsed(g.track.LastCluster, b.index, g.rarity.MinSkyscraperGap) {
		return
	}
	if !g.chance(g.rarity.SkyscraperChance) {
		return
	}
	n := 2 + g.rng.Intn(2)
	g.track.StartCluster(b.index, n)
	g.stats.ClustersStarted++
	g.stats.ClusterUnits += n
	g.log.Debug("skyscraper cluster started", zap.Int("chunk", b.index), zap.Int("count", n))
}

// placeBuildings walks a cursor along the chunk in jittered strides and puts
// a building on each side of every slot, then fills wide gaps with trees.
func (g *Generator) placeBuildings(b *build) {
	g.maybeStartCluster(b)

	z := b.startZ + g.between(0, buildingGapMin)
	for slot := 0; slot < maxSlots; slot++ {
		left := g.chooseBuilding()
		right := g.chooseBuilding()
		frontL := left.arch.Width.At(g.rng.Float64())
		frontR := right.arch.Width.At(g.rng.Float64())
		slotLen := math.Max(math.Max(frontL, frontR), minSlotLength)
		if z+slotLen > b.endZ {
			g.refund(left)
			g.refund(right)
			break
		}
		g.placeBuilding(b, left, -1, z+slotLen/2, frontL)
		g.placeBuilding(b, right, 1, z+slotLen/2, frontR)

		gap := g.between(buildingGapMin, buildingGapMax)
		gapZ := z + slotLen + gap/2
		if gap >= gapTreeMinGap && gapZ < b.endZ && g.chance(g.rarity.TreeInGapChance) {
			g.placeGapTree(b, gapZ)
		}
		z += slotLen + gap
	}
}

type buildingChoice struct {
	arch *data.BuildingArchetype
	tall bool
}

// chooseBuilding draws from the skyscraper pool when an active cluster's
// per-slot roll consumes a unit, otherwise from the ordinary pool.
func (g *Generator) chooseBuilding() buildingChoice {
	if g.track.ClusterActive() && g.chance(g.rarity.SkyscraperSlotChance) {
		g.track.ConsumeCluster()
		return buildingChoice{arch: g.pickArchetype(g.tables.Buildings.Skyscrapers), tall: true}
	}
	return buildingChoice{arch: g.pickArchetype(g.tables.Buildings.Ordinary)}
}

// refund returns a skyscraper unit drawn for a slot that did not fit.
func (g *Generator) refund(c buildingChoice) {
	if c.tall {
		g.track.RefundCluster()
	}
}

func (g *Generator) placeBuilding(b *build, c buildingChoice, side, z, frontage float64) {
	band := g.layout.Buildings
	depth := math.Min(c.arch.Depth.At(g.rng.Float64()), band.Width())
	near := band.Min + buildingSetback + g.between(-buildingJitterIn, buildingJitterOut)
	near = math.Max(band.Min, math.Min(near, band.Max-depth))

	kind := component.KindBuilding
	swap := g.layout.LODSwapDistance
	if c.tall {
		kind = component.KindSkyscraper
		swap *= 2
		g.stats.Skyscrapers++
	}
	id := g.place(b, component.Tag{Kind: kind, Archetype: c.arch.Name, Collides: true}, component.Transform{
		X:      side * (near + depth/2),
		Z:      z,
		Width:  depth,
		Height: c.arch.Height.At(g.rng.Float64()),
		Depth:  frontage,
	})
	g.store.LODs.Set(id, &component.LOD{
		Detailed:     c.arch.Detailed,
		Simplified:   c.arch.Simplified,
		SwapDistance: swap,
	})
}

func (g *Generator) placeGapTree(b *build, z float64) {
	kind := component.KindTree
	arch := g.pick(g.tables.Scenery.GapTrees)
	height := g.between(5, 8)
	if rarity.GapElapsed(g.track.LastTallTree, b.index, g.rarity.MinTallTreeGap) && g.chance(g.rarity.TallTreeChance) {
		kind = component.KindTallTree
		arch = g.pick(g.tables.Scenery.TallTrees)
		height = g.between(14, 20)
		g.track.LastTallTree = b.index
	}
	g.place(b, component.Tag{Kind: kind, Archetype: arch, Collides: true}, component.Transform{
		X:      g.side() * (g.layout.Buildings.Min + buildingSetback),
		Z:      z,
		Width:  1.5,
		Height: height,
		Depth:  1.5,
	})
}

// placeScenery walks a second cursor through the grass band. Positions are
// clamped to the band so nothing reaches the building line.
func (g *Generator) placeScenery(b *build) {
	band := g.layout.Grass
	half := sceneryFootprint / 2
	z := b.startZ + g.between(1, 3)
	for slot := 0; slot < maxSlots && z < b.endZ-half; slot++ {
		side := g.side()
		lateral := g.between(band.Min+half, band.Max-half)
		item := g.tables.Scenery.Pick(g.rng.Float64())
		arch := g.pick(item.Archetypes)
		if !b.nearCrossing(z, sceneryCrossingKeep) {
			kind := sceneryKind[item.Kind]
			g.place(b, component.Tag{Kind: kind, Archetype: arch, Collides: kind != component.KindFlowerBed}, component.Transform{
				X:      side * lateral,
				Z:      z,
				Yaw:    g.between(0, 2*math.Pi),
				Width:  sceneryFootprint,
				Height: sceneryHeight(kind),
				Depth:  sceneryFootprint,
			})
		}
		z += g.between(sceneryStrideMin, sceneryStrideMax)
	}
}

func sceneryHeight(k component.Kind) float64 {
	switch k {
	case component.KindTree:
		return 6
	case component.KindBush:
		return 1.2
	case component.KindBench:
		return 0.9
	case component.KindTrashBin:
		return 1.0
	}
	return 0.3
}

// LampPattern is the per-chunk street lighting choice.
type LampPattern uint8

const (
	LampsNone LampPattern = iota
	LampsLeft
	LampsRight
	LampsBoth
)

func (g *Generator) rollLampPattern() LampPattern {
	r := g.rng.Float64()
	switch {
	case r < 0.15:
		return LampsNone
	case r < 0.4:
		return LampsLeft
	case r < 0.65:
		return LampsRight
	}
	return LampsBoth
}

func (g *Generator) placeLamps(b *build) {
	var sides []float64
	switch g.rollLampPattern() {
	case LampsLeft:
		sides = []float64{-1}
	case LampsRight:
		sides = []float64{1}
	case LampsBoth:
		sides = []float64{-1, 1}
	}
	if len(sides) == 0 || g.layout.LampSpacing <= 0 {
		return
	}
	arch := g.pick(g.tables.Scenery.Lamps)
	for z := b.startZ + g.layout.LampSpacing/2; z < b.endZ; z += g.layout.LampSpacing {
		for _, s := range sides {
			g.place(b, component.Tag{Kind: component.KindLampPost, Archetype: arch, Collides: true}, component.Transform{
				X:      s * (g.layout.RoadHalfWidth + 0.5),
				Z:      z,
				Yaw:    -s * math.Pi / 2,
				Width:  0.3,
				Height: 6,
				Depth:  0.3,
			})
		}
	}
}
