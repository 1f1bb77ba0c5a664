package worldgen

import (
	"math"

	"go.uber.org/zap"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/rarity"
)

const (
	cloudMin       = 2
	cloudMax       = 4
	cloudSpreadX   = 80.0
	cloudAltMin    = 40.0
	cloudAltMax    = 70.0
	fogWallHeight  = 140.0
	craneHeightMin = 40.0
	craneHeightMax = 60.0
	airplaneAltMin = 80.0
	airplaneAltMax = 120.0
)

// maxBackground is the per-layer upper bound of silhouettes per chunk.
var maxBackground = [component.LayerCount]int{3, 2, 2}

// layerFog is the fade applied to each background layer.
var layerFog = [component.LayerCount]float64{0.25, 0.55, 0.8}

func (g *Generator) placeClouds(b *build) {
	n := cloudMin + g.rng.Intn(cloudMax-cloudMin+1)
	for i := 0; i < n; i++ {
		size := g.between(8, 20)
		g.place(b, component.Tag{Kind: component.KindCloud, Archetype: g.pick(g.tables.Scenery.Clouds)}, component.Transform{
			X:      g.between(-cloudSpreadX, cloudSpreadX),
			Y:      g.between(cloudAltMin, cloudAltMax),
			Z:      b.alongZ(g.rng.Float64()),
			Width:  size,
			Height: size / 3,
			Depth:  size / 2,
		})
	}
}

func (g *Generator) layerBand(l component.Layer) config.Band {
	switch l {
	case component.LayerMid:
		return g.layout.BackgroundMid
	case component.LayerFar:
		return g.layout.BackgroundFar
	}
	return g.layout.BackgroundNear
}

// placeBackground scatters decorative skyline silhouettes over the three
// depth layers. They never collide.
func (g *Generator) placeBackground(b *build) {
	for layer := component.LayerNear; layer < component.LayerCount; layer++ {
		pool := g.tables.Buildings.Background[layer]
		band := g.layerBand(layer)
		n := g.rng.Intn(maxBackground[layer] + 1)
		for i := 0; i < n; i++ {
			arch := g.pickArchetype(pool)
			width := arch.Width.At(g.rng.Float64())
			id := g.place(b, component.Tag{Kind: component.KindBackground, Archetype: arch.Name}, component.Transform{
				X:      g.side() * g.between(band.Min, band.Max),
				Z:      b.alongZ(g.rng.Float64()),
				Width:  width,
				Height: arch.Height.At(g.rng.Float64()),
				Depth:  arch.Depth.At(g.rng.Float64()),
			})
			g.store.Backgrounds.Set(id, &component.Background{Layer: layer, Fog: layerFog[layer]})
		}
	}
}

// placeFogWall masks the render-distance cutoff at the chunk's far edge.
func (g *Generator) placeFogWall(b *build) {
	g.place(b, component.Tag{Kind: component.KindFogWall}, component.Transform{
		Z:      b.endZ,
		Width:  2 * g.layout.BackgroundFar.Max,
		Height: fogWallHeight,
	})
}

// placeCrane puts a tower crane behind the building line. Only one crane is
// alive at a time; the chance is boosted near skyscraper clusters.
func (g *Generator) placeCrane(b *build) {
	if g.store.Alive(g.track.Crane) || !rarity.GapElapsed(g.track.LastCrane, b.index, g.rarity.MinCraneGap) {
		return
	}
	p := g.rarity.CraneChance
	if g.track.NearCluster(b.index, g.rarity.CraneClusterWindow) {
		p = math.Min(1, p*g.rarity.CraneClusterBoost)
	}
	if !g.chance(p) {
		return
	}
	height := g.between(craneHeightMin, craneHeightMax)
	id := g.place(b, component.Tag{Kind: component.KindCrane, Archetype: g.pick(g.tables.Scenery.Cranes)}, component.Transform{
		X:      g.side() * (g.layout.Buildings.Max + g.layout.CraneSetback),
		Z:      b.alongZ(g.rng.Float64()),
		Width:  2,
		Height: height,
		Depth:  2,
	})
	g.store.Cranes.Set(id, &component.Crane{JibYaw: g.between(0, 2*math.Pi), Height: height})
	g.track.Crane = id
	g.track.LastCrane = b.index
	g.stats.Cranes++
	g.log.Debug("tower crane placed", zap.Int("chunk", b.index))
}

// airplaneAirborne reports whether the singleton airplane is alive and still
// inside its lifetime.
func (g *Generator) airplaneAirborne() bool {
	if !g.store.Alive(g.track.Airplane) {
		return false
	}
	a, ok := g.store.Airplanes.Get(g.track.Airplane)
	return ok && !a.Expired()
}

// placeAirplane launches the singleton airplane across the play area from a
// random side.
func (g *Generator) placeAirplane(b *build) {
	if g.airplaneAirborne() || !rarity.GapElapsed(g.track.LastAirplane, b.index, g.rarity.MinAirplaneGap) {
		return
	}
	if !g.chance(g.rarity.AirplaneChance) {
		return
	}
	span := 2 * g.layout.BackgroundFar.Max
	from := g.side()
	startZ := b.alongZ(g.rng.Float64())
	drift := g.between(-1, 1) * (b.endZ - b.startZ)
	dx, dz := -from*span, drift
	dist := math.Hypot(dx, dz)
	speed := g.rarity.AirplaneSpeed

	id := g.place(b, component.Tag{Kind: component.KindAirplane}, component.Transform{
		X:      from * span / 2,
		Y:      g.between(airplaneAltMin, airplaneAltMax),
		Z:      startZ,
		Yaw:    math.Atan2(dx, dz),
		Width:  12,
		Height: 3,
		Depth:  12,
	})
	g.store.Airplanes.Set(id, &component.Airplane{
		VX:       dx / dist * speed,
		VZ:       dz / dist * speed,
		Lifetime: math.Min(dist/speed, g.rarity.MaxAirplaneLifetime),
	})
	g.track.Airplane = id
	g.track.LastAirplane = b.index
	g.stats.Airplanes++
	g.log.Debug("airplane launched", zap.Int("chunk", b.index), zap.Float64("from", from))
}
