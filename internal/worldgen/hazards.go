package worldgen

import (
	"math"

	"github.com/curbrush/world/internal/component"
)

const (
	sameDirectionShare = 0.7
	hazardEdgeMargin   = 0.8
	minHazardSpacing   = 1.0
)

type hazardSpec struct {
	kind    component.HazardKind
	weight  float64
	lethal  bool
	penalty float64
	radius  float64
}

// Static hazards share the probability mass left after the vehicle branch.
// Curbs dominate; puddles only cost control.
var hazardTable = [...]hazardSpec{
	{component.HazardManhole, 0.15, true, 0, 0.6},
	{component.HazardPuddle, 0.15, false, 0.5, 1.2},
	{component.HazardPothole, 0.20, true, 0, 0.5},
	{component.HazardCurb, 0.50, true, 0, 0.3},
}

func pickHazard(roll float64) hazardSpec {
	for _, h := range hazardTable {
		roll -= h.weight
		if roll < 0 {
			return h
		}
	}
	return hazardTable[len(hazardTable)-1]
}

// placeHazardLane walks the hazard slots of the chunk. Each slot resolves to
// a vehicle, a static hazard or nothing. Slots inside the clearance radius
// of a crossing are damped so the crowd stays the main challenge there.
func (g *Generator) placeHazardLane(b *build) {
	spacing := math.Max(b.params.MinSpacing, minHazardSpacing)
	z := b.startZ + g.rng.Float64()*spacing
	for slot := 0; slot < maxSlots && z < b.endZ; slot++ {
		p := b.params.ObstacleDensity
		if b.nearCrossing(z, g.layout.CrossingClearance) {
			p *= g.layout.CrossingHazardScale
		}
		if g.chance(p) {
			if g.chance(b.params.VehicleProbability) {
				g.spawnVehicle(b, z)
			} else {
				g.placeStaticHazard(b, z)
			}
		}
		z += spacing + g.rng.Float64()*spacing
	}
}

func (g *Generator) placeStaticHazard(b *build, z float64) {
	h := pickHazard(g.rng.Float64())
	reach := g.layout.RoadHalfWidth - hazardEdgeMargin
	id := g.place(b, component.Tag{Kind: component.KindHazard, Archetype: h.kind.String(), Collides: true}, component.Transform{
		X:      g.between(-reach, reach),
		Z:      z,
		Width:  2 * h.radius,
		Height: 0.1,
		Depth:  2 * h.radius,
	})
	g.store.Hazards.Set(id, &component.Hazard{
		Kind:           h.kind,
		Lethal:         h.lethal,
		ControlPenalty: h.penalty,
		Radius:         h.radius,
	})
	g.stats.Hazards[h.kind]++
}

// spawnVehicle creates a car ahead of the slot. Oncoming traffic starts
// further out so the player sees it coming. The vehicle is not chunk-owned.
func (g *Generator) spawnVehicle(b *build, z float64) {
	lane := component.LaneSameDirection
	dir, x, offset, yaw := 1.0, g.layout.LaneOffset, g.layout.SameDirOffset, 0.0
	if !g.chance(sameDirectionShare) {
		lane = component.LaneOncoming
		dir, x, offset, yaw = -1, -g.layout.LaneOffset, g.layout.OncomingOffset, math.Pi
	}
	model := g.tables.Vehicles.Pick(g.rng.Float64())
	id := g.store.Spawn(component.Tag{Kind: component.KindVehicle, Archetype: model.Model, Chunk: b.index, Collides: true},
		component.Transform{
			X:      x,
			Z:      z + offset,
			Yaw:    yaw,
			Width:  model.Width,
			Height: model.Height,
			Depth:  model.Length,
		})
	g.store.Vehicles.Set(id, &component.Vehicle{
		Lane:       lane,
		Direction:  dir,
		Speed:      b.params.VehicleSpeed.At(g.rng.Float64()),
		Model:      model.Model,
		Procedural: g.tables.Vehicles.Procedural,
	})
	b.res.Vehicles = append(b.res.Vehicles, id)
	g.stats.Vehicles++
}
