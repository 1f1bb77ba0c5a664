package worldgen

import (
	"math"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/core/ecs"
	"github.com/curbrush/world/internal/rarity"
)

const (
	pedestrianHeight   = 1.75
	pedestrianRadius   = 0.35
	approachMin        = 2.0
	approachMax        = 10.0
	sidewalkPedMax     = 2
	chatSpacing        = 0.9
	flockMin           = 2
	flockMax           = 5
	flockScatterRadius = 1.5

	// Initial crossing-pedestrian state distribution.
	shareCrossing       = 0.3
	shareApproachBehind = 0.4
)

// Yaw conventions: 0 faces +Z (with the player), pi faces back towards it,
// -pi/2 walks from the right sidewalk to the left, +pi/2 the other way.
func crossingYaw(side float64) float64 {
	return -side * math.Pi / 2
}

// spawnCrossingPedestrians seeds the crowd of a populated crossing. Only
// the initial state is chosen here; transitions belong to the external
// movement system.
func (g *Generator) spawnCrossingPedestrians(b *build) {
	if !b.res.HasCrossing {
		return
	}
	if !g.chance(b.params.CrossingProbability) {
		return
	}
	g.stats.PopulatedCrossings++

	l := g.layout
	sidewalkMid := l.RoadHalfWidth + l.SidewalkWidth/2
	n := b.params.CrossingCrowd()
	for i := 0; i < n; i++ {
		side := g.side()
		var (
			state component.PedState
			x, z  float64
			yaw   float64
		)
		switch r := g.rng.Float64(); {
		case r < shareCrossing:
			state = component.PedCrossing
			x = g.between(-l.RoadHalfWidth, l.RoadHalfWidth)
			z = b.res.CrossingZ + g.between(-crossingStripeDepth/2, crossingStripeDepth/2)
			yaw = crossingYaw(side)
		case r < shareCrossing+shareApproachBehind:
			state = component.PedApproachBehind
			x = side * sidewalkMid
			z = b.res.CrossingZ - g.between(approachMin, approachMax)
			yaw = 0
		default:
			state = component.PedApproachAhead
			x = side * sidewalkMid
			z = b.res.CrossingZ + g.between(approachMin, approachMax)
			yaw = math.Pi
		}
		id := g.place(b, component.Tag{Kind: component.KindPedestrian, Collides: true}, pedTransform(x, z, yaw))
		g.store.Pedestrians.Set(id, &component.Pedestrian{
			Role:      component.RoleCrossing,
			State:     state,
			Side:      int(side),
			Speed:     b.params.PedSpeed.At(g.rng.Float64()),
			Phase:     g.rng.Float64(),
			CrossingZ: b.res.CrossingZ,
		})
		g.stats.Pedestrians++
	}
}

func pedTransform(x, z, yaw float64) component.Transform {
	return component.Transform{
		X:      x,
		Z:      z,
		Yaw:    yaw,
		Width:  2 * pedestrianRadius,
		Height: pedestrianHeight,
		Depth:  2 * pedestrianRadius,
	}
}

// spawnSidewalkPedestrians adds 0-2 idle or walking pedestrians per side and
// occasionally a chatting pair.
func (g *Generator) spawnSidewalkPedestrians(b *build) {
	l := g.layout
	inner := l.RoadHalfWidth + pedestrianRadius + 0.2
	outer := l.SidewalkOuter() - pedestrianRadius - 0.2
	for _, side := range [2]float64{-1, 1} {
		n := g.rng.Intn(sidewalkPedMax + 1)
		for i := 0; i < n; i++ {
			state := component.PedIdle
			speed := 0.0
			yaw := g.between(0, 2*math.Pi)
			if g.chance(0.5) {
				state = component.PedWalking
				speed = b.params.PedSpeed.At(g.rng.Float64())
				yaw = 0
				if g.chance(0.5) {
					yaw = math.Pi
				}
			}
			id := g.place(b, component.Tag{Kind: component.KindPedestrian, Collides: true},
				pedTransform(side*g.between(inner, outer), b.alongZ(g.rng.Float64()), yaw))
			g.store.Pedestrians.Set(id, &component.Pedestrian{
				Role:  component.RoleSidewalk,
				State: state,
				Side:  int(side),
				Speed: speed,
				Phase: g.rng.Float64(),
			})
			g.stats.Pedestrians++
		}
	}

	if g.chance(g.rarity.ChatPairChance) {
		g.spawnChatPair(b, inner, outer)
	}
}

// spawnChatPair places two pedestrians face to face along the sidewalk.
func (g *Generator) spawnChatPair(b *build, inner, outer float64) {
	side := g.side()
	x := side * g.between(inner, outer)
	z := b.alongZ(g.between(0.1, 0.9))
	duration := g.between(g.rarity.ChatDurationMin, g.rarity.ChatDurationMax)

	var pair [2]ecs.EntityID
	for i, dz := range [2]float64{-chatSpacing / 2, chatSpacing / 2} {
		yaw := 0.0
		if dz > 0 {
			yaw = math.Pi
		}
		pair[i] = g.place(b, component.Tag{Kind: component.KindPedestrian, Collides: true}, pedTransform(x, z+dz, yaw))
	}
	for i, id := range pair {
		g.store.Pedestrians.Set(id, &component.Pedestrian{
			Role:          component.RoleSidewalk,
			State:         component.PedChatting,
			Side:          int(side),
			Phase:         g.rng.Float64(),
			Partner:       pair[1-i],
			ChatRemaining: duration,
		})
	}
	g.stats.Pedestrians += 2
}

// spawnPigeonFlock scatters 2-5 pigeons around a sidewalk centre. The shared
// flock id lets the behaviour system make them flee together.
func (g *Generator) spawnPigeonFlock(b *build) {
	if !rarity.GapElapsed(g.track.LastFlock, b.index, g.rarity.MinPigeonGap) || !g.chance(g.rarity.PigeonChance) {
		return
	}
	l := g.layout
	side := g.side()
	cx := side * (l.RoadHalfWidth + l.SidewalkWidth/2)
	cz := b.alongZ(g.between(0.1, 0.9))
	flock := g.track.NextFlockID()
	n := flockMin + g.rng.Intn(flockMax-flockMin+1)
	for i := 0; i < n; i++ {
		angle := g.between(0, 2*math.Pi)
		r := flockScatterRadius * math.Sqrt(g.rng.Float64())
		id := g.place(b, component.Tag{Kind: component.KindPigeon}, component.Transform{
			X:      cx + r*math.Cos(angle),
			Z:      cz + r*math.Sin(angle),
			Yaw:    g.between(0, 2*math.Pi),
			Width:  0.3,
			Height: 0.3,
			Depth:  0.3,
		})
		g.store.Pigeons.Set(id, &component.Pigeon{FlockID: flock, State: component.PigeonPecking, Phase: g.rng.Float64()})
	}
	g.track.LastFlock = b.index
	g.stats.Flocks++
}
