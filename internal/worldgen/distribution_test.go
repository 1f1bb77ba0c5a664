package worldgen

import (
	"math"
	"testing"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/config"
)

const shareTolerance = 0.05

func checkShare(t *testing.T, what string, n, total int, want float64) {
	t.Helper()
	if total == 0 {
		t.Fatalf("%s: empty sample", what)
	}
	if got := float64(n) / float64(total); math.Abs(got-want) > shareTolerance {
		t.Errorf("%s share = %.3f over %d, want %.2f±%.2f", what, got, total, want, shareTolerance)
	}
}

func TestCrossingPedestrianStateShares(t *testing.T) {
	g, s, _ := newTestGen(t, 31, func(c *config.Config) {
		c.Rarity.CrossingChance = 1
		c.Rarity.MinCrossingGap = 0
	})
	p := params(1)
	p.ObstacleDensity = 0

	var counts [component.PedChatting + 1]int
	total := 0
	for i := 1; i <= 500; i++ {
		res := g.Generate(i, p)
		for _, id := range res.Owned {
			ped, ok := s.Pedestrians.Get(id)
			if !ok || ped.Role != component.RoleCrossing {
				continue
			}
			tr, _ := s.Transforms.Get(id)
			switch ped.State {
			case component.PedCrossing:
				if math.Abs(math.Abs(tr.Yaw)-math.Pi/2) > 1e-9 {
					t.Errorf("crossing pedestrian yaw %.3f", tr.Yaw)
				}
			case component.PedApproachBehind:
				if tr.Yaw != 0 || tr.Z >= ped.CrossingZ {
					t.Errorf("behind approach at z=%.1f yaw %.3f, crossing %.1f", tr.Z, tr.Yaw, ped.CrossingZ)
				}
			case component.PedApproachAhead:
				if tr.Yaw != math.Pi || tr.Z <= ped.CrossingZ {
					t.Errorf("ahead approach at z=%.1f yaw %.3f, crossing %.1f", tr.Z, tr.Yaw, ped.CrossingZ)
				}
			default:
				t.Fatalf("crossing pedestrian seeded as %s", ped.State)
			}
			counts[ped.State]++
			total++
		}
	}
	checkShare(t, "crossing", counts[component.PedCrossing], total, 0.3)
	checkShare(t, "approach behind", counts[component.PedApproachBehind], total, 0.4)
	checkShare(t, "approach ahead", counts[component.PedApproachAhead], total, 0.3)
}

func TestVehicleLaneShares(t *testing.T) {
	g, s, cfg := newTestGen(t, 32, nil)
	p := params(1)
	p.ObstacleDensity = 1
	p.VehicleProbability = 1
	p.MinSpacing = 2

	l := cfg.Layout
	if l.OncomingOffset <= l.SameDirOffset {
		t.Fatalf("oncoming offset %v must exceed same-direction offset %v", l.OncomingOffset, l.SameDirOffset)
	}
	same, total := 0, 0
	for i := 1; i <= 200; i++ {
		res := g.Generate(i, p)
		start := float64(i) * cfg.Stream.ChunkLength
		end := start + cfg.Stream.ChunkLength
		for _, id := range res.Vehicles {
			v, _ := s.Vehicles.Get(id)
			tr, _ := s.Transforms.Get(id)
			offset := l.OncomingOffset
			if v.Lane == component.LaneSameDirection {
				offset = l.SameDirOffset
				same++
				if tr.Yaw != 0 {
					t.Errorf("same-direction yaw %.3f", tr.Yaw)
				}
			} else if tr.Yaw != math.Pi {
				t.Errorf("oncoming yaw %.3f", tr.Yaw)
			}
			if slot := tr.Z - offset; slot < start-1e-9 || slot >= end+1e-9 {
				t.Errorf("chunk %d: %s vehicle at z=%.1f, slot %.1f outside [%.0f,%.0f)", i, v.Lane, tr.Z, slot, start, end)
			}
			total++
		}
	}
	checkShare(t, "same direction", same, total, 0.7)
}

func TestCurbsDominateStaticHazards(t *testing.T) {
	g, _, _ := newTestGen(t, 33, nil)
	p := params(1)
	p.ObstacleDensity = 1
	p.VehicleProbability = 0
	p.MinSpacing = 2
	for i := 1; i <= 300; i++ {
		g.Generate(i, p)
	}
	h := g.Stats().Hazards
	total := 0
	for _, n := range h {
		total += n
	}
	for kind, n := range h {
		if component.HazardKind(kind) != component.HazardCurb && n >= h[component.HazardCurb] {
			t.Errorf("%s (%d) not below curbs (%d)", component.HazardKind(kind), n, h[component.HazardCurb])
		}
	}
	checkShare(t, "curb", h[component.HazardCurb], total, 0.5)
	checkShare(t, "manhole", h[component.HazardManhole], total, 0.15)
	checkShare(t, "puddle", h[component.HazardPuddle], total, 0.15)
	checkShare(t, "pothole", h[component.HazardPothole], total, 0.2)
}

func TestSidewalkPedestriansPerSide(t *testing.T) {
	g, s, _ := newTestGen(t, 34, nil)
	seen := map[int]bool{}
	for i := 1; i <= 200; i++ {
		res := g.Generate(i, params(0.5))
		perSide := map[int]int{-1: 0, 1: 0}
		for _, id := range res.Owned {
			if ped, ok := s.Pedestrians.Get(id); ok && ped.Role == component.RoleSidewalk {
				perSide[ped.Side]++
			}
		}
		for side, n := range perSide {
			if n > sidewalkPedMax {
				t.Errorf("chunk %d side %d: %d sidewalk pedestrians", i, side, n)
			}
			seen[n] = true
		}
	}
	for n := 0; n <= sidewalkPedMax; n++ {
		if !seen[n] {
			t.Errorf("never saw %d pedestrians on a side", n)
		}
	}
}

func TestCloudCountPerChunk(t *testing.T) {
	g, s, _ := newTestGen(t, 35, nil)
	seen := map[int]bool{}
	for i := -5; i <= 150; i++ {
		res := g.Generate(i, params(0.5))
		n := 0
		for _, id := range res.Owned {
			if kindOf(s, id) == component.KindCloud {
				n++
			}
		}
		if n < cloudMin || n > cloudMax {
			t.Errorf("chunk %d: %d clouds", i, n)
		}
		seen[n] = true
	}
	for n := cloudMin; n <= cloudMax; n++ {
		if !seen[n] {
			t.Errorf("never saw %d clouds in a chunk", n)
		}
	}
}
