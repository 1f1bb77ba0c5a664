// Package rarity holds the cooldowns, cluster counters and singleton handles
// that keep low-frequency street features from clustering or vanishing.
package rarity

import (
	"math"

	"github.com/curbrush/world/internal/core/ecs"
)

// LongAgo is the sentinel every "last chunk" tracker is reset to. Any chunk
// index minus LongAgo exceeds every configured gap, so a fresh run is
// immediately eligible for every feature.
const LongAgo = math.MinInt32 / 2

// Trackers is owned by one generator instance and mutated only by it.
type Trackers struct {
	LastCrossing int

	LastCluster      int // chunk where the last skyscraper cluster started
	ClusterRemaining int
	ClusterSize      int // initial remaining-count of the current or last cluster

	LastCrane int
	Crane     ecs.EntityID

	LastAirplane int
	Airplane     ecs.EntityID

	LastTallTree int
	LastFlock    int
	nextFlockID  uint32
}

func New() *Trackers {
	t := &Trackers{}
	t.Reset()
	return t
}

// Reset restores every tracker to its sentinel.
func (t *Trackers) Reset() {
	*t = Trackers{
		LastCrossing: LongAgo,
		LastCluster:  LongAgo,
		LastCrane:    LongAgo,
		LastAirplane: LongAgo,
		LastTallTree: LongAgo,
		LastFlock:    LongAgo,
	}
}

// GapElapsed reports whether at least gap chunks separate last and index.
func GapElapsed(last, index, gap int) bool {
	return index-last >= gap
}

// ClusterActive reports whether skyscraper slots are still owed.
func (t *Trackers) ClusterActive() bool { return t.ClusterRemaining > 0 }

// StartCluster opens a skyscraper cluster of count buildings at index.
func (t *Trackers) StartCluster(index, count int) {
	t.LastCluster = index
	t.ClusterRemaining = count
	t.ClusterSize = count
}

// ConsumeCluster takes one unit from the active cluster. It returns false
// when no cluster is active.
func (t *Trackers) ConsumeCluster() bool {
	if t.ClusterRemaining <= 0 {
		return false
	}
	t.ClusterRemaining--
	return true
}

// RefundCluster gives back a unit taken by ConsumeCluster.
func (t *Trackers) RefundCluster() { t.ClusterRemaining++ }

// NearCluster reports whether index is inside an active cluster or within
// window chunks of the last cluster start.
func (t *Trackers) NearCluster(index, window int) bool {
	return t.ClusterActive() || !GapElapsed(t.LastCluster, index, window+1)
}

// NextFlockID hands out flock identifiers, starting at 1.
func (t *Trackers) NextFlockID() uint32 {
	t.nextFlockID++
	return t.nextFlockID
}
