package system

import "github.com/curbrush/world/internal/core/event"

// Journal tallies the world events of the current run. It is fed by the
// event bus, so counts trail the streamer by one tick.
type Journal struct {
	ChunksSpawned   int
	ChunksDespawned int
	Released        int // entities freed by chunk teardown
	Crossings       int
	Vehicles        int
	Resets          int // survives resets
}

func newJournal(bus *event.Bus) *Journal {
	j := &Journal{}
	event.Subscribe(bus, func(e event.ChunkSpawned) {
		j.ChunksSpawned++
		if e.HasCrossing {
			j.Crossings++
		}
	})
	event.Subscribe(bus, func(e event.ChunkDespawned) {
		j.ChunksDespawned++
		j.Released += e.Released
	})
	event.Subscribe(bus, func(event.VehicleSpawned) { j.Vehicles++ })
	event.Subscribe(bus, func(event.SessionReset) { *j = Journal{Resets: j.Resets + 1} })
	return j
}
