package event

import "github.com/curbrush/world/internal/core/ecs"

// ChunkSpawned is emitted once per generated chunk.
type ChunkSpawned struct {
	Index       int
	Entities    int
	HasCrossing bool
	CrossingZ   float64
}

// ChunkDespawned is emitted when the trailing edge reclaims a chunk.
type ChunkDespawned struct {
	Index    int
	Released int
}

// VehicleSpawned is emitted when a vehicle is handed to the culling system.
type VehicleSpawned struct {
	EntityID ecs.EntityID
	Chunk    int
}

// SessionReset is emitted after a full teardown between runs.
type SessionReset struct{}
