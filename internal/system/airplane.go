package system

import (
	"time"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/core/ecs"
	coresys "github.com/curbrush/world/internal/core/system"
)

// AirplaneSystem flies airplanes along their velocity and queues them for
// destruction once their lifetime runs out. The owning chunk may still
// hold the handle; its teardown skips it. Phase 3 (Update).
type AirplaneSystem struct {
	store *component.Store
}

func NewAirplaneSystem(store *component.Store) *AirplaneSystem {
	return &AirplaneSystem{store: store}
}

func (s *AirplaneSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AirplaneSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.store.Airplanes.Each(func(id ecs.EntityID, a *component.Airplane) {
		if a.Expired() {
			return
		}
		a.Age += sec
		if tr, ok := s.store.Transforms.Get(id); ok {
			tr.X += a.VX * sec
			tr.Y += a.VY * sec
			tr.Z += a.VZ * sec
		}
		if a.Expired() {
			s.store.World.MarkForDestruction(id)
		}
	})
}
