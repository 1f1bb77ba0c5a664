package component

import "github.com/curbrush/world/internal/core/ecs"

// Store is the entity/component store shared by the generator and the
// systems that consume its output. Single writer per tick; no locks.
type Store struct {
	World *ecs.World

	Tags        *ecs.PtrComponentStore[Tag]
	Transforms  *ecs.PtrComponentStore[Transform]
	LODs        *ecs.PtrComponentStore[LOD]
	Backgrounds *ecs.PtrComponentStore[Background]
	Hazards     *ecs.PtrComponentStore[Hazard]
	Pedestrians *ecs.PtrComponentStore[Pedestrian]
	Vehicles    *ecs.PtrComponentStore[Vehicle]
	Pigeons     *ecs.PtrComponentStore[Pigeon]
	Airplanes   *ecs.PtrComponentStore[Airplane]
	Cranes      *ecs.PtrComponentStore[Crane]
}

func NewStore() *Store {
	s := &Store{
		World:       ecs.NewWorld(),
		Tags:        ecs.NewPtrComponentStore[Tag](),
		Transforms:  ecs.NewPtrComponentStore[Transform](),
		LODs:        ecs.NewPtrComponentStore[LOD](),
		Backgrounds: ecs.NewPtrComponentStore[Background](),
		Hazards:     ecs.NewPtrComponentStore[Hazard](),
		Pedestrians: ecs.NewPtrComponentStore[Pedestrian](),
		Vehicles:    ecs.NewPtrComponentStore[Vehicle](),
		Pigeons:     ecs.NewPtrComponentStore[Pigeon](),
		Airplanes:   ecs.NewPtrComponentStore[Airplane](),
		Cranes:      ecs.NewPtrComponentStore[Crane](),
	}
	reg := s.World.Registry()
	reg.Register(s.Tags)
	reg.Register(s.Transforms)
	reg.Register(s.LODs)
	reg.Register(s.Backgrounds)
	reg.Register(s.Hazards)
	reg.Register(s.Pedestrians)
	reg.Register(s.Vehicles)
	reg.Register(s.Pigeons)
	reg.Register(s.Airplanes)
	reg.Register(s.Cranes)
	return s
}

// Spawn creates an entity carrying a tag and a transform.
func (s *Store) Spawn(tag Tag, tr Transform) ecs.EntityID {
	id := s.World.CreateEntity()
	s.Tags.Set(id, &tag)
	s.Transforms.Set(id, &tr)
	return id
}

// Release destroys an entity if it is still alive.
func (s *Store) Release(id ecs.EntityID) bool {
	return s.World.Destroy(id)
}

// Alive reports whether the handle still refers to a live entity.
func (s *Store) Alive(id ecs.EntityID) bool {
	return s.World.Alive(id)
}

// CountKind counts live entities with the given tag.
func (s *Store) CountKind(k Kind) int {
	n := 0
	s.Tags.Each(func(_ ecs.EntityID, t *Tag) {
		if t.Kind == k {
			n++
		}
	})
	return n
}
