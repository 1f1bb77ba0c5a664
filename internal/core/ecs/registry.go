package ecs

// Registry tracks every facet store so destruction can clear an entity from
// all of them in one call, and so teardown can be audited for leftovers.
type Registry struct {
	facets []Facet
}

func NewRegistry() *Registry {
	return &Registry{
		facets: make([]Facet, 0, 16),
	}
}

func (r *Registry) Register(f Facet) {
	r.facets = append(r.facets, f)
}

// RemoveAll clears the entity from every facet and returns how many
// facets it carried.
func (r *Registry) RemoveAll(id EntityID) int {
	n := 0
	for _, f := range r.facets {
		if f.Has(id) {
			f.Remove(id)
			n++
		}
	}
	return n
}

// Components returns the number of facet entries across all stores. After
// a full teardown it must be zero; anything else is a dangling facet.
func (r *Registry) Components() int {
	n := 0
	for _, f := range r.facets {
		n += f.Len()
	}
	return n
}
