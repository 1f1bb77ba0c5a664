package component

import "testing"

func TestReleaseClearsEveryFacet(t *testing.T) {
	s := NewStore()
	id := s.Spawn(Tag{Kind: KindVehicle, Chunk: 3}, Transform{Z: 12})
	s.Vehicles.Set(id, &Vehicle{Speed: 9})
	s.Hazards.Set(id, &Hazard{Kind: HazardCurb})

	if !s.Release(id) {
		t.Fatal("release of live entity failed")
	}
	if s.Tags.Has(id) || s.Transforms.Has(id) || s.Vehicles.Has(id) || s.Hazards.Has(id) {
		t.Error("facet survived release")
	}
	if s.Release(id) {
		t.Error("double release reported success")
	}
}

func TestCountKind(t *testing.T) {
	s := NewStore()
	s.Spawn(Tag{Kind: KindTree}, Transform{})
	s.Spawn(Tag{Kind: KindTree}, Transform{})
	s.Spawn(Tag{Kind: KindBench}, Transform{})
	if got := s.CountKind(KindTree); got != 2 {
		t.Errorf("trees = %d, want 2", got)
	}
	if got := s.CountKind(KindAirplane); got != 0 {
		t.Errorf("airplanes = %d, want 0", got)
	}
}

func TestKindNamesComplete(t *testing.T) {
	for _, k := range Kinds() {
		if k.String() == "" || k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(200).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}

func TestAirplaneExpired(t *testing.T) {
	a := Airplane{Lifetime: 5, Age: 4.9}
	if a.Expired() {
		t.Error("expired early")
	}
	a.Age = 5
	if !a.Expired() {
		t.Error("not expired at lifetime")
	}
}
