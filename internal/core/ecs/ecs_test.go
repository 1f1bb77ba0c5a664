package ecs

import "testing"

type mockFacet struct{ Value int }

func TestEntityPoolRecyclesWithNewGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatal("first entity must not be the zero handle")
	}
	if !p.Destroy(a) {
		t.Fatal("destroy of live handle returned false")
	}
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("expected slot %d to be reused, got %d", a.Index(), b.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Fatalf("expected generation %d, got %d", a.Generation()+1, b.Generation())
	}
	if p.Alive(a) {
		t.Error("stale handle reported alive")
	}
	if p.Destroy(a) {
		t.Error("destroying a stale handle must be a no-op")
	}
	if !p.Alive(b) {
		t.Error("recycled handle not alive")
	}
	if p.Live() != 1 {
		t.Errorf("live = %d, want 1", p.Live())
	}
}

func TestZeroHandleNeverAlive(t *testing.T) {
	p := NewEntityPool()
	p.Create()
	if p.Alive(0) {
		t.Error("zero handle reported alive")
	}
}

func TestWorldDestroyIsIdempotent(t *testing.T) {
	w := NewWorld()
	store := NewPtrComponentStore[mockFacet]()
	w.Registry().Register(store)

	id := w.CreateEntity()
	store.Set(id, &mockFacet{Value: 7})

	if !w.Destroy(id) {
		t.Fatal("first destroy returned false")
	}
	if store.Has(id) {
		t.Error("component survived destroy")
	}
	if w.Destroy(id) {
		t.Error("second destroy returned true")
	}
	if w.Live() != 0 {
		t.Errorf("live = %d, want 0", w.Live())
	}
}

func TestFlushDestroyQueueSkipsDuplicates(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	w.MarkForDestruction(a)
	w.MarkForDestruction(a)
	w.MarkForDestruction(b)
	w.Destroy(b)

	if n := w.FlushDestroyQueue(); n != 1 {
		t.Errorf("flushed %d entities, want 1", n)
	}
	if w.PendingDestruction() != 0 {
		t.Error("queue not cleared")
	}
}

func TestEach2VisitsIntersection(t *testing.T) {
	sa := NewPtrComponentStore[mockFacet]()
	sb := NewPtrComponentStore[string]()
	p := NewEntityPool()
	ids := []EntityID{p.Create(), p.Create(), p.Create()}
	for i, id := range ids {
		sa.Set(id, &mockFacet{Value: i})
	}
	tag := "x"
	sb.Set(ids[1], &tag)

	visited := 0
	Each2(sa, sb, func(id EntityID, a *mockFacet, _ *string) {
		visited++
		if id != ids[1] || a.Value != 1 {
			t.Errorf("unexpected visit %v %+v", id, a)
		}
	})
	if visited != 1 {
		t.Errorf("visited %d, want 1", visited)
	}
}

func TestRegistryStripsEveryFacet(t *testing.T) {
	w := NewWorld()
	sa := NewPtrComponentStore[mockFacet]()
	sb := NewPtrComponentStore[string]()
	w.Registry().Register(sa)
	w.Registry().Register(sb)

	a := w.CreateEntity()
	b := w.CreateEntity()
	label := "lamp"
	sa.Set(a, &mockFacet{Value: 1})
	sb.Set(a, &label)
	sa.Set(b, &mockFacet{Value: 2})
	if w.Registry().Components() != 3 {
		t.Fatalf("components = %d", w.Registry().Components())
	}
	if n := w.Registry().RemoveAll(a); n != 2 {
		t.Errorf("stripped %d facets, want 2", n)
	}
	w.Destroy(b)
	if w.Registry().Components() != 0 {
		t.Errorf("dangling facets: %d", w.Registry().Components())
	}
}
