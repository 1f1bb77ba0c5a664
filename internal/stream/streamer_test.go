package stream

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/core/ecs"
	"github.com/curbrush/world/internal/core/event"
	"github.com/curbrush/world/internal/difficulty"
	"github.com/curbrush/world/internal/worldgen"
)

const perChunk = 3

type fakeGen struct {
	store    *component.Store
	vehicles int
	calls    []int
	resets   int
}

func (f *fakeGen) Generate(index int, _ difficulty.Params) worldgen.Result {
	f.calls = append(f.calls, index)
	res := worldgen.Result{Index: index}
	for i := 0; i < perChunk; i++ {
		id := f.store.Spawn(component.Tag{Kind: component.KindTree, Chunk: index}, component.Transform{Z: float64(index) * 40})
		res.Owned = append(res.Owned, id)
	}
	for i := 0; i < f.vehicles; i++ {
		id := f.store.Spawn(component.Tag{Kind: component.KindVehicle, Chunk: index}, component.Transform{})
		res.Vehicles = append(res.Vehicles, id)
	}
	return res
}

func (f *fakeGen) Reset() { f.resets++ }

type trackRecorder map[ecs.EntityID]int

func (r trackRecorder) Track(id ecs.EntityID, chunk int) { r[id] = chunk }

type fixture struct {
	s       *Streamer
	store   *component.Store
	gen     *fakeGen
	tracked trackRecorder
	bus     *event.Bus
}

func newFixture(vehicles int) *fixture {
	cfg := config.Defaults()
	store := component.NewStore()
	gen := &fakeGen{store: store, vehicles: vehicles}
	tracked := trackRecorder{}
	bus := event.NewBus()
	model := difficulty.NewModel(cfg.Difficulty, difficulty.ModeEndless)
	return &fixture{
		s:       New(cfg.Stream, gen, store, model, tracked, bus, nil),
		store:   store,
		gen:     gen,
		tracked: tracked,
		bus:     bus,
	}
}

func span(first, last int) []int {
	var out []int
	for i := first; i <= last; i++ {
		out = append(out, i)
	}
	return out
}

func TestWindowAtStart(t *testing.T) {
	f := newFixture(0)
	f.s.Advance(0, 0)
	if got, want := f.s.ActiveIndices(), span(-2, 3); !slices.Equal(got, want) {
		t.Errorf("active = %v, want %v", got, want)
	}
}

func TestWindowAfterAdvancingTo400(t *testing.T) {
	f := newFixture(0)
	for z := 0.0; z <= 400; z += 10 {
		f.s.Advance(z, z)
	}
	if f.s.Active(0) {
		t.Error("chunk 0 still active at z=400")
	}
	if got, want := f.s.ActiveIndices(), span(8, 13); !slices.Equal(got, want) {
		t.Errorf("active = %v, want %v", got, want)
	}
}

func TestActiveSetMatchesWindow(t *testing.T) {
	f := newFixture(0)
	for z := -30.0; z < 3000; z += 7.3 {
		f.s.Advance(z, z)
		first, last := f.s.Window(z)
		if got := f.s.ActiveIndices(); !slices.Equal(got, span(first, last)) {
			t.Fatalf("z=%.1f: active %v, window [%d..%d]", z, got, first, last)
		}
	}
	if live, want := f.store.World.Live(), perChunk*len(f.s.ActiveIndices()); live != want {
		t.Errorf("live entities = %d, want %d", live, want)
	}
}

func TestAdvanceIdempotent(t *testing.T) {
	f := newFixture(1)
	f.s.Advance(123, 123)
	calls, live := len(f.gen.calls), f.store.World.Live()
	active := f.s.ActiveIndices()
	for i := 0; i < 3; i++ {
		f.s.Advance(123, 123)
	}
	if len(f.gen.calls) != calls || f.store.World.Live() != live {
		t.Error("repeated advance changed the world")
	}
	if !slices.Equal(f.s.ActiveIndices(), active) {
		t.Error("repeated advance changed the active set")
	}
}

func TestEachChunkGeneratedOnce(t *testing.T) {
	f := newFixture(0)
	for z := 0.0; z < 1000; z += 3 {
		f.s.Advance(z, z)
	}
	seen := map[int]bool{}
	for _, idx := range f.gen.calls {
		if seen[idx] {
			t.Fatalf("chunk %d generated twice", idx)
		}
		seen[idx] = true
	}
}

func TestVehiclesHandedOffAndKept(t *testing.T) {
	f := newFixture(2)
	f.s.Advance(0, 0)
	if len(f.tracked) != 2*len(f.s.ActiveIndices()) {
		t.Fatalf("tracked %d vehicles for %d chunks", len(f.tracked), len(f.s.ActiveIndices()))
	}
	f.s.Advance(1000, 1000)
	for id, chunk := range f.tracked {
		if !f.store.Alive(id) {
			t.Errorf("vehicle %v from chunk %d released by the streamer", id, chunk)
		}
	}
}

func TestRemovalSkipsDeadHandles(t *testing.T) {
	f := newFixture(0)
	var despawned []event.ChunkDespawned
	event.Subscribe(f.bus, func(e event.ChunkDespawned) { despawned = append(despawned, e) })

	f.s.Advance(0, 0)
	victim := f.s.active[-2].owned[0]
	f.store.Release(victim)
	f.s.Advance(80, 80)

	f.bus.SwapBuffers()
	f.bus.DispatchAll()
	var got *event.ChunkDespawned
	for i := range despawned {
		if despawned[i].Index == -2 {
			got = &despawned[i]
		}
	}
	if got == nil {
		t.Fatal("chunk -2 not despawned")
	}
	if got.Released != perChunk-1 {
		t.Errorf("released = %d, want %d", got.Released, perChunk-1)
	}
}

func TestResetTearsDownEverything(t *testing.T) {
	f := newFixture(1)
	f.s.Advance(200, 200)
	vehicles := len(f.tracked)
	f.s.Reset()
	if n := len(f.s.ActiveIndices()); n != 0 {
		t.Errorf("active after reset = %d", n)
	}
	if f.gen.resets != 1 {
		t.Errorf("generator resets = %d", f.gen.resets)
	}
	if live := f.store.World.Live(); live != vehicles {
		t.Errorf("live after reset = %d, want %d tracked vehicles", live, vehicles)
	}
}

func TestSpawnEvents(t *testing.T) {
	f := newFixture(1)
	spawned := map[int]int{}
	vehicles := 0
	event.Subscribe(f.bus, func(e event.ChunkSpawned) { spawned[e.Index] = e.Entities })
	event.Subscribe(f.bus, func(event.VehicleSpawned) { vehicles++ })

	f.s.Advance(0, 0)
	f.bus.SwapBuffers()
	f.bus.DispatchAll()
	if len(spawned) != 6 || vehicles != 6 {
		t.Errorf("spawned %d chunks, %d vehicles", len(spawned), vehicles)
	}
	for idx, n := range spawned {
		if n != perChunk {
			t.Errorf("chunk %d reported %d entities", idx, n)
		}
	}
}

func TestSetRenderDistance(t *testing.T) {
	f := newFixture(0)
	f.s.SetRenderDistance(300)
	f.s.Advance(0, 0)
	if _, last := f.s.Window(0); last != 7 {
		t.Errorf("last = %d, want 7", last)
	}
	if !f.s.Active(7) {
		t.Error("chunk 7 not generated")
	}
	f.s.SetRenderDistance(-5)
	if f.s.RenderDistance() != 0 {
		t.Error("negative render distance accepted")
	}
}

func TestDefaultWindowStartsAtTrailingEdge(t *testing.T) {
	f := newFixture(0)
	for z := -100.0; z < 500; z += 13 {
		first, _ := f.s.Window(z)
		if want := int(math.Floor((z - 50) / 40)); first != want {
			t.Fatalf("z=%.0f: first = %d, want %d", z, first, want)
		}
	}
}

func newRealStreamer(seed int64) (*Streamer, trackRecorder) {
	cfg := config.Defaults()
	store := component.NewStore()
	gen := worldgen.New(cfg, worldgen.DefaultTables(), store, rand.New(rand.NewSource(seed)), nil)
	tracked := trackRecorder{}
	model := difficulty.NewModel(cfg.Difficulty, difficulty.ModeHardcore)
	return New(cfg.Stream, gen, store, model, tracked, nil, nil), tracked
}

func TestFingerprintDeterministic(t *testing.T) {
	a, _ := newRealStreamer(7)
	b, _ := newRealStreamer(7)
	c, _ := newRealStreamer(8)
	for z := 0.0; z <= 600; z += 5 {
		a.Advance(z, z)
		b.Advance(z, z)
		c.Advance(z, z)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("same seed produced different layouts")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different seeds produced identical layouts")
	}
}

func TestRealGeneratorChunkZeroSafe(t *testing.T) {
	s, tracked := newRealStreamer(3)
	s.Advance(0, 0)
	for _, idx := range s.ActiveIndices() {
		if idx <= 0 {
			if _, ok := s.Crossing(idx); ok {
				t.Errorf("crossing on chunk %d", idx)
			}
		}
	}
	for id, chunk := range tracked {
		if chunk <= 0 {
			t.Errorf("vehicle %v spawned on chunk %d", id, chunk)
		}
	}
}
