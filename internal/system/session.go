package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/curbrush/world/internal/component"
	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/core/event"
	coresys "github.com/curbrush/world/internal/core/system"
	"github.com/curbrush/world/internal/difficulty"
	"github.com/curbrush/world/internal/stream"
	"github.com/curbrush/world/internal/worldgen"
)

// Session wires one playable street: entity store, difficulty model,
// generator, streamer and the tick systems that drive them.
type Session struct {
	Config    *config.Config
	Store     *component.Store
	Bus       *event.Bus
	Model     *difficulty.Model
	Generator *worldgen.Generator
	Streamer  *stream.Streamer
	Vehicles  *VehicleCullSystem
	Player    *PlayerState
	Runner    *coresys.Runner
	Journal   *Journal

	log *zap.Logger
}

// NewSession builds a session in the given mode. rng drives every random
// choice of the generator; seed it for reproducible runs.
func NewSession(cfg *config.Config, tables worldgen.Tables, mode difficulty.Mode, rng worldgen.Rand, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	store := component.NewStore()
	bus := event.NewBus()
	journal := newJournal(bus)
	model := difficulty.NewModel(cfg.Difficulty, mode)
	player := &PlayerState{}
	gen := worldgen.New(cfg, tables, store, rng, log.Named("worldgen"))
	vehicles := NewVehicleCullSystem(cfg.Stream, store, player, log)
	streamer := stream.New(cfg.Stream, gen, store, model, vehicles, bus, log.Named("stream"))
	vehicles.FollowHorizon(streamer, cfg.Layout.SpawnLead())

	runner := coresys.NewRunner()
	runner.Register(NewInputSystem(player, model))
	runner.Register(NewEventDispatchSystem(bus))
	runner.Register(NewStreamSystem(player, streamer))
	runner.Register(vehicles)
	runner.Register(NewAirplaneSystem(store))
	runner.Register(NewLODSystem(store, player))
	runner.Register(NewCleanupSystem(store.World, log))

	return &Session{
		Config:    cfg,
		Store:     store,
		Bus:       bus,
		Model:     model,
		Generator: gen,
		Streamer:  streamer,
		Vehicles:  vehicles,
		Player:    player,
		Runner:    runner,
		Journal:   journal,
		log:       log,
	}
}

// Start materialises the window around the player before the first tick.
func (s *Session) Start() {
	s.Streamer.Advance(s.Player.Z, s.Player.Distance)
}

func (s *Session) Tick(dt time.Duration) {
	s.Runner.Tick(dt)
}

// Reset tears the street down between runs: every chunk and vehicle is
// released, rarity trackers return to their sentinels and the player goes
// back to the start line. The player's speed is kept.
func (s *Session) Reset(mode difficulty.Mode) {
	s.Streamer.Reset()
	s.Vehicles.Reset()
	s.Store.World.FlushDestroyQueue()
	s.Bus.Clear()
	s.Model.SetMode(mode)

	speed := s.Player.Speed
	*s.Player = PlayerState{Speed: speed}

	event.Emit(s.Bus, event.SessionReset{})
	s.log.Info("session reset",
		zap.String("mode", mode.String()),
		zap.Int("live_entities", s.Store.World.Live()),
		zap.Int("components", s.Store.World.Registry().Components()),
	)
}
