package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/difficulty"
	"github.com/curbrush/world/internal/logging"
	"github.com/curbrush/world/internal/persist"
	"github.com/curbrush/world/internal/scripting"
	"github.com/curbrush/world/internal/system"
	"github.com/curbrush/world/internal/worldgen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Output helpers ────────────────────────────────────────────────

var printer = message.NewPrinter(language.English)

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) { // value is an int or float64
	var numStr string
	switch v := value.(type) {
	case float64:
		numStr = printer.Sprintf("%.1f", v)
	default:
		numStr = printer.Sprintf("%d", v)
	}
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/world.toml"
	if p := os.Getenv("WORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	mode, err := difficulty.ParseMode(cfg.Sim.Mode)
	if err != nil {
		return err
	}

	// 3. Content tables
	tables, err := worldgen.LoadTables(cfg.Data, log)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	printSection("Content")
	printStat("Building archetypes", tables.Buildings.Count())
	printStat("Scenery kinds", tables.Scenery.Count())
	printStat("Vehicle models", tables.Vehicles.Count())

	// 4. Rarity overrides from script, applied once before any run starts
	if cfg.Scripting.Enabled {
		eng, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		n, err := eng.TuneRarity(cfg)
		eng.Close()
		if err != nil {
			return err
		}
		if n > 0 {
			printOK(fmt.Sprintf("applied %d rarity overrides", n))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. Independent runs in parallel; each owns its session and VM
	summaries := make([]*persist.RunSummary, cfg.Sim.Runs)
	g, gctx := errgroup.WithContext(ctx)
	for i := range summaries {
		i := i
		seed := cfg.Sim.Seed + int64(i)
		g.Go(func() error {
			s, err := simulate(gctx, cfg, tables, mode, seed, log.With(zap.Int64("seed", seed)))
			if err != nil {
				return fmt.Errorf("run seed %d: %w", seed, err)
			}
			summaries[i] = s
			return nil
		})
	}
	started := time.Now()
	if err := g.Wait(); err != nil {
		return err
	}

	for _, s := range summaries {
		printSection(fmt.Sprintf("Run seed %d (%s)", s.Seed, s.Mode))
		printStat("Distance", s.Distance)
		printStat("Chunks", s.Chunks)
		printStat("Crossings", s.Crossings)
		printStat("Populated crossings", s.PopulatedCrossings)
		printStat("Skyscrapers", s.Skyscrapers)
		printStat("Cranes", s.Cranes)
		printStat("Airplanes", s.Airplanes)
		printStat("Pigeon flocks", s.Flocks)
		printStat("Pedestrians", s.Pedestrians)
		printStat("Vehicles", s.Vehicles)
		printStat("Hazards", s.Hazards)
		fmt.Printf("  \033[90m%s\033[0m\n", s.Fingerprint)
	}
	fmt.Println()
	printOK(fmt.Sprintf("%d runs simulated in %s", len(summaries), time.Since(started).Round(time.Millisecond)))

	// 6. Optional persistence
	if !cfg.Database.Enabled {
		return nil
	}
	return store(ctx, cfg.Database, summaries, log)
}

// simulate drives one session at constant speed for the configured time.
func simulate(ctx context.Context, cfg *config.Config, tables worldgen.Tables, mode difficulty.Mode,
	seed int64, log *zap.Logger) (*persist.RunSummary, error) {
	sess := system.NewSession(cfg, tables, mode, rand.New(rand.NewSource(seed)), log)

	if cfg.Scripting.Enabled {
		eng, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return nil, err
		}
		defer eng.Close()
		if eng.HasShaper() {
			if err := sess.Model.SetShaper(eng); err != nil {
				return nil, err
			}
		}
	}

	sess.Player.Speed = cfg.Sim.Speed
	sess.Start()
	ticks := int(cfg.Sim.Duration / cfg.Sim.TickRate)
	for i := 0; i < ticks; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		sess.Tick(cfg.Sim.TickRate)
	}

	st := sess.Generator.Stats()
	hazards := 0
	for _, n := range st.Hazards {
		hazards += n
	}
	log.Info("run finished",
		zap.Float64("distance", sess.Player.Distance),
		zap.Int("chunks", st.Chunks),
		zap.Int("live_entities", sess.Store.World.Live()),
		zap.Int("vehicles_culled", sess.Vehicles.Culled()),
		zap.Int("chunks_despawned", sess.Journal.ChunksDespawned),
		zap.Int("entities_released", sess.Journal.Released),
	)
	return &persist.RunSummary{
		Seed:               seed,
		Mode:               mode.String(),
		Duration:           sess.Player.Elapsed,
		Distance:           sess.Player.Distance,
		Chunks:             st.Chunks,
		Crossings:          st.Crossings,
		PopulatedCrossings: st.PopulatedCrossings,
		Skyscrapers:        st.Skyscrapers,
		Cranes:             st.Cranes,
		Airplanes:          st.Airplanes,
		Flocks:             st.Flocks,
		Pedestrians:        st.Pedestrians,
		Vehicles:           st.Vehicles,
		Hazards:            hazards,
		Fingerprint:        sess.Streamer.Fingerprint(),
	}, nil
}

func store(ctx context.Context, cfg config.DatabaseConfig, runs []*persist.RunSummary, log *zap.Logger) error {
	printSection("Database")
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(dbCtx, cfg, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	version, err := persist.RunMigrations(dbCtx, db.Pool)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	printOK(fmt.Sprintf("schema version %d", version))

	repo := persist.NewRunRepo(db)
	for _, s := range runs {
		drift, err := repo.FingerprintDrift(dbCtx, s)
		if err != nil {
			return fmt.Errorf("drift check: %w", err)
		}
		if drift {
			log.Warn("layout differs from a stored run with the same seed",
				zap.Int64("seed", s.Seed), zap.String("mode", s.Mode))
		}
	}
	if err := repo.SaveBatch(dbCtx, runs); err != nil {
		return fmt.Errorf("save runs: %w", err)
	}
	printOK(fmt.Sprintf("%d runs stored", len(runs)))
	return nil
}
