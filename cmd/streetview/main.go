package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/difficulty"
	"github.com/curbrush/world/internal/logging"
	"github.com/curbrush/world/internal/scripting"
	"github.com/curbrush/world/internal/system"
	"github.com/curbrush/world/internal/worldgen"
)

const (
	speedStep  = 4.0
	maxSpeed   = 80.0
	renderStep = 25.0
	minRender  = 50.0
	maxRender  = 600.0
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

type viewer struct {
	screen tcell.Screen
	sess   *system.Session
	lua    *scripting.Engine
	tick   time.Duration
	log    *zap.Logger
}

func run() error {
	cfgPath := "config/world.toml"
	if p := os.Getenv("WORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The screen is ours; logs go to a file.
	log, err := logging.ToFile(cfg.Logging, "streetview.log")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	mode, err := difficulty.ParseMode(cfg.Sim.Mode)
	if err != nil {
		return err
	}
	tables, err := worldgen.LoadTables(cfg.Data, log)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}

	v := &viewer{tick: cfg.Sim.TickRate, log: log}
	if cfg.Scripting.Enabled {
		v.lua, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer v.lua.Close()
		if _, err := v.lua.TuneRarity(cfg); err != nil {
			return err
		}
	}

	v.sess = system.NewSession(cfg, tables, mode, rand.New(rand.NewSource(cfg.Sim.Seed)), log)
	if v.lua != nil && v.lua.HasShaper() {
		if err := v.sess.Model.SetShaper(v.lua); err != nil {
			return err
		}
	}
	v.sess.Player.Speed = cfg.Sim.Speed
	v.sess.Start()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	v.screen = screen
	defer screen.Fini()

	v.loop()
	return nil
}

func (v *viewer) loop() {
	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-ticker.C:
			v.sess.Tick(v.tick)
			draw(v.screen, v.sess)
		}
	}
}

// handle applies one input event; it returns false when the viewer should quit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		p := v.sess.Player
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			p.Speed = min(p.Speed+speedStep, maxSpeed)
		case '-':
			p.Speed = max(p.Speed-speedStep, 0)
		case '[', ']':
			d := v.sess.Streamer.RenderDistance() + renderStep
			if ev.Rune() == '[' {
				d = v.sess.Streamer.RenderDistance() - renderStep
			}
			v.sess.Streamer.SetRenderDistance(min(max(d, minRender), maxRender))
			v.log.Info("render distance changed", zap.Float64("distance", v.sess.Streamer.RenderDistance()))
		case 'r':
			v.sess.Reset(v.sess.Model.Mode())
			v.sess.Start()
		case 'm':
			next := v.sess.Model.Mode().Next()
			v.sess.Reset(next)
			v.sess.Start()
			v.log.Info("mode changed", zap.String("mode", next.String()))
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}
