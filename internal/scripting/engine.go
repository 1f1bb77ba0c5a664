package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/curbrush/world/internal/config"
	"github.com/curbrush/world/internal/difficulty"
)

// Engine wraps a single gopher-lua VM for tuning hooks.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Load core helpers first, then world tuning scripts
	for _, sub := range []string{"core", "world"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasShaper reports whether a shape_difficulty function is defined.
func (e *Engine) HasShaper() bool {
	return e.vm.GetGlobal("shape_difficulty") != lua.LNil
}

// ShapeDifficulty calls the Lua shape_difficulty(t, mode) function. Any
// failure falls back to the linear value; results are clamped to [0,1].
func (e *Engine) ShapeDifficulty(linear float64, mode difficulty.Mode) float64 {
	fn := e.vm.GetGlobal("shape_difficulty")
	if fn == lua.LNil {
		return linear
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(linear), lua.LString(mode.String())); err != nil {
		e.log.Error("lua shape_difficulty error", zap.Error(err))
		return linear
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua shape_difficulty returned non-number", zap.String("type", result.Type().String()))
		return linear
	}
	v := float64(n)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// ApplyRarityOverrides copies the fields of the global rarity_overrides
// table onto cfg. Unknown keys are logged and ignored. It returns the
// number of fields applied.
func (e *Engine) ApplyRarityOverrides(cfg *config.RarityConfig) int {
	t, ok := e.vm.GetGlobal("rarity_overrides").(*lua.LTable)
	if !ok {
		return 0
	}
	fields := map[string]any{
		"crossing_chance":        &cfg.CrossingChance,
		"min_crossing_gap":       &cfg.MinCrossingGap,
		"skyscraper_chance":      &cfg.SkyscraperChance,
		"min_skyscraper_gap":     &cfg.MinSkyscraperGap,
		"skyscraper_slot_chance": &cfg.SkyscraperSlotChance,
		"crane_chance":           &cfg.CraneChance,
		"min_crane_gap":          &cfg.MinCraneGap,
		"airplane_chance":        &cfg.AirplaneChance,
		"min_airplane_gap":       &cfg.MinAirplaneGap,
		"tall_tree_chance":       &cfg.TallTreeChance,
		"pigeon_chance":          &cfg.PigeonChance,
		"min_pigeon_gap":         &cfg.MinPigeonGap,
		"chat_pair_chance":       &cfg.ChatPairChance,
	}
	applied := 0
	t.ForEach(func(k, v lua.LValue) {
		key := lua.LVAsString(k)
		switch dst := fields[key].(type) {
		case *float64:
			*dst = lNum(t, key)
			applied++
		case *int:
			*dst = lInt(t, key)
			applied++
		default:
			e.log.Warn("unknown rarity override", zap.String("key", key))
		}
	})
	return applied
}

// TuneRarity applies rarity_overrides to a copy of cfg and validates the
// result. cfg is only updated when the tuned configuration is valid.
func (e *Engine) TuneRarity(cfg *config.Config) (int, error) {
	tuned := *cfg
	n := e.ApplyRarityOverrides(&tuned.Rarity)
	if n == 0 {
		return 0, nil
	}
	if err := tuned.Validate(); err != nil {
		return 0, fmt.Errorf("rarity overrides: %w", err)
	}
	cfg.Rarity = tuned.Rarity
	return n, nil
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lNum reads a number field from a Lua table.
func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
