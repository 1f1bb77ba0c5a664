package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Stream     StreamConfig     `toml:"stream"`
	Difficulty DifficultyConfig `toml:"difficulty"`
	Rarity     RarityConfig     `toml:"rarity"`
	Layout     LayoutConfig     `toml:"layout"`
	Data       DataConfig       `toml:"data"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Logging    LoggingConfig    `toml:"logging"`
	Database   DatabaseConfig   `toml:"database"`
	Sim        SimConfig        `toml:"sim"`
}

// StreamConfig drives the chunk window. DespawnDistance is a signed offset
// from the player: negative values trail behind.
type StreamConfig struct {
	ChunkLength       float64 `toml:"chunk_length"`
	RenderDistance    float64 `toml:"render_distance"`
	TrailingMargin    float64 `toml:"trailing_margin"`
	DespawnDistance   float64 `toml:"despawn_distance"`
	VehicleCullBehind float64 `toml:"vehicle_cull_behind"`
	VehicleCullAhead  float64 `toml:"vehicle_cull_ahead"`
}

// Span is a value at difficulty 0 (Easy) and at difficulty 1 (Hard).
type Span struct {
	Easy float64 `toml:"easy"`
	Hard float64 `toml:"hard"`
}

// ModeCurve holds the floor/ceiling table of one game mode.
type ModeCurve struct {
	ObstacleDensity     Span `toml:"obstacle_density"`
	MinSpacing          Span `toml:"min_spacing"`
	PedSpeedMin         Span `toml:"ped_speed_min"`
	PedSpeedMax         Span `toml:"ped_speed_max"`
	VehicleSpeedMin     Span `toml:"vehicle_speed_min"`
	VehicleSpeedMax     Span `toml:"vehicle_speed_max"`
	VehicleProbability  Span `toml:"vehicle_probability"`
	CrossingProbability Span `toml:"crossing_probability"`
	MaxCrossingPeds     int  `toml:"max_crossing_peds"`
}

type DifficultyConfig struct {
	EasyDistance    float64       `toml:"easy_distance"`
	HardDistance    float64       `toml:"hard_distance"`
	GraceDifficulty float64       `toml:"grace_difficulty"` // endless mode: no crossing crowds below this
	HardcoreRamp    time.Duration `toml:"hardcore_ramp"`    // elapsed time to reach difficulty 1 in hardcore
	Endless         ModeCurve     `toml:"endless"`
	Hardcore        ModeCurve     `toml:"hardcore"`
	TimeTrial       ModeCurve     `toml:"time_trial"`
}

// RarityConfig holds gaps (in chunks) and chances for low-frequency features.
type RarityConfig struct {
	CrossingChance       float64 `toml:"crossing_chance"`
	MinCrossingGap       int     `toml:"min_crossing_gap"`
	SkyscraperChance     float64 `toml:"skyscraper_chance"`
	MinSkyscraperGap     int     `toml:"min_skyscraper_gap"`
	SkyscraperSlotChance float64 `toml:"skyscraper_slot_chance"`
	CraneChance          float64 `toml:"crane_chance"`
	MinCraneGap          int     `toml:"min_crane_gap"`
	CraneClusterBoost    float64 `toml:"crane_cluster_boost"`
	CraneClusterWindow   int     `toml:"crane_cluster_window"`
	AirplaneChance       float64 `toml:"airplane_chance"`
	MinAirplaneGap       int     `toml:"min_airplane_gap"`
	AirplaneSpeed        float64 `toml:"airplane_speed"`
	MaxAirplaneLifetime  float64 `toml:"max_airplane_lifetime"` // seconds
	TallTreeChance       float64 `toml:"tall_tree_chance"`
	MinTallTreeGap       int     `toml:"min_tall_tree_gap"`
	PigeonChance         float64 `toml:"pigeon_chance"`
	MinPigeonGap         int     `toml:"min_pigeon_gap"`
	TreeInGapChance      float64 `toml:"tree_in_gap_chance"`
	ChatPairChance       float64 `toml:"chat_pair_chance"`
	ChatDurationMin      float64 `toml:"chat_duration_min"`
	ChatDurationMax      float64 `toml:"chat_duration_max"`
}

// Band is a lateral distance range from the road centre line.
type Band struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

func (b Band) Width() float64 { return b.Max - b.Min }

type LayoutConfig struct {
	RoadHalfWidth       float64 `toml:"road_half_width"`
	LaneOffset          float64 `toml:"lane_offset"`
	SidewalkWidth       float64 `toml:"sidewalk_width"`
	Grass               Band    `toml:"grass"`
	Buildings           Band    `toml:"buildings"`
	CraneSetback        float64 `toml:"crane_setback"`
	BackgroundNear      Band    `toml:"background_near"`
	BackgroundMid       Band    `toml:"background_mid"`
	BackgroundFar       Band    `toml:"background_far"`
	LampSpacing         float64 `toml:"lamp_spacing"`
	CrossingClearance   float64 `toml:"crossing_clearance"`
	CrossingHazardScale float64 `toml:"crossing_hazard_scale"`
	SameDirOffset       float64 `toml:"same_dir_offset"`
	OncomingOffset      float64 `toml:"oncoming_offset"`
	LODSwapDistance     float64 `toml:"lod_swap_distance"`
}

// SpawnLead is the furthest a vehicle is placed ahead of its hazard slot.
func (l LayoutConfig) SpawnLead() float64 { return max(l.SameDirOffset, l.OncomingOffset) }

// SidewalkOuter is the lateral edge of the sidewalk furthest from the road.
func (l LayoutConfig) SidewalkOuter() float64 { return l.RoadHalfWidth + l.SidewalkWidth }

type DataConfig struct {
	BuildingsPath string `toml:"buildings_path"`
	SceneryPath   string `toml:"scenery_path"`
	VehiclesPath  string `toml:"vehicles_path"` // optional enhanced vehicle catalogue
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DatabaseConfig struct {
	Enabled         bool          `toml:"enabled"`
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

// SimConfig drives the headless simulator and the terminal viewer.
type SimConfig struct {
	Runs     int           `toml:"runs"`
	Seed     int64         `toml:"seed"`
	Speed    float64       `toml:"speed"` // player forward speed, units per second
	Duration time.Duration `toml:"duration"`
	TickRate time.Duration `toml:"tick_rate"`
	Mode     string        `toml:"mode"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every precondition the generator relies on.
func (c *Config) Validate() error {
	var errs []error
	s := c.Stream
	if s.ChunkLength <= 0 {
		errs = append(errs, fmt.Errorf("stream.chunk_length must be positive, got %v", s.ChunkLength))
	}
	if s.RenderDistance <= 0 {
		errs = append(errs, fmt.Errorf("stream.render_distance must be positive, got %v", s.RenderDistance))
	}
	if s.TrailingMargin < 0 {
		errs = append(errs, fmt.Errorf("stream.trailing_margin must not be negative, got %v", s.TrailingMargin))
	}
	// The despawn edge may not cut into the generation window, otherwise a
	// chunk could be generated and reclaimed within one advance.
	if s.DespawnDistance < s.ChunkLength-s.TrailingMargin {
		errs = append(errs, fmt.Errorf("stream.despawn_distance %v is behind the trailing window edge (minimum %v)",
			s.DespawnDistance, s.ChunkLength-s.TrailingMargin))
	}

	if s.VehicleCullBehind <= 0 {
		errs = append(errs, fmt.Errorf("stream.vehicle_cull_behind must be positive, got %v", s.VehicleCullBehind))
	}
	// Vehicles spawn up to one chunk past the render distance plus their
	// lane offset; culling before that point would remove them unseen.
	if reach := s.RenderDistance + s.ChunkLength + c.Layout.SpawnLead(); s.VehicleCullAhead < reach {
		errs = append(errs, fmt.Errorf("stream.vehicle_cull_ahead %v is inside the spawn reach (minimum %v)",
			s.VehicleCullAhead, reach))
	}

	d := c.Difficulty
	if d.EasyDistance >= d.HardDistance {
		errs = append(errs, fmt.Errorf("difficulty.easy_distance %v must be below hard_distance %v", d.EasyDistance, d.HardDistance))
	}
	for name, m := range map[string]ModeCurve{"endless": d.Endless, "hardcore": d.Hardcore, "time_trial": d.TimeTrial} {
		if m.MaxCrossingPeds < 3 {
			errs = append(errs, fmt.Errorf("difficulty.%s.max_crossing_peds must be at least 3", name))
		}
		for field, sp := range map[string]Span{
			"obstacle_density":     m.ObstacleDensity,
			"vehicle_probability":  m.VehicleProbability,
			"crossing_probability": m.CrossingProbability,
		} {
			if !unit(sp.Easy) || !unit(sp.Hard) {
				errs = append(errs, fmt.Errorf("difficulty.%s.%s must lie in [0,1]", name, field))
			}
		}
	}

	l := c.Layout
	if l.Grass.Min < l.SidewalkOuter() {
		errs = append(errs, fmt.Errorf("layout.grass.min %v overlaps the sidewalk (edge %v)", l.Grass.Min, l.SidewalkOuter()))
	}
	if l.Grass.Max >= l.Buildings.Min {
		errs = append(errs, fmt.Errorf("layout.grass.max %v must stay below layout.buildings.min %v", l.Grass.Max, l.Buildings.Min))
	}
	if l.BackgroundNear.Min <= l.Buildings.Max+l.CraneSetback {
		errs = append(errs, errors.New("layout.background_near must start behind the crane line"))
	}
	if l.BackgroundMid.Min < l.BackgroundNear.Max || l.BackgroundFar.Min < l.BackgroundMid.Max {
		errs = append(errs, errors.New("layout background bands must be ordered near < mid < far"))
	}

	r := c.Rarity
	for field, p := range map[string]float64{
		"crossing_chance":        r.CrossingChance,
		"skyscraper_chance":      r.SkyscraperChance,
		"skyscraper_slot_chance": r.SkyscraperSlotChance,
		"crane_chance":           r.CraneChance,
		"airplane_chance":        r.AirplaneChance,
		"tall_tree_chance":       r.TallTreeChance,
		"pigeon_chance":          r.PigeonChance,
		"tree_in_gap_chance":     r.TreeInGapChance,
		"chat_pair_chance":       r.ChatPairChance,
	} {
		if !unit(p) {
			errs = append(errs, fmt.Errorf("rarity.%s must lie in [0,1], got %v", field, p))
		}
	}
	if r.SkyscraperSlotChance == 0 {
		errs = append(errs, errors.New("rarity.skyscraper_slot_chance must be positive or clusters never end"))
	}
	if r.AirplaneSpeed <= 0 || r.MaxAirplaneLifetime <= 0 {
		errs = append(errs, errors.New("rarity.airplane_speed and max_airplane_lifetime must be positive"))
	}
	if r.ChatDurationMin > r.ChatDurationMax {
		errs = append(errs, errors.New("rarity.chat_duration_min must not exceed chat_duration_max"))
	}

	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.tick_rate must be positive, got %v", c.Sim.TickRate))
	}
	if c.Sim.Runs < 1 || c.Sim.Speed < 0 {
		errs = append(errs, errors.New("sim.runs must be at least 1 and sim.speed not negative"))
	}
	return errors.Join(errs...)
}

func unit(p float64) bool { return p >= 0 && p <= 1 }
