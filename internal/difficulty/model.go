package difficulty

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/curbrush/world/internal/config"
)

// MinCrossingPeds is the smallest crowd a populated crossing gets.
const MinCrossingPeds = 3

// Shaper remaps the linear distance progress before it becomes the
// difficulty scalar. Implementations must be non-decreasing and keep 0 at 0
// and 1 at 1; SetShaper rejects any that do not.
type Shaper interface {
	ShapeDifficulty(linear float64, mode Mode) float64
}

// Range is a closed interval sampled by the spawners.
type Range struct {
	Min float64
	Max float64
}

// At returns the point a fraction t of the way from Min to Max.
func (r Range) At(t float64) float64 { return lerp(r.Min, r.Max, t) }

// Params is a snapshot of every derived getter for one distance. The
// generator reads only this value, never the model.
type Params struct {
	Mode                Mode
	Difficulty          float64
	ObstacleDensity     float64
	MinSpacing          float64
	PedSpeed            Range
	VehicleSpeed        Range
	VehicleProbability  float64
	CrossingProbability float64
	MaxCrossingPeds     int
}

// CrossingCrowd is the number of pedestrians a populated crossing gets:
// MinCrossingPeds at difficulty 0 up to the mode maximum at difficulty 1.
func (p Params) CrossingCrowd() int {
	span := p.MaxCrossingPeds - MinCrossingPeds
	if span <= 0 {
		return MinCrossingPeds
	}
	return MinCrossingPeds + int(math.Round(p.Difficulty*float64(span)))
}

// Model maps progress to the difficulty scalar and the gameplay table.
// Its only state is the mode flags, the externally supplied hardcore clock
// and the optional shaper.
type Model struct {
	cfg     config.DifficultyConfig
	mode    Mode
	elapsed time.Duration
	shaper  Shaper
}

func NewModel(cfg config.DifficultyConfig, mode Mode) *Model {
	return &Model{cfg: cfg, mode: mode}
}

func (m *Model) Mode() Mode { return m.mode }

// SetMode switches mode and clears the hardcore clock.
func (m *Model) SetMode(mode Mode) {
	m.mode = mode
	m.elapsed = 0
}

// SetElapsedHardcore supplies the hardcore session clock.
func (m *Model) SetElapsedHardcore(d time.Duration) { m.elapsed = d }

func (m *Model) ElapsedHardcore() time.Duration { return m.elapsed }

// SetShaper installs a curve override after checking it is monotone and
// keeps its endpoints. A nil shaper restores the linear curve.
func (m *Model) SetShaper(s Shaper) error {
	if s == nil {
		m.shaper = nil
		return nil
	}
	for _, mode := range Modes() {
		if err := checkShaper(s, mode); err != nil {
			return fmt.Errorf("shaper rejected for %s: %w", mode, err)
		}
	}
	m.shaper = s
	return nil
}

const shaperSamples = 64

func checkShaper(s Shaper, mode Mode) error {
	const eps = 1e-6
	if v := s.ShapeDifficulty(0, mode); math.Abs(v) > eps {
		return fmt.Errorf("maps 0 to %v", v)
	}
	if v := s.ShapeDifficulty(1, mode); math.Abs(v-1) > eps {
		return fmt.Errorf("maps 1 to %v", v)
	}
	prev := 0.0
	for i := 1; i <= shaperSamples; i++ {
		v := s.ShapeDifficulty(float64(i)/shaperSamples, mode)
		if math.IsNaN(v) {
			return errors.New("returns NaN")
		}
		if v < prev-eps {
			return fmt.Errorf("decreases at %v", float64(i)/shaperSamples)
		}
		prev = v
	}
	return nil
}

func (m *Model) curve() config.ModeCurve {
	switch m.mode {
	case ModeHardcore:
		return m.cfg.Hardcore
	case ModeTimeTrial:
		return m.cfg.TimeTrial
	}
	return m.cfg.Endless
}

// Difficulty returns the normalised scalar for a travelled distance. In
// hardcore mode the time-based ramp is folded in with max, so difficulty
// keeps rising even when distance stalls.
func (m *Model) Difficulty(distance float64) float64 {
	d := clamp01((distance - m.cfg.EasyDistance) / (m.cfg.HardDistance - m.cfg.EasyDistance))
	if m.shaper != nil {
		d = clamp01(m.shaper.ShapeDifficulty(d, m.mode))
	}
	if m.mode == ModeHardcore {
		d = math.Max(d, m.timeDifficulty())
	}
	return d
}

func (m *Model) timeDifficulty() float64 {
	if m.cfg.HardcoreRamp <= 0 {
		return 0
	}
	return clamp01(float64(m.elapsed) / float64(m.cfg.HardcoreRamp))
}

func (m *Model) ObstacleDensity(distance float64) float64 {
	return spanAt(m.curve().ObstacleDensity, m.Difficulty(distance))
}

// MinObstacleSpacing shrinks as difficulty rises.
func (m *Model) MinObstacleSpacing(distance float64) float64 {
	return spanAt(m.curve().MinSpacing, m.Difficulty(distance))
}

func (m *Model) PedestrianSpeed(distance float64) Range {
	c, d := m.curve(), m.Difficulty(distance)
	return Range{Min: spanAt(c.PedSpeedMin, d), Max: spanAt(c.PedSpeedMax, d)}
}

func (m *Model) VehicleSpeed(distance float64) Range {
	c, d := m.curve(), m.Difficulty(distance)
	return Range{Min: spanAt(c.VehicleSpeedMin, d), Max: spanAt(c.VehicleSpeedMax, d)}
}

func (m *Model) VehicleProbability(distance float64) float64 {
	return spanAt(m.curve().VehicleProbability, m.Difficulty(distance))
}

// CrossingProbability is the chance a crossing is populated. Endless mode
// keeps a grace period below GraceDifficulty where it is exactly zero.
func (m *Model) CrossingProbability(distance float64) float64 {
	d := m.Difficulty(distance)
	if m.mode == ModeEndless && d < m.cfg.GraceDifficulty {
		return 0
	}
	return spanAt(m.curve().CrossingProbability, d)
}

func (m *Model) MaxCrossingPeds() int { return m.curve().MaxCrossingPeds }

// Params snapshots every getter for one distance.
func (m *Model) Params(distance float64) Params {
	return Params{
		Mode:                m.mode,
		Difficulty:          m.Difficulty(distance),
		ObstacleDensity:     m.ObstacleDensity(distance),
		MinSpacing:          m.MinObstacleSpacing(distance),
		PedSpeed:            m.PedestrianSpeed(distance),
		VehicleSpeed:        m.VehicleSpeed(distance),
		VehicleProbability:  m.VehicleProbability(distance),
		CrossingProbability: m.CrossingProbability(distance),
		MaxCrossingPeds:     m.MaxCrossingPeds(),
	}
}

func spanAt(s config.Span, t float64) float64 { return lerp(s.Easy, s.Hard, t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
