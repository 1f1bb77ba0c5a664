package difficulty

import (
	"math"
	"testing"
	"time"

	"github.com/curbrush/world/internal/config"
)

func newTestModel(mode Mode) *Model {
	return NewModel(config.Defaults().Difficulty, mode)
}

func TestDifficultyClampsOutsideThresholds(t *testing.T) {
	m := newTestModel(ModeEndless)
	cfg := config.Defaults().Difficulty

	for _, d := range []float64{-50, 0, cfg.EasyDistance - 1, cfg.EasyDistance} {
		if got := m.Difficulty(d); got != 0 {
			t.Errorf("Difficulty(%v) = %v, want 0", d, got)
		}
	}
	for _, d := range []float64{cfg.HardDistance, cfg.HardDistance + 1, 1e9} {
		if got := m.Difficulty(d); got != 1 {
			t.Errorf("Difficulty(%v) = %v, want 1", d, got)
		}
	}
}

func TestDifficultyNonDecreasing(t *testing.T) {
	m := newTestModel(ModeEndless)
	cfg := config.Defaults().Difficulty
	prev := -1.0
	for d := cfg.EasyDistance; d <= cfg.HardDistance; d += 7.5 {
		got := m.Difficulty(d)
		if got < prev {
			t.Fatalf("difficulty dropped at %v: %v < %v", d, got, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("difficulty %v out of range at %v", got, d)
		}
		prev = got
	}
}

func TestZeroDistanceUsesModeFloor(t *testing.T) {
	cfg := config.Defaults().Difficulty
	tests := []struct {
		mode     Mode
		curve    config.ModeCurve
		crossing float64
	}{
		{ModeEndless, cfg.Endless, 0},
		{ModeHardcore, cfg.Hardcore, cfg.Hardcore.CrossingProbability.Easy},
		{ModeTimeTrial, cfg.TimeTrial, cfg.TimeTrial.CrossingProbability.Easy},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			m := newTestModel(tt.mode)
			p := m.Params(0)
			if p.Difficulty != 0 {
				t.Fatalf("difficulty = %v", p.Difficulty)
			}
			if p.ObstacleDensity != tt.curve.ObstacleDensity.Easy {
				t.Errorf("density = %v, want floor %v", p.ObstacleDensity, tt.curve.ObstacleDensity.Easy)
			}
			if p.CrossingProbability != tt.crossing {
				t.Errorf("crossing = %v, want %v", p.CrossingProbability, tt.crossing)
			}
		})
	}
	if newTestModel(ModeHardcore).CrossingProbability(0) == 0 {
		t.Error("hardcore must allow crossing crowds from the start")
	}
}

func TestEndlessGracePeriod(t *testing.T) {
	m := newTestModel(ModeEndless)
	cfg := config.Defaults().Difficulty
	justBelow := cfg.EasyDistance + (cfg.HardDistance-cfg.EasyDistance)*(cfg.GraceDifficulty-0.01)
	if got := m.CrossingProbability(justBelow); got != 0 {
		t.Errorf("crossing probability inside grace = %v", got)
	}
	justAbove := cfg.EasyDistance + (cfg.HardDistance-cfg.EasyDistance)*(cfg.GraceDifficulty+0.01)
	if got := m.CrossingProbability(justAbove); got <= 0 {
		t.Errorf("crossing probability after grace = %v", got)
	}
}

func TestDerivedGettersMoveWithDifficulty(t *testing.T) {
	m := newTestModel(ModeEndless)
	easy, hard := m.Params(0), m.Params(1e6)
	if hard.MinSpacing >= easy.MinSpacing {
		t.Errorf("spacing should shrink: %v -> %v", easy.MinSpacing, hard.MinSpacing)
	}
	if hard.ObstacleDensity <= easy.ObstacleDensity {
		t.Errorf("density should grow: %v -> %v", easy.ObstacleDensity, hard.ObstacleDensity)
	}
	if hard.VehicleSpeed.Max <= easy.VehicleSpeed.Max || hard.PedSpeed.Min <= easy.PedSpeed.Min {
		t.Error("speed ranges should grow")
	}
	if hard.VehicleProbability <= easy.VehicleProbability {
		t.Error("vehicle probability should grow")
	}
}

func TestHardcoreTimeRampNeverDecreases(t *testing.T) {
	m := newTestModel(ModeHardcore)
	ramp := config.Defaults().Difficulty.HardcoreRamp

	m.SetElapsedHardcore(ramp / 2)
	if got := m.Difficulty(0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("stalled distance with half ramp = %v, want 0.5", got)
	}
	m.SetElapsedHardcore(2 * ramp)
	if got := m.Difficulty(0); got != 1 {
		t.Errorf("past ramp = %v, want 1", got)
	}

	// Distance-based value wins when it is larger.
	m.SetElapsedHardcore(time.Second)
	if got := m.Difficulty(1e6); got != 1 {
		t.Errorf("distance dominated = %v", got)
	}

	// Outside hardcore the clock is ignored.
	e := newTestModel(ModeEndless)
	e.SetElapsedHardcore(2 * ramp)
	if got := e.Difficulty(0); got != 0 {
		t.Errorf("endless ignored clock? got %v", got)
	}
}

func TestSetModeClearsClock(t *testing.T) {
	m := newTestModel(ModeHardcore)
	m.SetElapsedHardcore(time.Minute)
	m.SetMode(ModeHardcore)
	if m.ElapsedHardcore() != 0 {
		t.Error("clock survived mode reset")
	}
}

func TestCrossingCrowdScales(t *testing.T) {
	p := Params{Difficulty: 0, MaxCrossingPeds: 9}
	if p.CrossingCrowd() != MinCrossingPeds {
		t.Errorf("crowd at 0 = %d", p.CrossingCrowd())
	}
	p.Difficulty = 1
	if p.CrossingCrowd() != 9 {
		t.Errorf("crowd at 1 = %d", p.CrossingCrowd())
	}
	p.MaxCrossingPeds = 1
	if p.CrossingCrowd() != MinCrossingPeds {
		t.Errorf("crowd with tiny max = %d", p.CrossingCrowd())
	}
}

type squareShaper struct{}

func (squareShaper) ShapeDifficulty(x float64, _ Mode) float64 { return x * x }

type brokenShaper struct{}

func (brokenShaper) ShapeDifficulty(x float64, _ Mode) float64 { return 1 - x }

func TestShaperApplied(t *testing.T) {
	m := newTestModel(ModeEndless)
	if err := m.SetShaper(squareShaper{}); err != nil {
		t.Fatal(err)
	}
	cfg := config.Defaults().Difficulty
	mid := (cfg.EasyDistance + cfg.HardDistance) / 2
	if got := m.Difficulty(mid); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("shaped midpoint = %v, want 0.25", got)
	}
	if m.Difficulty(0) != 0 || m.Difficulty(1e6) != 1 {
		t.Error("shaper broke endpoints")
	}
}

func TestShaperRejectedWhenNotMonotone(t *testing.T) {
	m := newTestModel(ModeEndless)
	if err := m.SetShaper(brokenShaper{}); err == nil {
		t.Fatal("expected rejection")
	}
	if got := m.Difficulty(0); got != 0 {
		t.Errorf("rejected shaper still active: %v", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":           ModeEndless,
		"Endless":    ModeEndless,
		"hardcore":   ModeHardcore,
		"time-trial": ModeTimeTrial,
	} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("zen"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if ModeTimeTrial.Next() != ModeEndless {
		t.Error("mode cycle does not wrap")
	}
}
