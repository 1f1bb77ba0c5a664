package logging

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/curbrush/world/internal/config"
)

func TestLevelFromConfig(t *testing.T) {
	for _, tc := range []struct {
		level string
		debug bool
	}{
		{"debug", true},
		{"warn", false},
		{"nonsense", false},
	} {
		log, err := New(config.LoggingConfig{Level: tc.level, Format: "json"})
		if err != nil {
			t.Fatalf("%s: %v", tc.level, err)
		}
		if got := log.Core().Enabled(zapcore.DebugLevel); got != tc.debug {
			t.Errorf("%s: debug enabled = %v", tc.level, got)
		}
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.log")
	log, err := ToFile(config.LoggingConfig{Level: "info"}, path)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello")
	_ = log.Sync()
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info disabled")
	}
}
