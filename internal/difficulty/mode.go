package difficulty

import (
	"fmt"
	"strings"
)

// Mode is the game-mode flag set. Exactly one mode is active per run.
type Mode uint8

const (
	ModeEndless Mode = iota
	ModeHardcore
	ModeTimeTrial
)

func (m Mode) String() string {
	switch m {
	case ModeEndless:
		return "endless"
	case ModeHardcore:
		return "hardcore"
	case ModeTimeTrial:
		return "time_trial"
	}
	return "unknown"
}

// Modes lists every game mode in cycling order.
func Modes() []Mode {
	return []Mode{ModeEndless, ModeHardcore, ModeTimeTrial}
}

// Next cycles through the modes; used by the viewer.
func (m Mode) Next() Mode {
	return (m + 1) % 3
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "endless":
		return ModeEndless, nil
	case "hardcore":
		return ModeHardcore, nil
	case "time_trial", "timetrial", "time-trial":
		return ModeTimeTrial, nil
	}
	return ModeEndless, fmt.Errorf("unknown game mode %q", s)
}
