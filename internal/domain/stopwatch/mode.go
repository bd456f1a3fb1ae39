package stopwatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMode is returned when a mode name cannot be parsed.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnknownRunState is returned when a run state name cannot be parsed.
	ErrUnknownRunState = errors.New("unknown run state")
)

// Mode selects the per-tick transformation.
type Mode uint8

const (
	// ModeIncrement counts up.
	ModeIncrement Mode = iota
	// ModeCountdown counts down towards 00:00:00.
	ModeCountdown
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeIncrement {
		return ModeCountdown
	}

	return ModeIncrement
}

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeIncrement:
		return "increment"
	case ModeCountdown:
		return "countdown"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "increment", "up":
		return ModeIncrement, nil
	case "countdown", "down":
		return ModeCountdown, nil
	default:
		return ModeIncrement, fmt.Errorf("unknown mode %q: %w", s, ErrUnknownMode)
	}
}

// RunState tells whether ticks are being consumed.
type RunState uint8

const (
	// Running consumes ticks.
	Running RunState = iota
	// Paused drops ticks and enables time adjustment.
	Paused
)

// String returns the lowercase run state name.
func (r RunState) String() string {
	switch r {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("run_state(%d)", uint8(r))
	}
}

// ParseRunState converts a run state name into a RunState.
func ParseRunState(s string) (RunState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "running":
		return Running, nil
	case "paused":
		return Paused, nil
	default:
		return Running, fmt.Errorf("unknown run state %q: %w", s, ErrUnknownRunState)
	}
}
