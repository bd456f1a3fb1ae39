package hardware

import "time"

// DefaultSettleDelay is how long a press must stay stable before it counts.
const DefaultSettleDelay = 30 * time.Millisecond

// DebounceState is the phase of a Debouncer.
type DebounceState uint8

const (
	// DebounceIdle waits for the button to go down.
	DebounceIdle DebounceState = iota
	// DebounceCandidate saw the button down and waits for the settle delay.
	DebounceCandidate
	// DebounceWaitRelease already fired and waits for the button to go up.
	DebounceWaitRelease
)

// String returns the state name.
func (s DebounceState) String() string {
	switch s {
	case DebounceIdle:
		return "idle"
	case DebounceCandidate:
		return "candidate"
	case DebounceWaitRelease:
		return "wait_release"
	default:
		return "unknown"
	}
}

// Debouncer confirms a single button press without blocking.
//
// It walks Idle -> Candidate -> (confirmed) -> WaitRelease -> Idle, driven by
// the sample time passed to Update, so one press fires exactly once no matter
// how long it is held.
type Debouncer struct {
	// settle is the minimum stable pressed duration.
	settle time.Duration
	// since is when the current candidate press was first seen.
	since time.Time
	// state is the current phase.
	state DebounceState
}

// NewDebouncer creates a debouncer with the given settle delay.
func NewDebouncer(settle time.Duration) *Debouncer {
	if settle < 0 {
		settle = 0
	}

	return &Debouncer{settle: settle}
}

// Update feeds one sample and reports whether the press was confirmed by it.
func (d *Debouncer) Update(pressed bool, now time.Time) bool {
	switch d.state {
	case DebounceIdle:
		if !pressed {
			return false
		}

		d.state = DebounceCandidate
		d.since = now

		return d.confirm(now)
	case DebounceCandidate:
		if !pressed {
			d.state = DebounceIdle

			return false
		}

		return d.confirm(now)
	case DebounceWaitRelease:
		if !pressed {
			d.state = DebounceIdle
		}

		return false
	default:
		d.state = DebounceIdle

		return false
	}
}

// confirm fires once the candidate press has been stable for the settle delay.
func (d *Debouncer) confirm(now time.Time) bool {
	if now.Sub(d.since) < d.settle {
		return false
	}

	d.state = DebounceWaitRelease

	return true
}

// Reset forgets any press in progress.
func (d *Debouncer) Reset() {
	d.state = DebounceIdle
	d.since = time.Time{}
}

// State returns the current phase.
func (d *Debouncer) State() DebounceState {
	return d.state
}
