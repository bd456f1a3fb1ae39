package stopwatch

import (
	"cmp"
	"slices"
)

// Event is an asynchronous stimulus delivered to the time-keeping machine.
type Event uint8

const (
	// EventTick marks one elapsed tick period.
	EventTick Event = iota
	// EventResume restarts tick consumption.
	EventResume
	// EventPause stops tick consumption.
	EventPause
	// EventReset zeroes the clock.
	EventReset
)

// String returns the lowercase event name.
func (e Event) String() string {
	switch e {
	case EventTick:
		return "tick"
	case EventResume:
		return "resume"
	case EventPause:
		return "pause"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// OrderEvents sorts events raised in the same instant into application order.
// Later entries win: a Pause beats a Resume, and a Reset is applied after
// everything else so its zero value is what remains observable.
func OrderEvents(events []Event) []Event {
	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b Event) int {
		return cmp.Compare(a, b)
	})

	return slices.Compact(ordered)
}
