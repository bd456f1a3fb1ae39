package hardware

import (
	"sync/atomic"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
)

// ControlLatch collects control events raised from interrupt handlers.
// Raise only touches an atomic word, so it never blocks or allocates.
// A foreground goroutine drains the latch and forwards the events as one batch.
type ControlLatch struct {
	// bits holds one bit per pending stopwatch.Event.
	bits atomic.Uint32
}

// Raise marks event as pending. Raising a pending event again is a no-op.
func (l *ControlLatch) Raise(event stopwatch.Event) {
	l.bits.Or(1 << event)
}

// Drain returns and clears the pending events in stopwatch.Event order.
func (l *ControlLatch) Drain() []stopwatch.Event {
	bits := l.bits.Swap(0)
	if bits == 0 {
		return nil
	}

	var events []stopwatch.Event

	for event := stopwatch.EventTick; event <= stopwatch.EventReset; event++ {
		if bits&(1<<event) != 0 {
			events = append(events, event)
		}
	}

	return events
}
