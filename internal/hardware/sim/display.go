package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
)

// DefaultDigitDwell is how long each digit stays lit during multiplexing.
const DefaultDigitDwell = 2 * time.Millisecond

// Display models six multiplexed 7-segment digits and implements
// hardware.Display. Only one position is enabled at a time; each write
// keeps it lit for the dwell time before returning.
type Display struct {
	// clock paces the per-digit dwell.
	clock clockwork.Clock
	// dwell is how long a digit stays enabled.
	dwell time.Duration

	// mu protects the fields below.
	mu sync.Mutex
	// latched holds the last value shown at each position.
	latched stopwatch.Digits
	// enabled is the position currently lit, -1 before the first write.
	enabled int
	// writes counts ShowDigit calls.
	writes uint64
}

// NewDisplay creates a blank display.
func NewDisplay(clock clockwork.Clock, dwell time.Duration) *Display {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if dwell < 0 {
		dwell = 0
	}

	return &Display{
		clock:   clock,
		dwell:   dwell,
		enabled: -1,
	}
}

// ShowDigit enables position and drives value onto it for the dwell time.
// Out-of-range positions or values are ignored.
func (d *Display) ShowDigit(position int, value uint8) {
	if position < 0 || position >= stopwatch.DigitCount || value > 9 {
		return
	}

	d.mu.Lock()
	d.enabled = position
	d.latched[position] = value
	d.writes++
	d.mu.Unlock()

	if d.dwell > 0 {
		d.clock.Sleep(d.dwell)
	}
}

// Digits returns the last value shown at every position.
func (d *Display) Digits() stopwatch.Digits {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.latched
}

// Enabled returns the currently lit position, or -1 before the first write.
func (d *Display) Enabled() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.enabled
}

// Writes returns the number of digit writes so far.
func (d *Display) Writes() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.writes
}

// String renders what a viewer sees as HH:MM:SS.
func (d *Display) String() string {
	digits := d.Digits()

	return fmt.Sprintf("%d%d:%d%d:%d%d",
		digits[5], digits[4], digits[3], digits[2], digits[1], digits[0])
}
