package machine

import (
	"time"

	"github.com/oshokin/stopwatch/internal/hardware"
)

// alarm holds an output on for a fixed minimum duration. Deactivation is
// polled from the foreground loop instead of blocking it.
type alarm struct {
	// out is the buzzer.
	out hardware.Output
	// hold is the minimum active duration.
	hold time.Duration
	// until is when the output may be switched off.
	until time.Time
	// active mirrors the output level.
	active bool
}

// raise switches the output on until now+hold.
func (a *alarm) raise(now time.Time) {
	a.active = true
	a.until = now.Add(a.hold)
	a.out.Set(true)
}

// update switches the output off once the hold has elapsed.
// It reports whether the alarm was silenced by this call.
func (a *alarm) update(now time.Time) bool {
	if !a.active || now.Before(a.until) {
		return false
	}

	a.silence()

	return true
}

// silence switches the output off immediately.
func (a *alarm) silence() {
	a.active = false
	a.until = time.Time{}
	a.out.Set(false)
}
