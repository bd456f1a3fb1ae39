package sim

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/stopwatch/internal/hardware"
)

// Panel is a virtual button panel implementing hardware.Input.
// Taps hold a button down for a fixed duration so the core's debouncer sees a
// stable press, like a finger on a real switch.
type Panel struct {
	// clock schedules automatic releases.
	clock clockwork.Clock

	// mu protects the fields below.
	mu sync.Mutex
	// pressed holds the current level of each button.
	pressed map[hardware.Button]bool
	// releases holds pending release timers per tapped button.
	releases map[hardware.Button]clockwork.Timer
}

// NewPanel creates a panel with every button released.
func NewPanel(clock clockwork.Clock) *Panel {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Panel{
		clock:    clock,
		pressed:  make(map[hardware.Button]bool),
		releases: make(map[hardware.Button]clockwork.Timer),
	}
}

// Pressed implements hardware.Input.
func (p *Panel) Pressed(b hardware.Button) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pressed[b]
}

// Press holds the button down until Release.
func (p *Panel) Press(b hardware.Button) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelRelease(b)
	p.pressed[b] = true
}

// Release lets the button go.
func (p *Panel) Release(b hardware.Button) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelRelease(b)
	p.pressed[b] = false
}

// Tap presses the button and releases it after hold.
// Tapping a button that is already held extends the hold.
func (p *Panel) Tap(b hardware.Button, hold time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelRelease(b)
	p.pressed[b] = true

	var timer clockwork.Timer

	timer = p.clock.AfterFunc(hold, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		// A newer tap or an explicit press/release replaced this timer.
		if p.releases[b] != timer {
			return
		}

		delete(p.releases, b)
		p.pressed[b] = false
	})

	p.releases[b] = timer
}

// cancelRelease stops a pending automatic release. Callers hold mu.
func (p *Panel) cancelRelease(b hardware.Button) {
	if timer, ok := p.releases[b]; ok {
		timer.Stop()
		delete(p.releases, b)
	}
}
