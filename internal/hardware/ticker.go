package hardware

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTickPeriod is the real-time interval between ticks.
const DefaultTickPeriod = time.Second

// Ticker is a gateable periodic tick source.
//
// While started it calls onTick once per period from its own goroutine. Stop
// halts it without losing phase information that matters: the next Start
// begins a fresh period, so stopped time is never caught up.
type Ticker struct {
	// clock provides the underlying periodic ticker.
	clock clockwork.Clock
	// onTick is invoked once per elapsed period.
	onTick func()
	// period is the interval between ticks.
	period time.Duration

	// mu protects the fields below.
	mu sync.Mutex
	// ticker is the active clock ticker, nil while stopped.
	ticker clockwork.Ticker
	// stop is closed to end the delivery goroutine.
	stop chan struct{}
	// done is closed by the delivery goroutine on exit.
	done chan struct{}
}

// NewTicker creates a stopped tick source.
func NewTicker(clock clockwork.Clock, period time.Duration, onTick func()) *Ticker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if period <= 0 {
		period = DefaultTickPeriod
	}

	return &Ticker{
		clock:  clock,
		onTick: onTick,
		period: period,
	}
}

// Start begins ticking from zero phase. Starting a running ticker is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ticker != nil {
		return
	}

	t.ticker = t.clock.NewTicker(t.period)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	go t.deliver(t.ticker, t.stop, t.done)
}

// Stop halts ticking. When Stop returns no further onTick call is in flight.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ticker == nil {
		return
	}

	t.ticker.Stop()
	close(t.stop)
	<-t.done

	t.ticker = nil
}

// Reset realigns the period so the next tick is a full period from now.
// It does not change whether the ticker is running.
func (t *Ticker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ticker == nil {
		return
	}

	t.ticker.Reset(t.period)
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ticker != nil
}

// Period returns the tick interval.
func (t *Ticker) Period() time.Duration {
	return t.period
}

// deliver forwards clock ticks to onTick until stop is closed.
func (t *Ticker) deliver(ticker clockwork.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			select {
			case <-stop:
				return
			default:
			}

			if t.onTick != nil {
				t.onTick()
			}
		}
	}
}
