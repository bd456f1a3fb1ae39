package hardware

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
)

// DefaultControlPoll is the sampling interval for the control lines.
const DefaultControlPoll = 5 * time.Millisecond

// controlButtons are the lines sampled by the EdgeWatcher.
//
//nolint:gochecknoglobals // Fixed table.
var controlButtons = [...]Button{ButtonReset, ButtonPause, ButtonResume}

// EventSink receives control events raised in the same instant.
type EventSink func(events ...stopwatch.Event)

// EdgeWatcher samples the reset, pause and resume lines and raises their
// events on every released-to-pressed edge. It stands in for edge-triggered
// interrupts on targets that can only poll.
type EdgeWatcher struct {
	// input is the sampled button source.
	input Input
	// clock drives the sampling ticker.
	clock clockwork.Clock
	// sink receives events detected in one sample.
	sink EventSink
	// interval is the sampling period.
	interval time.Duration
	// last holds the previous level of each control line.
	last [len(controlButtons)]bool
}

// NewEdgeWatcher creates a watcher; call Run to start sampling.
func NewEdgeWatcher(input Input, clock clockwork.Clock, interval time.Duration, sink EventSink) *EdgeWatcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if interval <= 0 {
		interval = DefaultControlPoll
	}

	return &EdgeWatcher{
		input:    input,
		clock:    clock,
		sink:     sink,
		interval: interval,
	}
}

// Run samples until ctx is done.
func (w *EdgeWatcher) Run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			w.Sample()
		}
	}
}

// Sample reads every control line once and forwards the edges found.
func (w *EdgeWatcher) Sample() {
	var events []stopwatch.Event

	for i, button := range controlButtons {
		pressed := w.input.Pressed(button)
		if pressed && !w.last[i] {
			if event, ok := button.ControlEvent(); ok {
				events = append(events, event)
			}
		}

		w.last[i] = pressed
	}

	if len(events) > 0 && w.sink != nil {
		w.sink(events...)
	}
}
