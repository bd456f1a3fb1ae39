package machine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	domain "github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
	"github.com/oshokin/stopwatch/internal/logger"
)

const (
	// DefaultAlarmHold is how long the alarm sounds when a countdown ends.
	DefaultAlarmHold = 2 * time.Second
	// DefaultLoopInterval is the idle pause between foreground iterations.
	DefaultLoopInterval = time.Millisecond
)

var (
	// ErrInputRequired is returned when no input driver is provided.
	ErrInputRequired = errors.New("input driver is required")
	// ErrDisplayRequired is returned when no display driver is provided.
	ErrDisplayRequired = errors.New("display driver is required")
)

// TickSource is a gateable periodic tick producer.
type TickSource interface {
	Start()
	Stop()
	Reset()
}

// Recorder receives machine observations, typically Prometheus metrics.
type Recorder interface {
	ObserveTick(mode domain.Mode)
	ObserveControl(event domain.Event)
	ObserveButton(button hardware.Button, applied bool)
	ObserveAlarm()
	ObserveState(clock domain.Time, mode domain.Mode, run domain.RunState)
}

// Drivers are the hardware collaborators of the machine.
type Drivers struct {
	// Input provides button levels.
	Input hardware.Input
	// Display shows the six clock digits.
	Display hardware.Display
	// Alarm is the buzzer.
	Alarm hardware.Output
	// IncrementLED is lit while counting up.
	IncrementLED hardware.Output
	// CountdownLED is lit while counting down.
	CountdownLED hardware.Output
}

// Options tunes the machine.
type Options struct {
	// Clock is the time source; the real clock when nil.
	Clock clockwork.Clock
	// NewTickSource builds the tick source around the machine's tick callback.
	// A hardware.Ticker with TickPeriod is used when nil.
	NewTickSource func(onTick func()) TickSource
	// Recorder receives observations; may be nil.
	Recorder Recorder
	// TickPeriod is the period of the default tick source.
	TickPeriod time.Duration
	// SettleDelay is the button debounce delay.
	SettleDelay time.Duration
	// AlarmHold is the minimum alarm duration.
	AlarmHold time.Duration
	// LoopInterval is the pause between foreground iterations in Run.
	LoopInterval time.Duration
	// InitialMode is the counting mode at start-up.
	InitialMode domain.Mode
	// InitialTime is the clock value at start-up; invalid values start at zero.
	InitialTime domain.Time
	// InitialRunState is the run state at start-up.
	InitialRunState domain.RunState
	// InitialHalted restores a countdown that already stopped at zero; its
	// alarm is treated as spent and only Resume restarts the tick source.
	InitialHalted bool
}

// Snapshot is a consistent copy of the machine state.
type Snapshot struct {
	// Time is the clock value.
	Time domain.Time
	// Mode is the counting mode.
	Mode domain.Mode
	// RunState tells whether ticks are consumed.
	RunState domain.RunState
	// Halted is set after a countdown reached zero until the next resume.
	Halted bool
	// AlarmActive is set while the alarm sounds.
	AlarmActive bool
	// PendingTick is set while a tick waits for the foreground loop.
	PendingTick bool
}

// Machine is the stopwatch state machine.
type Machine struct {
	// drivers are the hardware collaborators.
	drivers Drivers
	// clock timestamps foreground iterations.
	clock clockwork.Clock
	// recorder receives observations.
	recorder Recorder
	// ticks is the periodic tick source.
	ticks TickSource
	// loopInterval is the pause between iterations in Run.
	loopInterval time.Duration
	// pending is the one-tick latch set by the tick source.
	pending atomic.Bool

	// scanner is owned by the foreground loop.
	scanner *scanner

	// mu protects every field below.
	mu sync.Mutex
	// time is the clock value.
	time domain.Time
	// mode is the counting mode.
	mode domain.Mode
	// run tells whether ticks are consumed.
	run domain.RunState
	// halted is set when a countdown reached zero and the tick source stopped.
	halted bool
	// zeroLatched keeps the alarm one-shot while the clock stays at zero.
	zeroLatched bool
	// alarm drives the buzzer.
	alarm alarm
}

// New creates a machine at opts.InitialTime, 00:00:00 by default, with the
// indicators matching opts.InitialMode. The tick source is started by Run.
func New(drivers Drivers, opts Options) (*Machine, error) {
	if drivers.Input == nil {
		return nil, ErrInputRequired
	}

	if drivers.Display == nil {
		return nil, ErrDisplayRequired
	}

	drivers.Alarm = outputOrNop(drivers.Alarm)
	drivers.IncrementLED = outputOrNop(drivers.IncrementLED)
	drivers.CountdownLED = outputOrNop(drivers.CountdownLED)

	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	if opts.AlarmHold <= 0 {
		opts.AlarmHold = DefaultAlarmHold
	}

	if opts.SettleDelay <= 0 {
		opts.SettleDelay = hardware.DefaultSettleDelay
	}

	if opts.LoopInterval <= 0 {
		opts.LoopInterval = DefaultLoopInterval
	}

	if !opts.InitialTime.Valid() {
		opts.InitialTime = domain.Time{}
	}

	if opts.InitialRunState != domain.Paused {
		opts.InitialRunState = domain.Running
	}

	m := &Machine{
		drivers:      drivers,
		clock:        opts.Clock,
		recorder:     opts.Recorder,
		loopInterval: opts.LoopInterval,
		scanner:      newScanner(drivers.Input, opts.SettleDelay),
		time:         opts.InitialTime,
		mode:         opts.InitialMode,
		run:          opts.InitialRunState,
		halted:       opts.InitialHalted,
		zeroLatched:  opts.InitialHalted && opts.InitialTime.IsZero(),
		alarm: alarm{
			out:  drivers.Alarm,
			hold: opts.AlarmHold,
		},
	}

	if opts.NewTickSource != nil {
		m.ticks = opts.NewTickSource(m.SignalTick)
	} else {
		m.ticks = hardware.NewTicker(opts.Clock, opts.TickPeriod, m.SignalTick)
	}

	m.mu.Lock()
	m.alarm.out.Set(false)
	m.showMode()
	m.observe()
	m.mu.Unlock()

	return m, nil
}

// Run starts the tick source and drives the foreground loop until ctx is done.
// On return the tick source is stopped and the alarm is silent.
func (m *Machine) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.run == domain.Running && !m.halted {
		m.ticks.Start()
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.ticks.Stop()
		m.alarm.silence()
		m.mu.Unlock()
	}()

	logger.Info(ctx, "Stopwatch loop started")

	for {
		m.Step(ctx)

		select {
		case <-ctx.Done():
			logger.Info(ctx, "Stopwatch loop stopped")

			return nil
		case <-m.clock.After(m.loopInterval):
		}
	}
}

// Step runs one foreground iteration.
func (m *Machine) Step(ctx context.Context) {
	m.refreshDisplay()

	now := m.clock.Now()

	m.mu.Lock()
	if m.alarm.update(now) {
		logger.Debug(ctx, "Alarm silenced")
	}

	paused := m.run == domain.Paused
	m.mu.Unlock()

	if paused {
		for _, adj := range m.scanner.adjustments(now) {
			m.adjust(ctx, adj)
		}
	} else {
		m.scanner.resetAdjustments()
		m.consumeTick(ctx, now)
	}

	if m.scanner.modePressed(now) {
		m.ToggleMode(ctx)
	}
}

// SignalTick latches one pending tick. Further ticks before the latch is
// consumed are dropped. It never blocks and is safe to call from any goroutine.
func (m *Machine) SignalTick() {
	m.pending.Store(true)
}

// Signal applies asynchronous events. Events passed in one call are treated
// as simultaneous and applied in domain.OrderEvents order.
func (m *Machine) Signal(ctx context.Context, events ...domain.Event) {
	ordered := domain.OrderEvents(events)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, event := range ordered {
		m.apply(ctx, event)
	}

	m.observe()
}

// Reset zeroes the clock without touching mode or run state.
func (m *Machine) Reset(ctx context.Context) {
	m.Signal(ctx, domain.EventReset)
}

// Pause stops tick consumption.
func (m *Machine) Pause(ctx context.Context) {
	m.Signal(ctx, domain.EventPause)
}

// Resume restarts tick consumption.
func (m *Machine) Resume(ctx context.Context) {
	m.Signal(ctx, domain.EventResume)
}

// ToggleMode flips between increment and countdown and updates the indicators.
func (m *Machine) ToggleMode(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mode = m.mode.Toggle()
	m.zeroLatched = false
	m.showMode()
	m.recorder.ObserveButton(hardware.ButtonMode, true)
	m.observe()

	logger.InfoKV(ctx, "Mode toggled", "mode", m.mode.String())
}

// Snapshot returns a consistent copy of the state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Time:        m.time,
		Mode:        m.mode,
		RunState:    m.run,
		Halted:      m.halted,
		AlarmActive: m.alarm.active,
		PendingTick: m.pending.Load(),
	}
}

// apply handles one control event. Callers hold mu.
func (m *Machine) apply(ctx context.Context, event domain.Event) {
	switch event {
	case domain.EventTick:
		m.pending.Store(true)

		return
	case domain.EventReset:
		m.time = domain.Time{}
		m.zeroLatched = false
		m.pending.Store(false)
		m.ticks.Reset()
	case domain.EventPause:
		m.run = domain.Paused
		m.pending.Store(false)
		m.ticks.Stop()
	case domain.EventResume:
		if m.run == domain.Paused || m.halted {
			m.pending.Store(false)
		}

		m.run = domain.Running
		m.halted = false
		m.ticks.Start()
	default:
		return
	}

	m.recorder.ObserveControl(event)

	logger.InfoKV(ctx, "Control event applied",
		"event", event.String(),
		"clock", m.time.String(),
		"run_state", m.run.String(),
	)
}

// consumeTick applies the pending tick, if any, in one critical section.
func (m *Machine) consumeTick(ctx context.Context, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.run != domain.Running || !m.pending.Swap(false) {
		return
	}

	if m.halted {
		return
	}

	result := domain.ApplyTick(m.time, m.mode)
	m.time = result.Time

	if !m.time.IsZero() {
		m.zeroLatched = false
	}

	m.recorder.ObserveTick(m.mode)

	if result.ReachedZero {
		m.halted = true
		m.ticks.Stop()

		if !m.zeroLatched {
			m.zeroLatched = true
			m.alarm.raise(now)
			m.recorder.ObserveAlarm()

			logger.InfoKV(ctx, "Countdown reached zero, alarm raised", "hold", m.alarm.hold.String())
		}
	}

	m.observe()
}

// adjust applies one confirmed adjustment button press.
func (m *Machine) adjust(ctx context.Context, adj hardware.Adjustment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	applied := false

	if m.run == domain.Paused {
		m.time, applied = domain.Adjust(m.time, adj.Field, adj.Up)
	}

	if applied && !m.time.IsZero() {
		m.zeroLatched = false
	}

	m.recorder.ObserveButton(adj.Button, applied)
	m.observe()

	logger.DebugKV(ctx, "Adjustment button",
		"button", adj.Button.String(),
		"applied", applied,
		"clock", m.time.String(),
	)
}

// refreshDisplay writes the six digits of a consistent snapshot.
// The display may dwell on each digit, so the lock is not held while writing.
func (m *Machine) refreshDisplay() {
	m.mu.Lock()
	digits := m.time.Digits()
	m.mu.Unlock()

	for position, value := range digits {
		m.drivers.Display.ShowDigit(position, value)
	}
}

// showMode lights exactly one mode indicator. Callers hold mu.
// The indicator going dark is switched first so both are never lit together.
func (m *Machine) showMode() {
	if m.mode == domain.ModeCountdown {
		m.drivers.IncrementLED.Set(false)
		m.drivers.CountdownLED.Set(true)

		return
	}

	m.drivers.CountdownLED.Set(false)
	m.drivers.IncrementLED.Set(true)
}

// observe publishes the state gauges. Callers hold mu.
func (m *Machine) observe() {
	m.recorder.ObserveState(m.time, m.mode, m.run)
}

// outputOrNop substitutes a no-op output for a missing one.
func outputOrNop(out hardware.Output) hardware.Output {
	if out == nil {
		return hardware.OutputFunc(func(bool) {})
	}

	return out
}

// nopRecorder discards observations.
type nopRecorder struct{}

func (nopRecorder) ObserveTick(domain.Mode) {}
func (nopRecorder) ObserveControl(domain.Event) {}
func (nopRecorder) ObserveButton(hardware.Button, bool) {}
func (nopRecorder) ObserveAlarm() {}
func (nopRecorder) ObserveState(domain.Time, domain.Mode, domain.RunState) {}
