package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	api "github.com/oshokin/stopwatch/internal/api/grpc/stopwatch"
	"github.com/oshokin/stopwatch/internal/config"
	domain "github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
	"github.com/oshokin/stopwatch/internal/hardware/sim"
	"github.com/oshokin/stopwatch/internal/logger"
	repo "github.com/oshokin/stopwatch/internal/repository/state"
	"github.com/oshokin/stopwatch/internal/service/machine"
)

// errUnknownButton is returned for a button outside the panel.
var errUnknownButton = errors.New("unknown button")

// service wires the simulated panel to the machine and persists its state.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// machine is the stopwatch state machine.
	machine *machine.Machine
	// watcher raises control events from the panel's reset/pause/resume lines.
	watcher *hardware.EdgeWatcher
	// panel is the virtual button panel pressed by remote clients.
	panel *sim.Panel
	// display renders the multiplexed digits.
	display *sim.Display
	// repo persists the clock between runs; may be nil.
	repo repo.Repository
	// clock timestamps saved records.
	clock clockwork.Clock
	// pressHold is how long a remote press holds a button.
	pressHold time.Duration

	// mu protects lastActor.
	mu sync.Mutex
	// lastActor is who pressed the latest remote button.
	lastActor *domain.Actor
}

// newService builds the simulated hardware and the machine from validated settings.
// A non-nil record restores the clock, mode and run state it holds.
func newService(
	ctx context.Context,
	settings *config.Config,
	clock clockwork.Clock,
	repository repo.Repository,
	record *repo.Record,
	recorder machine.Recorder,
) (*service, error) {
	s := &service{
		panel:     sim.NewPanel(clock),
		display:   sim.NewDisplay(clock, settings.DigitDwell),
		repo:      repository,
		clock:     clock,
		pressHold: settings.PressHold,
	}

	opts := machine.Options{
		Clock:       clock,
		Recorder:    recorder,
		TickPeriod:  settings.TickPeriod,
		SettleDelay: settings.SettleDelay,
		AlarmHold:   settings.AlarmHold,
		InitialMode: settings.Mode(),
	}

	if record != nil {
		opts.InitialMode = record.Mode
		opts.InitialTime = record.Time
		opts.InitialRunState = record.RunState
		opts.InitialHalted = record.Halted
		s.lastActor = record.LastActor.Clone()
	}

	hwCtx := logger.WithComponent(ctx, "hardware", settings.HardwareLogLevel)

	m, err := machine.New(machine.Drivers{
		Input:        s.panel,
		Display:      s.display,
		Alarm:        sim.NewOutput("buzzer", outputLogger(hwCtx)),
		IncrementLED: sim.NewOutput("increment-led", outputLogger(hwCtx)),
		CountdownLED: sim.NewOutput("countdown-led", outputLogger(hwCtx)),
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("create machine: %w", err)
	}

	s.machine = m
	s.watcher = hardware.NewEdgeWatcher(s.panel, clock, settings.ControlPoll, func(events ...domain.Event) {
		m.Signal(ctx, events...)
	})

	return s, nil
}

// Press holds a panel button down for the configured press duration.
func (s *service) Press(ctx context.Context, actor *domain.Actor, button hardware.Button) error {
	if !button.Valid() {
		return fmt.Errorf("press %s: %w", button, errUnknownButton)
	}

	s.mu.Lock()
	if actor != nil {
		s.lastActor = actor.Clone()
	}
	s.mu.Unlock()

	s.panel.Tap(button, s.pressHold)

	logger.InfoKV(ctx, "Remote button pressed", "button", button.String(), "actor", actor.String())

	return nil
}

// State returns the machine snapshot with the rendered display.
func (s *service) State(ctx context.Context) api.State {
	state := api.State{
		Snapshot: s.machine.Snapshot(),
		Display:  s.display.String(),
	}

	logger.DebugKV(ctx, "Stopwatch state requested", "clock", state.Time.String(), "mode", state.Mode.String())

	return state
}

// save persists the current snapshot when a repository is configured.
func (s *service) save(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	snapshot := s.machine.Snapshot()

	s.mu.Lock()
	actor := s.lastActor.Clone()
	s.mu.Unlock()

	record := &repo.Record{
		Time:      snapshot.Time,
		Mode:      snapshot.Mode,
		RunState:  snapshot.RunState,
		Halted:    snapshot.Halted,
		Timestamp: s.clock.Now(),
		LastActor: actor,
	}

	if err := s.repo.Save(ctx, record); err != nil {
		logger.Errorf(ctx, "Failed to persist stopwatch state: %v", err)

		return fmt.Errorf("persist state: %w", err)
	}

	logger.InfoKV(ctx, "Stopwatch state saved", "clock", record.Time.String(), "mode", record.Mode.String())

	return nil
}

// loadRecord reads the persisted state. A missing or corrupt file yields nil.
func loadRecord(ctx context.Context, repository repo.Repository) (*repo.Record, error) {
	if repository == nil {
		return nil, nil //nolint:nilnil // No repository means nothing to restore.
	}

	record, err := repository.Load(ctx)
	switch {
	case err == nil && record == nil:
		return nil, nil //nolint:nilnil // Nothing stored yet.
	case err == nil:
		logger.InfoKV(ctx, "Stopwatch state restored",
			"clock", record.Time.String(),
			"mode", record.Mode.String(),
			"run_state", record.RunState.String(),
		)

		return record, nil
	case errors.Is(err, repo.ErrNotFound):
		return nil, nil //nolint:nilnil // Keep default state.
	case errors.Is(err, repo.ErrCorrupt):
		logger.WarnKV(ctx, "Ignoring corrupt state file", "error", err)

		return nil, nil //nolint:nilnil // Keep default state.
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}
}

// outputLogger logs simulated output changes.
func outputLogger(ctx context.Context) func(name string, active bool) {
	return func(name string, active bool) {
		logger.DebugKV(ctx, "Output changed", "output", name, "active", active)
	}
}
