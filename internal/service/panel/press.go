package panel

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/stopwatch/internal/config"
	"github.com/oshokin/stopwatch/internal/hardware"
	"github.com/oshokin/stopwatch/internal/logger"
	"github.com/oshokin/stopwatch/internal/service/common"
)

// Options selects the server the panel talks to.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
}

// PressOptions configures a remote button press.
type PressOptions struct {
	Options

	// Button is the button name, e.g. "pause" or "hours-up".
	Button string
	// Attempts is how many times an unreachable server is tried.
	Attempts int
}

const (
	// defaultAttempts is used when PressOptions.Attempts is not set.
	defaultAttempts = 3
	// retryInterval is the delay between press attempts.
	retryInterval = time.Second
	// settleMargin covers the scanner's last sample after a press is released.
	settleMargin = 20 * time.Millisecond
)

// stateGetter reads the current stopwatch state.
type stateGetter interface {
	GetState(ctx context.Context) (*structpb.Struct, error)
}

// Press presses one button, retrying while the server cannot be reached.
func Press(ctx context.Context, opts *PressOptions) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "stopwatch-panel")

	// Reject unknown names before touching the network.
	if _, err := hardware.ParseButton(opts.Button); err != nil {
		return err
	}

	client, cfg, err := connect(ctx, &opts.Options)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		state, pressErr := client.Press(ctx, opts.Button)
		if pressErr == nil {
			logger.DebugKV(ctx, "Press accepted", "button", opts.Button, "state", FormatState(state))

			state = settledState(ctx, client, cfg.PressHold, state)
			logger.Infof(ctx, "Pressed %s: %s", opts.Button, FormatState(state))

			return nil
		}

		// Only a server that never saw the press is retried; anything else
		// may have pressed the button already.
		if attempt >= attempts || !retryable(pressErr) {
			return pressErr
		}

		logger.ErrorKV(ctx, "Press failed", "button", opts.Button, "attempt", attempt, "error", pressErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// retryable reports whether err means the request never reached the server.
func retryable(err error) bool {
	return status.Code(err) == codes.Unavailable
}

// settledState waits until the press has been released and returns the state
// after it. The pre-press state is returned when the follow-up read fails.
func settledState(ctx context.Context, client stateGetter, hold time.Duration, pressed *structpb.Struct) *structpb.Struct {
	select {
	case <-ctx.Done():
		return pressed
	case <-time.After(hold + settleMargin):
	}

	state, err := client.GetState(ctx)
	if err != nil {
		logger.WarnKV(ctx, "Unable to read state after press", "error", err)

		return pressed
	}

	return state
}

// connect loads settings and dials the server as the current actor.
func connect(ctx context.Context, opts *Options) (*common.Client, *config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return nil, nil, fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithActor(actor),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("dial server: %w", err)
	}

	logger.DebugKV(ctx, "Connected to stopwatch server", "server_address", serverAddress)

	return client, cfg, nil
}
