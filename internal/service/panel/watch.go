package panel

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oshokin/stopwatch/internal/logger"
	"github.com/oshokin/stopwatch/internal/service/common"
)

// WatchOptions controls state polling.
type WatchOptions struct {
	Options

	// Output receives one line per observed state.
	Output io.Writer
	// PollInterval defines the interval between state checks.
	PollInterval time.Duration
	// Once prints the current state and returns.
	Once bool
}

// DefaultPollInterval is how often watch asks for the state.
const DefaultPollInterval = 250 * time.Millisecond

// Watch prints the stopwatch state, then every change until ctx is canceled.
func Watch(ctx context.Context, opts *WatchOptions) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "stopwatch-panel")

	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	client, _, err := connect(ctx, &opts.Options)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	last, err := printState(ctx, client, opts.Output, "")
	if err != nil || opts.Once {
		return err
	}

	logger.InfoKV(ctx, "Watching stopwatch state", "interval", opts.PollInterval.String())

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")

			return nil
		case <-ticker.C:
			current, checkErr := printState(ctx, client, opts.Output, last)
			if checkErr != nil {
				logger.ErrorKV(ctx, "Check state failed", "error", checkErr)

				continue
			}

			last = current
		}
	}
}

// printState fetches the state and writes it when it differs from last.
func printState(ctx context.Context, client *common.Client, out io.Writer, last string) (string, error) {
	state, err := client.GetState(ctx)
	if err != nil {
		return last, err
	}

	current := FormatState(state)
	if current == last || out == nil {
		return current, nil
	}

	if _, err = fmt.Fprintln(out, current); err != nil {
		return last, fmt.Errorf("write state: %w", err)
	}

	return current, nil
}
