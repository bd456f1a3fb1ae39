package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/stopwatch/internal/config"
	"github.com/oshokin/stopwatch/internal/hardware"
	"github.com/oshokin/stopwatch/internal/service/panel"
	"github.com/oshokin/stopwatch/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// serverAddress overrides the server address from the configuration.
	serverAddress string
	// attempts is how many times a press is tried.
	attempts int
	// pollInterval is the watch polling interval.
	pollInterval time.Duration

	// rootCmd represents the base command of the remote panel.
	rootCmd = &cobra.Command{
		Use:   "stopwatch-panel",
		Short: "Press stopwatch buttons and follow its clock remotely.",
		Long: `Remote button panel for a running stopwatch-server.

Every press holds the virtual button for press_hold, long enough for the
stopwatch debouncer to accept it. Adjustment buttons only change the clock
while the stopwatch is paused.`,
	}

	// pressCmd presses one button.
	pressCmd = &cobra.Command{
		Use:   "press <button>",
		Short: "Press one button.",
		Long:  "Press one button. Buttons: " + strings.Join(buttonNames(), ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return panel.Press(ctx, &panel.PressOptions{
				Options:  panelOptions(),
				Button:   args[0],
				Attempts: attempts,
			})
		},
	}

	// stateCmd prints the current state once.
	stateCmd = &cobra.Command{
		Use:   "state",
		Short: "Print the current clock, mode and run state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return panel.Watch(cmd.Context(), &panel.WatchOptions{
				Options: panelOptions(),
				Output:  cmd.OutOrStdout(),
				Once:    true,
			})
		},
	}

	// watchCmd follows the state until interrupted.
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Print the state every time it changes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return panel.Watch(ctx, &panel.WatchOptions{
				Options:      panelOptions(),
				Output:       cmd.OutOrStdout(),
				PollInterval: pollInterval,
			})
		},
	}
)

// Execute runs the stopwatch-panel CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func panelOptions() panel.Options {
	return panel.Options{
		ConfigPath:    configPath,
		ServerAddress: serverAddress,
	}
}

func buttonNames() []string {
	buttons := hardware.Buttons()
	names := make([]string, 0, len(buttons))

	for _, b := range buttons {
		names = append(names, b.String())
	}

	return names
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&serverAddress, "server", "s", "", "server address override")

	pressCmd.Flags().IntVarP(&attempts, "attempts", "a", 3, "how many times to try an unreachable server")
	watchCmd.Flags().DurationVarP(&pollInterval, "interval", "i", panel.DefaultPollInterval, "polling interval")

	rootCmd.AddCommand(pressCmd, stateCmd, watchCmd)
}
