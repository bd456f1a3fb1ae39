package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/stopwatch/internal/config"
	"github.com/oshokin/stopwatch/internal/service/server"
	"github.com/oshokin/stopwatch/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the clock is persisted.
	stateFile string
	// metricsAddress overrides the Prometheus listen address.
	metricsAddress string

	// rootCmd represents the base command for running the stopwatch.
	rootCmd = &cobra.Command{
		Use:   "stopwatch-server [listen-address]",
		Short: "Run the stopwatch and its remote button panel.",
		Long: `Runs the stopwatch state machine on simulated hardware and serves its button panel over gRPC.

The clock counts up or down once per tick period, a six-digit display is refreshed
continuously and the buzzer sounds when a countdown reaches zero.
Only the port from server_addr config is used for listening (e.g., :7070).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:7070).
The clock, mode and run state are persisted to a JSON file for recovery across restarts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:     configPath,
				ListenAddress:  listenAddress,
				StateFile:      stateFile,
				MetricsAddress: metricsAddress,
				SingleInstance: true,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the stopwatch-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&stateFile, "state-file", "s", config.DefaultStateFilename, "path to persist the clock")
	rootCmd.Flags().StringVarP(&metricsAddress, "metrics-addr", "m", "", "Prometheus listen address override")
}
