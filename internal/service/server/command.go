package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	api "github.com/oshokin/stopwatch/internal/api/grpc/stopwatch"
	"github.com/oshokin/stopwatch/internal/config"
	"github.com/oshokin/stopwatch/internal/logger"
	"github.com/oshokin/stopwatch/internal/metrics"
	pb "github.com/oshokin/stopwatch/internal/pb/v1"
	repository "github.com/oshokin/stopwatch/internal/repository/state"
	"github.com/oshokin/stopwatch/internal/version"
)

// Options controls the stopwatch-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// StateFile overrides the path the clock is persisted to.
	StateFile string
	// MetricsAddress overrides the Prometheus listen address.
	MetricsAddress string
	// SingleInstance refuses to start when another server process is running.
	SingleInstance bool
}

// shutdownTimeout bounds the metrics endpoint shutdown.
const shutdownTimeout = 5 * time.Second

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the stopwatch machine and its gRPC panel and blocks until the
// context is canceled or the server stops. The clock is saved on the way out.
//
//nolint:funlen // Startup order reads best in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "stopwatch-server")

	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	logger.InfoKV(ctx, "Starting stopwatch server", version.KV()...)

	if opts.SingleInstance {
		if err = ensureSingleInstance(); err != nil {
			return err
		}
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	metricsAddress := settings.MetricsAddress
	if opts.MetricsAddress != "" {
		metricsAddress = opts.MetricsAddress
	}

	var repo repository.Repository
	if stateFile != "" {
		repo = repository.NewFileRepository(stateFile)
	}

	record, err := loadRecord(ctx, repo)
	if err != nil {
		return err
	}

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// Create the machine on simulated hardware.
	svc, err := newService(ctx, settings, clockwork.NewRealClock(), repo, record, collector)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(collector.UnaryServerInterceptor()))
	pb.RegisterStopwatchServiceServer(grpcServer, api.NewServer(svc))

	metricsServer, err := serveMetrics(ctx, metricsAddress, collector)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Stopwatch server listening",
		"listen_address", listenAddress,
		"metrics_address", metricsAddress,
		"state_file", stateFile,
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Go(func() {
		if runErr := svc.machine.Run(runCtx); runErr != nil {
			logger.ErrorKV(ctx, "Stopwatch loop failed", "error", runErr)
		}
	})

	wg.Go(func() {
		svc.watcher.Run(runCtx)
	})

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-runCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	serveErr := grpcServer.Serve(lis)

	cancel()
	<-done
	wg.Wait()

	if metricsServer != nil {
		shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer stop()

		_ = metricsServer.Shutdown(shutdownCtx) //nolint:errcheck // Best effort on exit.
	}

	saveErr := svc.save(context.WithoutCancel(ctx))

	if serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", serveErr)
	}

	logger.Info(ctx, "GRPC server stopped")

	return saveErr
}

// serveMetrics starts the Prometheus endpoint when address is set.
func serveMetrics(ctx context.Context, address string, collector *metrics.Collector) (*http.Server, error) {
	if address == "" {
		return nil, nil //nolint:nilnil // Metrics are optional.
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", address, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WarnKV(ctx, "Metrics server exited", "error", err)
		}
	}()

	logger.InfoKV(ctx, "Serving Prometheus metrics", "metrics_address", lis.Addr().String())

	return srv, nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
