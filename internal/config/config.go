package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
	"github.com/oshokin/stopwatch/internal/hardware/sim"
	"github.com/oshokin/stopwatch/internal/logger"
)

// Config holds the settings shared by the stopwatch binaries.
type Config struct {
	// ServerAddress is the gRPC address of the remote button panel.
	ServerAddress string `yaml:"server_addr"`
	// MetricsAddress is the listen address of the Prometheus endpoint; empty disables it.
	MetricsAddress string `yaml:"metrics_addr,omitempty"`
	// Timeout is the duration for RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum zap level name.
	LogLevel string `yaml:"log_level"`
	// HardwareLogLevel overrides the level of simulated hardware output logs; empty follows LogLevel.
	HardwareLogLevel string `yaml:"hardware_log_level,omitempty"`
	// TickPeriod is the interval between ticks.
	TickPeriod time.Duration `yaml:"tick_period"`
	// SettleDelay is how long a button press must be stable before it counts.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// DigitDwell is how long each display digit stays lit.
	DigitDwell time.Duration `yaml:"digit_dwell"`
	// AlarmHold is how long the alarm sounds when a countdown ends.
	AlarmHold time.Duration `yaml:"alarm_hold"`
	// PressHold is how long a remote press holds a virtual button down.
	PressHold time.Duration `yaml:"press_hold"`
	// ControlPoll is the sampling interval of the reset/pause/resume lines.
	ControlPoll time.Duration `yaml:"control_poll"`
	// InitialMode is the counting mode at start-up.
	InitialMode string `yaml:"initial_mode"`
	// StateFile is where the server persists the clock between runs; empty disables it.
	StateFile string `yaml:"state_file,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "stopwatch-settings.yaml"

	// DefaultStateFilename is the default path of the persisted clock state.
	DefaultStateFilename = "stopwatch-state.json"

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultAlarmHold is how long the alarm stays on.
	DefaultAlarmHold = 2 * time.Second

	// DefaultPressHold is how long a remote press holds a virtual button.
	DefaultPressHold = 80 * time.Millisecond

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerSocketRequired is returned when server address is missing.
	errServerSocketRequired = errors.New("server address must be provided")
	// errNegativeDuration is returned when a duration setting is below zero.
	errNegativeDuration = errors.New("duration must not be negative")
	// errPressHoldTooShort is returned when remote presses would never pass the debouncer.
	errPressHoldTooShort = errors.New("press_hold must outlast settle_delay plus one display refresh")
	// errUnknownLogLevel is returned for an unparsable log level.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns a configuration with every optional field filled in.
func Default(serverAddress string) *Config {
	cfg := &Config{ServerAddress: serverAddress}

	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for unset optional fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		return errServerSocketRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics socket: %w", err)
		}
	}

	durations := map[string]time.Duration{
		"timeout":      settings.Timeout,
		"tick_period":  settings.TickPeriod,
		"settle_delay": settings.SettleDelay,
		"digit_dwell":  settings.DigitDwell,
		"alarm_hold":   settings.AlarmHold,
		"press_hold":   settings.PressHold,
		"control_poll": settings.ControlPoll,
	}

	for name, value := range durations {
		if value < 0 {
			return fmt.Errorf("%s %s: %w", name, value, errNegativeDuration)
		}
	}

	applyDefaults(settings)

	// The scanner samples once per foreground iteration, which spends
	// digit_dwell on every display position.
	if minHold := settings.SettleDelay + stopwatch.DigitCount*settings.DigitDwell; settings.PressHold <= minHold {
		return fmt.Errorf("press_hold %s <= %s: %w", settings.PressHold, minHold, errPressHoldTooShort)
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%q: %w", settings.LogLevel, errUnknownLogLevel)
	}

	if settings.HardwareLogLevel != "" {
		if _, ok := logger.ParseLogLevel(settings.HardwareLogLevel); !ok {
			return fmt.Errorf("hardware %q: %w", settings.HardwareLogLevel, errUnknownLogLevel)
		}
	}

	if _, err := stopwatch.ParseMode(settings.InitialMode); err != nil {
		return fmt.Errorf("invalid initial mode: %w", err)
	}

	return nil
}

// Mode returns the parsed initial mode. Call it on validated settings.
func (c *Config) Mode() stopwatch.Mode {
	mode, err := stopwatch.ParseMode(c.InitialMode)
	if err != nil {
		return stopwatch.ModeIncrement
	}

	return mode
}

// applyDefaults fills zero-valued optional settings.
func applyDefaults(settings *Config) {
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.TickPeriod <= 0 {
		settings.TickPeriod = hardware.DefaultTickPeriod
	}

	if settings.SettleDelay <= 0 {
		settings.SettleDelay = hardware.DefaultSettleDelay
	}

	if settings.DigitDwell <= 0 {
		settings.DigitDwell = sim.DefaultDigitDwell
	}

	if settings.AlarmHold <= 0 {
		settings.AlarmHold = DefaultAlarmHold
	}

	if settings.PressHold <= 0 {
		settings.PressHold = DefaultPressHold
	}

	if settings.ControlPoll <= 0 {
		settings.ControlPoll = hardware.DefaultControlPoll
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if settings.InitialMode == "" {
		settings.InitialMode = stopwatch.ModeIncrement.String()
	}
}
