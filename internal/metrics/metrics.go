package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
)

// Collector bundles the stopwatch metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	TicksTotal         *prometheus.CounterVec
	ControlEventsTotal *prometheus.CounterVec
	ButtonActionsTotal *prometheus.CounterVec
	AlarmsTotal        prometheus.Counter
	PanelRequests      *prometheus.CounterVec

	ClockSeconds prometheus.Gauge
	Countdown    prometheus.Gauge
	Paused       prometheus.Gauge
}

// NewCollector registers the stopwatch metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stopwatch_ticks_total",
		Help: "Ticks applied to the clock, labeled by counting mode.",
	}, []string{"mode"}), "stopwatch_ticks_total")
	if err != nil {
		return nil, err
	}

	controls, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stopwatch_control_events_total",
		Help: "Reset, pause and resume events applied.",
	}, []string{"event"}), "stopwatch_control_events_total")
	if err != nil {
		return nil, err
	}

	buttons, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stopwatch_button_actions_total",
		Help: "Debounced button presses acted upon, labeled by button and whether they changed state.",
	}, []string{"button", "result"}), "stopwatch_button_actions_total")
	if err != nil {
		return nil, err
	}

	alarms, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stopwatch_alarms_total",
		Help: "Countdowns that reached zero and raised the alarm.",
	}), "stopwatch_alarms_total")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stopwatch_panel_requests_total",
		Help: "Remote panel RPCs, labeled by method and gRPC status code.",
	}, []string{"method", "code"}), "stopwatch_panel_requests_total")
	if err != nil {
		return nil, err
	}

	clockSeconds, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stopwatch_clock_seconds",
		Help: "Current clock value expressed in seconds.",
	}), "stopwatch_clock_seconds")
	if err != nil {
		return nil, err
	}

	countdown, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stopwatch_countdown_mode",
		Help: "1 while counting down, 0 while counting up.",
	}), "stopwatch_countdown_mode")
	if err != nil {
		return nil, err
	}

	paused, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stopwatch_paused",
		Help: "1 while paused.",
	}), "stopwatch_paused")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		TicksTotal:         ticks,
		ControlEventsTotal: controls,
		ButtonActionsTotal: buttons,
		AlarmsTotal:        alarms,
		PanelRequests:      requests,
		ClockSeconds:       clockSeconds,
		Countdown:          countdown,
		Paused:             paused,
	}, nil
}

// ObserveTick counts one applied tick.
func (c *Collector) ObserveTick(mode stopwatch.Mode) {
	if c == nil {
		return
	}

	c.TicksTotal.WithLabelValues(mode.String()).Inc()
}

// ObserveControl counts one control event.
func (c *Collector) ObserveControl(event stopwatch.Event) {
	if c == nil {
		return
	}

	c.ControlEventsTotal.WithLabelValues(event.String()).Inc()
}

// ObserveButton counts one confirmed button press.
func (c *Collector) ObserveButton(button hardware.Button, applied bool) {
	if c == nil {
		return
	}

	result := "rejected"
	if applied {
		result = "applied"
	}

	c.ButtonActionsTotal.WithLabelValues(button.String(), result).Inc()
}

// ObserveAlarm counts one raised alarm.
func (c *Collector) ObserveAlarm() {
	if c == nil {
		return
	}

	c.AlarmsTotal.Inc()
}

// ObserveState mirrors the clock state into the gauges.
func (c *Collector) ObserveState(clock stopwatch.Time, mode stopwatch.Mode, run stopwatch.RunState) {
	if c == nil {
		return
	}

	c.ClockSeconds.Set(float64(clock.TotalSeconds()))
	c.Countdown.Set(boolToFloat(mode == stopwatch.ModeCountdown))
	c.Paused.Set(boolToFloat(run == stopwatch.Paused))
}

// UnaryServerInterceptor counts panel RPCs by method and status code.
func (c *Collector) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)

		if c == nil {
			return resp, err
		}

		method := "unknown"
		if info != nil {
			if i := strings.LastIndex(info.FullMethod, "/"); i >= 0 && i+1 < len(info.FullMethod) {
				method = info.FullMethod[i+1:]
			}
		}

		c.PanelRequests.WithLabelValues(method, status.Code(err).String()).Inc()

		return resp, err
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}

	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}

	return 0
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}

			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}

		return nil, err
	}

	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}

			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}

		return nil, err
	}

	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}

			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}

		return nil, err
	}

	return gauge, nil
}
