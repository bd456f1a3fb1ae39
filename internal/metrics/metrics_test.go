package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
)

// TestCollector_Observations verifies each observer updates its metric.
func TestCollector_Observations(t *testing.T) {
	t.Parallel()

	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveTick(stopwatch.ModeCountdown)
	c.ObserveTick(stopwatch.ModeCountdown)
	c.ObserveControl(stopwatch.EventReset)
	c.ObserveButton(hardware.ButtonHoursUp, true)
	c.ObserveButton(hardware.ButtonHoursUp, false)
	c.ObserveAlarm()
	c.ObserveState(stopwatch.NewTime(0, 1, 5), stopwatch.ModeCountdown, stopwatch.Paused)

	require.InDelta(t, 2, testutil.ToFloat64(c.TicksTotal.WithLabelValues("countdown")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.ControlEventsTotal.WithLabelValues("reset")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.ButtonActionsTotal.WithLabelValues("hours-up", "applied")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.ButtonActionsTotal.WithLabelValues("hours-up", "rejected")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.AlarmsTotal), 0)
	require.InDelta(t, 65, testutil.ToFloat64(c.ClockSeconds), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.Countdown), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.Paused), 0)
}

// TestCollector_ReRegisterReturnsExisting ensures a second collector on the same registry reuses metrics.
func TestCollector_ReRegisterReturnsExisting(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	first, err := NewCollector(reg)
	require.NoError(t, err)

	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.ObserveAlarm()
	require.InDelta(t, 1, testutil.ToFloat64(second.AlarmsTotal), 0)
}

// TestCollector_NilIsSafe checks a nil collector records nothing and does not panic.
func TestCollector_NilIsSafe(t *testing.T) {
	t.Parallel()

	var c *Collector

	c.ObserveTick(stopwatch.ModeIncrement)
	c.ObserveControl(stopwatch.EventPause)
	c.ObserveButton(hardware.ButtonMode, true)
	c.ObserveAlarm()
	c.ObserveState(stopwatch.Time{}, stopwatch.ModeIncrement, stopwatch.Running)
	require.NotNil(t, c.Handler())
}

// TestUnaryServerInterceptor counts requests by method and code.
func TestUnaryServerInterceptor(t *testing.T) {
	t.Parallel()

	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	interceptor := c.UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/stopwatch.v1.StopwatchService/Press"}

	_, _ = interceptor(context.Background(), struct{}{}, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.InvalidArgument, "bad button")
	})

	require.InDelta(t, 1, testutil.ToFloat64(c.PanelRequests.WithLabelValues("Press", "InvalidArgument")), 0)
}

// TestHandlerExposesMetrics verifies the HTTP handler renders registered metrics.
func TestHandlerExposesMetrics(t *testing.T) {
	t.Parallel()

	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveAlarm()

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "stopwatch_alarms_total 1")
}
