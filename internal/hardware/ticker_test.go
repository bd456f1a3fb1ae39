package hardware

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// TestTicker_StartStop verifies ticks are delivered only while the ticker runs.
func TestTicker_StartStop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		clock = clockwork.NewFakeClock()
		ticks atomic.Int32
	)

	ticker := NewTicker(clock, time.Second, func() { ticks.Add(1) })
	require.False(t, ticker.Running())

	ticker.Start()
	ticker.Start()
	require.True(t, ticker.Running())
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return ticks.Load() == 1 }, time.Second, time.Millisecond)

	ticker.Stop()
	require.False(t, ticker.Running())

	clock.Advance(5 * time.Second)
	require.Never(t, func() bool { return ticks.Load() != 1 }, 50*time.Millisecond, time.Millisecond)

	// Resuming starts a fresh period instead of catching up.
	ticker.Start()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(500 * time.Millisecond)
	require.Never(t, func() bool { return ticks.Load() != 1 }, 50*time.Millisecond, time.Millisecond)

	clock.Advance(500 * time.Millisecond)
	require.Eventually(t, func() bool { return ticks.Load() == 2 }, time.Second, time.Millisecond)

	ticker.Stop()
}

// TestTicker_ResetRealignsPhase verifies Reset pushes the next tick a full period out.
func TestTicker_ResetRealignsPhase(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		clock = clockwork.NewFakeClock()
		ticks atomic.Int32
	)

	ticker := NewTicker(clock, time.Second, func() { ticks.Add(1) })
	ticker.Start()
	defer ticker.Stop()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(900 * time.Millisecond)
	ticker.Reset()

	clock.Advance(900 * time.Millisecond)
	require.Never(t, func() bool { return ticks.Load() != 0 }, 50*time.Millisecond, time.Millisecond)

	clock.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return ticks.Load() == 1 }, time.Second, time.Millisecond)
}

// TestTicker_ResetWhileStopped is a no-op and keeps the ticker stopped.
func TestTicker_ResetWhileStopped(t *testing.T) {
	t.Parallel()

	ticker := NewTicker(nil, 0, nil)
	ticker.Reset()

	require.False(t, ticker.Running())
	require.Equal(t, DefaultTickPeriod, ticker.Period())
}
