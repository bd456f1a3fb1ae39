package sim

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
)

// TestPanel_TapReleasesAfterHold verifies a tap holds the button for the given time.
func TestPanel_TapReleasesAfterHold(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := clockwork.NewFakeClock()
	panel := NewPanel(clock)

	panel.Tap(hardware.ButtonMode, 80*time.Millisecond)
	require.True(t, panel.Pressed(hardware.ButtonMode))
	require.False(t, panel.Pressed(hardware.ButtonReset))

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(79 * time.Millisecond)
	require.True(t, panel.Pressed(hardware.ButtonMode))

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return !panel.Pressed(hardware.ButtonMode) }, time.Second, time.Millisecond)
}

// TestPanel_PressOverridesTap ensures an explicit press cancels a pending release.
func TestPanel_PressOverridesTap(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	panel := NewPanel(clock)

	panel.Tap(hardware.ButtonHoursUp, 10*time.Millisecond)
	panel.Press(hardware.ButtonHoursUp)

	clock.Advance(time.Second)
	require.True(t, panel.Pressed(hardware.ButtonHoursUp))

	panel.Release(hardware.ButtonHoursUp)
	require.False(t, panel.Pressed(hardware.ButtonHoursUp))
}

// TestDisplay_ShowDigit verifies latching, rendering and range checks.
func TestDisplay_ShowDigit(t *testing.T) {
	t.Parallel()

	d := NewDisplay(nil, 0)
	require.Equal(t, -1, d.Enabled())

	for position, value := range stopwatch.NewTime(12, 34, 56).Digits() {
		d.ShowDigit(position, value)
	}

	require.Equal(t, "12:34:56", d.String())
	require.Equal(t, 5, d.Enabled())
	require.Equal(t, uint64(6), d.Writes())

	d.ShowDigit(6, 1)
	d.ShowDigit(0, 10)
	require.Equal(t, uint64(6), d.Writes())
}

// TestOutput_RecordsChanges checks level tracking and change notifications.
func TestOutput_RecordsChanges(t *testing.T) {
	t.Parallel()

	var changes []bool

	o := NewOutput("buzzer", func(name string, active bool) {
		require.Equal(t, "buzzer", name)

		changes = append(changes, active)
	})

	o.Set(false)
	o.Set(true)
	o.Set(true)
	o.Set(false)

	require.False(t, o.Active())
	require.Equal(t, 1, o.Activations())
	require.Equal(t, []bool{true, false}, changes)
	require.Equal(t, "buzzer", o.Name())
}
