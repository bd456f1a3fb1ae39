package stopwatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestApplyTick_IncrementStaysInRange walks every valid time and checks the increment result is normalized.
func TestApplyTick_IncrementStaysInRange(t *testing.T) {
	t.Parallel()

	for total := range secondsPerDay {
		current := FromTotalSeconds(total)
		result := ApplyTick(current, ModeIncrement)

		require.True(t, result.Time.Valid(), "from %s", current)
		require.False(t, result.ReachedZero)
		require.Equal(t, (total+1)%secondsPerDay, result.Time.TotalSeconds(), "from %s", current)
	}
}

// TestApplyTick_IncrementWrapsHours verifies 23:59:59 rolls over to 00:00:00.
func TestApplyTick_IncrementWrapsHours(t *testing.T) {
	t.Parallel()

	result := ApplyTick(NewTime(23, 59, 59), ModeIncrement)
	require.Equal(t, Time{}, result.Time)
}

// TestApplyTick_CountdownSubtractsOneSecond walks every non-zero time and checks the borrow logic.
func TestApplyTick_CountdownSubtractsOneSecond(t *testing.T) {
	t.Parallel()

	for total := 1; total < secondsPerDay; total++ {
		current := FromTotalSeconds(total)
		result := ApplyTick(current, ModeCountdown)

		require.True(t, result.Time.Valid(), "from %s", current)
		require.Equal(t, total-1, result.Time.TotalSeconds(), "from %s", current)
		require.Equal(t, total == 1, result.ReachedZero, "from %s", current)
	}
}

// TestApplyTick_CountdownAtZero verifies the clock stays at zero and reports it.
func TestApplyTick_CountdownAtZero(t *testing.T) {
	t.Parallel()

	result := ApplyTick(Time{}, ModeCountdown)
	require.True(t, result.ReachedZero)
	require.Equal(t, Time{}, result.Time)
}

// TestApplyTick_CountdownBorrows checks borrow propagation from hours and minutes.
func TestApplyTick_CountdownBorrows(t *testing.T) {
	t.Parallel()

	require.Equal(t, NewTime(0, 59, 59), ApplyTick(NewTime(1, 0, 0), ModeCountdown).Time)
	require.Equal(t, NewTime(2, 4, 59), ApplyTick(NewTime(2, 5, 0), ModeCountdown).Time)
}

// TestApplyTick_HourRoundTrip counts 3600 ticks from zero.
func TestApplyTick_HourRoundTrip(t *testing.T) {
	t.Parallel()

	var current Time
	for range 3600 {
		current = ApplyTick(current, ModeIncrement).Time
	}

	require.Equal(t, Time{Hours: 1}, current)
}

// TestAdjust_Guards verifies adjustments never cross the field bounds.
func TestAdjust_Guards(t *testing.T) {
	t.Parallel()

	_, changed := Adjust(NewTime(23, 0, 0), FieldHours, true)
	require.False(t, changed)

	for _, field := range []Field{FieldHours, FieldMinutes, FieldSeconds} {
		got, changed := Adjust(Time{}, field, false)
		require.False(t, changed, field.String())
		require.Equal(t, Time{}, got)
	}

	_, changed = Adjust(NewTime(0, 59, 0), FieldMinutes, true)
	require.False(t, changed)

	_, changed = Adjust(NewTime(0, 0, 59), FieldSeconds, true)
	require.False(t, changed)

	_, changed = Adjust(Time{}, Field(42), true)
	require.False(t, changed)
}

// TestAdjust_DoesNotCarry ensures adjustment changes exactly one field.
func TestAdjust_DoesNotCarry(t *testing.T) {
	t.Parallel()

	got, changed := Adjust(NewTime(5, 58, 30), FieldMinutes, true)
	require.True(t, changed)
	require.Equal(t, NewTime(5, 59, 30), got)

	got, changed = Adjust(NewTime(5, 0, 30), FieldHours, false)
	require.True(t, changed)
	require.Equal(t, NewTime(4, 0, 30), got)

	got, changed = Adjust(NewTime(5, 0, 1), FieldSeconds, false)
	require.True(t, changed)
	require.Equal(t, NewTime(5, 0, 0), got)
}

// TestOrderEvents verifies simultaneous events resolve with Pause winning over Resume and Reset applied last.
func TestOrderEvents(t *testing.T) {
	t.Parallel()

	got := OrderEvents([]Event{EventReset, EventPause, EventResume, EventPause, EventTick})
	require.Equal(t, []Event{EventTick, EventResume, EventPause, EventReset}, got)

	require.Empty(t, OrderEvents(nil))
}
