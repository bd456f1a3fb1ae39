package stopwatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTimeDigits checks digit decomposition order.
func TestTimeDigits(t *testing.T) {
	t.Parallel()

	require.Equal(t, Digits{6, 5, 4, 3, 2, 1}, NewTime(12, 34, 56).Digits())
	require.Equal(t, Digits{}, Time{}.Digits())
}

// TestNewTime_Normalizes verifies out-of-range inputs are folded into a valid time.
func TestNewTime_Normalizes(t *testing.T) {
	t.Parallel()

	require.Equal(t, Time{Hours: 1, Minutes: 1, Seconds: 1}, NewTime(0, 60, 61))
	require.Equal(t, Time{Hours: 23, Minutes: 59, Seconds: 59}, NewTime(0, 0, -1))
	require.Equal(t, "01:02:03", NewTime(1, 2, 3).String())
}

// TestModeToggleAndParse covers mode flipping and parsing.
func TestModeToggleAndParse(t *testing.T) {
	t.Parallel()

	require.Equal(t, ModeCountdown, ModeIncrement.Toggle())
	require.Equal(t, ModeIncrement, ModeIncrement.Toggle().Toggle())

	m, err := ParseMode(" Countdown ")
	require.NoError(t, err)
	require.Equal(t, ModeCountdown, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeIncrement, m)

	_, err = ParseMode("sideways")
	require.ErrorIs(t, err, ErrUnknownMode)

	require.Equal(t, "paused", Paused.String())

	r, err := ParseRunState("Paused")
	require.NoError(t, err)
	require.Equal(t, Paused, r)

	_, err = ParseRunState("sleeping")
	require.ErrorIs(t, err, ErrUnknownRunState)
}
