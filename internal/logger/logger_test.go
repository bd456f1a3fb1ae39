package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
		" Info": zapcore.InfoLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers verifies the context carries a named logger with extra fields.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithSink(zapcore.AddSync(&buf), zapcore.DebugLevel)

	require.Same(t, Logger(), FromContext(context.Background()))

	ctx := ToContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))

	ctx = WithName(ctx, "stopwatch")
	ctx = WithKV(ctx, "mode", "countdown")

	InfoKV(ctx, "Tick applied", "clock", "00:00:01")

	out := buf.String()
	require.Contains(t, out, "stopwatch")
	require.Contains(t, out, "Tick applied")
	require.Contains(t, out, "countdown")
	require.Contains(t, out, "00:00:01")
}

// TestWithComponent checks a component logger can be more verbose than its parent.
func TestWithComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), NewWithSink(zapcore.AddSync(&buf), zapcore.InfoLevel))

	DebugKV(ctx, "Parent debug")
	require.Empty(t, buf.String())

	hw := WithComponent(ctx, "hardware", "debug")
	DebugKV(hw, "Output changed", "output", "buzzer")
	require.Contains(t, buf.String(), "hardware")
	require.Contains(t, buf.String(), "buzzer")

	buf.Reset()

	quiet := WithComponent(ctx, "hardware", "")
	DebugKV(quiet, "Output changed")
	require.Empty(t, buf.String())

	quiet = WithComponent(ctx, "hardware", "error")
	InfoKV(quiet, "Output changed")
	require.Empty(t, buf.String())
}
