package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// leveledCore overrides the minimum level of the core it wraps. Unlike the
// shared atomic level it may be more verbose than the rest of the process.
type leveledCore struct {
	zapcore.Core

	level zapcore.Level
}

// Enabled reports whether l passes this core's own level.
func (c *leveledCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check adds the core to ce when the entry level is enabled.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, c)
}

// With keeps the level on derived cores.
//
//nolint:ireturn,nolintlint // zapcore.Core is what zap expects back.
func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{Core: c.Core.With(fields), level: c.level}
}

// WithLevel pins a logger to lvl regardless of the global level.
//
//nolint:ireturn,nolintlint // zap.Option is what zap expects back.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &leveledCore{Core: core, level: lvl}
	})
}

// WithComponent returns a context whose logger is named component and, when
// level parses, logs at that level instead of the global one. An empty or
// unknown level keeps the global behaviour.
func WithComponent(ctx context.Context, component, level string) context.Context {
	l := FromContext(ctx).Named(component)

	if lvl, ok := ParseLogLevel(level); ok && level != "" {
		l = l.WithOptions(WithLevel(lvl))
	}

	return ToContext(ctx, l)
}
