// Package version exposes build metadata for the stopwatch binaries.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. Short and Full render them for the CLI, KV for startup logs.
package version
