// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a sane console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities, including per-component
//     levels (WithComponent) for noisy simulated hardware,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// The stopwatch machine, the gRPC panel and the CLIs accept a context and
// extract the logger from it, so every component logs under its own name.
package logger
