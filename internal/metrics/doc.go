// Package metrics exposes the stopwatch's Prometheus collectors: tick, control
// event, button and alarm counters, gauges mirroring the clock state, and a
// gRPC interceptor counting panel requests.
package metrics
