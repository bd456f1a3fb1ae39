// Package machine implements the stopwatch's time-keeping state machine.
//
// A Machine owns the clock state behind a single mutex. Asynchronous producers
// (the tick source, control buttons, the remote panel) call Signal from any
// goroutine; the foreground loop calls Step, which refreshes the display,
// consumes at most one pending tick or scans the adjustment buttons while
// paused, and polls the mode button. Every multi-field update happens inside
// one critical section, so readers never observe a half-carried time.
package machine
