// Package stopwatch contains the core time-keeping types of the stopwatch.
//
// Time is the normalized hours:minutes:seconds value, Mode selects how a tick
// transforms it and RunState tells whether ticks are consumed at all.
// Everything here is a plain value: callers own synchronization.
package stopwatch
