// Package sim provides in-process stand-ins for the stopwatch hardware: a
// virtual button panel whose presses are held for a fixed time, a six-digit
// multiplexed display model, and on/off outputs that record their state.
package sim
