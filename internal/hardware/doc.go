// Package hardware describes the collaborators the stopwatch core drives:
// button inputs, the six-digit display, and on/off outputs such as the buzzer
// and mode LEDs.
//
// It also holds the pieces that sit between raw signals and the core: the
// per-button Debouncer, the periodic Ticker that produces tick events, and the
// EdgeWatcher that turns sampled control lines into asynchronous events.
package hardware
