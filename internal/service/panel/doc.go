// Package panel implements the stopwatch-panel commands.
//
// They connect to the stopwatch server, press remote buttons and print or
// follow the clock state.
package panel
