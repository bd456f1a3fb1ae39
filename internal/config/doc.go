// Package config defines the settings used by the stopwatch binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Besides the panel and metrics addresses, Config carries the timing knobs of
// the machine: tick period, debounce settle delay, display dwell, alarm hold
// and the hold time of remote button presses.
package config
