// Package state implements persistence for the stopwatch clock.
//
// The FileRepository stores and loads a Record as JSON on disk and exposes a
// Repository interface that the server service depends on.
package state
