// Package stopwatch implements the gRPC transport for the remote button panel.
//
// It parses button names, reads the caller identity from request metadata and
// renders machine snapshots as protobuf Structs.
package stopwatch
