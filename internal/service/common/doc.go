// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the stopwatch panel with call
// timeouts and utilities to detect the current system actor (hostname/username)
// sent along with every press.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
