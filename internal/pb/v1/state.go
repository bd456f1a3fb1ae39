// Package pb holds the StopwatchService gRPC contract described in
// api/stopwatch/v1/stopwatch.proto.
//
// Requests and responses are protobuf well-known types. The state snapshot
// travels as a structpb.Struct keyed by the State* constants.
package pb

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Keys of the state snapshot Struct.
const (
	StateClock        = "clock"
	StateClockSeconds = "clock_seconds"
	StateHours        = "hours"
	StateMinutes      = "minutes"
	StateSeconds      = "seconds"
	StateMode         = "mode"
	StateRunState     = "run_state"
	StateHalted       = "halted"
	StateAlarmActive  = "alarm_active"
	StateDisplay      = "display"
)

// Metadata keys carrying the caller identity.
const (
	MetadataHostname = "x-stopwatch-hostname"
	MetadataUsername = "x-stopwatch-username"
)

// StringField returns the string value of key, or "" when missing.
func StringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// NumberField returns the integer value of key, or 0 when missing.
func NumberField(s *structpb.Struct, key string) int {
	return int(s.GetFields()[key].GetNumberValue())
}

// BoolField returns the bool value of key, or false when missing.
func BoolField(s *structpb.Struct, key string) bool {
	return s.GetFields()[key].GetBoolValue()
}
