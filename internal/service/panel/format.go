package panel

import (
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	pb "github.com/oshokin/stopwatch/internal/pb/v1"
)

// FormatState renders a snapshot as "HH:MM:SS mode run_state" plus markers.
func FormatState(state *structpb.Struct) string {
	if state == nil {
		return "<nil state>"
	}

	parts := []string{
		pb.StringField(state, pb.StateClock),
		pb.StringField(state, pb.StateMode),
		pb.StringField(state, pb.StateRunState),
	}

	if pb.BoolField(state, pb.StateHalted) {
		parts = append(parts, "halted")
	}

	if pb.BoolField(state, pb.StateAlarmActive) {
		parts = append(parts, "ALARM")
	}

	return strings.Join(parts, " ")
}
