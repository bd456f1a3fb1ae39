package stopwatch

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
	pb "github.com/oshokin/stopwatch/internal/pb/v1"
	"github.com/oshokin/stopwatch/internal/service/machine"
)

// State is the snapshot returned to panel clients.
type State struct {
	machine.Snapshot

	// Display is the rendered display content, empty when unknown.
	Display string
}

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Press(ctx context.Context, actor *domain.Actor, button hardware.Button) error
	State(ctx context.Context) State
}

// Server implements the StopwatchService gRPC API.
type Server struct {
	pb.UnimplementedStopwatchServiceServer

	// service provides the business logic behind the panel.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Press holds one panel button down and returns the state at the moment of
// the press. The press is applied asynchronously once the scanner sees it.
func (s *Server) Press(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil || req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "button is required")
	}

	button, err := hardware.ParseButton(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err = s.service.Press(ctx, actorFromContext(ctx), button); err != nil {
		return nil, status.Error(codes.Internal, "unable to press button")
	}

	return toProtoState(s.service.State(ctx))
}

// GetState returns the current snapshot.
func (s *Server) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toProtoState(s.service.State(ctx))
}

// actorFromContext reads the caller identity from the incoming metadata.
func actorFromContext(ctx context.Context) *domain.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	actor := &domain.Actor{
		Hostname: first(md.Get(pb.MetadataHostname)),
		Username: first(md.Get(pb.MetadataUsername)),
	}

	if actor.Hostname == "" && actor.Username == "" {
		return nil
	}

	return actor
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

// toProtoState converts a State into the snapshot Struct.
func toProtoState(state State) (*structpb.Struct, error) {
	result, err := structpb.NewStruct(map[string]any{
		pb.StateClock:        state.Time.String(),
		pb.StateClockSeconds: state.Time.TotalSeconds(),
		pb.StateHours:        int(state.Time.Hours),
		pb.StateMinutes:      int(state.Time.Minutes),
		pb.StateSeconds:      int(state.Time.Seconds),
		pb.StateMode:         state.Mode.String(),
		pb.StateRunState:     state.RunState.String(),
		pb.StateHalted:       state.Halted,
		pb.StateAlarmActive:  state.AlarmActive,
		pb.StateDisplay:      state.Display,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode state")
	}

	return result, nil
}
