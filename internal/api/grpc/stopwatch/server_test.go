package stopwatch

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/stopwatch/internal/domain/stopwatch"
	"github.com/oshokin/stopwatch/internal/hardware"
	pb "github.com/oshokin/stopwatch/internal/pb/v1"
	"github.com/oshokin/stopwatch/internal/service/machine"
)

var errTestPress = errors.New("test press error")

// fakeService implements the Service interface for unit testing the transport.
type fakeService struct {
	// pressFn overrides Press when set.
	pressFn func(ctx context.Context, actor *domain.Actor, button hardware.Button) error

	// mu protects the fields below.
	mu sync.Mutex
	// state is returned by State.
	state State
	// pressed records every pressed button.
	pressed []hardware.Button
	// actor is the last actor seen by Press.
	actor *domain.Actor
}

// Press records the button and applies reset and pause to the stored state.
func (f *fakeService) Press(ctx context.Context, actor *domain.Actor, button hardware.Button) error {
	if f.pressFn != nil {
		return f.pressFn(ctx, actor, button)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.pressed = append(f.pressed, button)
	f.actor = actor.Clone()

	switch button {
	case hardware.ButtonReset:
		f.state.Time = domain.Time{}
	case hardware.ButtonPause:
		f.state.RunState = domain.Paused
	default:
	}

	return nil
}

// State returns the stored state.
func (f *fakeService) State(context.Context) State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// TestServer_Press_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_Press_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.Press(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Press(context.Background(), wrapperspb.String(""))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Press(context.Background(), wrapperspb.String("lap"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_Press_ServiceError maps service failures to Internal.
func TestServer_Press_ServiceError(t *testing.T) {
	t.Parallel()

	s := NewServer(&fakeService{
		pressFn: func(context.Context, *domain.Actor, hardware.Button) error {
			return errTestPress
		},
	})

	_, err := s.Press(context.Background(), wrapperspb.String("reset"))
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestServer_Roundtrip exercises Press and GetState end-to-end on the server implementation.
func TestServer_Roundtrip(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		service := &fakeService{
			state: State{
				Snapshot: machine.Snapshot{
					Time: domain.NewTime(1, 2, 3),
					Mode: domain.ModeCountdown,
				},
				Display: "01:02:03",
			},
		}

		s := NewServer(service)

		state, err := s.GetState(context.Background(), new(emptypb.Empty))
		require.NoError(t, err)
		require.Equal(t, "01:02:03", pb.StringField(state, pb.StateClock))
		require.Equal(t, 3723, pb.NumberField(state, pb.StateClockSeconds))
		require.Equal(t, 2, pb.NumberField(state, pb.StateMinutes))
		require.Equal(t, "countdown", pb.StringField(state, pb.StateMode))
		require.Equal(t, "running", pb.StringField(state, pb.StateRunState))
		require.False(t, pb.BoolField(state, pb.StateAlarmActive))

		state, err = s.Press(context.Background(), wrapperspb.String("PAUSE"))
		require.NoError(t, err)

		// Wait for all async operations to complete.
		synctest.Wait()

		require.Equal(t, "paused", pb.StringField(state, pb.StateRunState))
		require.Equal(t, []hardware.Button{hardware.ButtonPause}, service.pressed)
		require.Nil(t, service.actor)
	})
}

// TestServer_OverGRPC drives the registered service through a real client connection.
func TestServer_OverGRPC(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 20)
	service := &fakeService{
		state: State{Snapshot: machine.Snapshot{Time: domain.NewTime(0, 0, 42)}},
	}

	grpcServer := grpc.NewServer()
	pb.RegisterStopwatchServiceServer(grpcServer, NewServer(service))

	go func() {
		_ = grpcServer.Serve(lis)
	}()

	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	client := pb.NewStopwatchServiceClient(conn)

	ctx := metadata.AppendToOutgoingContext(context.Background(),
		pb.MetadataHostname, "bench-01",
		pb.MetadataUsername, "o.shokin",
	)

	state, err := client.Press(ctx, wrapperspb.String("reset"))
	require.NoError(t, err)
	require.Equal(t, "00:00:00", pb.StringField(state, pb.StateClock))

	service.mu.Lock()
	require.Equal(t, &domain.Actor{Hostname: "bench-01", Username: "o.shokin"}, service.actor)
	service.mu.Unlock()

	_, err = client.Press(ctx, wrapperspb.String("hours-sideways"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	state, err = client.GetState(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)
	require.Equal(t, 0, pb.NumberField(state, pb.StateClockSeconds))
}
