package panel

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	pb "github.com/oshokin/stopwatch/internal/pb/v1"
)

// TestRetryable retries only presses that never reached the server.
func TestRetryable(t *testing.T) {
	t.Parallel()

	cases := map[codes.Code]bool{
		codes.Unavailable:      true,
		codes.DeadlineExceeded: false,
		codes.Internal:         false,
		codes.InvalidArgument:  false,
		codes.Canceled:         false,
	}

	for code, want := range cases {
		err := fmt.Errorf("press pause: %w", status.Error(code, "boom"))
		require.Equal(t, want, retryable(err), code.String())
	}

	require.False(t, retryable(context.DeadlineExceeded))
	require.False(t, retryable(errors.New("plain")))
}

// stubStates returns a fixed state or error.
type stubStates struct {
	state *structpb.Struct
	err   error
	calls int
}

func (s *stubStates) GetState(context.Context) (*structpb.Struct, error) {
	s.calls++

	return s.state, s.err
}

// TestSettledState reads the state after the hold and falls back to the press reply.
func TestSettledState(t *testing.T) {
	t.Parallel()

	pressed, err := structpb.NewStruct(map[string]any{pb.StateRunState: "running"})
	require.NoError(t, err)

	settled, err := structpb.NewStruct(map[string]any{pb.StateRunState: "paused"})
	require.NoError(t, err)

	ctx := context.Background()

	states := &stubStates{state: settled}
	require.Same(t, settled, settledState(ctx, states, time.Millisecond, pressed))
	require.Equal(t, 1, states.calls)

	states = &stubStates{err: status.Error(codes.Unavailable, "gone")}
	require.Same(t, pressed, settledState(ctx, states, time.Millisecond, pressed))

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	states = &stubStates{state: settled}
	require.Same(t, pressed, settledState(canceled, states, time.Hour, pressed))
	require.Zero(t, states.calls)
}
