//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	domain "github.com/oshokin/stopwatch/internal/domain/stopwatch"
	pb "github.com/oshokin/stopwatch/internal/pb/v1"
)

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	_, ok := metadata.FromOutgoingContext(ctx)
	require.False(t, ok)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_callContext_Actor verifies the actor travels as outgoing metadata.
func TestClient_callContext_Actor(t *testing.T) {
	t.Parallel()

	c := new(Client)
	WithActor(&domain.Actor{Hostname: "bench-01", Username: "o.shokin"})(c)

	ctx, cancel := c.callContext(context.Background())
	defer cancel()

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	require.Equal(t, []string{"bench-01"}, md.Get(pb.MetadataHostname))
	require.Equal(t, []string{"o.shokin"}, md.Get(pb.MetadataUsername))
}

// TestPress_EmptyButton asserts that an empty button name is rejected by the client.
func TestPress_EmptyButton(t *testing.T) {
	t.Parallel()

	c := new(Client)

	_, err := c.Press(context.Background(), "")
	require.ErrorIs(t, err, errButtonRequired)
}
