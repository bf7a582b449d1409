package reelcore

import (
	"context"
	"testing"
	"time"

	"github.com/d2vr/reelcore/decoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedPacketChannel_SendRecvRoundTrip(t *testing.T) {
	c := NewBoundedPacketChannel()
	p := &decoder.Packet{StreamIndex: 3}

	err := c.Send(context.Background(), p)
	require.NoError(t, err)

	got, ok := c.Recv()
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestBoundedPacketChannel_SendRespectsContextCancellation(t *testing.T) {
	c := NewBoundedPacketChannel()
	for i := 0; i < packetChannelCapacity; i++ {
		require.NoError(t, c.Send(context.Background(), &decoder.Packet{}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.Send(ctx, &decoder.Packet{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBoundedPacketChannel_CloseWakesPendingRecv(t *testing.T) {
	c := NewBoundedPacketChannel()
	done := make(chan struct{})
	go func() {
		_, ok := c.Recv()
		assert.False(t, ok)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	c.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Recv did not wake up after Close")
	}
}

func TestBoundedPacketChannel_CloseIsIdempotent(t *testing.T) {
	c := NewBoundedPacketChannel()
	c.Close()
	assert.NotPanics(t, func() { c.Close() })
}

func TestUnboundedControlChannel_SendBlockingNeverBlocksUnderNormalLoad(t *testing.T) {
	c := NewUnboundedControlChannel()
	for i := 0; i < controlChannelBuffer; i++ {
		require.NoError(t, c.SendBlocking(ControlPlay))
	}
}

func TestUnboundedControlChannel_SendAfterCloseErrors(t *testing.T) {
	c := NewUnboundedControlChannel()
	c.Close()
	err := c.SendBlocking(ControlPause)
	assert.Error(t, err)
}

func TestUnboundedControlChannel_CloseIsIdempotent(t *testing.T) {
	c := NewUnboundedControlChannel()
	c.Close()
	assert.NotPanics(t, func() { c.Close() })
}
