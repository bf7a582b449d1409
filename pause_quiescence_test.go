package reelcore

import (
	"context"
	"testing"
	"time"

	"github.com/d2vr/reelcore/decoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the nil-channel pause/resume idiom shared by
// AudioDecodeWorker.run and VideoDecodeWorker.run, via a minimal stand-in
// loop built on the same BoundedChannel / UnboundedControlChannel
// primitives the real workers use (here the packet instantiation; the
// workers use the frame instantiations). The real workers cannot be driven
// directly in a unit test without real *reisen.AudioFrame/
// *reisen.VideoFrame values (concrete container types, not interfaces -
// see DESIGN.md's worker entries), so this harness isolates and verifies
// the control-loop shape itself.
func runPauseAwareLoop(ctx context.Context, packetCh *BoundedPacketChannel, controlCh *UnboundedControlChannel, onPacket func(*decoder.Packet)) {
	playing := true
	packets := packetCh.channel()
	control := controlCh.channel()

	for {
		packetBranch := packets
		if !playing {
			packetBranch = nil
		}

		select {
		case <-ctx.Done():
			return
		case <-controlCh.isClosed():
			return
		case cmd, ok := <-control:
			if !ok {
				return
			}
			switch cmd {
			case ControlPause:
				playing = false
			case ControlPlay:
				playing = true
			}
		case <-packetCh.isClosed():
			return
		case pkt, ok := <-packetBranch:
			if !ok {
				return
			}
			onPacket(pkt)
		}
	}
}

func TestPauseAwareLoop_PausedLoopIgnoresPackets(t *testing.T) {
	packetCh := NewBoundedPacketChannel()
	controlCh := NewUnboundedControlChannel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var consumed int
	done := make(chan struct{})
	go func() {
		runPauseAwareLoop(ctx, packetCh, controlCh, func(*decoder.Packet) { consumed++ })
		close(done)
	}()

	require.NoError(t, controlCh.SendBlocking(ControlPause))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, packetCh.Send(context.Background(), &decoder.Packet{StreamIndex: 1}))
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 0, consumed, "a paused loop must not consume packets")

	cancel()
	<-done
}

func TestPauseAwareLoop_ResumeDeliversQueuedPacket(t *testing.T) {
	packetCh := NewBoundedPacketChannel()
	controlCh := NewUnboundedControlChannel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumed := make(chan *decoder.Packet, 1)
	done := make(chan struct{})
	go func() {
		runPauseAwareLoop(ctx, packetCh, controlCh, func(p *decoder.Packet) { consumed <- p })
		close(done)
	}()

	require.NoError(t, controlCh.SendBlocking(ControlPause))
	time.Sleep(10 * time.Millisecond)
	p := &decoder.Packet{StreamIndex: 7}
	require.NoError(t, packetCh.Send(context.Background(), p))
	require.NoError(t, controlCh.SendBlocking(ControlPlay))

	select {
	case got := <-consumed:
		assert.Same(t, p, got)
	case <-time.After(time.Second):
		t.Fatal("queued packet was never delivered after resume")
	}

	cancel()
	<-done
}

func TestPauseAwareLoop_ClosingControlChannelStopsLoop(t *testing.T) {
	packetCh := NewBoundedPacketChannel()
	controlCh := NewUnboundedControlChannel()

	done := make(chan struct{})
	go func() {
		runPauseAwareLoop(context.Background(), packetCh, controlCh, func(*decoder.Packet) {})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	controlCh.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after control channel close")
	}
}
