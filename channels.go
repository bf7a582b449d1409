package reelcore

import (
	"context"

	"github.com/d2vr/reelcore/decoder"
	"github.com/erparts/reisen"
)

// packetChannelCapacity is the back-pressure point from decoder to
// demuxer.
const packetChannelCapacity = 128

// BoundedChannel is a typed, closable, cancellable FIFO queue with a fixed
// capacity. It is a thin wrapper around a native Go channel: Go's
// channel send/receive already suspend until a slot/item is available, and
// close() already wakes every pending operation with a channel-closed
// signal, so this type mostly exists to give Send/Recv a stable,
// documented home and to let them be cancelled by a context
// without losing a concurrently-delivered value. Parameterized over the
// payload type so the same queue shape serves both the decoder.Packet
// surface the pull-mode library composes with and the already-decoded
// frame channels the push-mode pipeline uses internally (see channel
// constructors below).
type BoundedChannel[T any] struct {
	ch     chan T
	closed chan struct{}
}

// NewBoundedChannel constructs a channel with the given fixed capacity.
func NewBoundedChannel[T any](capacity int) *BoundedChannel[T] {
	return &BoundedChannel[T]{
		ch:     make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

// Send enqueues a value, suspending until a free slot is available, the
// channel is closed, or ctx is cancelled.
func (c *BoundedChannel[T]) Send(ctx context.Context, v T) error {
	select {
	case c.ch <- v:
		return nil
	case <-c.closed:
		return errChannelClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv dequeues the next value, suspending until one is available or the
// channel is closed. ok is false iff the channel was closed and drained.
func (c *BoundedChannel[T]) Recv() (v T, ok bool) {
	select {
	case v, open := <-c.ch:
		return v, open
	case <-c.closed:
		// Drain any value that raced in before close, preserving FIFO
		// order rather than dropping it.
		select {
		case v, open := <-c.ch:
			return v, open
		default:
			var zero T
			return zero, false
		}
	}
}

// channel exposes the underlying receive channel for use directly inside
// a caller's own select statement (the worker outer loops need this to
// race value-availability against their control channel).
func (c *BoundedChannel[T]) channel() <-chan T { return c.ch }

// isClosed exposes the close signal for use directly inside a caller's
// own select statement.
func (c *BoundedChannel[T]) isClosed() <-chan struct{} { return c.closed }

// Close wakes every pending Send/Recv with a channel-closed signal.
// Idempotent.
func (c *BoundedChannel[T]) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
}

// BoundedPacketChannel is the decoder.Packet instantiation of
// BoundedChannel: the queue a platform layer feeds decoder.DecoderSplit
// from.
type BoundedPacketChannel = BoundedChannel[*decoder.Packet]

// NewBoundedPacketChannel constructs a packet channel with the fixed
// capacity of 128.
func NewBoundedPacketChannel() *BoundedPacketChannel {
	return NewBoundedChannel[*decoder.Packet](packetChannelCapacity)
}

// videoFrameChannel and audioFrameChannel carry already-decoded frames from
// the demuxer goroutine to their worker. reisen's Media.ReadPacket and a
// stream's ReadVideoFrame/ReadAudioFrame must run sequentially on the same
// goroutine - reisen's own internalReadAudioFrame loop in
// controller_yes_audio.go always reads a packet and, in the same
// iteration, decodes the matching stream's frame before looping again, and
// never calls a stream's Read*Frame concurrently with another ReadPacket
// on the same *reisen.Media. This reference wiring keeps that constraint:
// the demuxer performs both the packet read and the decode call, then
// hands the worker an already-decoded frame instead of a bare packet
// notification (see DESIGN.md's demuxer entry for the full reasoning).
type videoFrameChannel = BoundedChannel[*reisen.VideoFrame]
type audioFrameChannel = BoundedChannel[*reisen.AudioFrame]

func newVideoFrameChannel() *videoFrameChannel {
	return NewBoundedChannel[*reisen.VideoFrame](packetChannelCapacity)
}

func newAudioFrameChannel() *audioFrameChannel {
	return NewBoundedChannel[*reisen.AudioFrame](packetChannelCapacity)
}

// ControlCommand is the small, low-cardinality command set sent over an
// UnboundedControlChannel.
type ControlCommand int

const (
	ControlPlay ControlCommand = iota
	ControlPause
)

// UnboundedControlChannel never blocks its sender: control traffic is
// low-rate by design, so a modestly-sized buffered channel already
// satisfies "never blocks in practice" without the complexity of a
// hand-rolled growable queue - no third-party unbounded-channel primitive
// exists anywhere in the examined ecosystem to reach for instead (see
// DESIGN.md).
type UnboundedControlChannel struct {
	ch     chan ControlCommand
	closed chan struct{}
}

// controlChannelBuffer is generously sized so SendBlocking never actually
// blocks under the command volumes this protocol produces (one command
// per user-initiated pause/resume).
const controlChannelBuffer = 64

func NewUnboundedControlChannel() *UnboundedControlChannel {
	return &UnboundedControlChannel{
		ch:     make(chan ControlCommand, controlChannelBuffer),
		closed: make(chan struct{}),
	}
}

// SendBlocking enqueues a command. It returns errChannelClosed if the
// channel has already been closed. Otherwise it returns without blocking
// while fewer than controlChannelBuffer commands are waiting; once that
// many are queued unread, it blocks until a receiver takes one or the
// channel is closed.
func (c *UnboundedControlChannel) SendBlocking(cmd ControlCommand) error {
	select {
	case <-c.closed:
		return errChannelClosed
	default:
	}
	select {
	case c.ch <- cmd:
		return nil
	case <-c.closed:
		return errChannelClosed
	}
}

// channel exposes the underlying receive channel for use inside a
// caller's own select statement.
func (c *UnboundedControlChannel) channel() <-chan ControlCommand { return c.ch }

// Close wakes every pending receiver with a channel-closed signal.
// Idempotent.
func (c *UnboundedControlChannel) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
}

func (c *UnboundedControlChannel) isClosed() <-chan struct{} { return c.closed }

var errChannelClosed = newChannelClosedError()

func newChannelClosedError() error { return channelClosedError{} }

type channelClosedError struct{}

func (channelClosedError) Error() string { return "reelcore: channel closed" }
