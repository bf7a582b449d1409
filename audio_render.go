package reelcore

import (
	"encoding/binary"
	"math"

	"github.com/gordonklaus/portaudio"
)

// renderFramesPerBuffer fixes the callback's frame count up front (rather
// than passing 0 and letting portaudio pick one per-callback) so the
// scratch staging buffer can be sized once, at construction, instead of
// inside the real-time callback.
const renderFramesPerBuffer = 512

// AudioRenderWorker is a thin wrapper around the external audio device's
// real-time callback. On every callback invocation it pulls as many bytes
// as are available from the ring, converts them to the device's native
// sample type, and pads any remainder with the equilibrium sample
// (silence) for that type - 0 for signed/float formats, the midpoint for
// unsigned ones.
type AudioRenderWorker struct {
	ring     *SampleRingBuffer
	channels int
	stream   *portaudio.Stream
	scratch  []byte // fixed-size byte staging buffer, sized once at construction
}

// NewAudioRenderWorker opens a default-output portaudio stream at
// sampleRate with the given channel count and a fixed frames-per-buffer,
// consuming PCM float32 samples from ring. float32 is the device format
// this reference wiring targets; a platform layer wanting other formats
// supplies its own AudioRenderWorker-shaped wrapper around the same
// SampleRingBuffer.
func NewAudioRenderWorker(ring *SampleRingBuffer, sampleRate float64, channels int) (*AudioRenderWorker, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	w := &AudioRenderWorker{
		ring:     ring,
		channels: channels,
		scratch:  make([]byte, renderFramesPerBuffer*channels*4),
	}

	stream, err := portaudio.OpenDefaultStream(0, channels, sampleRate, renderFramesPerBuffer, w.callback)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, err
	}
	w.stream = stream
	return w, nil
}

// Start begins the device's audio callback.
func (w *AudioRenderWorker) Start() error {
	return w.stream.Start()
}

// Close stops the stream and releases portaudio's process-wide state.
// Errors are logged rather than returned: device-layer teardown errors
// aren't actionable by the caller (construction errors above are still
// returned normally).
func (w *AudioRenderWorker) Close() {
	if w.stream != nil {
		if err := w.stream.Close(); err != nil {
			pkgLogger.Warnf("audio render worker: stream close: %v", err)
		}
	}
	if err := portaudio.Terminate(); err != nil {
		pkgLogger.Warnf("audio render worker: terminate: %v", err)
	}
}

// callback implements the device's realtime data_callback contract:
// n := ring.PopSlice(dst); dst[n:] filled with silence. The scratch buffer
// is never resized here - with FramesPerBuffer fixed at stream-open time,
// len(out) is constant for the stream's lifetime, so the buffer sized in
// NewAudioRenderWorker is always big enough; this keeps the callback free
// of allocation, locking, and blocking.
func (w *AudioRenderWorker) callback(out []float32) {
	needed := len(out) * 4
	buf := w.scratch[:needed]
	n := w.ring.PopSlice(buf)

	for i := 0; i < len(out); i++ {
		off := i * 4
		if off+4 <= n {
			bits := binary.LittleEndian.Uint32(buf[off : off+4])
			out[i] = math.Float32frombits(bits)
		} else {
			out[i] = 0 // equilibrium sample for float32
		}
	}
}
