package decoder

import (
	"iter"
	"sync"
)

// globalInit models the container library's one-time, idempotent
// process-wide init() call.
var (
	globalInitOnce sync.Once
	globalInitFn   func() error
	globalInitErr  error
)

// SetGlobalInit registers the platform layer's one-time initialization
// hook (e.g. a container library's av_register_all-equivalent). It is a
// no-op if called more than once; only the first registration takes
// effect. Safe to call before any Decoder or Player construction.
func SetGlobalInit(fn func() error) {
	if globalInitFn == nil {
		globalInitFn = fn
	}
}

func ensureGlobalInit() error {
	globalInitOnce.Do(func() {
		if globalInitFn != nil {
			globalInitErr = globalInitFn()
		}
	})
	return globalInitErr
}

// BackendFactory constructs a Backend from an opened PacketSource and
// free-form per-codec option strings (passed through verbatim to the
// backend, e.g. {"threads": "4"}).
type BackendFactory func(source PacketSource, options map[string]string) (Backend, error)

// DecoderBuilder configures and constructs a Decoder, the fluent
// equivalent of the original library's DecoderBuilder{source, options,
// resize, hwaccel}.build().
type DecoderBuilder struct {
	source  PacketSource
	backend BackendFactory

	options map[string]string
	resize  Resize
	hwaccel HWAccelContext
	scaler  ScalerFactory

	canonicalFormat PixelFormat
}

// NewBuilder starts building a Decoder over the given already-opened
// packet source, using backendFactory to construct the codec backend.
func NewBuilder(source PacketSource, backendFactory BackendFactory) *DecoderBuilder {
	return &DecoderBuilder{
		source:          source,
		backend:         backendFactory,
		canonicalFormat: PixelFormatRGB24,
	}
}

// WithOptions sets raw per-codec option strings passed through to the
// backend verbatim.
func (b *DecoderBuilder) WithOptions(options map[string]string) *DecoderBuilder {
	b.options = options
	return b
}

// WithResize installs a spatial resize policy applied to the backend's
// native output size.
func (b *DecoderBuilder) WithResize(resize Resize) *DecoderBuilder {
	b.resize = resize
	return b
}

// WithHardwareAcceleration attaches a hardware-acceleration context.
func (b *DecoderBuilder) WithHardwareAcceleration(hwaccel HWAccelContext) *DecoderBuilder {
	b.hwaccel = hwaccel
	return b
}

// WithScalerFactory installs the software-scale collaborator used when a
// scaler is required. Required whenever the codec's native format/size
// will not already match the canonical RGB24 target.
func (b *DecoderBuilder) WithScalerFactory(factory ScalerFactory) *DecoderBuilder {
	b.scaler = factory
	return b
}

// Build constructs the Decoder, running the global init hook (if
// registered) exactly once first.
func (b *DecoderBuilder) Build() (*Decoder, error) {
	if err := ensureGlobalInit(); err != nil {
		return nil, err
	}
	backend, err := b.backend(b.source, b.options)
	if err != nil {
		return nil, newBackendError("decoder_new", err)
	}
	split, err := NewDecoderSplit(backend, b.resize, b.hwaccel, b.canonicalFormat, b.scaler)
	if err != nil {
		return nil, err
	}
	return &Decoder{source: b.source, split: split}, nil
}

// New builds a Decoder with default options: no resize, no hardware
// acceleration, RGB24 canonical output.
func New(source PacketSource, backendFactory BackendFactory) (*Decoder, error) {
	return NewBuilder(source, backendFactory).Build()
}

// Decoder is the pull-mode library surface: a PacketSource paired
// with a DecoderSplit, exposing the higher-level decode()/decode_raw()
// API along with metadata accessors and seeking.
type Decoder struct {
	source  PacketSource
	split   *DecoderSplit
	lastErr error
}

// TimeBase reports the decoder's installed time base.
func (d *Decoder) TimeBase() Rational { return d.split.TimeBase() }

// Duration reports the source stream's total duration.
func (d *Decoder) Duration() int64 { return d.source.Duration() }

// Frames reports the source stream's total frame count.
func (d *Decoder) Frames() int64 { return d.source.Frames() }

// FrameRate reports the source stream's nominal frame rate.
func (d *Decoder) FrameRate() Rational { return d.source.FrameRate() }

// Size reports the backend's native output size.
func (d *Decoder) Size() Size { return d.split.Size() }

// SizeOut reports the resolved (possibly resized) output size.
func (d *Decoder) SizeOut() Size { return d.split.SizeOut() }

// DecodeRaw reads the next packet from the source and decodes one raw
// frame, retrying internally while the backend reports EAGAIN.
func (d *Decoder) DecodeRaw() (*RawFrame, error) {
	for {
		packet, err := d.source.ReadPacket()
		if err != nil {
			return d.split.DrainRaw()
		}
		frame, err := d.split.DecodeRaw(packet)
		if err != nil {
			return nil, err
		}
		if frame != nil {
			return frame, nil
		}
		// EAGAIN: feed another packet.
	}
}

// Decode is the RGB24 surface variant: it decodes one raw frame, converts
// it to an RGB24 image, and pairs it with a Time built from the frame's
// DTS (see the Time doc for why DTS, not PTS, is used here).
func (d *Decoder) Decode() (Time, *RGBFrame, error) {
	frame, err := d.DecodeRaw()
	if err != nil {
		return Time{}, nil, err
	}
	return d.toRGBResult(frame)
}

// Drain behaves like Decode but pulls from the drain queue once EOF has
// been reached, without submitting further packets.
func (d *Decoder) Drain() (Time, *RGBFrame, error) {
	frame, err := d.split.DrainRaw()
	if err != nil {
		return Time{}, nil, err
	}
	return d.toRGBResult(frame)
}

func (d *Decoder) toRGBResult(frame *RawFrame) (Time, *RGBFrame, error) {
	rgb, err := frameToRGB(frame)
	if err != nil {
		return Time{}, nil, err
	}
	var dts int64
	if frame.DTS != nil {
		dts = *frame.DTS
	}
	t := Time{Timestamp: dts, Base: d.split.TimeBase()}
	return t, rgb, nil
}

// frameToRGB converts an already-canonical-format RawFrame (RGB24, per
// DecoderSplit's scaler installation policy) into the flat RGBFrame
// surface. It does not perform any format conversion itself - that is
// the scaler's job, run inside DecoderSplit before the frame reaches here.
func frameToRGB(frame *RawFrame) (*RGBFrame, error) {
	if frame.PixelFormat != PixelFormatRGB24 || len(frame.Planes) == 0 {
		return nil, ErrMissingCodecParameters
	}
	return &RGBFrame{
		Size: Size{W: frame.Width, H: frame.Height},
		Pix:  frame.Planes[0],
	}, nil
}

// DecodeIter returns a push iterator (Go 1.23 range-over-func, usable
// with `for t, frame := range d.DecodeIter() { ... }`) over successive
// Decode() results. Iteration stops, without a further callback, once
// Decode returns ErrDecodeExhausted; any other error is reported via the
// lastErr out-parameter pattern: call d.Err() after the loop to check for
// a non-exhaustion failure.
func (d *Decoder) DecodeIter() iter.Seq2[Time, *RGBFrame] {
	return func(yield func(Time, *RGBFrame) bool) {
		for {
			t, frame, err := d.Decode()
			if err != nil {
				d.lastErr = err
				return
			}
			if !yield(t, frame) {
				return
			}
		}
	}
}

// DecodeRawIter mirrors DecodeIter for the raw-frame surface.
func (d *Decoder) DecodeRawIter() iter.Seq[*RawFrame] {
	return func(yield func(*RawFrame) bool) {
		for {
			frame, err := d.DecodeRaw()
			if err != nil {
				d.lastErr = err
				return
			}
			if !yield(frame) {
				return
			}
		}
	}
}

// Err returns the error that stopped the most recent DecodeIter /
// DecodeRawIter loop, or nil if none has run yet or it ran to natural
// completion without a non-exhaustion error.
func (d *Decoder) Err() error {
	if d.lastErr == ErrDecodeExhausted {
		return nil
	}
	return d.lastErr
}

// Seek moves the read position to the given offset in milliseconds and
// flushes the decoder's partially decoded state.
func (d *Decoder) Seek(ms int64) error {
	if err := d.split.Flush(); err != nil {
		return err
	}
	return d.source.Seek(ms)
}

// SeekToFrame moves the read position to the given frame number and
// flushes the decoder's partially decoded state.
func (d *Decoder) SeekToFrame(n int64) error {
	if err := d.split.Flush(); err != nil {
		return err
	}
	return d.source.SeekToFrame(n)
}

// SeekToStart rewinds to the beginning of the stream and flushes the
// decoder's partially decoded state.
func (d *Decoder) SeekToStart() error {
	if err := d.split.Flush(); err != nil {
		return err
	}
	return d.source.SeekToStart()
}

// IntoParts consumes the Decoder and returns its DecoderSplit, packet
// source, and stream index, for callers that want to take over the
// packet-feeding loop themselves (e.g. to interleave with another
// stream's decode).
func (d *Decoder) IntoParts() (*DecoderSplit, PacketSource, int) {
	return d.split, d.source, d.source.StreamIndex()
}

// Close flushes and releases the decoder's backend (and HW context, if
// any). Idempotent.
func (d *Decoder) Close() error {
	return d.split.Close()
}
