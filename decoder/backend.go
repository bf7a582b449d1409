package decoder

import "io"

// FrameOutcome classifies the result of one attempt to pull a frame out of
// a codec backend.
type FrameOutcome int

const (
	// FrameOK means a frame was produced.
	FrameOK FrameOutcome = iota
	// FrameEOF means the backend's internal queue is now empty and EOF has
	// been observed; this maps to ErrReadExhausted at the DecoderSplit
	// level.
	FrameEOF
	// FrameAgain means the backend needs more packets before it can
	// produce a frame; this is recovered locally by the caller (feed more).
	FrameAgain
	// FrameOther means an unexpected backend error occurred; it is
	// surfaced wrapped in BackendError.
	FrameOther
)

// Backend is the codec-decode external collaborator: construct from
// codec parameters, submit packets, and pull frames with the four
// outcomes above. A concrete implementation typically wraps a container
// library's per-packet decode primitives (e.g. avcodec_send_packet /
// avcodec_receive_frame or an equivalent Go binding).
type Backend interface {
	// TimeBase reports the codec's internal time base, installed once at
	// construction and never mutated afterwards.
	TimeBase() Rational

	// Format reports the backend's native output size and pixel/sample
	// format for a single probe frame; used by DecoderSplit to decide
	// whether a scaler is required. A zero Size or PixelFormatUnknown /
	// SampleFormatUnknown signals MissingCodecParameters.
	Format() (Size, PixelFormat, SampleFormat)

	// SendPacket submits one compressed packet for decoding.
	SendPacket(p *Packet) error

	// SendEOF signals end of input to the backend; after this call only
	// ReceiveFrame may be invoked, until it reports FrameEOF.
	SendEOF() error

	// ReceiveFrame attempts to pull exactly one decoded frame.
	ReceiveFrame() (*RawFrame, FrameOutcome, error)

	// Flush discards any buffered, partially decoded state; used after a
	// seek on the underlying reader.
	Flush() error

	io.Closer
}

// Scaler is the software-scale external collaborator: constructed
// once for a fixed (in, out) format/size pair, using area-filtering
// semantics, and run per frame.
type Scaler interface {
	Run(in *RawFrame, out *RawFrame) error
	OutFormat() PixelFormat
	OutSize() Size
}

// ScalerFactory constructs a Scaler for a fixed (in, out) format/size
// pair, with AREA filtering flags. DecoderSplit calls this at
// most once, only when the native format or size differs from the
// canonical target, so pure-passthrough decodes never need one; when a
// scaler is needed and no factory was supplied, NewDecoderSplit fails with
// ErrMissingCodecParameters.
type ScalerFactory func(inFmt PixelFormat, inSize Size, outFmt PixelFormat, outSize Size) (Scaler, error)

// Resampler is the software-resample external collaborator: constructed
// once for a fixed (in, out) format/rate/layout triple and run
// per frame.
type Resampler interface {
	Run(in *RawFrame, out *RawFrame) error
	OutFormat() SampleFormat
	OutRate() int
	OutChannels() int
}

// HWAccelDeviceType names a request for a particular hardware-acceleration
// backend (e.g. VAAPI, NVDEC, VideoToolbox). The concrete values are
// platform specific; the core treats this as an opaque string.
type HWAccelDeviceType string

// HWAccelContext is the hardware-acceleration external collaborator:
// attached to a decoder by device type, downloads HW-surface frames into
// system memory, and exposes the surface's native pixel format (NV12 is
// the canonical target this package downloads to).
type HWAccelContext interface {
	SurfaceFormat() PixelFormat
	TransferFrame(dst, src *RawFrame) error
	io.Closer
}
