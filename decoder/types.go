// Package decoder implements the pull-style decode library surface: a
// packet-in/frame-out state machine (DecoderSplit) plus the higher-level
// Decoder/DecoderBuilder wrapper that pairs decoded frames with timestamps.
//
// The package does not talk to any concrete container or codec library
// itself. Callers supply a Backend (and optionally a Scaler and
// HWAccelContext) implementing the platform-specific decode primitives;
// decoder only orchestrates the feed/drain/download/scale protocol around
// them.
package decoder

import "fmt"

// Rational is a (numerator, denominator) pair expressing one timestamp
// unit in seconds. It is taken verbatim from the source stream and never
// mutated after a decoder is initialized from it.
type Rational struct {
	Num int
	Den int
}

// Seconds converts a timestamp expressed in this time base to seconds.
func (r Rational) Seconds(ts int64) float64 {
	return float64(ts) * float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// PixelFormat identifies a decoded video frame's pixel layout.
type PixelFormat int

const (
	PixelFormatUnknown PixelFormat = iota
	PixelFormatRGB24
	PixelFormatNV12 // canonical HW-surface download format
	PixelFormatYUV420P
)

// SampleFormat identifies a decoded audio frame's sample layout.
type SampleFormat int

const (
	SampleFormatUnknown SampleFormat = iota
	SampleFormatU8
	SampleFormatI16
	SampleFormatF32
	SampleFormatF64
)

// BytesPerSample reports the width, in bytes, of one sample of this format.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case SampleFormatU8:
		return 1
	case SampleFormatI16:
		return 2
	case SampleFormatF32:
		return 4
	case SampleFormatF64:
		return 8
	default:
		return 0
	}
}

// Size is a width/height pair, used for both input and output frame
// dimensions.
type Size struct {
	W int
	H int
}

// Packet is an opaque compressed unit: a stream index, optional DTS/PTS in
// a rational time base, and a byte payload. Once read, it is immutable and
// owned by exactly one component at a time.
type Packet struct {
	StreamIndex int
	DTS         *int64
	PTS         *int64
	TimeBase    Rational
	Data        []byte
}

// RawFrame is an opaque decoded unit: pixel/sample format, dimensions or
// sample/channel counts, DTS/PTS, and planar data. Ownership moves
// frame-by-frame through the decode pipeline; callers must not retain a
// RawFrame's Planes slices beyond the call that produced them unless they
// copy the data out.
type RawFrame struct {
	PixelFormat  PixelFormat
	SampleFormat SampleFormat

	Width  int
	Height int

	Samples  int
	Channels int

	DTS *int64
	PTS *int64

	// Planes holds one []byte per decoded plane (1 for packed/interleaved
	// formats such as RGB24 or PCM, 2+ for planar formats such as NV12 or
	// YUV420P).
	Planes [][]byte
}

// Time pairs a decoded frame's presentation timestamp with the time base
// it was produced in. Per the pull-mode RGB surface's design, the
// timestamp is built from the frame's DTS, not its PTS: the producing
// encoder wrote DTS for synchronization purposes at this layer, and that
// is deliberate, specified behavior rather than a bug.
type Time struct {
	Timestamp int64
	Base      Rational
}

// Seconds converts the timestamp to seconds using its time base.
func (t Time) Seconds() float64 {
	return t.Base.Seconds(t.Timestamp)
}

// RGBFrame is the pull-mode RGB24 surface: a flat row-major [H][W][3]byte
// buffer, paired with a Time by Decoder.Decode.
type RGBFrame struct {
	Size Size
	Pix  []byte // len == Size.H * Size.W * 3
}
