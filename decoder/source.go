package decoder

// PacketSource is the container/demux external collaborator as consumed
// by the pull-mode Decoder: open by URL or path is assumed to
// have already happened by the time a PacketSource is handed to this
// package; from there it enumerates a single selected stream's packets
// and supports seeking.
type PacketSource interface {
	// StreamIndex is the index of the stream this source was opened for.
	StreamIndex() int

	// TimeBase is the stream's rational time base.
	TimeBase() Rational

	// Duration is the stream's total duration in its own time base units,
	// or 0 if unknown.
	Duration() int64

	// Frames is the stream's total frame count, or 0 if unknown.
	Frames() int64

	// FrameRate is the stream's nominal frame rate as a rational, or the
	// zero Rational for non-video streams.
	FrameRate() Rational

	// ReadPacket returns the next packet for the selected stream, or
	// ErrReadExhausted at end of input.
	ReadPacket() (*Packet, error)

	// Seek moves the read position to the given offset in milliseconds.
	Seek(ms int64) error

	// SeekToFrame moves the read position to the given frame number.
	SeekToFrame(n int64) error

	// SeekToStart rewinds to the beginning of the stream.
	SeekToStart() error
}
