package decoder

// DecoderSplit is the packet-in/frame-out decoder state machine. It
// owns a Backend handle, its installed time base, an optional hardware
// acceleration context, an optional scaler, the backend's native size and
// the (possibly resized) output size, and whether it has entered draining.
//
// Invariants:
//   - while draining, the only legal operation is DrainRaw, until it
//     returns (nil, ErrDecodeExhausted), after which the decoder is dead;
//   - once an HW context is attached, every frame whose format matches the
//     HW surface format is downloaded to system memory before reaching the
//     scaler;
//   - a scaler is present iff the backend's native format or size differs
//     from the canonical target format and the resolved output size.
type DecoderSplit struct {
	backend  Backend
	timeBase Rational

	hwaccel HWAccelContext
	scaler  Scaler

	size    Size
	sizeOut Size

	canonicalFormat PixelFormat

	draining bool
	closed   bool
}

// maxDrainIterations bounds Close's internal drain loop so a misbehaving
// backend cannot hang process shutdown forever.
const maxDrainIterations = 100

// NewDecoderSplit constructs a decoder split from an already-opened
// backend. canonicalFormat is the target pixel format video frames are
// normalized to (RGB24 for the ndarray/image surface, NV12 when consumers
// want the raw HW-download intermediate); it is ignored for audio-only
// backends (Format returning PixelFormatUnknown). scalerFactory builds the
// software scaler when the native format or size requires one; it is the
// external "software scale" collaborator and may be nil when the
// caller knows no scaling will ever be required (a mismatched format/size
// with a nil factory surfaces MissingCodecParameters rather than panicking).
func NewDecoderSplit(backend Backend, resize Resize, hwaccel HWAccelContext, canonicalFormat PixelFormat, scalerFactory ScalerFactory) (*DecoderSplit, error) {
	size, pixFmt, sampleFmt := backend.Format()
	isVideo := pixFmt != PixelFormatUnknown
	if isVideo && (size.W <= 0 || size.H <= 0) {
		return nil, ErrMissingCodecParameters
	}
	if !isVideo {
		if sampleFmt == SampleFormatUnknown {
			return nil, ErrMissingCodecParameters
		}
		if sampleFmt.BytesPerSample() == 0 {
			return nil, ErrUnsupportedSampleFormat
		}
	}

	d := &DecoderSplit{
		backend:         backend,
		timeBase:        backend.TimeBase(),
		hwaccel:         hwaccel,
		size:            size,
		sizeOut:         size,
		canonicalFormat: canonicalFormat,
	}

	if !isVideo {
		return d, nil
	}

	sizeOut := size
	if resize != nil {
		var err error
		sizeOut, err = resize.ComputeFor(size)
		if err != nil {
			return nil, err
		}
	}
	d.sizeOut = sizeOut

	nativeFormat := pixFmt
	if hwaccel != nil && hwaccel.SurfaceFormat() == pixFmt {
		// Frames will be downloaded to NV12 system memory before reaching
		// any scaler; the scaler (if any) sees NV12 as its input format.
		nativeFormat = PixelFormatNV12
	}
	if nativeFormat != canonicalFormat || sizeOut != size {
		if scalerFactory == nil {
			return nil, ErrMissingCodecParameters
		}
		scaler, err := scalerFactory(nativeFormat, size, canonicalFormat, sizeOut)
		if err != nil {
			return nil, newBackendError("scaler_new", err)
		}
		d.scaler = scaler
	}

	return d, nil
}

// TimeBase reports the decoder's installed time base.
func (d *DecoderSplit) TimeBase() Rational { return d.timeBase }

// Size reports the backend's native output size (pre-resize).
func (d *DecoderSplit) Size() Size { return d.size }

// SizeOut reports the resolved output size (post-resize, identity if no
// Resize policy was configured).
func (d *DecoderSplit) SizeOut() Size { return d.sizeOut }

// DecodeRaw rescales the packet's timestamps to the decoder's time base
// (when the packet carries a valid base of its own), submits it to the
// backend, then attempts to pull one frame. It returns (nil, nil) if the
// backend needs more input (EAGAIN).
func (d *DecoderSplit) DecodeRaw(p *Packet) (*RawFrame, error) {
	if d.draining {
		return nil, ErrAlreadyDraining
	}
	if from, to := p.TimeBase, d.timeBase; from != to && from.Num > 0 && from.Den > 0 && to.Num > 0 && to.Den > 0 {
		rescale := func(ts *int64) *int64 {
			if ts == nil {
				return nil
			}
			v := *ts * int64(from.Num) * int64(to.Den) / (int64(from.Den) * int64(to.Num))
			return &v
		}
		p.PTS = rescale(p.PTS)
		p.DTS = rescale(p.DTS)
	}
	p.TimeBase = d.timeBase
	if err := d.backend.SendPacket(p); err != nil {
		return nil, newBackendError("send_packet", err)
	}
	return d.receiveFrameFromDecoder()
}

// DrainRaw enters draining mode on its first call (sending EOF to the
// backend) and then attempts to pull one more frame on every call,
// returning (nil, ErrDecodeExhausted) once the backend is empty.
func (d *DecoderSplit) DrainRaw() (*RawFrame, error) {
	if !d.draining {
		if err := d.backend.SendEOF(); err != nil {
			return nil, newBackendError("send_eof", err)
		}
		d.draining = true
	}
	frame, err := d.receiveFrameFromDecoder()
	if err == ErrReadExhausted {
		return nil, ErrDecodeExhausted
	}
	return frame, err
}

// receiveFrameFromDecoder pulls exactly one frame from the backend and
// maps its outcome: Ok -> frame; EOF -> ErrReadExhausted; EAGAIN
// -> (nil, nil); anything else -> BackendError. A successfully produced
// video frame is downloaded from its HW surface (if applicable) and
// scaled (if a scaler is configured).
func (d *DecoderSplit) receiveFrameFromDecoder() (*RawFrame, error) {
	frame, outcome, err := d.backend.ReceiveFrame()
	switch outcome {
	case FrameAgain:
		return nil, nil
	case FrameEOF:
		return nil, ErrReadExhausted
	case FrameOther:
		return nil, newBackendError("receive_frame", err)
	}

	if d.hwaccel != nil && frame.PixelFormat == d.hwaccel.SurfaceFormat() {
		frame, err = d.downloadFrame(frame)
		if err != nil {
			return nil, err
		}
	}

	if d.scaler != nil && frame.PixelFormat != PixelFormatUnknown {
		scaled, err := d.rescaleFrame(frame)
		if err != nil {
			return nil, err
		}
		frame = scaled
	}

	return frame, nil
}

// downloadFrame transfers a hardware-surface frame into a freshly
// allocated system-memory NV12 frame and copies its presentation/decode
// timestamps across.
func (d *DecoderSplit) downloadFrame(src *RawFrame) (*RawFrame, error) {
	dst := &RawFrame{
		PixelFormat: PixelFormatNV12,
		Width:       src.Width,
		Height:      src.Height,
	}
	if err := d.hwaccel.TransferFrame(dst, src); err != nil {
		return nil, newBackendError("hwdevice_transfer_frame", err)
	}
	copyFrameProps(src, dst)
	return dst, nil
}

// rescaleFrame runs the configured scaler and copies timestamps across.
func (d *DecoderSplit) rescaleFrame(src *RawFrame) (*RawFrame, error) {
	dst := &RawFrame{
		PixelFormat: d.scaler.OutFormat(),
		Width:       d.scaler.OutSize().W,
		Height:      d.scaler.OutSize().H,
	}
	if err := d.scaler.Run(src, dst); err != nil {
		return nil, newBackendError("scaler_run", err)
	}
	copyFrameProps(src, dst)
	return dst, nil
}

// copyFrameProps copies the timestamp props (PTS and DTS) from src to dst,
// the Go rendering of the original copy_frame_props helper.
func copyFrameProps(src, dst *RawFrame) {
	dst.PTS = src.PTS
	dst.DTS = src.DTS
}

// Close flushes the decoder by submitting EOF (if not already draining)
// and consuming up to maxDrainIterations pending frames, then releases the
// HW context (if any) and the backend. Idempotent; safe to call from a
// defer, mirroring the original's Drop behavior.
func (d *DecoderSplit) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	for i := 0; i < maxDrainIterations; i++ {
		_, err := d.DrainRaw()
		if err != nil {
			break
		}
	}

	var firstErr error
	if d.hwaccel != nil {
		if err := d.hwaccel.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := d.backend.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Flush discards any buffered, partially decoded state. Used after a seek
// on the underlying reader; forbidden while draining, since a drained
// decoder must be rebuilt instead of reused.
func (d *DecoderSplit) Flush() error {
	if d.draining {
		return ErrSeekWhileDraining
	}
	return d.backend.Flush()
}
