package decoder

// fakeBackend is a table-driven test double for Backend: frames is
// consumed one-per-ReceiveFrame call, whether or not a packet or EOF has
// been submitted, and FrameEOF is reported once it runs out.
// agains counts down how many leading FrameAgain outcomes to report
// before frames start flowing, modeling a codec that needs several
// packets before it produces its first frame.
type fakeBackend struct {
	timeBase Rational
	size     Size
	pixFmt   PixelFormat
	sampFmt  SampleFormat

	frames []*RawFrame
	pos    int

	agains int

	packetsSeen int
	eofSent     bool
	flushed     int
	closed      bool

	sendPacketErr  error
	receiveErr     error
	receiveErrOnce bool
}

func newFakeVideoBackend(frames ...*RawFrame) *fakeBackend {
	return &fakeBackend{
		timeBase: Rational{Num: 1, Den: 30},
		size:     Size{W: 1280, H: 720},
		pixFmt:   PixelFormatYUV420P,
		frames:   frames,
	}
}

func newFakeAudioBackend(frames ...*RawFrame) *fakeBackend {
	return &fakeBackend{
		timeBase: Rational{Num: 1, Den: 44100},
		sampFmt:  SampleFormatF32,
		frames:   frames,
	}
}

func (f *fakeBackend) TimeBase() Rational { return f.timeBase }

func (f *fakeBackend) Format() (Size, PixelFormat, SampleFormat) {
	return f.size, f.pixFmt, f.sampFmt
}

func (f *fakeBackend) SendPacket(p *Packet) error {
	f.packetsSeen++
	return f.sendPacketErr
}

func (f *fakeBackend) SendEOF() error {
	f.eofSent = true
	return nil
}

func (f *fakeBackend) ReceiveFrame() (*RawFrame, FrameOutcome, error) {
	if f.receiveErr != nil {
		err := f.receiveErr
		if f.receiveErrOnce {
			f.receiveErr = nil
		}
		return nil, FrameOther, err
	}
	if f.agains > 0 {
		f.agains--
		return nil, FrameAgain, nil
	}
	if f.pos >= len(f.frames) {
		return nil, FrameEOF, nil
	}
	frame := f.frames[f.pos]
	f.pos++
	return frame, FrameOK, nil
}

func (f *fakeBackend) Flush() error {
	f.flushed++
	return nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

// fakeHWAccel reports NV12 as its surface format and "downloads" a frame
// by copying its planes across (already the HW format in these tests), so
// tests can assert the download step runs.
type fakeHWAccel struct {
	transfers int
	closed    bool
}

func (h *fakeHWAccel) SurfaceFormat() PixelFormat { return PixelFormatNV12 }

func (h *fakeHWAccel) TransferFrame(dst, src *RawFrame) error {
	h.transfers++
	dst.Planes = src.Planes
	return nil
}

func (h *fakeHWAccel) Close() error {
	h.closed = true
	return nil
}

// fakeScaler records how many times it ran and always emits a single
// solid-color plane of the right size in the configured output format.
type fakeScaler struct {
	inFmt, outFmt   PixelFormat
	inSize, outSize Size
	runs            int
}

func newFakeScaler(inFmt PixelFormat, inSize Size, outFmt PixelFormat, outSize Size) (Scaler, error) {
	return &fakeScaler{inFmt: inFmt, inSize: inSize, outFmt: outFmt, outSize: outSize}, nil
}

func (s *fakeScaler) Run(in, out *RawFrame) error {
	s.runs++
	out.Planes = [][]byte{make([]byte, s.outSize.W*s.outSize.H*3)}
	return nil
}

func (s *fakeScaler) OutFormat() PixelFormat { return s.outFmt }
func (s *fakeScaler) OutSize() Size          { return s.outSize }

func ptr(v int64) *int64 { return &v }
