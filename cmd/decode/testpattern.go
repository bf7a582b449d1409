package main

import (
	"github.com/d2vr/reelcore/decoder"
)

// testPatternSource and testPatternBackend are a self-contained stand-in
// for a real demux/codec pair (see main.go's doc comment for why). They
// produce a fixed number of solid-color RGB24 frames, cycling through a
// small palette, with one packet mapping to exactly one frame.
type testPatternSource struct {
	width, height int
	total         int
	next          int
	timeBase      decoder.Rational
}

func newTestPatternSource(width, height, total int) *testPatternSource {
	return &testPatternSource{width: width, height: height, total: total, timeBase: decoder.Rational{Num: 1, Den: 30}}
}

func (s *testPatternSource) StreamIndex() int            { return 0 }
func (s *testPatternSource) TimeBase() decoder.Rational  { return s.timeBase }
func (s *testPatternSource) Duration() int64             { return int64(s.total) }
func (s *testPatternSource) Frames() int64                { return int64(s.total) }
func (s *testPatternSource) FrameRate() decoder.Rational  { return decoder.Rational{Num: 30, Den: 1} }

func (s *testPatternSource) ReadPacket() (*decoder.Packet, error) {
	if s.next >= s.total {
		return nil, decoder.ErrReadExhausted
	}
	pts := int64(s.next)
	s.next++
	return &decoder.Packet{StreamIndex: 0, PTS: &pts, DTS: &pts, TimeBase: s.timeBase, Data: []byte{byte(pts)}}, nil
}

func (s *testPatternSource) Seek(ms int64) error {
	s.next = int(ms * int64(s.timeBase.Den) / (1000 * int64(s.timeBase.Num)))
	return nil
}

func (s *testPatternSource) SeekToFrame(n int64) error { s.next = int(n); return nil }
func (s *testPatternSource) SeekToStart() error        { s.next = 0; return nil }

var palette = [][3]byte{{220, 40, 40}, {40, 200, 80}, {40, 80, 220}, {230, 210, 30}}

type testPatternBackend struct {
	width, height int
	pending       *decoder.Packet
	eof           bool
}

func newTestPatternBackend(source decoder.PacketSource, options map[string]string) (decoder.Backend, error) {
	src := source.(*testPatternSource)
	return &testPatternBackend{width: src.width, height: src.height}, nil
}

func (b *testPatternBackend) TimeBase() decoder.Rational { return decoder.Rational{Num: 1, Den: 30} }

func (b *testPatternBackend) Format() (decoder.Size, decoder.PixelFormat, decoder.SampleFormat) {
	return decoder.Size{W: b.width, H: b.height}, decoder.PixelFormatRGB24, decoder.SampleFormatUnknown
}

func (b *testPatternBackend) SendPacket(p *decoder.Packet) error {
	b.pending = p
	return nil
}

func (b *testPatternBackend) SendEOF() error {
	b.eof = true
	return nil
}

func (b *testPatternBackend) ReceiveFrame() (*decoder.RawFrame, decoder.FrameOutcome, error) {
	if b.pending == nil {
		if b.eof {
			return nil, decoder.FrameEOF, nil
		}
		return nil, decoder.FrameAgain, nil
	}
	p := b.pending
	b.pending = nil

	color := palette[int(*p.PTS)%len(palette)]
	pix := make([]byte, b.width*b.height*3)
	for i := 0; i < b.width*b.height; i++ {
		pix[i*3], pix[i*3+1], pix[i*3+2] = color[0], color[1], color[2]
	}

	frame := &decoder.RawFrame{
		PixelFormat: decoder.PixelFormatRGB24,
		Width:       b.width,
		Height:      b.height,
		DTS:         p.DTS,
		PTS:         p.PTS,
		Planes:      [][]byte{pix},
	}
	return frame, decoder.FrameOK, nil
}

func (b *testPatternBackend) Flush() error { b.pending = nil; return nil }
func (b *testPatternBackend) Close() error { return nil }
