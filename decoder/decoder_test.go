package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbFrame(pts int64) *RawFrame {
	return &RawFrame{PixelFormat: PixelFormatRGB24, Width: 4, Height: 2, PTS: ptr(pts), DTS: ptr(pts - 1), Planes: [][]byte{make([]byte, 4*2*3)}}
}

func factoryWithFrames(frames ...*RawFrame) BackendFactory {
	return func(source PacketSource, options map[string]string) (Backend, error) {
		b := newFakeVideoBackend(frames...)
		b.pixFmt = PixelFormatRGB24
		b.size = Size{W: 4, H: 2}
		return b, nil
	}
}

func TestDecoder_DecodeRaw_FeedsUntilFrame(t *testing.T) {
	source := &fakeSource{index: 0, timeBase: Rational{1, 30}, packetCount: 3}
	d, err := New(source, factoryWithFrames(rgbFrame(0)))
	require.NoError(t, err)

	frame, err := d.DecodeRaw()
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.Equal(t, PixelFormatRGB24, frame.PixelFormat)
}

func TestDecoder_Decode_UsesDTSNotPTS(t *testing.T) {
	source := &fakeSource{index: 0, timeBase: Rational{1, 30}, packetCount: 1}
	d, err := New(source, factoryWithFrames(rgbFrame(10)))
	require.NoError(t, err)

	tm, frame, err := d.Decode()
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.Equal(t, int64(9), tm.Timestamp, "pull-mode RGB surface must report DTS, not PTS")
	assert.Equal(t, Size{W: 4, H: 2}, frame.Size)
}

func TestDecoder_DecodeIter_StopsOnDecodeExhausted(t *testing.T) {
	source := &fakeSource{index: 0, timeBase: Rational{1, 30}, packetCount: 2}
	d, err := New(source, factoryWithFrames(rgbFrame(0), rgbFrame(1)))
	require.NoError(t, err)

	count := 0
	for range d.DecodeIter() {
		count++
	}
	assert.Equal(t, 2, count)
	assert.NoError(t, d.Err(), "natural exhaustion must not surface as an error from Err()")
}

func TestDecoder_Seek_FlushesBeforeDelegating(t *testing.T) {
	source := &fakeSource{index: 0, timeBase: Rational{1, 30}, packetCount: 1}
	d, err := New(source, factoryWithFrames(rgbFrame(0)))
	require.NoError(t, err)

	require.NoError(t, d.Seek(10_000))
	assert.Equal(t, 1, d.split.backend.(*fakeBackend).flushed)
	assert.Equal(t, []int64{10_000}, source.seeks)
}

func TestDecoder_Seek_ForbiddenAfterDraining(t *testing.T) {
	source := &fakeSource{index: 0, timeBase: Rational{1, 30}, packetCount: 0}
	d, err := New(source, factoryWithFrames())
	require.NoError(t, err)

	_, err = d.DecodeRaw()
	assert.ErrorIs(t, err, ErrDecodeExhausted)

	err = d.Seek(0)
	assert.ErrorIs(t, err, ErrSeekWhileDraining)
}

func TestDecoder_RoundTripDimensions_NoResize(t *testing.T) {
	source := &fakeSource{index: 0, timeBase: Rational{1, 30}, packetCount: 1}
	d, err := New(source, factoryWithFrames(rgbFrame(0)))
	require.NoError(t, err)
	assert.Equal(t, d.Size(), d.SizeOut())
}

func TestDecoder_RoundTripDimensions_WithResize(t *testing.T) {
	source := &fakeSource{index: 0, timeBase: Rational{1, 30}, packetCount: 1}
	builder := NewBuilder(source, factoryWithFrames(rgbFrame(0))).
		WithResize(Fit{MaxW: 2, MaxH: 2}).
		WithScalerFactory(newFakeScaler)
	d, err := builder.Build()
	require.NoError(t, err)

	want, err := Fit{MaxW: 2, MaxH: 2}.ComputeFor(d.Size())
	require.NoError(t, err)
	assert.Equal(t, want, d.SizeOut())
}

func TestDecoder_IntoParts(t *testing.T) {
	source := &fakeSource{index: 3, timeBase: Rational{1, 30}, packetCount: 1}
	d, err := New(source, factoryWithFrames(rgbFrame(0)))
	require.NoError(t, err)

	split, src, idx := d.IntoParts()
	assert.NotNil(t, split)
	assert.Equal(t, source, src)
	assert.Equal(t, 3, idx)
}
