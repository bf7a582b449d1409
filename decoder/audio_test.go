package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudioBytes_TrustsComputedLengthNotPlaneLength(t *testing.T) {
	frame := &RawFrame{
		SampleFormat: SampleFormatF32,
		Samples:      2,
		Channels:     2,
		Planes:       [][]byte{make([]byte, 100)}, // deliberately wrong/misreported length
	}
	out := AudioBytes(frame)
	assert.Len(t, out, 2*2*4)
}

func TestAudioBytes_PadsShortPlane(t *testing.T) {
	frame := &RawFrame{
		SampleFormat: SampleFormatF32,
		Samples:      4,
		Channels:     1,
		Planes:       [][]byte{{1, 2, 3}},
	}
	out := AudioBytes(frame)
	assert.Len(t, out, 4*1*4)
}
