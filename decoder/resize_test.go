package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit_PreservesAspectRatio(t *testing.T) {
	out, err := Fit{MaxW: 640, MaxH: 360}.ComputeFor(Size{W: 1280, H: 720})
	assert.NoError(t, err)
	assert.Equal(t, Size{W: 640, H: 360}, out)
}

func TestFit_LetterboxesWhenAspectDiffers(t *testing.T) {
	out, err := Fit{MaxW: 640, MaxH: 640}.ComputeFor(Size{W: 1280, H: 720})
	assert.NoError(t, err)
	assert.Equal(t, 640, out.W)
	assert.Equal(t, 360, out.H)
}

func TestFit_InvalidParameters(t *testing.T) {
	_, err := Fit{MaxW: 0, MaxH: 360}.ComputeFor(Size{W: 1280, H: 720})
	assert.ErrorIs(t, err, ErrInvalidResizeParameters)

	_, err = Fit{MaxW: 640, MaxH: 360}.ComputeFor(Size{W: 0, H: 720})
	assert.ErrorIs(t, err, ErrInvalidResizeParameters)
}

func TestExact_ReturnsFixedSize(t *testing.T) {
	out, err := Exact{W: 100, H: 50}.ComputeFor(Size{W: 1280, H: 720})
	assert.NoError(t, err)
	assert.Equal(t, Size{W: 100, H: 50}, out)
}
