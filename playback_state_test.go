package reelcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaybackState_String(t *testing.T) {
	assert.Equal(t, "Playing", Playing.String())
	assert.Equal(t, "Paused", Paused.String())
	assert.Equal(t, "Terminated", Terminated.String())
	assert.Equal(t, "Unknown", PlaybackState(99).String())
}
