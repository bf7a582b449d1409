package reelcore

import (
	"time"

	"github.com/d2vr/reelcore/decoder"
)

// StreamClock converts a video stream's PTS values into monotonic
// wall-clock sleep durations. It is owned exclusively by the video
// worker and is never shared between goroutines.
type StreamClock struct {
	timeBaseSeconds float64
	startTime       time.Time
}

// NewStreamClock constructs a clock from a stream's rational time base,
// capturing the current wall-clock instant as its reference point.
func NewStreamClock(timeBase decoder.Rational) *StreamClock {
	return &StreamClock{
		timeBaseSeconds: float64(timeBase.Num) / float64(timeBase.Den),
		startTime:       time.Now(),
	}
}

// ConvertPTSToDelay converts a PTS into a relative sleep duration: the
// deadline (startTime + pts*timeBaseSeconds) minus now, saturated to zero
// when the result would be negative. Returns false if pts is nil.
func (c *StreamClock) ConvertPTSToDelay(pts *int64) (time.Duration, bool) {
	if pts == nil {
		return 0, false
	}
	offset := time.Duration(float64(*pts) * c.timeBaseSeconds * float64(time.Second))
	return c.ConvertOffsetToDelay(offset), true
}

// ConvertOffsetToDelay is the same calculation as ConvertPTSToDelay, but
// for a source that has already resolved PTS into a presentation offset
// duration itself (as the push-mode video worker's container library
// does). The clock degenerates to a pure wall-clock-reference subtraction:
// deadline = startTime + offset; delay = deadline - now, saturated to zero.
func (c *StreamClock) ConvertOffsetToDelay(offset time.Duration) time.Duration {
	deadline := c.startTime.Add(offset)
	delay := time.Until(deadline)
	if delay < 0 {
		delay = 0
	}
	return delay
}
