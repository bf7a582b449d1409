package reelcore

import (
	"github.com/drgolem/ringbuffer"
)

// sampleRingCapacity is the fixed ring capacity: 4096 elements of the
// output sample type. Since the ring is byte-addressed here (matching
// drgolem/ringbuffer's []byte API), it is allocated as that many elements
// times the device sample format's width, and callers size pushes/pops in
// bytes.
const sampleRingCapacity = 4096

// SampleRingBuffer is the fixed-capacity SPSC lock-free ring used to move
// decoded, resampled PCM from the audio decode goroutine to the audio
// device's real-time callback. The producer (AudioDecodeWorker)
// runs PushSlice after having awaited free space; the consumer
// (AudioRenderWorker, inside the device callback) runs PopSlice and must
// never allocate, lock, or block.
type SampleRingBuffer struct {
	rb *ringbuffer.RingBuffer
}

// NewSampleRingBuffer constructs a ring with the fixed capacity above.
func NewSampleRingBuffer() *SampleRingBuffer {
	return &SampleRingBuffer{rb: ringbuffer.New(sampleRingCapacity * deviceSampleFormat.BytesPerSample())}
}

// PushSlice writes as many bytes of data as fit and returns the count
// actually written. Non-blocking; callers must have already confirmed
// sufficient FreeLen.
func (s *SampleRingBuffer) PushSlice(data []byte) int {
	n, _ := s.rb.Write(data)
	return n
}

// FreeLen reports how many bytes can currently be pushed without loss.
func (s *SampleRingBuffer) FreeLen() int {
	return s.rb.Size() - s.rb.AvailableRead()
}

// PopSlice reads up to len(dst) bytes into dst and returns the count
// actually read. Safe to call from a real-time audio callback: it never
// allocates or blocks.
func (s *SampleRingBuffer) PopSlice(dst []byte) int {
	n, _ := s.rb.Read(dst)
	return n
}
