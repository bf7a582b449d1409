package reelcore

import (
	"context"
	"time"

	"github.com/d2vr/reelcore/decoder"
	"github.com/erparts/reisen"
)

// ringWaitBackoff is the cooperative back-pressure sleep used when the
// ring has insufficient free space for the next audio frame.
const ringWaitBackoff = 16 * time.Millisecond

// deviceSampleFormat is the fixed sample encoding this reference
// AudioRenderWorker targets (interleaved float32), matching its
// portaudio.OpenDefaultStream callback signature.
const deviceSampleFormat = decoder.SampleFormatF32

// AudioDecodeWorker receives frames already decoded by the demuxer
// goroutine (see demuxer.go) and pushes their corrected PCM bytes into the
// sample ring, honoring pause. Decoding itself does not happen
// here: reisen's ReadVideoFrame/ReadAudioFrame must run on the same
// goroutine as the ReadPacket call that precedes them, so that call lives
// in the demuxer; this worker's job is the resample-equivalent length
// correction, back-pressured ring push, and pause gating.
type AudioDecodeWorker struct {
	ring      *SampleRingBuffer
	channels  int
	frameCh   *audioFrameChannel
	controlCh *UnboundedControlChannel
	log       Logger
}

func newAudioDecodeWorker(ring *SampleRingBuffer, channels int, frameCh *audioFrameChannel, controlCh *UnboundedControlChannel, log Logger) *AudioDecodeWorker {
	return &AudioDecodeWorker{ring: ring, channels: channels, frameCh: frameCh, controlCh: controlCh, log: log}
}

// run is the worker's outer control loop: select over (frame
// availability if playing, control-recv). Pause removes the frame branch
// from the select by nilling the channel variable used in that case, so
// the inner step is simply never invoked until Play.
func (w *AudioDecodeWorker) run(ctx context.Context) {
	playing := true
	frames := w.frameCh.channel()
	control := w.controlCh.channel()

	for {
		frameBranch := frames
		if !playing {
			frameBranch = nil
		}

		select {
		case <-ctx.Done():
			w.log.Info("worker state transition", "component", "audio", "state", "Terminated")
			return
		case <-w.controlCh.isClosed():
			w.log.Info("worker state transition", "component", "audio", "state", "Terminated")
			return
		case cmd, ok := <-control:
			if !ok {
				w.log.Info("worker state transition", "component", "audio", "state", "Terminated")
				return
			}
			switch cmd {
			case ControlPause:
				playing = false
				w.log.Info("worker state transition", "component", "audio", "state", "Paused")
			case ControlPlay:
				playing = true
				w.log.Info("worker state transition", "component", "audio", "state", "Playing")
			}
		case <-w.frameCh.isClosed():
			w.log.Info("worker state transition", "component", "audio", "state", "Terminated")
			return
		case frame, ok := <-frameBranch:
			if !ok {
				return
			}
			w.push(frame)
		}
	}
}

// push applies the explicit slice-length correction - some
// decoders report a plane length that disagrees with the frame's real
// sample/channel layout) via decoder.AudioBytes, then pushes the
// corrected bytes into the ring, retrying on back-pressure every 16ms
// until there is room - the cooperative loop that never drops samples.
//
// reisen's AudioFrame exposes Data() but no independent sample count, so
// the expected sample count is derived here from the configured channel
// count and device format rather than an out-of-band accessor; this still
// truncates any trailing partial sample-frame that would otherwise desync
// channel interleaving, which is the failure mode the correction guards
// against.
func (w *AudioDecodeWorker) push(frame *reisen.AudioFrame) {
	data := frame.Data()
	bytesPerSample := deviceSampleFormat.BytesPerSample()
	samples := len(data) / (w.channels * bytesPerSample)

	corrected := decoder.AudioBytes(&decoder.RawFrame{
		SampleFormat: deviceSampleFormat,
		Channels:     w.channels,
		Samples:      samples,
		Planes:       [][]byte{data},
	})

	for len(corrected) > 0 {
		if w.ring.FreeLen() < len(corrected) {
			time.Sleep(ringWaitBackoff)
			continue
		}
		n := w.ring.PushSlice(corrected)
		corrected = corrected[n:]
	}
}
