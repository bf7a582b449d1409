package reelcore

import (
	"context"
	"runtime"
	"time"

	"github.com/erparts/reisen"
)

// VideoDecodeWorker structurally mirrors AudioDecodeWorker: it
// receives frames already decoded by the demuxer goroutine, sleeps until
// each frame's PTS-derived wall-clock deadline, then invokes the caller's
// OnFrame callback synchronously on this goroutine. The callback must not
// retain the frame beyond its call.
type VideoDecodeWorker struct {
	clock     *StreamClock
	onFrame   func(*reisen.VideoFrame)
	frameCh   *videoFrameChannel
	controlCh *UnboundedControlChannel
	log       Logger
}

func newVideoDecodeWorker(onFrame func(*reisen.VideoFrame), frameCh *videoFrameChannel, controlCh *UnboundedControlChannel, log Logger) *VideoDecodeWorker {
	return &VideoDecodeWorker{
		clock:     &StreamClock{startTime: time.Now(), timeBaseSeconds: 1},
		onFrame:   onFrame,
		frameCh:   frameCh,
		controlCh: controlCh,
		log:       log,
	}
}

// run is the outer control loop, identical in shape to
// AudioDecodeWorker.run: pausing nils the frame branch out of the
// select so the inner step is never invoked.
func (w *VideoDecodeWorker) run(ctx context.Context) {
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
			w.log.Info("worker state transition", "component", "video", "state", "Terminated")
			return
		case <-w.controlCh.isClosed():
			w.log.Info("worker state transition", "component", "video", "state", "Terminated")
			return
		case cmd, ok := <-control:
			if !ok {
				w.log.Info("worker state transition", "component", "video", "state", "Terminated")
				return
			}
			switch cmd {
			case ControlPause:
				playing = false
				w.log.Info("worker state transition", "component", "video", "state", "Paused")
			case ControlPlay:
				playing = true
				w.log.Info("worker state transition", "component", "video", "state", "Playing")
			}
		case <-w.frameCh.isClosed():
			w.log.Info("worker state transition", "component", "video", "state", "Terminated")
			return
		case frame, ok := <-frameBranch:
			if !ok {
				return
			}
			// A runtime.Gosched() after receiving each frame keeps the
			// cooperative scheduler fair against the control branch (the
			// Go analogue of the original's yield_now().await).
			runtime.Gosched()
			w.present(frame)
		}
	}
}

// present sleeps until the frame's PTS deadline, then invokes OnFrame.
// Suspension order matters: the PTS sleep happens before the callback, so
// pausing between frames leaves the pipeline quiesced at a frame
// boundary.
func (w *VideoDecodeWorker) present(frame *reisen.VideoFrame) {
	offset, err := frame.PresentationOffset()
	if err == nil {
		delay := w.clock.ConvertOffsetToDelay(offset)
		if delay > 0 {
			time.Sleep(delay)
		}
	}

	w.onFrame(frame)
}
