package reelcore

import (
	"context"
	"errors"
	"io"

	"github.com/erparts/reisen"
)

// demuxer is the shared suspendable packet-routing task. It runs on its
// own goroutine, reading (stream, packet) pairs from the opened container
// and, for each packet matching a selected stream, decoding the frame on
// this same goroutine before routing it to the matching worker's frame
// channel - reisen's ReadPacket and a stream's ReadVideoFrame/
// ReadAudioFrame must run sequentially on one goroutine (see channels.go's
// frame-channel doc comment), so the decode call lives here instead of in
// each worker; the worker then only handles presentation scheduling, ring
// buffering and pause.
//
// The packet loop is a single task: pausing at the supervisor level does
// not stop this goroutine directly - it has no way to suspend mid-read -
// instead the demuxer keeps running and downstream workers are the ones
// that stop consuming, which in turn back-pressures the demuxer's bounded
// sends.
type demuxer struct {
	media       *reisen.Media
	videoStream *reisen.VideoStream
	audioStream *reisen.AudioStream
	videoIdx    int
	audioIdx    int
	hasAudio    bool

	videoFrameCh *videoFrameChannel
	audioFrameCh *audioFrameChannel
	log          Logger
}

func newDemuxer(media *reisen.Media, videoStream *reisen.VideoStream, audioStream *reisen.AudioStream, hasAudio bool, videoFrameCh *videoFrameChannel, audioFrameCh *audioFrameChannel, log Logger) *demuxer {
	audioIdx := -1
	if audioStream != nil {
		audioIdx = audioStream.Index()
	}
	return &demuxer{
		media:        media,
		videoStream:  videoStream,
		audioStream:  audioStream,
		videoIdx:     videoStream.Index(),
		audioIdx:     audioIdx,
		hasAudio:     hasAudio,
		videoFrameCh: videoFrameCh,
		audioFrameCh: audioFrameCh,
		log:          log,
	}
}

// run reads packets until end-of-input or the context is cancelled (the
// latter only happens during supervisor Close, to unblock a Send that is
// back-pressured on a worker that has already terminated). Its return is
// treated as "playback reached end"; the supervisor remains responsive to
// control until explicitly closed.
func (d *demuxer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		packet, ok, err := d.media.ReadPacket()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			d.log.Warn("demuxer: read packet failed", "component", "demuxer", "error", err)
			return
		}
		if !ok {
			return
		}

		switch {
		case packet.Type() == reisen.StreamVideo && packet.StreamIndex() == d.videoIdx:
			frame, found, err := d.videoStream.ReadVideoFrame()
			if err != nil {
				d.log.Warn("demuxer: read video frame failed", "component", "demuxer", "error", err)
				return
			}
			if found && frame != nil {
				if err := d.videoFrameCh.Send(ctx, frame); err != nil {
					return
				}
			}
		case d.hasAudio && packet.Type() == reisen.StreamAudio && packet.StreamIndex() == d.audioIdx:
			frame, found, err := d.audioStream.ReadAudioFrame()
			if err != nil {
				d.log.Warn("demuxer: read audio frame failed", "component", "demuxer", "error", err)
				return
			}
			if found && frame != nil {
				if err := d.audioFrameCh.Send(ctx, frame); err != nil {
					return
				}
			}
		default:
			// Packet for a stream we didn't select; drop it.
		}
	}
}
