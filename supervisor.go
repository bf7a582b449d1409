package reelcore

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/erparts/reisen"
	"golang.org/x/sync/errgroup"
)

// Player owns the control channels, spawns the demuxer/dispatcher and
// decode-worker goroutines, and exposes the push-playback surface.
// OnFrame is invoked synchronously on the video decode goroutine for
// every presented frame; it must not retain the frame beyond its call.
type Player struct {
	mu sync.Mutex

	media       *reisen.Media
	videoStream *reisen.VideoStream
	audioStream *reisen.AudioStream
	hasAudio    bool

	videoFrameCh *videoFrameChannel
	audioFrameCh *audioFrameChannel
	videoCtrlCh  *UnboundedControlChannel
	audioCtrlCh  *UnboundedControlChannel

	render *AudioRenderWorker

	cancel context.CancelFunc
	group  *errgroup.Group

	playing          bool
	closed           bool
	onPlayingChanged func(bool)
	log              Logger
}

// NewPlayer opens path (or a URL reisen supports), selects the best video
// stream (and, unless WithoutAudio is given, the best audio stream),
// starts the demuxer/dispatcher and decode workers, and begins playback
// immediately (playing starts true). onFrame is invoked for every
// decoded video frame, in PTS order.
func NewPlayer(path string, onFrame func(*reisen.VideoFrame), opts ...Option) (*Player, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	cfg := newPlayerConfig(opts...)
	log := cfg.log()

	media, err := reisen.NewMedia(path)
	if err != nil {
		return nil, err
	}

	videoStreams := media.VideoStreams()
	audioStreams := media.AudioStreams()
	if len(videoStreams) == 0 {
		return nil, ErrNoVideo
	}
	if len(videoStreams) > 1 {
		log.Warnf("'%s' has multiple video streams; defaulting to the first", filepath.Base(path))
	}
	videoStream := videoStreams[0]

	hasAudio := len(audioStreams) > 0 && !cfg.withoutAudio
	var audioStream *reisen.AudioStream
	if hasAudio {
		if len(audioStreams) > 1 {
			log.Warnf("'%s' has multiple audio streams; defaulting to the first", filepath.Base(path))
		}
		audioStream = audioStreams[0]
	}

	if hasAudio && cfg.audioChannels > 2 {
		return nil, ErrTooManyChannels
	}
	if hasAudio && audioStream.SampleRate() <= 0 {
		// reisen's AudioStream exposes only SampleRate() as a confirmable
		// signal of decodability; a non-positive rate means the codec
		// parameters this stream reports can't drive this reference
		// device wiring (fixed stereo/float32, see AudioRenderWorker).
		return nil, ErrUnsupportedSampleFormat
	}

	if err := media.OpenDecode(); err != nil {
		return nil, err
	}
	if err := videoStream.Open(); err != nil {
		_ = media.CloseDecode()
		return nil, err
	}
	if hasAudio {
		if err := audioStream.Open(); err != nil {
			_ = videoStream.Close()
			_ = media.CloseDecode()
			return nil, err
		}
	}

	p := &Player{
		media:            media,
		videoStream:      videoStream,
		audioStream:      audioStream,
		hasAudio:         hasAudio,
		videoFrameCh:     newVideoFrameChannel(),
		audioFrameCh:     newAudioFrameChannel(),
		videoCtrlCh:      NewUnboundedControlChannel(),
		audioCtrlCh:      NewUnboundedControlChannel(),
		playing:          true,
		onPlayingChanged: cfg.onPlayingChanged,
		log:              log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	group, ctx := errgroup.WithContext(ctx)
	p.group = group

	if hasAudio {
		ring := NewSampleRingBuffer()
		render, err := NewAudioRenderWorker(ring, float64(audioStream.SampleRate()), cfg.audioChannels)
		if err != nil {
			log.Warnf("audio render disabled: %v", err)
		} else {
			p.render = render
			if err := render.Start(); err != nil {
				log.Warnf("audio render start failed: %v", err)
			}
			audioWorker := newAudioDecodeWorker(ring, cfg.audioChannels, p.audioFrameCh, p.audioCtrlCh, log)
			group.Go(func() error { audioWorker.run(ctx); return nil })
		}
	}

	videoWorker := newVideoDecodeWorker(onFrame, p.videoFrameCh, p.videoCtrlCh, log)
	group.Go(func() error { videoWorker.run(ctx); return nil })

	d := newDemuxer(media, videoStream, audioStream, hasAudio && p.render != nil, p.videoFrameCh, p.audioFrameCh, log)
	group.Go(func() error { d.run(ctx); return nil })

	p.onPlayingChanged(true)
	return p, nil
}

// TogglePausePlay flips the playing state, broadcasts Play or Pause to
// both decode workers, and invokes OnPlayingChanged with the new state.
func (p *Player) TogglePausePlay() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrAlreadyClosed
	}

	p.playing = !p.playing
	cmd := ControlPlay
	if !p.playing {
		cmd = ControlPause
	}
	if err := p.videoCtrlCh.SendBlocking(cmd); err != nil {
		return err
	}
	if p.hasAudio {
		if err := p.audioCtrlCh.SendBlocking(cmd); err != nil {
			return err
		}
	}
	p.onPlayingChanged(p.playing)
	return nil
}

// Pause is a convenience wrapper that calls TogglePausePlay only if
// currently playing.
func (p *Player) Pause() error {
	p.mu.Lock()
	playing := p.playing
	p.mu.Unlock()
	if !playing {
		return nil
	}
	return p.TogglePausePlay()
}

// Play is a convenience wrapper that calls TogglePausePlay only if
// currently paused.
func (p *Player) Play() error {
	p.mu.Lock()
	playing := p.playing
	p.mu.Unlock()
	if playing {
		return nil
	}
	return p.TogglePausePlay()
}

// State reports the current playback state.
func (p *Player) State() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return Terminated
	}
	if p.playing {
		return Playing
	}
	return Paused
}

// HasAudio reports whether this player is rendering an audio stream.
func (p *Player) HasAudio() bool { return p.hasAudio && p.render != nil }

// Close closes the control channels (waking every worker's select with a
// channel-closed signal), cancels the demuxer's context, waits for every
// goroutine to finish, and releases the underlying media handles.
// Idempotent.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.videoCtrlCh.Close()
	p.audioCtrlCh.Close()
	p.videoFrameCh.Close()
	p.audioFrameCh.Close()
	p.cancel()
	_ = p.group.Wait()

	if p.render != nil {
		p.render.Close()
	}

	var firstErr error
	if p.hasAudio && p.audioStream != nil {
		if err := p.audioStream.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := p.videoStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := p.media.CloseDecode(); err != nil && firstErr == nil {
		firstErr = err
	}
	p.media.Close()
	return firstErr
}
