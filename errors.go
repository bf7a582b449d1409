package reelcore

import "errors"

// Construction and runtime errors surfaced by the push-playback surface.
// Decoder-level errors (ErrReadExhausted, ErrMissingCodecParameters, ...)
// live in the decoder subpackage and are not re-exported here; the
// ErrStreamNotFound and ErrUnsupportedSampleFormat below are this
// package's own values, distinct from the decoder ones of the same name.
var (
	ErrNoVideo                 = errors.New("reelcore: source has no video stream")
	ErrNilAudioDevice           = errors.New("reelcore: source has audio but no audio device was configured")
	ErrBadSampleRate            = errors.New("reelcore: source sample rate and device sample rate don't match")
	ErrTooManyChannels          = errors.New("reelcore: sources with more than 2 channels are not supported")
	ErrUnsupportedSampleFormat  = errors.New("reelcore: device does not support any of the source's sample formats")
	ErrAlreadyClosed            = errors.New("reelcore: player already closed")
	ErrStreamNotFound           = errors.New("reelcore: requested stream not found")
)
