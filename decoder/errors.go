package decoder

import (
	"errors"
	"fmt"
)

// Error taxonomy for the decode pipeline.
var (
	// ErrReadExhausted means the input packet source yielded EOF; the
	// caller should transition to drain mode.
	ErrReadExhausted = errors.New("decoder: input exhausted, switch to draining")

	// ErrDecodeExhausted means the drain loop produced no more frames and
	// input is exhausted; iteration is over.
	ErrDecodeExhausted = errors.New("decoder: drain exhausted, no more frames")

	// ErrMissingCodecParameters means decoder initialization was rejected
	// because the backend reported an invalid format or zero dimensions.
	ErrMissingCodecParameters = errors.New("decoder: missing or invalid codec parameters")

	// ErrInvalidResizeParameters means a Resize policy produced no valid
	// output dimensions for the given input size.
	ErrInvalidResizeParameters = errors.New("decoder: invalid resize parameters")

	// ErrStreamNotFound means the requested stream index is absent from
	// the container.
	ErrStreamNotFound = errors.New("decoder: stream not found")

	// ErrAlreadyDraining means DecodeRaw was called after the decoder
	// already entered draining mode; only DrainRaw is legal from then on.
	ErrAlreadyDraining = errors.New("decoder: decode called while draining")

	// ErrSeekWhileDraining means Seek was called on a decoder that has
	// already submitted EOF; the caller must rebuild the decoder first.
	ErrSeekWhileDraining = errors.New("decoder: cannot seek while draining")

	// ErrUnsupportedSampleFormat is returned instead of panicking when an
	// audio backend reports a sample format this package's default
	// resampling/casting path does not recognize.
	ErrUnsupportedSampleFormat = errors.New("decoder: unsupported sample format")
)

// BackendError wraps any error surfaced by the external codec, scaler, or
// resampler layer, carried verbatim so callers can still inspect the
// original cause via errors.Unwrap / errors.As.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("decoder: backend error during %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func newBackendError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}
