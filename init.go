package reelcore

import (
	"sync"

	"github.com/d2vr/reelcore/decoder"
	"github.com/erparts/reisen"
)

// ensureInit performs the container library's one-time, idempotent
// process-wide initialization: reisen.NetworkInitialize, needed for
// network sources and harmless to run unconditionally for local files
// too. It runs on the first NewPlayer call and also registers the same
// function as the decoder subpackage's init hook, so a Decoder built
// after that runs it once more through the decoder's own once-guard. A
// Decoder built in a process that has not yet constructed a Player gets
// no hook from here.
var (
	initOnce    sync.Once
	initErr     error
)

func ensureInit() error {
	initOnce.Do(func() {
		decoder.SetGlobalInit(func() error {
			return reisen.NetworkInitialize()
		})
		initErr = reisen.NetworkInitialize()
	})
	return initErr
}
