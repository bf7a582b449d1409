package reelcore

import (
	"image/color"
	"sync"

	"github.com/erparts/reisen"
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenFrameView is an optional presentation-layer adapter: it turns
// the push-playback OnFrame callback into a readable *ebiten.Image, kept
// updated the way a typical reisen-based player keeps a currentFrame
// image updated via copyFrame. It owns no decode goroutines itself - it
// is just a thread-safe frame sink meant to be passed as NewPlayer's
// onFrame.
type EbitenFrameView struct {
	mu           sync.Mutex
	frame        *ebiten.Image
	onBlackFrame bool
}

// NewEbitenFrameView allocates the backing image at the given resolution,
// typically the selected video stream's Width()/Height().
func NewEbitenFrameView(width, height int) *EbitenFrameView {
	return &EbitenFrameView{frame: ebiten.NewImage(width, height)}
}

// OnFrame is suitable for direct use as NewPlayer's onFrame argument. It
// copies the frame's pixels into the backing image; a nil frame fills it
// black instead, matching the usual copyFrame behavior for end-of-stream
// or decode-miss ticks.
func (v *EbitenFrameView) OnFrame(frame *reisen.VideoFrame) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if frame == nil {
		if !v.onBlackFrame {
			v.frame.Fill(color.Black)
			v.onBlackFrame = true
		}
		return
	}
	v.frame.WritePixels(frame.Data())
	v.onBlackFrame = false
}

// Image returns the current frame for drawing. Safe to call concurrently
// with OnFrame; the returned image must not be mutated by the caller.
func (v *EbitenFrameView) Image() *ebiten.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}
