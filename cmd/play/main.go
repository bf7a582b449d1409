// Command play is a minimal push-mode demo for the Player API: open a
// file, drive an ebitengine window, pause/resume with space, quit with
// escape.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d2vr/reelcore"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/pflag"
)

var (
	flagNoAudio    = pflag.Bool("no-audio", false, "disable audio decode/render")
	flagWinWidth   = pflag.Int("width", 1280, "initial window width")
	flagWinHeight  = pflag.Int("height", 720, "initial window height")
)

func main() {
	pflag.Parse()
	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: play [flags] path/to/video.mp4")
		os.Exit(1)
	}

	path, err := filepath.Abs(pflag.Arg(0))
	if err != nil {
		panic(err)
	}
	if _, err := os.Stat(path); err != nil {
		panic(err)
	}

	view := reelcore.NewEbitenFrameView(*flagWinWidth, *flagWinHeight)

	var opts []reelcore.Option
	if *flagNoAudio {
		opts = append(opts, reelcore.WithoutAudio())
	}
	opts = append(opts, reelcore.WithOnPlayingChanged(func(playing bool) {
		fmt.Printf("playing changed: %v\n", playing)
	}))

	player, err := reelcore.NewPlayer(path, view.OnFrame, opts...)
	if err != nil {
		panic(err)
	}

	ebiten.SetWindowTitle("reelcore/play - " + filepath.Base(path))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(*flagWinWidth, *flagWinHeight)

	game := &playGame{player: player, view: view}
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		panic(err)
	}
}

type playGame struct {
	player *reelcore.Player
	view   *reelcore.EbitenFrameView
}

func (g *playGame) Layout(w, h int) (int, int) { return w, h }

func (g *playGame) Draw(screen *ebiten.Image) {
	reelcore.Draw(screen, g.view.Image())
}

func (g *playGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if err := g.player.Close(); err != nil {
			return err
		}
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if err := g.player.TogglePausePlay(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		fmt.Printf("state: %s\n", g.player.State())
	}
	return nil
}
