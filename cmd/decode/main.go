// Command decode demonstrates the pull-mode decoder library surface
// (decoder.Decoder / decoder.DecoderBuilder), mirroring the original
// program's decode_iter() loop over a URL source.
//
// decoder.PacketSource and decoder.Backend are external collaborators: a
// real build wires them to a demux/codec library. No such low-level
// per-packet API was available to wire here (see DESIGN.md's decoder
// backend entry), so this demo supplies a small synthetic source
// and backend that produce solid-color frames cycling through a small
// palette, purely
// to exercise the decode loop end to end without fabricating a binding
// to an unconfirmed third-party API.
package main

import (
	"fmt"

	"github.com/d2vr/reelcore/decoder"
)

func main() {
	src := newTestPatternSource(64, 64, 30)
	dec, err := decoder.New(src, newTestPatternBackend)
	if err != nil {
		panic(err)
	}
	defer dec.Close()

	for t, frame := range dec.DecodeIter() {
		r, g, b := frame.Pix[0], frame.Pix[1], frame.Pix[2]
		fmt.Printf("t=%.3fs pixel at 0,0: %d, %d, %d\n", t.Seconds(), r, g, b)
	}
	if err := dec.Err(); err != nil {
		fmt.Printf("decode stopped: %v\n", err)
	}
}
