package decoder

// AudioBytes returns the audio frame's first plane, truncated (or
// padded, if the plane is short) to exactly samples*channels*sizeof(sample)
// bytes. This is the explicit slice-length correction: some backends
// report a plane length that disagrees with the frame's own
// sample/channel/format fields, so callers must compute the expected
// length directly rather than trust len(Planes[0]).
func AudioBytes(frame *RawFrame) []byte {
	expected := frame.Samples * frame.Channels * frame.SampleFormat.BytesPerSample()
	if len(frame.Planes) == 0 {
		return make([]byte, expected)
	}
	plane := frame.Planes[0]
	if len(plane) == expected {
		return plane
	}
	out := make([]byte, expected)
	n := copy(out, plane)
	_ = n
	return out
}
