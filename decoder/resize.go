package decoder

// Resize is a spatial scaling policy applied to a decoder's native output
// size. A nil Resize means identity (SizeOut == Size).
type Resize interface {
	// ComputeFor returns the output size for the given input size, or
	// ErrInvalidResizeParameters if no valid size can be produced.
	ComputeFor(in Size) (Size, error)
}

// Fit is a Resize policy that returns the largest output size with the
// input aspect ratio preserved that fits within MaxW x MaxH.
type Fit struct {
	MaxW int
	MaxH int
}

func (f Fit) ComputeFor(in Size) (Size, error) {
	if in.W <= 0 || in.H <= 0 || f.MaxW <= 0 || f.MaxH <= 0 {
		return Size{}, ErrInvalidResizeParameters
	}
	widthScale := float64(f.MaxW) / float64(in.W)
	heightScale := float64(f.MaxH) / float64(in.H)
	scale := widthScale
	if heightScale < scale {
		scale = heightScale
	}
	out := Size{
		W: int(float64(in.W) * scale),
		H: int(float64(in.H) * scale),
	}
	if out.W <= 0 || out.H <= 0 {
		return Size{}, ErrInvalidResizeParameters
	}
	return out, nil
}

// Exact is a Resize policy that always returns a fixed output size,
// regardless of the input's aspect ratio.
type Exact struct {
	W int
	H int
}

func (e Exact) ComputeFor(in Size) (Size, error) {
	if e.W <= 0 || e.H <= 0 {
		return Size{}, ErrInvalidResizeParameters
	}
	return Size{W: e.W, H: e.H}, nil
}
