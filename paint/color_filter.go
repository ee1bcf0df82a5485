package paint

// ColorFilter transforms colors after the color source is evaluated.
type ColorFilter interface {
	Equal(ColorFilter) bool
	// ModifiesTransparentBlack reports whether a transparent black input
	// can produce a visible output, which makes the filter unbounded.
	ModifiesTransparentBlack() bool
	// CanCommuteWithOpacity reports whether applying opacity before or
	// after the filter gives the same result.
	CanCommuteWithOpacity() bool
}

// BlendColorFilter blends a constant color onto each pixel.
type BlendColorFilter struct {
	Color Color
	Mode  BlendMode
}

// Equal implements ColorFilter.
func (f *BlendColorFilter) Equal(o ColorFilter) bool {
	t, ok := o.(*BlendColorFilter)
	return ok && f.Color == t.Color && f.Mode == t.Mode
}

// ModifiesTransparentBlack implements ColorFilter.
func (f *BlendColorFilter) ModifiesTransparentBlack() bool {
	switch f.Mode {
	case BlendClear, BlendDst, BlendSrcIn, BlendDstIn, BlendDstOut, BlendSrcATop, BlendModulate:
		return false
	}
	return !f.Color.IsTransparent()
}

// CanCommuteWithOpacity implements ColorFilter.
func (f *BlendColorFilter) CanCommuteWithOpacity() bool { return false }

// MatrixColorFilter applies a 4x5 row-major color matrix to
// non-premultiplied RGBA, with the fifth column as a translation.
type MatrixColorFilter struct {
	Matrix [20]float32
}

// Equal implements ColorFilter.
func (f *MatrixColorFilter) Equal(o ColorFilter) bool {
	t, ok := o.(*MatrixColorFilter)
	return ok && f.Matrix == t.Matrix
}

// ModifiesTransparentBlack implements ColorFilter.
func (f *MatrixColorFilter) ModifiesTransparentBlack() bool {
	m := &f.Matrix
	return m[4] != 0 || m[9] != 0 || m[14] != 0 || m[19] != 0
}

// CanCommuteWithOpacity implements ColorFilter.
func (f *MatrixColorFilter) CanCommuteWithOpacity() bool {
	m := &f.Matrix
	return m[3] == 0 && m[8] == 0 && m[13] == 0 &&
		m[15] == 0 && m[16] == 0 && m[17] == 0 &&
		m[18] >= 0 && m[18] <= 1 && m[19] == 0
}

// SRGBToLinearGammaFilter converts sRGB encoded colors to linear.
type SRGBToLinearGammaFilter struct{}

// Equal implements ColorFilter.
func (SRGBToLinearGammaFilter) Equal(o ColorFilter) bool {
	_, ok := o.(SRGBToLinearGammaFilter)
	return ok
}

// ModifiesTransparentBlack implements ColorFilter.
func (SRGBToLinearGammaFilter) ModifiesTransparentBlack() bool { return false }

// CanCommuteWithOpacity implements ColorFilter.
func (SRGBToLinearGammaFilter) CanCommuteWithOpacity() bool { return true }

// LinearToSRGBGammaFilter converts linear colors to sRGB encoding.
type LinearToSRGBGammaFilter struct{}

// Equal implements ColorFilter.
func (LinearToSRGBGammaFilter) Equal(o ColorFilter) bool {
	_, ok := o.(LinearToSRGBGammaFilter)
	return ok
}

// ModifiesTransparentBlack implements ColorFilter.
func (LinearToSRGBGammaFilter) ModifiesTransparentBlack() bool { return false }

// CanCommuteWithOpacity implements ColorFilter.
func (LinearToSRGBGammaFilter) CanCommuteWithOpacity() bool { return true }
