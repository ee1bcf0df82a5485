package paint

import (
	"math"

	"github.com/gogpu/displaylist/geom"
)

// ImageFilter transforms the rendered output of an op or a layer.
type ImageFilter interface {
	Equal(ImageFilter) bool
	// MapLocalBounds returns the bounds of the filter output for input
	// content with the given local bounds. The boolean is false when the
	// output cannot be bounded.
	MapLocalBounds(input geom.Rect) (geom.Rect, bool)
	// MapDeviceBounds maps device-space input bounds through the filter
	// applied under ctm.
	MapDeviceBounds(input geom.Rect, ctm geom.Matrix) (geom.Rect, bool)
	// ModifiesTransparentBlack reports whether transparent areas can
	// become visible.
	ModifiesTransparentBlack() bool
}

// blurOutset converts a Gaussian sigma to the distance beyond which the
// kernel contributes nothing visible.
func blurOutset(sigma float32) float32 {
	return sigma * 3
}

// mapOutset converts a local-space outset to a device-space outset.
func mapOutset(dx, dy float32, ctm geom.Matrix) (float32, float32, bool) {
	if ctm.HasPerspective() {
		return 0, 0, false
	}
	ox := math.Abs(ctm[0]*float64(dx)) + math.Abs(ctm[1]*float64(dy))
	oy := math.Abs(ctm[4]*float64(dx)) + math.Abs(ctm[5]*float64(dy))
	return float32(ox), float32(oy), true
}

// BlurImageFilter applies a Gaussian blur.
type BlurImageFilter struct {
	SigmaX, SigmaY float32
	Tile           TileMode
}

// Equal implements ImageFilter.
func (f *BlurImageFilter) Equal(o ImageFilter) bool {
	t, ok := o.(*BlurImageFilter)
	return ok && *f == *t
}

// MapLocalBounds implements ImageFilter.
func (f *BlurImageFilter) MapLocalBounds(in geom.Rect) (geom.Rect, bool) {
	return in.Outset(blurOutset(f.SigmaX), blurOutset(f.SigmaY)), true
}

// MapDeviceBounds implements ImageFilter.
func (f *BlurImageFilter) MapDeviceBounds(in geom.Rect, ctm geom.Matrix) (geom.Rect, bool) {
	dx, dy, ok := mapOutset(blurOutset(f.SigmaX), blurOutset(f.SigmaY), ctm)
	if !ok {
		return geom.LargestRect, false
	}
	return in.Outset(dx, dy).RoundOut(), true
}

// ModifiesTransparentBlack implements ImageFilter.
func (f *BlurImageFilter) ModifiesTransparentBlack() bool { return false }

// DilateImageFilter grows opaque regions by a radius.
type DilateImageFilter struct {
	RadiusX, RadiusY float32
}

// Equal implements ImageFilter.
func (f *DilateImageFilter) Equal(o ImageFilter) bool {
	t, ok := o.(*DilateImageFilter)
	return ok && *f == *t
}

// MapLocalBounds implements ImageFilter.
func (f *DilateImageFilter) MapLocalBounds(in geom.Rect) (geom.Rect, bool) {
	return in.Outset(f.RadiusX, f.RadiusY), true
}

// MapDeviceBounds implements ImageFilter.
func (f *DilateImageFilter) MapDeviceBounds(in geom.Rect, ctm geom.Matrix) (geom.Rect, bool) {
	dx, dy, ok := mapOutset(f.RadiusX, f.RadiusY, ctm)
	if !ok {
		return geom.LargestRect, false
	}
	return in.Outset(dx, dy).RoundOut(), true
}

// ModifiesTransparentBlack implements ImageFilter.
func (f *DilateImageFilter) ModifiesTransparentBlack() bool { return false }

// ErodeImageFilter shrinks opaque regions by a radius.
type ErodeImageFilter struct {
	RadiusX, RadiusY float32
}

// Equal implements ImageFilter.
func (f *ErodeImageFilter) Equal(o ImageFilter) bool {
	t, ok := o.(*ErodeImageFilter)
	return ok && *f == *t
}

// MapLocalBounds implements ImageFilter.
func (f *ErodeImageFilter) MapLocalBounds(in geom.Rect) (geom.Rect, bool) {
	out := in.Inset(f.RadiusX, f.RadiusY)
	if out.IsEmpty() {
		return geom.Rect{}, true
	}
	return out, true
}

// MapDeviceBounds implements ImageFilter.
func (f *ErodeImageFilter) MapDeviceBounds(in geom.Rect, ctm geom.Matrix) (geom.Rect, bool) {
	dx, dy, ok := mapOutset(f.RadiusX, f.RadiusY, ctm)
	if !ok {
		return geom.LargestRect, false
	}
	out := in.Inset(dx, dy)
	if out.IsEmpty() {
		return geom.Rect{}, true
	}
	return out.RoundOut(), true
}

// ModifiesTransparentBlack implements ImageFilter.
func (f *ErodeImageFilter) ModifiesTransparentBlack() bool { return false }

// MatrixImageFilter transforms content by a matrix in local space.
type MatrixImageFilter struct {
	Matrix   geom.Matrix
	Sampling Sampling
}

// Equal implements ImageFilter.
func (f *MatrixImageFilter) Equal(o ImageFilter) bool {
	t, ok := o.(*MatrixImageFilter)
	return ok && *f == *t
}

// MapLocalBounds implements ImageFilter.
func (f *MatrixImageFilter) MapLocalBounds(in geom.Rect) (geom.Rect, bool) {
	return f.Matrix.MapRect(in)
}

// MapDeviceBounds implements ImageFilter.
func (f *MatrixImageFilter) MapDeviceBounds(in geom.Rect, ctm geom.Matrix) (geom.Rect, bool) {
	inv, ok := ctm.Invert()
	if !ok {
		return geom.LargestRect, false
	}
	out, ok := ctm.Concat(f.Matrix).Concat(inv).MapRect(in)
	if !ok {
		return geom.LargestRect, false
	}
	return out.RoundOut(), true
}

// ModifiesTransparentBlack implements ImageFilter.
func (f *MatrixImageFilter) ModifiesTransparentBlack() bool { return false }

// ComposeImageFilter applies Inner first, then Outer.
type ComposeImageFilter struct {
	Outer, Inner ImageFilter
}

// Compose returns a filter applying inner then outer, or whichever is
// non-nil when one is missing.
func Compose(outer, inner ImageFilter) ImageFilter {
	switch {
	case outer == nil:
		return inner
	case inner == nil:
		return outer
	}
	return &ComposeImageFilter{Outer: outer, Inner: inner}
}

// Equal implements ImageFilter.
func (f *ComposeImageFilter) Equal(o ImageFilter) bool {
	t, ok := o.(*ComposeImageFilter)
	return ok && Equal(f.Outer, t.Outer) && Equal(f.Inner, t.Inner)
}

// MapLocalBounds implements ImageFilter.
func (f *ComposeImageFilter) MapLocalBounds(in geom.Rect) (geom.Rect, bool) {
	mid, ok := f.Inner.MapLocalBounds(in)
	if !ok {
		return geom.LargestRect, false
	}
	return f.Outer.MapLocalBounds(mid)
}

// MapDeviceBounds implements ImageFilter.
func (f *ComposeImageFilter) MapDeviceBounds(in geom.Rect, ctm geom.Matrix) (geom.Rect, bool) {
	mid, ok := f.Inner.MapDeviceBounds(in, ctm)
	if !ok {
		return geom.LargestRect, false
	}
	return f.Outer.MapDeviceBounds(mid, ctm)
}

// ModifiesTransparentBlack implements ImageFilter.
func (f *ComposeImageFilter) ModifiesTransparentBlack() bool {
	return f.Inner.ModifiesTransparentBlack() || f.Outer.ModifiesTransparentBlack()
}

// ColorFilterImageFilter applies a color filter to the rendered output.
type ColorFilterImageFilter struct {
	Filter ColorFilter
}

// Equal implements ImageFilter.
func (f *ColorFilterImageFilter) Equal(o ImageFilter) bool {
	t, ok := o.(*ColorFilterImageFilter)
	return ok && Equal(f.Filter, t.Filter)
}

// MapLocalBounds implements ImageFilter.
func (f *ColorFilterImageFilter) MapLocalBounds(in geom.Rect) (geom.Rect, bool) {
	if f.ModifiesTransparentBlack() {
		return geom.LargestRect, false
	}
	return in, true
}

// MapDeviceBounds implements ImageFilter.
func (f *ColorFilterImageFilter) MapDeviceBounds(in geom.Rect, _ geom.Matrix) (geom.Rect, bool) {
	return f.MapLocalBounds(in)
}

// ModifiesTransparentBlack implements ImageFilter.
func (f *ColorFilterImageFilter) ModifiesTransparentBlack() bool {
	return f.Filter != nil && f.Filter.ModifiesTransparentBlack()
}
