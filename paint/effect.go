package paint

import (
	"slices"

	"github.com/gogpu/displaylist/geom"
)

// MaskFilter modifies the coverage mask of an op before it is colored.
type MaskFilter interface {
	Equal(MaskFilter) bool
	// Outset returns how far the filter can spread coverage beyond the
	// original geometry, in local units.
	Outset() float32
}

// BlurStyle selects which side of the edge a blur mask keeps.
type BlurStyle uint8

// Blur styles.
const (
	BlurNormal BlurStyle = iota
	BlurSolid
	BlurOuter
	BlurInner
)

// BlurMaskFilter blurs the coverage mask.
type BlurMaskFilter struct {
	Style      BlurStyle
	Sigma      float32
	RespectCTM bool
}

// Equal implements MaskFilter.
func (f *BlurMaskFilter) Equal(o MaskFilter) bool {
	t, ok := o.(*BlurMaskFilter)
	return ok && *f == *t
}

// Outset implements MaskFilter.
func (f *BlurMaskFilter) Outset() float32 { return blurOutset(f.Sigma) }

// PathEffect modifies geometry before it is stroked or filled.
type PathEffect interface {
	Equal(PathEffect) bool
	// EffectBounds returns the bounds of the modified geometry given the
	// bounds of the original. The boolean is false when unbounded.
	EffectBounds(geom.Rect) (geom.Rect, bool)
}

// DashPathEffect breaks strokes into on/off intervals.
type DashPathEffect struct {
	Intervals []float32
	Phase     float32
}

// NewDash returns a dash effect alternating on and off lengths.
func NewDash(on, off, phase float32) *DashPathEffect {
	return &DashPathEffect{Intervals: []float32{on, off}, Phase: phase}
}

// Equal implements PathEffect.
func (e *DashPathEffect) Equal(o PathEffect) bool {
	t, ok := o.(*DashPathEffect)
	return ok && e.Phase == t.Phase && slices.Equal(e.Intervals, t.Intervals)
}

// EffectBounds implements PathEffect. Dashing only removes geometry.
func (e *DashPathEffect) EffectBounds(r geom.Rect) (geom.Rect, bool) {
	return r, true
}

// Blender is an opaque blend function that overrides the blend mode.
type Blender interface {
	Equal(Blender) bool
	// AsBlendMode returns the equivalent mode, if there is one.
	AsBlendMode() (BlendMode, bool)
}

// ModeBlender is a blender that is exactly a blend mode.
type ModeBlender struct {
	Mode BlendMode
}

// Equal implements Blender.
func (b *ModeBlender) Equal(o Blender) bool {
	t, ok := o.(*ModeBlender)
	return ok && b.Mode == t.Mode
}

// AsBlendMode implements Blender.
func (b *ModeBlender) AsBlendMode() (BlendMode, bool) { return b.Mode, true }

// ArithmeticBlender computes k1*src*dst + k2*src + k3*dst + k4.
type ArithmeticBlender struct {
	K1, K2, K3, K4 float32
	EnforcePremul  bool
}

// Equal implements Blender.
func (b *ArithmeticBlender) Equal(o Blender) bool {
	t, ok := o.(*ArithmeticBlender)
	return ok && *b == *t
}

// AsBlendMode implements Blender. Coefficients that select only the
// source, only the destination or nothing reduce to Src, Dst and Clear.
func (b *ArithmeticBlender) AsBlendMode() (BlendMode, bool) {
	if b.K1 != 0 || b.K4 != 0 {
		return 0, false
	}
	switch {
	case b.K2 == 0 && b.K3 == 0:
		return BlendClear, true
	case b.K2 == 1 && b.K3 == 0:
		return BlendSrc, true
	case b.K2 == 0 && b.K3 == 1:
		return BlendDst, true
	}
	return 0, false
}
