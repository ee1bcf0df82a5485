package paint

import (
	"image"
	"testing"

	"github.com/gogpu/displaylist/geom"
)

func TestNewDefaults(t *testing.T) {
	p := New()
	if p.Color != Black {
		t.Errorf("Color = %#x, want %#x", uint32(p.Color), uint32(Black))
	}
	if p.BlendMode != BlendSrcOver || !p.IsDefaultBlend() {
		t.Errorf("BlendMode = %v, want SrcOver", p.BlendMode)
	}
	if p.StrokeMiter != DefaultStrokeMiter {
		t.Errorf("StrokeMiter = %v, want %v", p.StrokeMiter, DefaultStrokeMiter)
	}
}

func TestBlenderTakesPriority(t *testing.T) {
	p := New()
	p.Blender = &ModeBlender{Mode: BlendSrc}
	if m, ok := p.EffectiveBlendMode(); !ok || m != BlendSrc {
		t.Errorf("EffectiveBlendMode() = %v, %v, want Src, true", m, ok)
	}
	if p.IsDefaultBlend() {
		t.Error("IsDefaultBlend() should be false with a Src blender")
	}
	p.Blender = &ArithmeticBlender{K1: 0.5}
	if _, ok := p.EffectiveBlendMode(); ok {
		t.Error("arithmetic blender should not reduce to a mode")
	}
}

func TestEqualNilHandling(t *testing.T) {
	var a, b ImageFilter
	if !Equal(a, b) {
		t.Error("nil filters should be equal")
	}
	b = &BlurImageFilter{SigmaX: 2, SigmaY: 2}
	if Equal(a, b) || Equal(b, a) {
		t.Error("nil and non-nil filters should differ")
	}
	if !Equal[ImageFilter](&BlurImageFilter{SigmaX: 2, SigmaY: 2}, b) {
		t.Error("equal blurs should compare equal")
	}
}

func TestPaintEqual(t *testing.T) {
	a := New()
	a.ColorFilter = &BlendColorFilter{Color: Red, Mode: BlendSrcIn}
	b := New()
	b.ColorFilter = &BlendColorFilter{Color: Red, Mode: BlendSrcIn}
	if !a.Equal(b) {
		t.Error("paints with equal filters should be equal")
	}
	b.StrokeWidth = 2
	if a.Equal(b) {
		t.Error("paints with different stroke widths should differ")
	}
}

func TestBlendColorFilterTransparentBlack(t *testing.T) {
	tests := []struct {
		filter BlendColorFilter
		want   bool
	}{
		{BlendColorFilter{Color: Red, Mode: BlendSrcOver}, true},
		{BlendColorFilter{Color: Transparent, Mode: BlendSrcOver}, false},
		{BlendColorFilter{Color: Red, Mode: BlendSrcIn}, false},
		{BlendColorFilter{Color: Red, Mode: BlendDst}, false},
		{BlendColorFilter{Color: Red, Mode: BlendSrc}, true},
	}
	for _, tt := range tests {
		if got := tt.filter.ModifiesTransparentBlack(); got != tt.want {
			t.Errorf("%v/%v ModifiesTransparentBlack() = %v, want %v", tt.filter.Mode, tt.filter.Color, got, tt.want)
		}
	}
}

func TestNopsOnTransparentBlack(t *testing.T) {
	for _, m := range []BlendMode{BlendClear, BlendSrc, BlendSrcIn, BlendDstIn, BlendSrcOut, BlendDstATop, BlendModulate} {
		if m.NopsOnTransparentBlack() {
			t.Errorf("%v.NopsOnTransparentBlack() = true, want false", m)
		}
	}
	for _, m := range []BlendMode{BlendSrcOver, BlendDstOver, BlendPlus, BlendMultiply} {
		if !m.NopsOnTransparentBlack() {
			t.Errorf("%v.NopsOnTransparentBlack() = false, want true", m)
		}
	}
}

func TestImageFilterBounds(t *testing.T) {
	in := geom.MakeLTRB(10, 10, 20, 20)

	blur := &BlurImageFilter{SigmaX: 1, SigmaY: 2}
	if got, ok := blur.MapLocalBounds(in); !ok || got != geom.MakeLTRB(7, 4, 23, 26) {
		t.Errorf("blur MapLocalBounds() = %v, %v", got, ok)
	}
	if got, ok := blur.MapDeviceBounds(in, geom.Scale(2, 2)); !ok || got != geom.MakeLTRB(4, -2, 26, 32) {
		t.Errorf("blur MapDeviceBounds() = %v, %v", got, ok)
	}

	erode := &ErodeImageFilter{RadiusX: 10, RadiusY: 10}
	if got, ok := erode.MapLocalBounds(in); !ok || !got.IsEmpty() {
		t.Errorf("erode MapLocalBounds() = %v, %v, want empty", got, ok)
	}

	cf := &ColorFilterImageFilter{Filter: &MatrixColorFilter{Matrix: [20]float32{19: 1}}}
	if _, ok := cf.MapLocalBounds(in); ok {
		t.Error("color filter that modifies transparent black should be unbounded")
	}

	composed := Compose(&DilateImageFilter{RadiusX: 1, RadiusY: 1}, blur)
	if got, ok := composed.MapLocalBounds(in); !ok || got != geom.MakeLTRB(6, 3, 24, 27) {
		t.Errorf("composed MapLocalBounds() = %v, %v", got, ok)
	}
	if Compose(nil, blur) != ImageFilter(blur) {
		t.Error("Compose(nil, f) should return f")
	}
}

func TestMatrixColorFilterCommutes(t *testing.T) {
	identity := &MatrixColorFilter{Matrix: [20]float32{0: 1, 6: 1, 12: 1, 18: 1}}
	if !identity.CanCommuteWithOpacity() || identity.ModifiesTransparentBlack() {
		t.Error("identity color matrix misclassified")
	}
	alphaFromRed := &MatrixColorFilter{Matrix: [20]float32{0: 1, 6: 1, 12: 1, 15: 1}}
	if alphaFromRed.CanCommuteWithOpacity() {
		t.Error("matrix writing alpha from red should not commute with opacity")
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#f00", Red},
		{"00FF00", Green},
		{"0000ff80", ARGB(0x80, 0, 0, 0xFF)},
		{"bogus", Black},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %#x, want %#x", tt.in, uint32(got), uint32(tt.want))
		}
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	wrapped := FromImage(img)
	if got, want := wrapped.Bounds(), geom.MakeIRectLTRB(0, 0, 4, 3); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if wrapped.IsOpaque() {
		t.Error("transparent RGBA image reported opaque")
	}
	gray := FromImage(image.NewGray(image.Rect(0, 0, 1, 1)))
	if !gray.IsOpaque() {
		t.Error("gray image should be opaque")
	}
	if FromImage(img) == wrapped {
		t.Error("each wrap should produce a distinct image identity")
	}
}

func TestGradientOpacity(t *testing.T) {
	g := NewLinearGradient(geom.Pt(0, 0), geom.Pt(10, 0))
	g.AddColorStop(0, Red).AddColorStop(1, Blue)
	if !g.IsOpaque() {
		t.Error("gradient of opaque colors should be opaque")
	}
	g.AddColorStop(1, Transparent)
	if g.IsOpaque() {
		t.Error("gradient with a transparent stop should not be opaque")
	}
	other := NewLinearGradient(geom.Pt(0, 0), geom.Pt(10, 0))
	if g.Equal(other) {
		t.Error("gradients with different stops should differ")
	}
}
