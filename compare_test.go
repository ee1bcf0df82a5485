package displaylist

import (
	"testing"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

func TestEquals(t *testing.T) {
	img := testImage(8, 8)
	blob := text.NewBlob([]text.Glyph{{ID: 3, Advance: 6}}, geom.MakeLTRB(0, -8, 6, 2))

	record := func(fn func(b *Builder)) *DisplayList {
		b := NewBuilder()
		fn(b)
		return b.Build()
	}

	tests := []struct {
		name string
		a, b func(b *Builder)
		want bool
	}{
		{
			name: "SameOps",
			a:    func(b *Builder) { b.DrawRect(geom.MakeLTRB(0, 0, 10, 10)) },
			b:    func(b *Builder) { b.DrawRect(geom.MakeLTRB(0, 0, 10, 10)) },
			want: true,
		},
		{
			name: "DifferentColor",
			a: func(b *Builder) {
				b.SetColor(paint.Red)
				b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
			},
			b: func(b *Builder) {
				b.SetColor(paint.Blue)
				b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
			},
			want: false,
		},
		{
			name: "DifferentOpCount",
			a:    func(b *Builder) { b.DrawRect(geom.MakeLTRB(0, 0, 10, 10)) },
			b: func(b *Builder) {
				b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
				b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
			},
			want: false,
		},
		{
			name: "SameSizeDifferentOp",
			a:    func(b *Builder) { b.DrawRect(geom.MakeLTRB(0, 0, 10, 10)) },
			b:    func(b *Builder) { b.DrawOval(geom.MakeLTRB(0, 0, 10, 10)) },
			want: false,
		},
		{
			name: "EqualPathsByValue",
			a:    func(b *Builder) { b.DrawPath(testTriangle()) },
			b:    func(b *Builder) { b.DrawPath(testTriangle()) },
			want: true,
		},
		{
			name: "DifferentPaths",
			a:    func(b *Builder) { b.DrawPath(testTriangle()) },
			b: func(b *Builder) {
				b.DrawPath(geom.NewPath().MoveTo(0, 0).LineTo(20, 0).LineTo(5, 8).Close())
			},
			want: false,
		},
		{
			name: "EqualFiltersByValue",
			a:    func(b *Builder) { b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 2, SigmaY: 2}) },
			b:    func(b *Builder) { b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 2, SigmaY: 2}) },
			want: true,
		},
		{
			name: "DifferentFilters",
			a:    func(b *Builder) { b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 2, SigmaY: 2}) },
			b:    func(b *Builder) { b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 3, SigmaY: 2}) },
			want: false,
		},
		{
			name: "SameImage",
			a:    func(b *Builder) { b.DrawImage(img, geom.Pt(0, 0), paint.SamplingLinear, false) },
			b:    func(b *Builder) { b.DrawImage(img, geom.Pt(0, 0), paint.SamplingLinear, false) },
			want: true,
		},
		{
			name: "IdenticalPixelsDifferentImage",
			a:    func(b *Builder) { b.DrawImage(testImage(8, 8), geom.Pt(0, 0), paint.SamplingLinear, false) },
			b:    func(b *Builder) { b.DrawImage(testImage(8, 8), geom.Pt(0, 0), paint.SamplingLinear, false) },
			want: false,
		},
		{
			name: "SameImageDifferentSampling",
			a:    func(b *Builder) { b.DrawImage(img, geom.Pt(0, 0), paint.SamplingLinear, false) },
			b:    func(b *Builder) { b.DrawImage(img, geom.Pt(0, 0), paint.SamplingNearest, false) },
			want: false,
		},
		{
			name: "SameBlob",
			a:    func(b *Builder) { b.DrawTextBlob(blob, 1, 2) },
			b:    func(b *Builder) { b.DrawTextBlob(blob, 1, 2) },
			want: true,
		},
		{
			name: "EqualSubListsByValue",
			a:    func(b *Builder) { b.DrawDisplayList(testSubList(), 1) },
			b:    func(b *Builder) { b.DrawDisplayList(testSubList(), 1) },
			want: true,
		},
		{
			name: "DifferentSubListOpacity",
			a:    func(b *Builder) { b.DrawDisplayList(testSubList(), 1) },
			b:    func(b *Builder) { b.DrawDisplayList(testSubList(), 0.5) },
			want: false,
		},
		{
			name: "ClipPathOps",
			a:    func(b *Builder) { b.ClipPath(testTriangle(), ClipIntersect, true) },
			b:    func(b *Builder) { b.ClipPath(testTriangle(), ClipDifference, true) },
			want: false,
		},
		{
			name: "BackdropFilters",
			a: func(b *Builder) {
				b.SaveLayer(nil, 0, &paint.BlurImageFilter{SigmaX: 1, SigmaY: 1})
				b.Restore()
			},
			b: func(b *Builder) {
				b.SaveLayer(nil, 0, &paint.BlurImageFilter{SigmaX: 1, SigmaY: 1})
				b.Restore()
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := record(tt.a), record(tt.b)
			if got := a.Equals(b); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
			if got := b.Equals(a); got != tt.want {
				t.Errorf("Equals() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualsIdentityAndNil(t *testing.T) {
	dl := testSubList()
	if !dl.Equals(dl) {
		t.Error("list is not equal to itself")
	}
	if dl.Equals(nil) {
		t.Error("list equals nil")
	}
	var none *DisplayList
	if !none.Equals(nil) {
		t.Error("nil list should equal nil")
	}
}

// pixelImage is a value-type image holding a slice, so its values are
// not comparable with ==.
type pixelImage struct {
	pix []byte
}

func (pixelImage) Bounds() geom.IRect { return geom.IRect{Right: 4, Bottom: 4} }
func (pixelImage) IsOpaque() bool     { return true }

func TestEqualsUncomparableImage(t *testing.T) {
	build := func(img paint.Image) *DisplayList {
		b := NewBuilder()
		b.DrawImage(img, geom.Pt(0, 0), paint.SamplingNearest, false)
		return b.Build()
	}
	shared := testImage(4, 4)

	tests := []struct {
		name string
		x, y paint.Image
		want bool
	}{
		{"SameComparable", shared, shared, true},
		{"DifferentComparable", shared, testImage(4, 4), false},
		{"Uncomparable", pixelImage{pix: make([]byte, 64)}, pixelImage{pix: make([]byte, 64)}, false},
		{"MixedTypes", shared, pixelImage{pix: make([]byte, 64)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := build(tt.x), build(tt.y)
			if got := x.Equals(y); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
			if got := y.Equals(x); got != tt.want {
				t.Errorf("reverse Equals() = %v, want %v", got, tt.want)
			}
		})
	}
}
