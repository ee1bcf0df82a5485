package displaylist

import (
	"testing"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
)

// gridScene records an n by n grid of rects, each in its own save block
// with a color change, the typical shape of a recorded UI frame.
func gridScene(b *Builder, n int) {
	for y := range n {
		for x := range n {
			b.Save()
			b.Translate(float32(x*20), float32(y*20))
			b.SetColor(paint.ARGB(0xFF, uint8(x), uint8(y), 0x80))
			b.DrawRect(geom.MakeWH(16, 16))
			b.Restore()
		}
	}
}

// BenchmarkBuild measures recording and finalizing lists of various sizes.
func BenchmarkBuild(b *testing.B) {
	sizes := []struct {
		name  string
		n     int
		rtree bool
	}{
		{"10x10", 10, false},
		{"10x10_RTree", 10, true},
		{"50x50", 50, false},
		{"50x50_RTree", 50, true},
	}
	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			builder := NewBuilder(WithRTree(size.rtree))
			b.ReportAllocs()
			for b.Loop() {
				gridScene(builder, size.n)
				_ = builder.Build()
			}
		})
	}
}

func BenchmarkDispatch(b *testing.B) {
	builder := NewBuilder()
	gridScene(builder, 50)
	dl := builder.Build()
	var d NopDispatcher

	b.ReportAllocs()
	b.SetBytes(int64(dl.Bytes(false)))
	for b.Loop() {
		dl.Dispatch(d)
	}
}

// BenchmarkDispatchCulled compares culled replay of a small viewport
// against the full list.
func BenchmarkDispatchCulled(b *testing.B) {
	builder := NewBuilder(WithRTree(true))
	gridScene(builder, 100)
	dl := builder.Build()
	var d NopDispatcher

	for _, view := range []struct {
		name string
		cull geom.Rect
	}{
		{"Viewport", geom.MakeXYWH(400, 400, 200, 200)},
		{"Full", dl.Bounds()},
	} {
		b.Run(view.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				dl.DispatchCulled(d, view.cull)
			}
		})
	}
}

func BenchmarkEquals(b *testing.B) {
	build := func() *DisplayList {
		builder := NewBuilder()
		gridScene(builder, 50)
		builder.DrawPath(geom.NewPath().AddCircle(50, 50, 40))
		return builder.Build()
	}
	x, y := build(), build()

	b.ReportAllocs()
	for b.Loop() {
		if !x.Equals(y) {
			b.Fatal("lists differ")
		}
	}
}

func BenchmarkReplayIntoBuilder(b *testing.B) {
	builder := NewBuilder()
	gridScene(builder, 50)
	dl := builder.Build()
	target := NewBuilder()

	b.ReportAllocs()
	for b.Loop() {
		dl.Dispatch(target)
		_ = target.Build()
	}
}
