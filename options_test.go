package displaylist

import (
	"math"
	"testing"

	"github.com/gogpu/displaylist/geom"
)

func TestDefaultOptions(t *testing.T) {
	b := NewBuilder()
	if b.opts.cull != geom.LargestRect {
		t.Errorf("default cull = %v, want %v", b.opts.cull, geom.LargestRect)
	}
	if b.opts.rtree {
		t.Error("default builder should not index ops")
	}
	if dl := b.Build(); dl.HasRTree() {
		t.Error("HasRTree() = true without WithRTree")
	}
}

func TestWithRTree(t *testing.T) {
	b := NewBuilder(WithRTree(true))
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	dl := b.Build()
	if !dl.HasRTree() || dl.RTree() == nil {
		t.Fatal("HasRTree() = false with WithRTree(true)")
	}
	if got := dl.RTree().LeafCount(); got != 1 {
		t.Errorf("RTree().LeafCount() = %d, want 1", got)
	}

	// Options survive Build.
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	if !b.Build().HasRTree() {
		t.Error("second Build() lost the RTree option")
	}
}

func TestWithCullRect(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name string
		cull geom.Rect
		want geom.Rect
	}{
		{"Surface", geom.MakeWH(800, 600), geom.MakeWH(800, 600)},
		{"Offset", geom.MakeLTRB(100, 100, 200, 200), geom.MakeLTRB(100, 100, 200, 200)},
		{"Empty", geom.MakeLTRB(10, 10, 10, 10), geom.Rect{}},
		{"NaN", geom.MakeLTRB(nan, 0, 10, 10), geom.Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(WithCullRect(tt.cull))
			if got := b.GetDestinationClipBounds(); got != tt.want {
				t.Errorf("GetDestinationClipBounds() = %v, want %v", got, tt.want)
			}
			b.DrawPaint()
			if got := b.Build().Bounds(); got != tt.want {
				t.Errorf("Bounds() after DrawPaint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionsApplyInOrder(t *testing.T) {
	b := NewBuilder(
		WithCullRect(geom.MakeWH(10, 10)),
		WithRTree(true),
		WithCullRect(geom.MakeWH(20, 20)),
		WithRTree(false),
	)
	if b.opts.cull != geom.MakeWH(20, 20) || b.opts.rtree {
		t.Errorf("opts = %+v, want last option to win", b.opts)
	}
}
