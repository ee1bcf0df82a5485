package displaylist

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

// replay copies dl through a fresh builder.
func replay(dl *DisplayList) *DisplayList {
	b := NewBuilder()
	dl.Dispatch(b)
	return b.Build()
}

func testTriangle() *geom.Path {
	return geom.NewPath().MoveTo(0, 0).LineTo(10, 0).LineTo(5, 8).Close()
}

func testImage(w, h int) paint.Image {
	return paint.FromImage(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func testSubList() *DisplayList {
	b := NewBuilder()
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	return b.Build()
}

func TestSingleOpRoundTrip(t *testing.T) {
	rr := geom.MakeRRectXY(geom.MakeLTRB(0, 0, 40, 40), 5, 5)
	inner := geom.MakeRRectXY(geom.MakeLTRB(10, 10, 30, 30), 2, 2)
	img := testImage(16, 16)
	perspective := geom.Identity()
	perspective[12] = 0.001
	blob := text.NewBlob([]text.Glyph{{ID: 1, Advance: 8}}, geom.MakeLTRB(0, -10, 8, 2))
	bounds := geom.MakeLTRB(0, 0, 50, 50)

	tests := []struct {
		name  string
		build func(b *Builder)
		ops   int
		bytes int
	}{
		{"SetAntiAlias", func(b *Builder) { b.SetAntiAlias(true) }, 0, recordSize[boolOp](0)},
		{"SetDither", func(b *Builder) { b.SetDither(true) }, 0, recordSize[boolOp](0)},
		{"SetInvertColors", func(b *Builder) { b.SetInvertColors(true) }, 0, recordSize[boolOp](0)},
		{"SetStyle", func(b *Builder) { b.SetStyle(paint.StyleStroke) }, 0, recordSize[u32Op](0)},
		{"SetStrokeWidth", func(b *Builder) { b.SetStrokeWidth(3) }, 0, recordSize[f32Op](0)},
		{"SetStrokeMiter", func(b *Builder) { b.SetStrokeMiter(10) }, 0, recordSize[f32Op](0)},
		{"SetStrokeCap", func(b *Builder) { b.SetStrokeCap(paint.CapRound) }, 0, recordSize[u32Op](0)},
		{"SetStrokeJoin", func(b *Builder) { b.SetStrokeJoin(paint.JoinBevel) }, 0, recordSize[u32Op](0)},
		{"SetColor", func(b *Builder) { b.SetColor(paint.Hex("#ff0000")) }, 0, recordSize[u32Op](0)},
		{"SetBlendMode", func(b *Builder) { b.SetBlendMode(paint.BlendSrc) }, 0, recordSize[u32Op](0)},
		{"SetBlender", func(b *Builder) {
			b.SetBlender(&paint.ArithmeticBlender{K1: 0.5, K2: 0.5})
		}, 0, recordSize[refOp](0)},
		{"SetColorSource", func(b *Builder) {
			g := paint.NewLinearGradient(geom.Pt(0, 0), geom.Pt(10, 0))
			g.AddColorStop(0, paint.Black).AddColorStop(1, paint.White)
			b.SetColorSource(g)
		}, 0, recordSize[refOp](0)},
		{"SetColorFilter", func(b *Builder) {
			b.SetColorFilter(&paint.BlendColorFilter{Color: paint.Black, Mode: paint.BlendSrcIn})
		}, 0, recordSize[refOp](0)},
		{"SetImageFilter", func(b *Builder) {
			b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 2, SigmaY: 2})
		}, 0, recordSize[refOp](0)},
		{"SetMaskFilter", func(b *Builder) {
			b.SetMaskFilter(&paint.BlurMaskFilter{Sigma: 3})
		}, 0, recordSize[refOp](0)},
		{"SetPathEffect", func(b *Builder) { b.SetPathEffect(paint.NewDash(4, 2, 0)) }, 0, recordSize[refOp](0)},

		{"SaveTranslateRestore", func(b *Builder) {
			b.Save()
			b.Translate(10, 10)
			b.Restore()
		}, 3, recordSize[saveOp](0) + recordSize[xyOp](0) + recordSize[emptyOp](0)},
		{"SaveLayer", func(b *Builder) {
			b.SaveLayer(nil, 0, nil)
			b.Restore()
		}, 2, recordSize[saveLayerOp](0) + recordSize[emptyOp](0)},
		{"SaveLayerBoundsBackdrop", func(b *Builder) {
			b.SaveLayer(&bounds, RendersWithAttributes, &paint.BlurImageFilter{SigmaX: 4, SigmaY: 4})
			b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
			b.Restore()
		}, 3, recordSize[saveLayerOp](0) + recordSize[rectOp](0) + recordSize[emptyOp](0)},

		{"Translate", func(b *Builder) { b.Translate(5, 5) }, 1, recordSize[xyOp](0)},
		{"Scale", func(b *Builder) { b.Scale(2, 3) }, 1, recordSize[xyOp](0)},
		{"Rotate", func(b *Builder) { b.Rotate(45) }, 1, recordSize[f32Op](0)},
		{"Skew", func(b *Builder) { b.Skew(0.5, 0) }, 1, recordSize[xyOp](0)},
		{"Transform2DAffine", func(b *Builder) { b.Transform2DAffine(2, 0, 5, 0, 2, 5) }, 1, recordSize[affineOp](0)},
		{"TransformFullPerspective", func(b *Builder) {
			b.TransformFullPerspective(perspective)
		}, 1, recordSize[perspectiveOp](0)},
		{"TransformReset", func(b *Builder) {
			b.Translate(5, 5)
			b.TransformReset()
		}, 2, recordSize[xyOp](0) + recordSize[emptyOp](0)},

		{"ClipRect", func(b *Builder) {
			b.ClipRect(geom.MakeLTRB(0, 0, 10, 10), ClipIntersect, true)
		}, 1, recordSize[clipRectOp](0)},
		{"ClipOval", func(b *Builder) {
			b.ClipOval(geom.MakeLTRB(0, 0, 10, 10), ClipDifference, false)
		}, 1, recordSize[clipRectOp](0)},
		{"ClipRRect", func(b *Builder) { b.ClipRRect(rr, ClipIntersect, true) }, 1, recordSize[clipRRectOp](0)},
		{"ClipPath", func(b *Builder) { b.ClipPath(testTriangle(), ClipIntersect, true) }, 1, recordSize[clipPathOp](0)},

		{"DrawPaint", func(b *Builder) { b.DrawPaint() }, 1, recordSize[emptyOp](0)},
		{"DrawColor", func(b *Builder) { b.DrawColor(paint.White, paint.BlendSrcOver) }, 1, recordSize[drawColorOp](0)},
		{"DrawLine", func(b *Builder) { b.DrawLine(geom.Pt(0, 0), geom.Pt(10, 10)) }, 1, recordSize[lineOp](0)},
		{"DrawRect", func(b *Builder) { b.DrawRect(geom.MakeLTRB(0, 0, 10, 10)) }, 1, recordSize[rectOp](0)},
		{"DrawOval", func(b *Builder) { b.DrawOval(geom.MakeLTRB(0, 0, 10, 20)) }, 1, recordSize[rectOp](0)},
		{"DrawCircle", func(b *Builder) { b.DrawCircle(geom.Pt(5, 5), 5) }, 1, recordSize[circleOp](0)},
		{"DrawRRect", func(b *Builder) { b.DrawRRect(rr) }, 1, recordSize[rrectOp](0)},
		{"DrawDRRect", func(b *Builder) { b.DrawDRRect(rr, inner) }, 1, recordSize[drrectOp](0)},
		{"DrawPath", func(b *Builder) { b.DrawPath(testTriangle()) }, 1, recordSize[pathOp](0)},
		{"DrawArc", func(b *Builder) {
			b.DrawArc(geom.MakeLTRB(0, 0, 10, 10), 0, 90, true)
		}, 1, recordSize[arcOp](0)},
		{"DrawPoints", func(b *Builder) {
			b.DrawPoints(PolygonMode, []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}})
		}, 1, recordSize[pointsOp](3 * sizeOf[geom.Point]())},
		{"DrawVertices", func(b *Builder) {
			v := NewVertices(Triangles, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}, nil, nil, nil)
			b.DrawVertices(v, paint.BlendModulate)
		}, 1, recordSize[verticesOp](0)},
		{"DrawImage", func(b *Builder) {
			b.DrawImage(img, geom.Pt(1, 1), paint.SamplingLinear, false)
		}, 1, recordSize[imageOp](0)},
		{"DrawImageWithAttr", func(b *Builder) {
			b.DrawImage(img, geom.Pt(1, 1), paint.SamplingNearest, true)
		}, 1, recordSize[imageOp](0)},
		{"DrawImageRect", func(b *Builder) {
			b.DrawImageRect(img, geom.MakeWH(16, 16), geom.MakeLTRB(0, 0, 32, 32),
				paint.SamplingLinear, true, ConstraintStrict)
		}, 1, recordSize[imageRectOp](0)},
		{"DrawImageNine", func(b *Builder) {
			b.DrawImageNine(img, geom.MakeIRectLTRB(4, 4, 12, 12), geom.MakeLTRB(0, 0, 64, 64),
				paint.SamplingNearest, false)
		}, 1, recordSize[imageNineOp](0)},
		{"DrawImageLattice", func(b *Builder) {
			lattice := Lattice{XDivs: []int32{4, 12}, YDivs: []int32{4, 12}}
			b.DrawImageLattice(img, lattice, geom.MakeLTRB(0, 0, 64, 64), paint.SamplingNearest, true)
		}, 1, recordSize[latticeOp](4 * sizeOf[int32]())},
		{"DrawAtlas", func(b *Builder) {
			xforms := []geom.RSTransform{{SCos: 1}, {SCos: 1, TX: 20}}
			tex := []geom.Rect{geom.MakeWH(8, 8), geom.MakeLTRB(8, 0, 16, 8)}
			b.DrawAtlas(img, xforms, tex, nil, paint.BlendModulate, paint.SamplingLinear, nil, false)
		}, 1, recordSize[atlasOp](2 * (sizeOf[geom.RSTransform]() + sizeOf[geom.Rect]()))},
		{"DrawAtlasCulled", func(b *Builder) {
			xforms := []geom.RSTransform{{SCos: 1}}
			tex := []geom.Rect{geom.MakeWH(8, 8)}
			colors := []paint.Color{paint.White}
			cull := geom.MakeLTRB(0, 0, 100, 100)
			b.DrawAtlas(img, xforms, tex, colors, paint.BlendModulate, paint.SamplingLinear, &cull, true)
		}, 1, recordSize[atlasCulledOp](sizeOf[geom.RSTransform]() + sizeOf[geom.Rect]() + sizeOf[paint.Color]())},
		{"DrawDisplayList", func(b *Builder) { b.DrawDisplayList(testSubList(), 0.5) }, 1, recordSize[displayListOp](0)},
		{"DrawTextBlob", func(b *Builder) { b.DrawTextBlob(blob, 10, 20) }, 1, recordSize[textBlobOp](0)},
		{"DrawShadow", func(b *Builder) {
			b.DrawShadow(testTriangle(), paint.Black, 4, false, 1)
		}, 1, recordSize[shadowOp](0)},
		{"DrawShadowTransparentOccluder", func(b *Builder) {
			b.DrawShadow(testTriangle(), paint.Black, 4, true, 2)
		}, 1, recordSize[shadowOp](0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			dl := b.Build()

			if got := dl.OpCount(false); got != tt.ops {
				t.Errorf("OpCount(false) = %d, want %d", got, tt.ops)
			}
			if got := dl.Bytes(false); got != tt.bytes {
				t.Errorf("Bytes(false) = %d, want %d", got, tt.bytes)
			}
			if got := replay(dl); !dl.Equals(got) {
				t.Errorf("replayed list is not equal to the original")
			}
		})
	}
}

func TestEmptyList(t *testing.T) {
	dl := NewBuilder().Build()
	if dl.Bytes(false) != 0 || dl.OpCount(false) != 0 || dl.RecordCount() != 0 {
		t.Errorf("empty list: bytes %d, ops %d, records %d", dl.Bytes(false), dl.OpCount(false), dl.RecordCount())
	}
	if !dl.Bounds().IsEmpty() {
		t.Errorf("Bounds() = %v, want empty", dl.Bounds())
	}
	if !dl.CanApplyGroupOpacity() {
		t.Error("empty list should accept group opacity")
	}
	if dl.ModifiesTransparentBlack() {
		t.Error("empty list should not modify transparent black")
	}
	if !dl.IsUIThreadSafe() {
		t.Error("empty list should be UI thread safe")
	}
}

func TestNoOpTransformsElided(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{"Rotate", func(b *Builder) {
			b.Rotate(0)
			b.Rotate(360)
			b.Rotate(720)
			b.Rotate(-360)
		}},
		{"Translate", func(b *Builder) { b.Translate(0, 0) }},
		{"Scale", func(b *Builder) { b.Scale(1, 1) }},
		{"Skew", func(b *Builder) { b.Skew(0, 0) }},
		{"Transform2DAffine", func(b *Builder) { b.Transform2DAffine(1, 0, 0, 0, 1, 0) }},
		{"TransformFullPerspective", func(b *Builder) { b.TransformFullPerspective(geom.Identity()) }},
		{"TransformReset", func(b *Builder) { b.TransformReset() }},
		{"NonFinite", func(b *Builder) {
			nan := float32(math.NaN())
			b.Translate(nan, 1)
			b.Scale(float32(math.Inf(1)), 1)
			b.Rotate(nan)
		}},
		{"InsideSave", func(b *Builder) {
			b.Save()
			b.Rotate(360)
			b.Translate(0, 0)
			b.Restore()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			dl := b.Build()
			if dl.Bytes(false) != 0 {
				t.Errorf("Bytes(false) = %d, want 0", dl.Bytes(false))
			}
			if dl.OpCount(false) != 0 {
				t.Errorf("OpCount(false) = %d, want 0", dl.OpCount(false))
			}
		})
	}
}

func TestAffineReducesToTranslate(t *testing.T) {
	b := NewBuilder()
	b.Transform2DAffine(1, 0, 7, 0, 1, 9)
	m := geom.Translate(3, 4)
	b.TransformFullPerspective(m)
	dl := b.Build()

	require.Equal(t, 2, dl.RecordCount())
	require.Equal(t, OpTranslate, dl.OpType(0))
	require.Equal(t, OpTranslate, dl.OpType(1))
}

func TestDeferredSaveCollapses(t *testing.T) {
	draw := func(b *Builder) { b.DrawRect(geom.MakeLTRB(10, 10, 20, 20)) }

	plain := NewBuilder()
	draw(plain)
	want := plain.Build()

	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{"Single", func(b *Builder) {
			b.Save()
			draw(b)
			b.Restore()
		}},
		{"Nested", func(b *Builder) {
			b.Save()
			b.Save()
			draw(b)
			b.Restore()
			b.Restore()
		}},
		{"AttributeOnly", func(b *Builder) {
			b.Save()
			b.Restore()
			draw(b)
		}},
		{"UnmatchedRestore", func(b *Builder) {
			b.Restore()
			draw(b)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			if got := b.Build(); !got.Equals(want) {
				t.Errorf("list with empty saves differs: %d records, want %d", got.RecordCount(), want.RecordCount())
			}
		})
	}
}

func TestNestedSaveMaterializesInnermost(t *testing.T) {
	b := NewBuilder()
	b.Save()
	b.Save()
	b.Translate(10, 10)
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	b.Restore()
	b.Restore()
	dl := b.Build()

	want := []OpType{OpSave, OpTranslate, OpDrawRect, OpRestore}
	require.Equal(t, len(want), dl.RecordCount())
	for i, op := range want {
		require.Equalf(t, op, dl.OpType(i), "record %d", i)
	}
	require.Equal(t, geom.MakeLTRB(10, 10, 20, 20), dl.Bounds())
}

func TestSaveCount(t *testing.T) {
	b := NewBuilder()
	if got := b.GetSaveCount(); got != 1 {
		t.Errorf("GetSaveCount() = %d, want 1", got)
	}
	b.Save()
	b.SaveLayer(nil, 0, nil)
	b.Save()
	if got := b.GetSaveCount(); got != 4 {
		t.Errorf("GetSaveCount() = %d, want 4", got)
	}
	b.RestoreToCount(2)
	if got := b.GetSaveCount(); got != 2 {
		t.Errorf("GetSaveCount() after RestoreToCount(2) = %d, want 2", got)
	}
	b.RestoreToCount(0)
	if got := b.GetSaveCount(); got != 1 {
		t.Errorf("GetSaveCount() after RestoreToCount(0) = %d, want 1", got)
	}
}

func TestBuildClosesOpenSaves(t *testing.T) {
	b := NewBuilder()
	b.SaveLayer(nil, 0, nil)
	b.Save()
	b.Translate(1, 1)
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	dl := b.Build()

	n := dl.RecordCount()
	require.Equal(t, OpRestore, dl.OpType(n-1))
	require.Equal(t, OpRestore, dl.OpType(n-2))
	require.Equal(t, 1, b.GetSaveCount(), "builder should be reset after Build")
}

func TestAttributeSettersSkipUnchanged(t *testing.T) {
	b := NewBuilder()
	b.SetColor(paint.Black)
	b.SetBlendMode(paint.BlendSrcOver)
	b.SetStrokeMiter(paint.DefaultStrokeMiter)
	b.SetColorSource(nil)
	b.SetBlender(nil)
	b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 1, SigmaY: 1})
	b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 1, SigmaY: 1})
	dl := b.Build()

	if got := dl.RecordCount(); got != 1 {
		t.Errorf("RecordCount() = %d, want 1", got)
	}
}

func TestSetBlenderReducesToBlendMode(t *testing.T) {
	b := NewBuilder()
	b.SetBlender(&paint.ModeBlender{Mode: paint.BlendMultiply})
	if got := b.Attributes(); got.Blender != nil || got.BlendMode != paint.BlendMultiply {
		t.Errorf("Attributes() = blender %v mode %v, want nil and Multiply", got.Blender, got.BlendMode)
	}
	dl := b.Build()
	if got := dl.OpType(0); got != OpSetBlendMode {
		t.Errorf("OpType(0) = %v, want SetBlendMode", got)
	}
}

func TestGroupOpacity(t *testing.T) {
	rect := func(b *Builder) { b.DrawRect(geom.MakeLTRB(0, 0, 10, 10)) }

	tests := []struct {
		name  string
		build func(b *Builder)
		want  bool
	}{
		{"Empty", func(*Builder) {}, true},
		{"OneRect", rect, true},
		{"TwoRects", func(b *Builder) { rect(b); rect(b) }, false},
		{"SrcBlend", func(b *Builder) {
			b.SetBlendMode(paint.BlendSrc)
			rect(b)
		}, false},
		{"BlendRestored", func(b *Builder) {
			b.SetBlendMode(paint.BlendSrc)
			b.SetBlendMode(paint.BlendSrcOver)
			rect(b)
		}, true},
		{"ColorFilter", func(b *Builder) {
			b.SetColorFilter(&paint.BlendColorFilter{Color: paint.Red, Mode: paint.BlendSrcOver})
			rect(b)
		}, false},
		{"HairlineStroke", func(b *Builder) {
			b.SetStyle(paint.StyleStroke)
			rect(b)
		}, false},
		{"WideStroke", func(b *Builder) {
			b.SetStyle(paint.StyleStroke)
			b.SetStrokeWidth(2)
			rect(b)
		}, true},
		{"Points", func(b *Builder) {
			b.DrawPoints(PointsMode, []geom.Point{{X: 1, Y: 1}})
		}, false},
		{"DrawColorSrcOver", func(b *Builder) { b.DrawColor(paint.White, paint.BlendSrcOver) }, true},
		{"DrawColorSrc", func(b *Builder) { b.DrawColor(paint.White, paint.BlendSrc) }, false},
		{"SaveOneRect", func(b *Builder) {
			b.Save()
			b.Translate(1, 1)
			rect(b)
			b.Restore()
		}, true},
		{"SaveThenRect", func(b *Builder) {
			b.Save()
			b.Translate(1, 1)
			rect(b)
			b.Restore()
			rect(b)
		}, false},
		{"LayerWithTwoRects", func(b *Builder) {
			b.SaveLayer(nil, 0, nil)
			rect(b)
			rect(b)
			b.Restore()
		}, true},
		{"CompatibleSubList", func(b *Builder) { b.DrawDisplayList(testSubList(), 1) }, true},
		{"IncompatibleSubList", func(b *Builder) {
			sb := NewBuilder()
			rect(sb)
			rect(sb)
			b.DrawDisplayList(sb.Build(), 1)
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			if got := b.Build().CanApplyGroupOpacity(); got != tt.want {
				t.Errorf("CanApplyGroupOpacity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupOpacityStaysPoisoned(t *testing.T) {
	b := NewBuilder()
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	b.SetBlendMode(paint.BlendSrc)
	b.DrawRect(geom.MakeLTRB(20, 20, 30, 30))
	b.SetBlendMode(paint.BlendSrcOver)
	b.Save()
	b.Restore()
	if b.Build().CanApplyGroupOpacity() {
		t.Error("CanApplyGroupOpacity() = true after an incompatible op")
	}
}

// layerOptions records the options of every SaveLayer it sees.
type layerOptions struct {
	NopDispatcher
	options []SaveLayerOptions
	bounds  []*geom.Rect
}

func (l *layerOptions) SaveLayer(bounds *geom.Rect, options SaveLayerOptions, _ paint.ImageFilter) {
	l.options = append(l.options, options)
	l.bounds = append(l.bounds, bounds)
}

func TestSaveLayerComputedOptions(t *testing.T) {
	clipTo := geom.MakeLTRB(0, 0, 20, 20)

	tests := []struct {
		name  string
		build func(b *Builder)
		want  SaveLayerOptions
	}{
		{"OneRect", func(b *Builder) {
			b.SaveLayer(nil, 0, nil)
			b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
			b.Restore()
		}, CanDistributeOpacity},
		{"TwoRects", func(b *Builder) {
			b.SaveLayer(nil, RendersWithAttributes, nil)
			b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
			b.DrawRect(geom.MakeLTRB(5, 5, 15, 15))
			b.Restore()
		}, RendersWithAttributes},
		{"CallerBoundsContainContent", func(b *Builder) {
			b.SaveLayer(&clipTo, 0, nil)
			b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
			b.Restore()
		}, CanDistributeOpacity | BoundsFromCaller},
		{"CallerBoundsClipContent", func(b *Builder) {
			b.SaveLayer(&clipTo, 0, nil)
			b.DrawRect(geom.MakeLTRB(10, 10, 40, 40))
			b.Restore()
		}, CanDistributeOpacity | BoundsFromCaller | ContentIsClipped},
		{"Flood", func(b *Builder) {
			b.SaveLayer(nil, 0, nil)
			b.DrawPaint()
			b.Restore()
		}, CanDistributeOpacity | ContentIsUnbounded},
		{"FloodWithCallerBounds", func(b *Builder) {
			b.SaveLayer(&clipTo, 0, nil)
			b.DrawColor(paint.White, paint.BlendSrc)
			b.Restore()
		}, BoundsFromCaller | ContentIsClipped | ContentIsUnbounded},
		{"CallerBitsReplaced", func(b *Builder) {
			b.SaveLayer(nil, ContentIsClipped|BoundsFromCaller, nil)
			b.Restore()
		}, CanDistributeOpacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			rec := &layerOptions{}
			b.Build().Dispatch(rec)
			require.Len(t, rec.options, 1)
			require.Equal(t, tt.want, rec.options[0])
			require.Equal(t, tt.want.BoundsFromCaller(), rec.bounds[0] != nil)
		})
	}
}

func TestSaveLayerInvertedBounds(t *testing.T) {
	inverted := geom.Rect{Left: 100, Top: 100, Right: 0, Bottom: 0}
	b := NewBuilder()
	b.SaveLayer(&inverted, 0, nil)
	if got, want := b.GetDestinationClipBounds(), geom.MakeLTRB(0, 0, 100, 100); got != want {
		t.Errorf("GetDestinationClipBounds() in layer = %v, want %v", got, want)
	}
	b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
	b.Restore()
	dl := b.Build()

	if got := dl.RecordCount(); got != 3 {
		t.Errorf("RecordCount() = %d, want 3", got)
	}
	if got, want := dl.Bounds(), geom.MakeLTRB(10, 10, 20, 20); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestBoundsTransformedAndClipped(t *testing.T) {
	b := NewBuilder(WithCullRect(geom.MakeLTRB(0, 0, 100, 100)))
	b.Save()
	b.Translate(10, 20)
	b.Scale(2, 2)
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	b.Restore()
	b.ClipRect(geom.MakeLTRB(0, 0, 50, 50), ClipIntersect, true)
	b.DrawRect(geom.MakeLTRB(40, 40, 200, 200))
	dl := b.Build()

	if got, want := dl.Bounds(), geom.MakeLTRB(10, 20, 50, 50); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestStrokeBoundsPadding(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
		want  geom.Rect
	}{
		{"Fill", func(b *Builder) {
			b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
		}, geom.MakeLTRB(10, 10, 20, 20)},
		{"BevelStroke", func(b *Builder) {
			b.SetStyle(paint.StyleStroke)
			b.SetStrokeWidth(4)
			b.SetStrokeJoin(paint.JoinBevel)
			b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
		}, geom.MakeLTRB(8, 8, 22, 22)},
		{"Hairline", func(b *Builder) {
			b.SetStyle(paint.StyleStroke)
			b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
		}, geom.MakeLTRB(9, 9, 21, 21)},
		{"HorizontalLine", func(b *Builder) {
			b.SetStrokeWidth(2)
			b.DrawLine(geom.Pt(10, 10), geom.Pt(20, 10))
		}, geom.MakeLTRB(9, 9, 21, 11)},
		{"SinglePoint", func(b *Builder) {
			b.SetStrokeWidth(6)
			b.DrawPoints(PointsMode, []geom.Point{{X: 10, Y: 10}})
		}, geom.MakeLTRB(7, 7, 13, 13)},
		{"MaskFilter", func(b *Builder) {
			b.SetMaskFilter(&paint.BlurMaskFilter{Sigma: 1})
			b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
		}, geom.MakeLTRB(7, 7, 23, 23)},
		{"ImageFilter", func(b *Builder) {
			b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 1, SigmaY: 2})
			b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
		}, geom.MakeLTRB(7, 4, 23, 26)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			if got := b.Build().Bounds(); got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnboundedContentUsesCullRect(t *testing.T) {
	cull := geom.MakeLTRB(0, 0, 100, 100)

	t.Run("FloodInLayer", func(t *testing.T) {
		b := NewBuilder(WithCullRect(cull))
		b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
		b.SaveLayer(nil, 0, nil)
		b.DrawColor(paint.Hex("#ff0000"), paint.BlendSrc)
		b.Restore()
		dl := b.Build()
		if got := dl.Bounds(); got != cull {
			t.Errorf("Bounds() = %v, want %v", got, cull)
		}
		if dl.ModifiesTransparentBlack() {
			t.Error("a layer should contain the transparent black damage")
		}
	})

	t.Run("ClearAtRoot", func(t *testing.T) {
		b := NewBuilder(WithCullRect(cull))
		b.SetBlendMode(paint.BlendClear)
		b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
		dl := b.Build()
		if got := dl.Bounds(); got != cull {
			t.Errorf("Bounds() = %v, want %v", got, cull)
		}
		if !dl.ModifiesTransparentBlack() {
			t.Error("ModifiesTransparentBlack() = false, want true")
		}
	})

	t.Run("InversePath", func(t *testing.T) {
		b := NewBuilder(WithCullRect(cull))
		b.DrawPath(testTriangle().SetInverseFill(true))
		if got := b.Build().Bounds(); got != cull {
			t.Errorf("Bounds() = %v, want %v", got, cull)
		}
	})
}

func TestNaNCullRecordsNothing(t *testing.T) {
	nan := float32(math.NaN())
	b := NewBuilder(WithCullRect(geom.MakeLTRB(0, 0, nan, 100)))
	b.DrawRect(geom.MakeLTRB(0, 0, 10, 10))
	b.DrawPaint()
	dl := b.Build()

	if dl.OpCount(false) != 0 {
		t.Errorf("OpCount(false) = %d, want 0", dl.OpCount(false))
	}
	if !dl.Bounds().IsEmpty() {
		t.Errorf("Bounds() = %v, want empty", dl.Bounds())
	}
}

func TestCulledDrawsNotRecorded(t *testing.T) {
	b := NewBuilder(WithCullRect(geom.MakeLTRB(0, 0, 100, 100)))
	b.DrawRect(geom.MakeLTRB(200, 200, 300, 300))
	b.DrawRect(geom.MakeLTRB(10, 10, 20, 20))
	b.ClipRect(geom.MakeLTRB(0, 0, 5, 5), ClipIntersect, true)
	b.DrawCircle(geom.Pt(50, 50), 10)
	b.ClipRect(geom.MakeLTRB(50, 50, 60, 60), ClipIntersect, true)
	b.DrawPaint()
	dl := b.Build()

	if got := dl.OpCount(false); got != 3 {
		t.Errorf("OpCount(false) = %d, want 3 (one rect and two clips)", got)
	}
}

func TestQueries(t *testing.T) {
	b := NewBuilder(WithCullRect(geom.MakeLTRB(0, 0, 100, 100)))
	b.Translate(10, 10)
	b.ClipRect(geom.MakeLTRB(0, 0, 20, 20), ClipIntersect, true)

	require.Equal(t, geom.Translate(10, 10), b.GetMatrix())
	require.Equal(t, geom.MakeLTRB(10, 10, 30, 30), b.GetDestinationClipBounds())
	require.Equal(t, geom.MakeLTRB(0, 0, 20, 20), b.GetLocalClipBounds())
	require.True(t, b.QuickReject(geom.MakeLTRB(30, 30, 40, 40)))
	require.False(t, b.QuickReject(geom.MakeLTRB(5, 5, 10, 10)))
}

func TestClipReductions(t *testing.T) {
	r := geom.MakeLTRB(0, 0, 10, 10)
	tests := []struct {
		name  string
		build func(b *Builder)
		want  OpType
	}{
		{"RRectAsRect", func(b *Builder) { b.ClipRRect(geom.MakeRRectRect(r), ClipIntersect, true) }, OpClipRect},
		{"RRectAsOval", func(b *Builder) { b.ClipRRect(geom.MakeRRectOval(r), ClipIntersect, true) }, OpClipOval},
		{"PathAsRect", func(b *Builder) { b.ClipPath(geom.NewRectPath(r), ClipIntersect, true) }, OpClipRect},
		{"PathAsOval", func(b *Builder) { b.ClipPath(geom.NewOvalPath(r), ClipIntersect, true) }, OpClipOval},
		{"InversePathKept", func(b *Builder) {
			b.ClipPath(geom.NewRectPath(r).SetInverseFill(true), ClipIntersect, true)
		}, OpClipPath},
		{"DrawRRectAsRect", func(b *Builder) { b.DrawRRect(geom.MakeRRectRect(r)) }, OpDrawRect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			dl := b.Build()
			if dl.RecordCount() != 1 {
				t.Fatalf("RecordCount() = %d, want 1", dl.RecordCount())
			}
			if got := dl.OpType(0); got != tt.want {
				t.Errorf("OpType(0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathsAreCopied(t *testing.T) {
	p := testTriangle()
	b := NewBuilder()
	b.DrawPath(p)
	dl := b.Build()
	p.LineTo(100, 100)

	var got *geom.Path
	dl.DispatchOne(&pathCapture{fn: func(q *geom.Path) { got = q }}, 0)
	if got == p {
		t.Fatal("recorded path aliases the caller's path")
	}
	if !got.Equal(testTriangle()) {
		t.Error("recorded path changed after the caller modified its path")
	}
}

type pathCapture struct {
	NopDispatcher
	fn func(*geom.Path)
}

func (c *pathCapture) DrawPath(p *geom.Path) { c.fn(p) }

func TestNestedCounts(t *testing.T) {
	sub := testSubList()
	b := NewBuilder()
	b.DrawDisplayList(sub, 1)
	b.DrawDisplayList(sub, 0.5)
	dl := b.Build()

	require.Equal(t, 2, dl.OpCount(false))
	require.Equal(t, 2+2*sub.OpCount(true), dl.OpCount(true))
	require.Equal(t, dl.Bytes(false)+2*sub.Bytes(true), dl.Bytes(true))
	require.Equal(t, 2+2*sub.TotalDepth(), dl.TotalDepth())
}

type threadBoundImage struct {
	paint.Image
}

func (threadBoundImage) IsUIThreadSafe() bool { return false }

func TestUIThreadSafety(t *testing.T) {
	b := NewBuilder()
	b.DrawImage(threadBoundImage{testImage(4, 4)}, geom.Pt(0, 0), paint.SamplingNearest, false)
	unsafeList := b.Build()
	require.False(t, unsafeList.IsUIThreadSafe())

	b.DrawDisplayList(unsafeList, 1)
	require.False(t, b.Build().IsUIThreadSafe(), "thread-bound sub-list should propagate")

	b.DrawImage(testImage(4, 4), geom.Pt(0, 0), paint.SamplingNearest, false)
	require.True(t, b.Build().IsUIThreadSafe())
}

func TestUniqueIDs(t *testing.T) {
	b := NewBuilder()
	a, c := b.Build(), b.Build()
	if a.UniqueID() == c.UniqueID() {
		t.Errorf("UniqueID() = %d for two lists", a.UniqueID())
	}
}

func TestOversizedPointsSplit(t *testing.T) {
	orig := recordLimit
	t.Cleanup(func() { recordLimit = orig })
	// Room for four points per record.
	recordLimit = recordSize[pointsOp](4 * sizeOf[geom.Point]())

	pts := make([]geom.Point, 10)
	for i := range pts {
		pts[i] = geom.Pt(float32(i), float32(i))
	}

	tests := []struct {
		mode   PointMode
		counts []int
	}{
		{PointsMode, []int{4, 4, 2}},
		{LinesMode, []int{4, 4, 2}},
		{PolygonMode, []int{4, 4, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			b := NewBuilder()
			b.DrawPoints(tt.mode, pts)
			dl := b.Build()

			var counts []int
			dl.Dispatch(&pointCounter{fn: func(n int) { counts = append(counts, n) }})
			require.Equal(t, tt.counts, counts)
		})
	}
}

type pointCounter struct {
	NopDispatcher
	fn func(int)
}

func (c *pointCounter) DrawPoints(_ PointMode, pts []geom.Point) { c.fn(len(pts)) }

func TestOversizedRecordPanics(t *testing.T) {
	b := NewBuilder()
	divs := make([]int32, maxRecordSize/4)
	require.PanicsWithValue(t, "displaylist: record too large", func() {
		b.DrawImageLattice(testImage(8, 8), Lattice{XDivs: divs}, geom.MakeWH(8, 8), paint.SamplingNearest, false)
	})
}
