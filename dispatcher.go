package displaylist

import (
	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

// Dispatcher receives the ops of a display list during replay, one call
// per record, with the arguments the builder was called with.
//
// Slices passed to a Dispatcher (points, dividers, atlas arrays) alias
// the list storage. They must not be modified and must be copied if
// retained past the call.
//
// Builder implements Dispatcher, so replaying a list into a fresh Builder
// reproduces an equal list. Backends that only care about some groups
// of calls can embed the Ignore*DispatchHelper types.
type Dispatcher interface {
	// Attribute methods

	SetAntiAlias(aa bool)
	SetDither(dither bool)
	SetInvertColors(invert bool)
	SetStyle(style paint.Style)
	SetStrokeWidth(width float32)
	SetStrokeMiter(limit float32)
	SetStrokeCap(c paint.Cap)
	SetStrokeJoin(j paint.Join)
	SetColor(c paint.Color)
	SetBlendMode(mode paint.BlendMode)
	SetBlender(b paint.Blender)
	SetColorSource(s paint.ColorSource)
	SetColorFilter(f paint.ColorFilter)
	SetImageFilter(f paint.ImageFilter)
	SetMaskFilter(f paint.MaskFilter)
	SetPathEffect(e paint.PathEffect)

	// Save stack methods

	Save()
	// SaveLayer starts an offscreen layer. bounds is nil unless the
	// recording supplied them; backdrop is nil for plain layers.
	SaveLayer(bounds *geom.Rect, options SaveLayerOptions, backdrop paint.ImageFilter)
	Restore()

	// Transform methods

	Translate(tx, ty float32)
	Scale(sx, sy float32)
	Rotate(degrees float32)
	Skew(sx, sy float32)
	Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float32)
	TransformFullPerspective(m geom.Matrix)
	TransformReset()

	// Clip methods

	ClipRect(r geom.Rect, op ClipOp, aa bool)
	ClipOval(r geom.Rect, op ClipOp, aa bool)
	ClipRRect(rr geom.RRect, op ClipOp, aa bool)
	ClipPath(p *geom.Path, op ClipOp, aa bool)

	// Draw methods

	DrawPaint()
	DrawColor(c paint.Color, mode paint.BlendMode)
	DrawLine(p0, p1 geom.Point)
	DrawRect(r geom.Rect)
	DrawOval(r geom.Rect)
	DrawCircle(center geom.Point, radius float32)
	DrawRRect(rr geom.RRect)
	DrawDRRect(outer, inner geom.RRect)
	DrawPath(p *geom.Path)
	DrawArc(bounds geom.Rect, start, sweep float32, useCenter bool)
	// pts is read-only; it aliases the list.
	DrawPoints(mode PointMode, pts []geom.Point)
	DrawVertices(v *Vertices, mode paint.BlendMode)
	DrawImage(img paint.Image, pt geom.Point, sampling paint.Sampling, withAttr bool)
	DrawImageRect(img paint.Image, src, dst geom.Rect, sampling paint.Sampling, withAttr bool, constraint SrcRectConstraint)
	DrawImageNine(img paint.Image, center geom.IRect, dst geom.Rect, sampling paint.Sampling, withAttr bool)
	// The lattice dividers alias the list and are read-only.
	DrawImageLattice(img paint.Image, lattice Lattice, dst geom.Rect, sampling paint.Sampling, withAttr bool)
	// xforms, tex and colors alias the list and are read-only.
	DrawAtlas(atlas paint.Image, xforms []geom.RSTransform, tex []geom.Rect, colors []paint.Color,
		mode paint.BlendMode, sampling paint.Sampling, cull *geom.Rect, withAttr bool)
	DrawDisplayList(dl *DisplayList, opacity float32)
	DrawTextBlob(blob *text.Blob, x, y float32)
	DrawShadow(path *geom.Path, color paint.Color, elevation float32, transparentOccluder bool, dpr float32)
}

// IgnoreAttributeDispatchHelper implements the attribute methods of
// Dispatcher as no-ops.
type IgnoreAttributeDispatchHelper struct{}

func (IgnoreAttributeDispatchHelper) SetAntiAlias(bool)               {}
func (IgnoreAttributeDispatchHelper) SetDither(bool)                  {}
func (IgnoreAttributeDispatchHelper) SetInvertColors(bool)            {}
func (IgnoreAttributeDispatchHelper) SetStyle(paint.Style)            {}
func (IgnoreAttributeDispatchHelper) SetStrokeWidth(float32)          {}
func (IgnoreAttributeDispatchHelper) SetStrokeMiter(float32)          {}
func (IgnoreAttributeDispatchHelper) SetStrokeCap(paint.Cap)          {}
func (IgnoreAttributeDispatchHelper) SetStrokeJoin(paint.Join)        {}
func (IgnoreAttributeDispatchHelper) SetColor(paint.Color)            {}
func (IgnoreAttributeDispatchHelper) SetBlendMode(paint.BlendMode)    {}
func (IgnoreAttributeDispatchHelper) SetBlender(paint.Blender)        {}
func (IgnoreAttributeDispatchHelper) SetColorSource(paint.ColorSource) {}
func (IgnoreAttributeDispatchHelper) SetColorFilter(paint.ColorFilter) {}
func (IgnoreAttributeDispatchHelper) SetImageFilter(paint.ImageFilter) {}
func (IgnoreAttributeDispatchHelper) SetMaskFilter(paint.MaskFilter)   {}
func (IgnoreAttributeDispatchHelper) SetPathEffect(paint.PathEffect)   {}

// IgnoreTransformDispatchHelper implements the transform methods of
// Dispatcher as no-ops.
type IgnoreTransformDispatchHelper struct{}

func (IgnoreTransformDispatchHelper) Translate(float32, float32) {}
func (IgnoreTransformDispatchHelper) Scale(float32, float32)     {}
func (IgnoreTransformDispatchHelper) Rotate(float32)             {}
func (IgnoreTransformDispatchHelper) Skew(float32, float32)      {}
func (IgnoreTransformDispatchHelper) Transform2DAffine(float32, float32, float32, float32, float32, float32) {
}
func (IgnoreTransformDispatchHelper) TransformFullPerspective(geom.Matrix) {}
func (IgnoreTransformDispatchHelper) TransformReset()                      {}

// IgnoreClipDispatchHelper implements the clip methods of Dispatcher as
// no-ops.
type IgnoreClipDispatchHelper struct{}

func (IgnoreClipDispatchHelper) ClipRect(geom.Rect, ClipOp, bool)   {}
func (IgnoreClipDispatchHelper) ClipOval(geom.Rect, ClipOp, bool)   {}
func (IgnoreClipDispatchHelper) ClipRRect(geom.RRect, ClipOp, bool) {}
func (IgnoreClipDispatchHelper) ClipPath(*geom.Path, ClipOp, bool)  {}

// IgnoreDrawDispatchHelper implements the save stack and draw methods of
// Dispatcher as no-ops.
type IgnoreDrawDispatchHelper struct{}

func (IgnoreDrawDispatchHelper) Save()                                                {}
func (IgnoreDrawDispatchHelper) SaveLayer(*geom.Rect, SaveLayerOptions, paint.ImageFilter) {}
func (IgnoreDrawDispatchHelper) Restore()                                             {}
func (IgnoreDrawDispatchHelper) DrawPaint()                                           {}
func (IgnoreDrawDispatchHelper) DrawColor(paint.Color, paint.BlendMode)               {}
func (IgnoreDrawDispatchHelper) DrawLine(geom.Point, geom.Point)                      {}
func (IgnoreDrawDispatchHelper) DrawRect(geom.Rect)                                   {}
func (IgnoreDrawDispatchHelper) DrawOval(geom.Rect)                                   {}
func (IgnoreDrawDispatchHelper) DrawCircle(geom.Point, float32)                       {}
func (IgnoreDrawDispatchHelper) DrawRRect(geom.RRect)                                 {}
func (IgnoreDrawDispatchHelper) DrawDRRect(geom.RRect, geom.RRect)                    {}
func (IgnoreDrawDispatchHelper) DrawPath(*geom.Path)                                  {}
func (IgnoreDrawDispatchHelper) DrawArc(geom.Rect, float32, float32, bool)            {}
func (IgnoreDrawDispatchHelper) DrawPoints(PointMode, []geom.Point)                   {}
func (IgnoreDrawDispatchHelper) DrawVertices(*Vertices, paint.BlendMode)              {}
func (IgnoreDrawDispatchHelper) DrawImage(paint.Image, geom.Point, paint.Sampling, bool) {
}
func (IgnoreDrawDispatchHelper) DrawImageRect(paint.Image, geom.Rect, geom.Rect, paint.Sampling, bool, SrcRectConstraint) {
}
func (IgnoreDrawDispatchHelper) DrawImageNine(paint.Image, geom.IRect, geom.Rect, paint.Sampling, bool) {
}
func (IgnoreDrawDispatchHelper) DrawImageLattice(paint.Image, Lattice, geom.Rect, paint.Sampling, bool) {
}
func (IgnoreDrawDispatchHelper) DrawAtlas(paint.Image, []geom.RSTransform, []geom.Rect, []paint.Color,
	paint.BlendMode, paint.Sampling, *geom.Rect, bool) {
}
func (IgnoreDrawDispatchHelper) DrawDisplayList(*DisplayList, float32)                     {}
func (IgnoreDrawDispatchHelper) DrawTextBlob(*text.Blob, float32, float32)                 {}
func (IgnoreDrawDispatchHelper) DrawShadow(*geom.Path, paint.Color, float32, bool, float32) {}

// NopDispatcher ignores every call. Embed it to implement only the
// methods of interest.
type NopDispatcher struct {
	IgnoreAttributeDispatchHelper
	IgnoreTransformDispatchHelper
	IgnoreClipDispatchHelper
	IgnoreDrawDispatchHelper
}

var _ Dispatcher = NopDispatcher{}
