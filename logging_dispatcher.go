package displaylist

import (
	"context"
	"log/slog"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

// LoggingDispatcher logs every call at debug level, then forwards it to
// an inner dispatcher. Each entry carries the op name and the save depth
// at which the call was made.
//
// Example:
//
//	displaylist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug})))
//	dl.Dispatch(displaylist.NewLoggingDispatcher(backend))
type LoggingDispatcher struct {
	inner Dispatcher
	depth int
}

var _ Dispatcher = (*LoggingDispatcher)(nil)

// NewLoggingDispatcher wraps inner. A nil inner discards every call
// after logging it.
func NewLoggingDispatcher(inner Dispatcher) *LoggingDispatcher {
	if inner == nil {
		inner = NopDispatcher{}
	}
	return &LoggingDispatcher{inner: inner}
}

func (l *LoggingDispatcher) log(op OpType, args ...any) {
	logger := Logger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := make([]any, 0, len(args)+4)
	attrs = append(attrs, "op", op.String(), "depth", l.depth)
	logger.Debug("displaylist: dispatch", append(attrs, args...)...)
}

// SetAntiAlias implements Dispatcher.
func (l *LoggingDispatcher) SetAntiAlias(aa bool) {
	l.log(OpSetAntiAlias, "aa", aa)
	l.inner.SetAntiAlias(aa)
}

// SetDither implements Dispatcher.
func (l *LoggingDispatcher) SetDither(dither bool) {
	l.log(OpSetDither, "dither", dither)
	l.inner.SetDither(dither)
}

// SetInvertColors implements Dispatcher.
func (l *LoggingDispatcher) SetInvertColors(invert bool) {
	l.log(OpSetInvertColors, "invert", invert)
	l.inner.SetInvertColors(invert)
}

// SetStyle implements Dispatcher.
func (l *LoggingDispatcher) SetStyle(style paint.Style) {
	l.log(OpSetStyle, "style", style)
	l.inner.SetStyle(style)
}

// SetStrokeWidth implements Dispatcher.
func (l *LoggingDispatcher) SetStrokeWidth(width float32) {
	l.log(OpSetStrokeWidth, "width", width)
	l.inner.SetStrokeWidth(width)
}

// SetStrokeMiter implements Dispatcher.
func (l *LoggingDispatcher) SetStrokeMiter(limit float32) {
	l.log(OpSetStrokeMiter, "limit", limit)
	l.inner.SetStrokeMiter(limit)
}

// SetStrokeCap implements Dispatcher.
func (l *LoggingDispatcher) SetStrokeCap(c paint.Cap) {
	l.log(OpSetStrokeCap, "cap", c)
	l.inner.SetStrokeCap(c)
}

// SetStrokeJoin implements Dispatcher.
func (l *LoggingDispatcher) SetStrokeJoin(j paint.Join) {
	l.log(OpSetStrokeJoin, "join", j)
	l.inner.SetStrokeJoin(j)
}

// SetColor implements Dispatcher.
func (l *LoggingDispatcher) SetColor(c paint.Color) {
	l.log(OpSetColor, "color", c)
	l.inner.SetColor(c)
}

// SetBlendMode implements Dispatcher.
func (l *LoggingDispatcher) SetBlendMode(mode paint.BlendMode) {
	l.log(OpSetBlendMode, "mode", mode)
	l.inner.SetBlendMode(mode)
}

// SetBlender implements Dispatcher.
func (l *LoggingDispatcher) SetBlender(b paint.Blender) {
	l.log(OpSetBlender, "blender", b)
	l.inner.SetBlender(b)
}

// SetColorSource implements Dispatcher.
func (l *LoggingDispatcher) SetColorSource(s paint.ColorSource) {
	l.log(OpSetColorSource, "source", s)
	l.inner.SetColorSource(s)
}

// SetColorFilter implements Dispatcher.
func (l *LoggingDispatcher) SetColorFilter(f paint.ColorFilter) {
	l.log(OpSetColorFilter, "filter", f)
	l.inner.SetColorFilter(f)
}

// SetImageFilter implements Dispatcher.
func (l *LoggingDispatcher) SetImageFilter(f paint.ImageFilter) {
	l.log(OpSetImageFilter, "filter", f)
	l.inner.SetImageFilter(f)
}

// SetMaskFilter implements Dispatcher.
func (l *LoggingDispatcher) SetMaskFilter(f paint.MaskFilter) {
	l.log(OpSetMaskFilter, "filter", f)
	l.inner.SetMaskFilter(f)
}

// SetPathEffect implements Dispatcher.
func (l *LoggingDispatcher) SetPathEffect(e paint.PathEffect) {
	l.log(OpSetPathEffect, "effect", e)
	l.inner.SetPathEffect(e)
}

// Save implements Dispatcher.
func (l *LoggingDispatcher) Save() {
	l.log(OpSave)
	l.depth++
	l.inner.Save()
}

// SaveLayer implements Dispatcher.
func (l *LoggingDispatcher) SaveLayer(bounds *geom.Rect, options SaveLayerOptions, backdrop paint.ImageFilter) {
	op := OpSaveLayer
	if backdrop != nil {
		op = OpSaveLayerBackdrop
	}
	if bounds != nil {
		l.log(op, "bounds", *bounds, "options", uint32(options))
	} else {
		l.log(op, "options", uint32(options))
	}
	l.depth++
	l.inner.SaveLayer(bounds, options, backdrop)
}

// Restore implements Dispatcher.
func (l *LoggingDispatcher) Restore() {
	if l.depth > 0 {
		l.depth--
	}
	l.log(OpRestore)
	l.inner.Restore()
}

// Translate implements Dispatcher.
func (l *LoggingDispatcher) Translate(tx, ty float32) {
	l.log(OpTranslate, "tx", tx, "ty", ty)
	l.inner.Translate(tx, ty)
}

// Scale implements Dispatcher.
func (l *LoggingDispatcher) Scale(sx, sy float32) {
	l.log(OpScale, "sx", sx, "sy", sy)
	l.inner.Scale(sx, sy)
}

// Rotate implements Dispatcher.
func (l *LoggingDispatcher) Rotate(degrees float32) {
	l.log(OpRotate, "degrees", degrees)
	l.inner.Rotate(degrees)
}

// Skew implements Dispatcher.
func (l *LoggingDispatcher) Skew(sx, sy float32) {
	l.log(OpSkew, "sx", sx, "sy", sy)
	l.inner.Skew(sx, sy)
}

// Transform2DAffine implements Dispatcher.
func (l *LoggingDispatcher) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float32) {
	l.log(OpTransform2DAffine, "m", [6]float32{mxx, mxy, mxt, myx, myy, myt})
	l.inner.Transform2DAffine(mxx, mxy, mxt, myx, myy, myt)
}

// TransformFullPerspective implements Dispatcher.
func (l *LoggingDispatcher) TransformFullPerspective(m geom.Matrix) {
	l.log(OpTransformFullPerspective, "m", m)
	l.inner.TransformFullPerspective(m)
}

// TransformReset implements Dispatcher.
func (l *LoggingDispatcher) TransformReset() {
	l.log(OpTransformReset)
	l.inner.TransformReset()
}

// ClipRect implements Dispatcher.
func (l *LoggingDispatcher) ClipRect(r geom.Rect, op ClipOp, aa bool) {
	l.log(OpClipRect, "rect", r, "clip", op, "aa", aa)
	l.inner.ClipRect(r, op, aa)
}

// ClipOval implements Dispatcher.
func (l *LoggingDispatcher) ClipOval(r geom.Rect, op ClipOp, aa bool) {
	l.log(OpClipOval, "rect", r, "clip", op, "aa", aa)
	l.inner.ClipOval(r, op, aa)
}

// ClipRRect implements Dispatcher.
func (l *LoggingDispatcher) ClipRRect(rr geom.RRect, op ClipOp, aa bool) {
	l.log(OpClipRRect, "rrect", rr, "clip", op, "aa", aa)
	l.inner.ClipRRect(rr, op, aa)
}

// ClipPath implements Dispatcher.
func (l *LoggingDispatcher) ClipPath(p *geom.Path, op ClipOp, aa bool) {
	l.log(OpClipPath, "bounds", p.Bounds(), "clip", op, "aa", aa)
	l.inner.ClipPath(p, op, aa)
}

// DrawPaint implements Dispatcher.
func (l *LoggingDispatcher) DrawPaint() {
	l.log(OpDrawPaint)
	l.inner.DrawPaint()
}

// DrawColor implements Dispatcher.
func (l *LoggingDispatcher) DrawColor(c paint.Color, mode paint.BlendMode) {
	l.log(OpDrawColor, "color", c, "mode", mode)
	l.inner.DrawColor(c, mode)
}

// DrawLine implements Dispatcher.
func (l *LoggingDispatcher) DrawLine(p0, p1 geom.Point) {
	l.log(OpDrawLine, "p0", p0, "p1", p1)
	l.inner.DrawLine(p0, p1)
}

// DrawRect implements Dispatcher.
func (l *LoggingDispatcher) DrawRect(r geom.Rect) {
	l.log(OpDrawRect, "rect", r)
	l.inner.DrawRect(r)
}

// DrawOval implements Dispatcher.
func (l *LoggingDispatcher) DrawOval(r geom.Rect) {
	l.log(OpDrawOval, "rect", r)
	l.inner.DrawOval(r)
}

// DrawCircle implements Dispatcher.
func (l *LoggingDispatcher) DrawCircle(center geom.Point, radius float32) {
	l.log(OpDrawCircle, "center", center, "radius", radius)
	l.inner.DrawCircle(center, radius)
}

// DrawRRect implements Dispatcher.
func (l *LoggingDispatcher) DrawRRect(rr geom.RRect) {
	l.log(OpDrawRRect, "rrect", rr)
	l.inner.DrawRRect(rr)
}

// DrawDRRect implements Dispatcher.
func (l *LoggingDispatcher) DrawDRRect(outer, inner geom.RRect) {
	l.log(OpDrawDRRect, "outer", outer, "inner", inner)
	l.inner.DrawDRRect(outer, inner)
}

// DrawPath implements Dispatcher.
func (l *LoggingDispatcher) DrawPath(p *geom.Path) {
	l.log(OpDrawPath, "bounds", p.Bounds(), "verbs", len(p.Verbs()))
	l.inner.DrawPath(p)
}

// DrawArc implements Dispatcher.
func (l *LoggingDispatcher) DrawArc(bounds geom.Rect, start, sweep float32, useCenter bool) {
	l.log(OpDrawArc, "bounds", bounds, "start", start, "sweep", sweep, "center", useCenter)
	l.inner.DrawArc(bounds, start, sweep, useCenter)
}

// DrawPoints implements Dispatcher.
func (l *LoggingDispatcher) DrawPoints(mode PointMode, pts []geom.Point) {
	l.log(OpDrawPoints, "mode", mode, "count", len(pts))
	l.inner.DrawPoints(mode, pts)
}

// DrawVertices implements Dispatcher.
func (l *LoggingDispatcher) DrawVertices(v *Vertices, mode paint.BlendMode) {
	l.log(OpDrawVertices, "bounds", v.Bounds(), "count", len(v.Positions()), "mode", mode)
	l.inner.DrawVertices(v, mode)
}

// DrawImage implements Dispatcher.
func (l *LoggingDispatcher) DrawImage(img paint.Image, pt geom.Point, sampling paint.Sampling, withAttr bool) {
	op := OpDrawImage
	if withAttr {
		op = OpDrawImageWithAttr
	}
	l.log(op, "size", img.Bounds(), "at", pt, "sampling", sampling)
	l.inner.DrawImage(img, pt, sampling, withAttr)
}

// DrawImageRect implements Dispatcher.
func (l *LoggingDispatcher) DrawImageRect(img paint.Image, src, dst geom.Rect, sampling paint.Sampling,
	withAttr bool, constraint SrcRectConstraint) {
	l.log(OpDrawImageRect, "src", src, "dst", dst, "sampling", sampling, "attr", withAttr)
	l.inner.DrawImageRect(img, src, dst, sampling, withAttr, constraint)
}

// DrawImageNine implements Dispatcher.
func (l *LoggingDispatcher) DrawImageNine(img paint.Image, center geom.IRect, dst geom.Rect,
	sampling paint.Sampling, withAttr bool) {
	l.log(OpDrawImageNine, "center", center, "dst", dst, "attr", withAttr)
	l.inner.DrawImageNine(img, center, dst, sampling, withAttr)
}

// DrawImageLattice implements Dispatcher.
func (l *LoggingDispatcher) DrawImageLattice(img paint.Image, lattice Lattice, dst geom.Rect,
	sampling paint.Sampling, withAttr bool) {
	l.log(OpDrawImageLattice, "xdivs", len(lattice.XDivs), "ydivs", len(lattice.YDivs), "dst", dst)
	l.inner.DrawImageLattice(img, lattice, dst, sampling, withAttr)
}

// DrawAtlas implements Dispatcher.
func (l *LoggingDispatcher) DrawAtlas(atlas paint.Image, xforms []geom.RSTransform, tex []geom.Rect,
	colors []paint.Color, mode paint.BlendMode, sampling paint.Sampling, cull *geom.Rect, withAttr bool) {
	op := OpDrawAtlas
	if cull != nil {
		op = OpDrawAtlasCulled
	}
	l.log(op, "sprites", len(xforms), "colors", colors != nil, "mode", mode)
	l.inner.DrawAtlas(atlas, xforms, tex, colors, mode, sampling, cull, withAttr)
}

// DrawDisplayList implements Dispatcher.
func (l *LoggingDispatcher) DrawDisplayList(dl *DisplayList, opacity float32) {
	l.log(OpDrawDisplayList, "id", dl.UniqueID(), "ops", dl.OpCount(false), "opacity", opacity)
	l.inner.DrawDisplayList(dl, opacity)
}

// DrawTextBlob implements Dispatcher.
func (l *LoggingDispatcher) DrawTextBlob(blob *text.Blob, x, y float32) {
	l.log(OpDrawTextBlob, "glyphs", blob.Len(), "x", x, "y", y)
	l.inner.DrawTextBlob(blob, x, y)
}

// DrawShadow implements Dispatcher.
func (l *LoggingDispatcher) DrawShadow(path *geom.Path, color paint.Color, elevation float32,
	transparentOccluder bool, dpr float32) {
	op := OpDrawShadow
	if transparentOccluder {
		op = OpDrawShadowTransparentOccluder
	}
	l.log(op, "bounds", path.Bounds(), "color", color, "elevation", elevation, "dpr", dpr)
	l.inner.DrawShadow(path, color, elevation, transparentOccluder, dpr)
}
