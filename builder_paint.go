package displaylist

import (
	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
)

// SetAttributesFromPaint syncs the attributes that ops described by flags
// consult with p. Attributes already equal are not recorded again.
func (b *Builder) SetAttributesFromPaint(p paint.Paint, flags AttributeFlags) {
	if flags.IgnoresPaint() {
		return
	}
	if flags.AppliesAntiAlias() {
		b.SetAntiAlias(p.AntiAlias)
	}
	if flags.AppliesDither() {
		b.SetDither(p.Dither)
	}
	if flags.AppliesAlpha() || flags.AppliesColor() {
		b.SetColor(p.Color)
	}
	if flags.AppliesBlend() {
		if p.Blender != nil {
			b.SetBlender(p.Blender)
		} else {
			b.SetBlendMode(p.BlendMode)
		}
	}
	if flags.AppliesColorSource() {
		b.SetColorSource(p.ColorSource)
	}
	if flags.AppliesColorFilter() {
		b.SetColorFilter(p.ColorFilter)
		b.SetInvertColors(p.InvertColors)
	}
	if flags.AppliesImageFilter() {
		b.SetImageFilter(p.ImageFilter)
	}
	if flags.AppliesMaskFilter() {
		b.SetMaskFilter(p.MaskFilter)
	}
	if flags.IsGeometric() {
		if flags.IsStrokedAndFilled() {
			b.SetStyle(p.Style)
		}
		if p.IsStroked() || flags.AlwaysStroked() {
			b.SetStrokeWidth(p.StrokeWidth)
			b.SetStrokeMiter(p.StrokeMiter)
			b.SetStrokeCap(p.StrokeCap)
			b.SetStrokeJoin(p.StrokeJoin)
		}
		if flags.AppliesPathEffect() {
			b.SetPathEffect(p.PathEffect)
		}
	}
}

// DrawPaintWith fills the clip with p.
func (b *Builder) DrawPaintWith(p paint.Paint) {
	b.SetAttributesFromPaint(p, DrawPaintFlags)
	b.DrawPaint()
}

// DrawLinePaint draws a line with p.
func (b *Builder) DrawLinePaint(p0, p1 geom.Point, p paint.Paint) {
	flags := DrawLineFlags
	if p0.X == p1.X || p0.Y == p1.Y {
		flags = DrawHVLineFlags
	}
	b.SetAttributesFromPaint(p, flags)
	b.DrawLine(p0, p1)
}

// DrawRectPaint draws a rect with p.
func (b *Builder) DrawRectPaint(r geom.Rect, p paint.Paint) {
	b.SetAttributesFromPaint(p, DrawRectFlags)
	b.DrawRect(r)
}

// DrawOvalPaint draws an oval with p.
func (b *Builder) DrawOvalPaint(r geom.Rect, p paint.Paint) {
	b.SetAttributesFromPaint(p, DrawOvalFlags)
	b.DrawOval(r)
}

// DrawCirclePaint draws a circle with p.
func (b *Builder) DrawCirclePaint(center geom.Point, radius float32, p paint.Paint) {
	b.SetAttributesFromPaint(p, DrawCircleFlags)
	b.DrawCircle(center, radius)
}

// DrawRRectPaint draws a rounded rect with p.
func (b *Builder) DrawRRectPaint(rr geom.RRect, p paint.Paint) {
	b.SetAttributesFromPaint(p, DrawRRectFlags)
	b.DrawRRect(rr)
}

// DrawPathPaint draws a path with p.
func (b *Builder) DrawPathPaint(path *geom.Path, p paint.Paint) {
	b.SetAttributesFromPaint(p, DrawPathFlags)
	b.DrawPath(path)
}

// DrawImageRectPaint draws the src part of img into dst. A nil p draws
// the image without attributes.
func (b *Builder) DrawImageRectPaint(img paint.Image, src, dst geom.Rect, sampling paint.Sampling,
	p *paint.Paint, constraint SrcRectConstraint) {
	if p != nil {
		b.SetAttributesFromPaint(*p, DrawImageRectWithPaintFlags)
	}
	b.DrawImageRect(img, src, dst, sampling, p != nil, constraint)
}

// SaveLayerPaint starts a layer composited with p, or plainly when p is
// nil.
func (b *Builder) SaveLayerPaint(bounds *geom.Rect, p *paint.Paint, backdrop paint.ImageFilter) {
	var opts SaveLayerOptions
	if p != nil {
		b.SetAttributesFromPaint(*p, SaveLayerWithPaintFlags)
		opts = RendersWithAttributes
	}
	b.SaveLayer(bounds, opts, backdrop)
}
