package displaylist

import (
	"math"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

// recordLimit is the largest record the builder produces when it splits
// variable-length draws.
var recordLimit = maxRecordSize &^ (recordAlign - 1)

// Shadow light geometry, in device pixels.
const (
	shadowLightHeight = 600
	shadowLightRadius = 800
)

// Bounds accumulation. Every draw first computes its device bounds; a
// draw with nothing left after clipping is not recorded.

// accumulateOpBounds adds the local bounds of the op about to be pushed,
// adjusted for the attributes in flags, and reports whether the op is
// visible.
func (b *Builder) accumulateOpBounds(local geom.Rect, flags AttributeFlags) bool {
	if flags.IsFlood() || !b.paintNopsOnTransparency(flags) {
		return b.accumulateFlood(flags)
	}
	local, hairline, ok := b.adjustBoundsForPaint(local, flags)
	if !ok {
		return b.accumulateUnbounded()
	}
	return b.accumulateLocal(local, hairline)
}

// accumulateFlood adds an op that covers the whole clip.
func (b *Builder) accumulateFlood(flags AttributeFlags) bool {
	if !b.accumulateUnbounded() {
		return false
	}
	if !b.paintNopsOnTransparency(flags) {
		b.markTransparentBlackModified()
	}
	return true
}

// accumulateLocal maps local bounds to device space, clips them and adds
// them for the op about to be pushed. Hairlines gain a pixel on each side.
func (b *Builder) accumulateLocal(local geom.Rect, hairline bool) bool {
	if b.tracker.IsCullRectEmpty() {
		return false
	}
	cull := b.tracker.DeviceCullRect()
	dev, ok := mapBounds(b.tracker.Matrix(), local)
	if !ok {
		return false
	}
	if hairline {
		dev = dev.Outset(1, 1)
	}
	clipped, visible := dev.Intersect(cull)
	if !visible {
		return false
	}
	b.acc.Accumulate(clipped, b.opIndex())
	f := b.top()
	f.content = f.content.Union(dev)
	return true
}

func (b *Builder) accumulateUnbounded() bool {
	return b.accumulateUnboundedAt(b.opIndex())
}

// accumulateUnboundedAt adds the whole clip for the op at index and marks
// the current frame unbounded.
func (b *Builder) accumulateUnboundedAt(index int) bool {
	if b.tracker.IsCullRectEmpty() {
		return false
	}
	cull := b.tracker.DeviceCullRect()
	b.acc.Accumulate(cull, index)
	f := b.top()
	f.unbounded = true
	f.content = f.content.Union(cull)
	return true
}

// markTransparentBlackModified records that the list touches pixels
// outside its bounds. Inside a layer the layer contains the damage.
func (b *Builder) markTransparentBlackModified() {
	if b.layerDepth == 0 {
		b.modifiesTransparentBlack = true
	}
}

// adjustBoundsForPaint grows geometry bounds by what the attributes in
// flags can add: path effects, stroke width, mask and image filters. It
// reports whether the op is a hairline and whether the result is bounded.
func (b *Builder) adjustBoundsForPaint(r geom.Rect, flags AttributeFlags) (geom.Rect, bool, bool) {
	p := &b.current
	hairline := false
	if flags.IsGeometric() {
		if flags.AppliesPathEffect() && p.PathEffect != nil {
			var ok bool
			if r, ok = p.PathEffect.EffectBounds(r); !ok {
				return r, false, false
			}
		}
		g := flags.WithPathEffect(p.PathEffect, p.IsStroked()).GeometryFlags(p.IsStroked())
		if g.IsStroked() {
			if p.StrokeWidth <= 0 {
				hairline = true
			} else {
				pad := strokePad(p, g)
				r = r.Outset(pad, pad)
			}
		}
	}
	if flags.AppliesMaskFilter() && p.MaskFilter != nil {
		o := p.MaskFilter.Outset()
		r = r.Outset(o, o)
	}
	if flags.AppliesImageFilter() && p.ImageFilter != nil {
		var ok bool
		if r, ok = p.ImageFilter.MapLocalBounds(r); !ok {
			return r, false, false
		}
	}
	return r, hairline, true
}

// strokePad returns how far a stroke can reach past the geometry.
func strokePad(p *paint.Paint, g GeometryFlags) float32 {
	scale := float32(1)
	if g.MayHaveJoins() && p.StrokeJoin == paint.JoinMiter {
		if g.MayHaveAcuteJoins() {
			scale = max(scale, p.StrokeMiter)
		} else {
			scale = max(scale, math.Sqrt2)
		}
	}
	squareCaps := p.StrokeCap == paint.CapSquare || p.StrokeCap == paint.CapButt && g.ButtCapIsSquare()
	if g.MayHaveCaps() && g.MayHaveDiagonalCaps() && squareCaps {
		scale = max(scale, math.Sqrt2)
	}
	return p.StrokeWidth / 2 * scale
}

// geometryOpacity reports whether a single geometric op can take a group
// opacity: compatible attributes, and no hairline stroke.
func (b *Builder) geometryOpacity(flags AttributeFlags) bool {
	if !b.opacityCompatible {
		return false
	}
	stroked := flags.AlwaysStroked() || b.current.IsStroked()
	return !stroked || b.current.StrokeWidth > 0
}

func (b *Builder) updateOpacity(compatible bool) {
	b.top().updateOpacity(compatible)
}

// Draws.

// DrawPaint implements Dispatcher. It fills the clip with the current
// attributes.
func (b *Builder) DrawPaint() {
	if b.accumulateOpBounds(geom.Rect{}, DrawPaintFlags) {
		push(b, OpDrawPaint, emptyOp{}, 0)
		b.updateOpacity(b.opacityCompatible)
	}
}

// DrawColor implements Dispatcher. It fills the clip with c, ignoring
// the current attributes.
func (b *Builder) DrawColor(c paint.Color, mode paint.BlendMode) {
	if !b.accumulateUnbounded() {
		return
	}
	if !mode.NopsOnTransparentBlack() {
		b.markTransparentBlackModified()
	}
	push(b, OpDrawColor, drawColorOp{color: uint32(c), mode: uint32(mode)}, 0)
	b.updateOpacity(mode == paint.BlendSrcOver)
}

// DrawLine implements Dispatcher.
func (b *Builder) DrawLine(p0, p1 geom.Point) {
	flags := DrawLineFlags
	if p0.X == p1.X || p0.Y == p1.Y {
		flags = DrawHVLineFlags
	}
	r := geom.MakeLTRB(p0.X, p0.Y, p1.X, p1.Y).Sorted()
	if b.accumulateOpBounds(r, flags) {
		push(b, OpDrawLine, lineOp{p0: p0, p1: p1}, 0)
		b.updateOpacity(b.geometryOpacity(flags))
	}
}

// DrawRect implements Dispatcher.
func (b *Builder) DrawRect(r geom.Rect) {
	if b.accumulateOpBounds(r.Sorted(), DrawRectFlags) {
		push(b, OpDrawRect, rectOp{rect: r}, 0)
		b.updateOpacity(b.geometryOpacity(DrawRectFlags))
	}
}

// DrawOval implements Dispatcher.
func (b *Builder) DrawOval(r geom.Rect) {
	if b.accumulateOpBounds(r.Sorted(), DrawOvalFlags) {
		push(b, OpDrawOval, rectOp{rect: r}, 0)
		b.updateOpacity(b.geometryOpacity(DrawOvalFlags))
	}
}

// DrawCircle implements Dispatcher.
func (b *Builder) DrawCircle(center geom.Point, radius float32) {
	r := geom.MakeLTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius).Sorted()
	if b.accumulateOpBounds(r, DrawCircleFlags) {
		push(b, OpDrawCircle, circleOp{center: center, radius: radius}, 0)
		b.updateOpacity(b.geometryOpacity(DrawCircleFlags))
	}
}

// DrawRRect implements Dispatcher. Rounded rects that are plain rects or
// ovals are recorded as such.
func (b *Builder) DrawRRect(rr geom.RRect) {
	switch {
	case rr.IsRect():
		b.DrawRect(rr.Rect)
	case rr.IsOval():
		b.DrawOval(rr.Rect)
	default:
		if b.accumulateOpBounds(rr.Rect.Sorted(), DrawRRectFlags) {
			push(b, OpDrawRRect, rrectOp{rrect: rr}, 0)
			b.updateOpacity(b.geometryOpacity(DrawRRectFlags))
		}
	}
}

// DrawDRRect implements Dispatcher. It draws the area between two
// rounded rects.
func (b *Builder) DrawDRRect(outer, inner geom.RRect) {
	if b.accumulateOpBounds(outer.Rect.Sorted(), DrawDRRectFlags) {
		push(b, OpDrawDRRect, drrectOp{outer: outer, inner: inner}, 0)
		b.updateOpacity(b.geometryOpacity(DrawDRRectFlags))
	}
}

// DrawPath implements Dispatcher. The path is copied. An inverse-filled
// path covers the whole clip.
func (b *Builder) DrawPath(p *geom.Path) {
	if p == nil {
		return
	}
	var visible bool
	if p.IsInverseFillType() {
		visible = b.accumulateFlood(DrawPathFlags)
	} else {
		visible = b.accumulateOpBounds(p.Bounds(), DrawPathFlags)
	}
	if !visible {
		return
	}
	push(b, OpDrawPath, pathOp{path: b.ref(p.Clone())}, 0)
	b.updateOpacity(!p.IsInverseFillType() && b.geometryOpacity(DrawPathFlags))
}

// DrawArc implements Dispatcher. Angles are in degrees.
func (b *Builder) DrawArc(bounds geom.Rect, start, sweep float32, useCenter bool) {
	flags := DrawArcNoCenterFlags
	if useCenter {
		flags = DrawArcWithCenterFlags
	}
	if b.accumulateOpBounds(bounds.Sorted(), flags) {
		push(b, OpDrawArc, arcOp{bounds: bounds, start: start, sweep: sweep, withCenter: boolU32(useCenter)}, 0)
		b.updateOpacity(b.geometryOpacity(flags))
	}
}

// DrawPoints implements Dispatcher. Point sets too large for one record
// are split; polygons repeat the joining point so the outline stays
// connected.
func (b *Builder) DrawPoints(mode PointMode, pts []geom.Point) {
	if len(pts) == 0 {
		return
	}
	flags := DrawPointsFlags
	switch mode {
	case LinesMode:
		flags = DrawLinesFlags
	case PolygonMode:
		flags = DrawPolygonFlags
	}

	per := max((recordLimit-sizeOf[pointsOp]())/sizeOf[geom.Point](), 2)
	if mode == LinesMode {
		per &^= 1
	}
	if len(pts) > per {
		Logger().Warn("displaylist: splitting oversized point record",
			"mode", mode, "points", len(pts), "perRecord", per)
	}
	for start := 0; ; {
		end := min(start+per, len(pts))
		b.drawPointsChunk(mode, flags, pts[start:end])
		if end == len(pts) {
			return
		}
		start = end
		if mode == PolygonMode {
			start--
		}
	}
}

func (b *Builder) drawPointsChunk(mode PointMode, flags AttributeFlags, pts []geom.Point) {
	r := geom.EmptyRect()
	for _, p := range pts {
		r = r.UnionPoint(p.X, p.Y)
	}
	if !b.accumulateOpBounds(r, flags) {
		return
	}
	off := push(b, OpDrawPoints, pointsOp{mode: uint32(mode), count: uint32(len(pts))},
		len(pts)*sizeOf[geom.Point]())
	writeTrailing(b.buf.bytes(), off+sizeOf[pointsOp](), pts)
	b.updateOpacity(false)
}

// DrawVertices implements Dispatcher. mode blends vertex colors with the
// color source.
func (b *Builder) DrawVertices(v *Vertices, mode paint.BlendMode) {
	if v == nil {
		return
	}
	if b.accumulateOpBounds(v.Bounds(), DrawVerticesFlags) {
		push(b, OpDrawVertices, verticesOp{vertices: b.ref(v), mode: uint32(mode)}, 0)
		b.updateOpacity(false)
	}
}

// DrawImage implements Dispatcher. The image is drawn unscaled with its
// top left corner at pt.
func (b *Builder) DrawImage(img paint.Image, pt geom.Point, sampling paint.Sampling, withAttr bool) {
	if img == nil {
		return
	}
	flags, op := DrawImageFlags, OpDrawImage
	if withAttr {
		flags, op = DrawImageWithPaintFlags, OpDrawImageWithAttr
	}
	ib := img.Bounds()
	r := geom.MakeXYWH(pt.X, pt.Y, float32(ib.Width()), float32(ib.Height()))
	if b.accumulateOpBounds(r, flags) {
		push(b, op, imageOp{image: b.refImage(img), point: pt, sampling: uint32(sampling)}, 0)
		b.updateOpacity(!withAttr || b.opacityCompatible)
	}
}

// DrawImageRect implements Dispatcher.
func (b *Builder) DrawImageRect(img paint.Image, src, dst geom.Rect, sampling paint.Sampling,
	withAttr bool, constraint SrcRectConstraint) {
	if img == nil {
		return
	}
	flags := DrawImageRectFlags
	if withAttr {
		flags = DrawImageRectWithPaintFlags
	}
	if b.accumulateOpBounds(dst.Sorted(), flags) {
		push(b, OpDrawImageRect, imageRectOp{
			image:      b.refImage(img),
			src:        src,
			dst:        dst,
			sampling:   uint32(sampling),
			withAttr:   boolU8(withAttr),
			constraint: uint8(constraint),
		}, 0)
		b.updateOpacity(!withAttr || b.opacityCompatible)
	}
}

// DrawImageNine implements Dispatcher. center splits the image into nine
// regions; the corners keep their size.
func (b *Builder) DrawImageNine(img paint.Image, center geom.IRect, dst geom.Rect, sampling paint.Sampling, withAttr bool) {
	if img == nil {
		return
	}
	flags := DrawImageNineFlags
	if withAttr {
		flags = DrawImageNineWithPaintFlags
	}
	if b.accumulateOpBounds(dst.Sorted(), flags) {
		push(b, OpDrawImageNine, imageNineOp{
			image:    b.refImage(img),
			center:   center,
			dst:      dst,
			sampling: uint32(sampling),
			withAttr: boolU32(withAttr),
		}, 0)
		b.updateOpacity(!withAttr || b.opacityCompatible)
	}
}

// DrawImageLattice implements Dispatcher.
func (b *Builder) DrawImageLattice(img paint.Image, lattice Lattice, dst geom.Rect, sampling paint.Sampling, withAttr bool) {
	if img == nil {
		return
	}
	flags := DrawImageLatticeFlags
	if withAttr {
		flags = DrawImageLatticeWithPaintFlags
	}
	if !b.accumulateOpBounds(dst.Sorted(), flags) {
		return
	}
	n := len(lattice.XDivs) + len(lattice.YDivs)
	off := push(b, OpDrawImageLattice, latticeOp{
		image:    b.refImage(img),
		src:      lattice.Src,
		dst:      dst,
		sampling: uint32(sampling),
		withAttr: boolU32(withAttr),
		xCount:   uint32(len(lattice.XDivs)),
		yCount:   uint32(len(lattice.YDivs)),
	}, n*sizeOf[int32]())
	data := b.buf.bytes()
	next := writeTrailing(data, off+sizeOf[latticeOp](), lattice.XDivs)
	writeTrailing(data, next, lattice.YDivs)
	b.updateOpacity(!withAttr || b.opacityCompatible)
}

// DrawAtlas implements Dispatcher. Sprite i draws tex[i] from atlas
// through xforms[i], tinted by colors[i] under mode when colors is not
// nil. cull, when set, bounds every sprite. Sprite sets too large for
// one record are split.
func (b *Builder) DrawAtlas(atlas paint.Image, xforms []geom.RSTransform, tex []geom.Rect, colors []paint.Color,
	mode paint.BlendMode, sampling paint.Sampling, cull *geom.Rect, withAttr bool) {
	if atlas == nil || len(xforms) == 0 {
		return
	}
	if len(tex) != len(xforms) || colors != nil && len(colors) != len(xforms) {
		panic("displaylist: atlas array lengths differ")
	}
	flags := DrawAtlasFlags
	if withAttr {
		flags = DrawAtlasWithPaintFlags
	}

	fixed := sizeOf[atlasOp]()
	if cull != nil {
		fixed = sizeOf[atlasCulledOp]()
	}
	sprite := sizeOf[geom.RSTransform]() + sizeOf[geom.Rect]()
	if colors != nil {
		sprite += sizeOf[paint.Color]()
	}
	per := max((recordLimit-fixed)/sprite, 1)
	if len(xforms) > per {
		Logger().Warn("displaylist: splitting oversized atlas record",
			"sprites", len(xforms), "perRecord", per)
	}
	for start := 0; start < len(xforms); start += per {
		end := min(start+per, len(xforms))
		var chunkColors []paint.Color
		if colors != nil {
			chunkColors = colors[start:end]
		}
		b.drawAtlasChunk(atlas, xforms[start:end], tex[start:end], chunkColors,
			mode, sampling, cull, withAttr, flags)
	}
}

func (b *Builder) drawAtlasChunk(atlas paint.Image, xforms []geom.RSTransform, tex []geom.Rect, colors []paint.Color,
	mode paint.BlendMode, sampling paint.Sampling, cull *geom.Rect, withAttr bool, flags AttributeFlags) {
	r := geom.EmptyRect()
	for i, xf := range xforms {
		r = r.Union(xf.MapRectBounds(tex[i].Width(), tex[i].Height()))
	}
	if cull != nil {
		r, _ = r.Intersect(*cull)
	}
	if !b.accumulateOpBounds(r, flags) {
		return
	}

	rec := atlasOp{
		atlas:     b.refImage(atlas),
		count:     uint32(len(xforms)),
		hasColors: boolU32(colors != nil),
		mode:      uint32(mode),
		sampling:  uint32(sampling),
		withAttr:  boolU32(withAttr),
	}
	extra := len(xforms)*(sizeOf[geom.RSTransform]()+sizeOf[geom.Rect]()) + len(colors)*sizeOf[paint.Color]()
	var off, next int
	if cull != nil {
		off = push(b, OpDrawAtlasCulled, atlasCulledOp{atlasOp: rec, cull: *cull}, extra)
		next = off + sizeOf[atlasCulledOp]()
	} else {
		off = push(b, OpDrawAtlas, rec, extra)
		next = off + sizeOf[atlasOp]()
	}
	data := b.buf.bytes()
	next = writeTrailing(data, next, xforms)
	next = writeTrailing(data, next, tex)
	writeTrailing(data, next, colors)
	b.updateOpacity(false)
}

// DrawDisplayList implements Dispatcher. The sub-list is shared, not
// copied. opacity multiplies everything it draws.
func (b *Builder) DrawDisplayList(dl *DisplayList, opacity float32) {
	if dl == nil {
		return
	}
	var visible bool
	switch {
	case dl.modifiesTransparentBlack:
		if visible = b.accumulateUnbounded(); visible {
			b.markTransparentBlackModified()
		}
	case dl.rtree != nil:
		for _, r := range dl.rtree.SearchAndConsolidateRects(b.tracker.LocalCullRect(), false) {
			if b.accumulateLocal(r, false) {
				visible = true
			}
		}
	default:
		visible = b.accumulateLocal(dl.bounds, false)
	}
	if !visible {
		return
	}

	push(b, OpDrawDisplayList, displayListOp{list: b.ref(dl), opacity: opacity}, 0)
	b.nestedOps += dl.OpCount(true)
	b.nestedBytes += dl.Bytes(true)
	b.depth += dl.TotalDepth()
	b.updateOpacity(dl.canApplyGroupOpacity)
	if dl.unbounded {
		b.top().unbounded = true
	}
	if !dl.uiThreadSafe {
		b.uiThreadSafe = false
	}
}

// DrawTextBlob implements Dispatcher. The blob origin lands at (x, y).
func (b *Builder) DrawTextBlob(blob *text.Blob, x, y float32) {
	if blob == nil {
		return
	}
	if b.accumulateOpBounds(blob.Bounds().Offset(x, y), DrawTextBlobFlags) {
		push(b, OpDrawTextBlob, textBlobOp{blob: b.ref(blob), x: x, y: y}, 0)
		b.updateOpacity(false)
	}
}

// DrawShadow implements Dispatcher. The path is copied. dpr scales the
// elevation to device pixels.
func (b *Builder) DrawShadow(path *geom.Path, color paint.Color, elevation float32, transparentOccluder bool, dpr float32) {
	if path == nil {
		return
	}
	if !b.accumulateOpBounds(shadowBounds(path.Bounds(), elevation, dpr), DrawShadowFlags) {
		return
	}
	op := OpDrawShadow
	if transparentOccluder {
		op = OpDrawShadowTransparentOccluder
	}
	push(b, op, shadowOp{
		path:      b.ref(path.Clone()),
		color:     uint32(color),
		elevation: elevation,
		dpr:       dpr,
	}, 0)
	b.updateOpacity(false)
}

// shadowBounds returns the bounds of the shadow cast by an occluder with
// the given bounds, lit from above by a disc light.
func shadowBounds(r geom.Rect, elevation, dpr float32) geom.Rect {
	if r.IsEmpty() {
		return r
	}
	z := min(max(elevation*dpr, 0), shadowLightHeight-1)
	pad := z*shadowLightRadius/(shadowLightHeight-z) + z/2
	if dpr > 0 {
		pad /= dpr
	}
	return r.Outset(pad, pad)
}
