package displaylist

import (
	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

// Dispatch replays every record into d, in recording order.
func (dl *DisplayList) Dispatch(d Dispatcher) {
	for i := range dl.offsets {
		dl.DispatchOne(d, i)
	}
}

// DispatchCulled replays the records that can draw inside cull, given in
// the list's device space. Without an RTree, or when cull covers the
// list, everything is replayed.
func (dl *DisplayList) DispatchCulled(d Dispatcher, cull geom.Rect) {
	if cull.IsEmpty() {
		return
	}
	if dl.rtree == nil || cull.Contains(dl.bounds) {
		dl.Dispatch(d)
		return
	}
	dl.DispatchIndices(d, dl.rtree.Search(cull))
}

// CulledIndices returns, in ascending order, the indices of the
// rendering records whose bounds intersect cull. Without an RTree every
// rendering record is returned.
func (dl *DisplayList) CulledIndices(cull geom.Rect) []int {
	if cull.IsEmpty() {
		return nil
	}
	if dl.rtree != nil {
		return dl.rtree.Search(cull)
	}
	var out []int
	for i := range dl.offsets {
		if dl.OpType(i).Category().IsRendering() {
			out = append(out, i)
		}
	}
	return out
}

// DispatchIndices replays the rendering records listed in indices, which
// must be sorted ascending, along with the state records they depend on.
// A Save or SaveLayer block holding none of the listed records is
// skipped, except for its attribute records.
func (dl *DisplayList) DispatchIndices(d Dispatcher, indices []int) {
	next := 0
	skipTo := -1
	for i := range dl.offsets {
		for next < len(indices) && indices[next] < i {
			next++
		}
		cat := dl.OpType(i).Category()

		if skipTo >= 0 {
			if i == skipTo {
				skipTo = -1
			} else if cat == CategoryAttribute {
				dl.DispatchOne(d, i)
			}
			continue
		}

		switch {
		case cat.IsRendering():
			if next < len(indices) && indices[next] == i {
				dl.DispatchOne(d, i)
			}
		case cat == CategorySave || cat == CategorySaveLayer:
			restore := dl.restoreIndex(i)
			if next >= len(indices) || indices[next] >= restore {
				skipTo = restore
				continue
			}
			dl.DispatchOne(d, i)
		default:
			dl.DispatchOne(d, i)
		}
	}
}

// restoreIndex returns the index of the Restore matching the save
// record i.
func (dl *DisplayList) restoreIndex(i int) int {
	off := dl.offsets[i]
	if dl.OpType(i) == OpSave {
		return int(at[saveOp](dl.data, off).restoreIndex)
	}
	return int(at[saveLayerOp](dl.data, off).restoreIndex)
}

func refAs[T any](refs []any, r uint32) T {
	var zero T
	if r == noRef {
		return zero
	}
	v, _ := refs[r].(T)
	return v
}

// DispatchOne replays record i into d.
func (dl *DisplayList) DispatchOne(d Dispatcher, i int) {
	data, off := dl.data, dl.offsets[i]
	op := headerOp(*at[uint32](data, off))

	switch op {
	case OpSetAntiAlias:
		d.SetAntiAlias(at[boolOp](data, off).value != 0)
	case OpSetDither:
		d.SetDither(at[boolOp](data, off).value != 0)
	case OpSetInvertColors:
		d.SetInvertColors(at[boolOp](data, off).value != 0)
	case OpSetStrokeCap:
		d.SetStrokeCap(paint.Cap(at[u32Op](data, off).value))
	case OpSetStrokeJoin:
		d.SetStrokeJoin(paint.Join(at[u32Op](data, off).value))
	case OpSetStyle:
		d.SetStyle(paint.Style(at[u32Op](data, off).value))
	case OpSetStrokeWidth:
		d.SetStrokeWidth(at[f32Op](data, off).value)
	case OpSetStrokeMiter:
		d.SetStrokeMiter(at[f32Op](data, off).value)
	case OpSetColor:
		d.SetColor(paint.Color(at[u32Op](data, off).value))
	case OpSetBlendMode:
		d.SetBlendMode(paint.BlendMode(at[u32Op](data, off).value))
	case OpSetBlender:
		d.SetBlender(refAs[paint.Blender](dl.refs, at[refOp](data, off).ref))
	case OpSetColorSource:
		d.SetColorSource(refAs[paint.ColorSource](dl.refs, at[refOp](data, off).ref))
	case OpSetColorFilter:
		d.SetColorFilter(refAs[paint.ColorFilter](dl.refs, at[refOp](data, off).ref))
	case OpSetImageFilter:
		d.SetImageFilter(refAs[paint.ImageFilter](dl.refs, at[refOp](data, off).ref))
	case OpSetMaskFilter:
		d.SetMaskFilter(refAs[paint.MaskFilter](dl.refs, at[refOp](data, off).ref))
	case OpSetPathEffect:
		d.SetPathEffect(refAs[paint.PathEffect](dl.refs, at[refOp](data, off).ref))

	case OpSave:
		d.Save()
	case OpSaveLayer, OpSaveLayerBackdrop:
		rec := at[saveLayerOp](data, off)
		opts := SaveLayerOptions(rec.options)
		var bounds *geom.Rect
		if opts.BoundsFromCaller() {
			r := rec.bounds
			bounds = &r
		}
		d.SaveLayer(bounds, opts, refAs[paint.ImageFilter](dl.refs, rec.backdrop))
	case OpRestore:
		d.Restore()

	case OpTranslate:
		rec := at[xyOp](data, off)
		d.Translate(rec.x, rec.y)
	case OpScale:
		rec := at[xyOp](data, off)
		d.Scale(rec.x, rec.y)
	case OpRotate:
		d.Rotate(at[f32Op](data, off).value)
	case OpSkew:
		rec := at[xyOp](data, off)
		d.Skew(rec.x, rec.y)
	case OpTransform2DAffine:
		m := at[affineOp](data, off).m
		d.Transform2DAffine(m[0], m[1], m[2], m[3], m[4], m[5])
	case OpTransformFullPerspective:
		d.TransformFullPerspective(at[perspectiveOp](data, off).m)
	case OpTransformReset:
		d.TransformReset()

	case OpClipRect:
		rec := at[clipRectOp](data, off)
		d.ClipRect(rec.rect, ClipOp(rec.op), rec.aa != 0)
	case OpClipOval:
		rec := at[clipRectOp](data, off)
		d.ClipOval(rec.rect, ClipOp(rec.op), rec.aa != 0)
	case OpClipRRect:
		rec := at[clipRRectOp](data, off)
		d.ClipRRect(rec.rrect, ClipOp(rec.op), rec.aa != 0)
	case OpClipPath:
		rec := at[clipPathOp](data, off)
		d.ClipPath(refAs[*geom.Path](dl.refs, rec.path), ClipOp(rec.op), rec.aa != 0)

	case OpDrawPaint:
		d.DrawPaint()
	case OpDrawColor:
		rec := at[drawColorOp](data, off)
		d.DrawColor(paint.Color(rec.color), paint.BlendMode(rec.mode))
	case OpDrawLine:
		rec := at[lineOp](data, off)
		d.DrawLine(rec.p0, rec.p1)
	case OpDrawRect:
		d.DrawRect(at[rectOp](data, off).rect)
	case OpDrawOval:
		d.DrawOval(at[rectOp](data, off).rect)
	case OpDrawCircle:
		rec := at[circleOp](data, off)
		d.DrawCircle(rec.center, rec.radius)
	case OpDrawRRect:
		d.DrawRRect(at[rrectOp](data, off).rrect)
	case OpDrawDRRect:
		rec := at[drrectOp](data, off)
		d.DrawDRRect(rec.outer, rec.inner)
	case OpDrawPath:
		d.DrawPath(refAs[*geom.Path](dl.refs, at[pathOp](data, off).path))
	case OpDrawArc:
		rec := at[arcOp](data, off)
		d.DrawArc(rec.bounds, rec.start, rec.sweep, rec.withCenter != 0)
	case OpDrawPoints:
		rec := at[pointsOp](data, off)
		pts := trailing[geom.Point](data, off+sizeOf[pointsOp](), int(rec.count))
		d.DrawPoints(PointMode(rec.mode), pts)
	case OpDrawVertices:
		rec := at[verticesOp](data, off)
		d.DrawVertices(refAs[*Vertices](dl.refs, rec.vertices), paint.BlendMode(rec.mode))
	case OpDrawImage, OpDrawImageWithAttr:
		rec := at[imageOp](data, off)
		d.DrawImage(refAs[paint.Image](dl.refs, rec.image), rec.point, paint.Sampling(rec.sampling),
			op == OpDrawImageWithAttr)
	case OpDrawImageRect:
		rec := at[imageRectOp](data, off)
		d.DrawImageRect(refAs[paint.Image](dl.refs, rec.image), rec.src, rec.dst,
			paint.Sampling(rec.sampling), rec.withAttr != 0, SrcRectConstraint(rec.constraint))
	case OpDrawImageNine:
		rec := at[imageNineOp](data, off)
		d.DrawImageNine(refAs[paint.Image](dl.refs, rec.image), rec.center, rec.dst,
			paint.Sampling(rec.sampling), rec.withAttr != 0)
	case OpDrawImageLattice:
		rec := at[latticeOp](data, off)
		divs := off + sizeOf[latticeOp]()
		lattice := Lattice{
			XDivs: trailing[int32](data, divs, int(rec.xCount)),
			YDivs: trailing[int32](data, divs+int(rec.xCount)*sizeOf[int32](), int(rec.yCount)),
			Src:   rec.src,
		}
		d.DrawImageLattice(refAs[paint.Image](dl.refs, rec.image), lattice, rec.dst,
			paint.Sampling(rec.sampling), rec.withAttr != 0)
	case OpDrawAtlas:
		dl.dispatchAtlas(d, at[atlasOp](data, off), off+sizeOf[atlasOp](), nil)
	case OpDrawAtlasCulled:
		rec := at[atlasCulledOp](data, off)
		cull := rec.cull
		dl.dispatchAtlas(d, &rec.atlasOp, off+sizeOf[atlasCulledOp](), &cull)
	case OpDrawDisplayList:
		rec := at[displayListOp](data, off)
		d.DrawDisplayList(refAs[*DisplayList](dl.refs, rec.list), rec.opacity)
	case OpDrawTextBlob:
		rec := at[textBlobOp](data, off)
		d.DrawTextBlob(refAs[*text.Blob](dl.refs, rec.blob), rec.x, rec.y)
	case OpDrawShadow, OpDrawShadowTransparentOccluder:
		rec := at[shadowOp](data, off)
		d.DrawShadow(refAs[*geom.Path](dl.refs, rec.path), paint.Color(rec.color), rec.elevation,
			op == OpDrawShadowTransparentOccluder, rec.dpr)
	default:
		panic("displaylist: unknown op type " + op.String())
	}
}

func (dl *DisplayList) dispatchAtlas(d Dispatcher, rec *atlasOp, next int, cull *geom.Rect) {
	n := int(rec.count)
	xforms := trailing[geom.RSTransform](dl.data, next, n)
	next += n * sizeOf[geom.RSTransform]()
	tex := trailing[geom.Rect](dl.data, next, n)
	next += n * sizeOf[geom.Rect]()
	var colors []paint.Color
	if rec.hasColors != 0 {
		colors = trailing[paint.Color](dl.data, next, n)
	}
	d.DrawAtlas(refAs[paint.Image](dl.refs, rec.atlas), xforms, tex, colors,
		paint.BlendMode(rec.mode), paint.Sampling(rec.sampling), cull, rec.withAttr != 0)
}
