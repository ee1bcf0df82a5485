package displaylist

import (
	"math"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/internal/bounds"
	"github.com/gogpu/displaylist/internal/clip"
	"github.com/gogpu/displaylist/paint"
)

// Save stack.

// Save implements Dispatcher. Nothing is recorded until a transform or
// clip inside the save needs it.
func (b *Builder) Save() {
	b.layers = append(b.layers, layerFrame{deferred: true, saveOffset: -1, saveIndex: -1})
	b.tracker.Save()
}

// checkForDeferredSave writes out the Save record of the innermost
// frame if it is still pending.
func (b *Builder) checkForDeferredSave() {
	f := b.top()
	if !f.deferred {
		return
	}
	f.saveIndex = b.opIndex()
	f.saveOffset = push(b, OpSave, saveOp{}, 0)
	f.deferred = false
}

// SaveLayer implements Dispatcher. Content drawn until the matching
// Restore is rendered offscreen and composited on restore, using the
// current attributes when options has RendersWithAttributes. A non-nil
// bounds also clips the layer content. Option bits other than
// RendersWithAttributes are computed and replaced.
func (b *Builder) SaveLayer(bounds *geom.Rect, options SaveLayerOptions, backdrop paint.ImageFilter) {
	options &^= computedLayerOptions
	rec := saveLayerOp{backdrop: noRef}
	if bounds != nil {
		options |= BoundsFromCaller
		rec.bounds = *bounds
	}

	if backdrop != nil {
		b.accumulateUnbounded()
	}
	renders := options.RendersWithAttributes()
	if renders {
		if !b.paintNopsOnTransparency(SaveLayerWithPaintFlags) {
			b.accumulateUnbounded()
			b.markTransparentBlackModified()
		}
		b.top().updateOpacity(b.opacityCompatible)
	} else {
		b.top().updateOpacity(true)
	}

	op := OpSaveLayer
	if backdrop != nil {
		op = OpSaveLayerBackdrop
		rec.backdrop = b.ref(backdrop)
	}
	rec.options = uint32(options)
	saveIndex := b.opIndex()
	off := push(b, op, rec, 0)

	frame := layerFrame{
		isLayer:    true,
		saveOffset: off,
		saveIndex:  saveIndex,
	}
	if renders {
		frame.filter = b.current.ImageFilter
	}

	b.tracker.Save()
	b.acc.Save()
	if frame.filter != nil {
		// Content outside the clip may be pulled into view by the filter.
		b.tracker.ResetDeviceCullRect(b.opts.cull)
	}
	if bounds != nil {
		local := bounds.Sorted()
		frame.callerBounds, _ = mapBounds(b.tracker.Matrix(), local)
		frame.hasBounds = true
		b.tracker.ClipRect(local, clip.Intersect, true)
	}
	b.layers = append(b.layers, frame)
	b.layerDepth++
}

// Restore implements Dispatcher. Restoring with no open save is ignored.
func (b *Builder) Restore() {
	if len(b.layers) <= 1 {
		return
	}
	f := b.layers[len(b.layers)-1]
	b.layers = b.layers[:len(b.layers)-1]

	if !f.deferred {
		restoreIndex := uint32(b.opIndex())
		push(b, OpRestore, emptyOp{}, 0)
		data := b.buf.bytes()
		if f.isLayer {
			at[saveLayerOp](data, f.saveOffset).restoreIndex = restoreIndex
		} else {
			at[saveOp](data, f.saveOffset).restoreIndex = restoreIndex
		}
	}
	b.tracker.Restore()

	parent := b.top()
	if f.isLayer {
		b.layerDepth--
		b.restoreLayer(&f, parent)
		return
	}
	if f.cannotInheritOpacity {
		parent.cannotInheritOpacity = true
	} else if f.hasCompatibleOp {
		parent.updateOpacity(true)
	}
	parent.unbounded = parent.unbounded || f.unbounded
	parent.content = parent.content.Union(f.content)
}

// restoreLayer folds a closed layer into its parent and fills in the
// computed option bits of its SaveLayer record.
func (b *Builder) restoreLayer(f, parent *layerFrame) {
	var mapper bounds.Mapper
	if f.filter != nil {
		filter, ctm := f.filter, b.tracker.Matrix()
		mapper = func(r geom.Rect) (geom.Rect, bool) {
			return filter.MapDeviceBounds(r, ctm)
		}
	}
	cull := b.tracker.DeviceCullRect()
	if !b.acc.RestoreMapped(mapper, &cull) {
		b.accumulateUnboundedAt(f.saveIndex)
	}

	content := f.content
	if f.hasBounds {
		content, _ = content.Intersect(f.callerBounds)
	}
	if mapper != nil && !content.IsEmpty() {
		if mapped, ok := mapper(content); ok {
			content = mapped
		}
	}
	parent.content = parent.content.Union(content)

	rec := at[saveLayerOp](b.buf.bytes(), f.saveOffset)
	opts := SaveLayerOptions(rec.options)
	if !f.cannotInheritOpacity {
		opts |= CanDistributeOpacity
	}
	if f.unbounded {
		opts |= ContentIsUnbounded
	}
	if f.hasBounds && (f.unbounded || !f.content.IsEmpty() && !f.callerBounds.Contains(f.content)) {
		opts |= ContentIsClipped
	}
	rec.options = uint32(opts)
}

// RestoreToCount restores until the save count is count.
func (b *Builder) RestoreToCount(count int) {
	for len(b.layers) > max(count, 1) {
		b.Restore()
	}
}

// GetSaveCount returns the depth of the save stack, 1 with no open save.
func (b *Builder) GetSaveCount() int { return len(b.layers) }

// Transforms. Calls that would leave the matrix unchanged are dropped,
// as are calls with non-finite arguments.

// Translate implements Dispatcher.
func (b *Builder) Translate(tx, ty float32) {
	if !finite(tx, ty) || tx == 0 && ty == 0 {
		return
	}
	b.checkForDeferredSave()
	push(b, OpTranslate, xyOp{x: tx, y: ty}, 0)
	b.tracker.Concat(geom.Translate(float64(tx), float64(ty)))
}

// Scale implements Dispatcher.
func (b *Builder) Scale(sx, sy float32) {
	if !finite(sx, sy) || sx == 1 && sy == 1 {
		return
	}
	b.checkForDeferredSave()
	push(b, OpScale, xyOp{x: sx, y: sy}, 0)
	b.tracker.Concat(geom.Scale(float64(sx), float64(sy)))
}

// Rotate implements Dispatcher. Whole turns are dropped.
func (b *Builder) Rotate(degrees float32) {
	if !finite(degrees) || math.Mod(float64(degrees), 360) == 0 {
		return
	}
	b.checkForDeferredSave()
	push(b, OpRotate, f32Op{value: degrees}, 0)
	b.tracker.Concat(geom.Rotate(float64(degrees)))
}

// Skew implements Dispatcher.
func (b *Builder) Skew(sx, sy float32) {
	if !finite(sx, sy) || sx == 0 && sy == 0 {
		return
	}
	b.checkForDeferredSave()
	push(b, OpSkew, xyOp{x: sx, y: sy}, 0)
	b.tracker.Concat(geom.Skew(float64(sx), float64(sy)))
}

// Transform2DAffine implements Dispatcher. Pure translations are
// recorded as Translate.
func (b *Builder) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float32) {
	if !finite(mxx, mxy, mxt, myx, myy, myt) {
		return
	}
	if mxx == 1 && mxy == 0 && myx == 0 && myy == 1 {
		b.Translate(mxt, myt)
		return
	}
	b.checkForDeferredSave()
	push(b, OpTransform2DAffine, affineOp{m: [6]float32{mxx, mxy, mxt, myx, myy, myt}}, 0)
	b.tracker.Concat(geom.Affine2D(
		float64(mxx), float64(mxy), float64(mxt),
		float64(myx), float64(myy), float64(myt)))
}

// TransformFullPerspective implements Dispatcher. Matrices without
// perspective or Z terms are recorded as Transform2DAffine.
func (b *Builder) TransformFullPerspective(m geom.Matrix) {
	if !m.IsFinite() {
		return
	}
	if m.Is2DAffine() {
		b.Transform2DAffine(
			float32(m[0]), float32(m[1]), float32(m[3]),
			float32(m[4]), float32(m[5]), float32(m[7]))
		return
	}
	b.checkForDeferredSave()
	push(b, OpTransformFullPerspective, perspectiveOp{m: m}, 0)
	b.tracker.Concat(m)
}

// Transform concatenates an arbitrary matrix.
func (b *Builder) Transform(m geom.Matrix) { b.TransformFullPerspective(m) }

// TransformReset implements Dispatcher.
func (b *Builder) TransformReset() {
	if b.tracker.Matrix().IsIdentity() {
		return
	}
	b.checkForDeferredSave()
	push(b, OpTransformReset, emptyOp{}, 0)
	b.tracker.SetIdentity()
}

// Clips.

// ClipRect implements Dispatcher.
func (b *Builder) ClipRect(r geom.Rect, op ClipOp, aa bool) {
	if !r.IsFinite() {
		return
	}
	b.checkForDeferredSave()
	push(b, OpClipRect, clipRectOp{op: uint8(op), aa: boolU8(aa), rect: r}, 0)
	b.tracker.ClipRect(r.Sorted(), clip.Op(op), aa)
}

// ClipOval implements Dispatcher.
func (b *Builder) ClipOval(r geom.Rect, op ClipOp, aa bool) {
	if !r.IsFinite() {
		return
	}
	b.checkForDeferredSave()
	push(b, OpClipOval, clipRectOp{op: uint8(op), aa: boolU8(aa), rect: r}, 0)
	b.tracker.ClipRect(r.Sorted(), clip.Op(op), aa)
}

// ClipRRect implements Dispatcher. Rounded rects that are plain rects or
// ovals are recorded as such.
func (b *Builder) ClipRRect(rr geom.RRect, op ClipOp, aa bool) {
	switch {
	case rr.IsRect():
		b.ClipRect(rr.Rect, op, aa)
		return
	case rr.IsOval():
		b.ClipOval(rr.Rect, op, aa)
		return
	}
	if !rr.Rect.IsFinite() {
		return
	}
	b.checkForDeferredSave()
	push(b, OpClipRRect, clipRRectOp{op: uint8(op), aa: boolU8(aa), rrect: rr}, 0)
	b.tracker.ClipRRect(rr, clip.Op(op), aa)
}

// ClipPath implements Dispatcher. Paths that are rects, ovals or rounded
// rects are recorded as the simpler clip unless they are inverse-filled.
func (b *Builder) ClipPath(p *geom.Path, op ClipOp, aa bool) {
	if p == nil {
		return
	}
	if !p.IsInverseFillType() {
		if r, ok := p.IsRect(); ok {
			b.ClipRect(r, op, aa)
			return
		}
		if r, ok := p.IsOval(); ok {
			b.ClipOval(r, op, aa)
			return
		}
		if rr, ok := p.IsRRect(); ok {
			b.ClipRRect(rr, op, aa)
			return
		}
	}
	b.checkForDeferredSave()
	push(b, OpClipPath, clipPathOp{op: uint8(op), aa: boolU8(aa), path: b.ref(p.Clone())}, 0)
	b.tracker.ClipPath(p, clip.Op(op), aa)
}

// Queries.

// GetMatrix returns the current transform.
func (b *Builder) GetMatrix() geom.Matrix { return b.tracker.Matrix() }

// GetDestinationClipBounds returns the conservative clip bounds in
// device space.
func (b *Builder) GetDestinationClipBounds() geom.Rect { return b.tracker.DeviceCullRect() }

// GetLocalClipBounds returns the conservative clip bounds in the current
// local space.
func (b *Builder) GetLocalClipBounds() geom.Rect { return b.tracker.LocalCullRect() }

// QuickReject reports whether content with the given local bounds is
// certainly outside the clip.
func (b *Builder) QuickReject(r geom.Rect) bool { return b.tracker.ContentCulled(r.Sorted()) }

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

// mapBounds maps local bounds to device space. Unlike Matrix.MapRect it
// keeps zero-area bounds, which still matter for stroked geometry. The
// boolean is false for inverted or NaN bounds.
func mapBounds(m geom.Matrix, r geom.Rect) (geom.Rect, bool) {
	if !r.IsEmpty() {
		dev, _ := m.MapRect(r)
		return dev, true
	}
	if !(r.Left <= r.Right && r.Top <= r.Bottom) {
		return geom.Rect{}, false
	}
	out := geom.EmptyRect()
	for _, p := range [4]geom.Point{
		{X: r.Left, Y: r.Top}, {X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom}, {X: r.Left, Y: r.Bottom},
	} {
		q := m.MapPoint(p)
		out = out.UnionPoint(q.X, q.Y)
	}
	if !out.IsFinite() {
		return geom.LargestRect, true
	}
	return out, true
}
