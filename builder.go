package displaylist

import (
	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/internal/bounds"
	"github.com/gogpu/displaylist/internal/clip"
	"github.com/gogpu/displaylist/paint"
)

// Builder records drawing calls into a DisplayList.
//
// Attribute setters only record when the value changes. Save is deferred
// until a transform or clip inside it needs it, so saves that protect
// nothing cost nothing. Draws that fall entirely outside the clip are not
// recorded at all.
//
// Builder implements Dispatcher, so a list can be replayed into a builder
// to copy it. A Builder is not safe for concurrent use.
//
// Example:
//
//	b := displaylist.NewBuilder(displaylist.WithRTree(true))
//	b.SetColor(paint.Hex("#336699"))
//	b.DrawRect(geom.MakeLTRB(10, 10, 90, 90))
//	dl := b.Build()
type Builder struct {
	opts builderOptions

	buf     buffer
	offsets []int
	refs    []any

	opCount     int
	nestedOps   int
	nestedBytes int
	depth       int

	current           paint.Paint
	opacityCompatible bool

	layers     []layerFrame
	layerDepth int
	tracker    *clip.Tracker
	acc        bounds.Accumulator

	modifiesTransparentBlack bool
	uiThreadSafe             bool
}

// layerFrame is one level of the save stack.
type layerFrame struct {
	// deferred is true while a plain Save has not been written out.
	deferred   bool
	isLayer    bool
	saveOffset int
	saveIndex  int

	// filter is the image filter a layer applies on restore.
	filter       paint.ImageFilter
	callerBounds geom.Rect
	hasBounds    bool

	cannotInheritOpacity bool
	hasCompatibleOp      bool
	unbounded            bool
	// content is the device bounds of everything drawn, before clipping
	// to the layer's own bounds.
	content geom.Rect
}

// updateOpacity folds one op into the group opacity state. The first
// compatible op is free; any second op or any incompatible op poisons
// the frame.
func (f *layerFrame) updateOpacity(compatible bool) {
	if compatible && !f.hasCompatibleOp && !f.cannotInheritOpacity {
		f.hasCompatibleOp = true
		return
	}
	f.cannotInheritOpacity = true
}

// NewBuilder returns a builder ready to record.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Builder{opts: o}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.buf.reset()
	b.offsets = nil
	b.refs = nil
	b.opCount = 0
	b.nestedOps = 0
	b.nestedBytes = 0
	b.depth = 0
	b.current = paint.New()
	b.opacityCompatible = true
	b.layers = append(b.layers[:0], layerFrame{saveOffset: -1, saveIndex: -1})
	b.layerDepth = 0
	b.tracker = clip.New(b.opts.cull)
	if b.opts.rtree {
		b.acc = bounds.New(bounds.TypeRTree)
	} else {
		b.acc = bounds.New(bounds.TypeRect)
	}
	b.modifiesTransparentBlack = false
	b.uiThreadSafe = true
}

// push appends a record of type T followed by trailing bytes and returns
// its offset. Pointers into the buffer are invalid after a push.
func push[T any](b *Builder, op OpType, rec T, trailingBytes int) int {
	size := recordSize[T](trailingBytes)
	if size > maxRecordSize {
		panic("displaylist: record too large")
	}
	off := b.buf.alloc(size)
	data := b.buf.bytes()
	*at[T](data, off) = rec
	*at[uint32](data, off) = makeHeader(op, size)
	b.offsets = append(b.offsets, off)

	switch cat := op.Category(); {
	case cat == CategoryAttribute:
	case cat.IsRendering() || cat == CategorySaveLayer:
		b.opCount++
		b.depth++
	default:
		b.opCount++
	}
	return off
}

// opIndex is the index the next record will get.
func (b *Builder) opIndex() int { return len(b.offsets) }

// ref stores a shared object in the reference table.
func (b *Builder) ref(v any) uint32 {
	if v == nil {
		return noRef
	}
	b.refs = append(b.refs, v)
	return uint32(len(b.refs) - 1)
}

func (b *Builder) refImage(img paint.Image) uint32 {
	b.noteImage(img)
	return b.ref(img)
}

func (b *Builder) noteImage(img paint.Image) {
	if tb, ok := img.(paint.ThreadBound); ok && !tb.IsUIThreadSafe() {
		b.uiThreadSafe = false
	}
}

func (b *Builder) top() *layerFrame { return &b.layers[len(b.layers)-1] }

// Attributes returns the attribute values currently in effect.
func (b *Builder) Attributes() paint.Paint { return b.current }

// Attribute setters.

// SetAntiAlias implements Dispatcher.
func (b *Builder) SetAntiAlias(aa bool) {
	if b.current.AntiAlias == aa {
		return
	}
	b.current.AntiAlias = aa
	push(b, OpSetAntiAlias, boolOp{value: boolU32(aa)}, 0)
}

// SetDither implements Dispatcher.
func (b *Builder) SetDither(dither bool) {
	if b.current.Dither == dither {
		return
	}
	b.current.Dither = dither
	push(b, OpSetDither, boolOp{value: boolU32(dither)}, 0)
}

// SetInvertColors implements Dispatcher.
func (b *Builder) SetInvertColors(invert bool) {
	if b.current.InvertColors == invert {
		return
	}
	b.current.InvertColors = invert
	push(b, OpSetInvertColors, boolOp{value: boolU32(invert)}, 0)
	b.updateAttributeOpacity()
}

// SetStyle implements Dispatcher.
func (b *Builder) SetStyle(style paint.Style) {
	if b.current.Style == style {
		return
	}
	b.current.Style = style
	push(b, OpSetStyle, u32Op{value: uint32(style)}, 0)
}

// SetStrokeWidth implements Dispatcher.
func (b *Builder) SetStrokeWidth(width float32) {
	if b.current.StrokeWidth == width {
		return
	}
	b.current.StrokeWidth = width
	push(b, OpSetStrokeWidth, f32Op{value: width}, 0)
}

// SetStrokeMiter implements Dispatcher.
func (b *Builder) SetStrokeMiter(limit float32) {
	if b.current.StrokeMiter == limit {
		return
	}
	b.current.StrokeMiter = limit
	push(b, OpSetStrokeMiter, f32Op{value: limit}, 0)
}

// SetStrokeCap implements Dispatcher.
func (b *Builder) SetStrokeCap(c paint.Cap) {
	if b.current.StrokeCap == c {
		return
	}
	b.current.StrokeCap = c
	push(b, OpSetStrokeCap, u32Op{value: uint32(c)}, 0)
}

// SetStrokeJoin implements Dispatcher.
func (b *Builder) SetStrokeJoin(j paint.Join) {
	if b.current.StrokeJoin == j {
		return
	}
	b.current.StrokeJoin = j
	push(b, OpSetStrokeJoin, u32Op{value: uint32(j)}, 0)
}

// SetColor implements Dispatcher.
func (b *Builder) SetColor(c paint.Color) {
	if b.current.Color == c {
		return
	}
	b.current.Color = c
	push(b, OpSetColor, u32Op{value: uint32(c)}, 0)
}

// SetBlendMode implements Dispatcher. It also clears any blender.
func (b *Builder) SetBlendMode(mode paint.BlendMode) {
	if b.current.BlendMode == mode && b.current.Blender == nil {
		return
	}
	b.current.BlendMode = mode
	b.current.Blender = nil
	push(b, OpSetBlendMode, u32Op{value: uint32(mode)}, 0)
	b.updateAttributeOpacity()
}

// SetBlender implements Dispatcher. A nil blender resets to SrcOver and
// a blender equivalent to a mode is recorded as that mode.
func (b *Builder) SetBlender(bl paint.Blender) {
	if bl == nil {
		b.SetBlendMode(paint.BlendSrcOver)
		return
	}
	if mode, ok := bl.AsBlendMode(); ok {
		b.SetBlendMode(mode)
		return
	}
	if paint.Equal(b.current.Blender, bl) {
		return
	}
	b.current.Blender = bl
	push(b, OpSetBlender, refOp{ref: b.ref(bl)}, 0)
	b.updateAttributeOpacity()
}

// SetColorSource implements Dispatcher.
func (b *Builder) SetColorSource(s paint.ColorSource) {
	if paint.Equal(b.current.ColorSource, s) {
		return
	}
	b.current.ColorSource = s
	if ics, ok := s.(*paint.ImageColorSource); ok && ics != nil {
		b.noteImage(ics.Image)
	}
	push(b, OpSetColorSource, refOp{ref: b.ref(s)}, 0)
}

// SetColorFilter implements Dispatcher.
func (b *Builder) SetColorFilter(f paint.ColorFilter) {
	if paint.Equal(b.current.ColorFilter, f) {
		return
	}
	b.current.ColorFilter = f
	push(b, OpSetColorFilter, refOp{ref: b.ref(f)}, 0)
	b.updateAttributeOpacity()
}

// SetImageFilter implements Dispatcher.
func (b *Builder) SetImageFilter(f paint.ImageFilter) {
	if paint.Equal(b.current.ImageFilter, f) {
		return
	}
	b.current.ImageFilter = f
	push(b, OpSetImageFilter, refOp{ref: b.ref(f)}, 0)
}

// SetMaskFilter implements Dispatcher.
func (b *Builder) SetMaskFilter(f paint.MaskFilter) {
	if paint.Equal(b.current.MaskFilter, f) {
		return
	}
	b.current.MaskFilter = f
	push(b, OpSetMaskFilter, refOp{ref: b.ref(f)}, 0)
}

// SetPathEffect implements Dispatcher.
func (b *Builder) SetPathEffect(e paint.PathEffect) {
	if paint.Equal(b.current.PathEffect, e) {
		return
	}
	b.current.PathEffect = e
	push(b, OpSetPathEffect, refOp{ref: b.ref(e)}, 0)
}

// updateAttributeOpacity recomputes whether the current attributes let
// an ancestor apply opacity to a single op instead of a whole layer.
func (b *Builder) updateAttributeOpacity() {
	b.opacityCompatible = b.current.Blender == nil &&
		b.current.BlendMode == paint.BlendSrcOver &&
		b.current.ColorFilter == nil &&
		!b.current.InvertColors
}

// paintNopsOnTransparency reports whether drawing transparent black with
// the attributes an op consults leaves the destination unchanged.
func (b *Builder) paintNopsOnTransparency(flags AttributeFlags) bool {
	if flags.IgnoresPaint() {
		return true
	}
	if flags.AppliesBlend() {
		if b.current.Blender != nil {
			return false
		}
		if !b.current.BlendMode.NopsOnTransparentBlack() {
			return false
		}
	}
	if flags.AppliesImageFilter() && b.current.ImageFilter != nil &&
		b.current.ImageFilter.ModifiesTransparentBlack() {
		return false
	}
	if flags.AppliesColorFilter() && b.current.ColorFilter != nil &&
		b.current.ColorFilter.ModifiesTransparentBlack() {
		return false
	}
	return true
}

// Build finalizes the recording and resets the builder, keeping its
// options. Open saves are closed first.
func (b *Builder) Build() *DisplayList {
	for len(b.layers) > 1 {
		b.Restore()
	}
	root := b.layers[0]

	dl := &DisplayList{
		id:                       nextUniqueID.Add(1),
		words:                    b.buf.words,
		data:                     b.buf.bytes(),
		offsets:                  b.offsets,
		refs:                     b.refs,
		opCount:                  b.opCount,
		nestedOps:                b.nestedOps,
		nestedBytes:              b.nestedBytes,
		depth:                    b.depth,
		bounds:                   b.acc.Bounds(),
		canApplyGroupOpacity:     !root.cannotInheritOpacity,
		modifiesTransparentBlack: b.modifiesTransparentBlack,
		unbounded:                root.unbounded,
		uiThreadSafe:             b.uiThreadSafe,
	}
	if rt, ok := b.acc.(*bounds.RTree); ok {
		dl.rtree = rt.BuildRTree()
	}

	Logger().Debug("displaylist: built",
		"id", dl.id,
		"ops", dl.opCount,
		"bytes", len(dl.data),
		"rtree", dl.rtree != nil,
		"accumulator", b.acc.Type())

	b.layers = nil
	b.reset()
	return dl
}
