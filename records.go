package displaylist

import (
	"unsafe"

	"golang.org/x/exp/constraints"
	"honnef.co/go/safeish"

	"github.com/gogpu/displaylist/geom"
)

// Record layout.
//
// Every record starts with a uint32 header: the op type in the low 8 bits
// and the record size in bytes in the high 24 bits. The size covers the
// fixed struct and any trailing arrays and is a multiple of recordAlign,
// so records can be walked forward using the header alone.
//
// Record structs hold plain data only. Shared objects (paths, effects,
// images, blobs, sub-lists) live in the list's reference table and are
// addressed by index; noRef stands for nil. Fields are ordered so that no
// struct has implicit padding, which keeps unused bytes zero and lets
// plain records be compared byte for byte.

const (
	recordAlign   = 8
	maxRecordSize = 1<<24 - 1
	noRef         = ^uint32(0)
)

func alignUp[T constraints.Integer](n, align T) T {
	return (n + align - 1) / align * align
}

func makeHeader(op OpType, size int) uint32 {
	return uint32(op) | uint32(size)<<8
}

func headerOp(h uint32) OpType { return OpType(h & 0xFF) }
func headerSize(h uint32) int  { return int(h >> 8) }

func sizeOf[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// recordSize returns the aligned size of a record of type T followed by
// trailing bytes.
func recordSize[T any](trailing int) int {
	return alignUp(sizeOf[T]()+trailing, recordAlign)
}

// buffer is an append-only, 8-byte aligned byte arena.
type buffer struct {
	words []uint64
	used  int
}

func (b *buffer) bytes() []byte {
	if len(b.words) == 0 {
		return nil
	}
	return safeish.SliceCast[[]byte](b.words)[:b.used]
}

// alloc reserves size bytes (a multiple of recordAlign) and returns the
// offset of the reservation. New space is zeroed.
func (b *buffer) alloc(size int) int {
	off := b.used
	need := (off + size) / recordAlign
	if need > cap(b.words) {
		grown := make([]uint64, need, max(need, 2*cap(b.words), 64))
		copy(grown, b.words)
		b.words = grown
	} else {
		b.words = b.words[:need]
	}
	b.used += size
	return off
}

func (b *buffer) reset() {
	b.words = nil
	b.used = 0
}

// at views the record of type T stored at off.
func at[T any](data []byte, off int) *T {
	return safeish.Cast[*T](&data[off])
}

// trailing views n elements of type E stored at byte offset off.
func trailing[E any](data []byte, off, n int) []E {
	if n == 0 {
		return nil
	}
	size := sizeOf[E]()
	return safeish.SliceCast[[]E](data[off : off+n*size])
}

func writeTrailing[E any](data []byte, off int, src []E) int {
	if len(src) == 0 {
		return off
	}
	copy(trailing[E](data, off, len(src)), src)
	return off + len(src)*sizeOf[E]()
}

func boolU8(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

func boolU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// Attribute records.

type boolOp struct {
	hdr   uint32
	value uint32
}

type u32Op struct {
	hdr   uint32
	value uint32
}

type f32Op struct {
	hdr   uint32
	value float32
}

type refOp struct {
	hdr uint32
	ref uint32
}

// Save stack records.

type saveOp struct {
	hdr uint32
	// restoreIndex is the index of the matching Restore record.
	restoreIndex uint32
}

type saveLayerOp struct {
	hdr          uint32
	restoreIndex uint32
	options      uint32
	bounds       geom.Rect
	backdrop     uint32
}

type emptyOp struct {
	hdr uint32
}

// Transform records.

type xyOp struct {
	hdr  uint32
	x, y float32
}

type affineOp struct {
	hdr uint32
	// mxx, mxy, mxt, myx, myy, myt
	m [6]float32
}

type perspectiveOp struct {
	hdr uint32
	_   uint32
	m   geom.Matrix
}

// Clip records.

type clipRectOp struct {
	hdr  uint32
	op   uint8
	aa   uint8
	_    [2]uint8
	rect geom.Rect
}

type clipRRectOp struct {
	hdr   uint32
	op    uint8
	aa    uint8
	_     [2]uint8
	rrect geom.RRect
}

type clipPathOp struct {
	hdr  uint32
	op   uint8
	aa   uint8
	_    [2]uint8
	path uint32
}

// Rendering records.

type drawColorOp struct {
	hdr   uint32
	color uint32
	mode  uint32
}

type lineOp struct {
	hdr    uint32
	p0, p1 geom.Point
}

type rectOp struct {
	hdr  uint32
	rect geom.Rect
}

type circleOp struct {
	hdr    uint32
	center geom.Point
	radius float32
}

type rrectOp struct {
	hdr   uint32
	rrect geom.RRect
}

type drrectOp struct {
	hdr          uint32
	outer, inner geom.RRect
}

type pathOp struct {
	hdr  uint32
	path uint32
}

type arcOp struct {
	hdr        uint32
	bounds     geom.Rect
	start      float32
	sweep      float32
	withCenter uint32
}

// pointsOp is followed by count geom.Point values.
type pointsOp struct {
	hdr   uint32
	mode  uint32
	count uint32
}

type verticesOp struct {
	hdr      uint32
	vertices uint32
	mode     uint32
}

type imageOp struct {
	hdr      uint32
	image    uint32
	point    geom.Point
	sampling uint32
}

type imageRectOp struct {
	hdr        uint32
	image      uint32
	src, dst   geom.Rect
	sampling   uint32
	withAttr   uint8
	constraint uint8
	_          [2]uint8
}

type imageNineOp struct {
	hdr      uint32
	image    uint32
	center   geom.IRect
	dst      geom.Rect
	sampling uint32
	withAttr uint32
}

// latticeOp is followed by xCount then yCount int32 dividers.
type latticeOp struct {
	hdr      uint32
	image    uint32
	src      geom.IRect
	dst      geom.Rect
	sampling uint32
	withAttr uint32
	xCount   uint32
	yCount   uint32
}

// atlasOp is followed by count geom.RSTransform values, count tex rects
// and, if hasColors, count colors.
type atlasOp struct {
	hdr       uint32
	atlas     uint32
	count     uint32
	hasColors uint32
	mode      uint32
	sampling  uint32
	withAttr  uint32
}

type atlasCulledOp struct {
	atlasOp
	cull geom.Rect
}

type displayListOp struct {
	hdr     uint32
	list    uint32
	opacity float32
}

type textBlobOp struct {
	hdr  uint32
	blob uint32
	x, y float32
}

type shadowOp struct {
	hdr       uint32
	path      uint32
	color     uint32
	elevation float32
	dpr       float32
}
