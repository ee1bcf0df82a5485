package displaylist

import (
	"sync/atomic"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/rtree"
)

var nextUniqueID atomic.Uint64

// DisplayList is an immutable recording produced by Builder.Build. It is
// safe to replay from several goroutines at once and to share as a
// sub-list of other recordings.
type DisplayList struct {
	id uint64

	// words keeps data 8-byte aligned.
	words   []uint64
	data    []byte
	offsets []int
	refs    []any

	opCount     int
	nestedOps   int
	nestedBytes int
	depth       int

	bounds geom.Rect
	rtree  *rtree.RTree

	canApplyGroupOpacity     bool
	modifiesTransparentBlack bool
	unbounded                bool
	uiThreadSafe             bool
}

// UniqueID returns an identifier no other list in this process shares.
func (dl *DisplayList) UniqueID() uint64 { return dl.id }

// OpCount returns the number of non-attribute ops. With nested set, ops
// of sub-lists are included, recursively.
func (dl *DisplayList) OpCount(nested bool) int {
	if nested {
		return dl.opCount + dl.nestedOps
	}
	return dl.opCount
}

// Bytes returns the size of the record storage. With nested set, the
// storage of sub-lists is included, recursively.
func (dl *DisplayList) Bytes(nested bool) int {
	if nested {
		return len(dl.data) + dl.nestedBytes
	}
	return len(dl.data)
}

// RecordCount returns the number of records, attribute records included.
// Record indices used by DispatchIndices and the RTree range over
// [0, RecordCount).
func (dl *DisplayList) RecordCount() int { return len(dl.offsets) }

// TotalDepth returns the number of rendering ops and layers, sub-lists
// included, which bounds the depth values a renderer needs.
func (dl *DisplayList) TotalDepth() int { return dl.depth }

// Bounds returns the device-space bounds of everything drawn, clipped to
// the recording cull rect. An empty list has empty bounds.
func (dl *DisplayList) Bounds() geom.Rect { return dl.bounds }

// HasRTree reports whether the list carries a spatial index.
func (dl *DisplayList) HasRTree() bool { return dl.rtree != nil }

// RTree returns the spatial index, or nil when the list was recorded
// without one.
func (dl *DisplayList) RTree() *rtree.RTree { return dl.rtree }

// CanApplyGroupOpacity reports whether an opacity applied to the whole
// list gives the same result when applied to each op separately.
func (dl *DisplayList) CanApplyGroupOpacity() bool { return dl.canApplyGroupOpacity }

// ModifiesTransparentBlack reports whether the list can change pixels
// outside its bounds, such as through a Clear or Src blend.
func (dl *DisplayList) ModifiesTransparentBlack() bool { return dl.modifiesTransparentBlack }

// IsUIThreadSafe reports whether the list may be replayed off the thread
// that recorded it. It is false when a captured image, or a sub-list,
// says otherwise.
func (dl *DisplayList) IsUIThreadSafe() bool { return dl.uiThreadSafe }

// OpType returns the type of record i.
func (dl *DisplayList) OpType(i int) OpType {
	return headerOp(*at[uint32](dl.data, dl.offsets[i]))
}

// OpCategory returns the category of record i, or CategoryInvalid when i
// is out of range.
func (dl *DisplayList) OpCategory(i int) OpCategory {
	if i < 0 || i >= len(dl.offsets) {
		return CategoryInvalid
	}
	return dl.OpType(i).Category()
}
