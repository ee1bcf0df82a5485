package displaylist

import (
	"bytes"
	"reflect"
	"unsafe"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

// Equals reports whether both lists record the same ops with the same
// arguments. Shared objects are compared by value (paths, effects,
// vertices, sub-lists) or by identity (images, text blobs).
func (dl *DisplayList) Equals(other *DisplayList) bool {
	if dl == other {
		return true
	}
	if dl == nil || other == nil {
		return false
	}
	if len(dl.offsets) != len(other.offsets) ||
		dl.opCount != other.opCount ||
		len(dl.data) != len(other.data) {
		return false
	}
	for i, off := range dl.offsets {
		if other.offsets[i] != off {
			return false
		}
		h := *at[uint32](dl.data, off)
		if h != *at[uint32](other.data, off) {
			return false
		}
		end := off + headerSize(h)
		a, b := dl.data[off:end], other.data[off:end]
		if !hasRefs(headerOp(h)) {
			if !bytes.Equal(a, b) {
				return false
			}
			continue
		}
		if !dl.recordEqual(other, headerOp(h), off) {
			return false
		}
	}
	return true
}

// hasRefs reports whether records of type op point into the reference
// table.
func hasRefs(op OpType) bool {
	switch op {
	case OpSetBlender, OpSetColorSource, OpSetColorFilter, OpSetImageFilter,
		OpSetMaskFilter, OpSetPathEffect,
		OpSaveLayerBackdrop, OpClipPath, OpDrawPath, OpDrawVertices,
		OpDrawImage, OpDrawImageWithAttr, OpDrawImageRect, OpDrawImageNine,
		OpDrawImageLattice, OpDrawAtlas, OpDrawAtlasCulled,
		OpDrawDisplayList, OpDrawTextBlob,
		OpDrawShadow, OpDrawShadowTransparentOccluder:
		return true
	}
	return false
}

// recordEqual compares a record holding references. The reference
// fields are compared through the objects they name; every other byte
// of the record must match exactly.
func (dl *DisplayList) recordEqual(other *DisplayList, op OpType, off int) bool {
	a, b := dl.data, other.data
	// refsEqual compares the reference stored at byte offset field.
	refsEqual := func(field int, eq func(x, y any) bool) bool {
		ra, rb := *at[uint32](a, off+field), *at[uint32](b, off+field)
		if ra == noRef || rb == noRef {
			return ra == rb
		}
		return eq(dl.refs[ra], other.refs[rb])
	}
	// rest compares the record bytes outside the reference field.
	rest := func(field int) bool {
		end := off + headerSize(*at[uint32](a, off))
		return bytes.Equal(a[off:off+field], b[off:off+field]) &&
			bytes.Equal(a[off+field+4:end], b[off+field+4:end])
	}

	switch op {
	case OpSetBlender:
		return refsEqual(4, effectEqual[paint.Blender])
	case OpSetColorSource:
		return refsEqual(4, effectEqual[paint.ColorSource])
	case OpSetColorFilter:
		return refsEqual(4, effectEqual[paint.ColorFilter])
	case OpSetImageFilter:
		return refsEqual(4, effectEqual[paint.ImageFilter])
	case OpSetMaskFilter:
		return refsEqual(4, effectEqual[paint.MaskFilter])
	case OpSetPathEffect:
		return refsEqual(4, effectEqual[paint.PathEffect])
	case OpSaveLayerBackdrop:
		field := int(unsafe.Offsetof(saveLayerOp{}.backdrop))
		return rest(field) && refsEqual(field, effectEqual[paint.ImageFilter])
	case OpClipPath:
		field := int(unsafe.Offsetof(clipPathOp{}.path))
		return rest(field) && refsEqual(field, pathEqual)
	case OpDrawPath, OpDrawShadow, OpDrawShadowTransparentOccluder:
		return rest(4) && refsEqual(4, pathEqual)
	case OpDrawVertices:
		return rest(4) && refsEqual(4, func(x, y any) bool {
			return x.(*Vertices).Equal(y.(*Vertices))
		})
	case OpDrawDisplayList:
		return rest(4) && refsEqual(4, func(x, y any) bool {
			return x.(*DisplayList).Equals(y.(*DisplayList))
		})
	case OpDrawTextBlob:
		return rest(4) && refsEqual(4, func(x, y any) bool {
			return x.(*text.Blob) == y.(*text.Blob)
		})
	default:
		// Image records keep the image reference right after the header.
		return rest(4) && refsEqual(4, imageEqual)
	}
}

func effectEqual[T paint.Comparable[T]](x, y any) bool {
	return paint.Equal(x.(T), y.(T))
}

// imageEqual compares images by identity. Images whose dynamic type is
// not comparable are never equal.
func imageEqual(x, y any) bool {
	tx := reflect.TypeOf(x)
	if tx != reflect.TypeOf(y) || tx == nil || !tx.Comparable() {
		return false
	}
	return x == y
}

func pathEqual(x, y any) bool {
	return x.(*geom.Path).Equal(y.(*geom.Path))
}
