// Package bounds accumulates per-operation bounds for a recording,
// following the same save/restore nesting as the recording itself.
//
// Two strategies consume the same (rect, op index) stream: Rect keeps a
// running union only, RTree additionally keeps every individual pair so
// a spatial index can be built at the end.
package bounds

import (
	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/rtree"
)

// Type identifies an accumulator strategy.
type Type uint8

// Accumulator types.
const (
	TypeRect Type = iota
	TypeRTree
)

// String returns the strategy name.
func (t Type) String() string {
	if t == TypeRTree {
		return "RTree"
	}
	return "Rect"
}

// Mapper rewrites layer bounds on restore, for example to account for an
// image filter. It returns false when the result cannot be bounded.
type Mapper func(geom.Rect) (geom.Rect, bool)

// Accumulator collects bounds with save/restore semantics.
type Accumulator interface {
	// Accumulate adds the bounds of the op at index. Empty rects are ignored.
	Accumulate(r geom.Rect, index int)
	// Save starts a nested accumulation level.
	Save()
	// Restore folds the current level into its parent unchanged.
	Restore()
	// RestoreMapped folds the current level into its parent after passing
	// it through mapper (if non-nil) and intersecting it with clip (if
	// non-nil). It reports whether every mapping succeeded.
	RestoreMapped(mapper Mapper, clip *geom.Rect) bool
	// Bounds returns the union of everything accumulated at the current
	// level, or an empty rect.
	Bounds() geom.Rect
	// Type returns the strategy.
	Type() Type
}

// New returns an accumulator of the given type.
func New(t Type) Accumulator {
	if t == TypeRTree {
		return NewRTree()
	}
	return NewRect()
}

// Rect accumulates a single running union per level.
type Rect struct {
	rect  geom.Rect
	saved []geom.Rect
}

// NewRect returns an empty union accumulator.
func NewRect() *Rect {
	return &Rect{rect: geom.EmptyRect()}
}

// Accumulate implements Accumulator.
func (a *Rect) Accumulate(r geom.Rect, _ int) {
	if r.IsEmpty() {
		return
	}
	a.rect = a.rect.Union(r)
}

// Save implements Accumulator.
func (a *Rect) Save() {
	a.saved = append(a.saved, a.rect)
	a.rect = geom.EmptyRect()
}

// Restore implements Accumulator.
func (a *Rect) Restore() {
	a.RestoreMapped(nil, nil)
}

// RestoreMapped implements Accumulator.
func (a *Rect) RestoreMapped(mapper Mapper, clip *geom.Rect) bool {
	if len(a.saved) == 0 {
		return true
	}
	layer := a.rect
	a.rect = a.saved[len(a.saved)-1]
	a.saved = a.saved[:len(a.saved)-1]
	if layer.IsEmpty() {
		return true
	}
	if mapper != nil {
		mapped, ok := mapper(layer)
		if !ok {
			return false
		}
		layer = mapped
	}
	if clip != nil {
		var ok bool
		if layer, ok = layer.Intersect(*clip); !ok {
			return true
		}
	}
	a.Accumulate(layer, -1)
	return true
}

// Bounds implements Accumulator.
func (a *Rect) Bounds() geom.Rect {
	if a.rect.IsEmpty() {
		return geom.Rect{}
	}
	return a.rect
}

// Type implements Accumulator.
func (a *Rect) Type() Type { return TypeRect }

// RTree keeps every accumulated rect with its op index.
type RTree struct {
	rects   []geom.Rect
	indices []int
	offsets []int
}

// NewRTree returns an empty indexing accumulator.
func NewRTree() *RTree {
	return &RTree{}
}

// Accumulate implements Accumulator.
func (a *RTree) Accumulate(r geom.Rect, index int) {
	if r.IsEmpty() {
		return
	}
	a.rects = append(a.rects, r)
	a.indices = append(a.indices, index)
}

// Save implements Accumulator.
func (a *RTree) Save() {
	a.offsets = append(a.offsets, len(a.rects))
}

// Restore implements Accumulator.
func (a *RTree) Restore() {
	if len(a.offsets) > 0 {
		a.offsets = a.offsets[:len(a.offsets)-1]
	}
}

// RestoreMapped implements Accumulator. Rects of the closing level are
// rewritten in place; rects that fall outside clip are dropped. A rect the
// mapper cannot bound becomes the clip.
func (a *RTree) RestoreMapped(mapper Mapper, clip *geom.Rect) bool {
	if len(a.offsets) == 0 {
		return true
	}
	start := a.offsets[len(a.offsets)-1]
	a.offsets = a.offsets[:len(a.offsets)-1]

	ok := true
	kept := start
	for i := start; i < len(a.rects); i++ {
		r := a.rects[i]
		if mapper != nil {
			mapped, mok := mapper(r)
			if !mok {
				// Keep the op findable; the clip bounds it below.
				ok = false
				mapped = geom.LargestRect
			}
			r = mapped
		}
		if clip != nil {
			var in bool
			if r, in = r.Intersect(*clip); !in {
				continue
			}
		}
		a.rects[kept] = r
		a.indices[kept] = a.indices[i]
		kept++
	}
	a.rects = a.rects[:kept]
	a.indices = a.indices[:kept]
	return ok
}

// Bounds implements Accumulator.
func (a *RTree) Bounds() geom.Rect {
	start := 0
	if len(a.offsets) > 0 {
		start = a.offsets[len(a.offsets)-1]
	}
	b := geom.EmptyRect()
	for _, r := range a.rects[start:] {
		b = b.Union(r)
	}
	if b.IsEmpty() {
		return geom.Rect{}
	}
	return b
}

// Type implements Accumulator.
func (a *RTree) Type() Type { return TypeRTree }

// BuildRTree builds a spatial index from everything accumulated so far.
func (a *RTree) BuildRTree() *rtree.RTree {
	return rtree.New(a.rects, a.indices)
}
