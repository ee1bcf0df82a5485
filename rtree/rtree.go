// Package rtree implements an immutable, bulk-loaded R-tree mapping
// rectangles to the indices of the drawing operations that produced them.
//
// The tree is built bottom-up from rectangles supplied in recording order.
// Consecutive drawing operations tend to be spatially close, so grouping
// leaves in input order gives tight node bounds without sorting, and keeps
// search results in replay order.
//
// An RTree is safe for concurrent use once constructed.
package rtree

import (
	"slices"

	"github.com/gogpu/displaylist/geom"
)

// fanout is the maximum number of children per node.
const fanout = 8

type node struct {
	bounds geom.Rect
	// For leaves, child is the position in leaves. For interior nodes,
	// child is the first child node and count the number of children.
	child int
	count int
	leaf  bool
}

// RTree is a static spatial index.
type RTree struct {
	leaves  []geom.Rect
	indices []int
	nodes   []node
	root    int
	bounds  geom.Rect
}

// New builds a tree from parallel slices of rects and op indices.
// Empty rects are skipped. When indices is nil, the position of each
// rect is used as its index.
func New(rects []geom.Rect, indices []int) *RTree {
	t := &RTree{root: -1}
	for i, r := range rects {
		if r.IsEmpty() {
			continue
		}
		idx := i
		if indices != nil {
			idx = indices[i]
		}
		t.leaves = append(t.leaves, r)
		t.indices = append(t.indices, idx)
	}
	if len(t.leaves) == 0 {
		return t
	}

	t.nodes = make([]node, 0, len(t.leaves)+len(t.leaves)/(fanout-1)+1)
	for i, r := range t.leaves {
		t.nodes = append(t.nodes, node{bounds: r, child: i, leaf: true})
	}

	// Group each level into parents until a single root remains.
	start, end := 0, len(t.nodes)
	for end-start > 1 {
		for i := start; i < end; i += fanout {
			n := min(fanout, end-i)
			b := geom.EmptyRect()
			for _, c := range t.nodes[i : i+n] {
				b = b.Union(c.bounds)
			}
			t.nodes = append(t.nodes, node{bounds: b, child: i, count: n})
		}
		start, end = end, len(t.nodes)
	}
	t.root = start
	t.bounds = t.nodes[t.root].bounds
	return t
}

// Bounds returns the union of all leaf rects, or an empty rect.
func (t *RTree) Bounds() geom.Rect {
	if t.root < 0 {
		return geom.Rect{}
	}
	return t.bounds
}

// LeafCount returns the number of non-empty rects in the tree.
func (t *RTree) LeafCount() int { return len(t.leaves) }

// NodeCount returns the number of interior nodes.
func (t *RTree) NodeCount() int { return len(t.nodes) - len(t.leaves) }

// Rect returns the rect of the i-th leaf.
func (t *RTree) Rect(i int) geom.Rect { return t.leaves[i] }

// Index returns the op index of the i-th leaf.
func (t *RTree) Index(i int) int { return t.indices[i] }

// Search returns the set of op indices whose rect intersects query,
// ascending. An op indexed under several rects is reported once.
func (t *RTree) Search(query geom.Rect) []int {
	var out []int
	t.searchLeaves(query, func(leaf int) {
		out = append(out, t.indices[leaf])
	})
	slices.Sort(out)
	return slices.Compact(out)
}

// searchLeaves calls fn with the position of every matching leaf, in
// leaf order.
func (t *RTree) searchLeaves(query geom.Rect, fn func(leaf int)) {
	if t.root < 0 || query.IsEmpty() {
		return
	}
	t.visit(t.root, query, fn)
}

func (t *RTree) visit(n int, query geom.Rect, fn func(int)) {
	nd := &t.nodes[n]
	if !nd.bounds.Intersects(query) {
		return
	}
	if nd.leaf {
		fn(nd.child)
		return
	}
	for c := nd.child; c < nd.child+nd.count; c++ {
		t.visit(c, query, fn)
	}
}

// SearchAndConsolidateRects returns the rects intersecting query, merged
// so that overlapping rects are replaced by their union. Rects are
// returned whole, not clipped to query. With deband set, merging repeats
// until no two results overlap.
func (t *RTree) SearchAndConsolidateRects(query geom.Rect, deband bool) []geom.Rect {
	var hits []int
	t.searchLeaves(query, func(leaf int) { hits = append(hits, leaf) })

	var out []geom.Rect
	for _, leaf := range hits {
		out = mergeInto(out, t.leaves[leaf])
	}
	if deband {
		for {
			n := len(out)
			var next []geom.Rect
			for _, r := range out {
				next = mergeInto(next, r)
			}
			out = next
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// mergeInto joins r with the first rect it overlaps, then folds any later
// rect that overlaps the grown result into it.
func mergeInto(list []geom.Rect, r geom.Rect) []geom.Rect {
	first := -1
	for i := range list {
		if list[i].Intersects(r) {
			first = i
			list[i] = list[i].Union(r)
			break
		}
	}
	if first < 0 {
		return append(list, r)
	}
	for i := first + 1; i < len(list); {
		if list[i].Intersects(list[first]) {
			list[first] = list[first].Union(list[i])
			list = slices.Delete(list, i, i+1)
			continue
		}
		i++
	}
	return list
}
