// Package clip tracks the current transform and a conservative estimate
// of the clip bounds while a display list is recorded.
//
// The estimate lives in device space (after the transform). It only ever
// narrows on intersecting clips and is restored on Restore, mirroring
// the save stack of the recording.
package clip

import (
	"math"

	"github.com/gogpu/displaylist/geom"
)

// Op is the clip combination mode.
type Op uint8

// Clip ops.
const (
	Intersect Op = iota
	Difference
)

type state struct {
	matrix geom.Matrix
	cull   geom.Rect
}

// Tracker is a stack of (matrix, device cull rect) pairs.
type Tracker struct {
	current state
	saved   []state
}

// New returns a tracker with an identity matrix and the given cull rect.
// A cull rect with NaN edges is treated as empty.
func New(cull geom.Rect) *Tracker {
	if cull.HasNaN() || cull.IsEmpty() {
		cull = geom.Rect{}
	}
	return &Tracker{
		current: state{matrix: geom.Identity(), cull: cull},
		saved:   make([]state, 0, 8),
	}
}

// Save pushes a copy of the current state.
func (t *Tracker) Save() {
	t.saved = append(t.saved, t.current)
}

// Restore pops the most recent state. Restoring past the root is a no-op.
func (t *Tracker) Restore() {
	if len(t.saved) == 0 {
		return
	}
	t.current = t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]
}

// Matrix returns the current transform.
func (t *Tracker) Matrix() geom.Matrix { return t.current.matrix }

// Concat pre-concatenates m onto the current transform.
func (t *Tracker) Concat(m geom.Matrix) {
	t.current.matrix = t.current.matrix.Concat(m)
}

// SetIdentity resets the transform.
func (t *Tracker) SetIdentity() {
	t.current.matrix = geom.Identity()
}

// DeviceCullRect returns the clip estimate in device space.
func (t *Tracker) DeviceCullRect() geom.Rect { return t.current.cull }

// ResetDeviceCullRect replaces the clip estimate of the current level,
// for content whose output is later spread by a filter. Restore brings
// back the previous estimate.
func (t *Tracker) ResetDeviceCullRect(r geom.Rect) {
	if r.HasNaN() || r.IsEmpty() {
		r = geom.Rect{}
	}
	t.current.cull = r
}

// LocalCullRect returns the clip estimate mapped back into the current
// local space, or an empty rect when the transform is not invertible.
func (t *Tracker) LocalCullRect() geom.Rect {
	if t.current.cull.IsEmpty() {
		return geom.Rect{}
	}
	inv, ok := t.current.matrix.Invert()
	if !ok {
		return geom.Rect{}
	}
	r, ok := inv.MapRect(t.current.cull)
	if !ok {
		return geom.LargestRect
	}
	return r
}

// IsCullRectEmpty reports whether everything is clipped out.
func (t *Tracker) IsCullRectEmpty() bool { return t.current.cull.IsEmpty() }

// ContentCulled reports whether content with the given local bounds is
// entirely outside the clip.
func (t *Tracker) ContentCulled(local geom.Rect) bool {
	if t.current.cull.IsEmpty() || local.IsEmpty() {
		return true
	}
	dev, _ := t.current.matrix.MapRect(local)
	return !dev.Intersects(t.current.cull)
}

// ClipRect applies a rect clip.
func (t *Tracker) ClipRect(r geom.Rect, op Op, aa bool) {
	if op == Intersect {
		t.intersectLocal(r, aa)
	}
}

// ClipRRect applies a rounded rect clip using its bounds.
func (t *Tracker) ClipRRect(rr geom.RRect, op Op, aa bool) {
	t.ClipRect(rr.Rect, op, aa)
}

// ClipPath applies a path clip. An inverse-fill path never narrows an
// intersecting clip; a difference clip with an inverse-fill path keeps
// only the inside of the path and so narrows to the path bounds.
func (t *Tracker) ClipPath(p *geom.Path, op Op, aa bool) {
	switch {
	case op == Intersect && !p.IsInverseFillType():
		t.intersectLocal(p.Bounds(), aa)
	case op == Difference && p.IsInverseFillType():
		t.intersectLocal(p.Bounds(), aa)
	}
}

func (t *Tracker) intersectLocal(r geom.Rect, aa bool) {
	if t.current.cull.IsEmpty() {
		return
	}
	if r.IsEmpty() {
		t.current.cull = geom.Rect{}
		return
	}
	dev, _ := t.current.matrix.MapRect(r)
	if !aa {
		dev = roundNearest(dev)
	}
	out, ok := t.current.cull.Intersect(dev)
	if !ok {
		out = geom.Rect{}
	}
	t.current.cull = out
}

// roundNearest snaps edges to the nearest integer, the way a non
// anti-aliased clip lands on pixel boundaries.
func roundNearest(r geom.Rect) geom.Rect {
	round := func(v float32) float32 { return float32(math.Floor(float64(v) + 0.5)) }
	return geom.MakeLTRB(round(r.Left), round(r.Top), round(r.Right), round(r.Bottom))
}
