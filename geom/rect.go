package geom

import (
	"math"
)

// Point is a 2D point in float32 coordinates.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Rect is an axis-aligned rectangle given by its edges.
// A rect is empty when Left >= Right or Top >= Bottom, or when any edge is NaN.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// maxCull bounds the largest finite cull rect.
const maxCull = 1e9

// LargestRect is the default cull rect: very large but finite.
var LargestRect = Rect{Left: -maxCull, Top: -maxCull, Right: maxCull, Bottom: maxCull}

// MakeLTRB returns a rect from its four edges.
func MakeLTRB(l, t, r, b float32) Rect {
	return Rect{Left: l, Top: t, Right: r, Bottom: b}
}

// MakeXYWH returns a rect from its origin and size.
func MakeXYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// MakeWH returns a rect at the origin with the given size.
func MakeWH(w, h float32) Rect {
	return Rect{Right: w, Bottom: h}
}

// EmptyRect returns the inverted sentinel used as the identity for Union.
func EmptyRect() Rect {
	return Rect{
		Left:   math.MaxFloat32,
		Top:    math.MaxFloat32,
		Right:  -math.MaxFloat32,
		Bottom: -math.MaxFloat32,
	}
}

// Width returns Right-Left.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) * 0.5, Y: (r.Top + r.Bottom) * 0.5}
}

// IsEmpty reports whether the rect encloses no area.
// NaN edges compare false, so a rect with NaN is empty.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// IsFinite reports whether all edges are finite.
func (r Rect) IsFinite() bool {
	return isFinite(r.Left) && isFinite(r.Top) && isFinite(r.Right) && isFinite(r.Bottom)
}

// HasNaN reports whether any edge is NaN.
func (r Rect) HasNaN() bool {
	return r.Left != r.Left || r.Top != r.Top || r.Right != r.Right || r.Bottom != r.Bottom
}

// Sorted returns the rect with edges swapped so that Left <= Right and Top <= Bottom.
func (r Rect) Sorted() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Intersect returns the intersection of r and o. The boolean is false
// when the intersection is empty, in which case the returned rect is empty.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// Intersects reports whether r and o share a region of nonzero area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom &&
		!r.IsEmpty() && !o.IsEmpty()
}

// Union returns the smallest rect containing both. Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// UnionPoint extends the rect to include (x, y). Works from EmptyRect.
func (r Rect) UnionPoint(x, y float32) Rect {
	return Rect{
		Left:   min(r.Left, x),
		Top:    min(r.Top, y),
		Right:  max(r.Right, x),
		Bottom: max(r.Bottom, y),
	}
}

// Contains reports whether o lies entirely within r. An empty o is never contained.
func (r Rect) Contains(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Left <= o.Left && r.Top <= o.Top && r.Right >= o.Right && r.Bottom >= o.Bottom
}

// ContainsPoint reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Outset grows the rect by dx horizontally and dy vertically on each side.
func (r Rect) Outset(dx, dy float32) Rect {
	return Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Inset shrinks the rect by dx horizontally and dy vertically on each side.
func (r Rect) Inset(dx, dy float32) Rect {
	return r.Outset(-dx, -dy)
}

// Offset translates the rect.
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// RoundOut returns the smallest integer-aligned rect containing r.
func (r Rect) RoundOut() Rect {
	return Rect{
		Left:   float32(math.Floor(float64(r.Left))),
		Top:    float32(math.Floor(float64(r.Top))),
		Right:  float32(math.Ceil(float64(r.Right))),
		Bottom: float32(math.Ceil(float64(r.Bottom))),
	}
}

// IRect is an integer rectangle, used for image sub-regions and
// nine-patch centers.
type IRect struct {
	Left, Top, Right, Bottom int32
}

// MakeIRectLTRB returns an integer rect from its four edges.
func MakeIRectLTRB(l, t, r, b int32) IRect {
	return IRect{Left: l, Top: t, Right: r, Bottom: b}
}

// Width returns Right-Left.
func (r IRect) Width() int32 { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r IRect) Height() int32 { return r.Bottom - r.Top }

// IsEmpty reports whether the rect encloses no area.
func (r IRect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Rect converts to a float rect.
func (r IRect) Rect() Rect {
	return Rect{Left: float32(r.Left), Top: float32(r.Top), Right: float32(r.Right), Bottom: float32(r.Bottom)}
}

// RSTransform is a compressed rotate-scale-translate transform used by atlas
// draws: x' = SCos*x - SSin*y + TX, y' = SSin*x + SCos*y + TY.
type RSTransform struct {
	SCos, SSin, TX, TY float32
}

// MakeRSTransform builds a transform from scale, rotation (radians) and
// translation, rotating and scaling about (ax, ay) in the source.
func MakeRSTransform(scale, radians, tx, ty, ax, ay float32) RSTransform {
	s := float32(math.Sin(float64(radians))) * scale
	c := float32(math.Cos(float64(radians))) * scale
	return RSTransform{
		SCos: c,
		SSin: s,
		TX:   tx + -c*ax + s*ay,
		TY:   ty + -s*ax - c*ay,
	}
}

// MapRectBounds returns the bounds of the quad produced by mapping a
// w by h rect at the origin.
func (t RSTransform) MapRectBounds(w, h float32) Rect {
	b := EmptyRect()
	for _, p := range [4]Point{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		x := t.SCos*p.X - t.SSin*p.Y + t.TX
		y := t.SSin*p.X + t.SCos*p.Y + t.TY
		b = b.UnionPoint(x, y)
	}
	return b
}

func isFinite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
