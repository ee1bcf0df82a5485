package geom

import (
	"iter"
	"slices"
)

// Verb is a path construction command.
type Verb uint8

// Path verbs.
const (
	VerbMove Verb = iota
	VerbLine
	VerbQuad
	VerbCubic
	VerbClose
)

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "Move"
	case VerbLine:
		return "Line"
	case VerbQuad:
		return "Quad"
	case VerbCubic:
		return "Cubic"
	case VerbClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// PointCount returns the number of points the verb consumes.
func (v Verb) PointCount() int {
	switch v {
	case VerbMove, VerbLine:
		return 1
	case VerbQuad:
		return 2
	case VerbCubic:
		return 3
	default:
		return 0
	}
}

// FillType selects the winding rule for a path.
type FillType uint8

// Fill types.
const (
	FillNonZero FillType = iota
	FillEvenOdd
)

// shape records that a path was built from a single primitive so that
// clips and draws can be reduced to the cheaper primitive op.
type shape uint8

const (
	shapeNone shape = iota
	shapeRect
	shapeOval
	shapeRRect
)

// Path is a vector path made of verbs and points with incrementally
// maintained bounds. Bounds include control points and are therefore
// conservative.
type Path struct {
	verbs    []Verb
	points   []Point
	bounds   Rect
	fill     FillType
	inverse  bool
	shape    shape
	rrect    RRect
	start    Point
	hasStart bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{bounds: EmptyRect()}
}

// NewRectPath returns a closed rect path that remembers its shape.
func NewRectPath(r Rect) *Path {
	return NewPath().AddRect(r)
}

// NewOvalPath returns a closed oval path that remembers its shape.
func NewOvalPath(r Rect) *Path {
	return NewPath().AddOval(r)
}

// NewRRectPath returns a closed rounded rect path that remembers its shape.
func NewRRectPath(rr RRect) *Path {
	return NewPath().AddRRect(rr)
}

func (p *Path) push(v Verb, pts ...Point) {
	p.verbs = append(p.verbs, v)
	for _, pt := range pts {
		p.points = append(p.points, pt)
		p.bounds = p.bounds.UnionPoint(pt.X, pt.Y)
	}
	p.shape = shapeNone
}

// MoveTo starts a new contour.
func (p *Path) MoveTo(x, y float32) *Path {
	p.push(VerbMove, Point{x, y})
	p.start, p.hasStart = Point{x, y}, true
	return p
}

func (p *Path) ensureStart() {
	if !p.hasStart {
		p.MoveTo(0, 0)
	}
}

// LineTo adds a line from the current point.
func (p *Path) LineTo(x, y float32) *Path {
	p.ensureStart()
	p.push(VerbLine, Point{x, y})
	return p
}

// QuadTo adds a quadratic Bezier with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	p.ensureStart()
	p.push(VerbQuad, Point{cx, cy}, Point{x, y})
	return p
}

// CubicTo adds a cubic Bezier with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	p.ensureStart()
	p.push(VerbCubic, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
	return p
}

// Close closes the current contour.
func (p *Path) Close() *Path {
	if p.hasStart {
		p.push(VerbClose)
		p.hasStart = false
	}
	return p
}

// AddRect adds a closed rect contour.
func (p *Path) AddRect(r Rect) *Path {
	wasEmpty := len(p.verbs) == 0
	p.MoveTo(r.Left, r.Top).
		LineTo(r.Right, r.Top).
		LineTo(r.Right, r.Bottom).
		LineTo(r.Left, r.Bottom).
		Close()
	if wasEmpty {
		p.shape, p.rrect = shapeRect, MakeRRectRect(r)
	}
	return p
}

// kappa approximates a quarter circle with a cubic Bezier.
const kappa = 0.5522847498

// AddOval adds a closed ellipse contour inscribed in r.
func (p *Path) AddOval(r Rect) *Path {
	wasEmpty := len(p.verbs) == 0
	p.addEllipse(r)
	if wasEmpty {
		p.shape, p.rrect = shapeOval, MakeRRectOval(r)
	}
	return p
}

func (p *Path) addEllipse(r Rect) {
	c := r.Center()
	rx, ry := r.Width()*0.5, r.Height()*0.5
	kx, ky := rx*kappa, ry*kappa
	p.MoveTo(c.X+rx, c.Y)
	p.CubicTo(c.X+rx, c.Y+ky, c.X+kx, c.Y+ry, c.X, c.Y+ry)
	p.CubicTo(c.X-kx, c.Y+ry, c.X-rx, c.Y+ky, c.X-rx, c.Y)
	p.CubicTo(c.X-rx, c.Y-ky, c.X-kx, c.Y-ry, c.X, c.Y-ry)
	p.CubicTo(c.X+kx, c.Y-ry, c.X+rx, c.Y-ky, c.X+rx, c.Y)
	p.Close()
}

// AddCircle adds a closed circle contour.
func (p *Path) AddCircle(cx, cy, radius float32) *Path {
	return p.AddOval(MakeLTRB(cx-radius, cy-radius, cx+radius, cy+radius))
}

// AddRRect adds a closed rounded rect contour.
func (p *Path) AddRRect(rr RRect) *Path {
	if rr.IsRect() {
		return p.AddRect(rr.Rect)
	}
	wasEmpty := len(p.verbs) == 0
	r := rr.Rect
	ul, ur, lr, ll := rr.Radii[UpperLeft], rr.Radii[UpperRight], rr.Radii[LowerRight], rr.Radii[LowerLeft]
	p.MoveTo(r.Left+ul.X, r.Top)
	p.LineTo(r.Right-ur.X, r.Top)
	p.CubicTo(r.Right-ur.X+ur.X*kappa, r.Top, r.Right, r.Top+ur.Y-ur.Y*kappa, r.Right, r.Top+ur.Y)
	p.LineTo(r.Right, r.Bottom-lr.Y)
	p.CubicTo(r.Right, r.Bottom-lr.Y+lr.Y*kappa, r.Right-lr.X+lr.X*kappa, r.Bottom, r.Right-lr.X, r.Bottom)
	p.LineTo(r.Left+ll.X, r.Bottom)
	p.CubicTo(r.Left+ll.X-ll.X*kappa, r.Bottom, r.Left, r.Bottom-ll.Y+ll.Y*kappa, r.Left, r.Bottom-ll.Y)
	p.LineTo(r.Left, r.Top+ul.Y)
	p.CubicTo(r.Left, r.Top+ul.Y-ul.Y*kappa, r.Left+ul.X-ul.X*kappa, r.Top, r.Left+ul.X, r.Top)
	p.Close()
	if wasEmpty {
		p.shape, p.rrect = shapeRRect, rr
	}
	return p
}

// SetFillType sets the winding rule.
func (p *Path) SetFillType(ft FillType) *Path {
	p.fill = ft
	return p
}

// FillType returns the winding rule.
func (p *Path) FillType() FillType { return p.fill }

// SetInverseFill toggles inverse filling: the path covers everything
// outside its contours.
func (p *Path) SetInverseFill(inverse bool) *Path {
	p.inverse = inverse
	return p
}

// IsInverseFillType reports whether the path fills its outside.
func (p *Path) IsInverseFillType() bool { return p.inverse }

// Bounds returns the conservative bounds of the path's points.
func (p *Path) Bounds() Rect {
	if len(p.points) == 0 {
		return Rect{}
	}
	return p.bounds
}

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// IsRect reports whether the path was built from a single rect.
func (p *Path) IsRect() (Rect, bool) {
	if p.shape == shapeRect {
		return p.rrect.Rect, true
	}
	return Rect{}, false
}

// IsOval reports whether the path was built from a single oval.
func (p *Path) IsOval() (Rect, bool) {
	if p.shape == shapeOval {
		return p.rrect.Rect, true
	}
	return Rect{}, false
}

// IsRRect reports whether the path was built from a single rounded rect.
func (p *Path) IsRRect() (RRect, bool) {
	if p.shape == shapeRRect {
		return p.rrect, true
	}
	return RRect{}, false
}

// Verbs returns the verb stream. The slice must not be modified.
func (p *Path) Verbs() []Verb { return p.verbs }

// Points returns the point stream. The slice must not be modified.
func (p *Path) Points() []Point { return p.points }

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	c := *p
	c.verbs = slices.Clone(p.verbs)
	c.points = slices.Clone(p.points)
	return &c
}

// Equal reports whether both paths have identical geometry and fill.
func (p *Path) Equal(o *Path) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return p.fill == o.fill && p.inverse == o.inverse &&
		slices.Equal(p.verbs, o.verbs) && slices.Equal(p.points, o.points)
}

// Transform returns a copy of the path with every point mapped by m.
func (p *Path) Transform(m Matrix) *Path {
	c := p.Clone()
	c.bounds = EmptyRect()
	for i, pt := range c.points {
		q := m.MapPoint(pt)
		c.points[i] = q
		c.bounds = c.bounds.UnionPoint(q.X, q.Y)
	}
	if c.shape == shapeRect && m.RectStaysRect() {
		r, _ := m.MapRect(c.rrect.Rect)
		c.rrect = MakeRRectRect(r)
	} else {
		c.shape = shapeNone
	}
	return c
}

// Element is one verb with its points.
type Element struct {
	Verb   Verb
	Points []Point
}

// Elements iterates over the path's verbs with their points.
func (p *Path) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		idx := 0
		for _, v := range p.verbs {
			n := v.PointCount()
			if !yield(Element{Verb: v, Points: p.points[idx : idx+n]}) {
				return
			}
			idx += n
		}
	}
}
