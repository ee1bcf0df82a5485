package geom

// Corner indexes into RRect.Radii.
const (
	UpperLeft = iota
	UpperRight
	LowerRight
	LowerLeft
)

// RRect is a rectangle with elliptical corners. Radii are indexed by
// UpperLeft, UpperRight, LowerRight and LowerLeft.
type RRect struct {
	Rect  Rect
	Radii [4]Point
}

// MakeRRectXY returns a rounded rect with the same radii on every corner.
// Radii are clamped to half the rect size.
func MakeRRectXY(r Rect, rx, ry float32) RRect {
	rx = clampRadius(rx, r.Width())
	ry = clampRadius(ry, r.Height())
	rad := Point{X: rx, Y: ry}
	if rx <= 0 || ry <= 0 {
		rad = Point{}
	}
	return RRect{Rect: r, Radii: [4]Point{rad, rad, rad, rad}}
}

// MakeRRectOval returns a rounded rect that is the oval inscribed in r.
func MakeRRectOval(r Rect) RRect {
	return MakeRRectXY(r, r.Width()*0.5, r.Height()*0.5)
}

// MakeRRectRect returns a rounded rect with square corners.
func MakeRRectRect(r Rect) RRect {
	return RRect{Rect: r}
}

func clampRadius(v, extent float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	return min(v, max(extent, 0)*0.5)
}

// Bounds returns the enclosing rect.
func (rr RRect) Bounds() Rect { return rr.Rect }

// IsEmpty reports whether the enclosing rect is empty.
func (rr RRect) IsEmpty() bool { return rr.Rect.IsEmpty() }

// IsRect reports whether every corner is square.
func (rr RRect) IsRect() bool {
	for _, r := range rr.Radii {
		if r.X > 0 && r.Y > 0 {
			return false
		}
	}
	return true
}

// IsOval reports whether every corner radius spans half the rect,
// making the shape an ellipse.
func (rr RRect) IsOval() bool {
	if rr.IsEmpty() {
		return false
	}
	hw, hh := rr.Rect.Width()*0.5, rr.Rect.Height()*0.5
	for _, r := range rr.Radii {
		if r.X < hw || r.Y < hh {
			return false
		}
	}
	return true
}

// Offset translates the rounded rect.
func (rr RRect) Offset(dx, dy float32) RRect {
	rr.Rect = rr.Rect.Offset(dx, dy)
	return rr
}

// ContainsRect reports whether r lies inside the rounded shape, testing
// each corner of r against the corner ellipses.
func (rr RRect) ContainsRect(r Rect) bool {
	if !rr.Rect.Contains(r) {
		return false
	}
	if rr.IsRect() {
		return true
	}
	corners := [4]Point{
		{r.Left, r.Top}, {r.Right, r.Top}, {r.Right, r.Bottom}, {r.Left, r.Bottom},
	}
	for i, p := range corners {
		if !rr.cornerContains(i, p) {
			return false
		}
	}
	return true
}

func (rr RRect) cornerContains(corner int, p Point) bool {
	rad := rr.Radii[corner]
	if rad.X <= 0 || rad.Y <= 0 {
		return true
	}
	var cx, cy float32
	switch corner {
	case UpperLeft:
		cx, cy = rr.Rect.Left+rad.X, rr.Rect.Top+rad.Y
		if p.X >= cx || p.Y >= cy {
			return true
		}
	case UpperRight:
		cx, cy = rr.Rect.Right-rad.X, rr.Rect.Top+rad.Y
		if p.X <= cx || p.Y >= cy {
			return true
		}
	case LowerRight:
		cx, cy = rr.Rect.Right-rad.X, rr.Rect.Bottom-rad.Y
		if p.X <= cx || p.Y <= cy {
			return true
		}
	default:
		cx, cy = rr.Rect.Left+rad.X, rr.Rect.Bottom-rad.Y
		if p.X >= cx || p.Y <= cy {
			return true
		}
	}
	dx := (p.X - cx) / rad.X
	dy := (p.Y - cy) / rad.Y
	return dx*dx+dy*dy <= 1
}
