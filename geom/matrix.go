package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 4x4 transform in row-major order:
//
//	| m[0]  m[1]  m[2]  m[3]  |   x' = m[0]x + m[1]y + m[2]z + m[3]
//	| m[4]  m[5]  m[6]  m[7]  |   y' = m[4]x + m[5]y + m[6]z + m[7]
//	| m[8]  m[9]  m[10] m[11] |
//	| m[12] m[13] m[14] m[15] |   w' = m[12]x + m[13]y + m[14]z + m[15]
//
// Points are 2D with z = 0, so the third column only matters when
// concatenating full 3D transforms.
type Matrix f64.Mat4

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	m := Identity()
	m[3], m[7] = tx, ty
	return m
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix {
	m := Identity()
	m[0], m[5] = sx, sy
	return m
}

// Skew returns a skew matrix.
func Skew(sx, sy float64) Matrix {
	m := Identity()
	m[1], m[4] = sx, sy
	return m
}

// Rotate returns a rotation by degrees. Multiples of 90 degrees produce
// exact sines and cosines.
func Rotate(degrees float64) Matrix {
	s, c := sinCosDegrees(degrees)
	m := Identity()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

func sinCosDegrees(degrees float64) (float64, float64) {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	switch d {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(d * math.Pi / 180)
}

// Affine2D returns the 2D affine transform
// x' = mxx*x + mxy*y + mxt, y' = myx*x + myy*y + myt.
func Affine2D(mxx, mxy, mxt, myx, myy, myt float64) Matrix {
	return Matrix{
		mxx, mxy, 0, mxt,
		myx, myy, 0, myt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromAff3 converts a 2x3 affine matrix.
func FromAff3(a f64.Aff3) Matrix {
	return Affine2D(a[0], a[1], a[2], a[3], a[4], a[5])
}

// Aff3 returns the 2D affine part of the matrix.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m[0], m[1], m[3], m[4], m[5], m[7]}
}

// Concat returns m * o: o is applied to points first.
func (m Matrix) Concat(o Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslate reports whether m is a pure 2D translation.
func (m Matrix) IsTranslate() bool {
	t := m
	t[3], t[7] = 0, 0
	return t.IsIdentity()
}

// HasPerspective reports whether the bottom row is not (0, 0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m[12] != 0 || m[13] != 0 || m[14] != 0 || m[15] != 1
}

// Is2DAffine reports whether m only affects x and y with an affine transform.
func (m Matrix) Is2DAffine() bool {
	return m[2] == 0 && m[6] == 0 &&
		m[8] == 0 && m[9] == 0 && m[10] == 1 && m[11] == 0 &&
		!m.HasPerspective()
}

// IsFinite reports whether every element is finite.
func (m Matrix) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// RectStaysRect reports whether axis-aligned rects map to axis-aligned rects.
func (m Matrix) RectStaysRect() bool {
	if m.HasPerspective() {
		return false
	}
	return (m[1] == 0 && m[4] == 0) || (m[0] == 0 && m[5] == 0)
}

// MapPoint transforms p, dividing by w when the matrix has perspective.
func (m Matrix) MapPoint(p Point) Point {
	x, y, w := m.mapXYW(float64(p.X), float64(p.Y))
	if w != 1 && w != 0 {
		x /= w
		y /= w
	}
	return Point{X: float32(x), Y: float32(y)}
}

func (m Matrix) mapXYW(x, y float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[3],
		m[4]*x + m[5]*y + m[7],
		m[12]*x + m[13]*y + m[15]
}

// minPerspectiveW is the smallest homogeneous w accepted when mapping.
const minPerspectiveW = 1.0 / (1 << 14)

// MapRect returns the bounds of r after transformation. The boolean is
// false when the rect crosses the perspective horizon and cannot be
// bounded; the returned rect is then LargestRect.
func (m Matrix) MapRect(r Rect) (Rect, bool) {
	if r.IsEmpty() {
		return Rect{}, true
	}
	if m.IsTranslate() {
		return r.Offset(float32(m[3]), float32(m[7])), true
	}
	out := EmptyRect()
	for _, c := range [4][2]float64{
		{float64(r.Left), float64(r.Top)},
		{float64(r.Right), float64(r.Top)},
		{float64(r.Right), float64(r.Bottom)},
		{float64(r.Left), float64(r.Bottom)},
	} {
		x, y, w := m.mapXYW(c[0], c[1])
		if m.HasPerspective() {
			if w < minPerspectiveW {
				return LargestRect, false
			}
			x /= w
			y /= w
		}
		out = out.UnionPoint(float32(x), float32(y))
	}
	if !out.IsFinite() {
		return LargestRect, false
	}
	return out, true
}

// Invert returns the inverse of m. The boolean is false when m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	if m.Is2DAffine() {
		det := m[0]*m[5] - m[1]*m[4]
		if det == 0 || math.IsNaN(det) {
			return Matrix{}, false
		}
		inv := 1 / det
		a := m[5] * inv
		b := -m[1] * inv
		d := -m[4] * inv
		e := m[0] * inv
		return Affine2D(a, b, -(a*m[3] + b*m[7]), d, e, -(d*m[3] + e*m[7])), true
	}
	return m.invert4x4()
}

func (m Matrix) invert4x4() (Matrix, bool) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		(a11*b11 - a12*b10 + a13*b09) * inv,
		(a02*b10 - a01*b11 - a03*b09) * inv,
		(a31*b05 - a32*b04 + a33*b03) * inv,
		(a22*b04 - a21*b05 - a23*b03) * inv,
		(a12*b08 - a10*b11 - a13*b07) * inv,
		(a00*b11 - a02*b08 + a03*b07) * inv,
		(a32*b02 - a30*b05 - a33*b01) * inv,
		(a20*b05 - a22*b02 + a23*b01) * inv,
		(a10*b10 - a11*b08 + a13*b06) * inv,
		(a01*b08 - a00*b10 - a03*b06) * inv,
		(a30*b04 - a31*b02 + a33*b00) * inv,
		(a21*b02 - a20*b04 - a23*b00) * inv,
		(a11*b07 - a10*b09 - a12*b06) * inv,
		(a00*b09 - a01*b07 + a02*b06) * inv,
		(a31*b01 - a30*b03 - a32*b00) * inv,
		(a20*b03 - a21*b01 + a22*b00) * inv,
	}, true
}

// MaxScale returns an upper bound on how much m stretches a unit vector
// in x or y. Used to convert device-space outsets into local space.
func (m Matrix) MaxScale() float64 {
	sx := math.Hypot(m[0], m[4])
	sy := math.Hypot(m[1], m[5])
	return max(sx, sy)
}
