package displaylist

import (
	"slices"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
)

// VertexMode selects how Vertices positions form triangles.
type VertexMode uint8

// Vertex modes.
const (
	Triangles VertexMode = iota
	TriangleStrip
	TriangleFan
)

// Vertices is an immutable triangle mesh with optional texture
// coordinates, per-vertex colors and indices.
type Vertices struct {
	mode      VertexMode
	positions []geom.Point
	texCoords []geom.Point
	colors    []paint.Color
	indices   []uint16
	bounds    geom.Rect
}

// NewVertices copies the given arrays into a mesh. texCoords and colors,
// when non-nil, must be as long as positions.
func NewVertices(mode VertexMode, positions, texCoords []geom.Point, colors []paint.Color, indices []uint16) *Vertices {
	if texCoords != nil && len(texCoords) != len(positions) {
		panic("displaylist: texture coordinate count does not match positions")
	}
	if colors != nil && len(colors) != len(positions) {
		panic("displaylist: color count does not match positions")
	}
	v := &Vertices{
		mode:      mode,
		positions: slices.Clone(positions),
		texCoords: slices.Clone(texCoords),
		colors:    slices.Clone(colors),
		indices:   slices.Clone(indices),
		bounds:    geom.EmptyRect(),
	}
	for _, p := range positions {
		v.bounds = v.bounds.UnionPoint(p.X, p.Y)
	}
	if len(positions) == 0 {
		v.bounds = geom.Rect{}
	}
	return v
}

// Mode returns the triangle mode.
func (v *Vertices) Mode() VertexMode { return v.mode }

// Positions returns the vertex positions.
func (v *Vertices) Positions() []geom.Point { return v.positions }

// TexCoords returns the texture coordinates, or nil.
func (v *Vertices) TexCoords() []geom.Point { return v.texCoords }

// Colors returns the per-vertex colors, or nil.
func (v *Vertices) Colors() []paint.Color { return v.colors }

// Indices returns the index buffer, or nil.
func (v *Vertices) Indices() []uint16 { return v.indices }

// Bounds returns the bounds of the positions.
func (v *Vertices) Bounds() geom.Rect { return v.bounds }

// Equal compares meshes by content.
func (v *Vertices) Equal(o *Vertices) bool {
	if v == o {
		return true
	}
	if v == nil || o == nil {
		return false
	}
	return v.mode == o.mode &&
		slices.Equal(v.positions, o.positions) &&
		slices.Equal(v.texCoords, o.texCoords) &&
		slices.Equal(v.colors, o.colors) &&
		slices.Equal(v.indices, o.indices)
}
