package displaylist

import (
	"slices"

	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/internal/clip"
)

// ClipOp is how a clip shape combines with the current clip.
type ClipOp uint8

// Clip ops.
const (
	ClipIntersect  = ClipOp(clip.Intersect)
	ClipDifference = ClipOp(clip.Difference)
)

// String returns "Intersect" or "Difference".
func (op ClipOp) String() string {
	if op == ClipDifference {
		return "Difference"
	}
	return "Intersect"
}

// PointMode selects how DrawPoints interprets its points.
type PointMode uint8

// Point modes.
const (
	// PointsMode draws each point as a dot.
	PointsMode PointMode = iota
	// LinesMode draws each pair of points as a line segment.
	LinesMode
	// PolygonMode draws an open polyline through all points.
	PolygonMode
)

// String returns the mode name.
func (m PointMode) String() string {
	switch m {
	case LinesMode:
		return "Lines"
	case PolygonMode:
		return "Polygon"
	default:
		return "Points"
	}
}

// SrcRectConstraint controls whether DrawImageRect may sample outside the
// source rect.
type SrcRectConstraint uint8

// Source rect constraints.
const (
	ConstraintFast SrcRectConstraint = iota
	ConstraintStrict
)

// SaveLayerOptions is a bit set describing a saveLayer. The builder
// computes every bit except RendersWithAttributes.
type SaveLayerOptions uint32

// Save layer option bits.
const (
	// RendersWithAttributes means the layer is composited with the
	// current paint attributes when it is restored.
	RendersWithAttributes SaveLayerOptions = 1 << iota
	// CanDistributeOpacity means a group opacity applied to the layer
	// can be pushed down to its content.
	CanDistributeOpacity
	// BoundsFromCaller means the bounds were supplied by the caller
	// rather than computed.
	BoundsFromCaller
	// ContentIsClipped means some content extends past caller bounds.
	ContentIsClipped
	// ContentIsUnbounded means some content floods the layer clip.
	ContentIsUnbounded

	computedLayerOptions = CanDistributeOpacity | BoundsFromCaller | ContentIsClipped | ContentIsUnbounded
)

// Has reports whether all bits of o are set.
func (s SaveLayerOptions) Has(o SaveLayerOptions) bool { return s&o == o }

// RendersWithAttributes reports the RendersWithAttributes bit.
func (s SaveLayerOptions) RendersWithAttributes() bool { return s.Has(RendersWithAttributes) }

// CanDistributeOpacity reports the CanDistributeOpacity bit.
func (s SaveLayerOptions) CanDistributeOpacity() bool { return s.Has(CanDistributeOpacity) }

// BoundsFromCaller reports the BoundsFromCaller bit.
func (s SaveLayerOptions) BoundsFromCaller() bool { return s.Has(BoundsFromCaller) }

// ContentIsClipped reports the ContentIsClipped bit.
func (s SaveLayerOptions) ContentIsClipped() bool { return s.Has(ContentIsClipped) }

// ContentIsUnbounded reports the ContentIsUnbounded bit.
func (s SaveLayerOptions) ContentIsUnbounded() bool { return s.Has(ContentIsUnbounded) }

// Lattice divides an image into stretchable and fixed regions.
// XDivs and YDivs are sorted pixel offsets inside Src; an empty Src
// means the whole image.
type Lattice struct {
	XDivs []int32
	YDivs []int32
	Src   geom.IRect
}

// Equal reports whether both lattices have the same dividers and source.
func (l Lattice) Equal(o Lattice) bool {
	return l.Src == o.Src && slices.Equal(l.XDivs, o.XDivs) && slices.Equal(l.YDivs, o.YDivs)
}
