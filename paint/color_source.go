package paint

import (
	"slices"

	"github.com/gogpu/displaylist/geom"
)

// ColorSource produces per-pixel colors in place of the paint color.
type ColorSource interface {
	Equal(ColorSource) bool
	// IsOpaque reports whether every produced color is opaque.
	IsOpaque() bool
}

// ColorColorSource produces a single color.
type ColorColorSource struct {
	Color Color
}

// Equal implements ColorSource.
func (s *ColorColorSource) Equal(o ColorSource) bool {
	t, ok := o.(*ColorColorSource)
	return ok && s.Color == t.Color
}

// IsOpaque implements ColorSource.
func (s *ColorColorSource) IsOpaque() bool { return s.Color.IsOpaque() }

// Gradient holds the color ramp shared by the gradient sources.
// Stops may be nil for evenly spaced colors.
type Gradient struct {
	Colors []Color
	Stops  []float32
	Tile   TileMode
}

func (g *Gradient) equal(o *Gradient) bool {
	return g.Tile == o.Tile && slices.Equal(g.Colors, o.Colors) && slices.Equal(g.Stops, o.Stops)
}

func (g *Gradient) isOpaque() bool {
	if g.Tile == TileDecal {
		return false
	}
	for _, c := range g.Colors {
		if !c.IsOpaque() {
			return false
		}
	}
	return true
}

// AddColorStop appends a stop and returns the gradient for chaining.
func (g *Gradient) AddColorStop(offset float32, c Color) *Gradient {
	g.Stops = append(g.Stops, offset)
	g.Colors = append(g.Colors, c)
	return g
}

// LinearGradient interpolates between Start and End.
type LinearGradient struct {
	Gradient
	Start, End geom.Point
}

// NewLinearGradient returns an empty linear gradient.
func NewLinearGradient(start, end geom.Point) *LinearGradient {
	return &LinearGradient{Start: start, End: end}
}

// Equal implements ColorSource.
func (s *LinearGradient) Equal(o ColorSource) bool {
	t, ok := o.(*LinearGradient)
	return ok && s.Start == t.Start && s.End == t.End && s.Gradient.equal(&t.Gradient)
}

// IsOpaque implements ColorSource.
func (s *LinearGradient) IsOpaque() bool { return s.isOpaque() }

// RadialGradient interpolates outward from Center to Radius.
type RadialGradient struct {
	Gradient
	Center geom.Point
	Radius float32
}

// NewRadialGradient returns an empty radial gradient.
func NewRadialGradient(center geom.Point, radius float32) *RadialGradient {
	return &RadialGradient{Center: center, Radius: radius}
}

// Equal implements ColorSource.
func (s *RadialGradient) Equal(o ColorSource) bool {
	t, ok := o.(*RadialGradient)
	return ok && s.Center == t.Center && s.Radius == t.Radius && s.Gradient.equal(&t.Gradient)
}

// IsOpaque implements ColorSource.
func (s *RadialGradient) IsOpaque() bool { return s.isOpaque() }

// SweepGradient interpolates around Center between two angles in degrees.
type SweepGradient struct {
	Gradient
	Center               geom.Point
	StartAngle, EndAngle float32
}

// NewSweepGradient returns an empty sweep gradient.
func NewSweepGradient(center geom.Point, startAngle, endAngle float32) *SweepGradient {
	return &SweepGradient{Center: center, StartAngle: startAngle, EndAngle: endAngle}
}

// Equal implements ColorSource.
func (s *SweepGradient) Equal(o ColorSource) bool {
	t, ok := o.(*SweepGradient)
	return ok && s.Center == t.Center && s.StartAngle == t.StartAngle && s.EndAngle == t.EndAngle &&
		s.Gradient.equal(&t.Gradient)
}

// IsOpaque implements ColorSource.
func (s *SweepGradient) IsOpaque() bool { return s.isOpaque() }

// ImageColorSource tiles an image.
type ImageColorSource struct {
	Image        Image
	TileX, TileY TileMode
	Sampling     Sampling
}

// Equal implements ColorSource. Images compare by identity.
func (s *ImageColorSource) Equal(o ColorSource) bool {
	t, ok := o.(*ImageColorSource)
	return ok && s.Image == t.Image && s.TileX == t.TileX && s.TileY == t.TileY && s.Sampling == t.Sampling
}

// IsOpaque implements ColorSource.
func (s *ImageColorSource) IsOpaque() bool {
	return s.Image != nil && s.Image.IsOpaque() && s.TileX != TileDecal && s.TileY != TileDecal
}
