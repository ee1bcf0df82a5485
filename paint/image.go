package paint

import (
	"image"

	"github.com/gogpu/displaylist/geom"
)

// Sampling selects how images are filtered when drawn.
type Sampling uint8

// Sampling options.
const (
	SamplingNearest Sampling = iota
	SamplingLinear
	SamplingMipmapLinear
	SamplingCubic
)

// Image is an immutable raster a display list can draw. Images are
// compared by identity.
type Image interface {
	// Bounds returns the pixel extent, normally anchored at the origin.
	Bounds() geom.IRect
	// IsOpaque reports whether every pixel is fully opaque.
	IsOpaque() bool
}

// ThreadBound is implemented by images that may only be used on the
// thread that created them, such as texture-backed images.
type ThreadBound interface {
	IsUIThreadSafe() bool
}

// stdImage adapts an image.Image.
type stdImage struct {
	img    image.Image
	opaque bool
}

// FromImage wraps a standard library image. The image must not be
// modified afterwards.
func FromImage(img image.Image) Image {
	opaque := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}
	return &stdImage{img: img, opaque: opaque}
}

func (s *stdImage) Bounds() geom.IRect {
	b := s.img.Bounds()
	return geom.MakeIRectLTRB(int32(b.Min.X), int32(b.Min.Y), int32(b.Max.X), int32(b.Max.Y))
}

func (s *stdImage) IsOpaque() bool { return s.opaque }

// Unwrap returns the wrapped image.
func (s *stdImage) Unwrap() image.Image { return s.img }
