package text

import (
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/displaylist/geom"
)

// Glyph is a single positioned glyph. X and Y are the pen position of the
// glyph origin relative to the blob origin, y pointing down.
type Glyph struct {
	ID      uint32
	X, Y    float32
	Advance float32
	// Cluster is the rune index of the text this glyph came from.
	Cluster int
}

// Blob is an immutable run of shaped glyphs.
type Blob struct {
	glyphs  []Glyph
	bounds  geom.Rect
	advance float32
}

// NewBlob returns a blob over a copy of glyphs. bounds is the area the
// glyphs may cover relative to the blob origin.
func NewBlob(glyphs []Glyph, bounds geom.Rect) *Blob {
	b := &Blob{
		glyphs: append([]Glyph(nil), glyphs...),
		bounds: bounds,
	}
	for _, g := range glyphs {
		b.advance = max(b.advance, g.X+g.Advance)
	}
	return b
}

// Glyphs returns the glyphs. The slice must not be modified.
func (b *Blob) Glyphs() []Glyph { return b.glyphs }

// Len returns the number of glyphs.
func (b *Blob) Len() int { return len(b.glyphs) }

// Bounds returns the conservative bounds relative to the blob origin.
func (b *Blob) Bounds() geom.Rect { return b.bounds }

// Advance returns the horizontal pen advance of the whole blob.
func (b *Blob) Advance() float32 { return b.advance }

// FromOutput converts a shaped run into a blob placed at the pen origin.
// go-text reports offsets y-up; they are flipped here.
func FromOutput(out shaping.Output) *Blob {
	glyphs, pen := appendGlyphs(nil, out, 0, 0)
	return makeBlob(glyphs, pen, fixedToFloat(out.LineBounds.Ascent), fixedToFloat(out.LineBounds.Descent))
}

// appendGlyphs appends the glyphs of out starting at pen and returns the
// pen position after the run. runeBase offsets the cluster indices.
func appendGlyphs(glyphs []Glyph, out shaping.Output, pen float32, runeBase int) ([]Glyph, float32) {
	for _, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		glyphs = append(glyphs, Glyph{
			ID:      uint32(g.GlyphID),
			X:       pen + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
			Cluster: runeBase + g.TextIndex(),
		})
		pen += adv
	}
	return glyphs, pen
}

// makeBlob computes line bounds from the ascent and descent (descent is
// negative below the baseline) widened by any glyph offsets.
func makeBlob(glyphs []Glyph, advance, ascent, descent float32) *Blob {
	b := &Blob{glyphs: glyphs, advance: advance}
	if len(glyphs) == 0 {
		return b
	}
	bounds := geom.MakeLTRB(0, -ascent, advance, -descent)
	for _, g := range glyphs {
		bounds = bounds.UnionPoint(g.X, g.Y-ascent)
		bounds = bounds.UnionPoint(g.X+g.Advance, g.Y-descent)
	}
	b.bounds = bounds
	return b
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
