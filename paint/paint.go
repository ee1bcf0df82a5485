// Package paint defines the attribute values a display list records:
// colors, blend modes, stroke parameters and the immutable effect objects
// (color sources, filters, mask filters, path effects and blenders).
//
// Effects are compared by value through their Equal methods. They must
// not be mutated after they are handed to a builder; a recorded list
// keeps a reference to every effect it captured.
package paint

// Default stroke parameters.
const (
	DefaultStrokeWidth = 0
	DefaultStrokeMiter = 4
)

// Paint holds the full set of attributes a drawing op may consult.
// Use New for a paint initialized to the recording defaults; the zero
// value has a transparent color and the Clear blend mode.
type Paint struct {
	Color        Color
	AntiAlias    bool
	Dither       bool
	InvertColors bool
	Style        Style
	StrokeWidth  float32
	StrokeMiter  float32
	StrokeCap    Cap
	StrokeJoin   Join
	BlendMode    BlendMode

	// Blender, when set, overrides BlendMode.
	Blender     Blender
	ColorSource ColorSource
	ColorFilter ColorFilter
	ImageFilter ImageFilter
	MaskFilter  MaskFilter
	PathEffect  PathEffect
}

// New returns a paint with the recording defaults: opaque black fill,
// hairline stroke width, miter limit 4, SrcOver.
func New() Paint {
	return Paint{
		Color:       Black,
		StrokeWidth: DefaultStrokeWidth,
		StrokeMiter: DefaultStrokeMiter,
		BlendMode:   BlendDefault,
	}
}

// WithColor returns a copy with the color replaced.
func (p Paint) WithColor(c Color) Paint {
	p.Color = c
	return p
}

// WithStyle returns a copy with the style replaced.
func (p Paint) WithStyle(s Style) Paint {
	p.Style = s
	return p
}

// WithStrokeWidth returns a copy with the stroke width replaced.
func (p Paint) WithStrokeWidth(w float32) Paint {
	p.StrokeWidth = w
	return p
}

// WithBlendMode returns a copy with the blend mode replaced.
func (p Paint) WithBlendMode(m BlendMode) Paint {
	p.BlendMode = m
	return p
}

// WithAlpha returns a copy with the color's alpha replaced.
func (p Paint) WithAlpha(a uint8) Paint {
	p.Color = p.Color.WithAlpha(a)
	return p
}

// EffectiveBlendMode returns the blend mode the paint composites with.
// When a Blender is set it takes priority; the boolean is false if that
// blender cannot be expressed as a mode.
func (p Paint) EffectiveBlendMode() (BlendMode, bool) {
	if p.Blender != nil {
		return p.Blender.AsBlendMode()
	}
	return p.BlendMode, true
}

// IsDefaultBlend reports whether the paint composites with plain SrcOver.
func (p Paint) IsDefaultBlend() bool {
	m, ok := p.EffectiveBlendMode()
	return ok && m == BlendSrcOver
}

// IsStroked reports whether the style strokes geometry.
func (p Paint) IsStroked() bool {
	return p.Style != StyleFill
}

// Equal reports whether both paints hold the same attributes, comparing
// effects by value.
func (p Paint) Equal(o Paint) bool {
	return p.Color == o.Color &&
		p.AntiAlias == o.AntiAlias &&
		p.Dither == o.Dither &&
		p.InvertColors == o.InvertColors &&
		p.Style == o.Style &&
		p.StrokeWidth == o.StrokeWidth &&
		p.StrokeMiter == o.StrokeMiter &&
		p.StrokeCap == o.StrokeCap &&
		p.StrokeJoin == o.StrokeJoin &&
		p.BlendMode == o.BlendMode &&
		Equal(p.Blender, o.Blender) &&
		Equal(p.ColorSource, o.ColorSource) &&
		Equal(p.ColorFilter, o.ColorFilter) &&
		Equal(p.ImageFilter, o.ImageFilter) &&
		Equal(p.MaskFilter, o.MaskFilter) &&
		Equal(p.PathEffect, o.PathEffect)
}

// Comparable is implemented by immutable effect values.
type Comparable[T any] interface {
	Equal(T) bool
}

// Equal compares two possibly-nil effects: nil equals nil, nil never
// equals non-nil, otherwise the values decide.
func Equal[T Comparable[T]](a, b T) bool {
	an, bn := any(a) == nil, any(b) == nil
	if an || bn {
		return an == bn
	}
	return a.Equal(b)
}
