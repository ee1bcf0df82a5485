package displaylist

import (
	"errors"
	"fmt"

	"github.com/gogpu/displaylist/paint"
)

// AttributeFlags describes which paint attributes an op consults and what
// kind of geometry it draws. The catalog below holds one value per op
// variant; builders use it to decide which attributes to sync and how to
// pad bounds, dispatchers can use it to skip state they will never need.
type AttributeFlags uint32

const (
	flagIgnoresPaint AttributeFlags = 1 << iota
	flagIsNonGeometric
	flagIsStrokedGeometry
	flagIsFilledGeometry
	flagIsDrawnGeometry
	flagFloodsSurface

	flagUsesAntiAlias
	flagUsesDither
	flagUsesAlpha
	flagUsesColor
	flagUsesBlend
	flagUsesColorSource
	flagUsesColorFilter
	flagUsesPathEffect
	flagUsesMaskFilter
	flagUsesImageFilter

	flagMayHaveCaps
	flagMayHaveJoins
	flagButtCapIsSquare
	flagMayHaveAcuteJoins
	flagMayHaveDiagonalCaps
)

const (
	geometryKindFlags = flagIsStrokedGeometry | flagIsFilledGeometry | flagIsDrawnGeometry
	geometryHintFlags = flagMayHaveCaps | flagMayHaveJoins | flagButtCapIsSquare |
		flagMayHaveAcuteJoins | flagMayHaveDiagonalCaps
	paintUsageFlags = flagUsesAntiAlias | flagUsesDither | flagUsesAlpha | flagUsesColor |
		flagUsesBlend | flagUsesColorSource | flagUsesColorFilter | flagUsesPathEffect |
		flagUsesMaskFilter | flagUsesImageFilter

	basePaintFlags = flagUsesDither | flagUsesAlpha | flagUsesColor | flagUsesBlend |
		flagUsesColorSource | flagUsesColorFilter | flagUsesImageFilter
	baseGeometryFlags = basePaintFlags | flagUsesAntiAlias | flagUsesMaskFilter | flagUsesPathEffect
	baseImageFlags    = flagIsNonGeometric | flagUsesAlpha | flagUsesBlend |
		flagUsesColorFilter | flagUsesImageFilter
)

// Flag catalog.
var (
	SaveLayerFlags          = mustFlags("SaveLayer", flagIgnoresPaint)
	SaveLayerWithPaintFlags = mustFlags("SaveLayerWithPaint", flagIsNonGeometric|flagUsesAlpha|flagUsesBlend|
		flagUsesColorFilter|flagUsesImageFilter)

	DrawColorFlags = mustFlags("DrawColor", flagIgnoresPaint|flagFloodsSurface)
	DrawPaintFlags = mustFlags("DrawPaint", basePaintFlags|flagFloodsSurface)

	DrawLineFlags = mustFlags("DrawLine", baseGeometryFlags|flagIsStrokedGeometry|
		flagMayHaveCaps|flagMayHaveDiagonalCaps)
	DrawHVLineFlags = mustFlags("DrawHVLine", baseGeometryFlags|flagIsStrokedGeometry|flagMayHaveCaps)
	DrawRectFlags   = mustFlags("DrawRect", baseGeometryFlags|flagIsDrawnGeometry|flagMayHaveJoins)
	DrawOvalFlags   = mustFlags("DrawOval", baseGeometryFlags|flagIsDrawnGeometry)
	DrawCircleFlags = mustFlags("DrawCircle", baseGeometryFlags|flagIsDrawnGeometry)
	DrawRRectFlags  = mustFlags("DrawRRect", baseGeometryFlags|flagIsDrawnGeometry)
	DrawDRRectFlags = mustFlags("DrawDRRect", baseGeometryFlags|flagIsDrawnGeometry)
	DrawPathFlags   = mustFlags("DrawPath", baseGeometryFlags|flagIsDrawnGeometry|
		flagMayHaveCaps|flagMayHaveJoins|flagMayHaveAcuteJoins|flagMayHaveDiagonalCaps)
	DrawArcNoCenterFlags = mustFlags("DrawArcNoCenter", baseGeometryFlags|flagIsDrawnGeometry|
		flagMayHaveCaps|flagMayHaveDiagonalCaps)
	DrawArcWithCenterFlags = mustFlags("DrawArcWithCenter", baseGeometryFlags|flagIsDrawnGeometry|
		flagMayHaveJoins|flagMayHaveAcuteJoins)

	DrawPointsFlags = mustFlags("DrawPoints", baseGeometryFlags|flagIsStrokedGeometry|
		flagMayHaveCaps|flagButtCapIsSquare)
	DrawLinesFlags = mustFlags("DrawLines", baseGeometryFlags|flagIsStrokedGeometry|
		flagMayHaveCaps|flagMayHaveDiagonalCaps)
	DrawPolygonFlags = mustFlags("DrawPolygon", baseGeometryFlags|flagIsStrokedGeometry|
		flagMayHaveCaps|flagMayHaveJoins|flagMayHaveAcuteJoins|flagMayHaveDiagonalCaps)

	DrawVerticesFlags = mustFlags("DrawVertices", basePaintFlags|flagIsFilledGeometry)

	DrawImageFlags                 = mustFlags("DrawImage", flagIgnoresPaint)
	DrawImageWithPaintFlags        = mustFlags("DrawImageWithPaint", baseImageFlags|flagUsesAntiAlias|flagUsesMaskFilter)
	DrawImageRectFlags             = mustFlags("DrawImageRect", flagIgnoresPaint)
	DrawImageRectWithPaintFlags    = mustFlags("DrawImageRectWithPaint", baseImageFlags|flagUsesAntiAlias|flagUsesMaskFilter)
	DrawImageNineFlags             = mustFlags("DrawImageNine", flagIgnoresPaint)
	DrawImageNineWithPaintFlags    = mustFlags("DrawImageNineWithPaint", baseImageFlags)
	DrawImageLatticeFlags          = mustFlags("DrawImageLattice", flagIgnoresPaint)
	DrawImageLatticeWithPaintFlags = mustFlags("DrawImageLatticeWithPaint", baseImageFlags)
	DrawAtlasFlags                 = mustFlags("DrawAtlas", flagIgnoresPaint)
	DrawAtlasWithPaintFlags        = mustFlags("DrawAtlasWithPaint", baseImageFlags)

	DrawDisplayListFlags = mustFlags("DrawDisplayList", flagIgnoresPaint)
	DrawTextBlobFlags    = mustFlags("DrawTextBlob", baseGeometryFlags|flagIsDrawnGeometry|
		flagMayHaveJoins|flagMayHaveAcuteJoins)
	DrawShadowFlags = mustFlags("DrawShadow", flagIgnoresPaint)
)

// mustFlags validates a catalog entry and panics on a contradiction.
func mustFlags(name string, f AttributeFlags) AttributeFlags {
	if err := f.validate(); err != nil {
		panic(fmt.Sprintf("displaylist: inconsistent flags for %s: %v", name, err))
	}
	return f
}

func (f AttributeFlags) validate() error {
	kinds := f & geometryKindFlags
	switch {
	case f&flagIgnoresPaint != 0 && f&(paintUsageFlags|geometryKindFlags|geometryHintFlags|flagIsNonGeometric) != 0:
		return errors.New("ignores paint but uses attributes or geometry")
	case f&flagIsNonGeometric != 0 && f&(geometryKindFlags|geometryHintFlags|flagUsesPathEffect) != 0:
		return errors.New("non-geometric but has geometry bits")
	case kinds&(kinds-1) != 0:
		return errors.New("more than one geometry kind")
	case f&geometryHintFlags != 0 && f&(flagIsStrokedGeometry|flagIsDrawnGeometry) == 0:
		return errors.New("stroke hints without stroked geometry")
	case f&flagFloodsSurface != 0 && kinds != 0:
		return errors.New("floods surface but has geometry")
	}
	return nil
}

func (f AttributeFlags) has(bits AttributeFlags) bool { return f&bits != 0 }

// IgnoresPaint reports whether the op consults no paint attributes.
func (f AttributeFlags) IgnoresPaint() bool { return f.has(flagIgnoresPaint) }

// AppliesAntiAlias reports whether the anti-alias flag is consulted.
func (f AttributeFlags) AppliesAntiAlias() bool { return f.has(flagUsesAntiAlias) }

// AppliesDither reports whether the dither flag is consulted.
func (f AttributeFlags) AppliesDither() bool { return f.has(flagUsesDither) }

// AppliesAlpha reports whether the color alpha is consulted.
func (f AttributeFlags) AppliesAlpha() bool { return f.has(flagUsesAlpha) }

// AppliesColor reports whether the color is consulted.
func (f AttributeFlags) AppliesColor() bool { return f.has(flagUsesColor) }

// AppliesBlend reports whether the blend mode or blender is consulted.
func (f AttributeFlags) AppliesBlend() bool { return f.has(flagUsesBlend) }

// AppliesColorSource reports whether the color source is consulted.
func (f AttributeFlags) AppliesColorSource() bool { return f.has(flagUsesColorSource) }

// AppliesColorFilter reports whether the color filter and invert flag are
// consulted.
func (f AttributeFlags) AppliesColorFilter() bool { return f.has(flagUsesColorFilter) }

// AppliesPathEffect reports whether the path effect is consulted.
func (f AttributeFlags) AppliesPathEffect() bool { return f.has(flagUsesPathEffect) }

// AppliesMaskFilter reports whether the mask filter is consulted.
func (f AttributeFlags) AppliesMaskFilter() bool { return f.has(flagUsesMaskFilter) }

// AppliesImageFilter reports whether the image filter is consulted.
func (f AttributeFlags) AppliesImageFilter() bool { return f.has(flagUsesImageFilter) }

// IsGeometric reports whether the op draws geometry that may be stroked.
func (f AttributeFlags) IsGeometric() bool {
	return !f.has(flagIgnoresPaint|flagIsNonGeometric|flagFloodsSurface)
}

// AlwaysStroked reports whether the geometry is stroked regardless of
// the style.
func (f AttributeFlags) AlwaysStroked() bool { return f.has(flagIsStrokedGeometry) }

// IsStrokedAndFilled reports whether the style decides between stroke
// and fill.
func (f AttributeFlags) IsStrokedAndFilled() bool { return f.has(flagIsDrawnGeometry) }

// IsFlood reports whether the op covers the entire clip.
func (f AttributeFlags) IsFlood() bool { return f.has(flagFloodsSurface) }

// WithPathEffect returns the flags adjusted for a path effect. A dash on
// stroked geometry introduces end caps; any other effect may produce
// arbitrary geometry.
func (f AttributeFlags) WithPathEffect(pe paint.PathEffect, isStroked bool) AttributeFlags {
	if pe == nil || !f.IsGeometric() {
		return f
	}
	if _, ok := pe.(*paint.DashPathEffect); ok {
		if isStroked || f.AlwaysStroked() {
			return f | flagMayHaveCaps | flagMayHaveDiagonalCaps
		}
		return f
	}
	return f | flagMayHaveCaps | flagMayHaveJoins | flagMayHaveAcuteJoins | flagMayHaveDiagonalCaps
}

// GeometryFlags returns the stroke hints that apply when the geometry is
// stroked (isStroked from the paint style, or always for stroked ops).
func (f AttributeFlags) GeometryFlags(isStroked bool) GeometryFlags {
	if !f.IsGeometric() || f.has(flagIsFilledGeometry) {
		return 0
	}
	if !isStroked && !f.AlwaysStroked() {
		return 0
	}
	return GeometryFlags(f&geometryHintFlags) | geometryStroked
}

// GeometryFlags are the stroke-related hints of a geometric op.
type GeometryFlags uint32

const geometryStroked GeometryFlags = 1 << 31

// IsStroked reports whether the geometry is stroked.
func (g GeometryFlags) IsStroked() bool { return g&geometryStroked != 0 }

// MayHaveCaps reports whether open contours may carry end caps.
func (g GeometryFlags) MayHaveCaps() bool { return g&GeometryFlags(flagMayHaveCaps) != 0 }

// MayHaveJoins reports whether contours may have joins.
func (g GeometryFlags) MayHaveJoins() bool { return g&GeometryFlags(flagMayHaveJoins) != 0 }

// ButtCapIsSquare reports whether butt caps render like square caps.
func (g GeometryFlags) ButtCapIsSquare() bool { return g&GeometryFlags(flagButtCapIsSquare) != 0 }

// MayHaveAcuteJoins reports whether joins may be sharper than 90 degrees.
func (g GeometryFlags) MayHaveAcuteJoins() bool { return g&GeometryFlags(flagMayHaveAcuteJoins) != 0 }

// MayHaveDiagonalCaps reports whether caps may be rotated.
func (g GeometryFlags) MayHaveDiagonalCaps() bool {
	return g&GeometryFlags(flagMayHaveDiagonalCaps) != 0
}
