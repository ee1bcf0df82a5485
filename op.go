package displaylist

import "strconv"

// OpType identifies the kind of a recorded op. It is the low 8 bits of
// every record header.
type OpType uint8

const (
	// Attribute ops
	OpSetAntiAlias OpType = iota
	OpSetDither
	OpSetInvertColors
	OpSetStrokeCap
	OpSetStrokeJoin
	OpSetStyle
	OpSetStrokeWidth
	OpSetStrokeMiter
	OpSetColor
	OpSetBlendMode
	OpSetBlender
	OpSetColorSource
	OpSetColorFilter
	OpSetImageFilter
	OpSetMaskFilter
	OpSetPathEffect

	// Save stack ops
	OpSave
	OpSaveLayer
	OpSaveLayerBackdrop
	OpRestore

	// Transform ops
	OpTranslate
	OpScale
	OpRotate
	OpSkew
	OpTransform2DAffine
	OpTransformFullPerspective
	OpTransformReset

	// Clip ops
	OpClipRect
	OpClipOval
	OpClipRRect
	OpClipPath

	// Rendering ops
	OpDrawPaint
	OpDrawColor
	OpDrawLine
	OpDrawRect
	OpDrawOval
	OpDrawCircle
	OpDrawRRect
	OpDrawDRRect
	OpDrawPath
	OpDrawArc
	OpDrawPoints
	OpDrawVertices
	OpDrawImage
	OpDrawImageWithAttr
	OpDrawImageRect
	OpDrawImageNine
	OpDrawImageLattice
	OpDrawAtlas
	OpDrawAtlasCulled
	OpDrawDisplayList
	OpDrawTextBlob
	OpDrawShadow
	OpDrawShadowTransparentOccluder

	opTypeCount
)

var opNames = [...]string{
	OpSetAntiAlias:                  "SetAntiAlias",
	OpSetDither:                     "SetDither",
	OpSetInvertColors:               "SetInvertColors",
	OpSetStrokeCap:                  "SetStrokeCap",
	OpSetStrokeJoin:                 "SetStrokeJoin",
	OpSetStyle:                      "SetStyle",
	OpSetStrokeWidth:                "SetStrokeWidth",
	OpSetStrokeMiter:                "SetStrokeMiter",
	OpSetColor:                      "SetColor",
	OpSetBlendMode:                  "SetBlendMode",
	OpSetBlender:                    "SetBlender",
	OpSetColorSource:                "SetColorSource",
	OpSetColorFilter:                "SetColorFilter",
	OpSetImageFilter:                "SetImageFilter",
	OpSetMaskFilter:                 "SetMaskFilter",
	OpSetPathEffect:                 "SetPathEffect",
	OpSave:                          "Save",
	OpSaveLayer:                     "SaveLayer",
	OpSaveLayerBackdrop:             "SaveLayerBackdrop",
	OpRestore:                       "Restore",
	OpTranslate:                     "Translate",
	OpScale:                         "Scale",
	OpRotate:                        "Rotate",
	OpSkew:                          "Skew",
	OpTransform2DAffine:             "Transform2DAffine",
	OpTransformFullPerspective:      "TransformFullPerspective",
	OpTransformReset:                "TransformReset",
	OpClipRect:                      "ClipRect",
	OpClipOval:                      "ClipOval",
	OpClipRRect:                     "ClipRRect",
	OpClipPath:                      "ClipPath",
	OpDrawPaint:                     "DrawPaint",
	OpDrawColor:                     "DrawColor",
	OpDrawLine:                      "DrawLine",
	OpDrawRect:                      "DrawRect",
	OpDrawOval:                      "DrawOval",
	OpDrawCircle:                    "DrawCircle",
	OpDrawRRect:                     "DrawRRect",
	OpDrawDRRect:                    "DrawDRRect",
	OpDrawPath:                      "DrawPath",
	OpDrawArc:                       "DrawArc",
	OpDrawPoints:                    "DrawPoints",
	OpDrawVertices:                  "DrawVertices",
	OpDrawImage:                     "DrawImage",
	OpDrawImageWithAttr:             "DrawImageWithAttr",
	OpDrawImageRect:                 "DrawImageRect",
	OpDrawImageNine:                 "DrawImageNine",
	OpDrawImageLattice:              "DrawImageLattice",
	OpDrawAtlas:                     "DrawAtlas",
	OpDrawAtlasCulled:               "DrawAtlasCulled",
	OpDrawDisplayList:               "DrawDisplayList",
	OpDrawTextBlob:                  "DrawTextBlob",
	OpDrawShadow:                    "DrawShadow",
	OpDrawShadowTransparentOccluder: "DrawShadowTransparentOccluder",
}

// String returns the op name.
func (t OpType) String() string {
	if t < opTypeCount {
		return opNames[t]
	}
	return "OpType(" + strconv.Itoa(int(t)) + ")"
}

// OpCategory groups op types by how they affect replay.
type OpCategory uint8

// Op categories.
const (
	CategoryAttribute OpCategory = iota
	CategoryTransform
	CategoryClip
	CategorySave
	CategorySaveLayer
	CategoryRestore
	CategoryRendering
	CategorySubDisplayList
	CategoryInvalid
)

// String returns the category name.
func (c OpCategory) String() string {
	switch c {
	case CategoryAttribute:
		return "Attribute"
	case CategoryTransform:
		return "Transform"
	case CategoryClip:
		return "Clip"
	case CategorySave:
		return "Save"
	case CategorySaveLayer:
		return "SaveLayer"
	case CategoryRestore:
		return "Restore"
	case CategoryRendering:
		return "Rendering"
	case CategorySubDisplayList:
		return "SubDisplayList"
	default:
		return "Invalid"
	}
}

// Category returns the category of the op type.
func (t OpType) Category() OpCategory {
	switch {
	case t <= OpSetPathEffect:
		return CategoryAttribute
	case t == OpSave:
		return CategorySave
	case t == OpSaveLayer, t == OpSaveLayerBackdrop:
		return CategorySaveLayer
	case t == OpRestore:
		return CategoryRestore
	case t <= OpTransformReset:
		return CategoryTransform
	case t <= OpClipPath:
		return CategoryClip
	case t == OpDrawDisplayList:
		return CategorySubDisplayList
	case t < opTypeCount:
		return CategoryRendering
	default:
		return CategoryInvalid
	}
}

// IsRendering reports whether ops of this type produce pixels.
func (c OpCategory) IsRendering() bool {
	return c == CategoryRendering || c == CategorySubDisplayList
}
