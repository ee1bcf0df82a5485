package paint

// BlendMode is a Porter-Duff or separable/non-separable blend mode.
type BlendMode uint8

// Blend modes. Porter-Duff modes come first, in the classic order.
const (
	BlendClear BlendMode = iota
	BlendSrc
	BlendDst
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen

	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply

	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity

	// BlendDefault is the mode a fresh paint uses.
	BlendDefault = BlendSrcOver
	// lastBlendMode is the highest valid mode.
	lastBlendMode = BlendLuminosity
)

var blendNames = [...]string{
	BlendClear:      "Clear",
	BlendSrc:        "Src",
	BlendDst:        "Dst",
	BlendSrcOver:    "SrcOver",
	BlendDstOver:    "DstOver",
	BlendSrcIn:      "SrcIn",
	BlendDstIn:      "DstIn",
	BlendSrcOut:     "SrcOut",
	BlendDstOut:     "DstOut",
	BlendSrcATop:    "SrcATop",
	BlendDstATop:    "DstATop",
	BlendXor:        "Xor",
	BlendPlus:       "Plus",
	BlendModulate:   "Modulate",
	BlendScreen:     "Screen",
	BlendOverlay:    "Overlay",
	BlendDarken:     "Darken",
	BlendLighten:    "Lighten",
	BlendColorDodge: "ColorDodge",
	BlendColorBurn:  "ColorBurn",
	BlendHardLight:  "HardLight",
	BlendSoftLight:  "SoftLight",
	BlendDifference: "Difference",
	BlendExclusion:  "Exclusion",
	BlendMultiply:   "Multiply",
	BlendHue:        "Hue",
	BlendSaturation: "Saturation",
	BlendColor:      "Color",
	BlendLuminosity: "Luminosity",
}

// String returns the mode name.
func (m BlendMode) String() string {
	if m > lastBlendMode {
		return "Unknown"
	}
	return blendNames[m]
}

// IsPorterDuff reports whether m is a coefficient-based compositing mode.
func (m BlendMode) IsPorterDuff() bool {
	return m <= BlendScreen
}

// NopsOnTransparentBlack reports whether drawing transparent black with
// this mode leaves the destination untouched. Modes that clear or replace
// destination pixels outside the source coverage return false.
func (m BlendMode) NopsOnTransparentBlack() bool {
	switch m {
	case BlendClear, BlendSrc, BlendSrcIn, BlendDstIn, BlendSrcOut, BlendDstATop, BlendModulate:
		return false
	}
	return true
}

// Style selects how geometry is painted.
type Style uint8

// Draw styles.
const (
	StyleFill Style = iota
	StyleStroke
	StyleStrokeAndFill
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleStrokeAndFill:
		return "StrokeAndFill"
	default:
		return "Unknown"
	}
}

// Cap is the shape at the ends of open stroked contours.
type Cap uint8

// Stroke caps.
const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape where stroked segments meet.
type Join uint8

// Stroke joins.
const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// TileMode controls how shaders and filters sample outside their bounds.
type TileMode uint8

// Tile modes.
const (
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
	TileDecal
)
