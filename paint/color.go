package paint

import (
	"image/color"
	"math"
)

// Color is a non-premultiplied 32-bit ARGB color, 8 bits per channel,
// alpha in the high byte.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Red         Color = 0xFFFF0000
	Green       Color = 0xFF00FF00
	Blue        Color = 0xFF0000FF
)

// ARGB packs 8-bit channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBAF builds a Color from [0, 1] float channels.
func RGBAF(r, g, b, a float64) Color {
	return ARGB(unit8(a), unit8(r), unit8(g), unit8(b))
}

func unit8(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}

// FromColor converts a standard library color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// Hex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA" with an optional
// leading '#'. Malformed input yields opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}
	var r, g, b uint32
	a := uint32(255)
	switch len(hex) {
	case 3, 4:
		r, g, b = hexNibble(hex[0])*17, hexNibble(hex[1])*17, hexNibble(hex[2])*17
		if len(hex) == 4 {
			a = hexNibble(hex[3]) * 17
		}
	case 6, 8:
		r = hexNibble(hex[0])<<4 | hexNibble(hex[1])
		g = hexNibble(hex[2])<<4 | hexNibble(hex[3])
		b = hexNibble(hex[4])<<4 | hexNibble(hex[5])
		if len(hex) == 8 {
			a = hexNibble(hex[6])<<4 | hexNibble(hex[7])
		}
	default:
		return Black
	}
	return ARGB(uint8(a), uint8(r), uint8(g), uint8(b))
}

func hexNibble(c byte) uint32 {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0')
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10)
	}
	return 0
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// Opacity returns alpha in [0, 1].
func (c Color) Opacity() float32 { return float32(c.A()) / 255 }

// IsOpaque reports whether alpha is 255.
func (c Color) IsOpaque() bool { return c.A() == 0xFF }

// IsTransparent reports whether alpha is 0.
func (c Color) IsTransparent() bool { return c.A() == 0 }

// WithAlpha replaces the alpha channel.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// ModulateOpacity scales alpha by opacity in [0, 1].
func (c Color) ModulateOpacity(opacity float32) Color {
	if opacity >= 1 {
		return c
	}
	return c.WithAlpha(uint8(math.Round(float64(c.A()) * float64(max(0, opacity)))))
}

// NRGBA converts to the standard library type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}
