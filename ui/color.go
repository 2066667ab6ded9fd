package ui

import "image/color"

// Color is a 16bpp RGB565 value: rrrrrggggggbbbbb.
type Color uint16

// Palette, matching the panel firmware's named colors.
const (
	Black     Color = 0x0000
	Navy      Color = 0x000F
	DarkGrey  Color = 0x7BEF
	LightGrey Color = 0xD69A
	Blue      Color = 0x001F
	Green     Color = 0x07E0
	Cyan      Color = 0x07FF
	Red       Color = 0xF800
	Purple    Color = 0x780F
	Yellow    Color = 0xFFE0
	White     Color = 0xFFFF
	Orange    Color = 0xFDA0
)

// RGB packs 8-bit channels into RGB565.
func RGB(r, g, b uint8) Color {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return Color((rr << 11) | (gg << 5) | bb)
}

// FromRGBA packs an opaque color.
func FromRGBA(c color.RGBA) Color { return RGB(c.R, c.G, c.B) }

// ToRGBA expands to 8-bit channels. FromRGBA(c.ToRGBA()) == c.
func (c Color) ToRGBA() color.RGBA {
	rr := (uint16(c) >> 11) & 0x1F
	gg := (uint16(c) >> 5) & 0x3F
	bb := uint16(c) & 0x1F
	return color.RGBA{
		R: uint8((rr * 255) / 31),
		G: uint8((gg * 255) / 63),
		B: uint8((bb * 255) / 31),
		A: 0xFF,
	}
}
