package hal

import "image/color"

// rgb666 is one pixel as the ILI9488 takes it over SPI: three bytes, each
// channel in the top six bits.
func rgb666(c color.RGBA) [3]byte {
	return [3]byte{c.R &^ 0x03, c.G &^ 0x03, c.B &^ 0x03}
}

// fillRGB666 repeats c across buf and returns the prefix that holds whole
// pixels.
func fillRGB666(buf []byte, c color.RGBA) []byte {
	px := rgb666(c)
	buf = buf[:len(buf)-len(buf)%3]
	for i := 0; i < len(buf); i += 3 {
		copy(buf[i:i+3], px[:])
	}
	return buf
}
