//go:build !baremetal

package hal

import (
	"image/color"
	"sync"

	"tapmenu/ui"
)

// hostFramebuffer is an RGB565 little-endian pixel buffer. The menu loop
// draws into it while the window goroutine snapshots it.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Size() (x, y int16) { return int16(f.width), int16(f.height) }
func (f *hostFramebuffer) Display() error     { return nil }

func (f *hostFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.put(int(x), int(y), uint16(ui.FromRGBA(c)))
}

func (f *hostFramebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0, y0 := max(int(x), 0), max(int(y), 0)
	x1, y1 := min(int(x)+int(width), f.width), min(int(y)+int(height), f.height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := uint16(ui.FromRGBA(c))
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	f.mu.Lock()
	defer f.mu.Unlock()
	for yy := y0; yy < y1; yy++ {
		row := f.buf[yy*f.stride : (yy+1)*f.stride]
		for xx := x0; xx < x1; xx++ {
			row[xx*2] = lo
			row[xx*2+1] = hi
		}
	}
	return nil
}

func (f *hostFramebuffer) put(x, y int, pixel uint16) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	off := y*f.stride + x*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
}

func (f *hostFramebuffer) pixel(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	off := y*f.stride + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// snapshotRGBA expands the buffer into dst, 4 bytes per pixel.
func (f *hostFramebuffer) snapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	src := f.buf
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		c := ui.Color(uint16(src[i]) | uint16(src[i+1])<<8).ToRGBA()
		j := (i / 2) * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = 0xFF
	}
}
