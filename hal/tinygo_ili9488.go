//go:build tinygo && baremetal && !ili9341

package hal

import (
	"errors"
	"image/color"
	"machine"
	"time"
)

const (
	ili9488Width  = 480
	ili9488Height = 320
)

// ili9488 draws straight to panel RAM. Over SPI the controller only takes
// 18bpp, and a full frame is 450 KiB, more than an RP2040 has, so there is
// no shadow buffer.
type ili9488 struct {
	spi *machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
}

// SPI1: GP10 SCK, GP11 SDO, GP12 SDI. CS GP13, DC GP14, RST GP15.
func newILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	err := machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})
	if err != nil {
		return nil, err
	}

	d := &ili9488{
		spi:   machine.SPI1,
		cs:    machine.GP13,
		dc:    machine.GP14,
		rst:   machine.GP15,
		txBuf: make([]byte, 3*682),
	}
	for _, p := range []machine.Pin{d.cs, d.dc, d.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	d.reset()
	d.init()
	return d, nil
}

func (d *ili9488) reset() {
	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)
}

func (d *ili9488) init() {
	d.cmd(0xC0, 0x17, 0x15)             // PWCTRL1
	d.cmd(0xC1, 0x41)                   // PWCTRL2
	d.cmd(0xC5, 0x00, 0x12, 0x80, 0x40) // VMCTRL

	// 18bpp; SPI has no 16bpp mode
	d.cmd(0x3A, 0x66) // COLMOD

	d.cmd(0xB1, 0xA0, 0x11)       // FRMCTRL1
	d.cmd(0xB6, 0x02, 0x22, 0x3B) // DISCTRL (480 lines)

	// landscape: row/column exchange, BGR panel order
	d.cmd(0x36, 0x20|0x08) // MADCTL MV|BGR

	d.cmd(0x11) // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	d.cmd(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
	d.cmd(0x2C)
}

func (d *ili9488) Size() (int16, int16) { return ili9488Width, ili9488Height }

func (d *ili9488) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= ili9488Width || y >= ili9488Height {
		return
	}
	px := rgb666(c)
	d.setWindow(uint16(x), uint16(y), uint16(x), uint16(y))
	d.cs.Low()
	d.dc.High()
	d.spi.Tx(px[:], nil)
	d.cs.High()
}

// Display is a no-op: every write already reached the panel.
func (d *ili9488) Display() error { return nil }

func (d *ili9488) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0, y0 := int(x), int(y)
	x1, y1 := x0+int(width), y0+int(height)
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > ili9488Width {
		x1 = ili9488Width
	}
	if y1 > ili9488Height {
		y1 = ili9488Height
	}
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	d.setWindow(uint16(x0), uint16(y0), uint16(x1-1), uint16(y1-1))

	chunk := fillRGB666(d.txBuf, c)

	d.cs.Low()
	d.dc.High()
	for remain := (x1 - x0) * (y1 - y0) * 3; remain > 0; {
		n := len(chunk)
		if n > remain {
			n = remain
		}
		if err := d.spi.Tx(chunk[:n], nil); err != nil {
			d.cs.High()
			return err
		}
		remain -= n
	}
	d.cs.High()
	return nil
}
