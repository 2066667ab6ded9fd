// Package xpt2046 reads the XPT2046 resistive touch controller over SPI.
package xpt2046

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/touch"
)

// 12-bit differential conversions, power down between samples.
const (
	cmdZ1 = 0xB1
	cmdZ2 = 0xC1
	cmdX  = 0xD1
	cmdY  = 0x91
)

// DefaultPressure is the Z floor below which the panel reads as untouched.
const DefaultPressure = 400

// Pin is the chip select line. machine.Pin satisfies it.
type Pin interface {
	High()
	Low()
}

type Device struct {
	bus drivers.SPI
	cs  Pin

	pressure int
}

// New returns a device with chip select released. The bus must already be
// configured; the controller tops out around 2 MHz.
func New(bus drivers.SPI, cs Pin) *Device {
	cs.High()
	return &Device{bus: bus, cs: cs, pressure: DefaultPressure}
}

// SetPressure sets the Z floor.
func (d *Device) SetPressure(z int) {
	if z < 1 {
		z = 1
	}
	d.pressure = z
}

// Pressure returns the current Z floor.
func (d *Device) Pressure() int { return d.pressure }

// Ping runs one conversion and returns the bus error, if any. The part has
// no id register, so this only proves the bus is alive.
func (d *Device) Ping() error {
	_, err := d.readReg(cmdZ1)
	return err
}

// Touched reports whether the pressure is above the floor.
func (d *Device) Touched() bool {
	return d.readZ() >= d.pressure
}

// ReadTouchPoint returns the raw position and pressure. Below the floor it
// returns the zero point without sampling X and Y.
func (d *Device) ReadTouchPoint() touch.Point {
	z := d.readZ()
	if z < d.pressure {
		return touch.Point{}
	}
	x, err := d.readReg(cmdX)
	if err != nil {
		return touch.Point{}
	}
	y, err := d.readReg(cmdY)
	if err != nil {
		return touch.Point{}
	}
	return touch.Point{X: int(x), Y: int(y), Z: z}
}

func (d *Device) readZ() int {
	z1, err := d.readReg(cmdZ1)
	if err != nil {
		return 0
	}
	z2, err := d.readReg(cmdZ2)
	if err != nil {
		return 0
	}
	z := int(z1) + 4095 - int(z2)
	if z < 0 {
		z = 0
	}
	return z
}

// readReg sends cmd and clocks out the 12-bit result. The reply is one busy
// bit, 12 data bits, then 3 padding bits.
func (d *Device) readReg(cmd byte) (uint16, error) {
	d.cs.Low()
	defer d.cs.High()

	if _, err := d.bus.Transfer(cmd); err != nil {
		return 0, err
	}
	hi, err := d.bus.Transfer(0x00)
	if err != nil {
		return 0, err
	}
	lo, err := d.bus.Transfer(0x00)
	if err != nil {
		return 0, err
	}
	return (uint16(hi)<<8 | uint16(lo)) >> 3 & 0x0FFF, nil
}
