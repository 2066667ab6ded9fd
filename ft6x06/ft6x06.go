// Package ft6x06 drives the FocalTech FT6206/FT6236 capacitive touch
// controllers found on most 3.5" SPI panel breakouts.
package ft6x06

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/touch"
)

// Address is the fixed 7-bit I2C address.
const Address = 0x38

const (
	regTDStatus  = 0x02
	regThreshold = 0x80
	regChipID    = 0xA3
	regVendorID  = 0xA8

	vendorFocalTech = 0x11

	chipFT6206  = 0x06
	chipFT6236  = 0x36
	chipFT6236U = 0x64

	// registers 0x00..0x0F hold the first touch record
	frameLen = 16
)

// DefaultThreshold is the controller's power-on touch sensitivity.
const DefaultThreshold = 128

var ErrNoDevice = errors.New("ft6x06: no device")

// Device is an FT6x06 on an I2C bus.
type Device struct {
	bus     drivers.I2C
	Address uint16

	chip uint8
	buf  [frameLen]byte
}

// New returns a device at the default address. Call Configure before use.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, Address: Address}
}

// Configure writes the touch threshold and checks the vendor and chip IDs.
// It returns ErrNoDevice if nothing answers or the IDs do not match.
func (d *Device) Configure(threshold uint8) error {
	if err := d.writeReg(regThreshold, threshold); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	vendor, err := d.readReg(regVendorID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	if vendor != vendorFocalTech {
		return fmt.Errorf("%w: vendor id %#02x", ErrNoDevice, vendor)
	}
	chip, err := d.readReg(regChipID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	switch chip {
	case chipFT6206, chipFT6236, chipFT6236U:
	default:
		return fmt.Errorf("%w: chip id %#02x", ErrNoDevice, chip)
	}
	d.chip = chip
	return nil
}

// ChipID returns the id read by the last successful Configure.
func (d *Device) ChipID() uint8 { return d.chip }

// Touches returns the number of active touch points (0..2). Bus errors
// read as zero.
func (d *Device) Touches() int {
	n, err := d.readReg(regTDStatus)
	if err != nil {
		return 0
	}
	n &= 0x0F
	if n > 2 {
		// the controller reports 0x0F while idle on some revisions
		return 0
	}
	return int(n)
}

// Touched reports whether at least one finger is down.
func (d *Device) Touched() bool {
	return d.Touches() > 0
}

// ReadTouchPoint returns the first touch in raw controller coordinates.
// Z is 1 when a touch is present and 0 otherwise.
func (d *Device) ReadTouchPoint() touch.Point {
	if err := d.bus.Tx(d.Address, []byte{0x00}, d.buf[:]); err != nil {
		return touch.Point{}
	}
	return decode(d.buf[:])
}

func decode(b []byte) touch.Point {
	n := b[regTDStatus] & 0x0F
	if n == 0 || n > 2 {
		return touch.Point{}
	}
	return touch.Point{
		X: int(b[3]&0x0F)<<8 | int(b[4]),
		Y: int(b[5]&0x0F)<<8 | int(b[6]),
		Z: 1,
	}
}

func (d *Device) readReg(reg uint8) (uint8, error) {
	var v [1]byte
	if err := d.bus.Tx(d.Address, []byte{reg}, v[:]); err != nil {
		return 0, err
	}
	return v[0], nil
}

func (d *Device) writeReg(reg, v uint8) error {
	return d.bus.Tx(d.Address, []byte{reg, v}, nil)
}
