package ft6x06

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers/touch"

	"tapmenu/input"
)

// fakeBus is a 256-byte register file with an auto-incrementing pointer.
type fakeBus struct {
	regs    [256]byte
	addrs   []uint16
	fail    bool
	lastSet []byte
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.addrs = append(b.addrs, addr)
	if b.fail {
		return errors.New("nack")
	}
	if len(w) == 0 {
		return nil
	}
	reg := int(w[0])
	if len(w) > 1 {
		b.lastSet = append([]byte(nil), w...)
		for i, v := range w[1:] {
			b.regs[(reg+i)&0xFF] = v
		}
	}
	for i := range r {
		r[i] = b.regs[(reg+i)&0xFF]
	}
	return nil
}

func newFT6236() *fakeBus {
	b := &fakeBus{}
	b.regs[regVendorID] = vendorFocalTech
	b.regs[regChipID] = chipFT6236
	return b
}

func TestConfigureWritesThreshold(t *testing.T) {
	bus := newFT6236()
	d := New(bus)

	require.NoError(t, d.Configure(40))
	require.Equal(t, []byte{regThreshold, 40}, bus.lastSet)
	require.Equal(t, uint8(chipFT6236), d.ChipID())
	for _, a := range bus.addrs {
		require.Equal(t, uint16(Address), a)
	}
}

func TestConfigureRejectsUnknownIDs(t *testing.T) {
	bus := newFT6236()
	bus.regs[regVendorID] = 0x42
	err := New(bus).Configure(DefaultThreshold)
	require.ErrorIs(t, err, ErrNoDevice)

	bus = newFT6236()
	bus.regs[regChipID] = 0x99
	err = New(bus).Configure(DefaultThreshold)
	require.ErrorIs(t, err, ErrNoDevice)
}

func TestConfigureBusError(t *testing.T) {
	bus := newFT6236()
	bus.fail = true
	require.ErrorIs(t, New(bus).Configure(DefaultThreshold), ErrNoDevice)
}

func TestAcceptedChipIDs(t *testing.T) {
	for _, id := range []byte{chipFT6206, chipFT6236, chipFT6236U} {
		bus := newFT6236()
		bus.regs[regChipID] = id
		if err := New(bus).Configure(DefaultThreshold); err != nil {
			t.Fatalf("Configure() with chip %#02x: err = %v", id, err)
		}
	}
}

func TestTouches(t *testing.T) {
	bus := newFT6236()
	d := New(bus)

	cases := []struct {
		status byte
		want   int
	}{
		{0x00, 0},
		{0x01, 1},
		{0x02, 2},
		{0x0F, 0},
		{0x31, 1},
	}
	for _, c := range cases {
		bus.regs[regTDStatus] = c.status
		if got := d.Touches(); got != c.want {
			t.Fatalf("Touches() with status %#02x = %d, want %d", c.status, got, c.want)
		}
	}
	bus.fail = true
	if d.Touched() {
		t.Fatalf("Touched() = true on bus error")
	}
}

func TestReadTouchPointDecodesFrame(t *testing.T) {
	bus := newFT6236()
	// one touch, event flag bits set in the high nibbles
	copy(bus.regs[0:], []byte{0x00, 0x00, 0x01, 0x81, 0x2C, 0x41, 0xDF})
	got := New(bus).ReadTouchPoint()
	require.Equal(t, touch.Point{X: 0x12C, Y: 0x1DF, Z: 1}, got)
}

func TestReadTouchPointNoTouch(t *testing.T) {
	bus := newFT6236()
	copy(bus.regs[0:], []byte{0x00, 0x00, 0x00, 0x81, 0x2C, 0x41, 0xDF})
	require.Equal(t, touch.Point{}, New(bus).ReadTouchPoint())

	bus.regs[regTDStatus] = 1
	bus.fail = true
	require.Equal(t, touch.Point{}, New(bus).ReadTouchPoint())
}

func TestRawUnitsMatchReferenceCalibration(t *testing.T) {
	bus := newFT6236()
	// X 8 and Y 479 are the reference calibration's corners; unscaled
	// readings land on the bottom-right pixel.
	copy(bus.regs[0:], []byte{0x00, 0x00, 0x01, 0x80, 0x08, 0x41, 0xDF})
	raw := New(bus).ReadTouchPoint()
	require.Equal(t, touch.Point{X: 8, Y: 479, Z: 1}, raw)
	require.Equal(t, input.Point{X: 479, Y: 319}, input.Reference().Map(raw))
}
