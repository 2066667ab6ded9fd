//go:build tinygo && baremetal && ili9341

package hal

import (
	"image/color"
	"machine"
	"time"

	"tapmenu/input"
	"tapmenu/xpt2046"

	"tinygo.org/x/drivers/ili9341"
	"tinygo.org/x/drivers/touch"
)

// New returns the 2.8" ILI9341 + XPT2046 board. Panel and touch share SPI0.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// SPI0: GP2 SCK, GP3 SDO, GP4 SDI, 4 MHz.
// Display: DC GP6, CS GP5, RST GP7, backlight GP8.
// Touch: CS GP9.
func New() HAL {
	clock := &tinyGoClock{start: time.Now()}
	logger := newUARTLogger()

	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 4_000_000,
		SCK:       machine.GP2,
		SDO:       machine.GP3,
		SDI:       machine.GP4,
	})

	lcd := ili9341.NewSPI(machine.SPI0, machine.GP6, machine.GP5, machine.GP7)
	bl := machine.GP8
	bl.Configure(machine.PinConfig{Mode: machine.PinOutput})
	bl.High()
	lcd.Configure(ili9341.Config{Rotation: ili9341.Rotation90})
	lcd.FillScreen(color.RGBA{A: 0xFF})

	touchCS := machine.GP9
	touchCS.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &tinyGoHAL{
		logger: logger,
		led:    newPinLED(machine.LED),
		disp:   lcd,
		touch:  &xpt2046Touch{dev: xpt2046.New(machine.SPI0, touchCS)},
		clock:  clock,
		board:  Board{Name: "Pico ILI9341", Calibration: input.ReferenceQVGA()},
	}
}

// xpt2046Touch maps the init threshold onto the pressure floor, so the
// retry ladder tries progressively different sensitivities.
type xpt2046Touch struct {
	dev *xpt2046.Device
}

func (t *xpt2046Touch) Init(threshold uint8) bool {
	if threshold == 0 {
		return false
	}
	t.dev.SetPressure(int(threshold) * 10)
	return t.dev.Ping() == nil
}

func (t *xpt2046Touch) Touched() bool         { return t.dev.Touched() }
func (t *xpt2046Touch) RawPoint() touch.Point { return t.dev.ReadTouchPoint() }
