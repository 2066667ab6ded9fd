//go:build tinygo && baremetal && !ili9341

package hal

import (
	"machine"
	"time"

	"tapmenu/ft6x06"
	"tapmenu/input"

	"tinygo.org/x/drivers/touch"
)

// New returns the reference board: a Pico with a 3.5" ILI9488 panel and an
// FT6236 capacitive touch controller.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Touch: I2C0 on GP4 (SDA) / GP5 (SCL), 400 kHz.
// Display: see newILI9488.
func New() HAL {
	clock := &tinyGoClock{start: time.Now()}
	logger := newUARTLogger()

	var disp Display
	if d, err := newILI9488(); err == nil {
		disp = d
	} else {
		logger.WriteLineString("display: " + err.Error())
		disp = nullDisplay{w: ili9488Width, h: ili9488Height}
	}

	var tc Touch = noTouch{}
	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 400 * machine.KHz,
	})
	if err == nil {
		tc = &ft6236Touch{dev: ft6x06.New(machine.I2C0)}
	} else {
		logger.WriteLineString("touch bus: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		led:    newPinLED(machine.LED),
		disp:   disp,
		touch:  tc,
		clock:  clock,
		board:  Board{Name: "Pico ILI9488", Calibration: input.Reference()},
	}
}

type ft6236Touch struct {
	dev *ft6x06.Device
}

func (t *ft6236Touch) Init(threshold uint8) bool {
	return t.dev.Configure(threshold) == nil
}

func (t *ft6236Touch) Touched() bool         { return t.dev.Touched() }
func (t *ft6236Touch) RawPoint() touch.Point { return t.dev.ReadTouchPoint() }
