//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/touch"
)

// tinyGoClock counts from the first call to New.
type tinyGoClock struct {
	start time.Time
}

func (c *tinyGoClock) Now() time.Duration    { return time.Since(c.start) }
func (c *tinyGoClock) Sleep(d time.Duration) { time.Sleep(d) }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func newUARTLogger() *uartLogger {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return &uartLogger{uart: uart}
}

func newPinLED(pin machine.Pin) *pinLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &pinLED{pin: pin}
}

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	disp   Display
	touch  Touch
	clock  *tinyGoClock
	board  Board
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Display() Display { return h.disp }
func (h *tinyGoHAL) Touch() Touch     { return h.touch }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Board() Board     { return h.board }

// noTouch stands in when the controller bus could not be brought up, so
// startup reports the failure through the normal init retry path.
type noTouch struct{}

func (noTouch) Init(uint8) bool       { return false }
func (noTouch) Touched() bool         { return false }
func (noTouch) RawPoint() touch.Point { return touch.Point{} }

// nullDisplay keeps the loop running when the panel failed to come up.
type nullDisplay struct {
	w, h int16
}

func (d nullDisplay) Size() (int16, int16)                                      { return d.w, d.h }
func (nullDisplay) SetPixel(x, y int16, c color.RGBA)                           {}
func (nullDisplay) Display() error                                              { return nil }
func (nullDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error { return nil }
