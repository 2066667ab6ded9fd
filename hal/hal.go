package hal

import (
	"image/color"
	"time"

	"tapmenu/input"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/touch"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

// Display is a pixel surface with a native rectangle fill.
type Display interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Touch is the touch controller.
//
// Init is called with a sensitivity threshold and reports whether the
// controller answered. Touched and RawPoint are sampled once per loop tick.
type Touch interface {
	Init(threshold uint8) bool
	Touched() bool
	RawPoint() touch.Point
}

// Clock is the loop timebase. Now counts from boot.
type Clock interface {
	Now() time.Duration
	Sleep(d time.Duration)
}

// Board describes the wired hardware.
type Board struct {
	Name        string
	Calibration input.Calibration
}

// HAL provides the only contact point between the menu and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Touch() Touch
	Clock() Clock
	Board() Board
}
