//go:build !baremetal

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"tapmenu/input"
)

// HostConfig configures the simulated board.
type HostConfig struct {
	Name        string
	Calibration input.Calibration
	// Virtual selects a clock that only advances when slept on.
	Virtual bool
	// Script is replayed on the simulated panel against the HAL clock.
	Script []Tap
	// TouchInitFailures makes the first N touch Init calls fail.
	TouchInitFailures int
	Out               io.Writer
}

// Host is the desktop implementation of HAL.
type Host struct {
	logger *hostLogger
	led    *hostLED
	fb     *hostFramebuffer
	touch  *hostTouch
	clock  Clock
	board  Board
}

// New returns a host HAL with the reference board and a wall clock.
func New() HAL {
	return NewHost(HostConfig{})
}

func NewHost(cfg HostConfig) *Host {
	if cfg.Name == "" {
		cfg.Name = "host"
	}
	if cfg.Calibration == (input.Calibration{}) {
		cfg.Calibration = input.Reference()
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	var clock Clock = newHostClock()
	if cfg.Virtual {
		clock = &virtualClock{}
	}
	logger := &hostLogger{w: cfg.Out}
	return &Host{
		logger: logger,
		led:    &hostLED{logger: logger},
		fb:     newHostFramebuffer(cfg.Calibration.Width, cfg.Calibration.Height),
		touch:  newHostTouch(cfg.Calibration, clock, cfg.Script, cfg.TouchInitFailures),
		clock:  clock,
		board:  Board{Name: cfg.Name, Calibration: cfg.Calibration},
	}
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) LED() LED         { return h.led }
func (h *Host) Display() Display { return h.fb }
func (h *Host) Touch() Touch     { return h.touch }
func (h *Host) Clock() Clock     { return h.clock }
func (h *Host) Board() Board     { return h.board }

// SetPointer feeds a pointer position in screen pixels to the simulated panel.
func (h *Host) SetPointer(x, y int, down bool) {
	h.touch.setPointer(input.Point{X: x, Y: y}, down)
}

// SnapshotRGBA copies the display into dst as 8-bit RGBA.
func (h *Host) SnapshotRGBA(dst []byte) { h.fb.snapshotRGBA(dst) }

// DisplaySize returns the display size in pixels.
func (h *Host) DisplaySize() (int, int) { return h.fb.width, h.fb.height }

// Pixel returns the RGB565 value at (x, y).
func (h *Host) Pixel(x, y int) uint16 { return h.fb.pixel(x, y) }

// LEDOn reports the simulated LED state.
func (h *Host) LEDOn() bool { return h.led.isOn() }

// TouchInitThresholds lists the thresholds Init was called with, in order.
func (h *Host) TouchInitThresholds() []uint8 { return h.touch.initThresholds() }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
