//go:build !baremetal

package hal

import (
	"sync"
	"time"

	"tapmenu/input"

	"tinygo.org/x/drivers/touch"
)

// Tap is a scripted press at screen coordinates.
type Tap struct {
	At   time.Duration
	Hold time.Duration
	X, Y int
}

// DefaultTapHold is used for scripted taps without an explicit hold time.
const DefaultTapHold = 80 * time.Millisecond

// hostTouch simulates the panel. Positions arrive in screen pixels, from a
// pointer or a script, and are reported back as raw sensor readings so the
// calibration path runs exactly as on hardware.
type hostTouch struct {
	mu    sync.Mutex
	cal   input.Calibration
	clock Clock

	pointerDown bool
	pointer     input.Point

	script []Tap

	failInits  int
	thresholds []uint8
}

func newHostTouch(cal input.Calibration, clock Clock, script []Tap, failInits int) *hostTouch {
	return &hostTouch{
		cal:       cal,
		clock:     clock,
		script:    append([]Tap(nil), script...),
		failInits: failInits,
	}
}

func (t *hostTouch) Init(threshold uint8) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.thresholds = append(t.thresholds, threshold)
	if t.failInits > 0 {
		t.failInits--
		return false
	}
	return true
}

func (t *hostTouch) Touched() bool {
	_, ok := t.active()
	return ok
}

func (t *hostTouch) RawPoint() touch.Point {
	p, ok := t.active()
	if !ok {
		return touch.Point{}
	}
	return t.cal.Unmap(p)
}

func (t *hostTouch) setPointer(p input.Point, down bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pointer = p
	t.pointerDown = down
}

func (t *hostTouch) active() (input.Point, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pointerDown {
		return t.pointer, true
	}
	if len(t.script) == 0 {
		return input.Point{}, false
	}
	now := t.clock.Now()
	for _, tap := range t.script {
		hold := tap.Hold
		if hold <= 0 {
			hold = DefaultTapHold
		}
		if now >= tap.At && now < tap.At+hold {
			return input.Point{X: tap.X, Y: tap.Y}, true
		}
	}
	return input.Point{}, false
}

func (t *hostTouch) initThresholds() []uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]uint8(nil), t.thresholds...)
}
