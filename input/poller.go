package input

import (
	"time"

	"tinygo.org/x/drivers/touch"
)

// DefaultDebounce is the minimum gap between two accepted presses.
const DefaultDebounce = 200 * time.Millisecond

// Sensor reports touch presence and the current raw position.
type Sensor interface {
	Touched() bool
	RawPoint() touch.Point
}

// Clock returns the time elapsed since boot.
type Clock interface {
	Now() time.Duration
}

// State is the poller's press state.
type State uint8

const (
	Idle State = iota
	Down
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Tap is an accepted press edge.
type Tap struct {
	Raw    touch.Point
	Screen Point
	At     time.Duration
}

// Poller turns per-tick touch samples into debounced press edges.
//
// Only the press edge is gated. Release is taken as soon as the sensor
// reports no contact.
type Poller struct {
	sensor   Sensor
	clock    Clock
	cal      Calibration
	debounce time.Duration

	lastAccepted time.Duration
	wasTouched   bool
}

func NewPoller(s Sensor, c Clock, cal Calibration, debounce time.Duration) *Poller {
	return &Poller{
		sensor:   s,
		clock:    c,
		cal:      cal,
		debounce: debounce,
	}
}

// Poll samples the sensor once. It reports a Tap when a new press passes
// the debounce gate.
func (p *Poller) Poll() (Tap, bool) {
	if !p.sensor.Touched() {
		p.wasTouched = false
		return Tap{}, false
	}
	if p.wasTouched {
		return Tap{}, false
	}

	now := p.clock.Now()
	if now-p.lastAccepted <= p.debounce {
		// Not latched: a finger still down once the window has passed
		// is accepted on a later tick.
		return Tap{}, false
	}

	raw := p.sensor.RawPoint()
	tap := Tap{
		Raw:    raw,
		Screen: p.cal.Map(raw),
		At:     now,
	}
	p.lastAccepted = now
	p.wasTouched = true
	return tap, true
}

// State reports whether an accepted press is still held.
func (p *Poller) State() State {
	if p.wasTouched {
		return Down
	}
	return Idle
}

// LastAccepted returns the timestamp of the most recent accepted press.
func (p *Poller) LastAccepted() time.Duration { return p.lastAccepted }
