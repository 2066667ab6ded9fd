package menu

import (
	"errors"
	"fmt"
	"time"

	"tapmenu/ui"
)

// DefaultFeedback is how long the pressed visual is held.
const DefaultFeedback = 150 * time.Millisecond

// DefaultTitle is drawn at the left of the header.
const DefaultTitle = "MAIN MENU"

// Sleeper blocks the calling loop.
type Sleeper interface {
	Sleep(d time.Duration)
}

// LED is the indicator driven by the LED actions.
type LED interface {
	High()
	Low()
}

// Logger writes diagnostic lines.
type Logger interface {
	WriteLineString(s string)
}

// Config wires a Dispatcher.
type Config struct {
	Registry *ui.Registry
	Renderer *ui.Renderer
	Clock    Sleeper
	LED      LED
	Log      Logger
	Actions  []Action
	Title    string
	Feedback time.Duration

	// OnStatus, if set, observes every status change after it is drawn.
	OnStatus func(Status)
}

// Dispatcher runs button actions and owns the status model. Dispatch is
// synchronous: it returns only after every step of the action has run.
type Dispatcher struct {
	reg      *ui.Registry
	r        *ui.Renderer
	clock    Sleeper
	led      LED
	log      Logger
	actions  []Action
	title    string
	feedback time.Duration
	onStatus func(Status)

	status Status
}

func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Registry == nil || cfg.Renderer == nil || cfg.Clock == nil {
		return nil, errors.New("menu: registry, renderer and clock are required")
	}
	if len(cfg.Actions) != cfg.Registry.Len() {
		return nil, fmt.Errorf("menu: %d actions for %d buttons", len(cfg.Actions), cfg.Registry.Len())
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return &Dispatcher{
		reg:      cfg.Registry,
		r:        cfg.Renderer,
		clock:    cfg.Clock,
		led:      cfg.LED,
		log:      cfg.Log,
		actions:  cfg.Actions,
		title:    cfg.Title,
		feedback: cfg.Feedback,
		onStatus: cfg.OnStatus,
		status:   Ready,
	}, nil
}

// Status returns the current status.
func (d *Dispatcher) Status() Status { return d.status }

// SetStatus replaces the status and repaints the header.
func (d *Dispatcher) SetStatus(s Status) {
	d.status = s
	d.r.DrawHeader(d.title, s.Text, s.Color)
	d.logf("Status: %s", s.Text)
	if d.onStatus != nil {
		d.onStatus(s)
	}
}

// DrawAll repaints the header and every button.
func (d *Dispatcher) DrawAll() {
	d.r.DrawHeader(d.title, d.status.Text, d.status.Color)
	for i := 0; i < d.reg.Len(); i++ {
		b, _ := d.reg.Button(i)
		d.r.DrawButton(b, ui.Normal)
	}
}

// Dispatch runs the action bound to button i. Indices without an action are
// ignored and reported false.
func (d *Dispatcher) Dispatch(i int) bool {
	b, ok := d.reg.Button(i)
	if !ok || i >= len(d.actions) {
		d.logf("dispatch: no action for button %d", i)
		return false
	}
	a := d.actions[i]

	d.r.DrawButton(b, ui.Pressed)
	d.clock.Sleep(d.feedback)
	d.r.DrawButton(b, ui.Normal)

	if d.led != nil {
		switch a.LED {
		case LEDOn:
			d.led.High()
		case LEDOff:
			d.led.Low()
		}
	}
	for _, st := range a.Steps {
		d.SetStatus(st.Status)
		if st.Delay > 0 {
			d.clock.Sleep(st.Delay)
		}
	}
	return true
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.log == nil {
		return
	}
	d.log.WriteLineString(fmt.Sprintf(format, args...))
}
