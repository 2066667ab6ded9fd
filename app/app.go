package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tapmenu/hal"
	"tapmenu/input"
	"tapmenu/internal/buildinfo"
	"tapmenu/menu"
	"tapmenu/ui"
)

// ErrTouchInit means the touch controller never answered at boot.
var ErrTouchInit = errors.New("touch init failed")

// Menu is the running menu: one polling loop owning all state.
type Menu struct {
	h   hal.HAL
	cfg Config
	log hal.Logger

	reg      *ui.Registry
	renderer *ui.Renderer
	poller   *input.Poller
	disp     *menu.Dispatcher
}

// New brings up the display and touch controller and draws the menu.
//
// If the touch controller fails every threshold, the failure is drawn on
// screen and the returned error wraps ErrTouchInit. The caller is expected
// to Halt.
func New(h hal.HAL, cfg Config) (*Menu, error) {
	cfg = cfg.withDefaults()
	board := h.Board()
	cal := board.Calibration
	if cfg.Calibration != (input.Calibration{}) {
		cal = cfg.Calibration
	}

	m := &Menu{h: h, cfg: cfg, log: h.Logger()}
	m.logf("=== %s MENU SYSTEM ===", board.Name)

	m.renderer = ui.NewRenderer(h.Display())
	m.renderer.Clear(ui.Black)

	buttons := cfg.Buttons
	if len(buttons) == 0 {
		buttons = ui.LayoutFor(cal.Width, cal.Height)
	}
	if err := ui.CheckBounds(buttons, cal.Width, cal.Height); err != nil {
		return nil, fmt.Errorf("button layout: %w", err)
	}
	reg, err := ui.NewRegistry(buttons)
	if err != nil {
		return nil, fmt.Errorf("button layout: %w", err)
	}
	for _, label := range cfg.Disabled {
		i, ok := reg.Index(label)
		if !ok {
			return nil, fmt.Errorf("disable %q: no such button", label)
		}
		_ = reg.SetEnabled(i, false)
	}
	m.reg = reg

	if err := m.initTouch(); err != nil {
		m.renderer.DrawMessage("TOUCH INIT FAILED!", 20, 50, ui.Red)
		return nil, err
	}

	m.disp, err = menu.NewDispatcher(menu.Config{
		Registry: reg,
		Renderer: m.renderer,
		Clock:    h.Clock(),
		LED:      h.LED(),
		Log:      m.log,
		Actions:  menu.DefaultActions(DeviceInfo(board)),
		Title:    cfg.Title,
		Feedback: cfg.Feedback,
		OnStatus: cfg.OnStatus,
	})
	if err != nil {
		return nil, err
	}
	m.poller = input.NewPoller(h.Touch(), h.Clock(), cal, cfg.Debounce)

	m.disp.SetStatus(menu.Ready)
	m.disp.DrawAll()
	m.logf("Menu ready!")
	return m, nil
}

// DeviceInfo is the text shown by the INFO button.
func DeviceInfo(b hal.Board) string {
	return b.Name + " " + buildinfo.Short()
}

func (m *Menu) initTouch() error {
	t := m.h.Touch()
	for i, th := range m.cfg.TouchThresholds {
		if t.Init(th) {
			m.logf("Touch OK (threshold: %d)", th)
			return nil
		}
		m.logf("Touch init attempt %d failed (threshold: %d)", i+1, th)
		if i < len(m.cfg.TouchThresholds)-1 {
			m.h.Clock().Sleep(m.cfg.TouchRetryDelay)
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrTouchInit, len(m.cfg.TouchThresholds))
}

// Step runs one loop iteration: poll, hit test, dispatch at most one action.
// It never sleeps for the tick itself.
func (m *Menu) Step() error {
	tap, ok := m.poller.Poll()
	if !ok {
		return nil
	}
	m.logf("Touch at: (%d, %d)", tap.Screen.X, tap.Screen.Y)

	i, ok := m.reg.HitTest(tap.Screen)
	if !ok {
		return nil
	}
	b, _ := m.reg.Button(i)
	m.logf("Button %d (%s) pressed!", i, b.Label)
	m.disp.Dispatch(i)
	return nil
}

// Loop steps the menu every tick until ctx is done.
func (m *Menu) Loop(ctx context.Context) error {
	clock := m.h.Clock()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
		clock.Sleep(m.cfg.Tick)
	}
}

// Tick returns the loop period.
func (m *Menu) Tick() time.Duration { return m.cfg.Tick }

// Status returns the status currently shown in the header.
func (m *Menu) Status() menu.Status { return m.disp.Status() }

// Registry exposes the button set, e.g. to enable or disable entries.
func (m *Menu) Registry() *ui.Registry { return m.reg }

// Redraw repaints a button after its registry entry changed.
func (m *Menu) Redraw(i int) {
	if b, ok := m.reg.Button(i); ok {
		m.renderer.DrawButton(b, ui.Normal)
	}
}

func (m *Menu) logf(format string, args ...any) {
	if m.log == nil {
		return
	}
	m.log.WriteLineString(fmt.Sprintf(format, args...))
}
